// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import "errors"

var (
	// ErrInvalidMovieRecord indicates a MovieRecord failed validation.
	ErrInvalidMovieRecord = errors.New("invalid movie record")

	// ErrEmptyTitle indicates the Title field is empty.
	ErrEmptyTitle = errors.New("title cannot be empty")

	// ErrInvalidSource indicates a Source value outside the known enum.
	ErrInvalidSource = errors.New("invalid source")

	// ErrTooManyDirectors indicates more directors than MaxDirectors.
	ErrTooManyDirectors = errors.New("too many directors")

	// ErrTooManyCast indicates more cast members than MaxTopCast.
	ErrTooManyCast = errors.New("too many cast members")

	// ErrInvalidRating indicates a negative or non-finite vote average.
	ErrInvalidRating = errors.New("invalid vote average")
)
