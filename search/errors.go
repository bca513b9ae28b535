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

package search

import "errors"

var (
	// ErrCatalogUnavailable is returned when no catalog has been loaded.
	ErrCatalogUnavailable = errors.New("catalog unavailable")

	// ErrQueryDimension is returned when a query vector does not match the
	// width of the catalog vectors.
	ErrQueryDimension = errors.New("query vector dimension does not match catalog")

	// ErrZeroQueryVector is returned when the embedder yields a zero vector.
	ErrZeroQueryVector = errors.New("query embedding is the zero vector")

	// ErrInvalidOverFetch is returned for planner tables whose over-fetch
	// factor is below 1.
	ErrInvalidOverFetch = errors.New("over-fetch factor must be at least 1")
)
