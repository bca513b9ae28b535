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

import (
	"fmt"
	"math"
	"strings"
)

func ValidateMovieRecord(record *MovieRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidMovieRecord)
	}

	if strings.TrimSpace(record.Title) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidMovieRecord, ErrEmptyTitle)
	}

	if err := ValidateSource(record.Source); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidMovieRecord, err)
	}

	if len(record.Directors) > MaxDirectors {
		return fmt.Errorf("%w: %w: %d", ErrInvalidMovieRecord, ErrTooManyDirectors, len(record.Directors))
	}

	if len(record.TopCast) > MaxTopCast {
		return fmt.Errorf("%w: %w: %d", ErrInvalidMovieRecord, ErrTooManyCast, len(record.TopCast))
	}

	if record.VoteAverage != nil {
		v := *record.VoteAverage
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return fmt.Errorf("%w: %w: %v", ErrInvalidMovieRecord, ErrInvalidRating, v)
		}
	}

	return nil
}

func ValidateSource(source Source) error {
	if source != SourceHollywood && source != SourceBollywood {
		return fmt.Errorf("%w: value %d", ErrInvalidSource, source)
	}
	return nil
}

// NormalizeMovieRecord trims names, drops blank list entries and applies the
// director and cast caps. Nil sequences become empty slices.
func NormalizeMovieRecord(record *MovieRecord) {
	record.Title = strings.TrimSpace(record.Title)
	record.Overview = strings.TrimSpace(record.Overview)
	record.Genres = compactNames(record.Genres, 0)
	record.Directors = compactNames(record.Directors, MaxDirectors)
	record.TopCast = compactNames(record.TopCast, MaxTopCast)
	if record.Id == 0 {
		record.Id = MovieID(record.Source, record.Title, record.ReleaseYear)
	}
}

func compactNames(names []string, limit int) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		out = append(out, n)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}
