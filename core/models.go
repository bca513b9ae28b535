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
	"encoding/binary"
	"strings"

	"github.com/go-crypt/x/blake2b"
)

const (
	// MaxDirectors is the number of directors kept per record.
	MaxDirectors = 3

	// MaxTopCast is the number of billed cast members kept per record.
	MaxTopCast = 5

	// MissingOverview is the placeholder stored when a dataset has no synopsis.
	MissingOverview = "No description available"
)

type ID uint64

// IDFromContent derives a stable 64-bit identifier from text.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// MovieID derives the identifier of a film from its provenance, title and year.
func MovieID(source Source, title, releaseYear string) ID {
	return IDFromContent(source.String() + "|" + strings.ToLower(strings.TrimSpace(title)) + "|" + releaseYear)
}

type Source int

const (
	// SourceHollywood tags American productions.
	SourceHollywood Source = iota + 1
	// SourceBollywood tags Indian Hindi-language productions.
	SourceBollywood
)

func (s Source) String() string {
	switch s {
	case SourceHollywood:
		return "Hollywood"
	case SourceBollywood:
		return "Bollywood"
	default:
		return ""
	}
}

// ParseSource maps a case-insensitive source name onto the enum.
func ParseSource(name string) (Source, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "hollywood":
		return SourceHollywood, true
	case "bollywood":
		return SourceBollywood, true
	default:
		return 0, false
	}
}

type MovieRecord struct {
	Id          ID
	Title       string
	Overview    string   // MissingOverview when the dataset has no synopsis, empty when unknown
	Genres      []string // Ordered genre labels
	Directors   []string // At most MaxDirectors
	TopCast     []string // At most MaxTopCast
	Source      Source
	ReleaseYear string   // Four-digit year or empty
	VoteAverage *float64 // Nil when the dataset has no rating
	VoteCount   int
}

// HasRating reports whether the record carries a vote average.
func (m *MovieRecord) HasRating() bool {
	return m.VoteAverage != nil
}

// Rating returns the vote average or zero when absent.
func (m *MovieRecord) Rating() float64 {
	if m.VoteAverage == nil {
		return 0
	}
	return *m.VoteAverage
}

// RatingOf is a convenience for building records with a vote average.
func RatingOf(v float64) *float64 {
	return &v
}

type ScoreKind int

const (
	// ScoreKindSemantic scores are inner products between unit vectors.
	ScoreKindSemantic ScoreKind = iota + 1
	// ScoreKindKeyword scores are additive keyword boosts.
	ScoreKindKeyword
	// ScoreKindRating scores are vote averages.
	ScoreKindRating
	// ScoreKindUnranked marks filler rows returned when nothing scored.
	ScoreKindUnranked
)

func (k ScoreKind) String() string {
	switch k {
	case ScoreKindSemantic:
		return "semantic"
	case ScoreKindKeyword:
		return "keyword"
	case ScoreKindRating:
		return "rating"
	case ScoreKindUnranked:
		return "unranked"
	default:
		return "unknown"
	}
}

type SearchResult struct {
	Record   *MovieRecord
	Position int // Row of Record in the catalog
	Score    float32
	Kind     ScoreKind
}

// Manifest describes a persisted catalog build.
type Manifest struct {
	Count          int    // Number of catalog rows
	VectorCount    int    // Number of stored vectors, zero for keyword-only builds
	Dimensions     int    // Vector length, zero for keyword-only builds
	EmbeddingModel string // Model that produced the vectors
	BuiltAtMicros  int64  // Build time in Unix microseconds
}
