package search

import (
	"slices"
	"strings"

	"github.com/poiesic/moviesearch/core"
)

// Recommend returns the topK best-rated rows of source. A non-empty genre
// keeps only rows with a genre containing it, case-insensitively. Rows
// without a rating rank last; ties keep catalog order.
func (s *Searcher) Recommend(source core.Source, genre string, topK int) *RankedResult {
	result := &RankedResult{
		Query:   strings.TrimSpace(source.String() + " " + genre),
		Outcome: OutcomeRating,
		Results: []*core.SearchResult{},
	}
	if topK <= 0 {
		return result
	}

	genre = strings.ToLower(genre)
	candidates := make([]*core.SearchResult, 0)
	for i, r := range s.catalog.Records() {
		if r.Source != source {
			continue
		}
		if genre != "" && !hasGenre(r, genre) {
			continue
		}
		var score float32
		if r.HasRating() {
			score = float32(r.Rating())
		}
		candidates = append(candidates, &core.SearchResult{
			Record:   r,
			Position: i,
			Score:    score,
			Kind:     core.ScoreKindRating,
		})
	}

	slices.SortStableFunc(candidates, compareRating)
	if len(candidates) > topK {
		candidates = candidates[:topK]
	}
	result.Results = candidates
	return result
}

func hasGenre(r *core.MovieRecord, genre string) bool {
	for _, g := range r.Genres {
		if strings.Contains(strings.ToLower(g), genre) {
			return true
		}
	}
	return false
}

func compareRating(a, b *core.SearchResult) int {
	ar, br := a.Record.HasRating(), b.Record.HasRating()
	switch {
	case ar && !br:
		return -1
	case !ar && br:
		return 1
	case !ar && !br:
		return 0
	}
	switch av, bv := a.Record.Rating(), b.Record.Rating(); {
	case av > bv:
		return -1
	case av < bv:
		return 1
	default:
		return 0
	}
}
