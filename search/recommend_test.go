package search

import (
	"testing"

	"github.com/poiesic/moviesearch/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecommend_ByRating(t *testing.T) {
	records := []*core.MovieRecord{
		{Title: "Interstellar", Genres: []string{"Sci-Fi"}, Source: core.SourceHollywood, VoteAverage: core.RatingOf(8.6)},
		{Title: "Inception", Genres: []string{"Sci-Fi"}, Source: core.SourceHollywood, VoteAverage: core.RatingOf(8.8)},
		{Title: "Dangal", Genres: []string{"Sports"}, Source: core.SourceBollywood, VoteAverage: core.RatingOf(8.3)},
	}
	s, err := NewSearcher(keywordCatalog(records), nil)
	require.NoError(t, err)

	res := s.Recommend(core.SourceHollywood, "Sci-Fi", 2)

	assert.Equal(t, OutcomeRating, res.Outcome)
	assert.Equal(t, []string{"Inception", "Interstellar"}, titles(res.Results))
	assert.Equal(t, core.ScoreKindRating, res.Results[0].Kind)
	assert.InDelta(t, 8.8, res.Results[0].Score, 1e-5)
	assert.Equal(t, 1, res.Results[0].Position)
}

func TestRecommend_Filters(t *testing.T) {
	s, err := NewSearcher(keywordCatalog(testMovies()), nil)
	require.NoError(t, err)

	tests := []struct {
		name   string
		source core.Source
		genre  string
		topK   int
		want   []string
	}{
		{"source only", core.SourceBollywood, "", 10, []string{"3 Idiots", "Dangal", "Queen"}},
		{"genre is case-insensitive", core.SourceBollywood, "comedy", 10, []string{"3 Idiots", "Queen"}},
		{"genre substring", core.SourceHollywood, "sci", 10, []string{"Inception"}},
		{"top k truncates", core.SourceHollywood, "", 1, []string{"The Dark Knight"}},
		{"no match", core.SourceHollywood, "Romance", 5, []string{}},
		{"zero top k", core.SourceBollywood, "", 0, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := s.Recommend(tt.source, tt.genre, tt.topK)
			assert.Equal(t, tt.want, titles(res.Results))
			assertNonIncreasing(t, res.Results)
		})
	}
}

func TestRecommend_UnratedLastAndStable(t *testing.T) {
	records := []*core.MovieRecord{
		{Title: "Unrated", Source: core.SourceHollywood},
		{Title: "First Seven", Source: core.SourceHollywood, VoteAverage: core.RatingOf(7)},
		{Title: "Second Seven", Source: core.SourceHollywood, VoteAverage: core.RatingOf(7)},
		{Title: "Low", Source: core.SourceHollywood, VoteAverage: core.RatingOf(2)},
	}
	s, err := NewSearcher(keywordCatalog(records), nil)
	require.NoError(t, err)

	res := s.Recommend(core.SourceHollywood, "", 10)

	assert.Equal(t, []string{"First Seven", "Second Seven", "Low", "Unrated"}, titles(res.Results))
}
