package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIDFromContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "same content produces same ID", content: "test content"},
		{name: "empty string", content: ""},
		{name: "long content", content: "This is a much longer piece of content that should still hash consistently"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, IDFromContent(tt.content), IDFromContent(tt.content))
		})
	}
}

func TestIDFromContent_Different(t *testing.T) {
	assert.NotEqual(t, IDFromContent("content1"), IDFromContent("content2"))
}

func TestMovieID(t *testing.T) {
	t.Run("case and whitespace insensitive title", func(t *testing.T) {
		assert.Equal(t,
			MovieID(SourceBollywood, "3 Idiots", "2009"),
			MovieID(SourceBollywood, "  3 idiots ", "2009"))
	})

	t.Run("source distinguishes", func(t *testing.T) {
		assert.NotEqual(t,
			MovieID(SourceBollywood, "Queen", "2014"),
			MovieID(SourceHollywood, "Queen", "2014"))
	})

	t.Run("year distinguishes remakes", func(t *testing.T) {
		assert.NotEqual(t,
			MovieID(SourceHollywood, "Dune", "1984"),
			MovieID(SourceHollywood, "Dune", "2021"))
	})
}

func TestParseSource(t *testing.T) {
	tests := []struct {
		in     string
		want   Source
		wantOK bool
	}{
		{"Hollywood", SourceHollywood, true},
		{"bollywood", SourceBollywood, true},
		{"  BOLLYWOOD ", SourceBollywood, true},
		{"Tollywood", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseSource(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSource_String(t *testing.T) {
	assert.Equal(t, "Hollywood", SourceHollywood.String())
	assert.Equal(t, "Bollywood", SourceBollywood.String())
	assert.Equal(t, "", Source(42).String())
}

func TestMovieRecord_Rating(t *testing.T) {
	rated := &MovieRecord{Title: "Inception", VoteAverage: RatingOf(8.8)}
	assert.True(t, rated.HasRating())
	assert.Equal(t, 8.8, rated.Rating())

	unrated := &MovieRecord{Title: "Unknown"}
	assert.False(t, unrated.HasRating())
	assert.Equal(t, 0.0, unrated.Rating())
}

func TestScoreKind_String(t *testing.T) {
	assert.Equal(t, "semantic", ScoreKindSemantic.String())
	assert.Equal(t, "keyword", ScoreKindKeyword.String())
	assert.Equal(t, "rating", ScoreKindRating.String())
	assert.Equal(t, "unranked", ScoreKindUnranked.String())
	assert.Equal(t, "unknown", ScoreKind(0).String())
}
