package storage

import (
	"testing"

	"github.com/poiesic/moviesearch/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMovieRecord_RatingPresenceSurvives(t *testing.T) {
	rated := &core.MovieRecord{
		Id:          core.ID(7),
		Title:       "Dangal",
		Genres:      []string{"Sports", "Drama"},
		Source:      core.SourceBollywood,
		VoteAverage: core.RatingOf(8.3),
		VoteCount:   150,
	}
	unrated := &core.MovieRecord{Id: core.ID(8), Title: "Zero", Source: core.SourceHollywood}

	decoded, err := UnmarshalMovieRecord(MarshalMovieRecord(rated))
	require.NoError(t, err)
	require.True(t, decoded.HasRating())
	assert.InDelta(t, 8.3, decoded.Rating(), 1e-12)
	assert.Equal(t, core.SourceBollywood, decoded.Source)
	assert.Equal(t, 150, decoded.VoteCount)

	decoded, err = UnmarshalMovieRecord(MarshalMovieRecord(unrated))
	require.NoError(t, err)
	assert.False(t, decoded.HasRating())
	assert.Empty(t, decoded.Genres)
}

func TestUnmarshal_TruncatedData(t *testing.T) {
	record := &core.MovieRecord{Id: core.ID(1), Title: "Interstellar", Overview: "Space.", Source: core.SourceHollywood}
	data := MarshalMovieRecord(record)

	_, err := UnmarshalMovieRecord(data[:len(data)/2])
	assert.ErrorIs(t, err, ErrSerializationFailed)

	vector := MarshalVector([]float32{0.1, 0.2, 0.3})
	_, err = UnmarshalVector(vector[:len(vector)-2])
	assert.ErrorIs(t, err, ErrSerializationFailed)

	_, err = UnmarshalManifest(nil)
	assert.ErrorIs(t, err, ErrSerializationFailed)
}

func TestVectorAndManifest(t *testing.T) {
	vector := []float32{0.6, -0.8, 0}
	decoded, err := UnmarshalVector(MarshalVector(vector))
	require.NoError(t, err)
	assert.Equal(t, vector, decoded)

	manifest := &core.Manifest{Count: 10, VectorCount: 10, Dimensions: 384, EmbeddingModel: "all-minilm", BuiltAtMicros: 1700000000000000}
	decodedManifest, err := UnmarshalManifest(MarshalManifest(manifest))
	require.NoError(t, err)
	assert.Equal(t, manifest, decodedManifest)
}
