package moviesearch

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/poiesic/moviesearch/ai"
	"github.com/poiesic/moviesearch/ai/mock"
	"github.com/poiesic/moviesearch/catalog"
	"github.com/poiesic/moviesearch/core"
	"github.com/poiesic/moviesearch/dataset"
	"github.com/poiesic/moviesearch/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBuildConfig() catalog.BuildConfig {
	return catalog.BuildConfig{BatchSize: 4, PoolSize: 2, MaxRetries: 1, RetryDelay: time.Millisecond, ReportInterval: 1}
}

func openTestEngine(t *testing.T, path string, opts ...Option) *Engine {
	t.Helper()
	if path == "" {
		opts = append(opts, WithInMemory())
	}
	opts = append([]Option{WithBuildConfig(testBuildConfig())}, opts...)
	e, err := Open(context.Background(), path, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { e.Close() })
	return e
}

// renamedProvider reports a different model name than the provider it wraps.
type renamedProvider struct {
	ai.AIProvider
	model string
}

func (p *renamedProvider) Model() string { return p.model }

func TestOpen(t *testing.T) {
	t.Run("empty store has no catalog", func(t *testing.T) {
		e := openTestEngine(t, "", WithProvider(mock.NewMockProvider()))

		assert.Nil(t, e.Catalog())
		assert.False(t, e.Semantic())

		_, err := e.Search(context.Background(), "comedy", 5)
		assert.ErrorIs(t, err, ErrCatalogUnavailable)
		_, err = e.Recommend(core.SourceBollywood, "", 5)
		assert.ErrorIs(t, err, ErrCatalogUnavailable)
		_, err = e.Analyze("comedy")
		assert.ErrorIs(t, err, ErrCatalogUnavailable)
		assert.ErrorIs(t, e.ExportSnapshot(filepath.Join(t.TempDir(), "x.msgpack")), ErrCatalogUnavailable)
	})

	t.Run("invalid path", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "not_a_dir")
		require.NoError(t, os.WriteFile(file, []byte("test"), 0o644))

		e, err := Open(context.Background(), file, WithKeywordOnly())
		assert.Error(t, err)
		assert.Nil(t, e)
	})

	t.Run("invalid AI config", func(t *testing.T) {
		cfg := ai.NewConfig(ai.WithEmbeddingModel(""))
		e, err := Open(context.Background(), "", WithInMemory(), WithAIConfig(cfg))
		assert.Error(t, err)
		assert.Nil(t, e)
	})

	t.Run("keyword only closes supplied provider", func(t *testing.T) {
		provider := mock.NewMockProvider()
		openTestEngine(t, "", WithProvider(provider), WithKeywordOnly())
		assert.True(t, provider.(*mock.MockProvider).Closed())
	})
}

func TestEngine_RebuildAndSearch(t *testing.T) {
	var progress bytes.Buffer
	e := openTestEngine(t, "", WithProvider(mock.NewMockProvider()), WithProgress(&progress), WithLogger(nil))
	ctx := context.Background()

	cat, err := e.Rebuild(ctx, dataset.Sample())
	require.NoError(t, err)
	require.Equal(t, 10, cat.Len())
	assert.True(t, cat.Semantic())
	assert.True(t, e.Semantic())
	assert.Same(t, cat, e.Catalog())
	assert.Contains(t, progress.String(), "Embedding: 10/10")

	res, err := e.Search(ctx, "funny Bollywood movies", 5)
	require.NoError(t, err)
	assert.Equal(t, search.OutcomeSemantic, res.Outcome)
	require.NotEmpty(t, res.Results)
	assert.LessOrEqual(t, len(res.Results), 5)
	for i, r := range res.Results {
		assert.Equal(t, core.SourceBollywood, r.Record.Source)
		if i > 0 {
			assert.GreaterOrEqual(t, res.Results[i-1].Score, r.Score)
		}
	}

	res, err = e.SearchBySource(ctx, "space", core.SourceHollywood, 3)
	require.NoError(t, err)
	for _, r := range res.Results {
		assert.Equal(t, core.SourceHollywood, r.Record.Source)
	}

	_, err = e.SearchBySource(ctx, "space", core.Source(42), 3)
	assert.ErrorIs(t, err, core.ErrInvalidSource)

	rec, err := e.Recommend(core.SourceHollywood, "Sci-Fi", 2)
	require.NoError(t, err)
	require.Len(t, rec.Results, 2)
	assert.Equal(t, "Inception", rec.Results[0].Record.Title)
	assert.Equal(t, "Interstellar", rec.Results[1].Record.Title)

	a, err := e.Analyze("movies directed by Christopher Nolan")
	require.NoError(t, err)
	assert.Equal(t, "search by director", a.Intent.Primary)
	assert.Equal(t, []string{"Christopher Nolan"}, a.Entities.Persons)
}

func TestEngine_KeywordOnly(t *testing.T) {
	e := openTestEngine(t, "", WithKeywordOnly())
	ctx := context.Background()

	cat, err := e.Rebuild(ctx, dataset.Sample())
	require.NoError(t, err)
	assert.False(t, cat.Semantic())
	assert.Equal(t, catalog.CapabilityKeywordOnly, cat.Capability())

	res, err := e.Search(ctx, "funny Bollywood movies", 5)
	require.NoError(t, err)
	assert.Equal(t, search.OutcomeKeyword, res.Outcome)
	require.NotEmpty(t, res.Results)
	for _, r := range res.Results {
		assert.Equal(t, core.SourceBollywood, r.Record.Source)
	}
	assert.Equal(t, "3 Idiots", res.Results[0].Record.Title)
}

func TestEngine_EmbeddingOutageDegradesBuild(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(_ context.Context, _ []string) ([][]float32, error) {
		return nil, errors.New("connection refused")
	}
	e := openTestEngine(t, "", WithProvider(mock.NewMockProviderWithEmbedder(embedder)))

	cat, err := e.Rebuild(context.Background(), dataset.Sample())
	require.NoError(t, err)
	assert.False(t, cat.Semantic())
	assert.NotEmpty(t, cat.DegradedReason())

	res, err := e.Search(context.Background(), "hera pheri", 3)
	require.NoError(t, err)
	assert.Equal(t, search.OutcomeKeyword, res.Outcome)
	assert.Equal(t, "Hera Pheri", res.Results[0].Record.Title)
}

func TestEngine_PersistsAcrossReopen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "catalog")
	ctx := context.Background()

	first, err := Open(ctx, dir, WithProvider(mock.NewMockProvider()), WithBuildConfig(testBuildConfig()))
	require.NoError(t, err)
	_, err = first.Rebuild(ctx, dataset.Sample())
	require.NoError(t, err)
	require.NoError(t, first.Close())
	require.NoError(t, first.Close())

	_, err = first.Search(ctx, "comedy", 3)
	assert.ErrorIs(t, err, ErrEngineClosed)

	second := openTestEngine(t, dir, WithProvider(mock.NewMockProvider()))
	require.NotNil(t, second.Catalog())
	assert.Equal(t, 10, second.Catalog().Len())
	assert.True(t, second.Semantic())
	assert.Equal(t, mock.MockModel, second.Catalog().Manifest().EmbeddingModel)
}

func TestEngine_ModelMismatchServesKeywordOnly(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "catalog")
	ctx := context.Background()

	first, err := Open(ctx, dir, WithProvider(mock.NewMockProvider()), WithBuildConfig(testBuildConfig()))
	require.NoError(t, err)
	_, err = first.Rebuild(ctx, dataset.Sample())
	require.NoError(t, err)
	require.NoError(t, first.Close())

	other := &renamedProvider{AIProvider: mock.NewMockProvider(), model: "other-model"}
	second := openTestEngine(t, dir, WithProvider(other))

	assert.True(t, second.Catalog().Semantic())
	assert.False(t, second.Semantic())

	res, err := second.Search(ctx, "hera pheri", 3)
	require.NoError(t, err)
	assert.Equal(t, search.OutcomeKeyword, res.Outcome)
}

func TestEngine_SnapshotExportImport(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "catalog.msgpack")

	source := openTestEngine(t, "", WithProvider(mock.NewMockProvider()))
	built, err := source.Rebuild(ctx, dataset.Sample())
	require.NoError(t, err)
	require.NoError(t, source.ExportSnapshot(path))

	target := openTestEngine(t, "", WithProvider(mock.NewMockProvider()))
	imported, err := target.ImportSnapshot(ctx, path)
	require.NoError(t, err)

	assert.Equal(t, built.Len(), imported.Len())
	assert.True(t, target.Semantic())
	assert.Equal(t, built.Vectors(), imported.Vectors())

	want, err := source.Search(ctx, "wrestling father", 3)
	require.NoError(t, err)
	got, err := target.Search(ctx, "wrestling father", 3)
	require.NoError(t, err)
	require.Equal(t, len(want.Results), len(got.Results))
	for i := range want.Results {
		assert.Equal(t, want.Results[i].Record.Title, got.Results[i].Record.Title)
	}

	_, err = target.ImportSnapshot(ctx, filepath.Join(t.TempDir(), "missing.msgpack"))
	assert.Error(t, err)
}

func TestEngine_RebuildCanceled(t *testing.T) {
	e := openTestEngine(t, "", WithProvider(mock.NewMockProvider()))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Rebuild(ctx, dataset.Sample())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, e.Catalog())
}

func TestEngine_Reembed(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "catalog")
	ctx := context.Background()

	first, err := Open(ctx, dir, WithProvider(mock.NewMockProvider()), WithBuildConfig(testBuildConfig()))
	require.NoError(t, err)
	_, err = first.Reembed(ctx)
	assert.ErrorIs(t, err, ErrCatalogUnavailable)
	_, err = first.Rebuild(ctx, dataset.Sample())
	require.NoError(t, err)
	require.NoError(t, first.Close())

	other := &renamedProvider{AIProvider: mock.NewMockProvider(), model: "other-model"}
	second := openTestEngine(t, dir, WithProvider(other))
	require.False(t, second.Semantic())

	cat, err := second.Reembed(ctx)
	require.NoError(t, err)
	assert.Equal(t, 10, cat.Len())
	assert.Equal(t, "other-model", cat.Manifest().EmbeddingModel)
	assert.True(t, second.Semantic())
}
