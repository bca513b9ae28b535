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


package moviesearch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/poiesic/moviesearch/ai"
	"github.com/poiesic/moviesearch/ai/openai"
	"github.com/poiesic/moviesearch/catalog"
	"github.com/poiesic/moviesearch/core"
	"github.com/poiesic/moviesearch/search"
	"github.com/poiesic/moviesearch/storage"
	"github.com/poiesic/moviesearch/storage/badger"
)

var (
	// ErrCatalogUnavailable is returned by query operations before a catalog
	// has been built or loaded.
	ErrCatalogUnavailable = search.ErrCatalogUnavailable

	// ErrEngineClosed is returned by operations on a closed engine.
	ErrEngineClosed = errors.New("engine is closed")
)

// Engine owns the catalog store, the embedding provider and the searcher
// over the current catalog. Queries are safe to run concurrently with
// Rebuild; they see either the old or the new catalog.
type Engine struct {
	backend     *badger.Backend
	repo        storage.CatalogRepository
	provider    ai.AIProvider
	buildConfig catalog.BuildConfig
	progress    io.Writer
	searchOpts  []search.Option
	logger      *slog.Logger

	searcher  atomic.Pointer[search.Searcher]
	rebuildMu sync.Mutex
	closed    atomic.Bool
}

// Option configures an Engine.
type Option func(*engineOptions)

type engineOptions struct {
	aiConfig    *ai.Config
	provider    ai.AIProvider
	keywordOnly bool
	inMemory    bool
	buildConfig catalog.BuildConfig
	progress    io.Writer
	searchOpts  []search.Option
	logger      *slog.Logger
}

// WithAIConfig sets the embedding endpoint used to build the default
// provider.
func WithAIConfig(config *ai.Config) Option {
	return func(o *engineOptions) {
		o.aiConfig = config
	}
}

// WithProvider supplies the embedding provider directly. The engine takes
// ownership and closes it.
func WithProvider(provider ai.AIProvider) Option {
	return func(o *engineOptions) {
		o.provider = provider
	}
}

// WithKeywordOnly disables embedding entirely. Builds produce keyword-only
// catalogs and queries never take the semantic path.
func WithKeywordOnly() Option {
	return func(o *engineOptions) {
		o.keywordOnly = true
	}
}

// WithInMemory keeps the catalog store in memory; the path is ignored.
func WithInMemory() Option {
	return func(o *engineOptions) {
		o.inMemory = true
	}
}

// WithBuildConfig tunes catalog builds.
func WithBuildConfig(cfg catalog.BuildConfig) Option {
	return func(o *engineOptions) {
		o.buildConfig = cfg
	}
}

// WithProgress reports build progress to w.
func WithProgress(w io.Writer) Option {
	return func(o *engineOptions) {
		o.progress = w
	}
}

// WithSearchOptions passes options to every searcher the engine creates.
func WithSearchOptions(opts ...search.Option) Option {
	return func(o *engineOptions) {
		o.searchOpts = append(o.searchOpts, opts...)
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *engineOptions) {
		if logger == nil {
			logger = slog.Default()
		}
		o.logger = logger
	}
}

// Open opens the catalog store at path and loads the stored catalog, if any.
// Without WithProvider or WithKeywordOnly an OpenAI-compatible provider is
// created from the AI config.
func Open(ctx context.Context, path string, opts ...Option) (*Engine, error) {
	options := &engineOptions{
		aiConfig:    ai.DefaultConfig(),
		buildConfig: catalog.DefaultBuildConfig(),
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(path, options.inMemory)
	if err != nil {
		return nil, err
	}

	repo, err := badger.NewCatalogRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	provider := options.provider
	if options.keywordOnly {
		if provider != nil {
			provider.Close()
		}
		provider = nil
	} else if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			repo.Close()
			backend.Close()
			return nil, err
		}
	}

	e := &Engine{
		backend:     backend,
		repo:        repo,
		provider:    provider,
		buildConfig: options.buildConfig,
		progress:    options.progress,
		searchOpts:  options.searchOpts,
		logger:      options.logger.With("component", "engine"),
	}

	cat, err := catalog.Load(ctx, repo, options.logger)
	switch {
	case errors.Is(err, catalog.ErrNoCatalog):
		e.logger.Info("no stored catalog, build one before searching", "path", path)
	case err != nil:
		e.Close()
		return nil, err
	default:
		if err := e.install(cat); err != nil {
			e.Close()
			return nil, err
		}
	}

	return e, nil
}

// install swaps in a searcher over cat.
func (e *Engine) install(cat *catalog.Catalog) error {
	var embedder ai.Embedder
	if e.provider != nil {
		embedder = e.provider.Embedder()
		if built := cat.Manifest().EmbeddingModel; cat.Semantic() && built != e.provider.Model() {
			e.logger.Warn("catalog was embedded with a different model, serving keyword-only",
				"catalog_model", built, "provider_model", e.provider.Model())
			embedder = nil
		}
	}

	opts := append([]search.Option{search.WithLogger(e.logger)}, e.searchOpts...)
	s, err := search.NewSearcher(cat, embedder, opts...)
	if err != nil {
		return err
	}
	e.searcher.Store(s)
	return nil
}

func (e *Engine) current() (*search.Searcher, error) {
	if e.closed.Load() {
		return nil, ErrEngineClosed
	}
	s := e.searcher.Load()
	if s == nil {
		return nil, ErrCatalogUnavailable
	}
	return s, nil
}

// Catalog returns the catalog being served, or nil before one is built.
func (e *Engine) Catalog() *catalog.Catalog {
	if s := e.searcher.Load(); s != nil {
		return s.Catalog()
	}
	return nil
}

// Rebuild synthesizes and embeds records into a new catalog, persists it and
// starts serving it. Embedding failures yield a keyword-only catalog rather
// than an error.
func (e *Engine) Rebuild(ctx context.Context, records []*core.MovieRecord) (*catalog.Catalog, error) {
	if e.closed.Load() {
		return nil, ErrEngineClosed
	}
	e.rebuildMu.Lock()
	defer e.rebuildMu.Unlock()

	opts := []catalog.Option{
		catalog.WithBuildConfig(e.buildConfig),
		catalog.WithLogger(e.logger),
	}
	if e.provider != nil {
		opts = append(opts, catalog.WithEmbedder(e.provider.Embedder(), e.provider.Model()))
	}
	if e.progress != nil {
		opts = append(opts, catalog.WithProgress(e.progress))
	}

	builder, err := catalog.NewBuilder(opts...)
	if err != nil {
		return nil, err
	}
	defer builder.Release()

	cat, err := builder.Build(ctx, records)
	if err != nil {
		return nil, err
	}
	if err := catalog.Save(ctx, e.repo, cat); err != nil {
		return nil, fmt.Errorf("saving catalog: %w", err)
	}
	if err := e.install(cat); err != nil {
		return nil, err
	}

	e.logger.Info("catalog rebuilt", "records", cat.Len(), "capability", cat.Capability().String())
	return cat, nil
}

// Reembed rebuilds the stored catalog from its own rows with the current
// provider, for example after switching embedding models.
func (e *Engine) Reembed(ctx context.Context) (*catalog.Catalog, error) {
	if _, err := e.current(); err != nil {
		return nil, err
	}
	return e.Rebuild(ctx, e.Catalog().Records())
}

// Search ranks the current catalog for query.
func (e *Engine) Search(ctx context.Context, query string, topK int) (*search.RankedResult, error) {
	s, err := e.current()
	if err != nil {
		return nil, err
	}
	return s.Search(ctx, query, topK)
}

// SearchBySource ranks the current catalog for query, keeping only rows
// from source.
func (e *Engine) SearchBySource(ctx context.Context, query string, source core.Source, topK int) (*search.RankedResult, error) {
	if err := core.ValidateSource(source); err != nil {
		return nil, err
	}
	s, err := e.current()
	if err != nil {
		return nil, err
	}
	return s.SearchBySource(ctx, query, source, topK)
}

// Recommend returns the best-rated rows of source, optionally restricted to
// a genre.
func (e *Engine) Recommend(source core.Source, genre string, topK int) (*search.RankedResult, error) {
	if err := core.ValidateSource(source); err != nil {
		return nil, err
	}
	s, err := e.current()
	if err != nil {
		return nil, err
	}
	return s.Recommend(source, genre, topK), nil
}

// Analyze describes query without ranking.
func (e *Engine) Analyze(query string) (*search.Analysis, error) {
	s, err := e.current()
	if err != nil {
		return nil, err
	}
	return s.Analyze(query), nil
}

// ExportSnapshot writes the current catalog to a portable snapshot file.
func (e *Engine) ExportSnapshot(path string) error {
	s, err := e.current()
	if err != nil {
		return err
	}
	return catalog.SaveSnapshot(path, s.Catalog())
}

// ImportSnapshot replaces the stored catalog with a snapshot file and starts
// serving it.
func (e *Engine) ImportSnapshot(ctx context.Context, path string) (*catalog.Catalog, error) {
	if e.closed.Load() {
		return nil, ErrEngineClosed
	}
	e.rebuildMu.Lock()
	defer e.rebuildMu.Unlock()

	cat, err := catalog.LoadSnapshot(path)
	if err != nil {
		return nil, err
	}
	if err := catalog.Save(ctx, e.repo, cat); err != nil {
		return nil, fmt.Errorf("saving catalog: %w", err)
	}
	if err := e.install(cat); err != nil {
		return nil, err
	}
	return cat, nil
}

// Semantic reports whether queries can currently take the semantic path.
func (e *Engine) Semantic() bool {
	s := e.searcher.Load()
	return s != nil && s.Semantic()
}

func (e *Engine) Close() error {
	if !e.closed.CompareAndSwap(false, true) {
		return nil
	}

	if e.provider != nil {
		if err := e.provider.Close(); err != nil {
			e.logger.Error("error closing AI provider", "err", err)
		}
	}

	if err := e.repo.Close(); err != nil {
		e.logger.Error("error closing catalog repository", "err", err)
		return err
	}

	if err := e.backend.Close(); err != nil {
		e.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}
