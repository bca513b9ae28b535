package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/moviesearch/ai"
	"github.com/poiesic/moviesearch/core"
	"github.com/poiesic/moviesearch/synthesis"
)

// BuildConfig tunes the embedding pass of a build.
type BuildConfig struct {
	BatchSize      int           // Descriptions per embedding request
	ReportInterval int           // Report progress every N movies
	MaxRetries     int           // Attempts per batch
	RetryDelay     time.Duration // Base backoff delay, doubled per retry
	PoolSize       int           // Concurrent embedding requests
}

// DefaultBuildConfig returns the default build settings.
func DefaultBuildConfig() BuildConfig {
	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	return BuildConfig{
		BatchSize:      64,
		ReportInterval: 256,
		MaxRetries:     3,
		RetryDelay:     500 * time.Millisecond,
		PoolSize:       poolSize,
	}
}

// Builder runs the offline pipeline: validate records, synthesize
// descriptions, embed them in batches on a worker pool and build the index.
type Builder struct {
	synthesizer *synthesis.Synthesizer
	embedder    ai.Embedder
	model       string
	config      BuildConfig
	progress    io.Writer
	pool        *ants.Pool
	logger      *slog.Logger
}

// Option configures a Builder.
type Option func(*Builder) error

// WithEmbedder sets the embedder and the model name recorded in the
// manifest. Without an embedder every build is keyword-only.
func WithEmbedder(embedder ai.Embedder, model string) Option {
	return func(b *Builder) error {
		b.embedder = embedder
		b.model = model
		return nil
	}
}

// WithSynthesizer replaces the default text synthesizer.
func WithSynthesizer(s *synthesis.Synthesizer) Option {
	return func(b *Builder) error {
		if s != nil {
			b.synthesizer = s
		}
		return nil
	}
}

// WithBuildConfig overrides the build settings. Zero fields keep defaults.
func WithBuildConfig(cfg BuildConfig) Option {
	return func(b *Builder) error {
		if cfg.BatchSize > 0 {
			b.config.BatchSize = cfg.BatchSize
		}
		if cfg.ReportInterval > 0 {
			b.config.ReportInterval = cfg.ReportInterval
		}
		if cfg.MaxRetries > 0 {
			b.config.MaxRetries = cfg.MaxRetries
		}
		if cfg.RetryDelay > 0 {
			b.config.RetryDelay = cfg.RetryDelay
		}
		if cfg.PoolSize > 0 {
			b.config.PoolSize = cfg.PoolSize
		}
		return nil
	}
}

// WithProgress enables progress output on w.
func WithProgress(w io.Writer) Option {
	return func(b *Builder) error {
		b.progress = w
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) error {
		if logger == nil {
			logger = slog.Default()
		}
		b.logger = logger
		return nil
	}
}

// NewBuilder creates a builder. Call Release when done to free the pool.
func NewBuilder(opts ...Option) (*Builder, error) {
	b := &Builder{
		config: DefaultBuildConfig(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(b); err != nil {
			return nil, err
		}
	}
	b.logger = b.logger.With("component", "catalog-builder")
	if b.synthesizer == nil {
		b.synthesizer = synthesis.New(synthesis.WithLogger(b.logger))
	}

	pool, err := ants.NewPool(b.config.PoolSize)
	if err != nil {
		return nil, err
	}
	b.pool = pool
	return b, nil
}

// Release frees the worker pool.
func (b *Builder) Release() {
	if b.pool != nil {
		b.pool.Release()
	}
}

// Config returns the effective build settings.
func (b *Builder) Config() BuildConfig {
	return b.config
}

// Build turns raw records into a catalog. Invalid records are dropped with
// a warning. Embedding failures degrade the result to keyword-only instead of
// failing; only context cancellation aborts the build.
func (b *Builder) Build(ctx context.Context, records []*core.MovieRecord) (*Catalog, error) {
	valid := b.prepare(records)
	descriptions := b.synthesizer.SynthesizeAll(valid)
	manifest := core.Manifest{
		EmbeddingModel: b.model,
		BuiltAtMicros:  time.Now().UTC().UnixMicro(),
	}

	if b.embedder == nil {
		b.logger.Warn("no embedder configured, building keyword-only catalog", "records", len(valid))
		cat := New(valid, nil, manifest).withDescriptions(descriptions)
		cat.degradedReason = "no embedder configured"
		return cat, nil
	}

	vectors, err := b.embedAll(ctx, descriptions)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		b.logger.Warn("embedding failed, building keyword-only catalog", "err", err)
		cat := New(valid, nil, manifest).withDescriptions(descriptions)
		cat.degradedReason = err.Error()
		return cat, nil
	}

	cat := New(valid, vectors, manifest).withDescriptions(descriptions)
	if !cat.Semantic() {
		b.logger.Warn("catalog is keyword-only", "reason", cat.DegradedReason())
	}
	b.logger.Info("catalog built", "records", cat.Len(), "capability", cat.Capability().String(),
		"dimensions", cat.Manifest().Dimensions)
	return cat, nil
}

// prepare normalizes records into copies and drops the invalid ones.
func (b *Builder) prepare(records []*core.MovieRecord) []*core.MovieRecord {
	valid := make([]*core.MovieRecord, 0, len(records))
	for i, r := range records {
		if r == nil {
			b.logger.Warn("dropping nil record", "row", i)
			continue
		}
		record := *r
		core.NormalizeMovieRecord(&record)
		if err := core.ValidateMovieRecord(&record); err != nil {
			b.logger.Warn("dropping invalid record", "row", i, "title", record.Title, "err", err)
			continue
		}
		valid = append(valid, &record)
	}
	return valid
}

// embedAll embeds descriptions in batches on the pool. Results are written
// into their row positions so output order matches input order.
func (b *Builder) embedAll(ctx context.Context, descriptions []string) ([][]float32, error) {
	vectors := make([][]float32, len(descriptions))
	if len(descriptions) == 0 {
		return vectors, nil
	}

	var tracker *ProgressTracker
	if b.progress != nil {
		tracker = NewProgressTracker(b.progress, len(descriptions), b.config.ReportInterval)
		tracker.Start()
		defer tracker.Finish()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	fail := func(err error) {
		mu.Lock()
		defer mu.Unlock()
		if firstErr == nil {
			firstErr = err
			cancel()
		}
	}

	for start := 0; start < len(descriptions); start += b.config.BatchSize {
		end := min(start+b.config.BatchSize, len(descriptions))
		batch := descriptions[start:end]
		offset := start

		wg.Add(1)
		err := b.pool.Submit(func() {
			defer wg.Done()
			embedded, err := b.embedBatch(ctx, batch)
			if err != nil {
				fail(fmt.Errorf("batch at row %d: %w", offset, err))
				return
			}
			copy(vectors[offset:], embedded)
			if tracker != nil {
				tracker.Increment(len(batch))
			}
		})
		if err != nil {
			wg.Done()
			fail(err)
			break
		}
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return vectors, nil
}

// embedBatch embeds one batch with retry and checks the result shape.
func (b *Builder) embedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	var embedded [][]float32
	logger := b.logger.With("batch_size", len(texts))
	err := retryWithBackoff(ctx, logger, b.config.MaxRetries, b.config.RetryDelay, func() error {
		var err error
		embedded, err = b.embedder.EmbedTexts(ctx, texts)
		return err
	})
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to generate embeddings after %d attempts: %w", b.config.MaxRetries, err)
	}
	if len(embedded) != len(texts) {
		return nil, fmt.Errorf("%w: expected %d, got %d", ErrEmbeddingCountMismatch, len(texts), len(embedded))
	}
	for i := range embedded {
		embedded[i] = core.NormalizeVector(embedded[i])
	}
	return embedded, nil
}
