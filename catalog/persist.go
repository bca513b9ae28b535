package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/poiesic/moviesearch/storage"
)

// Save writes the catalog rows, vectors and manifest to repo, replacing
// whatever was stored before.
func Save(ctx context.Context, repo storage.CatalogRepository, cat *Catalog) error {
	return repo.ReplaceCatalog(ctx, cat.Records(), cat.Vectors(), cat.Manifest())
}

// Load reads a stored catalog. Rows and vectors are loaded together; if the
// manifest, row count and vector count disagree the catalog is returned
// keyword-only rather than failing. Returns ErrNoCatalog when nothing has
// been built.
func Load(ctx context.Context, repo storage.CatalogRepository, logger *slog.Logger) (*Catalog, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "catalog-loader")

	manifest, err := repo.Manifest(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNoCatalog
		}
		return nil, err
	}

	records, err := repo.LoadMovies(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading catalog rows: %w", err)
	}

	vectors, err := repo.LoadVectors(ctx)
	if err != nil {
		logger.Warn("failed to load vectors, serving keyword-only", "err", err)
		vectors = nil
	}

	var reason string
	switch {
	case manifest.Count != len(records):
		reason = fmt.Sprintf("manifest lists %d rows, found %d", manifest.Count, len(records))
	case manifest.VectorCount != len(vectors):
		reason = fmt.Sprintf("manifest lists %d vectors, found %d", manifest.VectorCount, len(vectors))
	}

	if reason != "" {
		logger.Warn("stored catalog is misaligned, serving keyword-only", "reason", reason)
		cat := New(records, nil, *manifest)
		cat.degradedReason = reason
		return cat, nil
	}

	cat := New(records, vectors, *manifest)
	if !cat.Semantic() {
		logger.Warn("catalog is keyword-only", "reason", cat.DegradedReason())
	}
	logger.Info("catalog loaded", "records", cat.Len(), "capability", cat.Capability().String())
	return cat, nil
}
