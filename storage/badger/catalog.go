package badger

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/moviesearch/core"
	"github.com/poiesic/moviesearch/storage"
)

// CatalogRepository implements storage.CatalogRepository for BadgerDB.
type CatalogRepository struct {
	backend *Backend
}

var _ storage.CatalogRepository = (*CatalogRepository)(nil)

// NewCatalogRepository creates a new CatalogRepository on an open backend.
// The backend remains owned by the caller.
func NewCatalogRepository(backend *Backend) (*CatalogRepository, error) {
	if backend == nil || backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}
	return &CatalogRepository{backend: backend}, nil
}

// OpenRepository opens an on-disk catalog repository at path.
// Caller must close both the repository and the backend when done.
func OpenRepository(path string) (storage.CatalogRepository, *Backend, error) {
	backend, err := OpenBackend(path, false)
	if err != nil {
		return nil, nil, err
	}

	repo, err := NewCatalogRepository(backend)
	if err != nil {
		backend.Close()
		return nil, nil, err
	}

	return repo, backend, nil
}

// Close is a no-op; the backend is closed by its owner.
func (r *CatalogRepository) Close() error {
	return nil
}

func (r *CatalogRepository) checkOpen() error {
	if r.backend.IsClosed() {
		return storage.ErrStorageClosed
	}
	return nil
}

// ReplaceCatalog drops the stored catalog and writes a new one. The manifest
// is removed first and written last, so an interrupted replace leaves no
// manifest and the partial build is never loaded.
func (r *CatalogRepository) ReplaceCatalog(ctx context.Context, records []*core.MovieRecord, vectors [][]float32, manifest core.Manifest) error {
	if err := r.checkOpen(); err != nil {
		return err
	}
	if len(vectors) != 0 && len(vectors) != len(records) {
		return fmt.Errorf("%w: %d records, %d vectors", storage.ErrMisaligned, len(records), len(vectors))
	}

	if err := r.backend.DropPrefixes([]byte(manifestKey)); err != nil {
		return err
	}
	if err := r.backend.DropPrefixes([]byte(movieRowPrefix), []byte(movieVectorPrefix)); err != nil {
		return err
	}

	err := r.backend.WithBatch(func(wb *badger.WriteBatch) error {
		for i, record := range records {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := wb.Set(makeMovieRowKey(i), storage.MarshalMovieRecord(record)); err != nil {
				return err
			}
		}
		for i, vector := range vectors {
			if err := wb.Set(makeMovieVectorKey(i), storage.MarshalVector(vector)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	manifest.Count = len(records)
	manifest.VectorCount = len(vectors)
	return r.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set([]byte(manifestKey), storage.MarshalManifest(&manifest)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// LoadMovies returns the stored records in row order.
func (r *CatalogRepository) LoadMovies(ctx context.Context) ([]*core.MovieRecord, error) {
	if err := r.checkOpen(); err != nil {
		return nil, err
	}
	var records []*core.MovieRecord
	err := r.scan(ctx, movieRowPrefix, func(val []byte) error {
		record, err := storage.UnmarshalMovieRecord(val)
		if err != nil {
			return err
		}
		records = append(records, record)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// LoadVectors returns the stored vectors in row order.
func (r *CatalogRepository) LoadVectors(ctx context.Context) ([][]float32, error) {
	if err := r.checkOpen(); err != nil {
		return nil, err
	}
	vectors := [][]float32{}
	err := r.scan(ctx, movieVectorPrefix, func(val []byte) error {
		vector, err := storage.UnmarshalVector(val)
		if err != nil {
			return err
		}
		vectors = append(vectors, vector)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return vectors, nil
}

// Manifest returns the stored manifest or storage.ErrNotFound.
func (r *CatalogRepository) Manifest(ctx context.Context) (*core.Manifest, error) {
	if err := r.checkOpen(); err != nil {
		return nil, err
	}
	var manifest *core.Manifest
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get([]byte(manifestKey))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			var unmarshalErr error
			manifest, unmarshalErr = storage.UnmarshalManifest(val)
			return unmarshalErr
		})
	}, false)
	if err != nil {
		return nil, err
	}
	return manifest, nil
}

// scan visits every value under prefix in key order and verifies that row
// positions are contiguous from zero.
func (r *CatalogRepository) scan(ctx context.Context, prefix string, visit func(val []byte) error) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(prefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		expected := 0
		for iter.Rewind(); iter.Valid(); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			item := iter.Item()
			position, err := parsePositionKey(prefix, item.Key())
			if err != nil {
				return fmt.Errorf("%w: %w", storage.ErrTruncatedData, err)
			}
			if position != expected {
				return fmt.Errorf("%w: expected position %d under %q, found %d", storage.ErrTruncatedData, expected, prefix, position)
			}
			if err := item.Value(visit); err != nil {
				return err
			}
			expected++
		}
		return nil
	}, false)
}
