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

package storage

import (
	"context"

	"github.com/poiesic/moviesearch/core"
)

// CatalogRepository persists the build-time artifacts of a catalog: a
// row-aligned table of movie records, a parallel array of embedding vectors
// keyed by row position, and a manifest describing the build.
// Implementations must be thread-safe.
type CatalogRepository interface {
	// ReplaceCatalog wholesale replaces the stored catalog. vectors must be
	// empty (keyword-only build) or have exactly one entry per record;
	// otherwise ErrMisaligned is returned and nothing is written.
	ReplaceCatalog(ctx context.Context, records []*core.MovieRecord, vectors [][]float32, manifest core.Manifest) error

	// LoadMovies returns the stored records in row order.
	LoadMovies(ctx context.Context) ([]*core.MovieRecord, error)

	// LoadVectors returns the stored vectors in row order.
	// Returns an empty slice for keyword-only builds.
	LoadVectors(ctx context.Context) ([][]float32, error)

	// Manifest returns the manifest of the stored build.
	// Returns ErrNotFound if no complete build is stored.
	Manifest(ctx context.Context) (*core.Manifest, error)

	// Close releases resources held by the repository.
	Close() error
}
