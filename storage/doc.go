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

// Package storage provides the storage abstraction layer for moviesearch.
//
// A catalog build produces two artifacts that must always be read together:
// the row-aligned table of movie records and the parallel array of embedding
// vectors keyed by row position. A manifest records how many of each were
// written, the vector width and the embedding model, and is written last so a
// build interrupted part way leaves no manifest behind.
//
// # Constructor Return Type Pattern
//
// Public constructors return the storage.CatalogRepository interface so
// callers do not couple to BadgerDB specifics:
//
//	repo, backend, err := badger.NewMemoryRepository()
//
// # Serialization
//
// Records, vectors and manifests are encoded with the mus-go serializers in
// the core package.
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support
// concurrent access from multiple goroutines.
package storage
