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

// Package catalog holds the in-memory Catalog Store and the offline build
// pipeline that produces it.
//
// A Catalog is immutable: records in row order, the unit-norm vectors
// aligned with them, and an exact inner-product index over those vectors.
// When vectors are missing or do not line up with the rows the catalog is
// keyword-only, and DegradedReason says why.
//
// Builder runs the pipeline:
//
//	records -> validate/normalize -> synthesize -> embed (batched, pooled, retried) -> index
//
// Catalogs are persisted through a storage.CatalogRepository with Save and
// Load, or exported as a single portable msgpack snapshot.
package catalog
