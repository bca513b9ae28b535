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


// Package search answers natural-language movie queries over a catalog.
//
// The Searcher plans each query by deriving an optional source filter, then
// ranks rows on one of two paths:
//   - Semantic search over the catalog's unit vectors, over-fetched and
//     filtered by source
//   - Keyword scoring with additive title, overview, genre and source boosts
//
// The keyword path serves keyword-only catalogs and stands in whenever the
// semantic path fails. When nothing scores, a fallback selection of rows is
// returned so a query never comes back empty against a non-empty catalog.
//
// The package also provides source-scoped search, rating-ranked
// recommendations and heuristic query analytics.
package search
