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

// Package synthesis builds the enriched text description of a movie that is
// used as the unit of embedding.
//
// A description is a " | "-joined sequence of labeled segments: identity,
// story, genre glosses, cast, filmmaker, origin, contextual keywords, release
// year and a quality tier. Keywords are deliberately redundant with the other
// segments to bias embeddings toward salient concepts such as sport, biography
// or family themes. All lookup data lives in Tables so it can be extended or
// replaced without touching the rendering code.
package synthesis
