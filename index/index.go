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

// Package index provides an exact inner-product nearest-neighbor index over
// fixed-dimension vectors. Because catalog vectors are unit-norm the inner
// product equals cosine similarity.
package index

import (
	"errors"
	"fmt"
	"sort"

	"github.com/poiesic/moviesearch/core"
)

var (
	ErrDimensionMismatch = errors.New("vector dimension mismatch")
	ErrEmptyIndex        = errors.New("index is empty")
	ErrZeroDimension     = errors.New("vectors must have at least one dimension")
)

// FlatIndex scores every stored vector against the query. Entries are
// addressed by their insertion position. A FlatIndex is immutable after
// Build and safe for concurrent searches.
type FlatIndex struct {
	dims    int
	vectors [][]float32
}

// Build stores vectors in order. All vectors must share one dimension.
func Build(vectors [][]float32) (*FlatIndex, error) {
	if len(vectors) == 0 {
		return &FlatIndex{}, nil
	}
	dims := len(vectors[0])
	if dims == 0 {
		return nil, ErrZeroDimension
	}
	stored := make([][]float32, len(vectors))
	for i, v := range vectors {
		if len(v) != dims {
			return nil, fmt.Errorf("%w: vector %d has %d dimensions, expected %d", ErrDimensionMismatch, i, len(v), dims)
		}
		stored[i] = append([]float32(nil), v...)
	}
	return &FlatIndex{dims: dims, vectors: stored}, nil
}

// Len returns the number of stored vectors.
func (f *FlatIndex) Len() int {
	return len(f.vectors)
}

// Dimensions returns the vector width, or 0 for an empty index.
func (f *FlatIndex) Dimensions() int {
	return f.dims
}

// Search returns the positions and scores of the k highest inner products,
// ordered by score descending. Ties keep insertion order. k is clamped to the
// index size; k <= 0 yields empty results.
func (f *FlatIndex) Search(query []float32, k int) ([]int, []float32, error) {
	if len(f.vectors) == 0 {
		return nil, nil, ErrEmptyIndex
	}
	if len(query) != f.dims {
		return nil, nil, fmt.Errorf("%w: query has %d dimensions, expected %d", ErrDimensionMismatch, len(query), f.dims)
	}
	if k <= 0 {
		return []int{}, []float32{}, nil
	}
	if k > len(f.vectors) {
		k = len(f.vectors)
	}

	scores := make([]float32, len(f.vectors))
	order := make([]int, len(f.vectors))
	for i, v := range f.vectors {
		scores[i] = core.Dot(query, v)
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	positions := order[:k]
	top := make([]float32, k)
	for i, p := range positions {
		top[i] = scores[p]
	}
	return positions, top, nil
}
