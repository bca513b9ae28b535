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

package catalog

import (
	"fmt"

	"github.com/poiesic/moviesearch/core"
	"github.com/poiesic/moviesearch/index"
)

// Capability records whether a catalog can serve the semantic path.
type Capability int

const (
	CapabilityKeywordOnly Capability = iota
	CapabilitySemantic
)

func (c Capability) String() string {
	switch c {
	case CapabilitySemantic:
		return "semantic"
	case CapabilityKeywordOnly:
		return "keyword-only"
	default:
		return "unknown"
	}
}

// Catalog is the immutable in-memory corpus: records in row order, the
// vectors aligned with them and the index built over those vectors. A
// catalog whose vectors are absent or unusable is keyword-only; the reason
// is kept in DegradedReason. Catalogs are safe for concurrent reads.
type Catalog struct {
	records        []*core.MovieRecord
	descriptions   []string
	vectors        [][]float32
	index          *index.FlatIndex
	manifest       core.Manifest
	capability     Capability
	degradedReason string
}

// New assembles a catalog from records and their aligned vectors. When
// vectors is empty, misaligned, of mixed width or not unit norm, the catalog
// is keyword-only and the records are still served.
func New(records []*core.MovieRecord, vectors [][]float32, manifest core.Manifest) *Catalog {
	c := &Catalog{
		records:  records,
		manifest: manifest,
	}
	c.manifest.Count = len(records)

	reason := c.attachVectors(vectors)
	if reason != "" {
		c.degrade(reason)
	}
	return c
}

func (c *Catalog) attachVectors(vectors [][]float32) string {
	if len(c.records) == 0 {
		return "catalog is empty"
	}
	if len(vectors) == 0 {
		return "no vectors"
	}
	if len(vectors) != len(c.records) {
		return fmt.Sprintf("%d vectors for %d records", len(vectors), len(c.records))
	}
	for i, v := range vectors {
		if !core.IsUnitNorm(v) {
			return fmt.Errorf("%w: row %d", ErrNotUnitNorm, i).Error()
		}
	}
	idx, err := index.Build(vectors)
	if err != nil {
		return err.Error()
	}
	c.vectors = vectors
	c.index = idx
	c.capability = CapabilitySemantic
	c.manifest.VectorCount = len(vectors)
	c.manifest.Dimensions = idx.Dimensions()
	return ""
}

func (c *Catalog) degrade(reason string) {
	c.vectors = nil
	c.index = nil
	c.capability = CapabilityKeywordOnly
	c.degradedReason = reason
	c.manifest.VectorCount = 0
	c.manifest.Dimensions = 0
}

// withDescriptions attaches the synthesized descriptions used at build time.
func (c *Catalog) withDescriptions(descriptions []string) *Catalog {
	if len(descriptions) == len(c.records) {
		c.descriptions = descriptions
	}
	return c
}

// Len returns the number of records.
func (c *Catalog) Len() int {
	return len(c.records)
}

// Record returns the record at row position i.
func (c *Catalog) Record(i int) *core.MovieRecord {
	return c.records[i]
}

// Records returns the records in row order. The slice must not be modified.
func (c *Catalog) Records() []*core.MovieRecord {
	return c.records
}

// Descriptions returns the enriched descriptions in row order, or nil when
// the catalog was loaded rather than built.
func (c *Catalog) Descriptions() []string {
	return c.descriptions
}

// Vectors returns the row-aligned vectors, or nil for keyword-only catalogs.
func (c *Catalog) Vectors() [][]float32 {
	return c.vectors
}

func (c *Catalog) Manifest() core.Manifest {
	return c.manifest
}

func (c *Catalog) Capability() Capability {
	return c.capability
}

// Semantic reports whether the semantic path is available.
func (c *Catalog) Semantic() bool {
	return c.capability == CapabilitySemantic
}

// DegradedReason explains why a catalog is keyword-only.
func (c *Catalog) DegradedReason() string {
	return c.degradedReason
}

// Nearest returns the row positions and similarities of the k vectors with
// the highest inner product against query.
func (c *Catalog) Nearest(query []float32, k int) ([]int, []float32, error) {
	if !c.Semantic() {
		return nil, nil, ErrSemanticUnavailable
	}
	return c.index.Search(query, k)
}
