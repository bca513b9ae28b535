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


package search

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"

	"github.com/poiesic/moviesearch/ai"
	"github.com/poiesic/moviesearch/catalog"
	"github.com/poiesic/moviesearch/core"
)

// Outcome tells how a ranked result was produced.
type Outcome int

const (
	// OutcomeSemantic results come from vector similarity.
	OutcomeSemantic Outcome = iota + 1
	// OutcomeKeyword results come from keyword scoring because the catalog
	// has no semantic capability.
	OutcomeKeyword
	// OutcomeDegraded results come from keyword scoring after the semantic
	// path failed for this query.
	OutcomeDegraded
	// OutcomeFallback results are unranked rows returned because nothing
	// scored.
	OutcomeFallback
	// OutcomeRating results are ranked by vote average.
	OutcomeRating
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSemantic:
		return "semantic"
	case OutcomeKeyword:
		return "keyword"
	case OutcomeDegraded:
		return "degraded"
	case OutcomeFallback:
		return "fallback"
	case OutcomeRating:
		return "rating"
	default:
		return "unknown"
	}
}

// RankedResult is the answer to one query. An empty Results slice is a valid
// outcome.
type RankedResult struct {
	Query       string
	Plan        Plan
	Results     []*core.SearchResult
	Outcome     Outcome
	SemanticErr error // Cause of an OutcomeDegraded result
}

// Searcher ranks catalog rows for natural-language queries.
// It is safe for concurrent use.
type Searcher struct {
	catalog  *catalog.Catalog
	embedder ai.Embedder
	tables   *Tables
	monitor  SearchMonitor
	logger   *slog.Logger

	randMu sync.Mutex
	rng    *rand.Rand
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithTables replaces the default planner tables.
func WithTables(tables *Tables) Option {
	return func(s *Searcher) error {
		if tables == nil {
			return fmt.Errorf("search tables are nil")
		}
		if tables.OverFetch < 1 {
			return fmt.Errorf("%w: %d", ErrInvalidOverFetch, tables.OverFetch)
		}
		s.tables = tables
		return nil
	}
}

// WithRand sets the random source used to sample fallback rows.
// Default is the runtime's global generator.
func WithRand(rng *rand.Rand) Option {
	return func(s *Searcher) error {
		s.rng = rng
		return nil
	}
}

// WithMonitor sets a monitor that observes every query.
func WithMonitor(monitor SearchMonitor) Option {
	return func(s *Searcher) error {
		s.monitor = monitor
		return nil
	}
}

// NewSearcher creates a searcher over cat. A nil embedder limits the
// searcher to keyword scoring.
func NewSearcher(cat *catalog.Catalog, embedder ai.Embedder, opts ...Option) (*Searcher, error) {
	if cat == nil {
		return nil, ErrCatalogUnavailable
	}

	s := &Searcher{
		catalog:  cat,
		embedder: embedder,
		tables:   DefaultTables(),
		monitor:  &noopMonitor{},
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	if s.monitor == nil {
		s.monitor = &noopMonitor{}
	}
	s.logger = s.logger.With("component", "searcher")

	return s, nil
}

// Catalog returns the catalog being searched.
func (s *Searcher) Catalog() *catalog.Catalog {
	return s.catalog
}

// Tables returns the planner tables in use.
func (s *Searcher) Tables() *Tables {
	return s.tables
}

// Semantic reports whether queries will try the semantic path.
func (s *Searcher) Semantic() bool {
	return s.embedder != nil && s.catalog.Semantic()
}

// Search ranks the catalog for query and returns at most topK rows.
// Only context cancellation is reported as an error; semantic failures
// degrade to keyword scoring.
func (s *Searcher) Search(ctx context.Context, query string, topK int) (*RankedResult, error) {
	return s.SearchWithMonitor(ctx, query, topK, s.monitor)
}

// SearchWithMonitor is Search with a per-call monitor.
func (s *Searcher) SearchWithMonitor(ctx context.Context, query string, topK int, monitor SearchMonitor) (*RankedResult, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	monitor.Start(query)

	plan := PlanQuery(s.tables, query)
	monitor.AfterPlanning(plan)

	result := &RankedResult{Query: query, Plan: plan, Results: []*core.SearchResult{}}
	if s.Semantic() {
		result.Outcome = OutcomeSemantic
	} else {
		result.Outcome = OutcomeKeyword
	}

	if topK <= 0 {
		monitor.Finish(result)
		return result, nil
	}

	if s.Semantic() {
		results, err := s.semanticSearch(ctx, plan, topK, monitor)
		if err == nil {
			result.Results = results
			monitor.Finish(result)
			return result, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		s.logger.Warn("semantic search failed, using keyword scoring", "query", query, "err", err)
		monitor.SemanticFailed(err)
		result.Outcome = OutcomeDegraded
		result.SemanticErr = err
	}

	scored := scoreKeyword(s.tables, plan, s.catalog.Records())
	monitor.AfterKeywordScoring(scored)
	if len(scored) > 0 {
		if len(scored) > topK {
			scored = scored[:topK]
		}
		result.Results = scored
		monitor.Finish(result)
		return result, nil
	}

	result.Results = s.fallback(plan, topK)
	result.Outcome = OutcomeFallback
	monitor.FallbackUsed(len(result.Results))
	s.logger.Debug("no keyword matches, returning fallback rows", "query", query, "rows", len(result.Results))
	monitor.Finish(result)
	return result, nil
}

func (s *Searcher) semanticSearch(ctx context.Context, plan Plan, topK int, monitor SearchMonitor) ([]*core.SearchResult, error) {
	embedding, err := s.embedder.EmbedText(ctx, plan.EmbeddingText())
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}
	if dims := s.catalog.Manifest().Dimensions; dims > 0 && len(embedding) != dims {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrQueryDimension, len(embedding), dims)
	}
	if core.Norm(embedding) == 0 {
		return nil, ErrZeroQueryVector
	}
	query := core.NormalizeVector(embedding)

	searchK := min(topK*s.tables.OverFetch, s.catalog.Len())
	positions, scores, err := s.catalog.Nearest(query, searchK)
	if err != nil {
		return nil, err
	}
	monitor.AfterSemanticSearch(positions, scores)

	results := make([]*core.SearchResult, 0, min(topK, len(positions)))
	for i, pos := range positions {
		record := s.catalog.Record(pos)
		if plan.HasFilter() && record.Source != plan.SourceFilter {
			continue
		}
		results = append(results, &core.SearchResult{
			Record:   record,
			Position: pos,
			Score:    scores[i],
			Kind:     core.ScoreKindSemantic,
		})
		if len(results) == topK {
			break
		}
	}
	return results, nil
}

// fallback selects unranked rows when keyword scoring matched nothing: the
// first topK rows of the filtered source, or a uniform random sample of the
// whole catalog when there is no filter.
func (s *Searcher) fallback(plan Plan, topK int) []*core.SearchResult {
	records := s.catalog.Records()
	out := make([]*core.SearchResult, 0)

	if plan.HasFilter() {
		for i, r := range records {
			if r.Source != plan.SourceFilter {
				continue
			}
			out = append(out, unranked(r, i))
			if len(out) == topK {
				break
			}
		}
		return out
	}

	for _, pos := range s.perm(len(records))[:min(topK, len(records))] {
		out = append(out, unranked(records[pos], pos))
	}
	return out
}

func (s *Searcher) perm(n int) []int {
	if s.rng == nil {
		return rand.Perm(n)
	}
	s.randMu.Lock()
	defer s.randMu.Unlock()
	return s.rng.Perm(n)
}

func unranked(record *core.MovieRecord, pos int) *core.SearchResult {
	return &core.SearchResult{Record: record, Position: pos, Kind: core.ScoreKindUnranked}
}

// SearchBySource searches with the source name prefixed to the query, then
// keeps only rows from source. A query naming a different source can
// therefore yield no rows.
func (s *Searcher) SearchBySource(ctx context.Context, query string, source core.Source, topK int) (*RankedResult, error) {
	result, err := s.Search(ctx, source.String()+" "+query, topK)
	if err != nil {
		return nil, err
	}
	kept := make([]*core.SearchResult, 0, len(result.Results))
	for _, r := range result.Results {
		if r.Record.Source == source {
			kept = append(kept, r)
		}
	}
	result.Results = kept
	return result, nil
}
