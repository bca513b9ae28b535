package search

import "github.com/poiesic/moviesearch/core"

// SearchMonitor provides hooks to observe the search process.
// Implement this interface to track intermediate steps and results during search.
type SearchMonitor interface {
	Start(query string)
	AfterPlanning(plan Plan)
	AfterSemanticSearch(positions []int, scores []float32)
	SemanticFailed(err error)
	AfterKeywordScoring(scored []*core.SearchResult)
	FallbackUsed(rows int)
	Finish(result *RankedResult)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                             {}
func (n *noopMonitor) AfterPlanning(_ Plan)                       {}
func (n *noopMonitor) AfterSemanticSearch(_ []int, _ []float32)   {}
func (n *noopMonitor) SemanticFailed(_ error)                     {}
func (n *noopMonitor) AfterKeywordScoring(_ []*core.SearchResult) {}
func (n *noopMonitor) FallbackUsed(_ int)                         {}
func (n *noopMonitor) Finish(_ *RankedResult)                     {}
