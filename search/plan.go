package search

import (
	"strings"

	"github.com/poiesic/moviesearch/core"
)

// Plan is the parsed form of a raw query.
type Plan struct {
	Raw          string      // Query as given
	Lower        string      // Lower-cased raw query
	Cleaned      string      // Lower-cased query with the source token removed
	SourceFilter core.Source // Zero when the query names no source
}

// HasFilter reports whether a source filter was derived.
func (p Plan) HasFilter() bool {
	return p.SourceFilter != 0
}

// EmbeddingText is the text embedded on the semantic path: the cleaned
// query, or the raw query when cleaning left nothing.
func (p Plan) EmbeddingText() string {
	if p.Cleaned == "" {
		return p.Raw
	}
	return p.Cleaned
}

// Tokens are the whitespace-separated words of the lower-cased raw query,
// duplicates included.
func (p Plan) Tokens() []string {
	return strings.Fields(p.Lower)
}

// PlanQuery extracts the source filter from raw. The first source token of
// the table found in the query wins; only that token is removed from the
// cleaned text.
func PlanQuery(tables *Tables, raw string) Plan {
	lower := strings.ToLower(raw)
	plan := Plan{Raw: raw, Lower: lower, Cleaned: lower}
	for _, st := range tables.SourceTokens {
		if strings.Contains(lower, st.Token) {
			plan.SourceFilter = st.Source
			plan.Cleaned = strings.TrimSpace(strings.ReplaceAll(lower, st.Token, ""))
			break
		}
	}
	return plan
}

func containsAny(text string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(text, n) {
			return true
		}
	}
	return false
}
