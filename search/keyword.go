package search

import (
	"slices"
	"strings"

	"github.com/poiesic/moviesearch/core"
)

// scoreKeyword applies the additive boosts to every record passing the plan's
// source filter and returns those with a positive score, highest first. Ties
// keep catalog order.
func scoreKeyword(tables *Tables, plan Plan, records []*core.MovieRecord) []*core.SearchResult {
	tokens := plan.Tokens()
	comedyQuery := containsAny(plan.Lower, tables.ComedyKeywords)
	b := tables.Boosts

	scored := make([]*core.SearchResult, 0)
	for i, r := range records {
		if plan.HasFilter() && r.Source != plan.SourceFilter {
			continue
		}
		title := strings.ToLower(r.Title)
		overview := strings.ToLower(r.Overview)

		var score float32
		for _, tok := range tokens {
			if strings.Contains(title, tok) {
				score += b.TitleToken
			}
			if strings.Contains(overview, tok) {
				score += b.OverviewToken
			}
		}
		if comedyQuery && strings.Contains(strings.ToLower(strings.Join(r.Genres, " ")), "comedy") {
			score += b.ComedyGenre
		}
		if plan.HasFilter() {
			score += b.SourceMatch
		}
		if plan.SourceFilter == core.SourceBollywood && comedyQuery && containsAny(title, tables.BollywoodComedies) {
			score += b.KnownComedy
		}

		if score > 0 {
			scored = append(scored, &core.SearchResult{
				Record:   r,
				Position: i,
				Score:    score,
				Kind:     core.ScoreKindKeyword,
			})
		}
	}

	slices.SortStableFunc(scored, func(a, b *core.SearchResult) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		default:
			return 0
		}
	})
	return scored
}
