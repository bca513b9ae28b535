package search

import (
	"regexp"
	"strings"
)

var yearPattern = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)

// Intent is the classified purpose of a query.
type Intent struct {
	Primary    string             `json:"primary"`
	Confidence float64            `json:"confidence"`
	All        map[string]float64 `json:"all"`
}

// Entities are the names, genres, years and sources mentioned in a query.
type Entities struct {
	Persons []string `json:"persons"`
	Movies  []string `json:"movies"`
	Genres  []string `json:"genres"`
	Years   []string `json:"years"`
	Sources []string `json:"sources"`
}

// Analysis describes a query without ranking anything.
type Analysis struct {
	Intent         Intent   `json:"intent"`
	Entities       Entities `json:"entities"`
	ProcessedQuery string   `json:"processed_query"`
}

// Analyze classifies the intent of query and extracts its entities. Persons
// and movies are names from the catalog that appear in the query. At most one
// source is reported, the same one PlanQuery would filter on.
func (s *Searcher) Analyze(query string) *Analysis {
	lower := strings.ToLower(strings.TrimSpace(query))
	t := s.tables

	primary := t.DefaultIntent
	for _, rule := range t.IntentRules {
		if containsAny(lower, rule.Keywords) {
			primary = rule.Intent
			break
		}
	}

	a := &Analysis{
		Intent: Intent{
			Primary:    primary,
			Confidence: t.IntentConfidence,
			All: map[string]float64{
				primary:         t.IntentConfidence,
				t.GeneralIntent: t.GeneralConfidence,
			},
		},
		Entities: Entities{
			Persons: []string{},
			Movies:  []string{},
			Genres:  []string{},
			Years:   []string{},
			Sources: []string{},
		},
		ProcessedQuery: query,
	}

	for _, rule := range t.GenreRules {
		if containsAny(lower, rule.Keywords) {
			a.Entities.Genres = append(a.Entities.Genres, rule.Genre)
		}
	}
	for _, st := range t.SourceTokens {
		if strings.Contains(lower, st.Token) {
			a.Entities.Sources = append(a.Entities.Sources, st.Source.String())
			break
		}
	}
	a.Entities.Years = append(a.Entities.Years, yearPattern.FindAllString(lower, -1)...)

	persons := make(map[string]bool)
	movies := make(map[string]bool)
	for _, r := range s.catalog.Records() {
		if title := strings.ToLower(r.Title); title != "" && !movies[r.Title] && strings.Contains(lower, title) {
			movies[r.Title] = true
			a.Entities.Movies = append(a.Entities.Movies, r.Title)
		}
		for _, group := range [][]string{r.Directors, r.TopCast} {
			for _, name := range group {
				if name == "" || persons[name] {
					continue
				}
				if strings.Contains(lower, strings.ToLower(name)) {
					persons[name] = true
					a.Entities.Persons = append(a.Entities.Persons, name)
				}
			}
		}
	}

	return a
}
