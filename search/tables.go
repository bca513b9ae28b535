package search

import "github.com/poiesic/moviesearch/core"

// SourceToken derives a source filter when Token appears in a query.
type SourceToken struct {
	Token  string
	Source core.Source
}

// IntentRule labels a query whose lower-cased text contains any keyword.
type IntentRule struct {
	Intent   string
	Keywords []string
}

// GenreRule reports Genre as a query entity when any keyword appears.
type GenreRule struct {
	Genre    string
	Keywords []string
}

// Boosts are the additive keyword-path score contributions.
type Boosts struct {
	TitleToken    float32 // per query token found in the title
	OverviewToken float32 // per query token found in the overview
	ComedyGenre   float32 // comedy query against a comedy record
	SourceMatch   float32 // record source equals the derived filter
	KnownComedy   float32 // comedy query, Bollywood filter, curated title
}

// Tables holds the fixed lookup data of the query planner and scorer.
// Slices are checked in order; the first matching rule wins where only one
// result is taken.
type Tables struct {
	SourceTokens      []SourceToken
	ComedyKeywords    []string
	BollywoodComedies []string
	IntentRules       []IntentRule
	DefaultIntent     string
	GeneralIntent     string
	IntentConfidence  float64
	GeneralConfidence float64
	GenreRules        []GenreRule
	Boosts            Boosts
	OverFetch         int
}

// DefaultTables returns the planner tables for the Hollywood/Bollywood catalog.
func DefaultTables() *Tables {
	return &Tables{
		SourceTokens: []SourceToken{
			{Token: "bollywood", Source: core.SourceBollywood},
			{Token: "hollywood", Source: core.SourceHollywood},
		},
		ComedyKeywords:    []string{"funny", "comedy", "humor", "hilarious", "laugh", "comic", "entertaining"},
		BollywoodComedies: []string{"3 idiots", "hera pheri", "andaz apna apna", "munna bhai", "queen", "golmaal"},
		IntentRules: []IntentRule{
			{Intent: "find similar movies", Keywords: []string{"like", "similar"}},
			{Intent: "search for comedy movies", Keywords: []string{"funny", "comedy", "humor"}},
			{Intent: "search by actor or cast", Keywords: []string{"actor", "starring"}},
			{Intent: "search by director", Keywords: []string{"director", "directed"}},
		},
		DefaultIntent:     "search by plot or story",
		GeneralIntent:     "general search",
		IntentConfidence:  0.9,
		GeneralConfidence: 0.1,
		// Only comedy shares keywords with the intent rules; the rest widen
		// entity extraction.
		GenreRules: []GenreRule{
			{Genre: "comedy", Keywords: []string{"funny", "comedy", "humor"}},
			{Genre: "action", Keywords: []string{"action", "fight", "explosive"}},
			{Genre: "romance", Keywords: []string{"romance", "romantic", "love story"}},
			{Genre: "thriller", Keywords: []string{"thriller", "suspense"}},
			{Genre: "horror", Keywords: []string{"horror", "scary"}},
			{Genre: "sci-fi", Keywords: []string{"sci-fi", "science fiction", "space"}},
			{Genre: "sports", Keywords: []string{"sports", "cricket", "wrestling", "boxing"}},
			{Genre: "biography", Keywords: []string{"biography", "biopic", "true story"}},
		},
		Boosts: Boosts{
			TitleToken:    0.5,
			OverviewToken: 0.3,
			ComedyGenre:   0.8,
			SourceMatch:   0.4,
			KnownComedy:   1.0,
		},
		OverFetch: 3,
	}
}
