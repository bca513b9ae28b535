package synthesis

import "github.com/poiesic/moviesearch/core"

// TitleKeywords attaches curated keywords to films whose lower-cased title
// contains Match.
type TitleKeywords struct {
	Match    string
	Keywords []string
}

// SportCategory adds "{Sport} movie/drama/sports" when any trigger appears in
// the title or overview.
type SportCategory struct {
	Sport    string
	Triggers []string
}

// Tables holds the static knowledge used to enrich descriptions. Slices are
// scanned in order so the output is deterministic.
type Tables struct {
	GenreGlosses           map[string]string
	SourceGlosses          map[core.Source]string
	TitleKeywords          []TitleKeywords
	BiographicalIndicators []string
	BiographicalKeywords   []string
	SportCategories        []SportCategory
	FamilyIndicators       []string
	FamilyKeywords         []string
	GenreContext           map[string][]string
	MaxKeywords            int
	MaxCast                int
}

// DefaultTables returns the tables tuned for the Hollywood/Bollywood catalog.
func DefaultTables() *Tables {
	return &Tables{
		GenreGlosses: map[string]string{
			"Drama":     "emotional drama with deep character development",
			"Sports":    "sports-centered story with athletic competition and training",
			"Biography": "biographical film based on real person and true events",
			"Action":    "action-packed with intense sequences",
			"Comedy":    "comedy film with humor and entertainment",
			"Romance":   "romantic story about love and relationships",
			"Thriller":  "suspenseful thriller with tension",
			"Horror":    "horror film with scary elements",
		},
		SourceGlosses: map[core.Source]string{
			core.SourceBollywood: "Indian Hindi cinema Bollywood production",
			core.SourceHollywood: "American Hollywood production",
		},
		TitleKeywords: []TitleKeywords{
			{Match: "dangal", Keywords: []string{"wrestling", "biography", "sports drama", "father daughter", "Olympic wrestling", "biographical sports"}},
			{Match: "bhaag milkha bhaag", Keywords: []string{"running", "athletics", "biography", "sports drama", "Olympic runner"}},
			{Match: "chak de india", Keywords: []string{"hockey", "women sports", "national team", "coach", "sports drama"}},
			{Match: "mary kom", Keywords: []string{"boxing", "biography", "women sports", "Olympic boxing"}},
			{Match: "sultan", Keywords: []string{"wrestling", "sports drama", "mixed martial arts"}},
			{Match: "rocky", Keywords: []string{"boxing", "underdog", "sports drama", "training montage"}},
			{Match: "the pursuit of happyness", Keywords: []string{"biography", "inspirational", "father son", "struggle"}},
			{Match: "ford v ferrari", Keywords: []string{"racing", "biography", "automotive", "sports drama"}},
		},
		BiographicalIndicators: []string{
			"biography", "biopic", "biographical", "based on true story",
			"real life", "true events", "historical figure",
		},
		BiographicalKeywords: []string{"biographical", "true story", "real person", "inspiring"},
		SportCategories: []SportCategory{
			{Sport: "wrestling", Triggers: []string{"wrestling", "dangal", "sultan", "grappling"}},
			{Sport: "boxing", Triggers: []string{"boxing", "mary kom", "rocky", "fighter"}},
			{Sport: "running", Triggers: []string{"running", "milkha", "athletics", "track"}},
			{Sport: "hockey", Triggers: []string{"hockey", "chak de", "field hockey"}},
			{Sport: "cricket", Triggers: []string{"cricket", "bat", "wicket", "bowling"}},
			{Sport: "football", Triggers: []string{"football", "soccer", "goal"}},
		},
		FamilyIndicators: []string{"father", "daughter", "son", "family", "parent", "child"},
		FamilyKeywords:   []string{"family drama", "family relationships", "emotional"},
		GenreContext: map[string][]string{
			"Drama":     {"emotional", "character driven", "serious"},
			"Sports":    {"competition", "training", "achievement", "athletic"},
			"Biography": {"real person", "life story", "historical"},
			"Action":    {"intense", "thrilling", "fast paced"},
			"Comedy":    {"funny", "humorous", "entertaining"},
			"Romance":   {"love story", "romantic", "relationship"},
		},
		MaxKeywords: 10,
		MaxCast:     core.MaxTopCast,
	}
}
