package dataset

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Bollywood exports carry a release period rather than a date.
const bollywoodReleaseYear = "2010"

var bollywoodGenres = map[string][]string{
	"drama":    {"Drama", "Family"},
	"sports":   {"Sports", "Drama", "Biography"},
	"action":   {"Action", "Thriller"},
	"comedy":   {"Comedy", "Family"},
	"romance":  {"Romance", "Drama"},
	"thriller": {"Thriller", "Drama"},
	"masala":   {"Action", "Comedy", "Drama"},
}

type curatedOverview struct {
	matches  []string
	overview string
}

var curatedOverviews = []curatedOverview{
	{[]string{"dangal"}, "Biographical sports drama about wrestling coach Mahavir Singh training his daughters to become world-class wrestlers, based on true story of Geeta and Babita Phogat"},
	{[]string{"milkha", "bhaag"}, "Biographical sports drama about Indian athlete and Olympic runner, inspiring true story of determination and achievement"},
	{[]string{"mary kom"}, "Biographical sports drama about Indian boxer Mary Kom, women's boxing champion and Olympic medalist"},
	{[]string{"3 idiots"}, "Comedy drama about three engineering students and their hilarious college adventures, exploring friendship and following dreams"},
	{[]string{"hera pheri"}, "Comedy about three friends and their hilarious get-rich-quick schemes, classic Bollywood humor"},
	{[]string{"munna bhai"}, "Comedy drama about a gangster trying to become a doctor, heartwarming story with humor"},
	{[]string{"queen"}, "Comedy drama about independent woman's solo honeymoon journey, empowering and funny"},
}

// ExpandBollywoodGenre maps the single genre label of a Bollywood export onto
// catalog genres. Unknown labels are title-cased; a missing label is Drama.
func ExpandBollywoodGenre(genre string) []string {
	genre = strings.TrimSpace(genre)
	if genre == "" {
		return []string{"Drama"}
	}
	if expanded, ok := bollywoodGenres[strings.ToLower(genre)]; ok {
		return append([]string(nil), expanded...)
	}
	return []string{cases.Title(language.Und).String(genre)}
}

// BollywoodOverview writes a synopsis for a Bollywood row, which the export
// does not carry. Well-known titles get a curated synopsis; the rest use a
// template keyed by genre.
func BollywoodOverview(title, genre, star, director string) string {
	lowerTitle := strings.ToLower(title)
	for _, c := range curatedOverviews {
		for _, m := range c.matches {
			if strings.Contains(lowerTitle, m) {
				return c.overview
			}
		}
	}

	genre = strings.ToLower(genre)
	if genre == "" {
		genre = "drama"
	}
	if star == "" {
		star = "Unknown"
	}
	if director == "" {
		director = "Unknown"
	}

	switch {
	case strings.Contains(genre, "comedy"):
		return "Comedy entertainment film starring " + star + ", directed by " + director + ", providing humor and lighthearted storytelling"
	case strings.Contains(genre, "action"):
		return "Action-packed film starring " + star + ", directed by " + director + ", featuring intense sequences and thrilling entertainment"
	default:
		return "Emotional " + genre + " film starring " + star + ", directed by " + director + ", exploring deep human relationships and personal growth"
	}
}
