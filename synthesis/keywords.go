package synthesis

import "strings"

// keywordSet accumulates keywords, keeping the first occurrence of each.
type keywordSet struct {
	seen  map[string]bool
	items []string
}

func newKeywordSet() *keywordSet {
	return &keywordSet{seen: make(map[string]bool)}
}

func (k *keywordSet) add(words ...string) {
	for _, w := range words {
		if k.seen[w] {
			continue
		}
		k.seen[w] = true
		k.items = append(k.items, w)
	}
}

// ContextKeywords scans title, overview and genres against the knowledge
// tables and returns the deduplicated keyword augmentation, untruncated.
func ContextKeywords(tables *Tables, title, overview string, genres []string) []string {
	titleLower := strings.ToLower(title)
	overviewLower := strings.ToLower(overview)
	keywords := newKeywordSet()

	for _, tk := range tables.TitleKeywords {
		if strings.Contains(titleLower, tk.Match) {
			keywords.add(tk.Keywords...)
		}
	}

	if overviewLower != "" && containsAny(overviewLower, tables.BiographicalIndicators) {
		keywords.add(tables.BiographicalKeywords...)
	}

	for _, sc := range tables.SportCategories {
		for _, trigger := range sc.Triggers {
			if strings.Contains(titleLower, trigger) || (overviewLower != "" && strings.Contains(overviewLower, trigger)) {
				keywords.add(sc.Sport+" movie", sc.Sport+" drama", sc.Sport+" sports")
				break
			}
		}
	}

	if overviewLower != "" && containsAny(overviewLower, tables.FamilyIndicators) {
		keywords.add(tables.FamilyKeywords...)
	}

	for _, genre := range genres {
		if ctx, ok := tables.GenreContext[genre]; ok {
			keywords.add(ctx...)
		}
	}

	return keywords.items
}

func containsAny(text string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(text, n) {
			return true
		}
	}
	return false
}
