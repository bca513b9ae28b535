package dataset

import (
	"encoding/json"
	"strings"
)

type namedEntry struct {
	Name string `json:"name"`
	Job  string `json:"job,omitempty"`
}

// parseNamedList decodes a JSON array of {"name": ...} objects. Malformed
// input yields nil.
func parseNamedList(text string) []namedEntry {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "[") {
		return nil
	}
	var entries []namedEntry
	if err := json.Unmarshal([]byte(text), &entries); err != nil {
		return nil
	}
	return entries
}

// parseStringList accepts a JSON string array, a Python-style list literal
// such as ['Drama', 'Comedy'], or a bare value which becomes a single entry.
func parseStringList(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return []string{}
	}
	if !strings.HasPrefix(text, "[") {
		return []string{text}
	}

	var names []string
	if err := json.Unmarshal([]byte(text), &names); err == nil {
		return names
	}

	inner := strings.TrimSuffix(strings.TrimPrefix(text, "["), "]")
	out := []string{}
	for _, part := range strings.Split(inner, ",") {
		part = strings.Trim(strings.TrimSpace(part), `'"`)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// genresFromCell keeps the names of a JSON genre object list. Other strings
// are kept as one genre; malformed JSON lists yield no genres.
func genresFromCell(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return []string{}
	}
	if strings.HasPrefix(text, "[{") {
		names := []string{}
		for _, e := range parseNamedList(text) {
			names = append(names, e.Name)
		}
		return names
	}
	return []string{text}
}

func directorsFromCrew(text string) []string {
	out := []string{}
	for _, e := range parseNamedList(text) {
		if e.Job == "Director" {
			out = append(out, e.Name)
		}
	}
	return out
}

func castFromCell(text string) []string {
	out := []string{}
	for _, e := range parseNamedList(text) {
		out = append(out, e.Name)
	}
	return out
}
