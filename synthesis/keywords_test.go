package synthesis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContextKeywords(t *testing.T) {
	tables := DefaultTables()

	tests := []struct {
		name     string
		title    string
		overview string
		genres   []string
		want     []string
	}{
		{
			name:     "nothing matches",
			title:    "Inception",
			overview: "Dreams within dreams",
			want:     nil,
		},
		{
			name:     "biographical overview",
			title:    "Neerja",
			overview: "A biopic of a flight attendant",
			want:     []string{"biographical", "true story", "real person", "inspiring"},
		},
		{
			name:     "sport derived from overview",
			title:    "Lagaan",
			overview: "Villagers learn cricket",
			want:     []string{"cricket movie", "cricket drama", "cricket sports"},
		},
		{
			name:   "genre context",
			title:  "Hera Pheri",
			genres: []string{"Comedy"},
			want:   []string{"funny", "humorous", "entertaining"},
		},
		{
			name:     "title match with sport and genre context",
			title:    "Mary Kom",
			overview: "",
			genres:   []string{"Biography"},
			want: []string{
				"boxing", "biography", "women sports", "Olympic boxing",
				"boxing movie", "boxing drama", "boxing sports",
				"real person", "life story", "historical",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ContextKeywords(tables, tt.title, tt.overview, tt.genres)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestContextKeywords_CaseInsensitive(t *testing.T) {
	got := ContextKeywords(DefaultTables(), "ROCKY BALBOA", "", nil)
	assert.Contains(t, got, "underdog")
	assert.Contains(t, got, "boxing movie")
}

func TestContextKeywords_FamilyNeedsOverview(t *testing.T) {
	tables := DefaultTables()

	assert.NotContains(t, ContextKeywords(tables, "Father of the Bride", "", nil), "family drama")
	assert.Contains(t, ContextKeywords(tables, "X", "A father and his son", nil), "family drama")
}

func TestContextKeywords_DeduplicatesKeepingFirst(t *testing.T) {
	got := ContextKeywords(DefaultTables(), "Dangal", "a father", []string{"Drama"})

	count := 0
	for _, k := range got {
		if k == "emotional" {
			count++
		}
	}
	assert.Equal(t, 1, count)
	assert.Equal(t, "wrestling", got[0])
}
