package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/poiesic/moviesearch/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const hollywoodCSV = `title,overview,genres,crew,cast,release_date,vote_average,vote_count
Inception,A thief enters dreams.,"[{""id"": 878, ""name"": ""Science Fiction""}, {""id"": 53, ""name"": ""Thriller""}]","[{""name"": ""Christopher Nolan"", ""job"": ""Director""}, {""name"": ""Hans Zimmer"", ""job"": ""Original Music Composer""}]","[{""name"": ""Leonardo DiCaprio""}, {""name"": ""Joseph Gordon-Levitt""}, {""name"": ""Elliot Page""}, {""name"": ""Tom Hardy""}, {""name"": ""Ken Watanabe""}, {""name"": ""Cillian Murphy""}]",2010-07-15,8.8,35000
Mystery Film,,not json,broken,[{,,,
,Untitled row,,,,,,
`

const bollywoodCSV = `Movie_Name,Genre,Lead_Star,Director,Release_Period,Revenue(INR)
Dangal,Sports,Aamir Khan,Nitesh Tiwari,Holiday,3870000000
Kaante,action,Sanjay Dutt,Sanjay Gupta,Normal,250000000
Paheli,Fantasy,Shah Rukh Khan,Amol Palekar,Normal,
Nameless,,,,Normal,100
`

func TestHollywood(t *testing.T) {
	records, err := NewLoader().Hollywood(strings.NewReader(hollywoodCSV))
	require.NoError(t, err)
	require.Len(t, records, 2)

	inception := records[0]
	assert.Equal(t, "Inception", inception.Title)
	assert.Equal(t, core.SourceHollywood, inception.Source)
	assert.Equal(t, []string{"Science Fiction", "Thriller"}, inception.Genres)
	assert.Equal(t, []string{"Christopher Nolan"}, inception.Directors)
	assert.Equal(t, []string{"Leonardo DiCaprio", "Joseph Gordon-Levitt", "Elliot Page", "Tom Hardy", "Ken Watanabe"}, inception.TopCast)
	assert.Equal(t, "2010", inception.ReleaseYear)
	require.True(t, inception.HasRating())
	assert.Equal(t, 8.8, inception.Rating())
	assert.Equal(t, 35000, inception.VoteCount)
	assert.Equal(t, core.MovieID(core.SourceHollywood, "Inception", "2010"), inception.Id)

	mystery := records[1]
	assert.Equal(t, core.MissingOverview, mystery.Overview)
	assert.Equal(t, []string{"not json"}, mystery.Genres)
	assert.Empty(t, mystery.Directors)
	assert.Empty(t, mystery.TopCast)
	assert.Empty(t, mystery.ReleaseYear)
	assert.False(t, mystery.HasRating())
	assert.Zero(t, mystery.VoteCount)
}

func TestHollywood_MissingColumnsUseDefaults(t *testing.T) {
	records, err := NewLoader().Hollywood(strings.NewReader("title\nHeat\n"))
	require.NoError(t, err)
	require.Len(t, records, 1)

	heat := records[0]
	assert.Equal(t, "2000", heat.ReleaseYear)
	assert.Equal(t, 7.0, heat.Rating())
	assert.Equal(t, 1000, heat.VoteCount)
	assert.Equal(t, core.MissingOverview, heat.Overview)
	assert.NotNil(t, heat.Genres)
}

func TestHollywood_PreNormalizedColumns(t *testing.T) {
	csv := "title,genre_names,directors,top_cast\n" +
		`Heat,"['Crime', 'Drama']","[""Michael Mann""]",Al Pacino` + "\n"

	records, err := NewLoader().Hollywood(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, []string{"Crime", "Drama"}, records[0].Genres)
	assert.Equal(t, []string{"Michael Mann"}, records[0].Directors)
	assert.Equal(t, []string{"Al Pacino"}, records[0].TopCast)
}

func TestHollywood_Errors(t *testing.T) {
	_, err := NewLoader().Hollywood(strings.NewReader("name,overview\nX,Y\n"))
	assert.ErrorIs(t, err, ErrMissingColumn)

	_, err = NewLoader().Hollywood(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrMalformedCSV)
}

func TestBollywood(t *testing.T) {
	records, err := NewLoader(WithLogger(nil)).Bollywood(strings.NewReader(bollywoodCSV))
	require.NoError(t, err)
	require.Len(t, records, 4)

	dangal := records[0]
	assert.Equal(t, core.SourceBollywood, dangal.Source)
	assert.Equal(t, []string{"Sports", "Drama", "Biography"}, dangal.Genres)
	assert.Contains(t, dangal.Overview, "Mahavir Singh")
	assert.Equal(t, []string{"Nitesh Tiwari"}, dangal.Directors)
	assert.Equal(t, []string{"Aamir Khan"}, dangal.TopCast)
	assert.Equal(t, "2010", dangal.ReleaseYear)
	assert.Equal(t, 387000, dangal.VoteCount)
	assert.Equal(t, SyntheticRating(dangal.Id), dangal.Rating())

	kaante := records[1]
	assert.Equal(t, []string{"Action", "Thriller"}, kaante.Genres)
	assert.Equal(t, "Action-packed film starring Sanjay Dutt, directed by Sanjay Gupta, featuring intense sequences and thrilling entertainment", kaante.Overview)

	paheli := records[2]
	assert.Equal(t, []string{"Fantasy"}, paheli.Genres)
	assert.Zero(t, paheli.VoteCount)

	nameless := records[3]
	assert.Equal(t, []string{"Drama"}, nameless.Genres)
	assert.Empty(t, nameless.Directors)
	assert.Equal(t, "Emotional drama film starring Unknown, directed by Unknown, exploring deep human relationships and personal growth", nameless.Overview)

	for _, r := range records {
		require.NoError(t, core.ValidateMovieRecord(r))
	}
}

func TestExpandBollywoodGenre(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{"Drama"}},
		{"Comedy", []string{"Comedy", "Family"}},
		{"MASALA", []string{"Action", "Comedy", "Drama"}},
		{"period drama", []string{"Period Drama"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandBollywoodGenre(tt.in))
		})
	}

	// Callers may modify the result without touching the table.
	got := ExpandBollywoodGenre("drama")
	got[0] = "changed"
	assert.Equal(t, []string{"Drama", "Family"}, ExpandBollywoodGenre("drama"))
}

func TestBollywoodOverview(t *testing.T) {
	assert.Equal(t,
		"Comedy about three friends and their hilarious get-rich-quick schemes, classic Bollywood humor",
		BollywoodOverview("Phir Hera Pheri", "Action", "Akshay Kumar", "Neeraj Vora"))
	assert.Equal(t,
		"Comedy entertainment film starring Govinda, directed by David Dhawan, providing humor and lighthearted storytelling",
		BollywoodOverview("Partner", "Romantic Comedy", "Govinda", "David Dhawan"))
	assert.Contains(t, BollywoodOverview("Bhaag Milkha Bhaag", "Sports", "", ""), "Olympic runner")
}

func TestSyntheticRating(t *testing.T) {
	for _, title := range []string{"Dangal", "Sholay", "Lagaan", "Swades", "Barfi!"} {
		id := core.MovieID(core.SourceBollywood, title, "2010")
		r := SyntheticRating(id)
		assert.GreaterOrEqual(t, r, 6.5)
		assert.Less(t, r, 8.5)
		assert.Equal(t, r, SyntheticRating(id))
	}
}

func TestLoadFiles(t *testing.T) {
	dir := t.TempDir()
	hPath := filepath.Join(dir, "movies.csv")
	bPath := filepath.Join(dir, "bollywood_movies.csv")
	require.NoError(t, os.WriteFile(hPath, []byte(hollywoodCSV), 0o644))
	require.NoError(t, os.WriteFile(bPath, []byte(bollywoodCSV), 0o644))

	loader := NewLoader()

	records, err := loader.LoadFiles(hPath, bPath)
	require.NoError(t, err)
	require.Len(t, records, 6)
	assert.Equal(t, core.SourceHollywood, records[0].Source)
	assert.Equal(t, core.SourceBollywood, records[5].Source)

	records, err = loader.LoadFiles("", bPath)
	require.NoError(t, err)
	assert.Len(t, records, 4)

	_, err = loader.LoadFiles(filepath.Join(dir, "missing.csv"), "")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSample(t *testing.T) {
	records := Sample()
	require.Len(t, records, 10)

	assert.Equal(t, "3 Idiots", records[0].Title)
	assert.Equal(t, "Zindagi Na Milegi Dobara", records[9].Title)

	sources := map[core.Source]int{}
	for _, r := range records {
		require.NoError(t, core.ValidateMovieRecord(r))
		assert.NotZero(t, r.Id)
		sources[r.Source]++
	}
	assert.Equal(t, 3, sources[core.SourceHollywood])
	assert.Equal(t, 7, sources[core.SourceBollywood])

	records[0].Title = "changed"
	assert.Equal(t, "3 Idiots", Sample()[0].Title)
}
