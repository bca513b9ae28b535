package dataset

import "github.com/poiesic/moviesearch/core"

type sampleMovie struct {
	title    string
	overview string
	rating   float64
	source   core.Source
	genres   []string
	director string
	star     string
}

var sampleMovies = []sampleMovie{
	{"3 Idiots", "Comedy about engineering students and their hilarious college adventures", 8.4, core.SourceBollywood, []string{"Comedy", "Drama"}, "Rajkumar Hirani", "Aamir Khan"},
	{"Hera Pheri", "Comedy about three friends and their get-rich-quick schemes", 8.2, core.SourceBollywood, []string{"Comedy"}, "Priyadarshan", "Akshay Kumar"},
	{"Andaz Apna Apna", "Comedy about two friends competing for the same girl", 8.3, core.SourceBollywood, []string{"Comedy"}, "Rajkumar Santoshi", "Aamir Khan"},
	{"Munna Bhai MBBS", "Comedy drama about a gangster trying to become a doctor", 8.1, core.SourceBollywood, []string{"Comedy", "Drama"}, "Rajkumar Hirani", "Sanjay Dutt"},
	{"Queen", "Comedy drama about woman's solo honeymoon journey", 8.2, core.SourceBollywood, []string{"Comedy", "Drama"}, "Vikas Bahl", "Kangana Ranaut"},
	{"The Dark Knight", "Batman fights crime in Gotham", 9.0, core.SourceHollywood, []string{"Action", "Crime"}, "Christopher Nolan", "Christian Bale"},
	{"Inception", "Dreams within dreams", 8.8, core.SourceHollywood, []string{"Sci-Fi", "Thriller"}, "Christopher Nolan", "Leonardo DiCaprio"},
	{"Dangal", "Wrestling father trains daughters", 8.3, core.SourceBollywood, []string{"Drama", "Sports"}, "Nitesh Tiwari", "Aamir Khan"},
	{"Interstellar", "Space exploration and time", 8.6, core.SourceHollywood, []string{"Sci-Fi", "Drama"}, "Christopher Nolan", "Matthew McConaughey"},
	{"Zindagi Na Milegi Dobara", "Friends on adventure trip with comedy", 8.1, core.SourceBollywood, []string{"Adventure", "Comedy"}, "Zoya Akhtar", "Hrithik Roshan"},
}

// Sample returns the built-in ten-film demo catalog. Each call returns fresh
// records.
func Sample() []*core.MovieRecord {
	records := make([]*core.MovieRecord, len(sampleMovies))
	for i, m := range sampleMovies {
		records[i] = &core.MovieRecord{
			Title:       m.title,
			Overview:    m.overview,
			Genres:      append([]string(nil), m.genres...),
			Directors:   []string{m.director},
			TopCast:     []string{m.star},
			Source:      m.source,
			VoteAverage: core.RatingOf(m.rating),
		}
		core.NormalizeMovieRecord(records[i])
	}
	return records
}
