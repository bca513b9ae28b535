package dataset

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand/v2"
	"os"
	"strconv"

	"github.com/poiesic/moviesearch/core"
	"github.com/poiesic/moviesearch/synthesis"
)

const (
	defaultVoteAverage = 7.0
	defaultVoteCount   = 1000
	defaultReleaseYear = "2000"

	minSyntheticRating = 6.5
	maxSyntheticRating = 8.5
)

// Loader reads and normalizes catalog CSV files.
type Loader struct {
	logger *slog.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		if logger == nil {
			logger = slog.Default()
		}
		l.logger = logger
	}
}

func NewLoader(opts ...Option) *Loader {
	l := &Loader{logger: slog.Default()}
	for _, opt := range opts {
		opt(l)
	}
	l.logger = l.logger.With("component", "dataset")
	return l
}

// LoadFiles reads the Hollywood and Bollywood exports, in that order, and
// returns their concatenated records. An empty path skips that dataset.
func (l *Loader) LoadFiles(hollywoodPath, bollywoodPath string) ([]*core.MovieRecord, error) {
	var records []*core.MovieRecord
	for _, src := range []struct {
		path string
		load func(io.Reader) ([]*core.MovieRecord, error)
	}{
		{hollywoodPath, l.Hollywood},
		{bollywoodPath, l.Bollywood},
	} {
		if src.path == "" {
			continue
		}
		f, err := os.Open(src.path)
		if err != nil {
			return nil, err
		}
		loaded, err := src.load(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", src.path, err)
		}
		l.logger.Info("loaded dataset", "path", src.path, "movies", len(loaded))
		records = append(records, loaded...)
	}
	return records, nil
}

// Hollywood reads a TMDB-style export. Only the title column is required;
// pre-normalized genre_names, directors and top_cast columns take precedence
// over the raw genres, crew and cast JSON columns.
func (l *Loader) Hollywood(r io.Reader) ([]*core.MovieRecord, error) {
	t, err := readTable(r, "title")
	if err != nil {
		return nil, err
	}

	records := make([]*core.MovieRecord, 0, len(t.rows))
	for line, row := range t.rows {
		title := t.get(row, "title")
		if title == "" {
			l.logger.Debug("skipping row without title", "line", line+2)
			continue
		}

		record := &core.MovieRecord{
			Title:     title,
			Overview:  t.get(row, "overview"),
			Source:    core.SourceHollywood,
			Genres:    []string{},
			Directors: []string{},
			TopCast:   []string{},
		}
		if record.Overview == "" {
			record.Overview = core.MissingOverview
		}

		switch {
		case t.has("genre_names"):
			record.Genres = parseStringList(t.get(row, "genre_names"))
		case t.has("genres"):
			record.Genres = genresFromCell(t.get(row, "genres"))
		}
		switch {
		case t.has("directors"):
			record.Directors = parseStringList(t.get(row, "directors"))
		case t.has("crew"):
			record.Directors = directorsFromCrew(t.get(row, "crew"))
		}
		switch {
		case t.has("top_cast"):
			record.TopCast = parseStringList(t.get(row, "top_cast"))
		case t.has("cast"):
			record.TopCast = castFromCell(t.get(row, "cast"))
		}

		if t.has("release_date") {
			if year, err := synthesis.ParseYear(t.get(row, "release_date")); err == nil {
				record.ReleaseYear = year
			}
		} else {
			record.ReleaseYear = defaultReleaseYear
		}

		if t.has("vote_average") {
			if v, err := strconv.ParseFloat(t.get(row, "vote_average"), 64); err == nil && !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0 {
				record.VoteAverage = core.RatingOf(v)
			}
		} else {
			record.VoteAverage = core.RatingOf(defaultVoteAverage)
		}

		if t.has("vote_count") {
			record.VoteCount = parseCount(t.get(row, "vote_count"))
		} else {
			record.VoteCount = defaultVoteCount
		}

		core.NormalizeMovieRecord(record)
		records = append(records, record)
	}
	return records, nil
}

// Bollywood reads an export with Movie_Name, Genre, Lead_Star, Director,
// Release_Period and Revenue(INR) columns. Overviews are synthesized and the
// vote average is a stable pseudo-random value derived from the movie ID.
func (l *Loader) Bollywood(r io.Reader) ([]*core.MovieRecord, error) {
	t, err := readTable(r, "Movie_Name")
	if err != nil {
		return nil, err
	}

	records := make([]*core.MovieRecord, 0, len(t.rows))
	for line, row := range t.rows {
		title := t.get(row, "Movie_Name")
		if title == "" {
			l.logger.Debug("skipping row without title", "line", line+2)
			continue
		}
		genre := t.get(row, "Genre")
		star := t.get(row, "Lead_Star")
		director := t.get(row, "Director")

		record := &core.MovieRecord{
			Title:       title,
			Overview:    BollywoodOverview(title, genre, star, director),
			Genres:      ExpandBollywoodGenre(genre),
			Directors:   singleton(director),
			TopCast:     singleton(star),
			Source:      core.SourceBollywood,
			ReleaseYear: bollywoodReleaseYear,
			VoteCount:   parseCount(t.get(row, "Revenue(INR)")) / 10000,
		}
		record.Id = core.MovieID(record.Source, record.Title, record.ReleaseYear)
		record.VoteAverage = core.RatingOf(SyntheticRating(record.Id))

		core.NormalizeMovieRecord(record)
		records = append(records, record)
	}
	return records, nil
}

// SyntheticRating draws a vote average uniformly from [6.5, 8.5) using a
// generator seeded by id, so rebuilds are reproducible.
func SyntheticRating(id core.ID) float64 {
	rng := rand.New(rand.NewPCG(uint64(id), uint64(id)^0x9e3779b97f4a7c15))
	return minSyntheticRating + rng.Float64()*(maxSyntheticRating-minSyntheticRating)
}

func parseCount(text string) int {
	if text == "" {
		return 0
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return int(v)
}

func singleton(name string) []string {
	if name == "" {
		return []string{}
	}
	return []string{name}
}
