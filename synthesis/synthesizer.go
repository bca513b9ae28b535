package synthesis

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/moviesearch/core"
)

// Delimiter separates description segments.
const Delimiter = " | "

const (
	acclaimedThreshold    = 8.0
	wellReceivedThreshold = 7.0
)

// ErrInvalidYear is reported for release years that are not four digits.
var ErrInvalidYear = errors.New("release year is not four digits")

// segment renders one labeled part of a description. An empty string means
// the segment does not apply to the record.
type segment struct {
	name   string
	render func(t *Tables, m *core.MovieRecord) (string, error)
}

var segments = []segment{
	{"identity", identitySegment},
	{"story", storySegment},
	{"genre", genreSegment},
	{"cast", castSegment},
	{"director", directorSegment},
	{"origin", originSegment},
	{"keywords", keywordsSegment},
	{"released", releasedSegment},
	{"quality", qualitySegment},
}

// Synthesizer turns movie records into enriched descriptions for embedding.
// It is safe for concurrent use.
type Synthesizer struct {
	tables *Tables
	logger *slog.Logger
}

// Option configures a Synthesizer.
type Option func(*Synthesizer)

// WithTables replaces the default knowledge tables.
func WithTables(tables *Tables) Option {
	return func(s *Synthesizer) {
		if tables != nil {
			s.tables = tables
		}
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Synthesizer) {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
	}
}

func New(opts ...Option) *Synthesizer {
	s := &Synthesizer{
		tables: DefaultTables(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "synthesizer")
	return s
}

// Tables returns the knowledge tables in use.
func (s *Synthesizer) Tables() *Tables {
	return s.tables
}

// Synthesize builds the enriched description of a record. Segments that fail
// to render are skipped; the identity segment is always present.
func (s *Synthesizer) Synthesize(record *core.MovieRecord) string {
	parts := make([]string, 0, len(segments))
	for _, seg := range segments {
		text, err := seg.render(s.tables, record)
		if err != nil {
			s.logger.Debug("skipping description segment", "segment", seg.name, "title", record.Title, "err", err)
			continue
		}
		if text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, Delimiter)
}

// SynthesizeAll renders descriptions for records in order.
func (s *Synthesizer) SynthesizeAll(records []*core.MovieRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = s.Synthesize(r)
	}
	return out
}

func identitySegment(_ *Tables, m *core.MovieRecord) (string, error) {
	return "Movie: " + m.Title, nil
}

func storySegment(_ *Tables, m *core.MovieRecord) (string, error) {
	if m.Overview == "" {
		return "", nil
	}
	return "Story: " + m.Overview, nil
}

func genreSegment(t *Tables, m *core.MovieRecord) (string, error) {
	if len(m.Genres) == 0 {
		return "", nil
	}
	glosses := make([]string, len(m.Genres))
	for i, g := range m.Genres {
		if gloss, ok := t.GenreGlosses[g]; ok {
			glosses[i] = gloss
		} else {
			glosses[i] = strings.ToLower(g) + " film"
		}
	}
	return "Genre: " + strings.Join(glosses, ", "), nil
}

func castSegment(t *Tables, m *core.MovieRecord) (string, error) {
	if len(m.TopCast) == 0 {
		return "", nil
	}
	cast := m.TopCast
	if t.MaxCast > 0 && len(cast) > t.MaxCast {
		cast = cast[:t.MaxCast]
	}
	return "Features actors: " + strings.Join(cast, ", "), nil
}

func directorSegment(_ *Tables, m *core.MovieRecord) (string, error) {
	if len(m.Directors) == 0 {
		return "", nil
	}
	return "Filmmaker: " + strings.Join(m.Directors, ", "), nil
}

func originSegment(t *Tables, m *core.MovieRecord) (string, error) {
	if gloss, ok := t.SourceGlosses[m.Source]; ok {
		return "Origin: " + gloss, nil
	}
	return "Origin: " + m.Source.String(), nil
}

func keywordsSegment(t *Tables, m *core.MovieRecord) (string, error) {
	keywords := ContextKeywords(t, m.Title, m.Overview, m.Genres)
	if len(keywords) == 0 {
		return "", nil
	}
	if t.MaxKeywords > 0 && len(keywords) > t.MaxKeywords {
		keywords = keywords[:t.MaxKeywords]
	}
	return "Keywords: " + strings.Join(keywords, ", "), nil
}

func releasedSegment(_ *Tables, m *core.MovieRecord) (string, error) {
	if m.ReleaseYear == "" {
		return "", nil
	}
	year, err := ParseYear(m.ReleaseYear)
	if err != nil {
		return "", err
	}
	return "Released: " + year, nil
}

func qualitySegment(_ *Tables, m *core.MovieRecord) (string, error) {
	if !m.HasRating() {
		return "", nil
	}
	switch rating := m.Rating(); {
	case rating >= acclaimedThreshold:
		return "Quality: highly rated acclaimed film", nil
	case rating >= wellReceivedThreshold:
		return "Quality: well-received good film", nil
	default:
		return "", nil
	}
}

// ParseYear extracts the leading four-digit year of a date-like string.
func ParseYear(value string) (string, error) {
	value = strings.TrimSpace(value)
	if len(value) < 4 {
		return "", fmt.Errorf("%w: %q", ErrInvalidYear, value)
	}
	year := value[:4]
	for _, r := range year {
		if r < '0' || r > '9' {
			return "", fmt.Errorf("%w: %q", ErrInvalidYear, value)
		}
	}
	return year, nil
}
