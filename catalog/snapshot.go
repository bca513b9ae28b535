package catalog

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/poiesic/moviesearch/core"
	"github.com/vmihailenco/msgpack/v5"
)

const snapshotFormatVersion = 1

// snapshotMovie is the portable form of a catalog row.
type snapshotMovie struct {
	ID          uint64   `msgpack:"id"`
	Title       string   `msgpack:"title"`
	Overview    string   `msgpack:"overview"`
	Genres      []string `msgpack:"genres"`
	Directors   []string `msgpack:"directors"`
	TopCast     []string `msgpack:"top_cast"`
	Source      string   `msgpack:"source"`
	ReleaseYear string   `msgpack:"release_year"`
	VoteAverage *float64 `msgpack:"vote_average"`
	VoteCount   int      `msgpack:"vote_count"`
	Description string   `msgpack:"description,omitempty"`
}

type catalogSnapshot struct {
	Version        int             `msgpack:"version"`
	EmbeddingModel string          `msgpack:"embedding_model"`
	Dimensions     int             `msgpack:"dimensions"`
	BuiltAtMicros  int64           `msgpack:"built_at"`
	Movies         []snapshotMovie `msgpack:"movies"`
	Vectors        [][]float32     `msgpack:"vectors"`
}

// WriteSnapshot encodes the catalog, including vectors and descriptions when
// present, as a single msgpack document.
func WriteSnapshot(w io.Writer, cat *Catalog) error {
	manifest := cat.Manifest()
	snap := catalogSnapshot{
		Version:        snapshotFormatVersion,
		EmbeddingModel: manifest.EmbeddingModel,
		Dimensions:     manifest.Dimensions,
		BuiltAtMicros:  manifest.BuiltAtMicros,
		Movies:         make([]snapshotMovie, cat.Len()),
		Vectors:        cat.Vectors(),
	}
	descriptions := cat.Descriptions()
	for i, r := range cat.Records() {
		m := snapshotMovie{
			ID:          uint64(r.Id),
			Title:       r.Title,
			Overview:    r.Overview,
			Genres:      r.Genres,
			Directors:   r.Directors,
			TopCast:     r.TopCast,
			Source:      r.Source.String(),
			ReleaseYear: r.ReleaseYear,
			VoteAverage: r.VoteAverage,
			VoteCount:   r.VoteCount,
		}
		if descriptions != nil {
			m.Description = descriptions[i]
		}
		snap.Movies[i] = m
	}
	return msgpack.NewEncoder(w).Encode(&snap)
}

// ReadSnapshot decodes a snapshot written by WriteSnapshot. The alignment
// rules of New apply: a snapshot with missing or misaligned vectors loads
// keyword-only.
func ReadSnapshot(r io.Reader) (*Catalog, error) {
	var snap catalogSnapshot
	if err := msgpack.NewDecoder(r).Decode(&snap); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	if snap.Version != snapshotFormatVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedSnapshot, snap.Version)
	}

	records := make([]*core.MovieRecord, len(snap.Movies))
	descriptions := make([]string, len(snap.Movies))
	haveDescriptions := len(snap.Movies) > 0
	for i, m := range snap.Movies {
		source, ok := core.ParseSource(m.Source)
		if !ok {
			return nil, fmt.Errorf("%w: row %d has source %q", core.ErrInvalidSource, i, m.Source)
		}
		records[i] = &core.MovieRecord{
			Id:          core.ID(m.ID),
			Title:       m.Title,
			Overview:    m.Overview,
			Genres:      nonNil(m.Genres),
			Directors:   nonNil(m.Directors),
			TopCast:     nonNil(m.TopCast),
			Source:      source,
			ReleaseYear: m.ReleaseYear,
			VoteAverage: m.VoteAverage,
			VoteCount:   m.VoteCount,
		}
		descriptions[i] = m.Description
		if m.Description == "" {
			haveDescriptions = false
		}
	}

	cat := New(records, snap.Vectors, core.Manifest{
		EmbeddingModel: snap.EmbeddingModel,
		BuiltAtMicros:  snap.BuiltAtMicros,
	})
	if haveDescriptions {
		cat.withDescriptions(descriptions)
	}
	return cat, nil
}

// SaveSnapshot writes a snapshot file at path, creating parent directories.
func SaveSnapshot(path string, cat *Catalog) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteSnapshot(file, cat); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// LoadSnapshot reads a snapshot file from path.
func LoadSnapshot(path string) (*Catalog, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ReadSnapshot(file)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
