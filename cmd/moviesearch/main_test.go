package main

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

// run executes the CLI with args against a keyword-only catalog at db and
// returns what it printed.
func run(t *testing.T, db string, args ...string) (string, error) {
	t.Helper()
	app := newApp()
	var out bytes.Buffer
	app.Writer = &out
	app.ErrWriter = io.Discard

	full := append([]string{"moviesearch", "--keyword-only", "--log-level", "error", "--db", db}, args...)
	err := app.Run(full)
	return out.String(), err
}

func findFlag[T cli.Flag](cmd *cli.Command, name string) T {
	var zero T
	for _, flag := range cmd.Flags {
		if f, ok := flag.(T); ok && strings.Contains(strings.Join(flag.Names(), ","), name) {
			return f
		}
	}
	return zero
}

func TestAppFlags(t *testing.T) {
	app := newApp()

	t.Run("commands", func(t *testing.T) {
		var names []string
		for _, cmd := range app.Commands {
			names = append(names, cmd.Name)
		}
		assert.Equal(t, []string{"build", "reembed", "search", "recommend", "analyze", "export", "import"}, names)
	})

	t.Run("build defaults", func(t *testing.T) {
		build := app.Command("build")
		require.NotNil(t, build)
		batch := findFlag[*cli.IntFlag](build, "batch-size")
		require.NotNil(t, batch)
		assert.Equal(t, 64, batch.Value)
		retries := findFlag[*cli.IntFlag](build, "max-retries")
		require.NotNil(t, retries)
		assert.Equal(t, 3, retries.Value)
	})

	t.Run("recommend requires source", func(t *testing.T) {
		source := findFlag[*cli.StringFlag](app.Command("recommend"), "source")
		require.NotNil(t, source)
		assert.True(t, source.Required)
	})
}

func TestInvalidLogLevel(t *testing.T) {
	app := newApp()
	app.Writer = io.Discard
	app.ErrWriter = io.Discard

	err := app.Run([]string{"moviesearch", "--log-level", "loud", "analyze", "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestBuildRequiresDataset(t *testing.T) {
	_, err := run(t, t.TempDir(), "build")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no dataset given")
}

func TestSearchBeforeBuild(t *testing.T) {
	_, err := run(t, t.TempDir(), "search", "comedy")
	assert.Error(t, err)
}

func TestEndToEnd(t *testing.T) {
	db := filepath.Join(t.TempDir(), "db")

	out, err := run(t, db, "build", "--sample")
	require.NoError(t, err)
	assert.Contains(t, out, "Built catalog of 10 movies (keyword-only)")

	t.Run("search", func(t *testing.T) {
		out, err := run(t, db, "search", "funny", "Bollywood", "movies")
		require.NoError(t, err)
		assert.Contains(t, out, "1. 3 Idiots [Bollywood] keyword 2.200")
		assert.NotContains(t, out, "[Hollywood]")
	})

	t.Run("search json by source", func(t *testing.T) {
		out, err := run(t, db, "search", "--json", "--source", "hollywood", "-k", "2", "dreams")
		require.NoError(t, err)

		var payload resultPayload
		require.NoError(t, json.Unmarshal([]byte(out), &payload))
		assert.Equal(t, "Hollywood dreams", payload.Query)
		assert.Equal(t, "keyword", payload.Outcome)
		require.NotEmpty(t, payload.Results)
		assert.Equal(t, "Inception", payload.Results[0].Title)
		for _, r := range payload.Results {
			assert.Equal(t, "Hollywood", r.Source)
		}
	})

	t.Run("search unknown source", func(t *testing.T) {
		_, err := run(t, db, "search", "--source", "tollywood", "dreams")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown source")
	})

	t.Run("recommend", func(t *testing.T) {
		out, err := run(t, db, "recommend", "--source", "Hollywood", "--genre", "Sci-Fi", "-k", "2", "--json")
		require.NoError(t, err)

		var payload resultPayload
		require.NoError(t, json.Unmarshal([]byte(out), &payload))
		require.Len(t, payload.Results, 2)
		assert.Equal(t, "Inception", payload.Results[0].Title)
		assert.Equal(t, "Interstellar", payload.Results[1].Title)
		assert.Equal(t, "rating", payload.Results[0].ScoreKind)
	})

	t.Run("analyze", func(t *testing.T) {
		out, err := run(t, db, "analyze", "movies", "like", "Dangal")
		require.NoError(t, err)

		var analysis struct {
			Intent struct {
				Primary string `json:"primary"`
			} `json:"intent"`
			Entities struct {
				Movies []string `json:"movies"`
			} `json:"entities"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &analysis))
		assert.Equal(t, "find similar movies", analysis.Intent.Primary)
		assert.Equal(t, []string{"Dangal"}, analysis.Entities.Movies)
	})

	t.Run("export and import", func(t *testing.T) {
		snapshot := filepath.Join(t.TempDir(), "catalog.msgpack")
		out, err := run(t, db, "export", "--out", snapshot)
		require.NoError(t, err)
		assert.Contains(t, out, "Exported 10 movies")
		_, err = os.Stat(snapshot)
		require.NoError(t, err)

		other := filepath.Join(t.TempDir(), "other")
		out, err = run(t, other, "import", "--in", snapshot)
		require.NoError(t, err)
		assert.Contains(t, out, "Imported 10 movies (keyword-only)")

		out, err = run(t, other, "search", "hera", "pheri")
		require.NoError(t, err)
		assert.Contains(t, out, "1. Hera Pheri")
	})
}
