package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/poiesic/moviesearch"
	"github.com/poiesic/moviesearch/ai"
	"github.com/poiesic/moviesearch/catalog"
	"github.com/poiesic/moviesearch/core"
	"github.com/poiesic/moviesearch/dataset"
	"github.com/poiesic/moviesearch/search"
	"github.com/urfave/cli/v2"
)

func newApp() *cli.App {
	defaults := catalog.DefaultBuildConfig()

	return &cli.App{
		Name:  "moviesearch",
		Usage: "Semantic search over Hollywood and Bollywood movies",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "db",
				Aliases: []string{"d"},
				Usage:   "Path to the catalog database directory",
				Value:   "./moviesearch_db",
			},
			&cli.StringFlag{
				Name:  "embedding-host",
				Usage: "Embedding service host URL",
				Value: "http://localhost:11434/v1",
			},
			&cli.StringFlag{
				Name:  "embedding-model",
				Usage: "Embedding model name",
				Value: "all-minilm",
			},
			&cli.StringFlag{
				Name:  "token",
				Usage: "Embedding service API token",
			},
			&cli.BoolFlag{
				Name:  "keyword-only",
				Usage: "Skip the embedding service and use keyword scoring only",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "build",
				Usage:  "Build and store the catalog from dataset files",
				Action: buildCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "hollywood",
						Usage: "Path to the TMDB-style Hollywood CSV",
					},
					&cli.StringFlag{
						Name:  "bollywood",
						Usage: "Path to the Bollywood CSV",
					},
					&cli.BoolFlag{
						Name:  "sample",
						Usage: "Build the built-in ten-film sample catalog",
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of descriptions to embed per request",
						Value: defaults.BatchSize,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N movies",
						Value: defaults.ReportInterval,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum attempts per embedding batch",
						Value: defaults.MaxRetries,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: defaults.RetryDelay,
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Number of concurrent embedding requests",
						Value: defaults.PoolSize,
					},
				},
			},
			{
				Name:   "reembed",
				Usage:  "Re-embed the stored catalog with the configured model",
				Action: reembedCommand,
			},
			{
				Name:      "search",
				Usage:     "Search the catalog with a natural-language query",
				ArgsUsage: "<query>",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "top-k",
						Aliases: []string{"k"},
						Usage:   "Maximum number of results",
						Value:   5,
					},
					&cli.StringFlag{
						Name:  "source",
						Usage: "Restrict results to Hollywood or Bollywood",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Print results as JSON",
					},
				},
			},
			{
				Name:   "recommend",
				Usage:  "List the best-rated movies of a source",
				Action: recommendCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "source",
						Usage:    "Hollywood or Bollywood",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "genre",
						Usage: "Only movies with a genre containing this text",
					},
					&cli.IntFlag{
						Name:    "top-k",
						Aliases: []string{"k"},
						Usage:   "Maximum number of results",
						Value:   5,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Print results as JSON",
					},
				},
			},
			{
				Name:      "analyze",
				Usage:     "Show the intent and entities of a query",
				ArgsUsage: "<query>",
				Action:    analyzeCommand,
			},
			{
				Name:   "export",
				Usage:  "Write the stored catalog to a snapshot file",
				Action: exportCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "out",
						Aliases:  []string{"o"},
						Usage:    "Snapshot file to write",
						Required: true,
					},
				},
			},
			{
				Name:   "import",
				Usage:  "Replace the stored catalog with a snapshot file",
				Action: importCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "in",
						Aliases:  []string{"i"},
						Usage:    "Snapshot file to read",
						Required: true,
					},
				},
			},
		},
	}
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(errWriter(c), &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}

func errWriter(c *cli.Context) io.Writer {
	if c.App.ErrWriter != nil {
		return c.App.ErrWriter
	}
	return os.Stderr
}

func openEngine(c *cli.Context, extra ...moviesearch.Option) (*moviesearch.Engine, error) {
	opts := []moviesearch.Option{moviesearch.WithLogger(slog.Default())}
	if c.Bool("keyword-only") {
		opts = append(opts, moviesearch.WithKeywordOnly())
	} else {
		aiConfig := ai.NewConfig(
			ai.WithEmbeddingHost(c.String("embedding-host")),
			ai.WithEmbeddingModel(c.String("embedding-model")),
			ai.WithToken(c.String("token")),
		)
		if err := aiConfig.Validate(); err != nil {
			return nil, fmt.Errorf("invalid AI configuration: %w", err)
		}
		opts = append(opts, moviesearch.WithAIConfig(aiConfig))
	}
	opts = append(opts, extra...)

	engine, err := moviesearch.Open(c.Context, c.String("db"), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	return engine, nil
}

func buildCommand(c *cli.Context) error {
	hollywood, bollywood := c.String("hollywood"), c.String("bollywood")
	if hollywood == "" && bollywood == "" && !c.Bool("sample") {
		return errors.New("no dataset given: use --hollywood, --bollywood or --sample")
	}

	cfg := catalog.BuildConfig{
		BatchSize:      c.Int("batch-size"),
		ReportInterval: c.Int("report-interval"),
		MaxRetries:     c.Int("max-retries"),
		RetryDelay:     c.Duration("retry-delay"),
		PoolSize:       c.Int("workers"),
	}
	if cfg.BatchSize <= 0 {
		return fmt.Errorf("batch-size must be greater than 0")
	}
	if cfg.MaxRetries <= 0 {
		return fmt.Errorf("max-retries must be greater than 0")
	}
	if cfg.PoolSize <= 0 {
		return fmt.Errorf("workers must be greater than 0")
	}

	var records []*core.MovieRecord
	if c.Bool("sample") {
		records = dataset.Sample()
	}
	if hollywood != "" || bollywood != "" {
		loaded, err := dataset.NewLoader().LoadFiles(hollywood, bollywood)
		if err != nil {
			return err
		}
		records = append(records, loaded...)
	}

	engine, err := openEngine(c, moviesearch.WithBuildConfig(cfg), moviesearch.WithProgress(errWriter(c)))
	if err != nil {
		return err
	}
	defer engine.Close()

	start := time.Now()
	cat, err := engine.Rebuild(c.Context, records)
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	fmt.Fprintf(c.App.Writer, "Built catalog of %d movies (%s) in %s\n",
		cat.Len(), cat.Capability(), time.Since(start).Round(time.Millisecond))
	if reason := cat.DegradedReason(); reason != "" {
		fmt.Fprintf(c.App.Writer, "Semantic search disabled: %s\n", reason)
	}
	return nil
}

func reembedCommand(c *cli.Context) error {
	engine, err := openEngine(c, moviesearch.WithProgress(errWriter(c)))
	if err != nil {
		return err
	}
	defer engine.Close()

	cat, err := engine.Reembed(c.Context)
	if err != nil {
		return fmt.Errorf("reembed failed: %w", err)
	}
	fmt.Fprintf(c.App.Writer, "Re-embedded %d movies (%s) with %s\n",
		cat.Len(), cat.Capability(), cat.Manifest().EmbeddingModel)
	return nil
}

func searchCommand(c *cli.Context) error {
	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return errors.New("query is required")
	}

	var source core.Source
	if name := c.String("source"); name != "" {
		var ok bool
		if source, ok = core.ParseSource(name); !ok {
			return fmt.Errorf("unknown source %q: must be Hollywood or Bollywood", name)
		}
	}

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	var result *search.RankedResult
	if source != 0 {
		result, err = engine.SearchBySource(c.Context, query, source, c.Int("top-k"))
	} else {
		result, err = engine.Search(c.Context, query, c.Int("top-k"))
	}
	if err != nil {
		return err
	}
	return printResult(c, result)
}

func recommendCommand(c *cli.Context) error {
	source, ok := core.ParseSource(c.String("source"))
	if !ok {
		return fmt.Errorf("unknown source %q: must be Hollywood or Bollywood", c.String("source"))
	}

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	result, err := engine.Recommend(source, c.String("genre"), c.Int("top-k"))
	if err != nil {
		return err
	}
	return printResult(c, result)
}

func analyzeCommand(c *cli.Context) error {
	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return errors.New("query is required")
	}

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	analysis, err := engine.Analyze(query)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(analysis)
}

func exportCommand(c *cli.Context) error {
	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	if err := engine.ExportSnapshot(c.String("out")); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "Exported %d movies to %s\n", engine.Catalog().Len(), c.String("out"))
	return nil
}

func importCommand(c *cli.Context) error {
	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	cat, err := engine.ImportSnapshot(c.Context, c.String("in"))
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "Imported %d movies (%s)\n", cat.Len(), cat.Capability())
	return nil
}
