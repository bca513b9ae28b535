package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/poiesic/moviesearch/search"
	"github.com/urfave/cli/v2"
)

type resultRow struct {
	Title     string   `json:"title"`
	Overview  string   `json:"overview"`
	Genres    []string `json:"genres"`
	Directors []string `json:"directors"`
	Cast      []string `json:"cast"`
	Source    string   `json:"source"`
	Rating    *float64 `json:"rating"`
	Score     float32  `json:"score"`
	ScoreKind string   `json:"score_kind"`
}

type resultPayload struct {
	Query       string      `json:"query"`
	Outcome     string      `json:"outcome"`
	SemanticErr string      `json:"semantic_error,omitempty"`
	Results     []resultRow `json:"results"`
}

func payloadOf(result *search.RankedResult) resultPayload {
	p := resultPayload{
		Query:   result.Query,
		Outcome: result.Outcome.String(),
		Results: make([]resultRow, len(result.Results)),
	}
	if result.SemanticErr != nil {
		p.SemanticErr = result.SemanticErr.Error()
	}
	for i, r := range result.Results {
		p.Results[i] = resultRow{
			Title:     r.Record.Title,
			Overview:  r.Record.Overview,
			Genres:    r.Record.Genres,
			Directors: r.Record.Directors,
			Cast:      r.Record.TopCast,
			Source:    r.Record.Source.String(),
			Rating:    r.Record.VoteAverage,
			Score:     r.Score,
			ScoreKind: r.Kind.String(),
		}
	}
	return p
}

func printResult(c *cli.Context, result *search.RankedResult) error {
	payload := payloadOf(result)
	if c.Bool("json") {
		enc := json.NewEncoder(c.App.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	}

	w := c.App.Writer
	if len(payload.Results) == 0 {
		fmt.Fprintf(w, "No movies found for %q\n", payload.Query)
		return nil
	}
	fmt.Fprintf(w, "Found %d movies (%s)\n", len(payload.Results), payload.Outcome)
	if payload.SemanticErr != "" {
		fmt.Fprintf(w, "Semantic search unavailable: %s\n", payload.SemanticErr)
	}
	for i, row := range payload.Results {
		fmt.Fprintf(w, "%d. %s [%s] %s %.3f\n", i+1, row.Title, row.Source, row.ScoreKind, row.Score)
		if len(row.Genres) > 0 {
			fmt.Fprintf(w, "   Genres: %s\n", strings.Join(row.Genres, ", "))
		}
		if len(row.Directors) > 0 {
			fmt.Fprintf(w, "   Directed by: %s\n", strings.Join(row.Directors, ", "))
		}
		if row.Rating != nil {
			fmt.Fprintf(w, "   Rating: %.1f\n", *row.Rating)
		}
		if row.Overview != "" {
			fmt.Fprintf(w, "   %s\n", row.Overview)
		}
	}
	return nil
}
