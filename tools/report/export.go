package main

import (
	"log"

	"github.com/vermi/gnlp-analyze/internal/models"
	"github.com/vermi/gnlp-analyze/internal/store"
)

// exportRow flattens one analyzed document for spreadsheet-style consumers
type exportRow struct {
	Table      string  `json:"table"`
	DocID      int     `json:"doc_id"`
	Title      string  `json:"title,omitempty"`
	Author     string  `json:"author,omitempty"`
	Sentences  int     `json:"sentences"`
	TokenCount int     `json:"token_count"`
	TopToken   string  `json:"top_token,omitempty"`
	Score      float64 `json:"score"`
	Magnitude  float64 `json:"magnitude"`
}

func runExport() {
	rows, err := buildExport(*input)
	if err != nil {
		log.Fatalf("build export: %v", err)
	}
	writeOutput(rows)
}

func buildExport(path string) ([]exportRow, error) {
	st, err := store.Open(path)
	if err != nil {
		return nil, err
	}

	rows := []exportRow{}
	for _, name := range []string{"posts", "comments"} {
		for _, doc := range st.Table(name).All() {
			if !doc.Has("syntax") || !doc.Has("sentiment") {
				continue
			}
			var syntax models.SyntaxResult
			if err := doc.Get("syntax", &syntax); err != nil {
				continue
			}
			var sentiment models.SentimentResult
			if err := doc.Get("sentiment", &sentiment); err != nil {
				continue
			}

			row := exportRow{
				Table:      name,
				DocID:      doc.ID,
				Sentences:  syntax.Sentences,
				TokenCount: syntax.TokenCount,
				Score:      sentiment.Score,
				Magnitude:  sentiment.Magnitude,
			}
			row.Title, _ = doc.String("title")
			row.Author, _ = doc.String("author")
			if keys := syntax.Tokens.Keys(); len(keys) > 0 {
				row.TopToken = keys[0]
			}
			rows = append(rows, row)
		}
	}
	return rows, nil
}
