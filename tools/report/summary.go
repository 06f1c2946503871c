package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/vermi/gnlp-analyze/internal/models"
	"github.com/vermi/gnlp-analyze/internal/store"
)

type summary struct {
	Store     string         `json:"store"`
	Documents int            `json:"documents"`
	Analyzed  int            `json:"analyzed"`
	TopTokens []tokenEntry   `json:"top_tokens"`
	Sentiment sentimentStats `json:"sentiment"`
}

type tokenEntry struct {
	Token string `json:"token"`
	Part  string `json:"part"`
	Count int    `json:"count"`
}

type sentimentStats struct {
	MeanScore     float64   `json:"mean_score"`
	MeanMagnitude float64   `json:"mean_magnitude"`
	MostPositive  *docScore `json:"most_positive,omitempty"`
	MostNegative  *docScore `json:"most_negative,omitempty"`
}

type docScore struct {
	Table string  `json:"table"`
	DocID int     `json:"doc_id"`
	Score float64 `json:"score"`
}

func runSummary() {
	rep, err := buildSummary(*input, *topN)
	if err != nil {
		log.Fatalf("build summary: %v", err)
	}
	writeOutput(rep)
}

// buildSummary folds every analyzed document into corpus-wide statistics.
// Token counts merge across documents; the merged set is ordered by
// descending count with first-seen ties, same as per-document results.
func buildSummary(path string, topN int) (*summary, error) {
	st, err := store.Open(path)
	if err != nil {
		return nil, err
	}

	rep := &summary{Store: path}
	counts := make(map[string]*tokenEntry)
	var order []string
	var scoreSum, magSum float64

	for _, name := range []string{"posts", "comments"} {
		for _, doc := range st.Table(name).All() {
			rep.Documents++

			var syntax models.SyntaxResult
			var sentiment models.SentimentResult
			if !doc.Has("syntax") || !doc.Has("sentiment") {
				continue
			}
			if err := doc.Get("syntax", &syntax); err != nil {
				return nil, fmt.Errorf("document %d in %s: %w", doc.ID, name, err)
			}
			if err := doc.Get("sentiment", &sentiment); err != nil {
				return nil, fmt.Errorf("document %d in %s: %w", doc.ID, name, err)
			}
			rep.Analyzed++

			for _, token := range syntax.Tokens.Keys() {
				stat, _ := syntax.Tokens.Get(token)
				if e, ok := counts[token]; ok {
					e.Count += stat.Count
					continue
				}
				counts[token] = &tokenEntry{Token: token, Part: stat.Part, Count: stat.Count}
				order = append(order, token)
			}

			scoreSum += sentiment.Score
			magSum += sentiment.Magnitude
			if rep.Sentiment.MostPositive == nil || sentiment.Score > rep.Sentiment.MostPositive.Score {
				rep.Sentiment.MostPositive = &docScore{Table: name, DocID: doc.ID, Score: sentiment.Score}
			}
			if rep.Sentiment.MostNegative == nil || sentiment.Score < rep.Sentiment.MostNegative.Score {
				rep.Sentiment.MostNegative = &docScore{Table: name, DocID: doc.ID, Score: sentiment.Score}
			}
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]].Count > counts[order[j]].Count
	})
	if len(order) > topN {
		order = order[:topN]
	}
	for _, token := range order {
		rep.TopTokens = append(rep.TopTokens, *counts[token])
	}

	if rep.Analyzed > 0 {
		rep.Sentiment.MeanScore = scoreSum / float64(rep.Analyzed)
		rep.Sentiment.MeanMagnitude = magSum / float64(rep.Analyzed)
	}
	return rep, nil
}

func writeOutput(v any) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatalf("json marshal: %v", err)
	}
	if *out == "" {
		fmt.Println(string(b))
		return
	}
	if err := os.WriteFile(*out, b, 0o644); err != nil {
		log.Fatalf("write %s: %v", *out, err)
	}
	log.Printf("written %s", *out)
}
