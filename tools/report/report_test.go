package main

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/vermi/gnlp-analyze/internal/models"
	"github.com/vermi/gnlp-analyze/internal/store"
)

func analyzedStore(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "store.json")

	st := store.Create(path)
	if _, err := st.Table(store.DefaultTable).Insert(map[string]any{"subreddit": "golang"}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	goTokens := models.NewTokenMap()
	goTokens.Set("go", models.TokenStat{Part: "NOUN", Count: 3})
	goTokens.Set("fast", models.TokenStat{Part: "ADJ", Count: 1})

	posts := st.Table("posts")
	if _, err := posts.Insert(map[string]any{
		"title": "go is fine",
		"text":  "",
		"syntax": models.SyntaxResult{
			Sentences: 2, TokenCount: 4, Tokens: goTokens,
		},
		"sentiment": models.SentimentResult{Score: 0.8, Magnitude: 1.0},
	}); err != nil {
		t.Fatalf("insert post: %v", err)
	}
	if _, err := posts.Insert(map[string]any{
		"title": "not analyzed yet",
		"text":  "pending",
	}); err != nil {
		t.Fatalf("insert post: %v", err)
	}

	slowTokens := models.NewTokenMap()
	slowTokens.Set("slow", models.TokenStat{Part: "ADJ", Count: 2})
	slowTokens.Set("go", models.TokenStat{Part: "VERB", Count: 2})

	if _, err := st.Table("comments").Insert(map[string]any{
		"author": "carol",
		"text":   "",
		"syntax": models.SyntaxResult{
			Sentences: 1, TokenCount: 4, Tokens: slowTokens,
		},
		"sentiment": models.SentimentResult{Score: -0.6, Magnitude: 0.5},
	}); err != nil {
		t.Fatalf("insert comment: %v", err)
	}

	if err := st.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	return path
}

func TestBuildSummary(t *testing.T) {
	path := analyzedStore(t)

	rep, err := buildSummary(path, 10)
	if err != nil {
		t.Fatalf("buildSummary: %v", err)
	}

	if rep.Documents != 3 {
		t.Errorf("documents: got %d, want 3", rep.Documents)
	}
	if rep.Analyzed != 2 {
		t.Errorf("analyzed: got %d, want 2", rep.Analyzed)
	}

	if len(rep.TopTokens) != 3 {
		t.Fatalf("top tokens: got %d, want 3", len(rep.TopTokens))
	}
	if rep.TopTokens[0].Token != "go" || rep.TopTokens[0].Count != 5 {
		t.Errorf("top token: got %+v", rep.TopTokens[0])
	}
	if rep.TopTokens[0].Part != "NOUN" {
		t.Errorf("merged token should keep first-seen part, got %q", rep.TopTokens[0].Part)
	}

	if got := rep.Sentiment.MeanScore; math.Abs(got-0.1) > 1e-9 {
		t.Errorf("mean score: got %v, want 0.1", got)
	}
	if got := rep.Sentiment.MeanMagnitude; math.Abs(got-0.75) > 1e-9 {
		t.Errorf("mean magnitude: got %v, want 0.75", got)
	}
	if rep.Sentiment.MostPositive == nil || rep.Sentiment.MostPositive.Table != "posts" {
		t.Errorf("most positive: got %+v", rep.Sentiment.MostPositive)
	}
	if rep.Sentiment.MostNegative == nil || rep.Sentiment.MostNegative.Table != "comments" {
		t.Errorf("most negative: got %+v", rep.Sentiment.MostNegative)
	}
}

func TestBuildSummaryTopNTruncates(t *testing.T) {
	path := analyzedStore(t)

	rep, err := buildSummary(path, 1)
	if err != nil {
		t.Fatalf("buildSummary: %v", err)
	}
	if len(rep.TopTokens) != 1 {
		t.Errorf("top tokens: got %d, want 1", len(rep.TopTokens))
	}
	if rep.TopTokens[0].Token != "go" {
		t.Errorf("kept token: got %q", rep.TopTokens[0].Token)
	}
}

func TestBuildExport(t *testing.T) {
	path := analyzedStore(t)

	rows, err := buildExport(path)
	if err != nil {
		t.Fatalf("buildExport: %v", err)
	}

	if len(rows) != 2 {
		t.Fatalf("rows: got %d, want 2", len(rows))
	}

	post := rows[0]
	if post.Table != "posts" || post.DocID != 1 {
		t.Errorf("post row: %+v", post)
	}
	if post.Title != "go is fine" || post.TopToken != "go" {
		t.Errorf("post row fields: %+v", post)
	}
	if post.Sentences != 2 || post.Score != 0.8 {
		t.Errorf("post row analysis: %+v", post)
	}

	comment := rows[1]
	if comment.Table != "comments" || comment.Author != "carol" {
		t.Errorf("comment row: %+v", comment)
	}
	if comment.Title != "" {
		t.Errorf("comment should have no title, got %q", comment.Title)
	}
}
