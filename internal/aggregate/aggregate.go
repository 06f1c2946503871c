// Package aggregate folds raw language API responses into the result shapes
// that get persisted.
package aggregate

import (
	"sort"

	"github.com/vermi/gnlp-analyze/internal/models"
)

// Tokens builds per-token statistics from a syntax token stream. Tokens are
// keyed by their exact surface text; repeats bump the count and keep the
// part-of-speech tag of the first occurrence. The result is ordered by
// descending count, with ties staying in first-seen order.
func Tokens(tokens []models.Token) *models.TokenMap {
	type entry struct {
		part  string
		count int
	}
	seen := make(map[string]*entry, len(tokens))
	order := make([]string, 0, len(tokens))

	for _, tok := range tokens {
		text := tok.Text.Content
		if e, ok := seen[text]; ok {
			e.count++
			continue
		}
		seen[text] = &entry{part: tok.PartOfSpeech.Tag, count: 1}
		order = append(order, text)
	}

	sort.SliceStable(order, func(i, j int) bool {
		return seen[order[i]].count > seen[order[j]].count
	})

	out := models.NewTokenMap()
	for _, text := range order {
		e := seen[text]
		out.Set(text, models.TokenStat{Part: e.part, Count: e.count})
	}
	return out
}

// Syntax converts a raw syntax response into its persisted form.
func Syntax(resp *models.SyntaxResponse) *models.SyntaxResult {
	return &models.SyntaxResult{
		Sentences:  len(resp.Sentences),
		TokenCount: len(resp.Tokens),
		Tokens:     Tokens(resp.Tokens),
	}
}

// Sentiment converts a raw sentiment response into its persisted form.
func Sentiment(resp *models.SentimentResponse) *models.SentimentResult {
	return &models.SentimentResult{
		Score:     resp.DocumentSentiment.Score,
		Magnitude: resp.DocumentSentiment.Magnitude,
	}
}
