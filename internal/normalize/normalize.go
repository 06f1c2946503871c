// Package normalize prepares raw document text for the language service.
package normalize

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/yuin/goldmark"
)

// Strategy converts raw input into the plain lowercase text sent for
// analysis. Implementations are pure and never fail; stripping is
// best-effort and must not lose non-markup characters.
type Strategy interface {
	Normalize(text string) string
}

// Plain lowercases ad-hoc blobs without touching their markup.
type Plain struct{}

func (Plain) Normalize(text string) string {
	return strings.ToLower(text)
}

// Markdown strips the markup of gathered documents. The text is rendered to
// HTML and flattened to its text content; newlines collapse to single spaces
// before lowercasing.
type Markdown struct{}

func (Markdown) Normalize(text string) string {
	var html bytes.Buffer
	if err := goldmark.Convert([]byte(text), &html); err != nil {
		html.Reset()
		html.WriteString(text)
	}

	plain := text
	if doc, err := goquery.NewDocumentFromReader(&html); err == nil {
		plain = doc.Text()
	}

	plain = strings.ReplaceAll(plain, "\n", " ")
	return strings.ToLower(strings.TrimSpace(plain))
}
