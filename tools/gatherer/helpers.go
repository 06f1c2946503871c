package main

import (
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/vermi/gnlp-analyze/internal/store"
)

// reddit rejects generic user agents, so every strategy identifies itself
const gatherUserAgent = "gnlp-analyze:gatherer/1.0 (by /u/vermi)"

var whitespaceRE = regexp.MustCompile(`\s+`)

// ensureDir is shared across gather strategies
func ensureDir(p string) {
	if err := os.MkdirAll(p, 0o755); err != nil {
		log.Fatalf("mkdir %s: %v", p, err)
	}
}

// htmlToText flattens feed or page HTML into plain text
func htmlToText(htmlStr string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlStr))
	if err != nil {
		return strings.TrimSpace(htmlStr)
	}
	doc.Find("script, style, noscript").Remove()
	return strings.TrimSpace(whitespaceRE.ReplaceAllString(doc.Text(), " "))
}

// newRunStore prepares an output store seeded with one metadata record per
// gather run; the analyzer's schema check keys off its subreddit field
func newRunStore(path, sub, source string) *store.Store {
	ensureDir(filepath.Dir(path))
	st := store.Create(path)
	if _, err := st.Table(store.DefaultTable).Insert(map[string]any{
		"subreddit": sub,
		"source":    source,
		"gathered":  time.Now().UTC().Format(time.RFC3339),
	}); err != nil {
		log.Fatalf("seed store: %v", err)
	}
	return st
}
