package main

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"
)

// runBrowserGatherer renders the subreddit listing in a headless browser and
// extracts posts from the resulting DOM. Slow, but survives pages the plain
// endpoints refuse to serve.
func runBrowserGatherer() {
	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	pageURL := fmt.Sprintf("https://old.reddit.com/r/%s/new/", *subreddit)

	ctx2, cancel2 := context.WithTimeout(ctx, 60*time.Second)
	defer cancel2()

	var html string
	err := chromedp.Run(ctx2,
		chromedp.Navigate(pageURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		log.Fatalf("render %s: %v", pageURL, err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		log.Fatalf("parse rendered page: %v", err)
	}

	st := newRunStore(*outPath, *subreddit, "browser")
	posts := st.Table("posts")

	count := 0
	for _, fields := range renderedPosts(doc, *subreddit) {
		if count >= *limit {
			break
		}
		if _, err := posts.Insert(fields); err != nil {
			log.Printf("store post: %v", err)
			continue
		}
		count++
	}

	if err := st.Flush(); err != nil {
		log.Fatalf("write store: %v", err)
	}
	log.Printf("gathered %d posts into %s", count, *outPath)
}

// renderedPosts pulls listing entries out of a rendered old-reddit DOM. The
// selftext preview lives in a hidden expando, so text may be empty; the
// analyzer skips those records.
func renderedPosts(doc *goquery.Document, sub string) []map[string]any {
	var out []map[string]any
	doc.Find("div.thing[data-fullname]").Each(func(i int, s *goquery.Selection) {
		title := strings.TrimSpace(s.Find("a.title").Text())
		if title == "" {
			return
		}
		out = append(out, map[string]any{
			"id":        strings.TrimPrefix(s.AttrOr("data-fullname", ""), "t3_"),
			"subreddit": sub,
			"title":     title,
			"text":      strings.TrimSpace(whitespaceRE.ReplaceAllString(s.Find("div.md").Text(), " ")),
			"url":       s.Find("a.title").AttrOr("href", ""),
			"permalink": s.AttrOr("data-permalink", ""),
			"author":    s.AttrOr("data-author", ""),
		})
	})
	return out
}
