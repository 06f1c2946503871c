package main

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"
)

// Listing payloads wrap every record in a kind marker: "t3" entries are
// posts, "t1" comments. Comment trees come back as an array of two listings,
// the post itself followed by its comments.
type redditListing struct {
	Data struct {
		Children []struct {
			Kind string     `json:"kind"`
			Data redditItem `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type redditItem struct {
	ID         string  `json:"id"`
	Subreddit  string  `json:"subreddit"`
	Title      string  `json:"title"`
	Selftext   string  `json:"selftext"`
	Body       string  `json:"body"`
	Author     string  `json:"author"`
	Permalink  string  `json:"permalink"`
	Score      int     `json:"score"`
	CreatedUTC float64 `json:"created_utc"`
}

// runListingGatherer walks the subreddit's JSON listing and each post's
// comment endpoint, storing both tables in one pass
func runListingGatherer() {
	st := newRunStore(*outPath, *subreddit, "listing")
	posts := st.Table("posts")
	comments := st.Table("comments")

	c := colly.NewCollector(
		colly.AllowedDomains("old.reddit.com", "www.reddit.com"),
		colly.UserAgent(gatherUserAgent),
	)
	c.Limit(&colly.LimitRule{DomainGlob: "*reddit.*", Parallelism: 1, Delay: 2 * time.Second})

	gathered := 0
	c.OnResponse(func(r *colly.Response) {
		switch {
		case strings.HasSuffix(r.Request.URL.Path, "/new.json"):
			var listing redditListing
			if err := json.Unmarshal(r.Body, &listing); err != nil {
				log.Printf("decode listing: %v", err)
				return
			}
			for _, child := range listing.Data.Children {
				if child.Kind != "t3" || gathered >= *limit {
					continue
				}
				if _, err := posts.Insert(postFields(child.Data)); err != nil {
					log.Printf("store post %s: %v", child.Data.ID, err)
					continue
				}
				gathered++
				r.Request.Visit(fmt.Sprintf("https://old.reddit.com/comments/%s.json", child.Data.ID))
			}
		case strings.Contains(r.Request.URL.Path, "/comments/"):
			var thread []redditListing
			if err := json.Unmarshal(r.Body, &thread); err != nil {
				log.Printf("decode comments: %v", err)
				return
			}
			for _, listing := range thread {
				for _, child := range listing.Data.Children {
					if child.Kind != "t1" || child.Data.Body == "" {
						continue
					}
					if _, err := comments.Insert(commentFields(child.Data)); err != nil {
						log.Printf("store comment %s: %v", child.Data.ID, err)
					}
				}
			}
		}
	})

	c.OnRequest(func(r *colly.Request) { log.Println("visiting", r.URL.String()) })
	c.OnError(func(r *colly.Response, err error) { log.Printf("error %s: %v", r.Request.URL.String(), err) })

	start := fmt.Sprintf("https://old.reddit.com/r/%s/new.json?limit=%d", *subreddit, *limit)
	if err := c.Visit(start); err != nil {
		log.Fatalf("visit listing: %v", err)
	}
	c.Wait()

	if err := st.Flush(); err != nil {
		log.Fatalf("write store: %v", err)
	}
	log.Printf("gathered %d posts and %d comments into %s", posts.Len(), comments.Len(), *outPath)
}

// postFields maps a t3 listing record onto a stored post
func postFields(item redditItem) map[string]any {
	return map[string]any{
		"id":        item.ID,
		"subreddit": item.Subreddit,
		"title":     item.Title,
		"text":      item.Selftext,
		"author":    item.Author,
		"permalink": item.Permalink,
		"score":     item.Score,
		"created":   int64(item.CreatedUTC),
	}
}

// commentFields maps a t1 listing record onto a stored comment
func commentFields(item redditItem) map[string]any {
	return map[string]any{
		"id":        item.ID,
		"subreddit": item.Subreddit,
		"text":      item.Body,
		"author":    item.Author,
		"score":     item.Score,
		"created":   int64(item.CreatedUTC),
	}
}
