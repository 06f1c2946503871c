package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/temoto/robotstxt"
)

// shared http client with timeout and connection reuse
var httpClient = &http.Client{
	Timeout: 20 * time.Second,
	Transport: &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	},
}

var (
	robotsCache = make(map[string]*robotstxt.RobotsData)
	robotsMu    sync.Mutex
)

// allowedByRobots checks the host's robots.txt for our agent. Hosts whose
// robots.txt cannot be fetched or parsed are treated as allowing.
func allowedByRobots(ctx context.Context, raw string) bool {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Host == "" {
		return false
	}
	host := parsed.Scheme + "://" + parsed.Host

	robotsMu.Lock()
	data, ok := robotsCache[host]
	robotsMu.Unlock()
	if !ok {
		req, _ := http.NewRequestWithContext(ctx, http.MethodGet, host+"/robots.txt", nil)
		req.Header.Set("User-Agent", gatherUserAgent)
		resp, err := httpClient.Do(req)
		if err != nil {
			log.Printf("could not fetch robots.txt for %s: %v", host, err)
			return true
		}
		defer resp.Body.Close()
		rdata, err := robotstxt.FromResponse(resp)
		if err != nil {
			log.Printf("could not parse robots.txt for %s: %v", host, err)
			return true
		}
		robotsMu.Lock()
		robotsCache[host] = rdata
		robotsMu.Unlock()
		data = rdata
	}

	group := data.FindGroup("gnlp-analyze")
	if group == nil {
		group = data.FindGroup("*")
	}
	return group.Test(parsed.Path)
}

// fetchDocument retrieves one HTML page with retries and backoff
func fetchDocument(ctx context.Context, u string) (*goquery.Document, error) {
	var lastErr error
	backoff := 500 * time.Millisecond
	for attempt := 0; attempt < 3; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", gatherUserAgent)

		resp, err := httpClient.Do(req)
		if err != nil {
			lastErr = err
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
			continue
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			resp.Body.Close()
			return nil, fmt.Errorf("GET %s: status %d", u, resp.StatusCode)
		}
		if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "text/html") {
			resp.Body.Close()
			return nil, fmt.Errorf("GET %s: non-html content %q", u, ct)
		}

		doc, err := goquery.NewDocumentFromReader(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, err
		}
		return doc, nil
	}
	return nil, lastErr
}

// runPagesGatherer fetches the rendered listing page without a browser, then
// fans out over each post's comment page with a small worker pool. The pool
// drains cleanly on SIGINT, keeping whatever was already collected.
func runPagesGatherer() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigch := make(chan os.Signal, 1)
	signal.Notify(sigch, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigch
		log.Println("interrupt received, finishing in-flight pages")
		cancel()
	}()

	listURL := fmt.Sprintf("https://old.reddit.com/r/%s/new/", *subreddit)
	if !allowedByRobots(ctx, listURL) {
		log.Fatalf("robots.txt disallows %s", listURL)
	}

	doc, err := fetchDocument(ctx, listURL)
	if err != nil {
		log.Fatalf("fetch listing: %v", err)
	}

	found := renderedPosts(doc, *subreddit)
	if len(found) > *limit {
		found = found[:*limit]
	}

	st := newRunStore(*outPath, *subreddit, "pages")
	posts := st.Table("posts")

	jobs := make(chan string, len(found))
	results := make(chan map[string]any, 256)
	limiter := time.Tick(time.Second)

	var wg sync.WaitGroup
	n := *workers
	if n < 1 {
		n = 1
	}
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for permalink := range jobs {
				select {
				case <-ctx.Done():
					return
				case <-limiter:
				}
				pageURL := "https://old.reddit.com" + permalink
				if !allowedByRobots(ctx, pageURL) {
					continue
				}
				page, err := fetchDocument(ctx, pageURL)
				if err != nil {
					log.Printf("fetch %s: %v", pageURL, err)
					continue
				}
				for _, comment := range pageComments(page, *subreddit) {
					select {
					case results <- comment:
					case <-ctx.Done():
						return
					}
				}
			}
		}()
	}

	for _, fields := range found {
		if _, err := posts.Insert(fields); err != nil {
			log.Printf("store post: %v", err)
			continue
		}
		if permalink, ok := fields["permalink"].(string); ok && permalink != "" {
			jobs <- permalink
		}
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	comments := st.Table("comments")
	for fields := range results {
		if _, err := comments.Insert(fields); err != nil {
			log.Printf("store comment: %v", err)
		}
	}

	if err := st.Flush(); err != nil {
		log.Fatalf("write store: %v", err)
	}
	log.Printf("gathered %d posts and %d comments into %s", posts.Len(), comments.Len(), *outPath)
}

// pageComments extracts comment bodies from a rendered thread page
func pageComments(doc *goquery.Document, sub string) []map[string]any {
	var out []map[string]any
	doc.Find("div.commentarea div.comment").Each(func(i int, s *goquery.Selection) {
		body := strings.TrimSpace(whitespaceRE.ReplaceAllString(s.Find(".entry .md").First().Text(), " "))
		if body == "" {
			return
		}
		out = append(out, map[string]any{
			"id":        strings.TrimPrefix(s.AttrOr("data-fullname", ""), "t1_"),
			"subreddit": sub,
			"text":      body,
			"author":    s.AttrOr("data-author", ""),
		})
	})
	return out
}
