// Command gatherer collects Reddit posts and comments into the JSON document
// store that gnlp-analyze consumes. Each strategy trades speed for coverage:
// the Atom feed is fastest but post-only, the listing endpoints carry comment
// trees, the page fetcher works where the JSON endpoints are throttled, and
// the browser renders script-heavy pages as a last resort.
package main

import (
	"flag"
	"fmt"
	"os"
)

var (
	subreddit = flag.String("sub", "golang", "subreddit to gather")
	outPath   = flag.String("out", "", "store file to write (default ./data/<sub>_store.json)")
	limit     = flag.Int("limit", 25, "maximum number of posts to gather")
	workers   = flag.Int("workers", 4, "parallel page fetches for the pages strategy")
)

func printUsage() {
	fmt.Println("Usage: gatherer [flags] <strategy>")
	fmt.Println("Available strategies:")
	fmt.Println("  rss     - gather recent posts from the subreddit Atom feed")
	fmt.Println("  listing - gather posts and comment trees from the JSON listing endpoints")
	fmt.Println("  pages   - gather posts and comments from the rendered listing pages")
	fmt.Println("  browser - gather posts via a headless browser (script-heavy fallback)")
}

func main() {
	flag.Parse()
	if flag.NArg() == 0 {
		printUsage()
		os.Exit(1)
	}
	if *outPath == "" {
		*outPath = fmt.Sprintf("./data/%s_store.json", *subreddit)
	}
	strategy := flag.Arg(0)
	switch strategy {
	case "rss":
		runFeedGatherer()
	case "listing":
		runListingGatherer()
	case "pages":
		runPagesGatherer()
	case "browser":
		runBrowserGatherer()
	default:
		fmt.Fprintf(os.Stderr, "unknown strategy: %s\n", strategy)
		printUsage()
		os.Exit(2)
	}
}
