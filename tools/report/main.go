// Command report summarizes an analyzed store produced by gnlp-analyze.
package main

import (
	"flag"
	"fmt"
	"os"
)

var (
	input = flag.String("input", "", "path to an analyzed store file")
	out   = flag.String("out", "", "file to write (default stdout)")
	topN  = flag.Int("top", 25, "number of top tokens in the summary")
)

func printUsage() {
	fmt.Println("Usage: report -input <store.json> [flags] <tool>")
	fmt.Println("Available tools:")
	fmt.Println("  summary - corpus-wide token frequencies and sentiment statistics")
	fmt.Println("  export  - flatten per-document analysis into a single JSON array")
}

func main() {
	flag.Parse()
	if flag.NArg() == 0 || *input == "" {
		printUsage()
		os.Exit(1)
	}
	tool := flag.Arg(0)
	switch tool {
	case "summary":
		runSummary()
	case "export":
		runExport()
	default:
		fmt.Fprintf(os.Stderr, "unknown tool: %s\n", tool)
		printUsage()
		os.Exit(2)
	}
}
