package main

import "github.com/vermi/gnlp-analyze/cmd"

func main() {
	cmd.Execute()
}
