package cmd

import (
	"os"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vermi/gnlp-analyze/internal/analyzer"
	"github.com/vermi/gnlp-analyze/internal/store"
)

// runAnalyze dispatches to blob or store analysis based on which input flag
// was set. An interrupted run returns nil: stopping early is a clean exit.
func runAnalyze(cmd *cobra.Command, args []string) error {
	sink := analyzer.NewSink(stdoutOnly, cfg.Output.Dir)
	a := analyzer.New(langClient, sink)

	ctl := analyzer.NewController(cmd.Context())
	release := ctl.Watch(os.Interrupt, syscall.SIGTERM)
	defer release()

	if cmd.Flags().Changed("text") {
		return a.AnalyzeBlob(ctl.Context(), textBlob)
	}

	st, err := store.Open(storePath)
	if err != nil {
		return err
	}
	return a.AnalyzeStore(ctl.Context(), st)
}
