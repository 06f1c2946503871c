package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vermi/gnlp-analyze/internal/client"
	"github.com/vermi/gnlp-analyze/internal/config"
	"github.com/vermi/gnlp-analyze/internal/logging"
)

var (
	// Global flags
	textBlob   string
	storePath  string
	stdoutOnly bool
	configPath string
	verbose    bool

	cfg        *config.Config
	langClient *client.LanguageClient
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "gnlp-analyze",
	Short: "Syntax and sentiment analysis for text blobs and gathered Reddit data",
	Long: `gnlp-analyze sends text through Google Cloud Natural Language
syntactical and sentiment analysis.

Input is either a single text blob (-t) or a gathered JSON store of Reddit
posts and comments (-f). Blob results go to a timestamped JSON file under
the output directory, or to stdout with --stdout. Store documents are
updated in place, one by one, so an interrupted run keeps everything
analyzed so far.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}

		level := cfg.Logging.Level
		if verbose {
			level = "debug"
		}
		logging.Setup(level, cfg.Logging.Format)

		langClient = client.NewLanguageClientWithTimeout(cfg.API.Endpoint, cfg.API.Key, cfg.API.Timeout)
		return nil
	},
	RunE: runAnalyze,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVarP(&textBlob, "text", "t", "", "A text blob to analyze. Wrap it in quotes.")
	rootCmd.Flags().StringVarP(&storePath, "file", "f", "", "Path to a gathered JSON store to analyze.")
	rootCmd.Flags().BoolVar(&stdoutOnly, "stdout", false, "Print results to STDOUT instead of a JSON file. Only supports text input.")
	rootCmd.MarkFlagsMutuallyExclusive("text", "file")
	rootCmd.MarkFlagsOneRequired("text", "file")

	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath, "Path to the YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
}
