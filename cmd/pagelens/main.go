package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pagelens/internal/bootstrap"
)

var (
	flagHeadless   bool
	flagURL        string
	flagShellsFile string
	flagDebug      bool
)

var rootCmd = &cobra.Command{
	Use:   "pagelens",
	Short: "Annotated accessibility snapshots of live web pages",
	Long: `pagelens drives a real browser, captures its accessibility tree and
annotates every actionable element with a short ref id that later
commands (click, fill, text) can address.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Flags override the environment before the config layer reads it.
		if cmd.Flags().Changed("headless") {
			os.Setenv("BROWSER_HEADLESS", fmt.Sprintf("%t", flagHeadless))
		}

		if flagURL != "" {
			os.Setenv("START_URL", flagURL)
		}

		if flagShellsFile != "" {
			os.Setenv("SNAPSHOT_SHELLS_FILE", flagShellsFile)
		}

		if flagDebug {
			os.Setenv("DEBUG", "true")
			os.Setenv("LOG_LEVEL", "debug")
		}

		bootstrap.NewApp().Run()

		return nil
	},
}

func init() {
	rootCmd.Flags().BoolVar(&flagHeadless, "headless", true, "run the browser without a visible window")
	rootCmd.Flags().StringVar(&flagURL, "url", "", "URL to open on startup")
	rootCmd.Flags().StringVar(&flagShellsFile, "shells-file", "", "YAML file with page shell selector overrides")
	rootCmd.Flags().BoolVar(&flagDebug, "debug", false, "verbose logging and span output")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
