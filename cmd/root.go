// Package cmd implements the command-line interface for the crawler:
// crawling single URLs, processing feeds, listing sources, and running
// the scheduler.
package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var (
	// cfgFile holds the path to the configuration file.
	cfgFile string

	// debug enables debug logging for all commands.
	debug bool

	rootCmd = &cobra.Command{
		Use:   "vnnews-crawler",
		Short: "News article crawler and content pipeline",
		Long: `Crawls news articles from RSS feeds or single URLs, extracts and
sanitizes their content, rewrites media into blob storage, and upserts
the result into the article database.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml or ./config/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(newCrawlCommand())
	rootCmd.AddCommand(newFeedsCommand())
	rootCmd.AddCommand(newSourcesCommand())
	rootCmd.AddCommand(newCategoriesCommand())
	rootCmd.AddCommand(newSchedulerCommand())
}
