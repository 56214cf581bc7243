package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// newCrawlCommand crawls a single article URL for a source.
func newCrawlCommand() *cobra.Command {
	var published string

	cmd := &cobra.Command{
		Use:   "crawl <source-id> <url>",
		Short: "Crawl one article URL and store the result",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sourceID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid source id %q: %w", args[0], err)
			}

			ctx := cmd.Context()
			a, err := buildApp(ctx)
			if err != nil {
				return err
			}
			defer a.close()

			outcome, err := a.engine.ProcessArticle(ctx, sourceID, args[1], published)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), outcome)
			return nil
		},
	}

	cmd.Flags().StringVar(&published, "published", "", "published timestamp hint from the feed")

	return cmd
}
