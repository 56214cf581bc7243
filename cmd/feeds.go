package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// newFeedsCommand processes one source's feed, or every active feed.
func newFeedsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "feeds [source-id]",
		Short: "Process RSS feeds (all active sources, or one by id)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := buildApp(ctx)
			if err != nil {
				return err
			}
			defer a.close()

			var count int
			if len(args) == 1 {
				sourceID, parseErr := strconv.ParseInt(args[0], 10, 64)
				if parseErr != nil {
					return fmt.Errorf("invalid source id %q: %w", args[0], parseErr)
				}
				count, err = a.engine.ProcessFeed(ctx, sourceID)
			} else {
				count, err = a.engine.ProcessAllFeeds(ctx)
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "processed %d feed entries\n", count)
			return nil
		},
	}
}
