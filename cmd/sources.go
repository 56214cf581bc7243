package cmd

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

// newSourcesCommand lists the configured feed sources.
func newSourcesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sources",
		Short: "List feed sources",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, err := buildApp(ctx)
			if err != nil {
				return err
			}
			defer a.close()

			srcs, err := a.sources.List(ctx)
			if err != nil {
				return err
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.AppendHeader(table.Row{"ID", "Name", "RSS URL", "Active", "Last Crawled"})

			for _, src := range srcs {
				lastCrawled := "never"
				if src.LastCrawledAt != nil {
					lastCrawled = src.LastCrawledAt.Format("2006-01-02 15:04")
				}
				t.AppendRow(table.Row{src.ID, src.Name, src.FeedURL, src.IsActive, lastCrawled})
			}

			t.Render()
			return nil
		},
	}
}
