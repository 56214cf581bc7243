package cmd

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

// newCategoriesCommand lists the known categories.
func newCategoriesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, err := buildApp(ctx)
			if err != nil {
				return err
			}
			defer a.close()

			cats, err := a.categories.List(ctx)
			if err != nil {
				return err
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.AppendHeader(table.Row{"ID", "Name", "Slug", "Parent"})

			for _, cat := range cats {
				parent := ""
				if cat.ParentID != nil {
					parent = strconv.FormatInt(*cat.ParentID, 10)
				}
				t.AppendRow(table.Row{cat.ID, cat.Name, cat.Slug, parent})
			}

			t.Render()
			return nil
		},
	}
}
