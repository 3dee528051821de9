package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonwraymond/toolcatalog/catalog"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "sync",
		Short: "Run a full paginated scan of the catalog",
		Long: `Reads every enabled tool page by page in category, name order and prints
how many tools each category holds. A failed page aborts the whole scan.`,
		Args: cobra.NoArgs,
		RunE: runSync,
	})
}

type syncResult struct {
	Total      int            `json:"total"`
	Categories map[string]int `json:"categories"`
}

func runSync(cmd *cobra.Command, _ []string) error {
	return withApp(cmd, func(ctx context.Context, a *app) error {
		if err := a.list.Load(ctx); err != nil {
			return fmt.Errorf("sync: %w", err)
		}

		groups := a.dir.ByCategory()
		res := syncResult{Total: len(a.list.Tools()), Categories: make(map[string]int, len(groups))}
		for c, tools := range groups {
			res.Categories[c.String()] = len(tools)
		}

		out := cmd.OutOrStdout()
		if jsonOutput(cmd) {
			return printJSON(out, res)
		}
		fmt.Fprintf(out, "%d tools\n", res.Total)
		for _, c := range catalog.Categories() {
			fmt.Fprintf(out, "  %-7s %d\n", c, res.Categories[c.String()])
		}
		return nil
	})
}
