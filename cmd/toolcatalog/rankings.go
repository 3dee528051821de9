package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jonwraymond/toolcatalog/directory"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "trending",
		Short: "List the most viewed tools",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRanking(cmd, "trending", (*directory.Directory).Trending)
		},
	})
	rootCmd.AddCommand(&cobra.Command{
		Use:   "top-rated",
		Short: "List the best rated tools",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRanking(cmd, "top-rated", (*directory.Directory).TopRated)
		},
	})
}

type rankingResult struct {
	Curated bool        `json:"curated"`
	Tools   []entryView `json:"tools"`
}

func runRanking(cmd *cobra.Command, name string, rank func(*directory.Directory, context.Context) directory.Ranking) error {
	return withApp(cmd, func(ctx context.Context, a *app) error {
		// The catalog and the statistics are independent; load both at once.
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error { return a.list.Load(gctx) })
		g.Go(func() error {
			a.stats.Snapshot(gctx)
			return nil
		})
		if err := g.Wait(); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}

		r := rank(a.dir, ctx)
		out := cmd.OutOrStdout()
		if jsonOutput(cmd) {
			return printJSON(out, rankingResult{Curated: r.Curated, Tools: entryViews(r.Entries)})
		}
		if r.Curated {
			fmt.Fprintln(out, "(no usage data yet; showing featured tools)")
		}
		return printEntries(out, r.Entries)
	})
}
