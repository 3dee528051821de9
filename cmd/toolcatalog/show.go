package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jonwraymond/toolcatalog/catalog"
	"github.com/jonwraymond/toolcatalog/observe"
)

func init() {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Fetch one tool with its statistics",
		Args:  cobra.ExactArgs(1),
		RunE:  runShow,
	}
	cmd.Flags().Bool("no-record", false, "do not add the tool to the recently used list")
	rootCmd.AddCommand(cmd)
}

type showResult struct {
	Tool  catalog.Tool `json:"tool"`
	Views int64        `json:"view_count"`
	Avg   float64      `json:"average_rating"`
	Total int64        `json:"total_ratings"`
}

func runShow(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(ctx context.Context, a *app) error {
		view := catalog.NewEntityView(a.store, a.logger)
		defer view.Close()

		if err := view.Select(ctx, args[0]); err != nil {
			return fmt.Errorf("show: %w", err)
		}
		st := view.State()
		if !st.Found() {
			return fmt.Errorf("show: %w: %s", catalog.ErrNotFound, st.ID)
		}

		if noRecord, _ := cmd.Flags().GetBool("no-record"); !noRecord {
			if _, err := a.recent.Add(ctx, st.Tool.ID); err != nil {
				a.logger.Warn(ctx, "recently used list not updated",
					observe.Field{Key: "tool.id", Value: st.Tool.ID},
					observe.Field{Key: "error", Value: err.Error()},
				)
			}
		}

		rec := a.dir.StatsFor(ctx, st.Tool.ID)
		res := showResult{Tool: *st.Tool, Views: rec.ViewCount, Avg: rec.AverageRating, Total: rec.TotalRatings}

		out := cmd.OutOrStdout()
		if jsonOutput(cmd) {
			return printJSON(out, res)
		}
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		t := res.Tool
		fmt.Fprintf(tw, "id\t%s\n", t.ID)
		fmt.Fprintf(tw, "name\t%s\n", t.Name)
		fmt.Fprintf(tw, "category\t%s\n", t.Category)
		fmt.Fprintf(tw, "kind\t%s\n", t.Kind)
		fmt.Fprintf(tw, "input\t%s\n", t.InputType)
		fmt.Fprintf(tw, "output\t%s\n", t.OutputType)
		fmt.Fprintf(tw, "popular\t%t\n", t.Popular)
		fmt.Fprintf(tw, "views\t%d\n", res.Views)
		fmt.Fprintf(tw, "rating\t%.2f (%d)\n", res.Avg, res.Total)
		fmt.Fprintf(tw, "description\t%s\n", t.Description)
		return tw.Flush()
	})
}
