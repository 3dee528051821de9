package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jonwraymond/toolcatalog/directory"
)

// withApp builds the app for one command run and closes it afterwards.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app) error) (err error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := a.Close(ctx); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return fn(ctx, a)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type entryView struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Category      string  `json:"category"`
	ViewCount     int64   `json:"view_count"`
	AverageRating float64 `json:"average_rating"`
	TotalRatings  int64   `json:"total_ratings"`
}

func entryViews(entries []directory.Entry) []entryView {
	out := make([]entryView, len(entries))
	for i, e := range entries {
		out[i] = entryView{
			ID:            e.Tool.ID,
			Name:          e.Tool.Name,
			Category:      e.Tool.Category.String(),
			ViewCount:     e.Stats.ViewCount,
			AverageRating: e.Stats.AverageRating,
			TotalRatings:  e.Stats.TotalRatings,
		}
	}
	return out
}

func printEntries(w io.Writer, entries []directory.Entry) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tVIEWS\tRATING\tRATINGS")
	for _, e := range entryViews(entries) {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%.2f\t%d\n",
			e.ID, e.Name, e.Category, e.ViewCount, e.AverageRating, e.TotalRatings)
	}
	return tw.Flush()
}
