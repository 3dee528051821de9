package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonwraymond/toolcatalog/health"
)

var errUnhealthy = errors.New("health: unhealthy")

func init() {
	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check store reachability, statistics freshness and the circuit breaker",
		Args:  cobra.NoArgs,
		RunE:  runHealth,
	}
	cmd.Flags().Bool("warm", true, "load statistics before checking their freshness")
	rootCmd.AddCommand(cmd)
}

func runHealth(cmd *cobra.Command, _ []string) error {
	return withApp(cmd, func(ctx context.Context, a *app) error {
		if warm, _ := cmd.Flags().GetBool("warm"); warm {
			a.stats.Snapshot(ctx)
		}

		report := a.health.CheckAll(ctx)
		out := cmd.OutOrStdout()
		if jsonOutput(cmd) {
			if err := printJSON(out, report); err != nil {
				return err
			}
		} else {
			fmt.Fprintf(out, "overall: %s\n", report.Status)
			for _, c := range report.Checks {
				fmt.Fprintf(out, "  %-8s %-9s %s\n", c.Name, c.Status, c.Message)
			}
		}
		if report.Status == health.StatusUnhealthy {
			return errUnhealthy
		}
		return nil
	})
}
