package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "Manage the recently used tools list",
}

func init() {
	recentCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Print recently used tool IDs, most recent first",
		Args:  cobra.NoArgs,
		RunE:  runRecentList,
	})
	recentCmd.AddCommand(&cobra.Command{
		Use:   "add <id>",
		Short: "Mark a tool as used",
		Args:  cobra.ExactArgs(1),
		RunE:  runRecentAdd,
	})
	recentCmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Empty the list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				return a.recent.Clear(ctx)
			})
		},
	})
	rootCmd.AddCommand(recentCmd)
}

func runRecentList(cmd *cobra.Command, _ []string) error {
	return withApp(cmd, func(ctx context.Context, a *app) error {
		ids, err := a.recent.Items(ctx)
		if err != nil {
			return fmt.Errorf("recent: %w", err)
		}
		return printIDs(cmd, ids)
	})
}

func runRecentAdd(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(ctx context.Context, a *app) error {
		ids, err := a.recent.Add(ctx, args[0])
		if err != nil {
			return fmt.Errorf("recent: %w", err)
		}
		return printIDs(cmd, ids)
	})
}

func printIDs(cmd *cobra.Command, ids []string) error {
	out := cmd.OutOrStdout()
	if jsonOutput(cmd) {
		if ids == nil {
			ids = []string{}
		}
		return printJSON(out, ids)
	}
	for _, id := range ids {
		fmt.Fprintln(out, id)
	}
	return nil
}
