package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/riskibarqy/blueprint-fantasy/internal/app"
	"github.com/riskibarqy/blueprint-fantasy/internal/domain/player"
)

func newWatchlistCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{Use: "watchlist", Short: "Track players you are watching"}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the logged in user's watchlist",
		Args:  cobra.NoArgs,
		RunE: c.run(func(ctx context.Context, a *app.App, out io.Writer, _ []string) error {
			caller, err := a.Auth.CurrentPrincipal(ctx)
			if err != nil {
				return err
			}
			items, err := a.Watchlist.List(ctx, caller)
			if err != nil {
				return err
			}
			catalog, err := a.Players.Catalog(ctx)
			if err != nil {
				return err
			}
			byID := player.Index(catalog)

			tw := newTable(out, "ID", "NAME", "RANK", "ADDED", "NOTES")
			for _, item := range items {
				p := byID[item.PlayerID]
				row(tw, item.PlayerID, orDash(p.Name), p.Rank, formatTime(item.AddedAt), orDash(item.Notes))
			}
			return tw.Flush()
		}),
	}

	var notes string
	addCmd := &cobra.Command{
		Use:   "add PLAYER",
		Short: "Add a player to the watchlist",
		Args:  cobra.ExactArgs(1),
		RunE: c.run(func(ctx context.Context, a *app.App, out io.Writer, args []string) error {
			caller, err := a.Auth.CurrentPrincipal(ctx)
			if err != nil {
				return err
			}
			item, err := a.Watchlist.Add(ctx, caller, args[0], notes)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(out, "watching %s\n", item.PlayerID)
			return err
		}),
	}
	addCmd.Flags().StringVar(&notes, "notes", "", "free-form notes")

	removeCmd := &cobra.Command{
		Use:   "remove PLAYER",
		Short: "Remove a player from the watchlist",
		Args:  cobra.ExactArgs(1),
		RunE: c.run(func(ctx context.Context, a *app.App, out io.Writer, args []string) error {
			caller, err := a.Auth.CurrentPrincipal(ctx)
			if err != nil {
				return err
			}
			removed, err := a.Watchlist.Remove(ctx, caller, args[0])
			if err != nil {
				return err
			}
			if !removed {
				_, err = fmt.Fprintf(out, "%s was not on the watchlist\n", args[0])
				return err
			}
			_, err = fmt.Fprintf(out, "stopped watching %s\n", args[0])
			return err
		}),
	}

	cmd.AddCommand(listCmd, addCmd, removeCmd)
	return cmd
}
