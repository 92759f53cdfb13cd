package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/riskibarqy/blueprint-fantasy/internal/app"
	"github.com/riskibarqy/blueprint-fantasy/internal/usecase"
)

func newCheatSheetCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{Use: "cheatsheet", Short: "Tiered board for tracking a live draft"}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the board by tier with drafted and watched marks",
		Args:  cobra.NoArgs,
		RunE: c.run(func(ctx context.Context, a *app.App, out io.Writer, _ []string) error {
			sheet, err := loadCheatSheet(ctx, a)
			if err != nil {
				return err
			}
			if err := writeCheatSheet(out, sheet, true); err != nil {
				return err
			}
			_, err = fmt.Fprintf(out, "%d drafted\n", sheet.Drafted)
			return err
		}),
	}

	toggleCmd := &cobra.Command{
		Use:   "toggle PLAYER",
		Short: "Mark a player as drafted, or unmark them",
		Args:  cobra.ExactArgs(1),
		RunE: c.run(func(ctx context.Context, a *app.App, out io.Writer, args []string) error {
			drafted, err := a.CheatSheet.ToggleDrafted(ctx, args[0])
			if err != nil {
				return err
			}
			if drafted {
				_, err = fmt.Fprintf(out, "marked %s drafted\n", args[0])
				return err
			}
			_, err = fmt.Fprintf(out, "unmarked %s\n", args[0])
			return err
		}),
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every drafted mark",
		Args:  cobra.NoArgs,
		RunE: c.run(func(ctx context.Context, a *app.App, out io.Writer, _ []string) error {
			if err := a.CheatSheet.ClearDrafted(ctx); err != nil {
				return err
			}
			_, err := fmt.Fprintln(out, "drafted marks cleared")
			return err
		}),
	}

	cmd.AddCommand(showCmd, toggleCmd, clearCmd)
	return cmd
}

func newPlayersTiersCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "tiers",
		Short: "List players grouped into rank tiers",
		Args:  cobra.NoArgs,
		RunE: c.run(func(ctx context.Context, a *app.App, out io.Writer, _ []string) error {
			sheet, err := loadCheatSheet(ctx, a)
			if err != nil {
				return err
			}
			return writeCheatSheet(out, sheet, false)
		}),
	}
}

func loadCheatSheet(ctx context.Context, a *app.App) (usecase.CheatSheet, error) {
	caller, err := a.Auth.CurrentPrincipal(ctx)
	if err != nil {
		return usecase.CheatSheet{}, err
	}
	return a.CheatSheet.Sheet(ctx, caller)
}

func writeCheatSheet(out io.Writer, sheet usecase.CheatSheet, marks bool) error {
	header := []string{"TIER", "RANK", "ID", "NAME", "POS", "TEAM"}
	if marks {
		header = append(header, "DRAFTED", "WATCH")
	}
	tw := newTable(out, header...)
	for _, tier := range sheet.Tiers {
		for _, entry := range tier.Entries {
			p := entry.Player
			cells := []any{tier.Tier.String(), p.Rank, p.ID, p.Name, p.Position, p.Team}
			if marks {
				cells = append(cells, yesNo(entry.Drafted), yesNo(entry.Watched))
			}
			row(tw, cells...)
		}
	}
	return tw.Flush()
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "-"
}
