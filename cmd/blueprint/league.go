package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/riskibarqy/blueprint-fantasy/internal/app"
	"github.com/riskibarqy/blueprint-fantasy/internal/domain/league"
	"github.com/riskibarqy/blueprint-fantasy/internal/usecase"
)

func newLeagueCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{Use: "league", Short: "Create and browse leagues"}

	var private bool
	createCmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a league owned by the logged in user",
		Args:  cobra.ExactArgs(1),
		RunE: c.run(func(ctx context.Context, a *app.App, out io.Writer, args []string) error {
			caller, err := a.Auth.CurrentPrincipal(ctx)
			if err != nil {
				return err
			}
			input := usecase.CreateLeagueInput{Name: args[0]}
			if private {
				input.Visibility = string(league.VisibilityPrivate)
			}
			lg, err := a.Leagues.CreateLeague(ctx, caller, input)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(out, "created league %s (%s)\n", lg.Name, lg.Slug)
			return err
		}),
	}
	createCmd.Flags().BoolVar(&private, "private", false, "hide the league from public listings")

	var mine bool
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List leagues",
		Args:  cobra.NoArgs,
		RunE: c.run(func(ctx context.Context, a *app.App, out io.Writer, _ []string) error {
			var (
				leagues []league.League
				err     error
			)
			if mine {
				caller, perr := a.Auth.CurrentPrincipal(ctx)
				if perr != nil {
					return perr
				}
				leagues, err = a.Leagues.ListOwnedLeagues(ctx, caller)
			} else {
				leagues, err = a.Leagues.ListLeagues(ctx)
			}
			if err != nil {
				return err
			}

			tw := newTable(out, "SLUG", "NAME", "VISIBILITY", "CREATED")
			for _, lg := range leagues {
				row(tw, lg.Slug, lg.Name, lg.Visibility, formatTime(lg.CreatedAt))
			}
			return tw.Flush()
		}),
	}
	listCmd.Flags().BoolVar(&mine, "mine", false, "only leagues owned by the logged in user")

	showCmd := &cobra.Command{
		Use:   "show SLUG",
		Short: "Show one league",
		Args:  cobra.ExactArgs(1),
		RunE: c.run(func(ctx context.Context, a *app.App, out io.Writer, args []string) error {
			lg, err := a.Leagues.GetLeagueBySlug(ctx, args[0])
			if err != nil {
				return err
			}
			tw := newTable(out)
			row(tw, "slug:", lg.Slug)
			row(tw, "name:", lg.Name)
			row(tw, "visibility:", lg.Visibility)
			row(tw, "owner:", lg.OwnerID)
			row(tw, "created:", formatTime(lg.CreatedAt))
			return tw.Flush()
		}),
	}

	cmd.AddCommand(createCmd, listCmd, showCmd)
	return cmd
}
