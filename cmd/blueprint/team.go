package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/riskibarqy/blueprint-fantasy/internal/app"
	"github.com/riskibarqy/blueprint-fantasy/internal/domain/myteam"
	"github.com/riskibarqy/blueprint-fantasy/internal/usecase"
)

func newTeamCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{Use: "team", Short: "Manage your own rosters"}

	var leagueSlug string
	createCmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create an empty roster",
		Args:  cobra.ExactArgs(1),
		RunE: c.run(func(ctx context.Context, a *app.App, out io.Writer, args []string) error {
			caller, err := a.Auth.CurrentPrincipal(ctx)
			if err != nil {
				return err
			}
			t, err := a.Teams.CreateTeam(ctx, caller, usecase.CreateTeamInput{Name: args[0], LeagueSlug: leagueSlug})
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(out, "created team %s (%s)\n", t.Name, t.ID)
			return err
		}),
	}
	createCmd.Flags().StringVar(&leagueSlug, "league", "", "league slug the team plays in")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the logged in user's teams",
		Args:  cobra.NoArgs,
		RunE: c.run(func(ctx context.Context, a *app.App, out io.Writer, _ []string) error {
			caller, err := a.Auth.CurrentPrincipal(ctx)
			if err != nil {
				return err
			}
			teams, err := a.Teams.ListTeams(ctx, caller)
			if err != nil {
				return err
			}
			tw := newTable(out, "ID", "NAME", "PLAYERS", "ROSTER")
			for _, t := range teams {
				row(tw, t.ID, t.Name, len(t.PlayerIDs), orDash(strings.Join(t.PlayerIDs, ",")))
			}
			return tw.Flush()
		}),
	}

	addCmd := &cobra.Command{
		Use:   "add TEAM PLAYER",
		Short: "Add a player to a roster",
		Args:  cobra.ExactArgs(2),
		RunE: c.run(func(ctx context.Context, a *app.App, out io.Writer, args []string) error {
			caller, err := a.Auth.CurrentPrincipal(ctx)
			if err != nil {
				return err
			}
			t, err := a.Teams.AddPlayer(ctx, caller, args[0], args[1])
			if err != nil {
				return err
			}
			return writeRoster(out, t)
		}),
	}

	removeCmd := &cobra.Command{
		Use:   "remove TEAM PLAYER",
		Short: "Remove a player from a roster",
		Args:  cobra.ExactArgs(2),
		RunE: c.run(func(ctx context.Context, a *app.App, out io.Writer, args []string) error {
			caller, err := a.Auth.CurrentPrincipal(ctx)
			if err != nil {
				return err
			}
			t, err := a.Teams.RemovePlayer(ctx, caller, args[0], args[1])
			if err != nil {
				return err
			}
			return writeRoster(out, t)
		}),
	}

	cmd.AddCommand(createCmd, listCmd, addCmd, removeCmd)
	return cmd
}

func writeRoster(out io.Writer, t myteam.Team) error {
	_, err := fmt.Fprintf(out, "%s: %d player(s) %s\n", t.Name, len(t.PlayerIDs), strings.Join(t.PlayerIDs, ","))
	return err
}
