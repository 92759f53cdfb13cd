package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/riskibarqy/blueprint-fantasy/internal/app"
)

func newProfileCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "profile USERNAME",
		Short: "Show a user's leagues and insights",
		Args:  cobra.ExactArgs(1),
		RunE: c.run(func(ctx context.Context, a *app.App, out io.Writer, args []string) error {
			caller, err := a.Auth.CurrentPrincipal(ctx)
			if err != nil {
				return err
			}
			profile, err := a.Profiles.GetProfile(ctx, caller, args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "@%s (%s)\n", profile.User.Username, profile.User.Name)
			if profile.Own {
				fmt.Fprintln(out, "this is your profile")
			}

			fmt.Fprintf(out, "\nleagues (%d)\n", len(profile.Leagues))
			tw := newTable(out, "SLUG", "NAME", "VISIBILITY", "CREATED")
			for _, l := range profile.Leagues {
				row(tw, l.Slug, l.Name, l.Visibility, formatTime(l.CreatedAt))
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			fmt.Fprintf(out, "\ninsights (%d)\n", len(profile.Insights))
			tw = newTable(out, "ID", "TITLE", "HEAT", "CREATED")
			for _, in := range profile.Insights {
				row(tw, in.ID, in.Title, in.Heat, formatTime(in.CreatedAt))
			}
			return tw.Flush()
		}),
	}
}
