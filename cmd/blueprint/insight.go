package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/riskibarqy/blueprint-fantasy/internal/app"
	"github.com/riskibarqy/blueprint-fantasy/internal/usecase"
)

func newInsightCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{Use: "insight", Short: "Post and read analysis"}

	var input usecase.CreateInsightInput
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Post an insight as the logged in user",
		Args:  cobra.NoArgs,
		RunE: c.run(func(ctx context.Context, a *app.App, out io.Writer, _ []string) error {
			caller, err := a.Auth.CurrentPrincipal(ctx)
			if err != nil {
				return err
			}
			in, err := a.Insights.CreateInsight(ctx, caller, input)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(out, "posted insight %s (heat %d)\n", in.ID, in.Heat)
			return err
		}),
	}
	createCmd.Flags().StringVar(&input.Title, "title", "", "headline")
	createCmd.Flags().StringVar(&input.Body, "body", "", "post body")
	createCmd.Flags().StringVar(&input.LeagueSlug, "league", "", "league slug to post in")

	var leagueSlug string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List insights, newest first",
		Args:  cobra.NoArgs,
		RunE: c.run(func(ctx context.Context, a *app.App, out io.Writer, _ []string) error {
			items, err := a.Insights.ListInsights(ctx, leagueSlug)
			if err != nil {
				return err
			}
			tw := newTable(out, "ID", "TITLE", "AUTHOR", "LEAGUE", "HEAT", "POSTED")
			for _, in := range items {
				row(tw, in.ID, in.Title, in.Author, orDash(in.LeagueSlug), in.Heat, formatTime(in.CreatedAt))
			}
			return tw.Flush()
		}),
	}
	listCmd.Flags().StringVar(&leagueSlug, "league", "", "only insights posted in this league")

	showCmd := &cobra.Command{
		Use:   "show ID",
		Short: "Show an insight and its comments",
		Args:  cobra.ExactArgs(1),
		RunE: c.run(func(ctx context.Context, a *app.App, out io.Writer, args []string) error {
			in, err := a.Insights.GetInsight(ctx, args[0])
			if err != nil {
				return err
			}
			comments, err := a.Insights.ListComments(ctx, in.ID)
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "%s\nby %s, %s, heat %d\n\n%s\n", in.Title, in.Author, formatTime(in.CreatedAt), in.Heat, in.Body)
			if len(comments) == 0 {
				return nil
			}
			fmt.Fprintf(out, "\n%d comment(s)\n", len(comments))
			tw := newTable(out)
			for _, cm := range comments {
				row(tw, cm.Author, formatTime(cm.CreatedAt), cm.Body)
			}
			return tw.Flush()
		}),
	}

	commentCmd := &cobra.Command{
		Use:   "comment ID BODY",
		Short: "Comment on an insight as the logged in user",
		Args:  cobra.ExactArgs(2),
		RunE: c.run(func(ctx context.Context, a *app.App, out io.Writer, args []string) error {
			caller, err := a.Auth.CurrentPrincipal(ctx)
			if err != nil {
				return err
			}
			cm, err := a.Insights.AddComment(ctx, caller, args[0], args[1])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(out, "added comment %s\n", cm.ID)
			return err
		}),
	}

	cmd.AddCommand(createCmd, listCmd, showCmd, commentCmd)
	return cmd
}
