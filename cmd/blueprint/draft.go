package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/riskibarqy/blueprint-fantasy/internal/app"
	"github.com/riskibarqy/blueprint-fantasy/internal/domain/draft"
	"github.com/riskibarqy/blueprint-fantasy/internal/domain/player"
	"github.com/riskibarqy/blueprint-fantasy/internal/usecase"
)

func newDraftCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{Use: "draft", Short: "Run mock drafts against simulated opponents"}

	var (
		start     usecase.StartDraftInput
		available int
	)
	startCmd := &cobra.Command{
		Use:   "start",
		Short: "Start a mock draft; opponents pick until your seat is on the clock",
		Args:  cobra.NoArgs,
		RunE: c.run(func(ctx context.Context, a *app.App, out io.Writer, _ []string) error {
			caller, err := a.Auth.CurrentPrincipal(ctx)
			if err != nil {
				return err
			}
			state, err := a.Drafts.StartDraft(ctx, caller, start)
			if err != nil {
				return err
			}
			return writeDraftState(out, state, available)
		}),
	}
	startCmd.Flags().StringVar(&start.Name, "name", "Mock draft", "draft name")
	startCmd.Flags().StringVar(&start.Type, "type", string(draft.TypeSnake), "snake, linear or auction")
	startCmd.Flags().IntVar(&start.TeamCount, "teams", 12, "teams in the draft")
	startCmd.Flags().IntVar(&start.RoundCount, "rounds", 13, "rounds in the draft")
	startCmd.Flags().IntVar(&start.UserSeat, "seat", 1, "your draft slot, 1-indexed")
	startCmd.Flags().StringVar(&start.LeagueSlug, "league", "", "league slug the draft belongs to")
	startCmd.Flags().IntVar(&available, "available", 10, "best available players to print")

	pickCmd := &cobra.Command{
		Use:   "pick DRAFT PLAYER",
		Short: "Make your pick; opponents pick until your next turn",
		Args:  cobra.ExactArgs(2),
		RunE: c.run(func(ctx context.Context, a *app.App, out io.Writer, args []string) error {
			caller, err := a.Auth.CurrentPrincipal(ctx)
			if err != nil {
				return err
			}
			state, err := a.Drafts.MakePick(ctx, caller, args[0], args[1])
			if err != nil {
				return err
			}
			return writeDraftState(out, state, available)
		}),
	}
	pickCmd.Flags().IntVar(&available, "available", 10, "best available players to print")

	var board bool
	showCmd := &cobra.Command{
		Use:   "show DRAFT",
		Short: "Show a draft's clock, your roster and the best available players",
		Args:  cobra.ExactArgs(1),
		RunE: c.run(func(ctx context.Context, a *app.App, out io.Writer, args []string) error {
			caller, err := a.Auth.CurrentPrincipal(ctx)
			if err != nil {
				return err
			}
			state, err := a.Drafts.GetDraftState(ctx, caller, args[0])
			if err != nil {
				return err
			}
			if err := writeDraftState(out, state, available); err != nil {
				return err
			}
			if !board {
				return nil
			}
			catalog, err := a.Players.Catalog(ctx)
			if err != nil {
				return err
			}
			return writeBoard(out, state.Picks, player.Index(catalog))
		}),
	}
	showCmd.Flags().IntVar(&available, "available", 10, "best available players to print")
	showCmd.Flags().BoolVar(&board, "board", false, "print every persisted pick")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the logged in user's drafts",
		Args:  cobra.NoArgs,
		RunE: c.run(func(ctx context.Context, a *app.App, out io.Writer, _ []string) error {
			caller, err := a.Auth.CurrentPrincipal(ctx)
			if err != nil {
				return err
			}
			drafts, err := a.Drafts.ListDrafts(ctx, caller)
			if err != nil {
				return err
			}
			tw := newTable(out, "ID", "NAME", "TYPE", "TEAMS", "ROUNDS", "SEAT", "STATUS", "PICK", "CREATED")
			for _, d := range drafts {
				row(tw, d.ID, d.Name, d.Type, d.TeamCount, d.RoundCount, d.UserSeat, d.Status, d.CurrentPick, formatTime(d.CreatedAt))
			}
			return tw.Flush()
		}),
	}

	var (
		order draft.Order
		seat  int
	)
	orderCmd := &cobra.Command{
		Use:   "order",
		Short: "Print which seat is on the clock for every pick",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			order.Type = draft.Type(strings.ToLower(strings.TrimSpace(string(order.Type))))
			if err := order.Validate(); err != nil {
				return errors.Wrap(usecase.ErrInvalidInput, err.Error())
			}
			return writeOrder(cmd.OutOrStdout(), order, seat)
		},
	}
	orderCmd.Flags().StringVar((*string)(&order.Type), "type", string(draft.TypeSnake), "snake, linear or auction")
	orderCmd.Flags().IntVar(&order.TeamCount, "teams", 12, "teams in the draft")
	orderCmd.Flags().IntVar(&order.RoundCount, "rounds", 13, "rounds in the draft")
	orderCmd.Flags().IntVar(&seat, "seat", 0, "highlight this seat's picks")

	cmd.AddCommand(startCmd, pickCmd, showCmd, listCmd, orderCmd)
	return cmd
}

func writeDraftState(out io.Writer, state usecase.DraftState, available int) error {
	d := state.Draft
	fmt.Fprintf(out, "%s %s (%s, %d teams x %d rounds, seat %d)\n", d.ID, d.Name, d.Type, d.TeamCount, d.RoundCount, d.UserSeat)

	for _, sel := range state.Selections {
		who := fmt.Sprintf("seat %d", sel.Seat)
		if sel.Origin == draft.OriginUser {
			who = "you"
		}
		fmt.Fprintf(out, "  pick %d (round %d) %s: %s %s\n", sel.Pick, sel.Round, who, sel.Player.Name, sel.Player.Position)
	}

	switch {
	case d.Status == draft.StatusCompleted:
		fmt.Fprintf(out, "draft completed at %s\n", formatTime(derefTime(d.CompletedAt)))
	case state.OnClock:
		fmt.Fprintf(out, "you are on the clock: pick %d, round %d\n", state.Current.Pick, state.Current.Round)
	default:
		fmt.Fprintf(out, "pick %d, round %d: seat %d on the clock\n", state.Current.Pick, state.Current.Round, state.Current.Seat)
	}
	fmt.Fprintf(out, "your roster (%d): %s\n", len(state.UserRoster), orDash(strings.Join(state.UserRoster, ",")))

	if available <= 0 || d.Status == draft.StatusCompleted || len(state.Available) == 0 {
		return nil
	}
	best := state.Available
	if len(best) > available {
		best = best[:available]
	}
	fmt.Fprintln(out, "best available:")
	return writePlayers(out, best)
}

func writeBoard(out io.Writer, picks []draft.Pick, byID map[string]player.Player) error {
	tw := newTable(out, "PICK", "ROUND", "SEAT", "PLAYER", "ORIGIN")
	for _, p := range picks {
		name := p.PlayerID
		if known, ok := byID[p.PlayerID]; ok {
			name = known.Name
		}
		row(tw, p.Number, p.Round, p.Seat, name, p.Origin)
	}
	return tw.Flush()
}

func writeOrder(out io.Writer, order draft.Order, seat int) error {
	tw := newTable(out, "ROUND", "SEATS IN PICK ORDER")
	for round := 1; round <= order.RoundCount; round++ {
		seats := make([]string, 0, order.TeamCount)
		for i := 1; i <= order.TeamCount; i++ {
			pick := (round-1)*order.TeamCount + i
			s := order.SeatOnClock(pick)
			label := fmt.Sprint(s)
			if s == seat {
				label = "[" + label + "]"
			}
			seats = append(seats, label)
		}
		row(tw, round, strings.Join(seats, " "))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if seat < 1 || seat > order.TeamCount {
		return nil
	}
	picks := order.PicksForSeat(seat)
	labels := make([]string, len(picks))
	for i, p := range picks {
		labels[i] = fmt.Sprint(p)
	}
	_, err := fmt.Fprintf(out, "seat %d picks: %s\n", seat, strings.Join(labels, ", "))
	return err
}
