package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/riskibarqy/blueprint-fantasy/internal/app"
	"github.com/riskibarqy/blueprint-fantasy/internal/domain/player"
	"github.com/riskibarqy/blueprint-fantasy/internal/usecase"
)

func newPlayersCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{Use: "players", Short: "Browse and edit the player rankings"}

	var (
		query    usecase.PlayerQuery
		position string
		sortBy   string
	)
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List players on the board",
		Args:  cobra.NoArgs,
		RunE: c.run(func(ctx context.Context, a *app.App, out io.Writer, _ []string) error {
			query.Position = player.Position(position)
			query.SortBy = usecase.PlayerSort(sortBy)
			players, err := a.Players.ListPlayers(ctx, query)
			if err != nil {
				return err
			}
			return writePlayers(out, players)
		}),
	}
	listCmd.Flags().StringVar(&position, "position", "", "PG, SG, SF, PF or C")
	listCmd.Flags().StringVar(&query.Search, "search", "", "match name or team")
	listCmd.Flags().BoolVar(&query.HealthyOnly, "healthy", false, "hide injured players")
	listCmd.Flags().StringVar(&sortBy, "sort", string(usecase.SortByRank), "rank, adp, ppg, rpg, apg or name")
	listCmd.Flags().BoolVar(&query.Desc, "desc", false, "reverse the sort order")
	listCmd.Flags().IntVar(&query.Limit, "limit", 0, "maximum rows, 0 for all")

	showCmd := &cobra.Command{
		Use:   "show ID",
		Short: "Show a player's line",
		Args:  cobra.ExactArgs(1),
		RunE: c.run(func(ctx context.Context, a *app.App, out io.Writer, args []string) error {
			p, err := a.Players.GetPlayer(ctx, args[0])
			if err != nil {
				return err
			}
			tw := newTable(out)
			row(tw, "name:", p.Name)
			row(tw, "team:", p.Team+" "+string(p.Position))
			row(tw, "age:", p.Age)
			row(tw, "rank:", p.Rank)
			row(tw, "adp:", fmt.Sprintf("%.1f", p.ADP))
			row(tw, "trend:", p.Trend)
			row(tw, "status:", injuryLabel(p))
			row(tw, "per game:", fmt.Sprintf("%.1f pts  %.1f reb  %.1f ast  %.1f stl  %.1f blk  %.1f tov",
				p.Stats.PPG, p.Stats.RPG, p.Stats.APG, p.Stats.SPG, p.Stats.BPG, p.Stats.TOV))
			row(tw, "shooting:", fmt.Sprintf("%.1f FG%%  %.1f FT%%  %d GP", p.Stats.FG, p.Stats.FT, p.Stats.GP))
			return tw.Flush()
		}),
	}

	compareCmd := &cobra.Command{
		Use:   "compare ID ID [ID...]",
		Short: "Compare two to five players side by side",
		Args:  cobra.RangeArgs(2, 5),
		RunE: c.run(func(ctx context.Context, a *app.App, out io.Writer, args []string) error {
			players, err := a.Players.ComparePlayers(ctx, args)
			if err != nil {
				return err
			}

			header := []string{"STAT"}
			for _, p := range players {
				header = append(header, p.Name)
			}
			tw := newTable(out, header...)
			stat := func(label string, value func(player.Player) any) {
				cells := []any{label}
				for _, p := range players {
					cells = append(cells, value(p))
				}
				row(tw, cells...)
			}
			stat("rank", func(p player.Player) any { return p.Rank })
			stat("adp", func(p player.Player) any { return fmt.Sprintf("%.1f", p.ADP) })
			stat("ppg", func(p player.Player) any { return fmt.Sprintf("%.1f", p.Stats.PPG) })
			stat("rpg", func(p player.Player) any { return fmt.Sprintf("%.1f", p.Stats.RPG) })
			stat("apg", func(p player.Player) any { return fmt.Sprintf("%.1f", p.Stats.APG) })
			stat("spg", func(p player.Player) any { return fmt.Sprintf("%.1f", p.Stats.SPG) })
			stat("bpg", func(p player.Player) any { return fmt.Sprintf("%.1f", p.Stats.BPG) })
			stat("fg%", func(p player.Player) any { return fmt.Sprintf("%.1f", p.Stats.FG) })
			stat("ft%", func(p player.Player) any { return fmt.Sprintf("%.1f", p.Stats.FT) })
			stat("tov", func(p player.Player) any { return fmt.Sprintf("%.1f", p.Stats.TOV) })
			stat("status", func(p player.Player) any { return injuryLabel(p) })
			return tw.Flush()
		}),
	}

	rankCmd := &cobra.Command{
		Use:   "rank ID RANK",
		Short: "Move a player to a new rank",
		Args:  cobra.ExactArgs(2),
		RunE: c.run(func(ctx context.Context, a *app.App, out io.Writer, args []string) error {
			rank, err := strconv.Atoi(args[1])
			if err != nil {
				return errors.Wrapf(usecase.ErrInvalidInput, "rank must be a number, got %q", args[1])
			}
			if _, err := a.Players.UpdateRanking(ctx, args[0], rank); err != nil {
				return err
			}
			_, err = fmt.Fprintf(out, "moved %s to rank %d\n", args[0], rank)
			return err
		}),
	}

	importCmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Replace the rankings with a YAML catalog (- reads stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return errors.Wrapf(err, "open catalog %s", args[0])
				}
				defer f.Close()
				in = f
			}
			return c.run(func(ctx context.Context, a *app.App, out io.Writer, _ []string) error {
				n, err := a.Players.ImportCatalog(ctx, in)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(out, "imported %d players\n", n)
				return err
			})(cmd, args)
		},
	}

	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Drop custom rankings and restore the default catalog",
		Args:  cobra.NoArgs,
		RunE: c.run(func(ctx context.Context, a *app.App, out io.Writer, _ []string) error {
			if err := a.Players.ResetRankings(ctx); err != nil {
				return err
			}
			_, err := fmt.Fprintln(out, "rankings reset")
			return err
		}),
	}

	var sim usecase.SimulateADPInput
	var top int
	adpCmd := &cobra.Command{
		Use:   "adp",
		Short: "Estimate average draft position from simulated drafts",
		Args:  cobra.NoArgs,
		RunE: c.run(func(ctx context.Context, a *app.App, out io.Writer, _ []string) error {
			report, err := a.Simulation.SimulateADP(ctx, sim)
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "%d drafts simulated, %d failed\n", report.Runs, report.Failed)
			if sim.Apply {
				fmt.Fprintf(out, "applied adp to %d players\n", report.Applied)
			}
			rows := report.Players
			if top > 0 && len(rows) > top {
				rows = rows[:top]
			}
			tw := newTable(out, "ADP", "ID", "NAME", "DRAFTED")
			for _, p := range rows {
				row(tw, fmt.Sprintf("%.2f", p.ADP), p.PlayerID, p.Name, p.Drafted)
			}
			return tw.Flush()
		}),
	}
	adpCmd.Flags().IntVar(&sim.Runs, "runs", 100, "number of simulated drafts")
	adpCmd.Flags().StringVar(&sim.Type, "type", "snake", "snake, linear or auction")
	adpCmd.Flags().IntVar(&sim.TeamCount, "teams", 12, "teams per draft")
	adpCmd.Flags().IntVar(&sim.RoundCount, "rounds", 13, "rounds per draft")
	adpCmd.Flags().Uint64Var(&sim.Seed, "seed", 0, "seed for reproducible runs, 0 for random")
	adpCmd.Flags().BoolVar(&sim.Apply, "apply", false, "write the results into the rankings")
	adpCmd.Flags().IntVar(&top, "top", 25, "rows to print, 0 for all")

	cmd.AddCommand(listCmd, showCmd, compareCmd, rankCmd, importCmd, resetCmd, adpCmd, newPlayersTiersCmd(c))
	return cmd
}
