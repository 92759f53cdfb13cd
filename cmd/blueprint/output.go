package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/riskibarqy/blueprint-fantasy/internal/domain/player"
)

func newTable(out io.Writer, header ...string) *tabwriter.Writer {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	if len(header) > 0 {
		fmt.Fprintln(tw, strings.Join(header, "\t"))
	}
	return tw
}

func row(tw *tabwriter.Writer, cells ...any) {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		parts[i] = fmt.Sprint(cell)
	}
	fmt.Fprintln(tw, strings.Join(parts, "\t"))
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.UTC().Format("2006-01-02 15:04")
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func injuryLabel(p player.Player) string {
	if p.Healthy() {
		return "healthy"
	}
	return p.Injury
}

func writePlayers(out io.Writer, players []player.Player) error {
	tw := newTable(out, "RANK", "ID", "NAME", "TEAM", "POS", "ADP", "PPG", "RPG", "APG", "TREND", "STATUS")
	for _, p := range players {
		row(tw, p.Rank, p.ID, p.Name, p.Team, p.Position,
			fmt.Sprintf("%.1f", p.ADP),
			fmt.Sprintf("%.1f", p.Stats.PPG),
			fmt.Sprintf("%.1f", p.Stats.RPG),
			fmt.Sprintf("%.1f", p.Stats.APG),
			p.Trend, injuryLabel(p))
	}
	return tw.Flush()
}

func derefTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
