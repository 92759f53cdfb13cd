package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/riskibarqy/blueprint-fantasy/internal/app"
)

func newStorageCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{Use: "storage", Short: "Inspect the local store"}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Probe the store and report the state of every collection",
		Args:  cobra.NoArgs,
		RunE: c.run(func(ctx context.Context, a *app.App, out io.Writer, _ []string) error {
			available := "yes"
			if !a.Available(ctx) {
				available = "no"
			}
			fmt.Fprintf(out, "storage available: %s\n", available)
			if snap, ok := a.Breaker(); ok {
				fmt.Fprintf(out, "storage breaker: %s (failures %d, trips %d)\n", snap.State, snap.Failures, snap.Trips)
			} else {
				fmt.Fprintln(out, "storage breaker: disabled")
			}

			tw := newTable(out, "KEY", "STATE", "VERSION", "RECORDS", "ERROR")
			for _, s := range a.Inspect(ctx) {
				row(tw, s.Key, s.State, s.Version, s.Records, orDash(s.Error))
			}
			return tw.Flush()
		}),
	}

	cmd.AddCommand(statusCmd)
	return cmd
}
