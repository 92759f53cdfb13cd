package main

import (
	"context"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"

	"github.com/riskibarqy/blueprint-fantasy/internal/app"
	"github.com/riskibarqy/blueprint-fantasy/internal/platform/logging"
	"github.com/riskibarqy/blueprint-fantasy/internal/usecase"
)

// cli opens the app on first use and keeps it for the rest of the process.
type cli struct {
	open func() (*app.App, error)
	app  *app.App
}

func newCLI(open func() (*app.App, error)) *cli {
	return &cli{open: open}
}

var cliTracer = otel.Tracer("blueprint-fantasy/cmd/blueprint")

type runFunc func(ctx context.Context, a *app.App, out io.Writer, args []string) error

func (c *cli) run(fn runFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if c.app == nil {
			a, err := c.open()
			if err != nil {
				return err
			}
			c.app = a
		}

		// Use case spans only record under a parent, so every command opens one.
		ctx, span := cliTracer.Start(cmd.Context(), cmd.CommandPath())
		defer span.End()

		err := fn(ctx, c.app, cmd.OutOrStdout(), args)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		return err
	}
}

func (c *cli) close(logger *logging.Logger) {
	if c.app == nil {
		return
	}
	if err := c.app.Close(); err != nil {
		logger.Warn("close app", "error", err)
	}
	c.app = nil
}

func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:           "blueprint",
		Short:         "Fantasy basketball draft prep: rankings, leagues, insights and mock drafts",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newAuthCmd(c),
		newLeagueCmd(c),
		newInsightCmd(c),
		newPlayersCmd(c),
		newWatchlistCmd(c),
		newCheatSheetCmd(c),
		newProfileCmd(c),
		newTeamCmd(c),
		newDraftCmd(c),
		newStorageCmd(c),
	)
	return root
}

const (
	exitFailure      = 1
	exitInvalidInput = 2
	exitUnauthorized = 3
	exitNotFound     = 4
	exitConflict     = 5
	exitStorage      = 6
)

func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, usecase.ErrInvalidInput):
		return exitInvalidInput
	case errors.Is(err, usecase.ErrUnauthorized):
		return exitUnauthorized
	case errors.Is(err, usecase.ErrNotFound):
		return exitNotFound
	case errors.Is(err, usecase.ErrConflict):
		return exitConflict
	case errors.Is(err, usecase.ErrStorageUnavailable):
		return exitStorage
	default:
		return exitFailure
	}
}
