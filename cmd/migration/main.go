package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/golang-migrate/migrate/v4"
	"github.com/spf13/cobra"

	"github.com/riskibarqy/blueprint-fantasy/internal/config"
	"github.com/riskibarqy/blueprint-fantasy/internal/infrastructure/kv/sqlite"
	"github.com/riskibarqy/blueprint-fantasy/internal/platform/logging"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger := logging.New(os.Stderr, cfg.LogFormat, cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	if err := newRootCmd(cfg, logger).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

type migrateFunc func(m *migrate.Migrate, out io.Writer, args []string) error

func newRootCmd(cfg config.Config, logger *logging.Logger) *cobra.Command {
	path := cfg.StoragePath
	root := &cobra.Command{
		Use:           "migration",
		Short:         "Migrate the SQLite store schema",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			if cfg.StorageDriver != config.StorageSQLite {
				return errors.Newf("STORAGE_DRIVER=%s has no schema to migrate", cfg.StorageDriver)
			}
			return nil
		},
	}
	root.PersistentFlags().StringVar(&path, "path", path, "SQLite file to migrate (defaults to STORAGE_PATH)")

	with := func(fn migrateFunc) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			db, err := sqlite.OpenDB(path)
			if err != nil {
				return err
			}
			m, err := sqlite.NewMigrator(db.DB)
			if err != nil {
				_ = db.Close()
				return err
			}
			defer closeMigrator(m, logger)
			return fn(m, cmd.OutOrStdout(), args)
		}
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: with(func(m *migrate.Migrate, out io.Writer, _ []string) error {
				if err := ignoreNoChange(m.Up(), logger); err != nil {
					return errors.Wrap(err, "apply migrations")
				}
				fmt.Fprintf(out, "migrations applied (path=%s)\n", path)
				return nil
			}),
		},
		&cobra.Command{
			Use:   "down [STEPS]",
			Short: "Roll back migrations, one by default",
			Args:  cobra.MaximumNArgs(1),
			RunE: with(func(m *migrate.Migrate, out io.Writer, args []string) error {
				steps, err := parseSteps(args)
				if err != nil {
					return err
				}
				if err := ignoreNoChange(m.Steps(-steps), logger); err != nil {
					return errors.Wrapf(err, "roll back %d migration(s)", steps)
				}
				fmt.Fprintf(out, "rolled back %d migration(s)\n", steps)
				return nil
			}),
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the schema version",
			Args:  cobra.NoArgs,
			RunE:  with(printVersion),
		},
		&cobra.Command{
			Use:   "force VERSION",
			Short: "Set the schema version without running migrations",
			Args:  cobra.ExactArgs(1),
			RunE: with(func(m *migrate.Migrate, out io.Writer, args []string) error {
				version, err := parseVersion(args[0])
				if err != nil {
					return err
				}
				if err := m.Force(version); err != nil {
					return errors.Wrapf(err, "force version %d", version)
				}
				fmt.Fprintf(out, "forced version to %d\n", version)
				return nil
			}),
		},
		&cobra.Command{
			Use:     "goto VERSION",
			Aliases: []string{"migrate"},
			Short:   "Migrate up or down to VERSION",
			Args:    cobra.ExactArgs(1),
			RunE: with(func(m *migrate.Migrate, out io.Writer, args []string) error {
				target, err := parseTarget(args[0])
				if err != nil {
					return err
				}
				if err := ignoreNoChange(m.Migrate(target), logger); err != nil {
					return errors.Wrapf(err, "migrate to version %d", target)
				}
				fmt.Fprintf(out, "migrated to version %d\n", target)
				return nil
			}),
		},
	)
	return root
}

func printVersion(m *migrate.Migrate, out io.Writer, _ []string) error {
	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		fmt.Fprintln(out, "version: none")
		fmt.Fprintln(out, "dirty: false")
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "read version")
	}
	fmt.Fprintf(out, "version: %d\n", version)
	fmt.Fprintf(out, "dirty: %t\n", dirty)
	return nil
}

func parseSteps(args []string) (int, error) {
	if len(args) == 0 {
		return 1, nil
	}

	steps, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil {
		return 0, errors.Wrapf(err, "invalid down steps %q", args[0])
	}
	if steps <= 0 {
		return 0, errors.New("down steps must be > 0")
	}
	return steps, nil
}

func parseVersion(raw string) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, errors.Wrapf(err, "invalid version %q", raw)
	}
	if value < 0 {
		return 0, errors.New("version must be >= 0")
	}
	return value, nil
}

func parseTarget(raw string) (uint, error) {
	value, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 0)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid target version %q", raw)
	}
	return uint(value), nil
}

func ignoreNoChange(err error, logger *logging.Logger) error {
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("no migration changes")
		return nil
	}
	return err
}

func closeMigrator(m *migrate.Migrate, logger *logging.Logger) {
	srcErr, dbErr := m.Close()
	if srcErr != nil {
		logger.Warn("close migration source", "error", srcErr)
	}
	if dbErr != nil {
		logger.Warn("close migration db", "error", dbErr)
	}
}
