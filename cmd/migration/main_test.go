package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/blueprint-fantasy/internal/config"
	"github.com/riskibarqy/blueprint-fantasy/internal/platform/logging"
)

func TestParseSteps(t *testing.T) {
	if steps, err := parseSteps(nil); err != nil || steps != 1 {
		t.Fatalf("expected default of 1 step, got %d err=%v", steps, err)
	}
	if steps, err := parseSteps([]string{" 3 "}); err != nil || steps != 3 {
		t.Fatalf("expected 3 steps, got %d err=%v", steps, err)
	}
	for _, raw := range []string{"0", "-2", "many"} {
		if _, err := parseSteps([]string{raw}); err == nil {
			t.Fatalf("expected error for steps %q", raw)
		}
	}
}

func TestParseVersionAndTarget(t *testing.T) {
	if v, err := parseVersion("1"); err != nil || v != 1 {
		t.Fatalf("unexpected version %d err=%v", v, err)
	}
	if _, err := parseVersion("-1"); err == nil {
		t.Fatalf("expected error for negative version")
	}
	if target, err := parseTarget("2"); err != nil || target != 2 {
		t.Fatalf("unexpected target %d err=%v", target, err)
	}
	if _, err := parseTarget("latest"); err == nil {
		t.Fatalf("expected error for non-numeric target")
	}
}

func runMigration(t *testing.T, cfg config.Config, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	root := newRootCmd(cfg, logging.NewNop())
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestMigrationCommands_UpDownVersion(t *testing.T) {
	cfg := config.Config{
		StorageDriver: config.StorageSQLite,
		StoragePath:   filepath.Join(t.TempDir(), "blueprint.db"),
	}

	out, err := runMigration(t, cfg, "version")
	require.NoError(t, err)
	require.Contains(t, out, "version: none")

	out, err = runMigration(t, cfg, "up")
	require.NoError(t, err)
	require.Contains(t, out, "migrations applied")

	_, err = runMigration(t, cfg, "up")
	require.NoError(t, err, "re-running up is a no-op")

	out, err = runMigration(t, cfg, "version")
	require.NoError(t, err)
	require.Contains(t, out, "version: 1")
	require.Contains(t, out, "dirty: false")

	out, err = runMigration(t, cfg, "down")
	require.NoError(t, err)
	require.Contains(t, out, "rolled back 1 migration(s)")

	out, err = runMigration(t, cfg, "version")
	require.NoError(t, err)
	require.Contains(t, out, "version: none")
}

func TestMigrationCommands_RequireSQLite(t *testing.T) {
	_, err := runMigration(t, config.Config{StorageDriver: config.StorageMemory}, "up")
	require.ErrorContains(t, err, "has no schema to migrate")
}
