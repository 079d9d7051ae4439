package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	require.Equal(t, "z3", cfg.Solver.Command)
	require.Equal(t, []string{"-in"}, cfg.Solver.Args)
	require.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
solver:
  command: cvc5
  args: ["--incremental", "--lang=smt2"]
  logic: UFNIA
  timeout_ms: 30000
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "cvc5", cfg.Solver.Command)
	require.Equal(t, []string{"--incremental", "--lang=smt2"}, cfg.Solver.Args)
	require.Equal(t, "UFNIA", cfg.Solver.Logic)
	require.Equal(t, 30000, cfg.Solver.TimeoutMS)
	require.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("solver:\n  command: cvc5\n"), 0o644))

	t.Setenv("CANDYSHARE_SOLVER", "z3")
	t.Setenv("CANDYSHARE_SOLVER_ARGS", "-in -smt2")
	t.Setenv("CANDYSHARE_TIMEOUT_MS", "5000")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "z3", cfg.Solver.Command)
	require.Equal(t, []string{"-in", "-smt2"}, cfg.Solver.Args)
	require.Equal(t, 5000, cfg.Solver.TimeoutMS)
}

func TestLoadConfigMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("solver: [not a map"), 0o644))

	_, err := LoadConfig(path)
	require.Error(t, err)
}
