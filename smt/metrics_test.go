package smt

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestQueryMetricsObserve(t *testing.T) {
	var qm QueryMetrics
	qm.Observe(Unsat, 10*time.Millisecond)
	qm.Observe(Unsat, 5*time.Millisecond)
	qm.Observe(Sat, time.Millisecond)
	qm.Observe(Unknown, time.Millisecond)

	require.Equal(t, 4, qm.Queries)
	require.Equal(t, 2, qm.Unsat)
	require.Equal(t, 1, qm.Sat)
	require.Equal(t, 1, qm.Unknown)
	require.Equal(t, 17*time.Millisecond, qm.SolverTime)
}

func TestQueryMetricsTable(t *testing.T) {
	var qm QueryMetrics
	qm.Observe(Unsat, 42*time.Millisecond)

	table := qm.GenerateMetricsTable()
	require.True(t, strings.HasPrefix(table, "| Metric | Value | Unit | Description |\n"))
	require.Contains(t, table, "| queries_total | 1 | queries |")
	require.Contains(t, table, "| verdict_unsat | 1 | queries |")
	require.Contains(t, table, "| verdict_sat | 0 | queries |")
	require.Contains(t, table, "| verdict_unknown | 0 | queries |")
	require.Contains(t, table, "| solver_time_ms | 42 | ms |")
}
