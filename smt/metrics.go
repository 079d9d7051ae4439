package smt

import (
	"fmt"
	"strings"
	"time"
)

// QueryMetrics counts the solver traffic of one session: how many
// refutation queries ran, how each verdict came back, and how long the
// solver spent answering. Sessions update it on every Check; reports
// render it.
type QueryMetrics struct {
	Queries    int
	Unsat      int
	Sat        int
	Unknown    int
	SolverTime time.Duration
}

// Observe records one answered query.
func (qm *QueryMetrics) Observe(v Verdict, elapsed time.Duration) {
	qm.Queries++
	qm.SolverTime += elapsed
	switch v {
	case Unsat:
		qm.Unsat++
	case Sat:
		qm.Sat++
	default:
		qm.Unknown++
	}
}

// GenerateMetricsTable generates a markdown table of the counters.
func (qm *QueryMetrics) GenerateMetricsTable() string {
	var sb strings.Builder
	sb.WriteString("| Metric | Value | Unit | Description |\n")
	sb.WriteString("|--------|-------|------|-------------|\n")

	rows := []struct {
		name  string
		value int64
		unit  string
		desc  string
	}{
		{"queries_total", int64(qm.Queries), "queries", "refutation queries issued"},
		{"verdict_unsat", int64(qm.Unsat), "queries", "queries refuted"},
		{"verdict_sat", int64(qm.Sat), "queries", "queries with a model found"},
		{"verdict_unknown", int64(qm.Unknown), "queries", "queries the solver gave up on"},
		{"solver_time_ms", qm.SolverTime.Milliseconds(), "ms", "cumulative time inside the solver"},
	}
	for _, row := range rows {
		sb.WriteString(fmt.Sprintf("| %s | %d | %s | %s |\n",
			row.name, row.value, row.unit, row.desc))
	}

	return sb.String()
}
