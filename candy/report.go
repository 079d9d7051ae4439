package candy

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rfielding/candyshare/smt"
)

// StageResult records the outcome of one plan stage.
type StageResult struct {
	Name    string
	Elapsed time.Duration
	Err     error
}

// Report summarizes a proof run: which stages ran, whether the theorem
// was committed, and the session's query counters.
type Report struct {
	RunID   string
	Stages  []StageResult
	Proved  bool
	Facts   []smt.CommittedFact
	Metrics *smt.QueryMetrics
}

// NewReport creates an empty report with a fresh run identifier.
func NewReport() *Report {
	return &Report{RunID: uuid.NewString()}
}

// Add appends one stage outcome.
func (r *Report) Add(res StageResult) {
	r.Stages = append(r.Stages, res)
}

// Finish snapshots the session state into the report.
func (r *Report) Finish(s *smt.Session, proved bool) {
	r.Proved = proved
	r.Facts = s.Committed()
	r.Metrics = s.Metrics()
}

// FailedStage returns the first failed stage, if any.
func (r *Report) FailedStage() *StageResult {
	for i := range r.Stages {
		if r.Stages[i].Err != nil {
			return &r.Stages[i]
		}
	}
	return nil
}

// GenerateStageTable generates a markdown table of stage outcomes.
func (r *Report) GenerateStageTable() string {
	var sb strings.Builder
	sb.WriteString("| Stage | Outcome | Elapsed |\n")
	sb.WriteString("|-------|---------|--------|\n")

	for _, st := range r.Stages {
		outcome := "proved"
		if st.Err != nil {
			outcome = st.Err.Error()
		}
		sb.WriteString(fmt.Sprintf("| %s | %s | %v |\n", st.Name, outcome, st.Elapsed))
	}

	return sb.String()
}

// String returns a plain-text summary of the run.
func (r *Report) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Run %s\n", r.RunID))
	sb.WriteString(r.GenerateStageTable())
	if r.Proved {
		sb.WriteString(fmt.Sprintf("\nTheorem committed: every query refuted, %d facts in the base layer.\n", len(r.Facts)))
	} else if st := r.FailedStage(); st != nil {
		sb.WriteString(fmt.Sprintf("\nProof halted at %s: %v\n", st.Name, st.Err))
	}
	if r.Metrics != nil {
		sb.WriteString("\n")
		sb.WriteString(r.Metrics.GenerateMetricsTable())
	}
	return sb.String()
}
