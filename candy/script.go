package candy

import (
	"fmt"
	"log/slog"

	"github.com/rfielding/candyshare/smt"
)

// GenerateScript replays the full proof plan against a recording
// solver and returns it as one SMT-LIB 2 script. Feeding the script to
// a solver binary is the offline equivalent of a live run: the proof
// holds exactly when every check-sat answers unsat.
func GenerateScript(logic string, logger *slog.Logger) (string, error) {
	rec := &smt.RecordingSolver{}
	if logic != "" {
		rec.Script.SetLogic(logic)
	}
	rec.Script.Comment("candyshare convergence proof: every check-sat must answer unsat")

	sess := smt.NewSession(rec, logger)
	prover := NewProver(NewModel(), sess, logger)
	if _, err := prover.Run(); err != nil {
		return "", fmt.Errorf("candy: script generation: %w", err)
	}
	return rec.Script.String(), nil
}
