package smt

import (
	"errors"
	"fmt"
)

// Verdict is the three-valued answer of a satisfiability check.
type Verdict int

const (
	// Unsat means no satisfying model exists. This is the success
	// outcome of every refutation query in the harness.
	Unsat Verdict = iota
	// Sat means the solver found a model.
	Sat
	// Unknown means the solver gave up.
	Unknown
)

func (v Verdict) String() string {
	switch v {
	case Unsat:
		return "unsat"
	case Sat:
		return "sat"
	case Unknown:
		return "unknown"
	default:
		return fmt.Sprintf("verdict(%d)", int(v))
	}
}

// Solver is the boundary to the constraint-solving collaborator. The
// harness only ever declares symbols, asserts formulas, opens and
// closes reversible scopes, and reads back the three-valued verdict;
// it never inspects models or proof objects.
type Solver interface {
	// Push opens a reversible scope.
	Push() error
	// Pop closes the most recent scope, undoing every declaration
	// and assertion made since the matching Push.
	Pop() error
	// DeclareConst introduces a constant symbol in the current scope.
	DeclareConst(name string, sort Sort) error
	// DeclareFun introduces a function symbol in the current scope.
	DeclareFun(f FuncDecl) error
	// Assert adds a formula to the current scope.
	Assert(t Term) error
	// Check reports whether the conjunction of everything asserted
	// in all open scopes is satisfiable.
	Check() (Verdict, error)
	// Close releases the collaborator.
	Close() error
}

// ErrScopeUnderflow reports a Pop with no matching Push.
var ErrScopeUnderflow = errors.New("smt: pop on the persistent base layer")

// ErrNoOpenScope reports a fresh-symbol declaration attempted on the
// persistent base layer, where it could never be undone.
var ErrNoOpenScope = errors.New("smt: fresh symbol requires an open layer")

// ErrOpenScopes reports a Commit attempted while scopes are still open.
var ErrOpenScopes = errors.New("smt: commit requires all scopes closed")

// RefutationError reports a proof query that was expected to refute but
// did not. It is fatal for the run: the proof plan is only meaningful
// as an unbroken chain of unsat verdicts.
type RefutationError struct {
	Lemma   string
	Verdict Verdict
}

func (e *RefutationError) Error() string {
	return fmt.Sprintf("smt: lemma %q not refuted: solver answered %s", e.Lemma, e.Verdict)
}
