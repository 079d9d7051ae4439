package smt

import (
	"fmt"
	"log/slog"
	"time"
)

// CommittedFact is a named formula proved earlier in the run and added
// to the persistent base layer.
type CommittedFact struct {
	Name    string
	Formula Term
}

// Session manages a stack of reversible assumption layers atop a
// persistent fact base, and issues refutation queries to the solver.
// The base layer only ever grows: once a lemma is committed it is
// never retracted. Layer discipline is strict LIFO; a Pop undoes
// exactly the declarations and assumptions of the matching Push.
//
// A Session is single-threaded by design. Later proof steps depend on
// the persistent fact set being frozen at the moment they run, so
// there is nothing to gain from concurrent queries.
type Session struct {
	solver    Solver
	logger    *slog.Logger
	depth     int
	fresh     int
	committed []CommittedFact
	metrics   QueryMetrics
}

// NewSession creates a session over the given solver collaborator.
func NewSession(solver Solver, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{solver: solver, logger: logger}
}

// Metrics exposes the session's query counters.
func (s *Session) Metrics() *QueryMetrics {
	return &s.metrics
}

// Depth returns the number of open layers above the persistent base.
func (s *Session) Depth() int {
	return s.depth
}

// Push opens a new reversible layer.
func (s *Session) Push() error {
	if err := s.solver.Push(); err != nil {
		return fmt.Errorf("push: %w", err)
	}
	s.depth++
	return nil
}

// Pop discards the innermost layer and every symbol and assumption
// declared within it.
func (s *Session) Pop() error {
	if s.depth == 0 {
		return ErrScopeUnderflow
	}
	if err := s.solver.Pop(); err != nil {
		return fmt.Errorf("pop: %w", err)
	}
	s.depth--
	return nil
}

// Scope runs fn inside a fresh layer and guarantees the layer is
// popped afterwards, whether fn succeeded or not.
func (s *Session) Scope(fn func() error) error {
	if err := s.Push(); err != nil {
		return err
	}
	fnErr := fn()
	if popErr := s.Pop(); popErr != nil && fnErr == nil {
		return popErr
	}
	return fnErr
}

// FreshConst declares a new constant scoped to the innermost layer.
// The name is unique for the whole session, so a popped symbol can
// never be confused with a later one. At least one layer must be open:
// a fresh symbol on the base layer could never be popped, mirroring
// the Commit guard in the other direction.
func (s *Session) FreshConst(prefix string, sort Sort) (Sym, error) {
	if s.depth == 0 {
		return Sym{}, ErrNoOpenScope
	}
	s.fresh++
	name := fmt.Sprintf("%s%d", prefix, s.fresh)
	if err := s.solver.DeclareConst(name, sort); err != nil {
		return Sym{}, fmt.Errorf("declare %s: %w", name, err)
	}
	return Sym{Name: name}, nil
}

// FreshFun declares a new function symbol scoped to the innermost layer.
func (s *Session) FreshFun(prefix string, params []Sort, result Sort) (FuncDecl, error) {
	if s.depth == 0 {
		return FuncDecl{}, ErrNoOpenScope
	}
	s.fresh++
	f := FuncDecl{
		Name:   fmt.Sprintf("%s%d", prefix, s.fresh),
		Params: params,
		Result: result,
	}
	if err := s.solver.DeclareFun(f); err != nil {
		return FuncDecl{}, fmt.Errorf("declare %s: %w", f.Name, err)
	}
	return f, nil
}

// Declare introduces a symbol with a caller-chosen name, used for the
// persistent vocabulary of the model layer.
func (s *Session) Declare(f FuncDecl) error {
	if len(f.Params) == 0 {
		return s.solver.DeclareConst(f.Name, f.Result)
	}
	return s.solver.DeclareFun(f)
}

// Assume adds a formula to the innermost open layer.
func (s *Session) Assume(t Term) error {
	if err := s.solver.Assert(t); err != nil {
		return fmt.Errorf("assume: %w", err)
	}
	return nil
}

// Commit adds a proved fact to the persistent base layer. It is only
// legal once every temporary layer has been popped, which keeps lemma
// hypotheses from leaking into the fact base.
func (s *Session) Commit(name string, t Term) error {
	if s.depth != 0 {
		return fmt.Errorf("%w: %d still open", ErrOpenScopes, s.depth)
	}
	if err := s.solver.Assert(t); err != nil {
		return fmt.Errorf("commit %s: %w", name, err)
	}
	s.committed = append(s.committed, CommittedFact{Name: name, Formula: t})
	s.logger.Debug("fact committed", "name", name)
	return nil
}

// Committed returns the facts committed so far, in commit order.
func (s *Session) Committed() []CommittedFact {
	return s.committed
}

// Check submits everything currently asserted to the solver and
// returns the three-valued verdict.
func (s *Session) Check() (Verdict, error) {
	start := time.Now()
	v, err := s.solver.Check()
	elapsed := time.Since(start)
	if err != nil {
		s.metrics.Observe(Unknown, elapsed)
		return Unknown, fmt.Errorf("check: %w", err)
	}
	s.metrics.Observe(v, elapsed)
	s.logger.Debug("query answered", "verdict", v.String(), "elapsed", elapsed)
	return v, nil
}

// Refute asserts the negation of goal into the innermost layer and
// checks it. Unsat certifies the goal holds under the active
// hypotheses.
func (s *Session) Refute(goal Term) (Verdict, error) {
	if err := s.Assume(Not{Formula: goal}); err != nil {
		return Unknown, err
	}
	return s.Check()
}

// MustRefute runs Refute and converts anything but Unsat into a
// RefutationError carrying the lemma name. There is no retry: the
// fact base only grows, so re-asking the same query cannot change
// the answer.
func (s *Session) MustRefute(lemma string, goal Term) error {
	v, err := s.Refute(goal)
	if err != nil {
		return fmt.Errorf("lemma %s: %w", lemma, err)
	}
	if v != Unsat {
		return &RefutationError{Lemma: lemma, Verdict: v}
	}
	return nil
}
