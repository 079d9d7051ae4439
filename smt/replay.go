package smt

import "fmt"

// ReplaySolver answers checks from a scripted list of verdicts while
// enforcing the scope discipline. It backs tests and is the verdict
// source for dry runs. When the script runs out it keeps answering
// with Fallback.
type ReplaySolver struct {
	// Verdicts are consumed one per Check call.
	Verdicts []Verdict
	// Fallback is the answer once Verdicts is exhausted.
	Fallback Verdict

	depth   int
	checks  int
	asserts []Term
}

func (r *ReplaySolver) Push() error {
	r.depth++
	return nil
}

func (r *ReplaySolver) Pop() error {
	if r.depth == 0 {
		return ErrScopeUnderflow
	}
	r.depth--
	return nil
}

func (r *ReplaySolver) DeclareConst(name string, sort Sort) error {
	return nil
}

func (r *ReplaySolver) DeclareFun(f FuncDecl) error {
	return nil
}

func (r *ReplaySolver) Assert(t Term) error {
	r.asserts = append(r.asserts, t)
	return nil
}

func (r *ReplaySolver) Check() (Verdict, error) {
	r.checks++
	if len(r.Verdicts) > 0 {
		v := r.Verdicts[0]
		r.Verdicts = r.Verdicts[1:]
		return v, nil
	}
	return r.Fallback, nil
}

func (r *ReplaySolver) Close() error {
	if r.depth != 0 {
		return fmt.Errorf("smt: closed with %d scopes open", r.depth)
	}
	return nil
}

// Checks reports how many queries were issued.
func (r *ReplaySolver) Checks() int {
	return r.checks
}

// Asserted returns every formula asserted so far, across all scopes.
func (r *ReplaySolver) Asserted() []Term {
	return r.asserts
}

// RecordingSolver captures the full SMT-LIB script of a run and
// answers unsat to every query. It serves the proof-script export and
// `prove --dry-run`: the emitted script replayed through a real solver
// is the offline equivalent of the live run.
type RecordingSolver struct {
	Script Script
}

func (r *RecordingSolver) Push() error {
	r.Script.Push()
	return nil
}

func (r *RecordingSolver) Pop() error {
	r.Script.Pop()
	return nil
}

func (r *RecordingSolver) DeclareConst(name string, sort Sort) error {
	r.Script.DeclareConst(name, sort)
	return nil
}

func (r *RecordingSolver) DeclareFun(f FuncDecl) error {
	r.Script.DeclareFun(f)
	return nil
}

func (r *RecordingSolver) Assert(t Term) error {
	r.Script.Assert(t)
	return nil
}

func (r *RecordingSolver) Check() (Verdict, error) {
	r.Script.CheckSat()
	return Unsat, nil
}

func (r *RecordingSolver) Close() error {
	return nil
}
