package smt

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSessionScopeDiscipline(t *testing.T) {
	solver := &ReplaySolver{}
	sess := NewSession(solver, nil)

	require.Equal(t, 0, sess.Depth())
	require.NoError(t, sess.Push())
	require.NoError(t, sess.Push())
	require.Equal(t, 2, sess.Depth())
	require.NoError(t, sess.Pop())
	require.NoError(t, sess.Pop())
	require.Equal(t, 0, sess.Depth())

	err := sess.Pop()
	require.ErrorIs(t, err, ErrScopeUnderflow)
	require.NoError(t, solver.Close())
}

func TestSessionScopeAlwaysPops(t *testing.T) {
	solver := &ReplaySolver{}
	sess := NewSession(solver, nil)

	boom := errors.New("boom")
	err := sess.Scope(func() error {
		require.Equal(t, 1, sess.Depth())
		return boom
	})
	require.ErrorIs(t, err, boom)
	require.Equal(t, 0, sess.Depth())
	require.NoError(t, solver.Close())
}

func TestSessionCommitOnlyAtBase(t *testing.T) {
	solver := &ReplaySolver{}
	sess := NewSession(solver, nil)

	fact := Ge{Sym{Name: "N"}, Num(1)}

	require.NoError(t, sess.Push())
	err := sess.Commit("too-early", fact)
	require.ErrorIs(t, err, ErrOpenScopes)
	require.Empty(t, sess.Committed())
	require.NoError(t, sess.Pop())

	require.NoError(t, sess.Commit("first", fact))
	require.NoError(t, sess.Commit("second", fact))

	committed := sess.Committed()
	require.Len(t, committed, 2)
	require.Equal(t, "first", committed[0].Name)
	require.Equal(t, "second", committed[1].Name)
}

func TestSessionFreshNamesUnique(t *testing.T) {
	sess := NewSession(&ReplaySolver{}, nil)

	seen := map[string]bool{}
	err := sess.Scope(func() error {
		for n := 0; n < 5; n++ {
			k, err := sess.FreshConst("k", SortInt)
			require.NoError(t, err)
			require.False(t, seen[k.Name], "name %s reused", k.Name)
			seen[k.Name] = true
		}
		return nil
	})
	require.NoError(t, err)

	// Popped names are never reissued, and function names draw from
	// the same counter, so they can never collide with constants.
	err = sess.Scope(func() error {
		k, err := sess.FreshConst("k", SortInt)
		require.NoError(t, err)
		require.False(t, seen[k.Name], "name %s reused", k.Name)

		f, err := sess.FreshFun("k", []Sort{SortInt}, SortInt)
		require.NoError(t, err)
		require.False(t, seen[f.Name], "name %s reused", f.Name)
		return nil
	})
	require.NoError(t, err)
}

func TestFreshSymbolsNeedAnOpenLayer(t *testing.T) {
	sess := NewSession(&ReplaySolver{}, nil)

	_, err := sess.FreshConst("k", SortInt)
	require.ErrorIs(t, err, ErrNoOpenScope)
	_, err = sess.FreshFun("f", []Sort{SortInt}, SortInt)
	require.ErrorIs(t, err, ErrNoOpenScope)

	require.NoError(t, sess.Scope(func() error {
		_, err := sess.FreshConst("k", SortInt)
		return err
	}))
}

func TestRefuteAssertsNegation(t *testing.T) {
	solver := &ReplaySolver{Fallback: Unsat}
	sess := NewSession(solver, nil)

	goal := Ge{Sym{Name: "N"}, Num(1)}
	v, err := sess.Refute(goal)
	require.NoError(t, err)
	require.Equal(t, Unsat, v)

	asserted := solver.Asserted()
	require.Len(t, asserted, 1)
	neg, ok := asserted[0].(Not)
	require.True(t, ok, "expected a negation, got %T", asserted[0])
	require.Equal(t, goal, neg.Formula)
}

func TestMustRefuteVerdicts(t *testing.T) {
	goal := Ge{Sym{Name: "N"}, Num(1)}

	sess := NewSession(&ReplaySolver{Fallback: Unsat}, nil)
	require.NoError(t, sess.MustRefute("fine", goal))

	for _, verdict := range []Verdict{Sat, Unknown} {
		sess := NewSession(&ReplaySolver{Verdicts: []Verdict{verdict}}, nil)
		err := sess.MustRefute("broken", goal)

		var refErr *RefutationError
		require.ErrorAs(t, err, &refErr)
		require.Equal(t, "broken", refErr.Lemma)
		require.Equal(t, verdict, refErr.Verdict)
		require.Contains(t, err.Error(), "broken")
		require.Contains(t, err.Error(), verdict.String())
	}
}

func TestSessionCountsVerdicts(t *testing.T) {
	solver := &ReplaySolver{Verdicts: []Verdict{Unsat, Sat, Unknown, Unsat}}
	sess := NewSession(solver, nil)

	for n := 0; n < 4; n++ {
		_, err := sess.Check()
		require.NoError(t, err)
	}

	metrics := sess.Metrics()
	require.Equal(t, 4, metrics.Queries)
	require.Equal(t, 2, metrics.Unsat)
	require.Equal(t, 1, metrics.Sat)
	require.Equal(t, 1, metrics.Unknown)
}

func TestVerdictStrings(t *testing.T) {
	require.Equal(t, "unsat", Unsat.String())
	require.Equal(t, "sat", Sat.String())
	require.Equal(t, "unknown", Unknown.String())
}

func TestReplaySolverCloseWithOpenScopes(t *testing.T) {
	solver := &ReplaySolver{}
	require.NoError(t, solver.Push())
	require.Error(t, solver.Close())
	require.NoError(t, solver.Pop())
	require.NoError(t, solver.Close())
}
