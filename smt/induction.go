package smt

// InductionSpec describes a two-step induction over the naturals: one
// refutation for the base case at Zero, one for the step from a fresh
// symbolic value to its successor. Hooks let the caller assert
// step-local facts (typically a step-fixed transition instance) inside
// each case's layer without those facts ever reaching the base layer.
type InductionSpec struct {
	// Name identifies the lemma in errors and logs.
	Name string
	// Var is the name prefix for the fresh induction constant.
	Var string
	// Zero is the base element, usually 0.
	Zero Term
	// Succ builds the successor of a value.
	Succ func(Term) Term
	// Guard is the domain-membership predicate, usually is-nat.
	Guard func(Term) Term
	// Prop is the property being proved.
	Prop func(Term) Term
	// Trigger builds the instantiation pattern for the concluded
	// universal, in terms of its bound variable.
	Trigger func(Term) []Term
	// Base, if set, asserts extra hypotheses in the base layer.
	Base func(*Session) error
	// Step, if set, asserts extra hypotheses in the step layer,
	// given the fresh induction constant.
	Step func(*Session, Term) error
}

// TwoStepInduction discharges both cases of spec by refutation and, on
// success, returns the universally quantified conclusion
//
//	∀v. guard(v) → prop(v)
//
// for the caller to assume in its current layer (or commit, when the
// current layer is the persistent base). The conclusion itself is
// never sent to the solver here; composing the two refutations into a
// universal is exactly the induction principle the harness supplies on
// top of the solver.
func TwoStepInduction(s *Session, spec InductionSpec) (Term, error) {
	err := s.Scope(func() error {
		if spec.Base != nil {
			if err := spec.Base(s); err != nil {
				return err
			}
		}
		return s.MustRefute(spec.Name+"/base", spec.Prop(spec.Zero))
	})
	if err != nil {
		return nil, err
	}

	err = s.Scope(func() error {
		v, err := s.FreshConst(spec.Var, SortInt)
		if err != nil {
			return err
		}
		if err := s.Assume(spec.Guard(v)); err != nil {
			return err
		}
		if err := s.Assume(spec.Prop(v)); err != nil {
			return err
		}
		if spec.Step != nil {
			if err := spec.Step(s, v); err != nil {
				return err
			}
		}
		return s.MustRefute(spec.Name+"/step", spec.Prop(spec.Succ(v)))
	})
	if err != nil {
		return nil, err
	}

	bound := Binding{Name: spec.Var, Sort: SortInt}
	v := Sym{Name: bound.Name}
	return Forall{
		Bound:   []Binding{bound},
		Trigger: spec.Trigger(v),
		Body:    Implies{spec.Guard(v), spec.Prop(v)},
	}, nil
}

// WellFoundedSpec describes a well-founded induction over pairs of
// naturals under a strict order, typically lexicographic. The whole
// scheme is one refutation: assume the property for every strictly
// smaller pair, assume the negated goal at a fresh symbolic pair, and
// refute.
type WellFoundedSpec struct {
	// Name identifies the lemma in errors and logs.
	Name string
	// Vars are the name prefixes for the fresh pair constants.
	Vars [2]string
	// Guard is the domain-membership predicate over the pair.
	Guard func(v1, v2 Term) Term
	// Prop is the property being proved over the pair.
	Prop func(v1, v2 Term) Term
	// Less is the strict order: Less(u1,u2,v1,v2) holds when (u1,u2)
	// precedes (v1,v2). It must be well-founded on the guarded
	// domain for the conclusion to be sound.
	Less func(u1, u2, v1, v2 Term) Term
	// Trigger builds the instantiation pattern for both the
	// induction hypothesis and the concluded universal.
	Trigger func(v1, v2 Term) []Term
	// Hyp, if set, asserts extra hypotheses in the refutation layer,
	// given the fresh pair. This is where callers skolemize the
	// negated goal by hand and assert specialized instances of
	// committed facts, so that no proof depends on a cross-lemma
	// trigger chain firing on its own.
	Hyp func(s *Session, v1, v2 Term) error
}

// WellFoundedInduction discharges spec by a single refutation and, on
// success, returns the universally quantified conclusion
//
//	∀v1,v2. guard(v1,v2) → prop(v1,v2)
//
// for the caller to assume or commit. No base case is needed: at a
// minimal pair the induction hypothesis is vacuous.
func WellFoundedInduction(s *Session, spec WellFoundedSpec) (Term, error) {
	err := s.Scope(func() error {
		v1, err := s.FreshConst(spec.Vars[0], SortInt)
		if err != nil {
			return err
		}
		v2, err := s.FreshConst(spec.Vars[1], SortInt)
		if err != nil {
			return err
		}
		if err := s.Assume(spec.Guard(v1, v2)); err != nil {
			return err
		}

		u1 := Sym{Name: spec.Vars[0] + "_lt"}
		u2 := Sym{Name: spec.Vars[1] + "_lt"}
		hypothesis := Forall{
			Bound: []Binding{
				{Name: u1.Name, Sort: SortInt},
				{Name: u2.Name, Sort: SortInt},
			},
			Trigger: spec.Trigger(u1, u2),
			Body: Implies{
				And{spec.Guard(u1, u2), spec.Less(u1, u2, v1, v2)},
				spec.Prop(u1, u2),
			},
		}
		if err := s.Assume(hypothesis); err != nil {
			return err
		}
		if spec.Hyp != nil {
			if err := spec.Hyp(s, v1, v2); err != nil {
				return err
			}
		}
		return s.MustRefute(spec.Name, spec.Prop(v1, v2))
	})
	if err != nil {
		return nil, err
	}

	b1 := Binding{Name: spec.Vars[0], Sort: SortInt}
	b2 := Binding{Name: spec.Vars[1], Sort: SortInt}
	v1, v2 := Sym{Name: b1.Name}, Sym{Name: b2.Name}
	return Forall{
		Bound:   []Binding{b1, b2},
		Trigger: spec.Trigger(v1, v2),
		Body:    Implies{spec.Guard(v1, v2), spec.Prop(v1, v2)},
	}, nil
}

// Lex builds the strict lexicographic order on pairs:
// (a1,a2) < (b1,b2) iff a1 < b1, or a1 = b1 and a2 < b2.
func Lex(a1, a2, b1, b2 Term) Term {
	return Or{
		Lt{a1, b1},
		And{Eq{a1, b1}, Lt{a2, b2}},
	}
}
