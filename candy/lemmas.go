package candy

import (
	"log/slog"

	"github.com/rfielding/candyshare/smt"
)

// Lemma and theorem names, in plan order.
const (
	StageModel              = "model"
	LemmaStateInvariant     = "state-invariant"
	LemmaMaxNonIncreasing   = "max-non-increasing"
	LemmaMinNonDecreasing   = "min-non-decreasing"
	LemmaAboveMinStaysAbove = "above-min-stays-above"
	LemmaPoorerGains        = "poorer-neighbor-gains"
	LemmaVariantBounds      = "variant-bounds"
	LemmaHistogramDecrease  = "histogram-decrease"
	LemmaLexDecrease        = "lexicographic-decrease"
	LemmaWellFounded        = "well-founded-induction"
	TheoremConvergence      = "convergence"
)

// Prover sequences the proof plan over one session. Each lemma opens
// its own reversible layer, assumes exactly the hypotheses it needs,
// refutes its negated goal, and commits the quantified conclusion into
// the persistent base so later lemmas can build on it.
type Prover struct {
	model  *Model
	sess   *smt.Session
	logger *slog.Logger
}

// NewProver creates a prover for the candy model.
func NewProver(model *Model, sess *smt.Session, logger *slog.Logger) *Prover {
	if logger == nil {
		logger = slog.Default()
	}
	return &Prover{model: model, sess: sess, logger: logger}
}

// declareModel is the first plan stage: vocabulary plus axioms.
func (p *Prover) declareModel() error {
	return p.model.Declare(p.sess)
}

// proveStateInvariant establishes by two-step induction that every
// child holds an even non-negative count at every step. Both later
// squeeze lemmas need the parity half of this.
func (p *Prover) proveStateInvariant() error {
	md := p.model
	concl, err := smt.TwoStepInduction(p.sess, smt.InductionSpec{
		Name:  LemmaStateInvariant,
		Var:   "k",
		Zero:  smt.Num(0),
		Succ:  smt.Succ,
		Guard: md.IsNat,
		Prop:  md.StateInvAt,
		Trigger: func(k smt.Term) []smt.Term {
			return []smt.Term{md.StateInvAt(k)}
		},
		Step: func(s *smt.Session, k smt.Term) error {
			return s.Assume(md.StepRelation(k))
		},
	})
	if err != nil {
		return err
	}
	return p.sess.Commit(LemmaStateInvariant, concl)
}

// stepScope opens a layer holding one fresh symbolic step k together
// with its domain guard, the state invariant at k, and the step-fixed
// transition relation, then runs fn inside it.
func (p *Prover) stepScope(fn func(k smt.Term) error) error {
	md := p.model
	return p.sess.Scope(func() error {
		k, err := p.sess.FreshConst("k", smt.SortInt)
		if err != nil {
			return err
		}
		if err := p.sess.Assume(md.IsNat(k)); err != nil {
			return err
		}
		// instance of the committed state-invariant lemma
		if err := p.sess.Assume(smt.Implies{Left: md.IsNat(k), Right: md.StateInvAt(k)}); err != nil {
			return err
		}
		if err := p.sess.Assume(md.StepRelation(k)); err != nil {
			return err
		}
		return fn(k)
	})
}

// proveMaxNonIncreasing: the maximum never increases across a step.
func (p *Prover) proveMaxNonIncreasing() error {
	md := p.model
	err := p.stepScope(func(k smt.Term) error {
		return p.sess.MustRefute(LemmaMaxNonIncreasing,
			smt.Le{Left: md.Max2At(smt.Succ(k)), Right: md.Max2At(k)})
	})
	if err != nil {
		return err
	}
	k := smt.Sym{Name: "k"}
	return p.sess.Commit(LemmaMaxNonIncreasing, smt.Forall{
		Bound:   []smt.Binding{{Name: "k", Sort: smt.SortInt}},
		Trigger: []smt.Term{md.Max2At(smt.Succ(k))},
		Body:    smt.Implies{Left: md.IsNat(k), Right: smt.Le{Left: md.Max2At(smt.Succ(k)), Right: md.Max2At(k)}},
	})
}

// proveMinNonDecreasing: the minimum never decreases across a step.
func (p *Prover) proveMinNonDecreasing() error {
	md := p.model
	err := p.stepScope(func(k smt.Term) error {
		return p.sess.MustRefute(LemmaMinNonDecreasing,
			smt.Le{Left: md.Min2At(k), Right: md.Min2At(smt.Succ(k))})
	})
	if err != nil {
		return err
	}
	k := smt.Sym{Name: "k"}
	return p.sess.Commit(LemmaMinNonDecreasing, smt.Forall{
		Bound:   []smt.Binding{{Name: "k", Sort: smt.SortInt}},
		Trigger: []smt.Term{md.Min2At(smt.Succ(k))},
		Body:    smt.Implies{Left: md.IsNat(k), Right: smt.Le{Left: md.Min2At(k), Right: md.Min2At(smt.Succ(k))}},
	})
}

// proveAboveMinStaysAbove: a child strictly above the step-k minimum
// is still strictly above that same value after the step. Note the
// bound is min2(k) on both sides, which is what the histogram lemma
// needs to rule out children moving into the old minimum.
func (p *Prover) proveAboveMinStaysAbove() error {
	md := p.model
	err := p.stepScope(func(k smt.Term) error {
		c, err := p.sess.FreshConst("i", smt.SortInt)
		if err != nil {
			return err
		}
		if err := p.sess.Assume(md.IsChild(c)); err != nil {
			return err
		}
		if err := p.sess.Assume(smt.Gt{Left: md.MAt(c, k), Right: md.Min2At(k)}); err != nil {
			return err
		}
		return p.sess.MustRefute(LemmaAboveMinStaysAbove,
			smt.Gt{Left: md.MAt(c, smt.Succ(k)), Right: md.Min2At(k)})
	})
	if err != nil {
		return err
	}
	k := smt.Sym{Name: "k"}
	i := smt.Sym{Name: "i"}
	return p.sess.Commit(LemmaAboveMinStaysAbove, smt.Forall{
		Bound: []smt.Binding{
			{Name: "k", Sort: smt.SortInt},
			{Name: "i", Sort: smt.SortInt},
		},
		Trigger: []smt.Term{md.MAt(i, smt.Succ(k))},
		Body:    smt.Implies{Left: smt.AndN(md.IsNat(k), md.IsChild(i), smt.Gt{Left: md.MAt(i, k), Right: md.Min2At(k)}), Right: smt.Gt{Left: md.MAt(i, smt.Succ(k)), Right: md.Min2At(k)}},
	})
}

// provePoorerGains: a child holding strictly fewer candies than its
// right neighbor strictly gains across the step. Needs parity: with
// both counts even, "fewer" means at least two fewer.
func (p *Prover) provePoorerGains() error {
	md := p.model
	err := p.stepScope(func(k smt.Term) error {
		c, err := p.sess.FreshConst("i", smt.SortInt)
		if err != nil {
			return err
		}
		if err := p.sess.Assume(md.IsChild(c)); err != nil {
			return err
		}
		if err := p.sess.Assume(smt.Lt{Left: md.MAt(c, k), Right: md.MAt(md.RightOf(c), k)}); err != nil {
			return err
		}
		return p.sess.MustRefute(LemmaPoorerGains,
			smt.Gt{Left: md.MAt(c, smt.Succ(k)), Right: md.MAt(c, k)})
	})
	if err != nil {
		return err
	}
	k := smt.Sym{Name: "k"}
	i := smt.Sym{Name: "i"}
	return p.sess.Commit(LemmaPoorerGains, smt.Forall{
		Bound: []smt.Binding{
			{Name: "k", Sort: smt.SortInt},
			{Name: "i", Sort: smt.SortInt},
		},
		Trigger: []smt.Term{md.MAt(i, smt.Succ(k))},
		Body: smt.Implies{Left: smt.AndN(md.IsNat(k), md.IsChild(i),
			smt.Lt{Left: md.MAt(i, k), Right: md.MAt(md.RightOf(i), k)}), Right: smt.Gt{Left: md.MAt(i, smt.Succ(k)), Right: md.MAt(i, k)},
		},
	})
}

// proveVariantBounds: both loop variants are naturals, so the
// lexicographic order on them is well-founded. No dynamics involved.
func (p *Prover) proveVariantBounds() error {
	md := p.model
	err := p.sess.Scope(func() error {
		k, err := p.sess.FreshConst("k", smt.SortInt)
		if err != nil {
			return err
		}
		if err := p.sess.Assume(md.IsNat(k)); err != nil {
			return err
		}
		return p.sess.MustRefute(LemmaVariantBounds,
			smt.And{Left: md.IsNat(md.LV1At(k)), Right: md.IsNat(md.LV2At(k))})
	})
	if err != nil {
		return err
	}
	k := smt.Sym{Name: "k"}
	return p.sess.Commit(LemmaVariantBounds, smt.Forall{
		Bound:   []smt.Binding{{Name: "k", Sort: smt.SortInt}},
		Trigger: []smt.Term{md.LV1At(k)},
		Body:    smt.Implies{Left: md.IsNat(k), Right: smt.And{Left: md.IsNat(md.LV1At(k)), Right: md.IsNat(md.LV2At(k))}},
	})
}
