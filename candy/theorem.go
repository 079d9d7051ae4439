package candy

import (
	"fmt"
	"time"

	"github.com/rfielding/candyshare/smt"
)

// proveLexDecrease establishes that the variant pair
// (loop-variant-1, loop-variant-2) strictly decreases lexicographically
// across any step at which some child sits above the minimum: either
// the max-min span shrinks, or it is unchanged — which pins both
// extremes — and the histogram at the (unchanged) minimum shrinks.
func (p *Prover) proveLexDecrease() error {
	md := p.model
	s := p.sess
	err := s.Scope(func() error {
		k, err := s.FreshConst("k", smt.SortInt)
		if err != nil {
			return err
		}
		c, err := s.FreshConst("gap", smt.SortInt)
		if err != nil {
			return err
		}
		hyps := []smt.Term{
			md.IsNat(k),
			md.IsChild(c),
			smt.Gt{Left: md.MAt(c, k), Right: md.Min2At(k)},
			// step-fixed instances of the committed squeeze and
			// histogram lemmas
			smt.Implies{Left: md.IsNat(k), Right: smt.Le{Left: md.Max2At(smt.Succ(k)), Right: md.Max2At(k)}},
			smt.Implies{Left: md.IsNat(k), Right: smt.Le{Left: md.Min2At(k), Right: md.Min2At(smt.Succ(k))}},
			smt.Implies{Left: smt.AndN(md.IsNat(k), md.IsChild(c), smt.Gt{Left: md.MAt(c, k), Right: md.Min2At(k)}), Right: smt.Lt{Left: md.NumAt(md.Min2At(k), smt.Succ(k)), Right: md.NumAt(md.Min2At(k), k)}},
		}
		for _, h := range hyps {
			if err := s.Assume(h); err != nil {
				return err
			}
		}
		return s.MustRefute(LemmaLexDecrease, smt.Lex(
			md.LV1At(smt.Succ(k)), md.LV2At(smt.Succ(k)),
			md.LV1At(k), md.LV2At(k),
		))
	})
	if err != nil {
		return err
	}

	k := smt.Sym{Name: "k"}
	i := smt.Sym{Name: "i"}
	return s.Commit(LemmaLexDecrease, smt.Forall{
		Bound: []smt.Binding{
			{Name: "k", Sort: smt.SortInt},
			{Name: "i", Sort: smt.SortInt},
		},
		Trigger: []smt.Term{md.LV1At(smt.Succ(k)), md.MAt(i, k)},
		Body:    smt.Implies{Left: smt.AndN(md.IsNat(k), md.IsChild(i), smt.Gt{Left: md.MAt(i, k), Right: md.Min2At(k)}), Right: smt.Lex(md.LV1At(smt.Succ(k)), md.LV2At(smt.Succ(k)), md.LV1At(k), md.LV2At(k))},
	})
}

// proveWellFounded instantiates the generic well-founded induction
// scheme: P(v1,v2) — every step whose variant pair is (v1,v2)
// eventually converges — holds for all pairs of naturals, because a
// non-converging step would decrease its pair lexicographically into
// the induction hypothesis.
func (p *Prover) proveWellFounded() error {
	md := p.model
	concl, err := smt.WellFoundedInduction(p.sess, smt.WellFoundedSpec{
		Name: LemmaWellFounded,
		Vars: [2]string{"v1", "v2"},
		Guard: func(v1, v2 smt.Term) smt.Term {
			return smt.And{Left: md.IsNat(v1), Right: md.IsNat(v2)}
		},
		Prop: md.PAt,
		Less: smt.Lex,
		Trigger: func(v1, v2 smt.Term) []smt.Term {
			return []smt.Term{md.PAt(v1, v2)}
		},
		Hyp: p.wellFoundedHyps,
	})
	if err != nil {
		return err
	}
	return p.sess.Commit(LemmaWellFounded, concl)
}

// wellFoundedHyps skolemizes the negated goal by hand and asserts the
// specialized instances the refutation runs on: a step kw carrying the
// pair (v1,v2) that never converges, the lexicographic decrease at kw
// witnessed by the maximum holder, the variant bounds at kw+1, and the
// induction hypothesis applied to the decreased pair.
func (p *Prover) wellFoundedHyps(s *smt.Session, v1, v2 smt.Term) error {
	md := p.model
	kw, err := s.FreshConst("kw", smt.SortInt)
	if err != nil {
		return err
	}
	k2 := smt.Sym{Name: "k2"}
	gw := md.MaxChild.Apply(kw)
	next1 := md.LV1At(smt.Succ(kw))
	next2 := md.LV2At(smt.Succ(kw))
	hyps := []smt.Term{
		md.IsNat(kw),
		smt.Eq{Left: md.LV1At(kw), Right: v1},
		smt.Eq{Left: md.LV2At(kw), Right: v2},
		smt.Not{Formula: md.ConvAt(kw)},
		// expansion of ¬conv(kw): no step at or after kw converges
		smt.Forall{
			Bound:   []smt.Binding{{Name: "k2", Sort: smt.SortInt}},
			Trigger: []smt.Term{md.Min2At(k2)},
			Body:    smt.Implies{Left: smt.And{Left: md.IsNat(k2), Right: smt.Ge{Left: k2, Right: kw}}, Right: smt.Not{Formula: smt.Eq{Left: md.Min2At(k2), Right: md.Max2At(k2)}}},
		},
		// lexicographic-decrease at kw, gap witnessed by the max holder
		smt.Implies{Left: smt.AndN(md.IsNat(kw), md.IsChild(gw), smt.Gt{Left: md.MAt(gw, kw), Right: md.Min2At(kw)}), Right: smt.Lex(next1, next2, md.LV1At(kw), md.LV2At(kw))},
		// variant-bounds at kw+1
		smt.Implies{Left: md.IsNat(smt.Succ(kw)), Right: smt.And{Left: md.IsNat(next1), Right: md.IsNat(next2)}},
		// induction hypothesis applied to the decreased pair
		smt.Implies{Left: smt.AndN(md.IsNat(next1), md.IsNat(next2), smt.Lex(next1, next2, v1, v2)), Right: md.PAt(next1, next2)},
	}
	for _, h := range hyps {
		if err := s.Assume(h); err != nil {
			return err
		}
	}
	return nil
}

// proveConvergence discharges the top-level theorem: some step has
// min2 = max2, i.e. all children hold the same count. It applies the
// well-founded property at the concrete pair carried by step 0 and
// refutes the manually expanded negation.
func (p *Prover) proveConvergence() error {
	md := p.model
	s := p.sess
	zero := smt.Num(0)
	theorem := smt.Exists{
		Bound: []smt.Binding{{Name: "k", Sort: smt.SortInt}},
		Body: smt.AndN(
			md.IsNat(smt.Sym{Name: "k"}),
			smt.Eq{Left: md.Min2At(smt.Sym{Name: "k"}), Right: md.Max2At(smt.Sym{Name: "k"})},
		),
	}
	err := s.Scope(func() error {
		k := smt.Sym{Name: "k"}
		hyps := []smt.Term{
			// well-founded induction applied at the base pair
			smt.Implies{Left: smt.And{Left: md.IsNat(md.LV1At(zero)), Right: md.IsNat(md.LV2At(zero))}, Right: md.PAt(md.LV1At(zero), md.LV2At(zero))},
			// variant-bounds at step 0
			smt.Implies{Left: md.IsNat(zero), Right: smt.And{Left: md.IsNat(md.LV1At(zero)), Right: md.IsNat(md.LV2At(zero))}},
			// manually expanded negation of the theorem
			smt.Forall{
				Bound:   []smt.Binding{{Name: "k", Sort: smt.SortInt}},
				Trigger: []smt.Term{md.Min2At(k)},
				Body:    smt.Implies{Left: md.IsNat(k), Right: smt.Not{Formula: smt.Eq{Left: md.Min2At(k), Right: md.Max2At(k)}}},
			},
		}
		for _, h := range hyps {
			if err := s.Assume(h); err != nil {
				return err
			}
		}
		v, err := s.Check()
		if err != nil {
			return err
		}
		if v != smt.Unsat {
			return &smt.RefutationError{Lemma: TheoremConvergence, Verdict: v}
		}
		return nil
	})
	if err != nil {
		return err
	}
	return s.Commit(TheoremConvergence, theorem)
}

// Stage is one gate of the proof plan. Deps exist for reporting and
// the dependency graph; execution order is the slice order.
type Stage struct {
	Name string
	Deps []string
	Run  func() error
}

// Plan returns the full proof plan in execution order. No stage may
// start before every earlier stage committed, because each refutation
// is conditioned on the exact persistent fact set at the moment it
// runs.
func (p *Prover) Plan() []Stage {
	return []Stage{
		{Name: StageModel, Run: p.declareModel},
		{Name: LemmaStateInvariant, Deps: []string{StageModel}, Run: p.proveStateInvariant},
		{Name: LemmaMaxNonIncreasing, Deps: []string{LemmaStateInvariant}, Run: p.proveMaxNonIncreasing},
		{Name: LemmaMinNonDecreasing, Deps: []string{LemmaStateInvariant}, Run: p.proveMinNonDecreasing},
		{Name: LemmaAboveMinStaysAbove, Deps: []string{LemmaStateInvariant}, Run: p.proveAboveMinStaysAbove},
		{Name: LemmaPoorerGains, Deps: []string{LemmaStateInvariant}, Run: p.provePoorerGains},
		{Name: LemmaVariantBounds, Deps: []string{StageModel}, Run: p.proveVariantBounds},
		{Name: LemmaHistogramDecrease, Deps: []string{LemmaAboveMinStaysAbove, LemmaPoorerGains}, Run: p.proveHistogramDecrease},
		{Name: LemmaLexDecrease, Deps: []string{LemmaMaxNonIncreasing, LemmaMinNonDecreasing, LemmaHistogramDecrease}, Run: p.proveLexDecrease},
		{Name: LemmaWellFounded, Deps: []string{LemmaLexDecrease, LemmaVariantBounds}, Run: p.proveWellFounded},
		{Name: TheoremConvergence, Deps: []string{LemmaWellFounded, LemmaVariantBounds}, Run: p.proveConvergence},
	}
}

// Run executes the plan in order, stopping at the first stage whose
// refutation fails. The returned report always covers the stages that
// ran, including a failed one.
func (p *Prover) Run() (*Report, error) {
	report := NewReport()
	for _, stage := range p.Plan() {
		start := time.Now()
		err := stage.Run()
		report.Add(StageResult{
			Name:    stage.Name,
			Elapsed: time.Since(start),
			Err:     err,
		})
		if err != nil {
			report.Finish(p.sess, false)
			return report, fmt.Errorf("candy: proof halted at %s: %w", stage.Name, err)
		}
		p.logger.Info("stage discharged", "stage", stage.Name, "elapsed", time.Since(start))
	}
	report.Finish(p.sess, true)
	p.logger.Info("theorem committed", "theorem", TheoremConvergence)
	return report, nil
}
