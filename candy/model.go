// Package candy proves that the uniform candy distribution process
// converges: N children in a circle, each holding an even non-negative
// number of candies, repeatedly replace their count with the rounded
// half-sum of their own and their clockwise neighbor's, and eventually
// all counts are equal. The proof is a fixed plan of refutation
// queries issued through an smt.Session; every lemma is established by
// showing its negation unsatisfiable and then committed so later
// lemmas may depend on it.
package candy

import (
	"fmt"

	"github.com/rfielding/candyshare/smt"
)

// Model declares the uninterpreted vocabulary describing system state
// and the axioms fixing its meaning. It contains no proof steps.
type Model struct {
	// N is the number of children. It stays a free symbolic
	// constant, so everything proved holds for every N ≥ 1.
	N smt.Sym

	M        smt.FuncDecl // m(i,k): candies held by child i after k steps
	Right    smt.FuncDecl // right(i): clockwise neighbor
	MaxChild smt.FuncDecl // max-child(k): a child holding the maximum at k
	MinChild smt.FuncDecl // min-child(k): a child holding the minimum at k
	Max2     smt.FuncDecl // max2(k) = m(max-child(k), k)
	Min2     smt.FuncDecl // min2(k) = m(min-child(k), k)
	Num      smt.FuncDecl // num(n,k): children holding exactly n at k
	Trans    smt.FuncDecl // trans(i,k): i took a distribution step from k to k+1
	StateInv smt.FuncDecl // state-inv(k): all counts even and non-negative at k
	LV1      smt.FuncDecl // lv1(k) = max2(k) - min2(k), first loop variant
	LV2      smt.FuncDecl // lv2(k) = num(min2(k), k), second loop variant
	Conv     smt.FuncDecl // conv(k): some step at or after k has min2 = max2
	P        smt.FuncDecl // P(v1,v2): every step with variants (v1,v2) converges
}

// NewModel builds the vocabulary. Declare must be called before any
// lemma runs.
func NewModel() *Model {
	ii := []smt.Sort{smt.SortInt, smt.SortInt}
	i := []smt.Sort{smt.SortInt}
	return &Model{
		N:        smt.Sym{Name: "N"},
		M:        smt.FuncDecl{Name: "m", Params: ii, Result: smt.SortInt},
		Right:    smt.FuncDecl{Name: "right", Params: i, Result: smt.SortInt},
		MaxChild: smt.FuncDecl{Name: "max-child", Params: i, Result: smt.SortInt},
		MinChild: smt.FuncDecl{Name: "min-child", Params: i, Result: smt.SortInt},
		Max2:     smt.FuncDecl{Name: "max2", Params: i, Result: smt.SortInt},
		Min2:     smt.FuncDecl{Name: "min2", Params: i, Result: smt.SortInt},
		Num:      smt.FuncDecl{Name: "num", Params: ii, Result: smt.SortInt},
		Trans:    smt.FuncDecl{Name: "trans", Params: ii, Result: smt.SortBool},
		StateInv: smt.FuncDecl{Name: "state-inv", Params: i, Result: smt.SortBool},
		LV1:      smt.FuncDecl{Name: "loop-variant-1", Params: i, Result: smt.SortInt},
		LV2:      smt.FuncDecl{Name: "loop-variant-2", Params: i, Result: smt.SortInt},
		Conv:     smt.FuncDecl{Name: "conv", Params: i, Result: smt.SortBool},
		P:        smt.FuncDecl{Name: "wf-p", Params: ii, Result: smt.SortBool},
	}
}

// IsChild is the domain guard for child indexes: 1 ≤ i ≤ N.
func (md *Model) IsChild(i smt.Term) smt.Term {
	return smt.And{Left: smt.Ge{Left: i, Right: smt.Num(1)}, Right: smt.Le{Left: i, Right: md.N}}
}

// IsNat is the domain guard for step counts and variants: k ≥ 0.
func (md *Model) IsNat(k smt.Term) smt.Term {
	return smt.Ge{Left: k, Right: smt.Num(0)}
}

// EvenNonNeg states that t is an even non-negative count.
func (md *Model) EvenNonNeg(t smt.Term) smt.Term {
	return smt.And{Left: smt.Ge{Left: t, Right: smt.Num(0)}, Right: smt.Eq{Left: smt.Mod{Left: t, Right: smt.Num(2)}, Right: smt.Num(0)}}
}

// MAt is m(i,k).
func (md *Model) MAt(i, k smt.Term) smt.Term {
	return md.M.Apply(i, k)
}

// RightOf is right(i).
func (md *Model) RightOf(i smt.Term) smt.Term {
	return md.Right.Apply(i)
}

// Max2At is max2(k).
func (md *Model) Max2At(k smt.Term) smt.Term {
	return md.Max2.Apply(k)
}

// Min2At is min2(k).
func (md *Model) Min2At(k smt.Term) smt.Term {
	return md.Min2.Apply(k)
}

// NumAt is num(n,k).
func (md *Model) NumAt(n, k smt.Term) smt.Term {
	return md.Num.Apply(n, k)
}

// StateInvAt is state-inv(k).
func (md *Model) StateInvAt(k smt.Term) smt.Term {
	return md.StateInv.Apply(k)
}

// LV1At is loop-variant-1(k).
func (md *Model) LV1At(k smt.Term) smt.Term {
	return md.LV1.Apply(k)
}

// LV2At is loop-variant-2(k).
func (md *Model) LV2At(k smt.Term) smt.Term {
	return md.LV2.Apply(k)
}

// ConvAt is conv(k).
func (md *Model) ConvAt(k smt.Term) smt.Term {
	return md.Conv.Apply(k)
}

// PAt is wf-p(v1,v2).
func (md *Model) PAt(v1, v2 smt.Term) smt.Term {
	return md.P.Apply(v1, v2)
}

// HalfSumRounded is the parity-rounded half-sum: (a+b) div 2, rounded
// up by one when odd so counts stay even.
func (md *Model) HalfSumRounded(a, b smt.Term) smt.Term {
	half := smt.Div{Left: smt.Add{Left: a, Right: b}, Right: smt.Num(2)}
	return smt.Add{Left: half, Right: smt.Mod{Left: half, Right: smt.Num(2)}}
}

// TransEq is the dynamics equation named by trans(i,k):
// m(i,k+1) = half-sum of m(i,k) and m(right(i),k), rounded.
func (md *Model) TransEq(i, k smt.Term) smt.Term {
	return smt.Eq{Left: md.MAt(i, smt.Succ(k)), Right: md.HalfSumRounded(md.MAt(i, k), md.MAt(md.RightOf(i), k))}
}

// StepRelation is the step-fixed transition instance asserted inside a
// lemma's layer for one concrete symbolic step k:
//
//	∀i {m(i,k+1)}. is-child(i) → trans(i,k)
//
// The fully general ∀i,k axiom is deliberately never asserted: the
// trigger m(i,k+1) would match terms the instantiation itself creates
// and chain without bound. Generalize only as far as the current lemma
// needs, never further.
func (md *Model) StepRelation(k smt.Term) smt.Term {
	i := smt.Sym{Name: "i"}
	return smt.Forall{
		Bound:   []smt.Binding{{Name: "i", Sort: smt.SortInt}},
		Trigger: []smt.Term{md.MAt(i, smt.Succ(k))},
		Body:    smt.Implies{Left: md.IsChild(i), Right: md.Trans.Apply(i, k)},
	}
}

// Declare registers the vocabulary and commits the axioms into the
// persistent base layer.
func (md *Model) Declare(s *smt.Session) error {
	decls := []smt.FuncDecl{
		{Name: md.N.Name, Result: smt.SortInt},
		md.M, md.Right, md.MaxChild, md.MinChild,
		md.Max2, md.Min2, md.Num, md.Trans, md.StateInv,
		md.LV1, md.LV2, md.Conv, md.P,
	}
	for _, d := range decls {
		if err := s.Declare(d); err != nil {
			return fmt.Errorf("candy: declare %s: %w", d.Name, err)
		}
	}
	for _, ax := range md.axioms() {
		if err := s.Commit("axiom:"+ax.name, ax.formula); err != nil {
			return fmt.Errorf("candy: %w", err)
		}
	}
	return nil
}

type axiom struct {
	name    string
	formula smt.Term
}

func (md *Model) axioms() []axiom {
	i := smt.Sym{Name: "i"}
	j := smt.Sym{Name: "j"}
	k := smt.Sym{Name: "k"}
	k2 := smt.Sym{Name: "k2"}
	n := smt.Sym{Name: "n"}
	v1 := smt.Sym{Name: "v1"}
	v2 := smt.Sym{Name: "v2"}
	bi := smt.Binding{Name: "i", Sort: smt.SortInt}
	bj := smt.Binding{Name: "j", Sort: smt.SortInt}
	bk := smt.Binding{Name: "k", Sort: smt.SortInt}
	bk2 := smt.Binding{Name: "k2", Sort: smt.SortInt}
	bn := smt.Binding{Name: "n", Sort: smt.SortInt}
	bv1 := smt.Binding{Name: "v1", Sort: smt.SortInt}
	bv2 := smt.Binding{Name: "v2", Sort: smt.SortInt}

	// "No child moves into n across the step": hypothesis of the
	// histogram decrease axiom. Only this direction of num's meaning
	// is axiomatized; completing it to a full defining equation would
	// change which instantiations fire and is deliberately avoided.
	noMoveIn := smt.Forall{
		Bound:   []smt.Binding{bj},
		Trigger: []smt.Term{md.MAt(j, smt.Succ(k))},
		Body:    smt.Implies{Left: smt.And{Left: md.IsChild(j), Right: smt.Eq{Left: md.MAt(j, smt.Succ(k)), Right: n}}, Right: smt.Eq{Left: md.MAt(j, k), Right: n}},
	}

	return []axiom{
		{"children-exist", smt.Ge{Left: md.N, Right: smt.Num(1)}},
		{"right-def", smt.Forall{
			Bound:   []smt.Binding{bi},
			Trigger: []smt.Term{md.RightOf(i)},
			Body: smt.Implies{Left: md.IsChild(i), Right: smt.AndN(
				smt.Implies{Left: smt.Lt{Left: i, Right: md.N}, Right: smt.Eq{Left: md.RightOf(i), Right: smt.Succ(i)}},
				smt.Implies{Left: smt.Eq{Left: i, Right: md.N}, Right: smt.Eq{Left: md.RightOf(i), Right: smt.Num(1)}},
				md.IsChild(md.RightOf(i)),
			),
			},
		}},
		{"max-child-range", smt.Forall{
			Bound:   []smt.Binding{bk},
			Trigger: []smt.Term{md.MaxChild.Apply(k)},
			Body:    smt.Implies{Left: md.IsNat(k), Right: md.IsChild(md.MaxChild.Apply(k))},
		}},
		{"min-child-range", smt.Forall{
			Bound:   []smt.Binding{bk},
			Trigger: []smt.Term{md.MinChild.Apply(k)},
			Body:    smt.Implies{Left: md.IsNat(k), Right: md.IsChild(md.MinChild.Apply(k))},
		}},
		{"max-dominates", smt.Forall{
			Bound:   []smt.Binding{bk, bi},
			Trigger: []smt.Term{md.MAt(i, k)},
			Body:    smt.Implies{Left: smt.And{Left: md.IsNat(k), Right: md.IsChild(i)}, Right: smt.Le{Left: md.MAt(i, k), Right: md.MAt(md.MaxChild.Apply(k), k)}},
		}},
		{"min-dominated", smt.Forall{
			Bound:   []smt.Binding{bk, bi},
			Trigger: []smt.Term{md.MAt(i, k)},
			Body:    smt.Implies{Left: smt.And{Left: md.IsNat(k), Right: md.IsChild(i)}, Right: smt.Le{Left: md.MAt(md.MinChild.Apply(k), k), Right: md.MAt(i, k)}},
		}},
		{"max2-def", smt.Forall{
			Bound:   []smt.Binding{bk},
			Trigger: []smt.Term{md.Max2At(k)},
			Body:    smt.Implies{Left: md.IsNat(k), Right: smt.Eq{Left: md.Max2At(k), Right: md.MAt(md.MaxChild.Apply(k), k)}},
		}},
		{"min2-def", smt.Forall{
			Bound:   []smt.Binding{bk},
			Trigger: []smt.Term{md.Min2At(k)},
			Body:    smt.Implies{Left: md.IsNat(k), Right: smt.Eq{Left: md.Min2At(k), Right: md.MAt(md.MinChild.Apply(k), k)}},
		}},
		{"initial-state", smt.Forall{
			Bound:   []smt.Binding{bi},
			Trigger: []smt.Term{md.MAt(i, smt.Num(0))},
			Body:    smt.Implies{Left: md.IsChild(i), Right: md.EvenNonNeg(md.MAt(i, smt.Num(0)))},
		}},
		{"trans-def", smt.Forall{
			Bound:   []smt.Binding{bi, bk},
			Trigger: []smt.Term{md.Trans.Apply(i, k)},
			Body:    smt.Implies{Left: smt.And{Left: md.IsChild(i), Right: md.IsNat(k)}, Right: smt.Iff{Left: md.Trans.Apply(i, k), Right: md.TransEq(i, k)}},
		}},
		{"num-nonneg", smt.Forall{
			Bound:   []smt.Binding{bn, bk},
			Trigger: []smt.Term{md.NumAt(n, k)},
			Body:    smt.Implies{Left: md.IsNat(k), Right: smt.Ge{Left: md.NumAt(n, k), Right: smt.Num(0)}},
		}},
		{"num-decrease", smt.Forall{
			Bound:   []smt.Binding{bn, bk, bi},
			Trigger: []smt.Term{md.NumAt(n, smt.Succ(k)), md.MAt(i, k)},
			Body: smt.Implies{Left: smt.AndN(
				md.IsNat(k),
				md.IsChild(i),
				smt.Eq{Left: md.MAt(i, k), Right: n},
				smt.Not{Formula: smt.Eq{Left: md.MAt(i, smt.Succ(k)), Right: n}},
				noMoveIn,
			), Right: smt.Lt{Left: md.NumAt(n, smt.Succ(k)), Right: md.NumAt(n, k)},
			},
		}},
		{"state-inv-def", smt.Forall{
			Bound:   []smt.Binding{bk},
			Trigger: []smt.Term{md.StateInvAt(k)},
			Body: smt.Implies{Left: md.IsNat(k), Right: smt.Iff{Left: md.StateInvAt(k), Right: smt.Forall{
				Bound:   []smt.Binding{bi},
				Trigger: []smt.Term{md.MAt(i, k)},
				Body:    smt.Implies{Left: md.IsChild(i), Right: md.EvenNonNeg(md.MAt(i, k))},
			},
			},
			},
		}},
		{"loop-variant-1-def", smt.Forall{
			Bound:   []smt.Binding{bk},
			Trigger: []smt.Term{md.LV1At(k)},
			Body:    smt.Implies{Left: md.IsNat(k), Right: smt.Eq{Left: md.LV1At(k), Right: smt.Sub{Left: md.Max2At(k), Right: md.Min2At(k)}}},
		}},
		{"loop-variant-2-def", smt.Forall{
			Bound:   []smt.Binding{bk},
			Trigger: []smt.Term{md.LV2At(k)},
			Body:    smt.Implies{Left: md.IsNat(k), Right: smt.Eq{Left: md.LV2At(k), Right: md.NumAt(md.Min2At(k), k)}},
		}},
		{"conv-def", smt.Forall{
			Bound:   []smt.Binding{bk},
			Trigger: []smt.Term{md.ConvAt(k)},
			Body: smt.Implies{Left: md.IsNat(k), Right: smt.Iff{Left: md.ConvAt(k), Right: smt.Exists{
				Bound: []smt.Binding{bk2},
				Body: smt.AndN(
					md.IsNat(k2),
					smt.Ge{Left: k2, Right: k},
					smt.Eq{Left: md.Min2At(k2), Right: md.Max2At(k2)},
				),
			},
			},
			},
		}},
		{"wf-p-def", smt.Forall{
			Bound:   []smt.Binding{bv1, bv2},
			Trigger: []smt.Term{md.PAt(v1, v2)},
			Body: smt.Iff{Left: md.PAt(v1, v2), Right: smt.Forall{
				Bound:   []smt.Binding{bk},
				Trigger: []smt.Term{md.LV1At(k)},
				Body:    smt.Implies{Left: smt.AndN(md.IsNat(k), smt.Eq{Left: md.LV1At(k), Right: v1}, smt.Eq{Left: md.LV2At(k), Right: v2}), Right: md.ConvAt(k)},
			},
			},
		}},
	}
}
