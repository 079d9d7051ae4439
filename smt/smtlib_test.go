package smt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeArithmetic(t *testing.T) {
	a := Sym{Name: "a"}
	b := Sym{Name: "b"}

	require.Equal(t, "(+ a b)", EncodeTerm(Add{a, b}))
	require.Equal(t, "(- a b)", EncodeTerm(Sub{a, b}))
	require.Equal(t, "(div a 2)", EncodeTerm(Div{a, Num(2)}))
	require.Equal(t, "(mod a 2)", EncodeTerm(Mod{a, Num(2)}))
	require.Equal(t, "42", EncodeTerm(Num(42)))
	require.Equal(t, "(- 7)", EncodeTerm(Num(-7)))
}

func TestEncodeComparisonsAndConnectives(t *testing.T) {
	a := Sym{Name: "a"}
	b := Sym{Name: "b"}

	require.Equal(t, "(= a b)", EncodeTerm(Eq{a, b}))
	require.Equal(t, "(<= a b)", EncodeTerm(Le{a, b}))
	require.Equal(t, "(< a b)", EncodeTerm(Lt{a, b}))
	require.Equal(t, "(>= a b)", EncodeTerm(Ge{a, b}))
	require.Equal(t, "(> a b)", EncodeTerm(Gt{a, b}))
	require.Equal(t, "(not a)", EncodeTerm(Not{a}))
	require.Equal(t, "(and a b)", EncodeTerm(And{a, b}))
	require.Equal(t, "(or a b)", EncodeTerm(Or{a, b}))
	require.Equal(t, "(=> a b)", EncodeTerm(Implies{a, b}))
}

func TestEncodeIffAsEquality(t *testing.T) {
	p := Sym{Name: "p"}
	q := Sym{Name: "q"}
	require.Equal(t, "(= p q)", EncodeTerm(Iff{p, q}))
}

func TestEncodeApply(t *testing.T) {
	m := FuncDecl{Name: "m", Params: []Sort{SortInt, SortInt}, Result: SortInt}
	i := Sym{Name: "i"}
	k := Sym{Name: "k"}

	require.Equal(t, "(m i k)", EncodeTerm(m.Apply(i, k)))
	require.Equal(t, "(m i (+ k 1))", EncodeTerm(m.Apply(i, Succ(k))))
}

func TestEncodeForallWithPattern(t *testing.T) {
	f := FuncDecl{Name: "f", Params: []Sort{SortInt}, Result: SortInt}
	k := Sym{Name: "k"}
	quantified := Forall{
		Bound:   []Binding{{Name: "k", Sort: SortInt}},
		Trigger: []Term{f.Apply(Succ(k))},
		Body:    Le{f.Apply(Succ(k)), f.Apply(k)},
	}

	got := EncodeTerm(quantified)
	want := "(forall ((k Int)) (! (<= (f (+ k 1)) (f k)) :pattern ((f (+ k 1)))))"
	require.Equal(t, want, got)
}

func TestEncodeForallMultiplePatternTerms(t *testing.T) {
	f := FuncDecl{Name: "f", Params: []Sort{SortInt}, Result: SortInt}
	g := FuncDecl{Name: "g", Params: []Sort{SortInt}, Result: SortInt}
	k := Sym{Name: "k"}
	quantified := Forall{
		Bound:   []Binding{{Name: "k", Sort: SortInt}},
		Trigger: []Term{f.Apply(k), g.Apply(k)},
		Body:    Eq{f.Apply(k), g.Apply(k)},
	}

	got := EncodeTerm(quantified)
	require.Contains(t, got, ":pattern ((f k) (g k))")
}

func TestEncodeForallWithoutTriggerHasNoAnnotation(t *testing.T) {
	k := Sym{Name: "k"}
	got := EncodeTerm(Forall{
		Bound: []Binding{{Name: "k", Sort: SortInt}},
		Body:  Ge{k, Num(0)},
	})
	require.Equal(t, "(forall ((k Int)) (>= k 0))", got)
}

func TestEncodeExists(t *testing.T) {
	k := Sym{Name: "k"}
	got := EncodeTerm(Exists{
		Bound: []Binding{{Name: "k", Sort: SortInt}},
		Body:  And{Ge{k, Num(0)}, Eq{k, Num(3)}},
	})
	require.Equal(t, "(exists ((k Int)) (and (>= k 0) (= k 3)))", got)
}

func TestTermStrings(t *testing.T) {
	a := Sym{Name: "a"}
	b := Sym{Name: "b"}

	require.Equal(t, "(a ∧ b)", And{a, b}.String())
	require.Equal(t, "(a → b)", Implies{a, b}.String())
	require.Equal(t, "¬a", Not{a}.String())

	f := FuncDecl{Name: "f", Params: []Sort{SortInt}, Result: SortInt}
	quantified := Forall{
		Bound:   []Binding{{Name: "k", Sort: SortInt}},
		Trigger: []Term{f.Apply(Sym{Name: "k"})},
		Body:    Ge{f.Apply(Sym{Name: "k"}), Num(0)},
	}
	require.Equal(t, "∀k {f(k)}. (f(k) ≥ 0)", quantified.String())
}

func TestAndNFolds(t *testing.T) {
	a := Sym{Name: "a"}
	b := Sym{Name: "b"}
	c := Sym{Name: "c"}

	require.Equal(t, "a", AndN(a).String())
	require.Equal(t, "(and (and a b) c)", EncodeTerm(AndN(a, b, c)))
}

func TestScript(t *testing.T) {
	var script Script
	script.SetLogic("UFNIA")
	script.Comment("hello")
	script.DeclareConst("N", SortInt)
	script.DeclareFun(FuncDecl{Name: "m", Params: []Sort{SortInt, SortInt}, Result: SortInt})
	script.Push()
	script.Assert(Ge{Sym{Name: "N"}, Num(1)})
	script.CheckSat()
	script.Pop()

	got := script.String()
	lines := []string{
		"(set-logic UFNIA)",
		"; hello",
		"(declare-const N Int)",
		"(declare-fun m (Int Int) Int)",
		"(push 1)",
		"(assert (>= N 1))",
		"(check-sat)",
		"(pop 1)",
	}
	require.Equal(t, strings.Join(lines, "\n")+"\n", got)
	require.Equal(t, len(lines), script.Len())
}
