// Package smt contains the proof machinery shared by the candy proof:
// a first-order term language with instantiation triggers, a scoped
// refutation session over a pluggable solver, and induction combinators
// built out of primitive refutation checks.
package smt

import (
	"fmt"
	"strings"
)

// Sort names a solver sort.
type Sort string

const (
	SortInt  Sort = "Int"
	SortBool Sort = "Bool"
)

// Term represents a term or formula sent to the solver.
type Term interface {
	String() string
}

// IntLit represents an integer literal.
type IntLit struct {
	Value int64
}

func (l IntLit) String() string {
	return fmt.Sprintf("%d", l.Value)
}

// Num is shorthand for an integer literal.
func Num(v int64) IntLit {
	return IntLit{Value: v}
}

// Sym represents an occurrence of a declared constant or bound variable.
type Sym struct {
	Name string
}

func (s Sym) String() string {
	return s.Name
}

// FuncDecl identifies an uninterpreted function symbol.
type FuncDecl struct {
	Name   string
	Params []Sort
	Result Sort
}

// Apply builds an application of the function to the given arguments.
func (f FuncDecl) Apply(args ...Term) Apply {
	return Apply{Fn: f, Args: args}
}

// Apply represents a function application.
type Apply struct {
	Fn   FuncDecl
	Args []Term
}

func (a Apply) String() string {
	parts := make([]string, len(a.Args))
	for i, arg := range a.Args {
		parts[i] = arg.String()
	}
	return fmt.Sprintf("%s(%s)", a.Fn.Name, strings.Join(parts, ", "))
}

// Add represents integer addition.
type Add struct {
	Left, Right Term
}

func (a Add) String() string {
	return fmt.Sprintf("(%s + %s)", a.Left, a.Right)
}

// Sub represents integer subtraction.
type Sub struct {
	Left, Right Term
}

func (s Sub) String() string {
	return fmt.Sprintf("(%s - %s)", s.Left, s.Right)
}

// Div represents euclidean integer division.
type Div struct {
	Left, Right Term
}

func (d Div) String() string {
	return fmt.Sprintf("(%s div %s)", d.Left, d.Right)
}

// Mod represents the euclidean remainder.
type Mod struct {
	Left, Right Term
}

func (m Mod) String() string {
	return fmt.Sprintf("(%s mod %s)", m.Left, m.Right)
}

// Eq represents equality.
type Eq struct {
	Left, Right Term
}

func (e Eq) String() string {
	return fmt.Sprintf("(%s = %s)", e.Left, e.Right)
}

// Le represents less-or-equal.
type Le struct {
	Left, Right Term
}

func (l Le) String() string {
	return fmt.Sprintf("(%s ≤ %s)", l.Left, l.Right)
}

// Lt represents strictly-less.
type Lt struct {
	Left, Right Term
}

func (l Lt) String() string {
	return fmt.Sprintf("(%s < %s)", l.Left, l.Right)
}

// Ge represents greater-or-equal.
type Ge struct {
	Left, Right Term
}

func (g Ge) String() string {
	return fmt.Sprintf("(%s ≥ %s)", g.Left, g.Right)
}

// Gt represents strictly-greater.
type Gt struct {
	Left, Right Term
}

func (g Gt) String() string {
	return fmt.Sprintf("(%s > %s)", g.Left, g.Right)
}

// Not represents negation.
type Not struct {
	Formula Term
}

func (n Not) String() string {
	return fmt.Sprintf("¬%s", n.Formula)
}

// And represents conjunction.
type And struct {
	Left, Right Term
}

func (a And) String() string {
	return fmt.Sprintf("(%s ∧ %s)", a.Left, a.Right)
}

// Or represents disjunction.
type Or struct {
	Left, Right Term
}

func (o Or) String() string {
	return fmt.Sprintf("(%s ∨ %s)", o.Left, o.Right)
}

// Implies represents implication.
type Implies struct {
	Left, Right Term
}

func (i Implies) String() string {
	return fmt.Sprintf("(%s → %s)", i.Left, i.Right)
}

// Iff represents logical equivalence.
type Iff struct {
	Left, Right Term
}

func (i Iff) String() string {
	return fmt.Sprintf("(%s ↔ %s)", i.Left, i.Right)
}

// Binding declares one bound variable of a quantifier.
type Binding struct {
	Name string
	Sort Sort
}

// Forall represents a universally quantified formula. Trigger carries
// the instantiation pattern: the solver specializes the quantifier only
// when a query contains a term matching every trigger entry. The
// trigger is a correctness-relevant performance contract, not a
// comment; every quantified fact that enters the persistent base must
// carry one.
type Forall struct {
	Bound   []Binding
	Trigger []Term
	Body    Term
}

func (f Forall) String() string {
	names := make([]string, len(f.Bound))
	for i, b := range f.Bound {
		names[i] = b.Name
	}
	trig := ""
	if len(f.Trigger) > 0 {
		parts := make([]string, len(f.Trigger))
		for i, t := range f.Trigger {
			parts[i] = t.String()
		}
		trig = fmt.Sprintf(" {%s}", strings.Join(parts, ", "))
	}
	return fmt.Sprintf("∀%s%s. %s", strings.Join(names, ","), trig, f.Body)
}

// Exists represents an existentially quantified formula.
type Exists struct {
	Bound []Binding
	Body  Term
}

func (e Exists) String() string {
	names := make([]string, len(e.Bound))
	for i, b := range e.Bound {
		names[i] = b.Name
	}
	return fmt.Sprintf("∃%s. %s", strings.Join(names, ","), e.Body)
}

// AndN folds a conjunction over the given formulas.
func AndN(terms ...Term) Term {
	if len(terms) == 0 {
		panic("smt: empty conjunction")
	}
	result := terms[0]
	for _, t := range terms[1:] {
		result = And{result, t}
	}
	return result
}

// Succ is shorthand for t+1, the successor step or hop.
func Succ(t Term) Term {
	return Add{t, Num(1)}
}
