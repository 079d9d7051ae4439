package smt

import (
	"fmt"
	"strings"
)

// EncodeTerm renders a term as an SMT-LIB 2 s-expression.
func EncodeTerm(t Term) string {
	var sb strings.Builder
	encode(&sb, t)
	return sb.String()
}

func encode(sb *strings.Builder, t Term) {
	switch f := t.(type) {
	case IntLit:
		if f.Value < 0 {
			fmt.Fprintf(sb, "(- %d)", -f.Value)
		} else {
			fmt.Fprintf(sb, "%d", f.Value)
		}
	case Sym:
		sb.WriteString(f.Name)
	case Apply:
		encodeOp(sb, f.Fn.Name, f.Args...)
	case Add:
		encodeOp(sb, "+", f.Left, f.Right)
	case Sub:
		encodeOp(sb, "-", f.Left, f.Right)
	case Div:
		encodeOp(sb, "div", f.Left, f.Right)
	case Mod:
		encodeOp(sb, "mod", f.Left, f.Right)
	case Eq:
		encodeOp(sb, "=", f.Left, f.Right)
	case Le:
		encodeOp(sb, "<=", f.Left, f.Right)
	case Lt:
		encodeOp(sb, "<", f.Left, f.Right)
	case Ge:
		encodeOp(sb, ">=", f.Left, f.Right)
	case Gt:
		encodeOp(sb, ">", f.Left, f.Right)
	case Not:
		encodeOp(sb, "not", f.Formula)
	case And:
		encodeOp(sb, "and", f.Left, f.Right)
	case Or:
		encodeOp(sb, "or", f.Left, f.Right)
	case Implies:
		encodeOp(sb, "=>", f.Left, f.Right)
	case Iff:
		// SMT-LIB spells Bool equivalence as equality.
		encodeOp(sb, "=", f.Left, f.Right)
	case Forall:
		encodeQuantifier(sb, "forall", f.Bound, f.Trigger, f.Body)
	case Exists:
		encodeQuantifier(sb, "exists", f.Bound, nil, f.Body)
	default:
		panic(fmt.Sprintf("smt: cannot encode %T", t))
	}
}

func encodeOp(sb *strings.Builder, op string, args ...Term) {
	sb.WriteString("(")
	sb.WriteString(op)
	for _, arg := range args {
		sb.WriteString(" ")
		encode(sb, arg)
	}
	sb.WriteString(")")
}

func encodeQuantifier(sb *strings.Builder, kind string, bound []Binding, trigger []Term, body Term) {
	sb.WriteString("(")
	sb.WriteString(kind)
	sb.WriteString(" (")
	for i, b := range bound {
		if i > 0 {
			sb.WriteString(" ")
		}
		fmt.Fprintf(sb, "(%s %s)", b.Name, b.Sort)
	}
	sb.WriteString(") ")
	if len(trigger) > 0 {
		sb.WriteString("(! ")
		encode(sb, body)
		sb.WriteString(" :pattern (")
		for i, t := range trigger {
			if i > 0 {
				sb.WriteString(" ")
			}
			encode(sb, t)
		}
		sb.WriteString("))")
	} else {
		encode(sb, body)
	}
	sb.WriteString(")")
}

// Script accumulates SMT-LIB 2 commands in order. It backs the process
// solver's transcript and the standalone proof-script export.
type Script struct {
	lines []string
}

// SetLogic emits a set-logic command.
func (s *Script) SetLogic(logic string) {
	s.lines = append(s.lines, fmt.Sprintf("(set-logic %s)", logic))
}

// Comment emits a comment line.
func (s *Script) Comment(text string) {
	s.lines = append(s.lines, "; "+text)
}

// DeclareConst emits a constant declaration.
func (s *Script) DeclareConst(name string, sort Sort) {
	s.lines = append(s.lines, fmt.Sprintf("(declare-const %s %s)", name, sort))
}

// DeclareFun emits a function declaration.
func (s *Script) DeclareFun(f FuncDecl) {
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = string(p)
	}
	s.lines = append(s.lines, fmt.Sprintf("(declare-fun %s (%s) %s)",
		f.Name, strings.Join(params, " "), f.Result))
}

// Assert emits an assertion.
func (s *Script) Assert(t Term) {
	s.lines = append(s.lines, fmt.Sprintf("(assert %s)", EncodeTerm(t)))
}

// Push emits a push command.
func (s *Script) Push() {
	s.lines = append(s.lines, "(push 1)")
}

// Pop emits a pop command.
func (s *Script) Pop() {
	s.lines = append(s.lines, "(pop 1)")
}

// CheckSat emits a check-sat command.
func (s *Script) CheckSat() {
	s.lines = append(s.lines, "(check-sat)")
}

// Len returns the number of commands emitted so far.
func (s *Script) Len() int {
	return len(s.lines)
}

// String returns the script as newline-separated commands.
func (s *Script) String() string {
	return strings.Join(s.lines, "\n") + "\n"
}
