package smt

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strings"
)

// ProcConfig configures a solver subprocess.
type ProcConfig struct {
	// Command is the solver binary, e.g. "z3".
	Command string
	// Args are passed to the binary. For z3 this should include
	// "-in" so it reads SMT-LIB from stdin.
	Args []string
	// Logic, when non-empty, is emitted as (set-logic ...) on start.
	Logic string
	// TimeoutMS, when positive, is handed to the solver as a
	// per-query soft timeout; an expired query comes back unknown,
	// which the harness treats as fatal rather than retrying. The
	// option name is chosen per binary: cvc5 spells it :tlimit-per,
	// z3 and compatible solvers :timeout.
	TimeoutMS int
	// Transcript, when non-nil, receives a copy of every command
	// sent to the solver.
	Transcript io.Writer
	// Logger receives query-level debug logging.
	Logger *slog.Logger
}

// ProcSolver drives an external SMT solver process over SMT-LIB 2 text
// on stdin/stdout. Only the sat/unsat/unknown verdict is ever read
// back; models and proofs stay with the collaborator.
type ProcSolver struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	out    *bufio.Scanner
	tee    io.Writer
	logger *slog.Logger
}

// StartProc launches the solver subprocess and performs initial setup.
func StartProc(cfg ProcConfig) (*ProcSolver, error) {
	if cfg.Command == "" {
		cfg.Command = "z3"
		cfg.Args = []string{"-in"}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	cmd := exec.Command(cfg.Command, cfg.Args...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("smt: stdin pipe: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("smt: stdout pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("smt: start %s: %w", cfg.Command, err)
	}
	p := &ProcSolver{
		cmd:    cmd,
		stdin:  stdin,
		out:    bufio.NewScanner(stdout),
		tee:    cfg.Transcript,
		logger: cfg.Logger,
	}
	if cfg.Logic != "" {
		if err := p.send(fmt.Sprintf("(set-logic %s)", cfg.Logic)); err != nil {
			return nil, err
		}
	}
	if cfg.TimeoutMS > 0 {
		if err := p.send(fmt.Sprintf("(set-option %s %d)", timeoutOption(cfg.Command), cfg.TimeoutMS)); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// timeoutOption returns the per-query timeout option understood by the
// given solver binary.
func timeoutOption(command string) string {
	if strings.Contains(filepath.Base(command), "cvc5") {
		return ":tlimit-per"
	}
	return ":timeout"
}

func (p *ProcSolver) send(line string) error {
	if p.tee != nil {
		fmt.Fprintln(p.tee, line)
	}
	if _, err := io.WriteString(p.stdin, line+"\n"); err != nil {
		return fmt.Errorf("smt: write to solver: %w", err)
	}
	return nil
}

func (p *ProcSolver) Push() error {
	return p.send("(push 1)")
}

func (p *ProcSolver) Pop() error {
	return p.send("(pop 1)")
}

func (p *ProcSolver) DeclareConst(name string, sort Sort) error {
	return p.send(fmt.Sprintf("(declare-const %s %s)", name, sort))
}

func (p *ProcSolver) DeclareFun(f FuncDecl) error {
	params := make([]string, len(f.Params))
	for i, s := range f.Params {
		params[i] = string(s)
	}
	return p.send(fmt.Sprintf("(declare-fun %s (%s) %s)",
		f.Name, strings.Join(params, " "), f.Result))
}

func (p *ProcSolver) Assert(t Term) error {
	return p.send(fmt.Sprintf("(assert %s)", EncodeTerm(t)))
}

// Check sends check-sat and blocks until the solver answers. There is
// no cancellation: the harness waits for a definite verdict.
func (p *ProcSolver) Check() (Verdict, error) {
	if err := p.send("(check-sat)"); err != nil {
		return Unknown, err
	}
	for p.out.Scan() {
		line := strings.TrimSpace(p.out.Text())
		switch line {
		case "":
			continue
		case "unsat":
			return Unsat, nil
		case "sat":
			return Sat, nil
		case "unknown":
			return Unknown, nil
		default:
			if strings.HasPrefix(line, "(error") {
				return Unknown, fmt.Errorf("smt: solver error: %s", line)
			}
			p.logger.Warn("unexpected solver output", "line", line)
		}
	}
	if err := p.out.Err(); err != nil {
		return Unknown, fmt.Errorf("smt: read from solver: %w", err)
	}
	return Unknown, fmt.Errorf("smt: solver closed its output stream")
}

// Close shuts the solver down and reaps the process.
func (p *ProcSolver) Close() error {
	_ = p.send("(exit)")
	if err := p.stdin.Close(); err != nil {
		_ = p.cmd.Process.Kill()
		_ = p.cmd.Wait()
		return fmt.Errorf("smt: close solver stdin: %w", err)
	}
	if err := p.cmd.Wait(); err != nil {
		return fmt.Errorf("smt: solver exit: %w", err)
	}
	return nil
}
