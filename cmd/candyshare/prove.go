package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/rfielding/candyshare/candy"
	"github.com/rfielding/candyshare/smt"
)

var proveDryRun bool

var proveCmd = &cobra.Command{
	Use:   "prove",
	Short: "Run the full proof plan against the configured solver",
	RunE:  runProve,
}

func init() {
	proveCmd.Flags().BoolVar(&proveDryRun, "dry-run", false,
		"record the queries without a solver, assuming every verdict is unsat")
	rootCmd.AddCommand(proveCmd)
}

func runProve(cmd *cobra.Command, args []string) error {
	solver, cleanup, err := buildSolver()
	if err != nil {
		return err
	}
	defer cleanup()

	sess := smt.NewSession(solver, logger)
	prover := candy.NewProver(candy.NewModel(), sess, logger)
	report, runErr := prover.Run()

	printReport(report)
	if runErr != nil {
		return runErr
	}
	return nil
}

func buildSolver() (smt.Solver, func(), error) {
	if proveDryRun {
		logger.Warn("dry run: verdicts are assumed, nothing is proved")
		rec := &smt.RecordingSolver{}
		return rec, func() {}, nil
	}
	cfg := smt.ProcConfig{
		Command:   config.Solver.Command,
		Args:      config.Solver.Args,
		Logic:     config.Solver.Logic,
		TimeoutMS: config.Solver.TimeoutMS,
		Logger:    logger,
	}
	var transcript *os.File
	if config.Solver.Transcript != "" {
		f, err := os.Create(config.Solver.Transcript)
		if err != nil {
			return nil, nil, fmt.Errorf("open transcript: %w", err)
		}
		transcript = f
		cfg.Transcript = f
	}
	solver, err := smt.StartProc(cfg)
	if err != nil {
		if transcript != nil {
			transcript.Close()
		}
		return nil, nil, err
	}
	cleanup := func() {
		if err := solver.Close(); err != nil {
			logger.Warn("solver shutdown", "error", err)
		}
		if transcript != nil {
			transcript.Close()
		}
	}
	return solver, cleanup, nil
}

func printReport(report *candy.Report) {
	styled := isatty.IsTerminal(os.Stdout.Fd())
	verdict := "PROOF ACCEPTED"
	style := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	if !report.Proved {
		verdict = "PROOF FAILED"
		style = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
		if st := report.FailedStage(); st != nil {
			verdict = fmt.Sprintf("PROOF FAILED at %s", st.Name)
		}
	}
	if styled {
		fmt.Println(style.Render(verdict))
	} else {
		fmt.Println(verdict)
	}
	fmt.Println()
	fmt.Print(report.String())
}
