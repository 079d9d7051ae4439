package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rfielding/candyshare/candy"
)

var scriptOut string

var scriptCmd = &cobra.Command{
	Use:   "script",
	Short: "Export the whole proof as one SMT-LIB 2 script",
	Long: `Replay the proof plan against a recording solver and emit the result
as a single SMT-LIB 2 script. Running the script through a solver
binary reproduces the proof offline: it holds exactly when every
check-sat answers unsat.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		script, err := candy.GenerateScript(config.Solver.Logic, logger)
		if err != nil {
			return err
		}
		if scriptOut == "" || scriptOut == "-" {
			fmt.Print(script)
			return nil
		}
		if err := os.WriteFile(scriptOut, []byte(script), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", scriptOut, err)
		}
		logger.Info("script written", "path", scriptOut)
		return nil
	},
}

func init() {
	scriptCmd.Flags().StringVarP(&scriptOut, "out", "o", "-", "output path, - for stdout")
	rootCmd.AddCommand(scriptCmd)
}
