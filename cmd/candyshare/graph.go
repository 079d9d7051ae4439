package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rfielding/candyshare/candy"
	"github.com/rfielding/candyshare/smt"
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Print the lemma dependency graph as Graphviz DOT",
	RunE: func(cmd *cobra.Command, args []string) error {
		// A throwaway prover: the plan is static, nothing runs.
		sess := smt.NewSession(&smt.ReplaySolver{}, logger)
		prover := candy.NewProver(candy.NewModel(), sess, logger)
		fmt.Print(candy.GenerateGraphviz(prover.Plan()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
