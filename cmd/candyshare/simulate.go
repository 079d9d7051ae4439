package main

import (
	"fmt"
	"math/rand"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rfielding/candyshare/candy"
)

var (
	simChildren int
	simMaxHalf  int
	simSeed     int64
	simMaxSteps int
)

var simulateCmd = &cobra.Command{
	Use:   "simulate [count ...]",
	Short: "Run the concrete dynamics and watch the proved quantities",
	Long: `Run the candy circle for real. With explicit counts the circle starts
there; otherwise a random circle of --children children is drawn. Each
step prints the counts and the lexicographic variant pair, which the
proof guarantees strictly decreases until convergence.`,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&simChildren, "children", 5, "children in a random circle")
	simulateCmd.Flags().IntVar(&simMaxHalf, "max-half", 10, "random counts are even values up to 2*max-half")
	simulateCmd.Flags().Int64Var(&simSeed, "seed", 1, "random seed")
	simulateCmd.Flags().IntVar(&simMaxSteps, "max-steps", 10000, "give up after this many steps")
	rootCmd.AddCommand(simulateCmd)
}

func runSimulate(cmd *cobra.Command, args []string) error {
	var circle *candy.Circle
	if len(args) > 0 {
		counts := make([]int, len(args))
		for i, arg := range args {
			v, err := strconv.Atoi(arg)
			if err != nil {
				return fmt.Errorf("count %q: %w", arg, err)
			}
			counts[i] = v
		}
		c, err := candy.NewCircle(counts...)
		if err != nil {
			return err
		}
		circle = c
	} else {
		c, err := candy.RandomCircle(simChildren, simMaxHalf, rand.New(rand.NewSource(simSeed)))
		if err != nil {
			return err
		}
		circle = c
	}

	for k := 0; k <= simMaxSteps; k++ {
		v1, v2 := circle.Variants()
		fmt.Printf("k=%d %s variants=(%d,%d)\n", k, circle, v1, v2)
		if circle.Converged() {
			fmt.Printf("converged at k=%d with everyone holding %d\n", k, circle.Min())
			return nil
		}
		circle.Step()
	}
	return fmt.Errorf("no convergence within %d steps", simMaxSteps)
}
