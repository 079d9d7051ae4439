package candy

import (
	"fmt"
	"strings"
)

// GenerateGraphviz generates a Graphviz DOT representation of the
// lemma dependency graph: one node per plan stage, one edge per
// dependency, theorem highlighted.
func GenerateGraphviz(stages []Stage) string {
	var sb strings.Builder

	sb.WriteString("digraph ProofPlan {\n")
	sb.WriteString("  rankdir=LR;\n")
	sb.WriteString("  node [shape=box];\n")
	sb.WriteString("\n")

	for _, stage := range stages {
		switch stage.Name {
		case StageModel:
			sb.WriteString(fmt.Sprintf("  \"%s\" [shape=ellipse];\n", stage.Name))
		case TheoremConvergence:
			sb.WriteString(fmt.Sprintf("  \"%s\" [peripheries=2];\n", stage.Name))
		default:
			sb.WriteString(fmt.Sprintf("  \"%s\";\n", stage.Name))
		}
	}
	sb.WriteString("\n")

	for _, stage := range stages {
		for _, dep := range stage.Deps {
			sb.WriteString(fmt.Sprintf("  \"%s\" -> \"%s\";\n", dep, stage.Name))
		}
	}

	sb.WriteString("}\n")
	return sb.String()
}
