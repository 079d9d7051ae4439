package smt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTimeoutOptionPerSolver(t *testing.T) {
	require.Equal(t, ":timeout", timeoutOption("z3"))
	require.Equal(t, ":timeout", timeoutOption("/opt/z3/bin/z3"))
	require.Equal(t, ":tlimit-per", timeoutOption("cvc5"))
	require.Equal(t, ":tlimit-per", timeoutOption("/usr/local/bin/cvc5"))
	require.Equal(t, ":tlimit-per", timeoutOption("cvc5-1.2.0"))
}
