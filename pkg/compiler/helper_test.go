package compiler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"tortuga/pkg/deptree"
)

// tok is a compact token spec: "text/POS".
func toks(t *testing.T, specs ...string) []deptree.Token {
	t.Helper()
	tokens := make([]deptree.Token, len(specs))
	for i, s := range specs {
		parts := strings.SplitN(s, "/", 2)
		require.Len(t, parts, 2, "bad token spec %q", s)
		tokens[i] = deptree.Token{Text: parts[0], Index: i + 1, POS: parts[1]}
	}
	return tokens
}

func edge(gov, dep int, label string) deptree.Edge {
	return deptree.Edge{Governor: gov, Dependent: dep, Label: label}
}

func tree(t *testing.T, tokens []deptree.Token, edges ...deptree.Edge) *deptree.Word {
	t.Helper()
	root, err := deptree.Build(tokens, edges)
	require.NoError(t, err)
	return root
}

// moveTree builds "move Tom forward 10 pixels".
func moveTree(t *testing.T) *deptree.Word {
	return tree(t,
		toks(t, "move/VB", "Tom/NNP", "forward/RB", "10/CD", "pixels/NNS"),
		edge(0, 1, "root"),
		edge(1, 2, "dobj"),
		edge(1, 3, "advmod"),
		edge(1, 5, "nmod"),
		edge(5, 4, "nummod"),
	)
}

// turnTree builds "turn Tom left 90 degrees".
func turnTree(t *testing.T) *deptree.Word {
	return tree(t,
		toks(t, "turn/VB", "Tom/NNP", "left/RB", "90/CD", "degrees/NNS"),
		edge(0, 1, "root"),
		edge(1, 2, "dobj"),
		edge(1, 3, "advmod"),
		edge(1, 5, "nmod"),
		edge(5, 4, "nummod"),
	)
}

// codesOf asserts err is a *CEList and returns its distinct codes.
func codesOf(t *testing.T, err error) []string {
	t.Helper()
	require.Error(t, err)
	cel, ok := err.(*CEList)
	require.True(t, ok, "expected *CEList, got %T: %v", err, err)
	return cel.Codes()
}
