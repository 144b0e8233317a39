package parse

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSimpleEvaluate(t *testing.T) {
	prog, err := Parse("1 + 1")
	require.NoError(t, err)
	require.Len(t, prog.Statements, 1)
	stmt := prog.Statements[0]
	assert.True(t, stmt.IsEvaluate())
	bin, ok := stmt.RHS.(*BinOp)
	require.True(t, ok)
	assert.Equal(t, byte('+'), bin.Op)
}

func TestParseAssignment(t *testing.T) {
	prog, err := Parse("x = 5")
	require.NoError(t, err)
	stmt := prog.Statements[0]
	require.False(t, stmt.IsEvaluate())
	require.Len(t, stmt.Targets, 1)
	ident, ok := stmt.Targets[0].(*Ident)
	require.True(t, ok)
	assert.Equal(t, "x", ident.Name)
}

func TestParseChainedAssignment(t *testing.T) {
	prog, err := Parse("a = b = 3")
	require.NoError(t, err)
	stmt := prog.Statements[0]
	require.Len(t, stmt.Targets, 2)
}

func TestParseFunctionDefinition(t *testing.T) {
	prog, err := Parse("f(x) = x + 1")
	require.NoError(t, err)
	stmt := prog.Statements[0]
	require.Len(t, stmt.Targets, 1)
	call, ok := stmt.Targets[0].(*Call)
	require.True(t, ok)
	assert.Equal(t, "f", call.Name)
	require.Len(t, call.Args, 1)
}

func TestParseMultilineProgram(t *testing.T) {
	prog, err := Parse("x = f(y) = 3\nf(x) + 3*x")
	require.NoError(t, err)
	require.Len(t, prog.Statements, 2)
	assert.True(t, prog.Statements[1].IsEvaluate())
}

func TestParseContinuationAfterEqualsAcrossNewline(t *testing.T) {
	prog, err := Parse("x =\n5 + 1")
	require.NoError(t, err)
	stmt := prog.Statements[0]
	require.Len(t, stmt.Targets, 1)
	_, ok := stmt.RHS.(*BinOp)
	assert.True(t, ok)
}

func TestParseNewlineInsideBracketsIsWhitespace(t *testing.T) {
	prog, err := Parse("f(\n1,\n2\n)")
	require.NoError(t, err)
	require.Len(t, prog.Statements, 1)
	call, ok := prog.Statements[0].RHS.(*Call)
	require.True(t, ok)
	assert.Len(t, call.Args, 2)
}

func TestParseTrailingCommaInArgs(t *testing.T) {
	prog, err := Parse("f(1, 2,)")
	require.NoError(t, err)
	call, ok := prog.Statements[0].RHS.(*Call)
	require.True(t, ok)
	assert.Len(t, call.Args, 2)
}

func TestParseRightAssociativePower(t *testing.T) {
	prog, err := Parse("2^2^3")
	require.NoError(t, err)
	top, ok := prog.Statements[0].RHS.(*BinOp)
	require.True(t, ok)
	assert.Equal(t, byte('^'), top.Op)
	lit, ok := top.L.(*NumberLit)
	require.True(t, ok)
	assert.Equal(t, 0, lit.Value.Cmp(big.NewRat(2, 1)))
	right, ok := top.R.(*BinOp)
	require.True(t, ok)
	assert.Equal(t, byte('^'), right.Op)
}

func TestParseUnaryMinusChainCancelsParity(t *testing.T) {
	// Two unary minuses cancel out, the same way -(-5) = 5 would.
	prog, err := Parse("--5")
	require.NoError(t, err)
	_, ok := prog.Statements[0].RHS.(*NumberLit)
	assert.True(t, ok, "an even number of unary minuses should fold away rather than nest")
}

func TestParseSingleUnaryMinus(t *testing.T) {
	prog, err := Parse("-5")
	require.NoError(t, err)
	neg, ok := prog.Statements[0].RHS.(*Neg)
	require.True(t, ok)
	_, ok = neg.X.(*NumberLit)
	assert.True(t, ok)
}

func TestParseDecimalLiteral(t *testing.T) {
	prog, err := Parse("3.25")
	require.NoError(t, err)
	lit, ok := prog.Statements[0].RHS.(*NumberLit)
	require.True(t, ok)
	assert.Equal(t, 0, lit.Value.Cmp(big.NewRat(13, 4)))
}

func TestParseMismatchedBracketsError(t *testing.T) {
	_, err := Parse("(1 + 2]")
	require.Error(t, err)
}

func TestParseTrailingGarbageError(t *testing.T) {
	_, err := Parse("1 + 1 )")
	require.Error(t, err)
}

func TestParseNewlineTerminatesOutsideBrackets(t *testing.T) {
	prog, err := Parse("1 + 1\n2")
	require.NoError(t, err)
	require.Len(t, prog.Statements, 2)
}
