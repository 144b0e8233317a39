package lex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func types(toks []Token) []Type {
	ts := make([]Type, len(toks))
	for i, t := range toks {
		ts[i] = t.Type
	}
	return ts
}

func TestTokenizeArithmetic(t *testing.T) {
	toks, err := Tokenize("1 + 2*3")
	require.NoError(t, err)
	assert.Equal(t, []Type{Number, Plus, Number, Star, Number, EOF}, types(toks))
}

func TestTokenizeIdentifierWithApostropheAndUnderscore(t *testing.T) {
	toks, err := Tokenize("f_1 + x'")
	require.NoError(t, err)
	require.Len(t, toks, 4)
	assert.Equal(t, "f_1", toks[0].Text)
	assert.Equal(t, "x'", toks[2].Text)
}

func TestTokenizeRejectsLeadingApostrophe(t *testing.T) {
	_, err := Tokenize("'x")
	require.Error(t, err)
}

func TestTokenizeRejectsLeadingDot(t *testing.T) {
	_, err := Tokenize(".5")
	require.Error(t, err)
}

func TestTokenizeDecimalNumber(t *testing.T) {
	toks, err := Tokenize("3.25")
	require.NoError(t, err)
	require.Equal(t, Number, toks[0].Type)
	assert.Equal(t, "3.25", toks[0].Text)
}

func TestTokenizeNewlineIsSignificant(t *testing.T) {
	toks, err := Tokenize("1\n2")
	require.NoError(t, err)
	assert.Equal(t, []Type{Number, Newline, Number, EOF}, types(toks))
}

func TestTokenizeComment(t *testing.T) {
	toks, err := Tokenize("1 **this is a comment** + 2")
	require.NoError(t, err)
	assert.Equal(t, []Type{Number, Plus, Number, EOF}, types(toks))
}

func TestTokenizeCommentRequiresMatchingAsteriskCount(t *testing.T) {
	toks, err := Tokenize("1 ***abc*** + 2")
	require.NoError(t, err)
	assert.Equal(t, []Type{Number, Plus, Number, EOF}, types(toks))
}

func TestTokenizeUnterminatedCommentErrors(t *testing.T) {
	_, err := Tokenize("1 **unterminated")
	require.Error(t, err)
}

func TestTokenizeCallSyntax(t *testing.T) {
	toks, err := Tokenize("f(x, y)")
	require.NoError(t, err)
	assert.Equal(t, []Type{Identifier, LeftParen, Identifier, Comma, Identifier, RightParen, EOF}, types(toks))
}

func TestTokenizeUnexpectedCharacter(t *testing.T) {
	_, err := Tokenize("1 @ 2")
	require.Error(t, err)
}
