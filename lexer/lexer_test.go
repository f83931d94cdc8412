/*
 * Public Domain Software
 *
 * I (Matthias Ladkau) am the author of the source code in this file.
 * I have placed the source code in this file in the public domain.
 *
 * For further information see: http://creativecommons.org/publicdomain/zero/1.0/
 */

package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(toks []Token) []TokenID {
	out := make([]TokenID, len(toks))
	for i, t := range toks {
		out[i] = t.ID
	}
	return out
}

func TestLexSimplePath(t *testing.T) {
	toks, err := Lex("/a/b/c")
	require.NoError(t, err)
	require.Equal(t, []TokenID{
		TokenSlash, TokenQName, TokenSlash, TokenQName, TokenSlash, TokenQName, TokenEOF,
	}, ids(toks))
}

func TestLexStarAsWildcardAfterSlash(t *testing.T) {
	toks, err := Lex("/*")
	require.NoError(t, err)
	require.Equal(t, []TokenID{TokenSlash, TokenStar, TokenEOF}, ids(toks))
}

func TestLexStarAsMultiplyAfterOperand(t *testing.T) {
	toks, err := Lex("a*2")
	require.NoError(t, err)
	require.Equal(t, []TokenID{TokenQName, TokenMultiply, TokenNumber, TokenEOF}, ids(toks))
}

func TestLexDivAndModAsOperatorsAfterOperand(t *testing.T) {
	toks, err := Lex("a div b mod 2")
	require.NoError(t, err)
	require.Equal(t, []TokenID{
		TokenQName, TokenDiv, TokenQName, TokenMod, TokenNumber, TokenEOF,
	}, ids(toks))
}

func TestLexDivAsNCNameAtOperandStart(t *testing.T) {
	// "div" cannot be an operator here: nothing precedes it that can
	// end an operand, so it must be an element name test.
	toks, err := Lex("div")
	require.NoError(t, err)
	require.Equal(t, []TokenID{TokenQName, TokenEOF}, ids(toks))
	assert.Equal(t, "div", toks[0].Val)
}

func TestLexAxisAndNodeType(t *testing.T) {
	toks, err := Lex("child::node()")
	require.NoError(t, err)
	require.Equal(t, []TokenID{
		TokenAxisName, TokenNodeType, TokenLParen, TokenRParen, TokenEOF,
	}, ids(toks))
	assert.Equal(t, "child", toks[0].Val)
}

func TestLexFunctionVsQName(t *testing.T) {
	toks, err := Lex("foo:bar(1)")
	require.NoError(t, err)
	require.Equal(t, []TokenID{
		TokenFunctionName, TokenLParen, TokenNumber, TokenRParen, TokenEOF,
	}, ids(toks))
	assert.Equal(t, "foo:bar", toks[0].Val)
}

func TestLexPrefixWildcard(t *testing.T) {
	toks, err := Lex("foo:*")
	require.NoError(t, err)
	require.Equal(t, []TokenID{TokenPrefixStar, TokenEOF}, ids(toks))
	assert.Equal(t, "foo:*", toks[0].Val)
}

func TestLexNumbers(t *testing.T) {
	toks, err := Lex("1 1.5 .5")
	require.NoError(t, err)
	require.Len(t, toks, 4)
	assert.Equal(t, "1", toks[0].Val)
	assert.Equal(t, "1.5", toks[1].Val)
	assert.Equal(t, ".5", toks[2].Val)
}

func TestLexStringLiteralBothQuotes(t *testing.T) {
	toks, err := Lex(`'single' "double"`)
	require.NoError(t, err)
	require.Len(t, toks, 3)
	assert.Equal(t, "single", toks[0].Val)
	assert.Equal(t, "double", toks[1].Val)
}

func TestLexUnterminatedStringIsError(t *testing.T) {
	_, err := Lex(`'unterminated`)
	assert.Error(t, err)
}

func TestLexDotAndDotDot(t *testing.T) {
	toks, err := Lex("../.")
	require.NoError(t, err)
	require.Equal(t, []TokenID{TokenDotDot, TokenSlash, TokenDot, TokenEOF}, ids(toks))
}

func TestLexDoubleSlashAndColonColon(t *testing.T) {
	toks, err := Lex("//a::b")
	require.NoError(t, err)
	assert.Equal(t, TokenDoubleSlash, toks[0].ID)
	assert.Equal(t, TokenAxisName, toks[1].ID)
}

func TestLexComparisonOperators(t *testing.T) {
	toks, err := Lex("a<=b>=c!=d=e<f>g")
	require.NoError(t, err)
	require.Equal(t, []TokenID{
		TokenQName, TokenLessEq, TokenQName, TokenGreaterEq, TokenQName,
		TokenNotEquals, TokenQName, TokenEquals, TokenQName, TokenLess,
		TokenQName, TokenGreater, TokenQName, TokenEOF,
	}, ids(toks))
}

func TestLexUnexpectedCharacter(t *testing.T) {
	_, err := Lex("a&b")
	assert.Error(t, err)
}

func TestTokenStringForErrorMessages(t *testing.T) {
	tok := Token{ID: TokenEOF}
	assert.Equal(t, "end of expression", tok.String())

	tok = Token{ID: TokenLiteral, Val: "x"}
	assert.Equal(t, `"x"`, tok.String())

	tok = Token{ID: TokenQName, Val: "foo"}
	assert.Equal(t, "foo", tok.String())
}
