/*
 * Public Domain Software
 *
 * I (Matthias Ladkau) am the author of the source code in this file.
 * I have placed the source code in this file in the public domain.
 *
 * For further information see: http://creativecommons.org/publicdomain/zero/1.0/
 */

package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krotik/xpath/ast"
)

func TestParseSimpleChildPath(t *testing.T) {
	tree, err := Parse("/a/b/c")
	require.NoError(t, err)

	p, ok := tree.(*ast.PathExpr)
	require.True(t, ok)
	require.NotNil(t, p.LocationPath)
	assert.True(t, p.LocationPath.Absolute)
	require.Len(t, p.LocationPath.Steps, 3)
	for _, s := range p.LocationPath.Steps {
		assert.Equal(t, ast.AxisChild, s.Axis)
		assert.Equal(t, ast.NodeTestQName, s.Test.Kind)
	}
	assert.Equal(t, "a", p.LocationPath.Steps[0].Test.Local)
	assert.Equal(t, "c", p.LocationPath.Steps[2].Test.Local)
}

func TestParseDescendantOrSelfShorthand(t *testing.T) {
	tree, err := Parse("//a")
	require.NoError(t, err)

	p := tree.(*ast.PathExpr)
	require.Len(t, p.LocationPath.Steps, 2)
	assert.Equal(t, ast.AxisDescendantOrSelf, p.LocationPath.Steps[0].Axis)
	assert.Equal(t, ast.NodeTestNode, p.LocationPath.Steps[0].Test.Kind)
	assert.Equal(t, ast.AxisChild, p.LocationPath.Steps[1].Axis)
}

func TestParseAxisAttributeAndAbbreviations(t *testing.T) {
	tree, err := Parse("./@id/../parent::node()")
	require.NoError(t, err)

	p := tree.(*ast.PathExpr)
	require.Len(t, p.LocationPath.Steps, 3)
	assert.Equal(t, ast.AxisSelf, p.LocationPath.Steps[0].Axis)
	assert.Equal(t, ast.AxisAttribute, p.LocationPath.Steps[1].Axis)
	assert.Equal(t, "id", p.LocationPath.Steps[1].Test.Local)
	assert.Equal(t, ast.AxisParent, p.LocationPath.Steps[2].Axis)
}

func TestParsePredicate(t *testing.T) {
	tree, err := Parse("a[1][@id='x']")
	require.NoError(t, err)

	p := tree.(*ast.PathExpr)
	step := p.LocationPath.Steps[0]
	require.Len(t, step.Predicates, 2)
	_, isNum := step.Predicates[0].(*ast.NumberLiteral)
	assert.True(t, isNum)
}

func TestParseOperatorPrecedence(t *testing.T) {
	// 1 + 2 * 3 must bind as 1 + (2 * 3)
	tree, err := Parse("1 + 2 * 3")
	require.NoError(t, err)

	add, ok := tree.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.OpAdd, add.Op)
	_, leftIsNumber := add.Left.(*ast.NumberLiteral)
	assert.True(t, leftIsNumber)

	mul, ok := add.Right.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.OpMul, mul.Op)
}

func TestParseOrAndPrecedence(t *testing.T) {
	// a and b or c and d == (a and b) or (c and d)
	tree, err := Parse("a and b or c and d")
	require.NoError(t, err)

	or, ok := tree.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.OpOr, or.Op)

	left, ok := or.Left.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.OpAnd, left.Op)
}

func TestParseUnionOfPaths(t *testing.T) {
	tree, err := Parse("a | b")
	require.NoError(t, err)
	u, ok := tree.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.OpUnion, u.Op)
}

func TestParseFunctionCallWithArgs(t *testing.T) {
	tree, err := Parse("concat('a', 'b', $x)")
	require.NoError(t, err)
	fn, ok := tree.(*ast.FunctionCall)
	require.True(t, ok)
	assert.Equal(t, "concat", fn.Name)
	require.Len(t, fn.Args, 3)
	_, isVar := fn.Args[2].(*ast.VariableRef)
	assert.True(t, isVar)
}

func TestParseFilterExprWithPredicateThenPath(t *testing.T) {
	tree, err := Parse("$nodes[1]/child")
	require.NoError(t, err)
	p, ok := tree.(*ast.PathExpr)
	require.True(t, ok)
	require.NotNil(t, p.Filter)
	require.Len(t, p.FilterPredicates, 1)
	require.NotNil(t, p.LocationPath)
	require.Len(t, p.LocationPath.Steps, 1)
}

func TestParseUnaryMinus(t *testing.T) {
	tree, err := Parse("- -1")
	require.NoError(t, err)
	outer, ok := tree.(*ast.UnaryMinusExpr)
	require.True(t, ok)
	_, ok = outer.Operand.(*ast.UnaryMinusExpr)
	assert.True(t, ok)
}

func TestParseNodeTypeAsStepTest(t *testing.T) {
	tree, err := Parse("child::processing-instruction('xml-stylesheet')")
	require.NoError(t, err)
	p := tree.(*ast.PathExpr)
	test := p.LocationPath.Steps[0].Test
	assert.Equal(t, ast.NodeTestProcessingInstruction, test.Kind)
	assert.True(t, test.HasPI)
	assert.Equal(t, "xml-stylesheet", test.PIArg)
}

func TestParseTrailingGarbageIsError(t *testing.T) {
	_, err := Parse("a b")
	require.Error(t, err)
	perr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, 51, perr.Code())
}

func TestParseUnterminatedParenIsError(t *testing.T) {
	_, err := Parse("(1 + 2")
	require.Error(t, err)
}

func TestParseUnknownAxisNameIsError(t *testing.T) {
	_, err := Parse("bogus-axis::node()")
	assert.Error(t, err)
}
