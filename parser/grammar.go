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
	"fmt"
	"strconv"

	"github.com/krotik/xpath/ast"
	"github.com/krotik/xpath/lexer"
)

/*
semanticAction builds the semantic value of a reduced production from
the (already popped, left-to-right) semantic values of its right-hand
side. Terminal symbols carry their raw lexer.Token as semantic value;
a shift pushes the token verbatim, a reduce replaces the popped slice
with whatever the action returns.
*/
type semanticAction func(rhs []interface{}) (interface{}, error)

/*
production is one grammar rule: a left-hand nonterminal, an ordered
right-hand side of symbols, and the action that folds a matching
parse-stack suffix into the nonterminal's semantic value.
*/
type production struct {
	lhs    symbol
	rhs    []symbol
	action semanticAction
}

/*
filterVal is FilterExpr's semantic value while predicates are still
being accumulated: the primary expression being filtered, plus every
predicate collected so far via left recursion.
*/
type filterVal struct {
	primary ast.Expr
	preds   []ast.Expr
}

func tok(v interface{}) lexer.Token { return v.(lexer.Token) }

func expr(v interface{}) ast.Expr { return v.(ast.Expr) }

func pass(rhs []interface{}) (interface{}, error) { return rhs[0], nil }

func nodeTypeKind(name string) ast.NodeTestKind {
	switch name {
	case "comment":
		return ast.NodeTestComment
	case "text":
		return ast.NodeTestText
	case "processing-instruction":
		return ast.NodeTestProcessingInstruction
	default:
		return ast.NodeTestNode
	}
}

func descendantOrSelfNodeStep() *ast.Step {
	return &ast.Step{Axis: ast.AxisDescendantOrSelf, Test: ast.NodeTest{Kind: ast.NodeTestNode}}
}

var axisByName = map[string]ast.Axis{
	"child":              ast.AxisChild,
	"descendant":         ast.AxisDescendant,
	"parent":             ast.AxisParent,
	"ancestor":           ast.AxisAncestor,
	"following-sibling":  ast.AxisFollowingSibling,
	"preceding-sibling":  ast.AxisPrecedingSibling,
	"following":          ast.AxisFollowing,
	"preceding":          ast.AxisPreceding,
	"attribute":          ast.AxisAttribute,
	"namespace":          ast.AxisNamespace,
	"self":               ast.AxisSelf,
	"descendant-or-self": ast.AxisDescendantOrSelf,
	"ancestor-or-self":   ast.AxisAncestorOrSelf,
}

func splitQName(s string) (prefix, local string) {
	for i := 0; i < len(s); i++ {
		if s[i] == ':' {
			return s[:i], s[i+1:]
		}
	}
	return "", s
}

func binary(op ast.BinaryOp) semanticAction {
	return func(rhs []interface{}) (interface{}, error) {
		return &ast.BinaryExpr{Op: op, Left: expr(rhs[0]), Right: expr(rhs[2])}, nil
	}
}

/*
grammar is the full BNF for an XPath 1.0 expression, rewritten from
the production's usual EBNF ('*' repetition) form into left-recursive
BNF productions - the standard shape for a shift/reduce table, since a
repeated alternative folds into "List -> List Item | Item" instead of
a parser-side loop. Production 0 is the augmented start production;
reducing it is the accept condition.

Terminal lookahead sets are disjoint at every choice point (location
path vs. filter expression, primary expression kinds, node test
kinds, axis forms), so the grammar needs only one token of lookahead -
no shift/reduce or reduce/reduce conflict exists anywhere in it, and
buildTables (lrtables.go) asserts that at package init.
*/
var grammar = []production{
	// 0: Start -> Expr (augmented; reducing this accepts)
	{ntStart, []symbol{ntExpr}, pass},

	// 1: Expr -> OrExpr
	{ntExpr, []symbol{ntOrExpr}, pass},

	// 2-3: OrExpr
	{ntOrExpr, []symbol{ntAndExpr}, pass},
	{ntOrExpr, []symbol{ntOrExpr, term(lexer.TokenOr), ntAndExpr}, binary(ast.OpOr)},

	// 4-5: AndExpr
	{ntAndExpr, []symbol{ntEqualityExpr}, pass},
	{ntAndExpr, []symbol{ntAndExpr, term(lexer.TokenAnd), ntEqualityExpr}, binary(ast.OpAnd)},

	// 6-8: EqualityExpr
	{ntEqualityExpr, []symbol{ntRelationalExpr}, pass},
	{ntEqualityExpr, []symbol{ntEqualityExpr, term(lexer.TokenEquals), ntRelationalExpr}, binary(ast.OpEq)},
	{ntEqualityExpr, []symbol{ntEqualityExpr, term(lexer.TokenNotEquals), ntRelationalExpr}, binary(ast.OpNeq)},

	// 9-13: RelationalExpr
	{ntRelationalExpr, []symbol{ntAdditiveExpr}, pass},
	{ntRelationalExpr, []symbol{ntRelationalExpr, term(lexer.TokenLess), ntAdditiveExpr}, binary(ast.OpLt)},
	{ntRelationalExpr, []symbol{ntRelationalExpr, term(lexer.TokenGreater), ntAdditiveExpr}, binary(ast.OpGt)},
	{ntRelationalExpr, []symbol{ntRelationalExpr, term(lexer.TokenLessEq), ntAdditiveExpr}, binary(ast.OpLe)},
	{ntRelationalExpr, []symbol{ntRelationalExpr, term(lexer.TokenGreaterEq), ntAdditiveExpr}, binary(ast.OpGe)},

	// 14-16: AdditiveExpr
	{ntAdditiveExpr, []symbol{ntMultiplicativeExpr}, pass},
	{ntAdditiveExpr, []symbol{ntAdditiveExpr, term(lexer.TokenPlus), ntMultiplicativeExpr}, binary(ast.OpAdd)},
	{ntAdditiveExpr, []symbol{ntAdditiveExpr, term(lexer.TokenMinus), ntMultiplicativeExpr}, binary(ast.OpSub)},

	// 17-20: MultiplicativeExpr
	{ntMultiplicativeExpr, []symbol{ntUnaryExpr}, pass},
	{ntMultiplicativeExpr, []symbol{ntMultiplicativeExpr, term(lexer.TokenMultiply), ntUnaryExpr}, binary(ast.OpMul)},
	{ntMultiplicativeExpr, []symbol{ntMultiplicativeExpr, term(lexer.TokenDiv), ntUnaryExpr}, binary(ast.OpDiv)},
	{ntMultiplicativeExpr, []symbol{ntMultiplicativeExpr, term(lexer.TokenMod), ntUnaryExpr}, binary(ast.OpMod)},

	// 21-22: UnaryExpr
	{ntUnaryExpr, []symbol{ntUnionExpr}, pass},
	{ntUnaryExpr, []symbol{term(lexer.TokenMinus), ntUnaryExpr}, func(rhs []interface{}) (interface{}, error) {
		return &ast.UnaryMinusExpr{Operand: expr(rhs[1])}, nil
	}},

	// 23-24: UnionExpr
	{ntUnionExpr, []symbol{ntPathExpr}, pass},
	{ntUnionExpr, []symbol{ntUnionExpr, term(lexer.TokenPipe), ntPathExpr}, binary(ast.OpUnion)},

	// 25: PathExpr -> LocationPath
	{ntPathExpr, []symbol{ntLocationPath}, func(rhs []interface{}) (interface{}, error) {
		return &ast.PathExpr{LocationPath: rhs[0].(*ast.LocationPath)}, nil
	}},
	// 26: PathExpr -> FilterExpr
	{ntPathExpr, []symbol{ntFilterExpr}, func(rhs []interface{}) (interface{}, error) {
		fv := rhs[0].(filterVal)
		if len(fv.preds) == 0 {
			return fv.primary, nil
		}
		return &ast.PathExpr{Filter: fv.primary, FilterPredicates: fv.preds}, nil
	}},
	// 27: PathExpr -> FilterExpr '/' RelativeLocationPath
	{ntPathExpr, []symbol{ntFilterExpr, term(lexer.TokenSlash), ntRelativeLocationPath}, func(rhs []interface{}) (interface{}, error) {
		fv := rhs[0].(filterVal)
		steps := rhs[2].([]*ast.Step)
		return &ast.PathExpr{
			Filter: fv.primary, FilterPredicates: fv.preds,
			LocationPath: &ast.LocationPath{Steps: steps},
		}, nil
	}},
	// 28: PathExpr -> FilterExpr '//' RelativeLocationPath
	{ntPathExpr, []symbol{ntFilterExpr, term(lexer.TokenDoubleSlash), ntRelativeLocationPath}, func(rhs []interface{}) (interface{}, error) {
		fv := rhs[0].(filterVal)
		steps := append([]*ast.Step{descendantOrSelfNodeStep()}, rhs[2].([]*ast.Step)...)
		return &ast.PathExpr{
			Filter: fv.primary, FilterPredicates: fv.preds,
			LocationPath: &ast.LocationPath{Steps: steps},
		}, nil
	}},

	// 29-30: FilterExpr
	{ntFilterExpr, []symbol{ntPrimaryExpr}, func(rhs []interface{}) (interface{}, error) {
		return filterVal{primary: expr(rhs[0])}, nil
	}},
	{ntFilterExpr, []symbol{ntFilterExpr, ntPredicate}, func(rhs []interface{}) (interface{}, error) {
		fv := rhs[0].(filterVal)
		fv.preds = append(fv.preds, expr(rhs[1]))
		return fv, nil
	}},

	// 31-35: PrimaryExpr
	{ntPrimaryExpr, []symbol{term(lexer.TokenDollar), term(lexer.TokenQName)}, func(rhs []interface{}) (interface{}, error) {
		return &ast.VariableRef{Name: tok(rhs[1]).Val}, nil
	}},
	{ntPrimaryExpr, []symbol{term(lexer.TokenLParen), ntExpr, term(lexer.TokenRParen)}, func(rhs []interface{}) (interface{}, error) {
		return rhs[1], nil
	}},
	{ntPrimaryExpr, []symbol{term(lexer.TokenLiteral)}, func(rhs []interface{}) (interface{}, error) {
		return &ast.StringLiteral{Value: tok(rhs[0]).Val}, nil
	}},
	{ntPrimaryExpr, []symbol{term(lexer.TokenNumber)}, func(rhs []interface{}) (interface{}, error) {
		t := tok(rhs[0])
		v, err := strconv.ParseFloat(t.Val, 64)
		if err != nil {
			return nil, &Error{Type: ErrInvalidNumber, Detail: t.Val, Pos: t.Pos}
		}
		return &ast.NumberLiteral{Value: v}, nil
	}},
	{ntPrimaryExpr, []symbol{ntFunctionCall}, pass},

	// 36-37: FunctionCall
	{ntFunctionCall, []symbol{term(lexer.TokenFunctionName), term(lexer.TokenLParen), term(lexer.TokenRParen)}, func(rhs []interface{}) (interface{}, error) {
		return &ast.FunctionCall{Name: tok(rhs[0]).Val}, nil
	}},
	{ntFunctionCall, []symbol{term(lexer.TokenFunctionName), term(lexer.TokenLParen), ntArgList, term(lexer.TokenRParen)}, func(rhs []interface{}) (interface{}, error) {
		return &ast.FunctionCall{Name: tok(rhs[0]).Val, Args: rhs[2].([]ast.Expr)}, nil
	}},

	// 38-39: ArgList
	{ntArgList, []symbol{ntExpr}, func(rhs []interface{}) (interface{}, error) {
		return []ast.Expr{expr(rhs[0])}, nil
	}},
	{ntArgList, []symbol{ntArgList, term(lexer.TokenComma), ntExpr}, func(rhs []interface{}) (interface{}, error) {
		return append(rhs[0].([]ast.Expr), expr(rhs[2])), nil
	}},

	// 40-41: LocationPath
	{ntLocationPath, []symbol{ntRelativeLocationPath}, func(rhs []interface{}) (interface{}, error) {
		return &ast.LocationPath{Steps: rhs[0].([]*ast.Step)}, nil
	}},
	{ntLocationPath, []symbol{ntAbsoluteLocationPath}, pass},

	// 42-44: AbsoluteLocationPath
	{ntAbsoluteLocationPath, []symbol{term(lexer.TokenSlash)}, func(rhs []interface{}) (interface{}, error) {
		return &ast.LocationPath{Absolute: true}, nil
	}},
	{ntAbsoluteLocationPath, []symbol{term(lexer.TokenSlash), ntRelativeLocationPath}, func(rhs []interface{}) (interface{}, error) {
		return &ast.LocationPath{Absolute: true, Steps: rhs[1].([]*ast.Step)}, nil
	}},
	{ntAbsoluteLocationPath, []symbol{term(lexer.TokenDoubleSlash), ntRelativeLocationPath}, func(rhs []interface{}) (interface{}, error) {
		steps := append([]*ast.Step{descendantOrSelfNodeStep()}, rhs[1].([]*ast.Step)...)
		return &ast.LocationPath{Absolute: true, Steps: steps}, nil
	}},

	// 45-47: RelativeLocationPath
	{ntRelativeLocationPath, []symbol{ntStep}, func(rhs []interface{}) (interface{}, error) {
		return []*ast.Step{rhs[0].(*ast.Step)}, nil
	}},
	{ntRelativeLocationPath, []symbol{ntRelativeLocationPath, term(lexer.TokenSlash), ntStep}, func(rhs []interface{}) (interface{}, error) {
		return append(rhs[0].([]*ast.Step), rhs[2].(*ast.Step)), nil
	}},
	{ntRelativeLocationPath, []symbol{ntRelativeLocationPath, term(lexer.TokenDoubleSlash), ntStep}, func(rhs []interface{}) (interface{}, error) {
		steps := append(rhs[0].([]*ast.Step), descendantOrSelfNodeStep())
		return append(steps, rhs[2].(*ast.Step)), nil
	}},

	// 48-49: Step
	{ntStep, []symbol{ntStepCore}, pass},
	{ntStep, []symbol{ntStep, ntPredicate}, func(rhs []interface{}) (interface{}, error) {
		st := rhs[0].(*ast.Step)
		st.Predicates = append(st.Predicates, expr(rhs[1]))
		return st, nil
	}},

	// 50-54: StepCore
	{ntStepCore, []symbol{term(lexer.TokenDot)}, func(rhs []interface{}) (interface{}, error) {
		return &ast.Step{Axis: ast.AxisSelf, Test: ast.NodeTest{Kind: ast.NodeTestNode}}, nil
	}},
	{ntStepCore, []symbol{term(lexer.TokenDotDot)}, func(rhs []interface{}) (interface{}, error) {
		return &ast.Step{Axis: ast.AxisParent, Test: ast.NodeTest{Kind: ast.NodeTestNode}}, nil
	}},
	{ntStepCore, []symbol{ntNodeTest}, func(rhs []interface{}) (interface{}, error) {
		return &ast.Step{Axis: ast.AxisChild, Test: rhs[0].(ast.NodeTest)}, nil
	}},
	{ntStepCore, []symbol{term(lexer.TokenAt), ntNodeTest}, func(rhs []interface{}) (interface{}, error) {
		return &ast.Step{Axis: ast.AxisAttribute, Test: rhs[1].(ast.NodeTest)}, nil
	}},
	{ntStepCore, []symbol{term(lexer.TokenAxisName), ntNodeTest}, func(rhs []interface{}) (interface{}, error) {
		t := tok(rhs[0])
		axis, ok := axisByName[t.Val]
		if !ok {
			return nil, &Error{Type: ErrUnexpectedToken, Detail: t.String(), Pos: t.Pos}
		}
		return &ast.Step{Axis: axis, Test: rhs[1].(ast.NodeTest)}, nil
	}},

	// 55-59: NodeTest
	{ntNodeTest, []symbol{term(lexer.TokenStar)}, func(rhs []interface{}) (interface{}, error) {
		return ast.NodeTest{Kind: ast.NodeTestAny}, nil
	}},
	{ntNodeTest, []symbol{term(lexer.TokenPrefixStar)}, func(rhs []interface{}) (interface{}, error) {
		t := tok(rhs[0])
		return ast.NodeTest{Kind: ast.NodeTestPrefixWildcard, Prefix: t.Val[:len(t.Val)-2]}, nil
	}},
	{ntNodeTest, []symbol{term(lexer.TokenQName)}, func(rhs []interface{}) (interface{}, error) {
		prefix, local := splitQName(tok(rhs[0]).Val)
		return ast.NodeTest{Kind: ast.NodeTestQName, Prefix: prefix, Local: local}, nil
	}},
	{ntNodeTest, []symbol{term(lexer.TokenNodeType), term(lexer.TokenLParen), term(lexer.TokenRParen)}, func(rhs []interface{}) (interface{}, error) {
		return ast.NodeTest{Kind: nodeTypeKind(tok(rhs[0]).Val)}, nil
	}},
	{ntNodeTest, []symbol{term(lexer.TokenNodeType), term(lexer.TokenLParen), term(lexer.TokenLiteral), term(lexer.TokenRParen)}, func(rhs []interface{}) (interface{}, error) {
		t := tok(rhs[0])
		kind := nodeTypeKind(t.Val)
		if kind != ast.NodeTestProcessingInstruction {
			lit := tok(rhs[2])
			return nil, &Error{Type: ErrInvalidNodeTest, Detail: fmt.Sprintf("%s(%q)", t.Val, lit.Val), Pos: t.Pos}
		}
		return ast.NodeTest{Kind: kind, PIArg: tok(rhs[2]).Val, HasPI: true}, nil
	}},

	// 60: Predicate -> '[' Expr ']'
	{ntPredicate, []symbol{term(lexer.TokenLBracket), ntExpr, term(lexer.TokenRBracket)}, func(rhs []interface{}) (interface{}, error) {
		return rhs[1], nil
	}},
}
