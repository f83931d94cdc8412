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

	"github.com/krotik/xpath/lexer"
)

/*
symbol is a grammar symbol: either a terminal (a lexer.TokenID, cast
directly) or a nonterminal (values at or above ntBase). Keeping both
kinds in one integer space lets the table builder treat a production's
right-hand side as a single []symbol slice.
*/
type symbol int

// numTerminals is one past the highest lexer.TokenID in use, fixing
// the terminal column width of the ACTION table.
const numTerminals = int(lexer.TokenPrefixStar) + 1

const ntBase symbol = 64

const (
	ntStart symbol = ntBase + symbol(iota)
	ntExpr
	ntOrExpr
	ntAndExpr
	ntEqualityExpr
	ntRelationalExpr
	ntAdditiveExpr
	ntMultiplicativeExpr
	ntUnaryExpr
	ntUnionExpr
	ntPathExpr
	ntFilterExpr
	ntPrimaryExpr
	ntFunctionCall
	ntArgList
	ntLocationPath
	ntAbsoluteLocationPath
	ntRelativeLocationPath
	ntStep
	ntStepCore
	ntNodeTest
	ntPredicate
	ntNumSymbols
)

var symbolNames = map[symbol]string{
	ntStart: "Start", ntExpr: "Expr", ntOrExpr: "OrExpr", ntAndExpr: "AndExpr",
	ntEqualityExpr: "EqualityExpr", ntRelationalExpr: "RelationalExpr",
	ntAdditiveExpr: "AdditiveExpr", ntMultiplicativeExpr: "MultiplicativeExpr",
	ntUnaryExpr: "UnaryExpr", ntUnionExpr: "UnionExpr", ntPathExpr: "PathExpr",
	ntFilterExpr: "FilterExpr", ntPrimaryExpr: "PrimaryExpr",
	ntFunctionCall: "FunctionCall", ntArgList: "ArgList",
	ntLocationPath: "LocationPath", ntAbsoluteLocationPath: "AbsoluteLocationPath",
	ntRelativeLocationPath: "RelativeLocationPath", ntStep: "Step",
	ntStepCore: "StepCore", ntNodeTest: "NodeTest", ntPredicate: "Predicate",
}

func term(id lexer.TokenID) symbol { return symbol(id) }

func isTerminal(s symbol) bool { return s < ntBase }

func (s symbol) String() string {
	if isTerminal(s) {
		return fmt.Sprintf("token(%d)", s)
	}
	if name, ok := symbolNames[s]; ok {
		return name
	}
	return "?"
}
