/*
 * Public Domain Software
 *
 * I (Matthias Ladkau) am the author of the source code in this file.
 * I have placed the source code in this file in the public domain.
 *
 * For further information see: http://creativecommons.org/publicdomain/zero/1.0/
 */

/*
Package parser builds an ast.Expr from XPath 1.0 source text with a
table-driven SLR(1) shift/reduce engine: the grammar in grammar.go
compiles, once at package init (lrtables.go), into ACTION,
ACTION-NUMBER, GOTO and PRODUCTIONS tables, and Parse drives them over
a parallel (state, semantic value) stack - shift pushes a token and a
new state, reduce pops a production's right-hand side and replaces it
with the left-hand side's semantic value plus a GOTO-derived state,
and accept returns the finished tree. See grammar.go for the BNF and
lrtables.go for the table construction.
*/
package parser

import (
	"github.com/krotik/xpath/ast"
	"github.com/krotik/xpath/errorutil"
	"github.com/krotik/xpath/lexer"
)

/*
Parse parses an XPath 1.0 expression into an AST.
*/
func Parse(expr string) (ast.Expr, error) {
	toks, err := lexer.Lex(expr)
	if err != nil {
		return nil, &Error{Type: ErrLexicalError, Detail: err.Error()}
	}

	p := &parser{toks: toks}
	return p.run()
}

type parser struct {
	toks []lexer.Token
}

/*
stackFrame is one entry of the parallel state/semantic-value stack:
state is the automaton state on top once this frame was pushed, val is
the semantic value carried with it (a raw lexer.Token for a shifted
terminal, whatever a production's action returned for a reduced
nonterminal).
*/
type stackFrame struct {
	state int
	val   interface{}
}

/*
run is the shift/reduce driver loop. toks always ends in a TokenEOF
(lexer.Lex appends it), so looking up the current token never runs
past the slice; TokenEOF itself is never shifted onto the stack, only
ever consulted as lookahead for a reduce or the accept transition.
*/
func (p *parser) run() (ast.Expr, error) {
	stack := []stackFrame{{state: 0}}
	pos := 0

	for {
		cur := p.toks[pos]
		s := stack[len(stack)-1].state
		ti := int(cur.ID)

		if ti < 0 || ti >= numTerminals {
			return nil, p.errorf(ErrUnexpectedToken, cur)
		}

		switch parserTables.action[s][ti] {
		case actShift:
			target := parserTables.actionNum[s][ti]
			stack = append(stack, stackFrame{state: target, val: cur})
			pos++

		case actReduce:
			prodIdx := parserTables.actionNum[s][ti]
			n := parserTables.prodLen[prodIdx]

			rhs := make([]interface{}, n)
			for i := 0; i < n; i++ {
				rhs[i] = stack[len(stack)-n+i].val
			}
			stack = stack[:len(stack)-n]

			val, err := grammar[prodIdx].action(rhs)
			if err != nil {
				return nil, err
			}

			back := stack[len(stack)-1].state
			next := parserTables.goTo[back][nontermIndex(symbol(parserTables.prodLHS[prodIdx]))]
			errorutil.AssertTrue(next >= 0, "parser: reduce without a goto transition")
			stack = append(stack, stackFrame{state: next, val: val})

		case actAccept:
			return stack[len(stack)-1].val.(ast.Expr), nil

		default:
			if cur.ID == lexer.TokenEOF {
				return nil, p.errorf(ErrUnexpectedEnd, cur)
			}
			return nil, p.errorf(ErrUnexpectedToken, cur)
		}
	}
}
