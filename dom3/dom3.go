/*
 * Public Domain Software
 *
 * I (Matthias Ladkau) am the author of the source code in this file.
 * I have placed the source code in this file in the public domain.
 *
 * For further information see: http://creativecommons.org/publicdomain/zero/1.0/
 */

/*
Package dom3 adapts the evaluator to the shape of the DOM Level 3
XPath recommendation: Evaluator.CreateExpression / CreateNSResolver /
Evaluate, and a typed Result with the nine DOM-3 resultType constants.
*/
package dom3

import (
	"fmt"

	"github.com/krotik/xpath/ast"
	"github.com/krotik/xpath/dom"
	"github.com/krotik/xpath/eval"
	"github.com/krotik/xpath/nodeset"
	"github.com/krotik/xpath/parser"
)

/*
ResultType is one of the nine DOM-3 XPathResult constants.
*/
type ResultType int

const (
	AnyType ResultType = iota
	NumberType
	StringType
	BooleanType
	UnorderedNodeIteratorType
	OrderedNodeIteratorType
	UnorderedNodeSnapshotType
	OrderedNodeSnapshotType
	AnyUnorderedNodeType
	FirstOrderedNodeType
)

/*
InvalidResultTypeError is raised when Evaluate is asked for a
resultType outside [0,9].
*/
type InvalidResultTypeError struct {
	ResultType ResultType
}

func (e *InvalidResultTypeError) Error() string {
	return fmt.Sprintf("invalid result type: %d", int(e.ResultType))
}

/*
Code returns the DOM-3 XPathException code for this error kind - an
invalid resultType is an invalid-expression-shaped request, code 51.
*/
func (e *InvalidResultTypeError) Code() int { return 51 }

/*
Evaluator is the DOM-3 XPathEvaluator equivalent.
*/
type Evaluator struct{}

/*
NewEvaluator constructs an Evaluator. It carries no state: every
CreateExpression call compiles independently.
*/
func NewEvaluator() *Evaluator { return &Evaluator{} }

/*
CreateNSResolver builds a NamespaceResolver that resolves prefixes by
walking n's ancestors for xmlns declarations.
*/
func (*Evaluator) CreateNSResolver(n dom.Node) eval.NamespaceResolver {
	return &eval.DefaultNamespaceResolver{Node: n}
}

/*
Expression is a compiled XPath expression bound to a default namespace
resolver.
*/
type Expression struct {
	tree     ast.Expr
	resolver eval.NamespaceResolver
}

/*
CreateExpression compiles expr. resolver may be nil, in which case
Evaluate falls back to resolving namespaces from its own contextNode.
*/
func (*Evaluator) CreateExpression(expr string, resolver eval.NamespaceResolver) (*Expression, error) {
	tree, err := parser.Parse(expr)
	if err != nil {
		return nil, err
	}
	return &Expression{tree: tree, resolver: resolver}, nil
}

/*
Evaluate runs the compiled expression against contextNode and wraps
the outcome as the requested resultType. reuse, when non-nil, is
reinitialised and returned instead of allocating a new *Result,
mirroring the DOM-3 signature's optional result-reuse parameter.
*/
func (ex *Expression) Evaluate(contextNode dom.Node, resolver eval.NamespaceResolver, resultType ResultType, reuse *Result) (*Result, error) {
	if resultType < AnyType || resultType > FirstOrderedNodeType {
		return nil, &InvalidResultTypeError{ResultType: resultType}
	}

	if resolver == nil {
		resolver = ex.resolver
	}
	if resolver == nil {
		resolver = &eval.DefaultNamespaceResolver{Node: contextNode}
	}

	ctx := &eval.Context{
		ContextNode:     contextNode,
		Position:        1,
		Size:            1,
		ExprContextNode: contextNode,
		Namespaces:      resolver,
	}

	val, err := eval.Eval(ex.tree, ctx)
	if err != nil {
		return nil, err
	}

	r := reuse
	if r == nil {
		r = &Result{}
	}
	*r = Result{resultType: resultType}

	if resultType == AnyType {
		switch val.Kind() {
		case eval.KindNumber:
			resultType = NumberType
		case eval.KindString:
			resultType = StringType
		case eval.KindBoolean:
			resultType = BooleanType
		case eval.KindNodeSet:
			resultType = UnorderedNodeIteratorType
		}
		r.resultType = resultType
	}

	switch resultType {
	case NumberType:
		r.number = val.AsNumber()
	case StringType:
		r.str = val.AsString()
	case BooleanType:
		r.boolean = val.AsBoolean()
	default:
		ns, err := val.NodeSet()
		if err != nil {
			return nil, err
		}
		r.nodes = orderNodes(ns, resultType)
	}

	return r, nil
}

func orderNodes(ns *nodeset.NodeSet, resultType ResultType) []dom.Node {
	switch resultType {
	case OrderedNodeIteratorType, OrderedNodeSnapshotType, FirstOrderedNodeType:
		return ns.Sorted()
	default:
		return ns.InsertionOrder()
	}
}

/*
Result is the DOM-3 XPathResult equivalent: a typed evaluation outcome
whose accessors raise a type error (code 52) on variant mismatch.
*/
type Result struct {
	resultType ResultType
	number     float64
	str        string
	boolean    bool
	nodes      []dom.Node
	iterPos    int
}

/*
ResultType reports the variant this Result actually holds (after
AnyType resolution).
*/
func (r *Result) ResultType() ResultType { return r.resultType }

func (r *Result) typeErr(want string) error {
	return &eval.TypeError{Detail: fmt.Sprintf("result is not a %s (resultType %d)", want, int(r.resultType))}
}

func (r *Result) NumberValue() (float64, error) {
	if r.resultType != NumberType {
		return 0, r.typeErr("number")
	}
	return r.number, nil
}

func (r *Result) StringValue() (string, error) {
	if r.resultType != StringType {
		return "", r.typeErr("string")
	}
	return r.str, nil
}

func (r *Result) BooleanValue() (bool, error) {
	if r.resultType != BooleanType {
		return false, r.typeErr("boolean")
	}
	return r.boolean, nil
}

/*
SingleNodeValue returns the sole node for AnyUnorderedNodeType /
FirstOrderedNodeType, or nil if the underlying node-set was empty.
*/
func (r *Result) SingleNodeValue() (dom.Node, error) {
	if r.resultType != AnyUnorderedNodeType && r.resultType != FirstOrderedNodeType {
		return nil, r.typeErr("single node")
	}
	if len(r.nodes) == 0 {
		return nil, nil
	}
	return r.nodes[0], nil
}

/*
IterateNext advances and returns the next node for the iterator result
types, or nil once exhausted.
*/
func (r *Result) IterateNext() (dom.Node, error) {
	if r.resultType != UnorderedNodeIteratorType && r.resultType != OrderedNodeIteratorType {
		return nil, r.typeErr("node iterator")
	}
	if r.iterPos >= len(r.nodes) {
		return nil, nil
	}
	n := r.nodes[r.iterPos]
	r.iterPos++
	return n, nil
}

func (r *Result) SnapshotLength() (int, error) {
	if r.resultType != UnorderedNodeSnapshotType && r.resultType != OrderedNodeSnapshotType {
		return 0, r.typeErr("node snapshot")
	}
	return len(r.nodes), nil
}

func (r *Result) SnapshotItem(i int) (dom.Node, error) {
	if r.resultType != UnorderedNodeSnapshotType && r.resultType != OrderedNodeSnapshotType {
		return nil, r.typeErr("node snapshot")
	}
	if i < 0 || i >= len(r.nodes) {
		return nil, nil
	}
	return r.nodes[i], nil
}
