/*
 * Public Domain Software
 *
 * I (Matthias Ladkau) am the author of the source code in this file.
 * I have placed the source code in this file in the public domain.
 *
 * For further information see: http://creativecommons.org/publicdomain/zero/1.0/
 */

package eval

import (
	"strings"

	"github.com/krotik/xpath/ast"
	"github.com/krotik/xpath/dom"
	"github.com/krotik/xpath/nodeset"
)

/*
Eval recursively evaluates expr against ctx. It is the single dispatch
point for every expression kind; callers normally reach it indirectly
through the root facade package rather than directly.
*/
func Eval(expr ast.Expr, ctx *Context) (Value, error) {
	switch e := expr.(type) {

	case *ast.NumberLiteral:
		return Number(e.Value), nil

	case *ast.StringLiteral:
		return String(e.Value), nil

	case *ast.VariableRef:
		return evalVariableRef(e, ctx)

	case *ast.UnaryMinusExpr:
		v, err := Eval(e.Operand, ctx)
		if err != nil {
			return Value{}, err
		}
		return Number(-v.AsNumber()), nil

	case *ast.BinaryExpr:
		return evalBinary(e, ctx)

	case *ast.FunctionCall:
		return evalFunctionCall(e, ctx)

	case *ast.PathExpr:
		ns, err := evalPathExpr(e, ctx)
		if err != nil {
			return Value{}, err
		}
		return NodeSetValue(ns), nil
	}

	return Value{}, evalErrorf("unsupported expression node %T", expr)
}

func splitQName(name string) (prefix, local string) {
	if i := strings.IndexByte(name, ':'); i >= 0 {
		return name[:i], name[i+1:]
	}
	return "", name
}

func resolvePrefix(ctx *Context, prefix string) (string, error) {
	if prefix == "" {
		return "", nil
	}
	if ctx.Namespaces == nil {
		return "", evalErrorf("no namespace prefix %q in scope", prefix)
	}
	uri, ok := ctx.Namespaces.LookupNamespaceURI(prefix)
	if !ok {
		return "", evalErrorf("undeclared namespace prefix %q", prefix)
	}
	return uri, nil
}

func evalVariableRef(v *ast.VariableRef, ctx *Context) (Value, error) {
	prefix, local := splitQName(v.Name)
	uri, err := resolvePrefix(ctx, prefix)
	if err != nil {
		return Value{}, err
	}
	if ctx.Variables == nil {
		return Value{}, evalErrorf("undeclared variable $%s", v.Name)
	}
	val, ok := ctx.Variables.LookupVariable(uri, local)
	if !ok {
		return Value{}, evalErrorf("undeclared variable $%s", v.Name)
	}
	return val, nil
}

func evalFunctionCall(f *ast.FunctionCall, ctx *Context) (Value, error) {
	prefix, local := splitQName(f.Name)
	uri, err := resolvePrefix(ctx, prefix)
	if err != nil {
		return Value{}, err
	}

	args := make([]Value, len(f.Args))
	for i, a := range f.Args {
		v, err := Eval(a, ctx)
		if err != nil {
			return Value{}, err
		}
		args[i] = v
	}

	if ctx.Functions != nil {
		if fn, ok := ctx.Functions.LookupFunction(uri, local); ok {
			return fn(ctx, args)
		}
	}
	if uri == "" {
		if fn, ok := coreFunctions.LookupFunction(uri, local); ok {
			return fn(ctx, args)
		}
	}

	return Value{}, evalErrorf("unknown function %s()", f.Name)
}

// Binary operators
// ================

func evalBinary(b *ast.BinaryExpr, ctx *Context) (Value, error) {
	switch b.Op {
	case ast.OpOr:
		l, err := Eval(b.Left, ctx)
		if err != nil {
			return Value{}, err
		}
		if l.AsBoolean() {
			return Boolean(true), nil
		}
		r, err := Eval(b.Right, ctx)
		if err != nil {
			return Value{}, err
		}
		return Boolean(r.AsBoolean()), nil

	case ast.OpAnd:
		l, err := Eval(b.Left, ctx)
		if err != nil {
			return Value{}, err
		}
		if !l.AsBoolean() {
			return Boolean(false), nil
		}
		r, err := Eval(b.Right, ctx)
		if err != nil {
			return Value{}, err
		}
		return Boolean(r.AsBoolean()), nil

	case ast.OpUnion:
		l, err := Eval(b.Left, ctx)
		if err != nil {
			return Value{}, err
		}
		r, err := Eval(b.Right, ctx)
		if err != nil {
			return Value{}, err
		}
		ln, err := l.NodeSet()
		if err != nil {
			return Value{}, err
		}
		rn, err := r.NodeSet()
		if err != nil {
			return Value{}, err
		}
		return NodeSetValue(ln.Union(rn)), nil
	}

	l, err := Eval(b.Left, ctx)
	if err != nil {
		return Value{}, err
	}
	r, err := Eval(b.Right, ctx)
	if err != nil {
		return Value{}, err
	}

	switch b.Op {
	case ast.OpAdd:
		return Number(l.AsNumber() + r.AsNumber()), nil
	case ast.OpSub:
		return Number(l.AsNumber() - r.AsNumber()), nil
	case ast.OpMul:
		return Number(l.AsNumber() * r.AsNumber()), nil
	case ast.OpDiv:
		return Number(l.AsNumber() / r.AsNumber()), nil
	case ast.OpMod:
		return Number(modXPath(l.AsNumber(), r.AsNumber())), nil
	case ast.OpEq, ast.OpNeq, ast.OpLt, ast.OpLe, ast.OpGt, ast.OpGe:
		result, err := compareValues(b.Op, l, r)
		if err != nil {
			return Value{}, err
		}
		return Boolean(result), nil
	}

	return Value{}, evalErrorf("unsupported operator %s", b.Op)
}

func modXPath(a, b float64) float64 {
	m := a - b*float64(int64(a/b))
	return m
}

/*
compareValues implements XPath's type-driven comparison rules:
node-set operands compare by existential pairing with the other side
(per-node for string/number, collapsed to a single boolean when the
other side is a boolean); scalar operands compare with compareScalar.
*/
func compareValues(op ast.BinaryOp, left, right Value) (bool, error) {
	if left.Kind() == KindNodeSet && right.Kind() == KindBoolean {
		return compareScalar(op, Boolean(left.AsBoolean()), right), nil
	}
	if right.Kind() == KindNodeSet && left.Kind() == KindBoolean {
		return compareScalar(op, left, Boolean(right.AsBoolean())), nil
	}

	if left.Kind() == KindNodeSet && right.Kind() == KindNodeSet {
		ln, _ := left.NodeSet()
		rn, _ := right.NodeSet()
		for _, a := range ln.InsertionOrder() {
			for _, b := range rn.InsertionOrder() {
				if compareScalar(op, String(StringValueOf(a)), String(StringValueOf(b))) {
					return true, nil
				}
			}
		}
		return false, nil
	}

	if left.Kind() == KindNodeSet {
		ln, _ := left.NodeSet()
		for _, a := range ln.InsertionOrder() {
			if compareScalar(op, nodeScalarValue(a, right), right) {
				return true, nil
			}
		}
		return false, nil
	}

	if right.Kind() == KindNodeSet {
		rn, _ := right.NodeSet()
		for _, b := range rn.InsertionOrder() {
			if compareScalar(op, left, nodeScalarValue(b, left)) {
				return true, nil
			}
		}
		return false, nil
	}

	return compareScalar(op, left, right), nil
}

func nodeScalarValue(n dom.Node, other Value) Value {
	if other.Kind() == KindNumber {
		return Number(stringToNumber(StringValueOf(n)))
	}
	return String(StringValueOf(n))
}

func compareScalar(op ast.BinaryOp, a, b Value) bool {
	if op == ast.OpEq || op == ast.OpNeq {
		var eq bool
		switch {
		case a.Kind() == KindBoolean || b.Kind() == KindBoolean:
			eq = a.AsBoolean() == b.AsBoolean()
		case a.Kind() == KindNumber || b.Kind() == KindNumber:
			eq = a.AsNumber() == b.AsNumber()
		default:
			eq = a.AsString() == b.AsString()
		}
		if op == ast.OpEq {
			return eq
		}
		return !eq
	}

	x, y := a.AsNumber(), b.AsNumber()
	switch op {
	case ast.OpLt:
		return x < y
	case ast.OpLe:
		return x <= y
	case ast.OpGt:
		return x > y
	case ast.OpGe:
		return x >= y
	}
	return false
}

// Path and location path evaluation
// =================================

func evalPathExpr(p *ast.PathExpr, ctx *Context) (*nodeset.NodeSet, error) {
	if p.Filter == nil {
		return evalLocationPath(p.LocationPath, ctx)
	}

	val, err := Eval(p.Filter, ctx)
	if err != nil {
		return nil, err
	}
	ns, err := val.NodeSet()
	if err != nil {
		return nil, err
	}

	filtered, err := applyPredicates(ns.InsertionOrder(), p.FilterPredicates, ctx)
	if err != nil {
		return nil, err
	}

	if p.LocationPath == nil {
		return nodeset.FromSlice(filtered), nil
	}

	final := nodeset.New()
	for _, n := range filtered {
		sub, err := evalLocationPath(p.LocationPath, ctx.WithContextNode(n))
		if err != nil {
			return nil, err
		}
		final.AddAll(sub.InsertionOrder())
	}
	return final, nil
}

func evalLocationPath(lp *ast.LocationPath, ctx *Context) (*nodeset.NodeSet, error) {
	var current []dom.Node

	if lp.Absolute {
		root := effectiveRoot(ctx)
		if root == nil {
			return nil, evalErrorf("absolute location path has no document root")
		}
		current = []dom.Node{root}
	} else {
		if ctx.ContextNode == nil {
			return nil, evalErrorf("relative location path has no context node")
		}
		current = []dom.Node{ctx.ContextNode}
	}

	for _, step := range lp.Steps {
		next, err := evalStep(current, step, ctx)
		if err != nil {
			return nil, err
		}
		current = next.Sorted()
	}

	return nodeset.FromSlice(current), nil
}

func effectiveRoot(ctx *Context) dom.Node {
	if ctx.VirtualRoot != nil {
		return ctx.VirtualRoot
	}
	if ctx.ContextNode == nil {
		return nil
	}
	if ctx.ContextNode.Kind() == dom.DocumentNode {
		return ctx.ContextNode
	}
	if doc := ctx.ContextNode.OwnerDocument(); doc != nil {
		return doc
	}
	return ctx.ContextNode
}

func evalStep(inputNodes []dom.Node, step *ast.Step, ctx *Context) (*nodeset.NodeSet, error) {
	result := nodeset.New()

	for _, in := range inputNodes {
		stepCtx := ctx.WithContextNode(in)

		candidates, err := axisNodes(stepCtx, step.Axis)
		if err != nil {
			return nil, err
		}

		matched := filterNodeTest(ctx, candidates, step.Test, step.Axis)

		kept, err := applyPredicates(matched, step.Predicates, ctx)
		if err != nil {
			return nil, err
		}

		result.AddAll(kept)
	}

	return result, nil
}

/*
principalKind returns the node kind a bare node test ("*" or an NCName)
matches on the given axis: attribute:: tests attributes, namespace::
tests namespace nodes, every other axis tests elements.
*/
func principalKind(axis ast.Axis) dom.NodeKind {
	switch axis {
	case ast.AxisAttribute:
		return dom.AttributeNode
	case ast.AxisNamespace:
		return dom.NamespaceNode
	}
	return dom.ElementNode
}

func filterNodeTest(ctx *Context, nodes []dom.Node, test ast.NodeTest, axis ast.Axis) []dom.Node {
	var out []dom.Node
	want := principalKind(axis)

	for _, n := range nodes {
		if nodeTestMatches(ctx, n, test, want) {
			out = append(out, n)
		}
	}
	return out
}

func nodeTestMatches(ctx *Context, n dom.Node, test ast.NodeTest, want dom.NodeKind) bool {
	switch test.Kind {
	case ast.NodeTestAny:
		return n.Kind() == want

	case ast.NodeTestPrefixWildcard:
		if n.Kind() != want {
			return false
		}
		uri, err := resolvePrefix(ctx, test.Prefix)
		if err != nil {
			return false
		}
		return n.NamespaceURI() == uri

	case ast.NodeTestQName:
		if n.Kind() != want {
			return false
		}
		if !nameEqual(ctx, n.LocalName(), test.Local) {
			return false
		}
		if test.Prefix == "" {
			if ctx.AllowAnyNamespaceForNoPrefix {
				return true
			}
			return n.NamespaceURI() == ""
		}
		uri, err := resolvePrefix(ctx, test.Prefix)
		if err != nil {
			return false
		}
		return n.NamespaceURI() == uri

	case ast.NodeTestComment:
		return n.Kind() == dom.CommentNode

	case ast.NodeTestText:
		return n.Kind() == dom.TextNode || n.Kind() == dom.CDATANode

	case ast.NodeTestProcessingInstruction:
		if n.Kind() != dom.ProcessingInstructionNode {
			return false
		}
		if !test.HasPI {
			return true
		}
		return n.Name() == test.PIArg

	case ast.NodeTestNode:
		return true
	}

	return false
}

func nameEqual(ctx *Context, a, b string) bool {
	if ctx.CaseInsensitive {
		return strings.EqualFold(a, b)
	}
	return a == b
}

/*
applyPredicates threads nodes through each predicate in order,
re-numbering position/size for every pass: a predicate sees only the
nodes that survived every predicate before it.
*/
func applyPredicates(nodes []dom.Node, predicates []ast.Expr, ctx *Context) ([]dom.Node, error) {
	for _, pred := range predicates {
		size := len(nodes)
		var kept []dom.Node

		for i, n := range nodes {
			pos := i + 1
			pctx := ctx.WithPosition(n, pos, size)

			val, err := Eval(pred, pctx)
			if err != nil {
				return nil, err
			}

			match := val.AsBoolean()
			if val.Kind() == KindNumber {
				match = val.AsNumber() == float64(pos)
			}
			if match {
				kept = append(kept, n)
			}
		}

		nodes = kept
	}

	return nodes, nil
}
