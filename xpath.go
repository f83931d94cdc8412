/*
 * Public Domain Software
 *
 * I (Matthias Ladkau) am the author of the source code in this file.
 * I have placed the source code in this file in the public domain.
 *
 * For further information see: http://creativecommons.org/publicdomain/zero/1.0/
 */

/*
Package xpath is the facade over the lexer/parser/ast/eval pipeline:
Parse compiles an expression once, and the resulting *Expr can be
evaluated repeatedly against different context nodes without
re-parsing.
*/
package xpath

import (
	"strings"

	"github.com/spf13/cast"

	"github.com/krotik/xpath/ast"
	"github.com/krotik/xpath/dom"
	"github.com/krotik/xpath/errorutil"
	"github.com/krotik/xpath/eval"
	"github.com/krotik/xpath/nodeset"
	"github.com/krotik/xpath/parser"
)

type opts struct {
	namespaces                   map[string]string
	variables                    map[string]interface{}
	functions                    map[string]eval.Function
	allowAnyNamespaceForNoPrefix bool
	isHTML                       bool
}

/*
Option configures a compiled expression.
*/
type Option func(*opts)

/*
WithNamespaces binds a fixed prefix->URI table for resolving QNames in
the expression, instead of the default "walk the context node's
ancestors" resolver.
*/
func WithNamespaces(namespaces map[string]string) Option {
	return func(o *opts) { o.namespaces = namespaces }
}

/*
WithVariables makes the given $name bindings available to the
expression. Values are host Go values (string, int, float64, bool,
[]dom.Node, eval.Value, ...) and are folded into eval.Value on lookup.
*/
func WithVariables(variables map[string]interface{}) Option {
	return func(o *opts) { o.variables = variables }
}

/*
WithFunctions registers extension functions alongside the core
library, keyed "prefix:local" using the same prefixes passed to
WithNamespaces.
*/
func WithFunctions(functions map[string]eval.Function) Option {
	return func(o *opts) { o.functions = functions }
}

/*
AllowAnyNamespaceForNoPrefix relaxes unprefixed name tests to match an
element or attribute in any namespace rather than only the null
namespace, the behaviour an HTML-flavoured document usually wants.
*/
func AllowAnyNamespaceForNoPrefix() Option {
	return func(o *opts) { o.allowAnyNamespaceForNoPrefix = true }
}

/*
HTML marks the document as HTML for the purposes of case-insensitive
node-name comparison. It also implies AllowAnyNamespaceForNoPrefix.
*/
func HTML() Option {
	return func(o *opts) {
		o.isHTML = true
		o.allowAnyNamespaceForNoPrefix = true
	}
}

/*
UseNamespaces builds a NamespaceResolver that walks n's ancestors for
xmlns/xmlns:prefix declarations, for callers who want the default
resolver explicitly rather than via WithNamespaces.
*/
func UseNamespaces(n dom.Node) eval.NamespaceResolver {
	return &eval.DefaultNamespaceResolver{Node: n}
}

/*
Expr is a parsed, reusable XPath expression.
*/
type Expr struct {
	tree ast.Expr
	opts opts
}

/*
Parse compiles expr once. The returned *Expr can be evaluated against
any number of context nodes.
*/
func Parse(expr string, options ...Option) (*Expr, error) {
	tree, err := parser.Parse(expr)
	if err != nil {
		return nil, err
	}

	o := opts{}
	for _, opt := range options {
		opt(&o)
	}

	return &Expr{tree: tree, opts: o}, nil
}

func (e *Expr) buildContext(node dom.Node) *Context {
	ctx := &eval.Context{
		ContextNode:                  node,
		Position:                     1,
		Size:                         1,
		ExprContextNode:              node,
		CaseInsensitive:              e.opts.isHTML,
		AllowAnyNamespaceForNoPrefix: e.opts.allowAnyNamespaceForNoPrefix,
	}

	if htmlAware, ok := node.OwnerDocument().(dom.HTMLAware); ok && htmlAware.IsHTML() {
		ctx.CaseInsensitive = true
		ctx.AllowAnyNamespaceForNoPrefix = true
	}

	if e.opts.namespaces != nil {
		ctx.Namespaces = eval.MapNamespaceResolver(e.opts.namespaces)
	} else {
		ctx.Namespaces = UseNamespaces(node)
	}

	if e.opts.variables != nil {
		vars := make(eval.MapVariableResolver, len(e.opts.variables))
		for name, v := range e.opts.variables {
			vars["{}"+name] = toValue(v)
		}
		ctx.Variables = vars
	}

	if e.opts.functions != nil {
		fns := make(eval.MapFunctionResolver, len(e.opts.functions))
		for name, fn := range e.opts.functions {
			uri, local := "", name
			if i := strings.IndexByte(name, ':'); i >= 0 {
				var ok bool
				if uri, ok = ctx.Namespaces.LookupNamespaceURI(name[:i]); !ok {
					continue
				}
				local = name[i+1:]
			}
			fns["{"+uri+"}"+local] = fn
		}
		ctx.Functions = fns
	}

	return ctx
}

/*
Context is re-exported so callers can build one directly for
lower-level use (e.g. implementing a custom NamespaceResolver) without
importing the eval package themselves.
*/
type Context = eval.Context

/*
Evaluate runs the expression against node and returns the raw typed
result as an eval.Value.
*/
func (e *Expr) Evaluate(node dom.Node) (eval.Value, error) {
	return eval.Eval(e.tree, e.buildContext(node))
}

/*
Select evaluates the expression and requires a node-set result,
returning its nodes in document order.
*/
func (e *Expr) Select(node dom.Node) ([]dom.Node, error) {
	val, err := e.Evaluate(node)
	if err != nil {
		return nil, err
	}
	ns, err := val.NodeSet()
	if err != nil {
		return nil, err
	}
	return ns.Sorted(), nil
}

/*
Select1 evaluates the expression and returns the first matched node in
document order, or nil if the result node-set is empty.
*/
func (e *Expr) Select1(node dom.Node) (dom.Node, error) {
	nodes, err := e.Select(node)
	if err != nil {
		return nil, err
	}
	if len(nodes) == 0 {
		return nil, nil
	}
	return nodes[0], nil
}

/*
Validate performs an optional static pre-flight beyond the plain
bare-error-per-call evaluation model: it walks the expression for
$variable and extension function references and reports every one
this *Expr's options cannot resolve, aggregated with
errorutil.CompositeError rather than failing on the first.
*/
func (e *Expr) Validate() error {
	errs := errorutil.NewCompositeError()
	checkStaticRefs(e.tree, &e.opts, errs)
	if errs.HasErrors() {
		return errs
	}
	return nil
}

func checkStaticRefs(n ast.Expr, o *opts, errs *errorutil.CompositeError) {
	switch e := n.(type) {
	case *ast.VariableRef:
		if o.variables == nil {
			errs.Add(evalUndeclared("variable", e.Name))
			return
		}
		if _, ok := o.variables[e.Name]; !ok {
			errs.Add(evalUndeclared("variable", e.Name))
		}

	case *ast.FunctionCall:
		if strings.Contains(e.Name, ":") {
			if _, ok := o.functions[e.Name]; !ok {
				errs.Add(evalUndeclared("function", e.Name))
			}
		}
		for _, a := range e.Args {
			checkStaticRefs(a, o, errs)
		}

	case *ast.BinaryExpr:
		checkStaticRefs(e.Left, o, errs)
		checkStaticRefs(e.Right, o, errs)

	case *ast.UnaryMinusExpr:
		checkStaticRefs(e.Operand, o, errs)

	case *ast.PathExpr:
		if e.Filter != nil {
			checkStaticRefs(e.Filter, o, errs)
		}
		for _, p := range e.FilterPredicates {
			checkStaticRefs(p, o, errs)
		}
		if e.LocationPath != nil {
			for _, s := range e.LocationPath.Steps {
				for _, p := range s.Predicates {
					checkStaticRefs(p, o, errs)
				}
			}
		}
	}
}

func evalUndeclared(kind, name string) error {
	return &eval.EvalError{Detail: "undeclared " + kind + " reference: " + name}
}

/*
toValue folds an arbitrary host value supplied via WithVariables into
an eval.Value. Native eval.Value and []dom.Node pass through directly
and string/bool map to their XPath types; everything else goes through
spf13/cast's permissive coercion, since a
caller's Go value (int, json.Number, etc.) has no canonical XPath type
of its own the way a parsed literal does.
*/
func toValue(v interface{}) eval.Value {
	switch t := v.(type) {
	case eval.Value:
		return t
	case string:
		return eval.String(t)
	case bool:
		return eval.Boolean(t)
	case []dom.Node:
		return eval.NodeSetValue(nodeset.FromSlice(t))
	}

	if f, err := cast.ToFloat64E(v); err == nil {
		return eval.Number(f)
	}

	return eval.String(cast.ToString(v))
}
