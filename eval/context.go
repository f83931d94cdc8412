/*
 * Public Domain Software
 *
 * I (Matthias Ladkau) am the author of the source code in this file.
 * I have placed the source code in this file in the public domain.
 *
 * For further information see: http://creativecommons.org/publicdomain/zero/1.0/
 */

package eval

import "github.com/krotik/xpath/dom"

/*
NamespaceResolver resolves a QName prefix to a namespace URI.
*/
type NamespaceResolver interface {
	LookupNamespaceURI(prefix string) (string, bool)
}

/*
VariableResolver resolves a (namespace URI, local name) pair to a
value for $prefix:name references.
*/
type VariableResolver interface {
	LookupVariable(uri, local string) (Value, bool)
}

/*
Function is a built-in or user-supplied XPath function implementation.
*/
type Function func(ctx *Context, args []Value) (Value, error)

/*
FunctionResolver resolves a (namespace URI, local name) pair to a
callable function.
*/
type FunctionResolver interface {
	LookupFunction(uri, local string) (Function, bool)
}

/*
Context is the immutable-by-extension evaluation context. Every place
the evaluator needs a "different" context (a new context node, a new
position/size pair) calls one of the With* methods below, which return
a shallow copy rather than mutating the receiver, so an ancestor frame
in a recursive evaluation never observes a descendant's context change.
*/
type Context struct {
	ContextNode dom.Node
	Position    int
	Size        int

	Namespaces NamespaceResolver
	Variables  VariableResolver
	Functions  FunctionResolver

	// ExprContextNode is the node the expression was compiled/evaluated
	// against, used to resolve QNames in variable/function references
	// independent of whatever ContextNode a step traversal has reached.
	ExprContextNode dom.Node

	// VirtualRoot bounds ancestor/preceding traversals without reaching
	// the real document, for evaluation rooted below the document node.
	VirtualRoot dom.Node

	CaseInsensitive              bool
	AllowAnyNamespaceForNoPrefix bool
}

/*
WithContextNode returns a copy of ctx with a new context node and
position/size reset to the single-node case (1, 1).
*/
func (ctx *Context) WithContextNode(n dom.Node) *Context {
	next := *ctx
	next.ContextNode = n
	next.Position = 1
	next.Size = 1
	return &next
}

/*
WithPosition returns a copy of ctx with a new context position and
size, used while iterating a step's candidate sequence for predicate
evaluation.
*/
func (ctx *Context) WithPosition(node dom.Node, position, size int) *Context {
	next := *ctx
	next.ContextNode = node
	next.Position = position
	next.Size = size
	return &next
}

/*
DefaultNamespaceResolver implements NamespaceResolver by walking DOM
ancestors of a fixed node looking for xmlns/xmlns:prefix declarations.
If the node is a Document, it is replaced by the document's root
element for the walk.
*/
type DefaultNamespaceResolver struct {
	Node dom.Node
}

func (r *DefaultNamespaceResolver) LookupNamespaceURI(prefix string) (string, bool) {
	switch prefix {
	case "xml":
		return dom.XMLNamespaceURI, true
	case "xmlns":
		return dom.XMLNSNamespaceURI, true
	}

	n := r.Node
	if n != nil && n.Kind() == dom.DocumentNode {
		n = firstElementChild(n)
	}

	attrName := "xmlns"
	if prefix != "" {
		attrName = "xmlns:" + prefix
	}

	for cur := n; cur != nil; cur = cur.Parent() {
		if cur.Kind() != dom.ElementNode {
			continue
		}
		for _, a := range cur.Attributes() {
			if a.Name() == attrName {
				return a.Value(), true
			}
		}
	}

	return "", false
}

func firstElementChild(n dom.Node) dom.Node {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if c.Kind() == dom.ElementNode {
			return c
		}
	}
	return nil
}

/*
MapNamespaceResolver resolves prefixes from a fixed prefix->URI map,
the shape the "namespaces" option takes when given a map.
*/
type MapNamespaceResolver map[string]string

func (m MapNamespaceResolver) LookupNamespaceURI(prefix string) (string, bool) {
	if prefix == "xml" {
		return dom.XMLNamespaceURI, true
	}
	if prefix == "xmlns" {
		return dom.XMLNSNamespaceURI, true
	}
	uri, ok := m[prefix]
	return uri, ok
}

/*
MapVariableResolver resolves variables from a map keyed "{uri}local",
empty uri for the default namespace, matching the function registry's
key shape.
*/
type MapVariableResolver map[string]Value

func (m MapVariableResolver) LookupVariable(uri, local string) (Value, bool) {
	v, ok := m[registryKey(uri, local)]
	return v, ok
}

/*
MapFunctionResolver resolves functions from a map keyed "{uri}local".
*/
type MapFunctionResolver map[string]Function

func (m MapFunctionResolver) LookupFunction(uri, local string) (Function, bool) {
	f, ok := m[registryKey(uri, local)]
	return f, ok
}

func registryKey(uri, local string) string { return "{" + uri + "}" + local }
