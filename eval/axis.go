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
	"github.com/krotik/xpath/ast"
	"github.com/krotik/xpath/dom"
)

/*
axisNodes generates the candidate sequence for a single step's axis,
rooted at ctx.ContextNode. The sequence is returned in the axis's
natural iteration order - document order for forward axes, reverse
document order for reverse axes - so that predicate position counting
falls out of plain slice indexing without a separate reversal step.
*/
func axisNodes(ctx *Context, axis ast.Axis) ([]dom.Node, error) {
	n := ctx.ContextNode
	if n == nil {
		return nil, evalErrorf("no context node for %s:: axis", axis)
	}

	switch axis {
	case ast.AxisChild:
		return children(n), nil

	case ast.AxisDescendant:
		var out []dom.Node
		collectDescendants(n, &out)
		return out, nil

	case ast.AxisDescendantOrSelf:
		out := []dom.Node{n}
		collectDescendants(n, &out)
		return out, nil

	case ast.AxisParent:
		if p := parentOrOwner(n); p != nil {
			return []dom.Node{p}, nil
		}
		return nil, nil

	case ast.AxisAncestor:
		var out []dom.Node
		for p := parentOrOwner(n); p != nil; p = parentOrOwner(p) {
			out = append(out, p)
		}
		return out, nil

	case ast.AxisAncestorOrSelf:
		out := []dom.Node{n}
		for p := parentOrOwner(n); p != nil; p = parentOrOwner(p) {
			out = append(out, p)
		}
		return out, nil

	case ast.AxisFollowingSibling:
		var out []dom.Node
		for s := n.NextSibling(); s != nil; s = s.NextSibling() {
			out = append(out, s)
		}
		return out, nil

	case ast.AxisPrecedingSibling:
		var out []dom.Node
		for s := n.PreviousSibling(); s != nil; s = s.PreviousSibling() {
			out = append(out, s)
		}
		return out, nil

	case ast.AxisFollowing:
		return followingAxis(n), nil

	case ast.AxisPreceding:
		return precedingAxis(n), nil

	case ast.AxisAttribute:
		if n.Kind() != dom.ElementNode {
			return nil, nil
		}
		return n.Attributes(), nil

	case ast.AxisNamespace:
		if n.Kind() != dom.ElementNode {
			return nil, nil
		}
		return namespaceNodes(n), nil

	case ast.AxisSelf:
		return []dom.Node{n}, nil
	}

	return nil, evalErrorf("unsupported axis %s", axis)
}

func parentOrOwner(n dom.Node) dom.Node {
	if n.Kind() == dom.AttributeNode || n.Kind() == dom.NamespaceNode {
		return n.OwnerElement()
	}
	return n.Parent()
}

func children(n dom.Node) []dom.Node {
	var out []dom.Node
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		out = append(out, c)
	}
	return out
}

func collectDescendants(n dom.Node, out *[]dom.Node) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		*out = append(*out, c)
		collectDescendants(c, out)
	}
}

/*
followingAxis walks up from n, at each ancestor level (self first, then
upward) emitting the following siblings' subtrees in document order -
the standard "every node after n that is not an ancestor of n"
definition.
*/
func followingAxis(n dom.Node) []dom.Node {
	var out []dom.Node
	cur := n
	for cur != nil {
		for s := cur.NextSibling(); s != nil; s = s.NextSibling() {
			out = append(out, s)
			collectDescendants(s, &out)
		}
		cur = parentOrOwner(cur)
	}
	return out
}

/*
precedingAxis walks up from n, at each ancestor level emitting the
preceding siblings' subtrees, deepest-descendant-first, then reverses
so the whole sequence comes out in reverse document order.
*/
func precedingAxis(n dom.Node) []dom.Node {
	var out []dom.Node
	cur := n
	for cur != nil {
		for s := cur.PreviousSibling(); s != nil; s = s.PreviousSibling() {
			var sub []dom.Node
			sub = append(sub, s)
			collectDescendants(s, &sub)
			out = append(out, reverseNodes(sub)...)
		}
		cur = parentOrOwner(cur)
	}
	return out
}

func reverseNodes(nodes []dom.Node) []dom.Node {
	out := make([]dom.Node, len(nodes))
	for i, n := range nodes {
		out[len(nodes)-1-i] = n
	}
	return out
}

/*
namespaceNodes materialises the in-scope namespace nodes for an
element. Declarations are collected from the element's ancestor-or-self
chain, closest first, so a prefix re-bound lower in the tree shadows
the same prefix bound higher up, rather than surfacing only an
element's own direct declarations with inherited bindings dropped.
*/
func namespaceNodes(el dom.Node) []dom.Node {
	seen := map[string]bool{}
	var out []dom.Node

	emit := func(prefix, uri string) {
		if seen[prefix] {
			return
		}
		seen[prefix] = true
		if uri == "" {
			return // an empty-URI redeclaration undeclares the prefix
		}
		out = append(out, &dom.Namespace{NodePrefix: prefix, URI: uri, Element: el})
	}

	for cur := el; cur != nil; cur = cur.Parent() {
		if cur.Kind() != dom.ElementNode {
			continue
		}
		for _, a := range cur.Attributes() {
			name := a.Name()
			switch {
			case name == "xmlns":
				emit("", a.Value())
			case len(name) > 6 && name[:6] == "xmlns:":
				emit(name[6:], a.Value())
			}
		}
	}

	emit("xml", dom.XMLNamespaceURI)

	return out
}
