/*
 * Public Domain Software
 *
 * I (Matthias Ladkau) am the author of the source code in this file.
 * I have placed the source code in this file in the public domain.
 *
 * For further information see: http://creativecommons.org/publicdomain/zero/1.0/
 */

package dom

import "fmt"

/*
Compare orders two distinct nodes by document order. It returns -1, 0,
or 1. When the host DOM implements PositionComparer
its answer is honoured directly (step 1); otherwise Compare climbs
both nodes' parent-or-owner-element chains to a common ancestor and
applies the attribute/namespace/child-list ordering rules (steps 2-3).
If the nodes turn out to be disconnected, a stable (but otherwise
arbitrary) result is returned rather than failing, since a node-set's
internal AVL index needs a total order to stay balanced.
*/
func Compare(a, b Node) int {
	if a == b {
		return 0
	}

	if pc, ok := a.(PositionComparer); ok {
		if pos, ok2 := pc.CompareDocumentPosition(b); ok2 {
			switch pos {
			case PositionPreceding, PositionContains:
				return 1
			case PositionFollowing, PositionContainedBy:
				return -1
			}
		}
	}

	chainA := ancestorsInclusive(a)
	chainB := ancestorsInclusive(b)

	if len(chainA) == 0 || len(chainB) == 0 || chainA[0] != chainB[0] {
		return stableFallback(a, b)
	}

	common := 0
	for common < len(chainA) && common < len(chainB) && chainA[common] == chainB[common] {
		common++
	}

	if common == len(chainA) {
		return -1 // a is an ancestor of b
	}
	if common == len(chainB) {
		return 1 // b is an ancestor of a
	}

	parent := chainA[common-1]
	siblingA := chainA[common]
	siblingB := chainB[common]

	if siblingOrderPrecedes(parent, siblingA, siblingB) {
		return -1
	}
	return 1
}

func parentOrOwner(n Node) Node {
	if n.Kind() == AttributeNode || n.Kind() == NamespaceNode {
		return n.OwnerElement()
	}
	return n.Parent()
}

/*
ancestorsInclusive returns [root, ..., n], using parentOrOwner so that
attribute and namespace nodes climb through their owner element.
*/
func ancestorsInclusive(n Node) []Node {
	var chain []Node
	for cur := n; cur != nil; cur = parentOrOwner(cur) {
		chain = append(chain, cur)
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

func isAttributeLike(n Node) bool {
	return n.Kind() == AttributeNode || n.Kind() == NamespaceNode
}

/*
siblingOrderPrecedes orders two nodes sharing a parent: attribute-like
nodes precede regular children, namespace nodes precede attribute
nodes (with the xml namespace node first among namespaces), and
everything else is ordered by position in the parent's attribute or
child list.
*/
func siblingOrderPrecedes(parent, x, y Node) bool {
	xAttrLike, yAttrLike := isAttributeLike(x), isAttributeLike(y)

	if xAttrLike != yAttrLike {
		return xAttrLike
	}

	if xAttrLike {
		xNS, yNS := x.Kind() == NamespaceNode, y.Kind() == NamespaceNode
		if xNS != yNS {
			return xNS
		}
		if xNS {
			xXML, yXML := x.Value() == XMLNamespaceURI, y.Value() == XMLNamespaceURI
			if xXML != yXML {
				return xXML
			}
			return x.Name() < y.Name()
		}
		return indexOfAttr(parent, x) < indexOfAttr(parent, y)
	}

	return indexOfChild(parent, x) < indexOfChild(parent, y)
}

func indexOfAttr(parent, target Node) int {
	for i, a := range parent.Attributes() {
		if a == target {
			return i
		}
	}
	return -1
}

func indexOfChild(parent, target Node) int {
	i := 0
	for c := parent.FirstChild(); c != nil; c = c.NextSibling() {
		if c == target {
			return i
		}
		i++
	}
	return -1
}

func stableFallback(a, b Node) int {
	pa, pb := fmt.Sprintf("%p", a), fmt.Sprintf("%p", b)
	if pa < pb {
		return -1
	}
	if pa > pb {
		return 1
	}
	return 0
}
