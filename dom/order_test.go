/*
 * Public Domain Software
 *
 * I (Matthias Ladkau) am the author of the source code in this file.
 * I have placed the source code in this file in the public domain.
 *
 * For further information see: http://creativecommons.org/publicdomain/zero/1.0/
 */

package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

/*
fakeNode is a minimal dom.Node test double with no PositionComparer, so
Compare's parent-walk fallback (steps 2-3) is exercised directly rather
than any host adaptor's fast path.
*/
type fakeNode struct {
	kind     NodeKind
	name     string
	value    string
	parent   *fakeNode
	children []*fakeNode
	attrs    []*fakeNode
	owner    *fakeNode
}

func (n *fakeNode) Kind() NodeKind { return n.kind }
func (n *fakeNode) Name() string   { return n.name }
func (n *fakeNode) Value() string  { return n.value }
func (n *fakeNode) LocalName() string    { return n.name }
func (n *fakeNode) Prefix() string       { return "" }
func (n *fakeNode) NamespaceURI() string { return "" }

func (n *fakeNode) Parent() Node {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

func (n *fakeNode) FirstChild() Node {
	if len(n.children) == 0 {
		return nil
	}
	return n.children[0]
}

func (n *fakeNode) NextSibling() Node {
	if n.parent == nil {
		return nil
	}
	for i, c := range n.parent.children {
		if c == n && i+1 < len(n.parent.children) {
			return n.parent.children[i+1]
		}
	}
	return nil
}

func (n *fakeNode) PreviousSibling() Node {
	if n.parent == nil {
		return nil
	}
	for i, c := range n.parent.children {
		if c == n && i > 0 {
			return n.parent.children[i-1]
		}
	}
	return nil
}

func (n *fakeNode) OwnerDocument() Document { return nil }

func (n *fakeNode) OwnerElement() Node {
	if n.owner == nil {
		return nil
	}
	return n.owner
}

func (n *fakeNode) Attributes() []Node {
	out := make([]Node, len(n.attrs))
	for i, a := range n.attrs {
		out[i] = a
	}
	return out
}

func addChild(parent, child *fakeNode) {
	child.parent = parent
	parent.children = append(parent.children, child)
}

// buildTree constructs:
//
//	root
//	  a (attr="x")
//	    a1
//	    a2
//	  b
func buildTree() (root, a, a1, a2, b, attrX *fakeNode) {
	root = &fakeNode{kind: ElementNode, name: "root"}
	a = &fakeNode{kind: ElementNode, name: "a"}
	a1 = &fakeNode{kind: ElementNode, name: "a1"}
	a2 = &fakeNode{kind: ElementNode, name: "a2"}
	b = &fakeNode{kind: ElementNode, name: "b"}
	attrX = &fakeNode{kind: AttributeNode, name: "x", owner: a}

	addChild(root, a)
	addChild(root, b)
	addChild(a, a1)
	addChild(a, a2)
	a.attrs = []*fakeNode{attrX}

	return
}

func TestCompareSameNodeIsZero(t *testing.T) {
	root, _, _, _, _, _ := buildTree()
	assert.Equal(t, 0, Compare(root, root))
}

func TestCompareSiblingOrder(t *testing.T) {
	root, a, _, _, b, _ := buildTree()
	_ = root
	assert.Equal(t, -1, Compare(a, b))
	assert.Equal(t, 1, Compare(b, a))
}

func TestCompareAncestorPrecedesDescendant(t *testing.T) {
	_, a, a1, _, _, _ := buildTree()
	assert.Equal(t, -1, Compare(a, a1))
	assert.Equal(t, 1, Compare(a1, a))
}

func TestCompareNephewOrder(t *testing.T) {
	_, _, a1, a2, _, _ := buildTree()
	assert.Equal(t, -1, Compare(a1, a2))
}

func TestCompareAttributePrecedesChildren(t *testing.T) {
	_, a, a1, _, _, attrX := buildTree()
	_ = a
	assert.Equal(t, -1, Compare(attrX, a1))
	assert.Equal(t, 1, Compare(a1, attrX))
}

func TestCompareDisconnectedNodesIsStableButDefined(t *testing.T) {
	x := &fakeNode{kind: ElementNode, name: "x"}
	y := &fakeNode{kind: ElementNode, name: "y"}
	first := Compare(x, y)
	second := Compare(x, y)
	assert.Equal(t, first, second)
	assert.NotEqual(t, 0, first)
}
