/*
 * Public Domain Software
 *
 * I (Matthias Ladkau) am the author of the source code in this file.
 * I have placed the source code in this file in the public domain.
 *
 * For further information see: http://creativecommons.org/publicdomain/zero/1.0/
 */

/*
Package domhtml is the second default dom.Document adaptor: it wraps
golang.org/x/net/html's parse tree, which already implements the HTML5
tree-construction algorithm (tag soup recovery, implied end tags, and
so on), and marks itself dom.HTMLAware so the evaluator activates
case-insensitive name tests and allowAnyNamespaceForNoPrefix
automatically, the way a browser's HTML document behaves.

Every *html.Node and *html.Attribute is wrapped at most once per
document (document.elems / document.attrs), since the evaluator
compares dom.Node values by identity (node-set membership, the
document-order fallback's parent-walk) - a fresh wrapper on every
traversal call would silently break that.
*/
package domhtml

import (
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/krotik/xpath/dom"
)

type node struct {
	h    *html.Node
	doc  *document
	attr *html.Attribute // non-nil for a synthetic attribute node
	from *node           // owner element, for an attribute node
}

func (doc *document) wrapElem(h *html.Node) *node {
	if h == nil {
		return nil
	}
	if n, ok := doc.elems[h]; ok {
		return n
	}
	n := &node{h: h, doc: doc}
	doc.elems[h] = n
	return n
}

func (doc *document) wrapAttr(a *html.Attribute, owner *node) *node {
	if n, ok := doc.attrs[a]; ok {
		return n
	}
	n := &node{attr: a, doc: doc, from: owner}
	doc.attrs[a] = n
	return n
}

func (n *node) Kind() dom.NodeKind {
	if n.attr != nil {
		return dom.AttributeNode
	}
	switch n.h.Type {
	case html.TextNode:
		return dom.TextNode
	case html.CommentNode:
		return dom.CommentNode
	case html.DoctypeNode:
		return dom.DocumentTypeNode
	case html.DocumentNode:
		return dom.DocumentNode
	}
	return dom.ElementNode
}

func (n *node) Name() string {
	if n.attr != nil {
		return n.attr.Key
	}
	switch n.h.Type {
	case html.TextNode:
		return "#text"
	case html.CommentNode:
		return "#comment"
	case html.DocumentNode:
		return "#document"
	}
	return n.h.Data
}

func (n *node) Value() string {
	if n.attr != nil {
		return n.attr.Val
	}
	if n.h.Type == html.TextNode || n.h.Type == html.CommentNode {
		return n.h.Data
	}
	return ""
}

func (n *node) LocalName() string {
	if n.attr != nil {
		return n.attr.Key
	}
	return n.h.Data
}

func (n *node) Prefix() string { return "" }

func (n *node) NamespaceURI() string {
	if n.attr != nil {
		return n.attr.Namespace
	}
	return n.h.Namespace
}

func (n *node) Parent() dom.Node {
	if n.attr != nil {
		return nil
	}
	return wrapOrNil(n.doc, n.h.Parent)
}

func (n *node) FirstChild() dom.Node {
	if n.attr != nil {
		return nil
	}
	return wrapOrNil(n.doc, n.h.FirstChild)
}

func (n *node) NextSibling() dom.Node {
	if n.attr != nil {
		return nil
	}
	return wrapOrNil(n.doc, n.h.NextSibling)
}

func (n *node) PreviousSibling() dom.Node {
	if n.attr != nil {
		return nil
	}
	return wrapOrNil(n.doc, n.h.PrevSibling)
}

func wrapOrNil(doc *document, h *html.Node) dom.Node {
	if h == nil {
		return nil
	}
	return doc.wrapElem(h)
}

func (n *node) OwnerDocument() dom.Document { return n.doc }

func (n *node) OwnerElement() dom.Node {
	if n.attr == nil {
		return nil
	}
	return n.from
}

func (n *node) Attributes() []dom.Node {
	if n.attr != nil || n.h.Type != html.ElementNode || len(n.h.Attr) == 0 {
		return nil
	}
	out := make([]dom.Node, len(n.h.Attr))
	for i := range n.h.Attr {
		out[i] = n.doc.wrapAttr(&n.h.Attr[i], n)
	}
	return out
}

/*
CompareDocumentPosition mirrors domxml's pre-order interval fast path,
using the document's order index rather than per-node fields since
wrappers are shared but the interval is keyed by the underlying
*html.Node; attribute nodes defer to dom.Compare's parent-walk
fallback.
*/
func (n *node) CompareDocumentPosition(other dom.Node) (dom.DocumentPosition, bool) {
	if n.attr != nil {
		return dom.PositionDisconnected, false
	}
	ob, ok := other.(*node)
	if !ok || ob.attr != nil || ob.doc != n.doc {
		return dom.PositionDisconnected, false
	}
	if ob.h == n.h {
		return dom.PositionDisconnected, false
	}

	nIv, nOk := n.doc.order[n.h]
	obIv, obOk := n.doc.order[ob.h]
	if !nOk || !obOk {
		return dom.PositionDisconnected, false
	}

	switch {
	case obIv[0] <= nIv[0] && nIv[1] <= obIv[1]:
		return dom.PositionContains, true
	case nIv[0] <= obIv[0] && obIv[1] <= nIv[1]:
		return dom.PositionContainedBy, true
	case obIv[0] < nIv[0]:
		return dom.PositionPreceding, true
	default:
		return dom.PositionFollowing, true
	}
}

/*
IsHTML marks this document as HTML (dom.HTMLAware), activating
case-insensitive name tests and allowAnyNamespaceForNoPrefix.
*/
func (n *node) IsHTML() bool { return true }

type document struct {
	node
	ids   map[string]*node
	elems map[*html.Node]*node
	attrs map[*html.Attribute]*node
	order map[*html.Node][2]int
}

func (d *document) OwnerDocument() dom.Document { return d }
func (d *document) IsHTML() bool                { return true }

func (d *document) GetElementByID(id string) (dom.Node, bool) {
	n, ok := d.ids[id]
	if !ok {
		return nil, false
	}
	return n, true
}

/*
Parse parses r as HTML5 and returns its dom.Document.
*/
func Parse(r io.Reader) (dom.Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	doc := &document{
		ids:   map[string]*node{},
		elems: map[*html.Node]*node{},
		attrs: map[*html.Attribute]*node{},
		order: map[*html.Node][2]int{},
	}
	doc.node = node{h: root, doc: doc}
	doc.elems[root] = &doc.node

	counter := 0
	assignOrder(root, doc, &counter)

	return doc, nil
}

func assignOrder(h *html.Node, doc *document, counter *int) {
	start := *counter
	*counter++

	if h.Type == html.ElementNode {
		for i := range h.Attr {
			if strings.EqualFold(h.Attr[i].Key, "id") {
				doc.ids[h.Attr[i].Val] = doc.wrapElem(h)
			}
		}
	}

	for c := h.FirstChild; c != nil; c = c.NextSibling {
		assignOrder(c, doc, counter)
	}

	end := *counter
	*counter++

	doc.order[h] = [2]int{start, end}
}
