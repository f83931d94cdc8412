/*
 * Public Domain Software
 *
 * I (Matthias Ladkau) am the author of the source code in this file.
 * I have placed the source code in this file in the public domain.
 *
 * For further information see: http://creativecommons.org/publicdomain/zero/1.0/
 */

/*
Package domxml is a default dom.Document adaptor that builds a
navigable, read-only tree from an encoding/xml token stream.
Element and attribute namespace resolution is handled by Go's own
xml.Decoder; this package's own job, in the idiom of a well-known
Exclusive-C14N implementation's internal stack, is tracking declared
prefixes so a nodeName can be rendered with the document's original
prefix text even after the decoder normalizes Name.Space to a URI.
*/
package domxml

import (
	"encoding/xml"
	"io"

	"github.com/krotik/xpath/dom"
)

type node struct {
	kind dom.NodeKind

	localName string
	prefix    string
	namespace string
	value     string

	parent       *node
	firstChild   *node
	lastChild    *node
	next         *node
	prev         *node
	attrs        []*node
	ownerElement *node
	doc          *document

	piTarget string

	start, end int // pre-order interval, assigned after parsing completes
}

func (n *node) Kind() dom.NodeKind { return n.kind }

func (n *node) Name() string {
	switch n.kind {
	case dom.ElementNode, dom.AttributeNode:
		if n.prefix != "" {
			return n.prefix + ":" + n.localName
		}
		return n.localName
	case dom.ProcessingInstructionNode:
		return n.piTarget
	case dom.TextNode:
		return "#text"
	case dom.CDATANode:
		return "#cdata-section"
	case dom.CommentNode:
		return "#comment"
	case dom.DocumentNode:
		return "#document"
	}
	return n.localName
}

func (n *node) Value() string {
	switch n.kind {
	case dom.TextNode, dom.CDATANode, dom.CommentNode, dom.AttributeNode:
		return n.value
	case dom.ProcessingInstructionNode:
		return n.value
	}
	return ""
}

func (n *node) LocalName() string      { return n.localName }
func (n *node) Prefix() string         { return n.prefix }
func (n *node) NamespaceURI() string   { return n.namespace }
func (n *node) Parent() dom.Node {
	if n.parent == nil {
		return nil
	}
	return n.parent
}
func (n *node) FirstChild() dom.Node {
	if n.firstChild == nil {
		return nil
	}
	return n.firstChild
}
func (n *node) NextSibling() dom.Node {
	if n.next == nil {
		return nil
	}
	return n.next
}
func (n *node) PreviousSibling() dom.Node {
	if n.prev == nil {
		return nil
	}
	return n.prev
}
func (n *node) OwnerDocument() dom.Document {
	if n.doc == nil {
		return nil
	}
	return n.doc
}
func (n *node) OwnerElement() dom.Node {
	if n.ownerElement == nil {
		return nil
	}
	return n.ownerElement
}
func (n *node) Attributes() []dom.Node {
	if len(n.attrs) == 0 {
		return nil
	}
	out := make([]dom.Node, len(n.attrs))
	for i, a := range n.attrs {
		out[i] = a
	}
	return out
}

/*
CompareDocumentPosition answers the document-order question directly
from the pre-order interval assigned in Parse, for
element/text/comment/PI/document nodes. Attribute and namespace nodes
have no interval of their own and report ok=false, falling back to the
parent-walk algorithm in dom.Compare.
*/
func (n *node) CompareDocumentPosition(other dom.Node) (dom.DocumentPosition, bool) {
	if n.kind == dom.AttributeNode || n.kind == dom.NamespaceNode {
		return dom.PositionDisconnected, false
	}
	ob, ok := other.(*node)
	if !ok || ob.kind == dom.AttributeNode || ob.kind == dom.NamespaceNode || ob.doc != n.doc {
		return dom.PositionDisconnected, false
	}

	switch {
	case ob == n:
		return dom.PositionDisconnected, false
	case ob.start <= n.start && n.end <= ob.end:
		return dom.PositionContains, true
	case n.start <= ob.start && ob.end <= n.end:
		return dom.PositionContainedBy, true
	case ob.start < n.start:
		return dom.PositionPreceding, true
	default:
		return dom.PositionFollowing, true
	}
}

/*
document is the root dom.Document: an implicit node of kind
DocumentNode wrapping the parsed root element, with an id index built
during parsing for GetElementByID.
*/
type document struct {
	node
	ids map[string]*node
}

func (d *document) OwnerDocument() dom.Document { return d }

func (d *document) GetElementByID(id string) (dom.Node, bool) {
	n, ok := d.ids[id]
	if !ok {
		return nil, false
	}
	return n, true
}

/*
Parse reads a well-formed XML document from r and returns its
dom.Document. Tracking of open-element namespace scopes uses nsStack,
adapted from the reference c14n implementation's internal/stack.
*/
func Parse(r io.Reader) (dom.Document, error) {
	dec := xml.NewDecoder(r)

	doc := &document{ids: map[string]*node{}}
	doc.node = node{kind: dom.DocumentNode, doc: doc}

	var scopes nsStack
	var cur *node = &doc.node
	counter := 0

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			bindings := map[string]string{}
			for _, a := range t.Attr {
				if a.Name.Space == "" && a.Name.Local == "xmlns" {
					bindings[""] = a.Value
				} else if a.Name.Space == "xmlns" {
					bindings[a.Name.Local] = a.Value
				}
			}
			scopes.push(bindings)

			el := &node{
				kind:      dom.ElementNode,
				localName: t.Name.Local,
				namespace: t.Name.Space,
				doc:       doc,
			}
			if el.namespace != "" {
				if p, ok := scopes.reversePrefix(el.namespace); ok {
					el.prefix = p
				}
			}

			for _, a := range t.Attr {
				if (a.Name.Space == "" && a.Name.Local == "xmlns") || a.Name.Space == "xmlns" {
					// Namespace declarations stay visible as xmlns / xmlns:p
					// attributes so namespace resolution can find them.
					decl := &node{
						kind:         dom.AttributeNode,
						localName:    a.Name.Local,
						namespace:    dom.XMLNSNamespaceURI,
						value:        a.Value,
						doc:          doc,
						ownerElement: el,
					}
					if a.Name.Space == "xmlns" {
						decl.prefix = "xmlns"
					}
					el.attrs = append(el.attrs, decl)
					continue
				}
				attr := &node{
					kind:         dom.AttributeNode,
					localName:    a.Name.Local,
					namespace:    a.Name.Space,
					value:        a.Value,
					doc:          doc,
					ownerElement: el,
				}
				if attr.namespace != "" {
					if p, ok := scopes.reversePrefix(attr.namespace); ok {
						attr.prefix = p
					}
				}
				el.attrs = append(el.attrs, attr)

				if a.Name.Local == "id" {
					doc.ids[a.Value] = el
				}
			}

			appendChild(cur, el)
			cur = el

		case xml.EndElement:
			scopes.pop()
			cur = cur.parent

		case xml.CharData:
			appendChild(cur, &node{kind: dom.TextNode, value: string(t), doc: doc})

		case xml.Comment:
			appendChild(cur, &node{kind: dom.CommentNode, value: string(t), doc: doc})

		case xml.ProcInst:
			appendChild(cur, &node{kind: dom.ProcessingInstructionNode, piTarget: t.Target, value: string(t.Inst), doc: doc})
		}
	}

	assignOrder(&doc.node, &counter)

	return doc, nil
}

func appendChild(parent, child *node) {
	child.parent = parent
	if parent.lastChild == nil {
		parent.firstChild = child
		parent.lastChild = child
	} else {
		parent.lastChild.next = child
		child.prev = parent.lastChild
		parent.lastChild = child
	}
}

func assignOrder(n *node, counter *int) {
	n.start = *counter
	*counter++
	for c := n.firstChild; c != nil; c = c.next {
		assignOrder(c, counter)
	}
	n.end = *counter
	*counter++
}
