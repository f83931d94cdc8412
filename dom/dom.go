/*
 * Public Domain Software
 *
 * I (Matthias Ladkau) am the author of the source code in this file.
 * I have placed the source code in this file in the public domain.
 *
 * For further information see: http://creativecommons.org/publicdomain/zero/1.0/
 */

/*
Package dom defines the read-only, capability-based view of a host
document tree that the XPath core consumes. The core never mutates a
document and is generic over any tree that implements Node/Document -
domxml and domhtml are the two adaptors this module ships, but a
caller may plug in any other implementation.
*/
package dom

/*
NodeKind identifies the kind of a document node, including the
synthetic Namespace kind materialised only by the namespace:: axis.
*/
type NodeKind int

const (
	ElementNode NodeKind = iota + 1
	AttributeNode
	TextNode
	CDATANode
	ProcessingInstructionNode
	CommentNode
	DocumentNode
	DocumentTypeNode
	DocumentFragmentNode
	NamespaceNode
)

/*
Node is the capability surface the evaluator needs from a host tree
node. Attribute and Namespace nodes leave Parent nil and expose their
owner through OwnerElement instead, matching DOM semantics where
attributes are not children of their element.
*/
type Node interface {
	Kind() NodeKind

	// Name is the DOM nodeName: the qualified name for elements,
	// attributes and PIs ("target" for a PI), "#text"/"#comment"/
	// "#document" for the rest.
	Name() string

	// Value is the DOM nodeValue: text/CDATA/comment character data,
	// the attribute's value, the PI's data, or "" where DOM defines
	// no value.
	Value() string

	LocalName() string
	Prefix() string
	NamespaceURI() string

	Parent() Node
	FirstChild() Node
	NextSibling() Node
	PreviousSibling() Node

	OwnerDocument() Document

	// OwnerElement is only meaningful for Attribute and Namespace nodes.
	OwnerElement() Node

	// Attributes returns this element's attributes in document order.
	// Non-element nodes return nil.
	Attributes() []Node
}

/*
Document is the root of a host tree. GetElementByID is the only
capability the id() function needs beyond Node; ok is false when the
adaptor has no ID index, in which case eval falls back to a DFS.
*/
type Document interface {
	Node
	GetElementByID(id string) (Node, bool)
}

/*
DocumentPosition mirrors the bit flags of DOM 3's
compareDocumentPosition, reduced to the four cases the document-order
comparator needs.
*/
type DocumentPosition int

const (
	PositionDisconnected DocumentPosition = iota
	PositionPreceding                     // other precedes this node
	PositionFollowing                     // other follows this node
	PositionContains                      // other contains this node
	PositionContainedBy                   // other is contained by this node
)

/*
PositionComparer is an optional capability: a host DOM that can answer
document-order questions directly (e.g. a browser's native
compareDocumentPosition) should implement it so Compare can skip the
parent-walk fallback.
*/
type PositionComparer interface {
	CompareDocumentPosition(other Node) (DocumentPosition, bool)
}

/*
HTMLAware is an optional capability a Document may implement to report
that it is an HTML document, activating case-insensitive name tests
and allowAnyNamespaceForNoPrefix automatically instead of requiring
the caller to set them explicitly.
*/
type HTMLAware interface {
	IsHTML() bool
}

/*
Namespace is the synthetic node kind materialised by the namespace::
axis. It is never part of a host tree and is re-created for each
evaluation that needs it.
*/
type Namespace struct {
	NodePrefix string // the local name of the binding, "" for the default namespace
	URI        string
	Element    Node // the element this binding is in scope on
}

func (n *Namespace) Kind() NodeKind { return NamespaceNode }
func (n *Namespace) Name() string   { return n.NodePrefix }
func (n *Namespace) Value() string  { return n.URI }
func (n *Namespace) LocalName() string     { return n.NodePrefix }
func (n *Namespace) Prefix() string        { return "" }
func (n *Namespace) NamespaceURI() string  { return "" }
func (n *Namespace) Parent() Node          { return nil }
func (n *Namespace) FirstChild() Node      { return nil }
func (n *Namespace) NextSibling() Node     { return nil }
func (n *Namespace) PreviousSibling() Node { return nil }
func (n *Namespace) OwnerDocument() Document {
	if n.Element == nil {
		return nil
	}
	return n.Element.OwnerDocument()
}
func (n *Namespace) OwnerElement() Node { return n.Element }
func (n *Namespace) Attributes() []Node { return nil }

const (
	XMLNamespaceURI  = "http://www.w3.org/XML/1998/namespace"
	XMLNSNamespaceURI = "http://www.w3.org/2000/xmlns/"
)
