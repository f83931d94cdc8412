/*
 * Public Domain Software
 *
 * I (Matthias Ladkau) am the author of the source code in this file.
 * I have placed the source code in this file in the public domain.
 *
 * For further information see: http://creativecommons.org/publicdomain/zero/1.0/
 */

package domxml

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krotik/xpath/dom"
)

const sampleXML = `<?xml version="1.0"?>
<root xmlns:p="http://example.com/p">
  <p:a id="a1">hello <!--a comment--></p:a>
  <b/>
</root>`

// firstElement returns n's first ElementNode child, skipping any
// leading ProcInst the XML declaration surfaces as (encoding/xml
// reports "<?xml version=...?>" as an ordinary xml.ProcInst token).
func firstElement(n dom.Node) dom.Node {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if c.Kind() == dom.ElementNode {
			return c
		}
	}
	return nil
}

func TestParseBuildsNavigableTree(t *testing.T) {
	doc, err := Parse(strings.NewReader(sampleXML))
	require.NoError(t, err)

	root := firstElement(doc)
	require.NotNil(t, root)
	assert.Equal(t, "root", root.LocalName())
	assert.Equal(t, dom.ElementNode, root.Kind())
}

func TestParsePreservesPrefixViaReverseLookup(t *testing.T) {
	doc, err := Parse(strings.NewReader(sampleXML))
	require.NoError(t, err)

	root := firstElement(doc)
	a := firstElement(root)
	require.NotNil(t, a)
	assert.Equal(t, "a", a.LocalName())
	assert.Equal(t, "p", a.Prefix())
	assert.Equal(t, "http://example.com/p", a.NamespaceURI())
	assert.Equal(t, "p:a", a.Name())
}

func TestParseIndexesIDAttribute(t *testing.T) {
	doc, err := Parse(strings.NewReader(sampleXML))
	require.NoError(t, err)

	n, ok := doc.GetElementByID("a1")
	require.True(t, ok)
	assert.Equal(t, "a", n.LocalName())
}

func TestNodeIdentityIsStableAcrossTraversals(t *testing.T) {
	doc, err := Parse(strings.NewReader(sampleXML))
	require.NoError(t, err)

	root := firstElement(doc)
	first := root.FirstChild()
	second := root.FirstChild()
	assert.Same(t, first, second)
}

func TestCompareDocumentPositionFastPath(t *testing.T) {
	doc, err := Parse(strings.NewReader(sampleXML))
	require.NoError(t, err)

	root := firstElement(doc)
	a := firstElement(root)
	require.NotNil(t, a)

	var second dom.Node
	seenA := false
	for c := root.FirstChild(); c != nil; c = c.NextSibling() {
		if c.Kind() != dom.ElementNode {
			continue
		}
		if !seenA {
			seenA = true
			continue
		}
		second = c
		break
	}
	require.NotNil(t, second)

	pc, ok := a.(dom.PositionComparer)
	require.True(t, ok)
	pos, ok := pc.CompareDocumentPosition(second)
	require.True(t, ok)
	assert.Equal(t, dom.PositionFollowing, pos)
}

func TestCompareDocumentPositionFalseForAttributes(t *testing.T) {
	doc, err := Parse(strings.NewReader(sampleXML))
	require.NoError(t, err)

	root := firstElement(doc)
	a := firstElement(root)
	attrs := a.Attributes()
	require.Len(t, attrs, 1)

	pc := attrs[0].(dom.PositionComparer)
	_, ok := pc.CompareDocumentPosition(a)
	assert.False(t, ok)
}
