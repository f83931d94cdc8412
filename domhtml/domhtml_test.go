/*
 * Public Domain Software
 *
 * I (Matthias Ladkau) am the author of the source code in this file.
 * I have placed the source code in this file in the public domain.
 *
 * For further information see: http://creativecommons.org/publicdomain/zero/1.0/
 */

package domhtml

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krotik/xpath/dom"
)

const sampleHTML = `<html><head><title>t</title></head><body>
<div ID="main"><p>hello</p><p>world</p></div>
</body></html>`

// findDescendant walks the tree in document order and returns the
// first element whose LocalName matches local.
func findDescendant(n dom.Node, local string) dom.Node {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if c.Kind() == dom.ElementNode && c.LocalName() == local {
			return c
		}
		if found := findDescendant(c, local); found != nil {
			return found
		}
	}
	return nil
}

func TestParseRecoversHTML5TreeStructure(t *testing.T) {
	doc, err := Parse(strings.NewReader(sampleHTML))
	require.NoError(t, err)

	body := findDescendant(doc, "body")
	require.NotNil(t, body)

	div := findDescendant(body, "div")
	require.NotNil(t, div)
	assert.Equal(t, "div", div.LocalName())
}

func TestDocumentIsHTMLAware(t *testing.T) {
	doc, err := Parse(strings.NewReader(sampleHTML))
	require.NoError(t, err)

	htmlAware, ok := doc.(dom.HTMLAware)
	require.True(t, ok)
	assert.True(t, htmlAware.IsHTML())

	div := findDescendant(doc, "div")
	nodeAware, ok := div.(dom.HTMLAware)
	require.True(t, ok)
	assert.True(t, nodeAware.IsHTML())
}

func TestWrapElemReturnsStablePointerIdentity(t *testing.T) {
	doc, err := Parse(strings.NewReader(sampleHTML))
	require.NoError(t, err)

	div := findDescendant(doc, "div")
	first := div.FirstChild()
	second := div.FirstChild()
	assert.Same(t, first, second)

	// same underlying element reached via a different path must also
	// resolve to the same wrapper.
	body := findDescendant(doc, "body")
	divAgain := findDescendant(body, "div")
	assert.Same(t, div, divAgain)
}

func TestWrapAttrReturnsStablePointerIdentity(t *testing.T) {
	doc, err := Parse(strings.NewReader(sampleHTML))
	require.NoError(t, err)

	div := findDescendant(doc, "div")
	attrs1 := div.Attributes()
	attrs2 := div.Attributes()
	require.Len(t, attrs1, 1)
	require.Len(t, attrs2, 1)
	assert.Same(t, attrs1[0], attrs2[0])
}

func TestGetElementByIDIsCaseInsensitiveOnAttributeName(t *testing.T) {
	doc, err := Parse(strings.NewReader(sampleHTML))
	require.NoError(t, err)

	n, ok := doc.GetElementByID("main")
	require.True(t, ok)
	assert.Equal(t, "div", n.LocalName())
}

func TestCompareDocumentPositionOrderMapFastPath(t *testing.T) {
	doc, err := Parse(strings.NewReader(sampleHTML))
	require.NoError(t, err)

	div := findDescendant(doc, "div")
	first := findDescendant(div, "p")
	require.NotNil(t, first)
	var second dom.Node
	seen := false
	for c := div.FirstChild(); c != nil; c = c.NextSibling() {
		if c.Kind() != dom.ElementNode || c.LocalName() != "p" {
			continue
		}
		if !seen {
			seen = true
			continue
		}
		second = c
		break
	}
	require.NotNil(t, second)

	pc, ok := first.(dom.PositionComparer)
	require.True(t, ok)
	pos, ok := pc.CompareDocumentPosition(second)
	require.True(t, ok)
	assert.Equal(t, dom.PositionFollowing, pos)

	pc2 := second.(dom.PositionComparer)
	pos2, ok := pc2.CompareDocumentPosition(first)
	require.True(t, ok)
	assert.Equal(t, dom.PositionPreceding, pos2)
}

func TestCompareDocumentPositionFalseForAttributeNodes(t *testing.T) {
	doc, err := Parse(strings.NewReader(sampleHTML))
	require.NoError(t, err)

	div := findDescendant(doc, "div")
	attrs := div.Attributes()
	require.Len(t, attrs, 1)

	pc := attrs[0].(dom.PositionComparer)
	_, ok := pc.CompareDocumentPosition(div)
	assert.False(t, ok)
}
