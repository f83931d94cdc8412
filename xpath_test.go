/*
 * Public Domain Software
 *
 * I (Matthias Ladkau) am the author of the source code in this file.
 * I have placed the source code in this file in the public domain.
 *
 * For further information see: http://creativecommons.org/publicdomain/zero/1.0/
 */

package xpath

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krotik/xpath/dom"
	"github.com/krotik/xpath/domhtml"
	"github.com/krotik/xpath/domxml"
	"github.com/krotik/xpath/eval"
)

const plainXML = `<root><a id="a1"><b>hello</b></a><c/></root>`

const nsXML = `<root xmlns:p="http://example.com/p"><p:item>x</p:item></root>`

func parseXML(t *testing.T, src string) dom.Document {
	t.Helper()
	doc, err := domxml.Parse(strings.NewReader(src))
	require.NoError(t, err)
	return doc
}

func TestParseAndSelect(t *testing.T) {
	doc := parseXML(t, plainXML)

	e, err := Parse("/root/a/b")
	require.NoError(t, err)

	nodes, err := e.Select(doc)
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Equal(t, "b", nodes[0].LocalName())
}

func TestSelect1ReturnsFirstNodeInDocumentOrder(t *testing.T) {
	doc := parseXML(t, plainXML)

	e, err := Parse("/root/*")
	require.NoError(t, err)

	n, err := e.Select1(doc)
	require.NoError(t, err)
	require.NotNil(t, n)
	assert.Equal(t, "a", n.LocalName())
}

func TestSelect1EmptyResultReturnsNil(t *testing.T) {
	doc := parseXML(t, plainXML)

	e, err := Parse("/root/nonexistent")
	require.NoError(t, err)

	n, err := e.Select1(doc)
	require.NoError(t, err)
	assert.Nil(t, n)
}

func TestEvaluateReturnsRawValue(t *testing.T) {
	doc := parseXML(t, plainXML)

	e, err := Parse("count(/root/*)")
	require.NoError(t, err)

	v, err := e.Evaluate(doc)
	require.NoError(t, err)
	assert.Equal(t, 2.0, v.AsNumber())
}

func TestWithNamespacesOverridesDocumentPrefixes(t *testing.T) {
	doc := parseXML(t, nsXML)

	e, err := Parse("/root/q:item", WithNamespaces(map[string]string{
		"q": "http://example.com/p",
	}))
	require.NoError(t, err)

	nodes, err := e.Select(doc)
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Equal(t, "item", nodes[0].LocalName())
}

func TestDefaultNamespaceResolverUsesDocumentDeclarations(t *testing.T) {
	doc := parseXML(t, nsXML)

	e, err := Parse("/root/p:item")
	require.NoError(t, err)

	nodes, err := e.Select(doc)
	require.NoError(t, err)
	require.Len(t, nodes, 1)
}

func TestWithVariablesCoercesHostValues(t *testing.T) {
	doc := parseXML(t, plainXML)

	e, err := Parse("$count + 1", WithVariables(map[string]interface{}{
		"count": 41,
	}))
	require.NoError(t, err)

	v, err := e.Evaluate(doc)
	require.NoError(t, err)
	assert.Equal(t, 42.0, v.AsNumber())
}

func TestWithVariablesAcceptsNodeSlice(t *testing.T) {
	doc := parseXML(t, plainXML)

	root := doc.FirstChild()
	a := root.FirstChild()

	e, err := Parse("count($nodes)", WithVariables(map[string]interface{}{
		"nodes": []dom.Node{a},
	}))
	require.NoError(t, err)

	v, err := e.Evaluate(doc)
	require.NoError(t, err)
	assert.Equal(t, 1.0, v.AsNumber())
}

func TestWithFunctionsRegistersExtension(t *testing.T) {
	doc := parseXML(t, plainXML)

	shout := func(ctx *eval.Context, args []eval.Value) (eval.Value, error) {
		return eval.String(strings.ToUpper(args[0].AsString())), nil
	}

	e, err := Parse("ext:shout('hi')",
		WithNamespaces(map[string]string{"ext": "urn:ext"}),
		WithFunctions(map[string]eval.Function{
			"ext:shout": shout,
		}))
	require.NoError(t, err)

	v, err := e.Evaluate(doc)
	require.NoError(t, err)
	assert.Equal(t, "HI", v.AsString())
}

func TestHTMLOptionActivatesCaseInsensitiveMatching(t *testing.T) {
	doc, err := domhtml.Parse(strings.NewReader(`<html><body><DIV>x</DIV></body></html>`))
	require.NoError(t, err)

	e, err := Parse("//div", HTML())
	require.NoError(t, err)

	nodes, err := e.Select(doc)
	require.NoError(t, err)
	require.Len(t, nodes, 1)
}

func TestHTMLAutoDetectionViaOwnerDocument(t *testing.T) {
	doc, err := domhtml.Parse(strings.NewReader(`<html><body><DIV>x</DIV></body></html>`))
	require.NoError(t, err)

	// no HTML() option passed - auto-detected via dom.HTMLAware on the
	// node's owner document.
	e, err := Parse("//div")
	require.NoError(t, err)

	nodes, err := e.Select(doc)
	require.NoError(t, err)
	require.Len(t, nodes, 1)
}

func TestValidateReportsUndeclaredVariable(t *testing.T) {
	e, err := Parse("$missing + 1")
	require.NoError(t, err)

	err = e.Validate()
	assert.Error(t, err)
}

func TestValidateReportsAllUndeclaredVariablesNotJustFirst(t *testing.T) {
	e, err := Parse("$a + $b")
	require.NoError(t, err)

	err = e.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "a")
	assert.Contains(t, err.Error(), "b")
}

func TestValidatePassesWithDeclaredVariable(t *testing.T) {
	e, err := Parse("$count + 1", WithVariables(map[string]interface{}{
		"count": 1,
	}))
	require.NoError(t, err)

	assert.NoError(t, e.Validate())
}

func TestValidateWalksIntoPredicates(t *testing.T) {
	e, err := Parse("/root/a[$missing]")
	require.NoError(t, err)

	assert.Error(t, e.Validate())
}
