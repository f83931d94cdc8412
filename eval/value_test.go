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
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krotik/xpath/nodeset"
)

func TestValueAsStringCoercions(t *testing.T) {
	assert.Equal(t, "hi", String("hi").AsString())
	assert.Equal(t, "true", Boolean(true).AsString())
	assert.Equal(t, "false", Boolean(false).AsString())
	assert.Equal(t, "1", Number(1).AsString())
	assert.Equal(t, "1.5", Number(1.5).AsString())
	assert.Equal(t, "-1.5", Number(-1.5).AsString())
	assert.Equal(t, "NaN", Number(math.NaN()).AsString())
	assert.Equal(t, "Infinity", Number(math.Inf(1)).AsString())
	assert.Equal(t, "-Infinity", Number(math.Inf(-1)).AsString())
	assert.Equal(t, "0", Number(0).AsString())
}

func TestNumberToStringExpandsScientificNotation(t *testing.T) {
	assert.Equal(t, "100000000000", Number(1e11).AsString())
	assert.Equal(t, "0.0000001", Number(1e-7).AsString())
	assert.Equal(t, "123", Number(123).AsString())
	assert.Equal(t, "123.456", Number(123.456).AsString())
}

func TestValueAsNumberCoercions(t *testing.T) {
	assert.Equal(t, 1.0, Boolean(true).AsNumber())
	assert.Equal(t, 0.0, Boolean(false).AsNumber())
	assert.Equal(t, 42.0, String("42").AsNumber())
	assert.Equal(t, -3.5, String(" -3.5 ").AsNumber())
	assert.True(t, math.IsNaN(String("abc").AsNumber()))
	assert.True(t, math.IsNaN(String("1e10").AsNumber()))
}

func TestValueAsBooleanCoercions(t *testing.T) {
	assert.True(t, Number(1).AsBoolean())
	assert.False(t, Number(0).AsBoolean())
	assert.False(t, Number(math.NaN()).AsBoolean())
	assert.True(t, String("x").AsBoolean())
	assert.False(t, String("").AsBoolean())

	empty := NodeSetValue(nodeset.New())
	assert.False(t, empty.AsBoolean())
}

func TestNodeSetAccessorTypeErrorOnNonNodeSet(t *testing.T) {
	_, err := String("x").NodeSet()
	require.Error(t, err)
	terr, ok := err.(*TypeError)
	require.True(t, ok)
	assert.Equal(t, 52, terr.Code())
}

func TestNodeSetValueNilBecomesEmptySet(t *testing.T) {
	v := NodeSetValue(nil)
	ns, err := v.NodeSet()
	require.NoError(t, err)
	assert.Equal(t, 0, ns.Len())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "string", KindString.String())
	assert.Equal(t, "number", KindNumber.String())
	assert.Equal(t, "boolean", KindBoolean.String())
	assert.Equal(t, "node-set", KindNodeSet.String())
}
