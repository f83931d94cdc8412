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
	"strings"

	"github.com/krotik/xpath/dom"
	"github.com/krotik/xpath/nodeset"
)

/*
coreFunctions is the built-in function library, keyed the same way a
caller-supplied FunctionResolver is: "{uri}local" with an empty uri
for the unprefixed core library.
*/
var coreFunctions = MapFunctionResolver{
	registryKey("", "last"):                fnLast,
	registryKey("", "position"):             fnPosition,
	registryKey("", "count"):                fnCount,
	registryKey("", "id"):                   fnID,
	registryKey("", "local-name"):           fnLocalName,
	registryKey("", "namespace-uri"):        fnNamespaceURI,
	registryKey("", "name"):                 fnName,
	registryKey("", "string"):               fnString,
	registryKey("", "concat"):                fnConcat,
	registryKey("", "starts-with"):          fnStartsWith,
	registryKey("", "contains"):              fnContains,
	registryKey("", "substring-before"):     fnSubstringBefore,
	registryKey("", "substring-after"):      fnSubstringAfter,
	registryKey("", "substring"):            fnSubstring,
	registryKey("", "string-length"):        fnStringLength,
	registryKey("", "normalize-space"):      fnNormalizeSpace,
	registryKey("", "translate"):            fnTranslate,
	registryKey("", "boolean"):              fnBoolean,
	registryKey("", "not"):                  fnNot,
	registryKey("", "true"):                 fnTrue,
	registryKey("", "false"):                fnFalse,
	registryKey("", "lang"):                 fnLang,
	registryKey("", "number"):               fnNumber,
	registryKey("", "sum"):                  fnSum,
	registryKey("", "floor"):                fnFloor,
	registryKey("", "ceiling"):               fnCeiling,
	registryKey("", "round"):                fnRound,
}

func arity(name string, args []Value, min, max int) error {
	if len(args) < min || (max >= 0 && len(args) > max) {
		return evalErrorf("%s() takes between %d and %d arguments, got %d", name, min, max, len(args))
	}
	return nil
}

// Node-set functions
// ===================

func fnLast(ctx *Context, args []Value) (Value, error) {
	if err := arity("last", args, 0, 0); err != nil {
		return Value{}, err
	}
	return Number(float64(ctx.Size)), nil
}

func fnPosition(ctx *Context, args []Value) (Value, error) {
	if err := arity("position", args, 0, 0); err != nil {
		return Value{}, err
	}
	return Number(float64(ctx.Position)), nil
}

func fnCount(ctx *Context, args []Value) (Value, error) {
	if err := arity("count", args, 1, 1); err != nil {
		return Value{}, err
	}
	ns, err := args[0].NodeSet()
	if err != nil {
		return Value{}, err
	}
	return Number(float64(ns.Len())), nil
}

func fnID(ctx *Context, args []Value) (Value, error) {
	if err := arity("id", args, 1, 1); err != nil {
		return Value{}, err
	}

	var ids []string
	if args[0].Kind() == KindNodeSet {
		ns, _ := args[0].NodeSet()
		for _, n := range ns.Sorted() {
			ids = append(ids, strings.Fields(StringValueOf(n))...)
		}
	} else {
		ids = strings.Fields(args[0].AsString())
	}

	doc := ctx.ContextNode.OwnerDocument()
	if doc == nil {
		return NodeSetValue(nodeset.New()), nil
	}

	out := nodeset.New()
	for _, id := range ids {
		if n, found := doc.GetElementByID(id); found {
			out.Add(n)
			continue
		}
		if n := findByAttrDFS(doc, id); n != nil {
			out.Add(n)
		}
	}
	return NodeSetValue(out), nil
}

/*
findByAttrDFS is the fallback used for adaptors whose
Document.GetElementByID reports no index: a plain depth-first scan for
an "id" attribute with the matching value.
*/
func findByAttrDFS(n dom.Node, id string) dom.Node {
	if n.Kind() == dom.ElementNode {
		for _, a := range n.Attributes() {
			if a.LocalName() == "id" && a.Value() == id {
				return n
			}
		}
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if found := findByAttrDFS(c, id); found != nil {
			return found
		}
	}
	return nil
}

func contextFirstNode(ctx *Context, args []Value, fnName string) (dom.Node, error) {
	if len(args) == 0 {
		return ctx.ContextNode, nil
	}
	if err := arity(fnName, args, 1, 1); err != nil {
		return nil, err
	}
	ns, err := args[0].NodeSet()
	if err != nil {
		return nil, err
	}
	return ns.First(), nil
}

func fnLocalName(ctx *Context, args []Value) (Value, error) {
	n, err := contextFirstNode(ctx, args, "local-name")
	if err != nil {
		return Value{}, err
	}
	if n == nil {
		return String(""), nil
	}
	return String(n.LocalName()), nil
}

func fnNamespaceURI(ctx *Context, args []Value) (Value, error) {
	n, err := contextFirstNode(ctx, args, "namespace-uri")
	if err != nil {
		return Value{}, err
	}
	if n == nil {
		return String(""), nil
	}
	return String(n.NamespaceURI()), nil
}

func fnName(ctx *Context, args []Value) (Value, error) {
	n, err := contextFirstNode(ctx, args, "name")
	if err != nil {
		return Value{}, err
	}
	if n == nil {
		return String(""), nil
	}
	return String(n.Name()), nil
}

// String functions
// ==================

func fnString(ctx *Context, args []Value) (Value, error) {
	if len(args) == 0 {
		if ctx.ContextNode == nil {
			return String(""), nil
		}
		return String(StringValueOf(ctx.ContextNode)), nil
	}
	if err := arity("string", args, 1, 1); err != nil {
		return Value{}, err
	}
	return String(args[0].AsString()), nil
}

func fnConcat(ctx *Context, args []Value) (Value, error) {
	if err := arity("concat", args, 2, -1); err != nil {
		return Value{}, err
	}
	var sb strings.Builder
	for _, a := range args {
		sb.WriteString(a.AsString())
	}
	return String(sb.String()), nil
}

func fnStartsWith(ctx *Context, args []Value) (Value, error) {
	if err := arity("starts-with", args, 2, 2); err != nil {
		return Value{}, err
	}
	return Boolean(strings.HasPrefix(args[0].AsString(), args[1].AsString())), nil
}

func fnContains(ctx *Context, args []Value) (Value, error) {
	if err := arity("contains", args, 2, 2); err != nil {
		return Value{}, err
	}
	return Boolean(strings.Contains(args[0].AsString(), args[1].AsString())), nil
}

func fnSubstringBefore(ctx *Context, args []Value) (Value, error) {
	if err := arity("substring-before", args, 2, 2); err != nil {
		return Value{}, err
	}
	s, sep := args[0].AsString(), args[1].AsString()
	if sep == "" {
		return String(""), nil
	}
	idx := strings.Index(s, sep)
	if idx < 0 {
		return String(""), nil
	}
	return String(s[:idx]), nil
}

func fnSubstringAfter(ctx *Context, args []Value) (Value, error) {
	if err := arity("substring-after", args, 2, 2); err != nil {
		return Value{}, err
	}
	s, sep := args[0].AsString(), args[1].AsString()
	if sep == "" {
		return String(s), nil
	}
	idx := strings.Index(s, sep)
	if idx < 0 {
		return String(""), nil
	}
	return String(s[idx+len(sep):]), nil
}

/*
fnSubstring implements the XPath 1.0 substring() rounding rules: start
and length are each rounded half-towards-positive-infinity (the same
rule fnRound applies), and NaN in either argument yields an empty
string.
*/
func fnSubstring(ctx *Context, args []Value) (Value, error) {
	if err := arity("substring", args, 2, 3); err != nil {
		return Value{}, err
	}

	s := []rune(args[0].AsString())
	start := args[1].AsNumber()

	if math.IsNaN(start) {
		return String(""), nil
	}

	hasLen := len(args) == 3
	var length float64
	if hasLen {
		length = args[2].AsNumber()
		if math.IsNaN(length) {
			return String(""), nil
		}
	}

	startIdx := round(start)
	var endIdx float64
	if hasLen {
		endIdx = startIdx + round(length)
	} else {
		endIdx = math.Inf(1)
	}

	lo := maxF(startIdx, 1)
	hi := math.Min(endIdx, float64(len(s))+1)
	if hi <= lo {
		return String(""), nil
	}

	loI, hiI := int(lo)-1, int(hi)-1
	if loI < 0 {
		loI = 0
	}
	if hiI > len(s) {
		hiI = len(s)
	}
	if loI >= hiI {
		return String(""), nil
	}
	return String(string(s[loI:hiI])), nil
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func fnStringLength(ctx *Context, args []Value) (Value, error) {
	var s string
	if len(args) == 0 {
		if ctx.ContextNode != nil {
			s = StringValueOf(ctx.ContextNode)
		}
	} else {
		if err := arity("string-length", args, 1, 1); err != nil {
			return Value{}, err
		}
		s = args[0].AsString()
	}
	return Number(float64(len([]rune(s)))), nil
}

func fnNormalizeSpace(ctx *Context, args []Value) (Value, error) {
	var s string
	if len(args) == 0 {
		if ctx.ContextNode != nil {
			s = StringValueOf(ctx.ContextNode)
		}
	} else {
		if err := arity("normalize-space", args, 1, 1); err != nil {
			return Value{}, err
		}
		s = args[0].AsString()
	}
	return String(strings.Join(strings.Fields(s), " ")), nil
}

func fnTranslate(ctx *Context, args []Value) (Value, error) {
	if err := arity("translate", args, 3, 3); err != nil {
		return Value{}, err
	}
	s, from, to := []rune(args[0].AsString()), []rune(args[1].AsString()), []rune(args[2].AsString())

	mapping := make(map[rune]rune, len(from))
	dropped := make(map[rune]bool, len(from))
	for i, r := range from {
		if i < len(to) {
			if _, exists := mapping[r]; !exists {
				mapping[r] = to[i]
			}
		} else {
			dropped[r] = true
		}
	}

	var sb strings.Builder
	for _, r := range s {
		if dropped[r] {
			continue
		}
		if m, ok := mapping[r]; ok {
			sb.WriteRune(m)
			continue
		}
		sb.WriteRune(r)
	}
	return String(sb.String()), nil
}

// Boolean functions
// ==================

func fnBoolean(ctx *Context, args []Value) (Value, error) {
	if err := arity("boolean", args, 1, 1); err != nil {
		return Value{}, err
	}
	return Boolean(args[0].AsBoolean()), nil
}

func fnNot(ctx *Context, args []Value) (Value, error) {
	if err := arity("not", args, 1, 1); err != nil {
		return Value{}, err
	}
	return Boolean(!args[0].AsBoolean()), nil
}

func fnTrue(ctx *Context, args []Value) (Value, error) {
	if err := arity("true", args, 0, 0); err != nil {
		return Value{}, err
	}
	return Boolean(true), nil
}

func fnFalse(ctx *Context, args []Value) (Value, error) {
	if err := arity("false", args, 0, 0); err != nil {
		return Value{}, err
	}
	return Boolean(false), nil
}

/*
fnLang implements lang(), matching the context node's xml:lang
(inherited from the nearest ancestor-or-self that declares it) against
the argument either exactly or as a hyphen-delimited prefix: "en"
matches both "en" and "en-US".
*/
func fnLang(ctx *Context, args []Value) (Value, error) {
	if err := arity("lang", args, 1, 1); err != nil {
		return Value{}, err
	}
	want := strings.ToLower(args[0].AsString())

	var have string
	for n := ctx.ContextNode; n != nil; n = n.Parent() {
		if n.Kind() != dom.ElementNode {
			continue
		}
		found := false
		for _, a := range n.Attributes() {
			if a.Name() == "xml:lang" {
				have = strings.ToLower(a.Value())
				found = true
				break
			}
		}
		if found {
			break
		}
	}

	if have == "" {
		return Boolean(false), nil
	}
	if have == want {
		return Boolean(true), nil
	}
	return Boolean(strings.HasPrefix(have, want+"-")), nil
}

// Number functions
// =================

func fnNumber(ctx *Context, args []Value) (Value, error) {
	if len(args) == 0 {
		if ctx.ContextNode == nil {
			return Number(math.NaN()), nil
		}
		return Number(stringToNumber(StringValueOf(ctx.ContextNode))), nil
	}
	if err := arity("number", args, 1, 1); err != nil {
		return Value{}, err
	}
	return Number(args[0].AsNumber()), nil
}

func fnSum(ctx *Context, args []Value) (Value, error) {
	if err := arity("sum", args, 1, 1); err != nil {
		return Value{}, err
	}
	ns, err := args[0].NodeSet()
	if err != nil {
		return Value{}, err
	}
	total := 0.0
	for _, n := range ns.InsertionOrder() {
		total += stringToNumber(StringValueOf(n))
	}
	return Number(total), nil
}

func fnFloor(ctx *Context, args []Value) (Value, error) {
	if err := arity("floor", args, 1, 1); err != nil {
		return Value{}, err
	}
	return Number(math.Floor(args[0].AsNumber())), nil
}

func fnCeiling(ctx *Context, args []Value) (Value, error) {
	if err := arity("ceiling", args, 1, 1); err != nil {
		return Value{}, err
	}
	return Number(math.Ceil(args[0].AsNumber())), nil
}

func fnRound(ctx *Context, args []Value) (Value, error) {
	if err := arity("round", args, 1, 1); err != nil {
		return Value{}, err
	}
	return Number(round(args[0].AsNumber())), nil
}

/*
round implements the XPath 1.0 round() rule: round half towards
positive infinity, rather than Go's math.Round (half away from zero).
*/
func round(n float64) float64 {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return n
	}
	return math.Floor(n + 0.5)
}
