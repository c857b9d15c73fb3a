// Package printer implements the encoder's value-tree walk: shape
// selection for arrays (spec.md §4.1), key folding, and the scalar/key
// quoting and number-formatting rules, producing TOON text from a
// value.Value.
package printer

import (
	"fmt"
	"strings"

	"github.com/tidepoolcode/toon-go/internal/token"
	"github.com/tidepoolcode/toon-go/value"
)

// FoldMode selects whether chains of single-key objects are compressed
// into dotted keys.
type FoldMode int

const (
	FoldOff FoldMode = iota
	FoldSafe
)

// Options configures the encoder's output.
type Options struct {
	Indent       int
	Delimiter    token.Delimiter
	KeyFolding   FoldMode
	FlattenDepth int // 0 means unbounded.
}

type arrayShape int

const (
	shapeEmpty arrayShape = iota
	shapePrimitive
	shapeArrayOfArrays
	shapeTabular
	shapeMixed
)

// Print renders v as TOON text under opts.
func Print(v value.Value, opts Options) string {
	if opts.Indent <= 0 {
		opts.Indent = 2
	}
	var b strings.Builder
	switch v.Kind() {
	case value.KindArray:
		arr, _ := v.AsArray()
		encodeArray(&b, "", "", arr, 0, opts)
	case value.KindObject:
		obj, _ := v.AsObject()
		if obj.Len() > 0 {
			writeObjectBody(&b, obj, 0, opts)
		}
	default:
		b.WriteString(formatScalar(v, opts.Delimiter))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func classifyArray(items []value.Value) arrayShape {
	if len(items) == 0 {
		return shapeEmpty
	}
	allPrimitive := true
	for _, it := range items {
		if !it.IsPrimitive() {
			allPrimitive = false
			break
		}
	}
	if allPrimitive {
		return shapePrimitive
	}
	allArraysOfPrimitives := true
	for _, it := range items {
		inner, ok := it.AsArray()
		if !ok {
			allArraysOfPrimitives = false
			break
		}
		for _, iv := range inner {
			if !iv.IsPrimitive() {
				allArraysOfPrimitives = false
				break
			}
		}
		if !allArraysOfPrimitives {
			break
		}
	}
	if allArraysOfPrimitives {
		return shapeArrayOfArrays
	}
	if isTabular(items) {
		return shapeTabular
	}
	return shapeMixed
}

func isTabular(items []value.Value) bool {
	firstObj, ok := items[0].AsObject()
	if !ok {
		return false
	}
	for _, f := range firstObj.Fields() {
		if !f.Value.IsPrimitive() {
			return false
		}
	}
	for _, it := range items {
		obj, ok := it.AsObject()
		if !ok {
			return false
		}
		for _, f := range obj.Fields() {
			if !f.Value.IsPrimitive() {
				return false
			}
		}
		if !obj.KeySetEqual(firstObj) {
			return false
		}
	}
	return true
}

// encodeArray writes one array value: a header line (prefixed by
// indentPrefix, then keyPrefix, then "[N<d>]...") and, for the tabular,
// array-of-arrays, and mixed shapes, one line per element at depth+1.
func encodeArray(b *strings.Builder, indentPrefix, keyPrefix string, arr []value.Value, depth int, opts Options) {
	bodyIndent := strings.Repeat(" ", (depth+1)*opts.Indent)
	switch classifyArray(arr) {
	case shapeEmpty:
		fmt.Fprintf(b, "%s%s[0%s]:\n", indentPrefix, keyPrefix, opts.Delimiter.Marker())
	case shapePrimitive:
		fmt.Fprintf(b, "%s%s[%d%s]: ", indentPrefix, keyPrefix, len(arr), opts.Delimiter.Marker())
		writeDelimitedScalars(b, arr, opts)
		b.WriteString("\n")
	case shapeArrayOfArrays:
		fmt.Fprintf(b, "%s%s[%d%s]:\n", indentPrefix, keyPrefix, len(arr), opts.Delimiter.Marker())
		for _, it := range arr {
			inner, _ := it.AsArray()
			b.WriteString(bodyIndent)
			b.WriteString("- ")
			encodeArray(b, "", "", inner, depth+1, opts)
		}
	case shapeTabular:
		firstObj, _ := arr[0].AsObject()
		fields := firstObj.Fields()
		fmt.Fprintf(b, "%s%s[%d%s]{", indentPrefix, keyPrefix, len(arr), opts.Delimiter.Marker())
		for i, f := range fields {
			if i > 0 {
				b.WriteByte(opts.Delimiter.Byte())
			}
			b.WriteString(quoteKey(f.Key))
		}
		b.WriteString("}:\n")
		for _, it := range arr {
			obj, _ := it.AsObject()
			b.WriteString(bodyIndent)
			for i, f := range fields {
				if i > 0 {
					b.WriteByte(opts.Delimiter.Byte())
				}
				v, _ := obj.Get(f.Key)
				b.WriteString(formatScalar(v, opts.Delimiter))
			}
			b.WriteString("\n")
		}
	default: // shapeMixed
		fmt.Fprintf(b, "%s%s[%d%s]:\n", indentPrefix, keyPrefix, len(arr), opts.Delimiter.Marker())
		for _, it := range arr {
			writeListItem(b, it, depth+1, opts)
		}
	}
}

func writeDelimitedScalars(b *strings.Builder, arr []value.Value, opts Options) {
	for i, v := range arr {
		if i > 0 {
			b.WriteByte(opts.Delimiter.Byte())
		}
		b.WriteString(formatScalar(v, opts.Delimiter))
	}
}

func formatScalar(v value.Value, delim token.Delimiter) string {
	switch v.Kind() {
	case value.KindNull:
		return "null"
	case value.KindBool:
		bv, _ := v.AsBool()
		if bv {
			return "true"
		}
		return "false"
	case value.KindNumber:
		n, _ := v.AsNumber()
		return formatNumber(n)
	case value.KindString:
		s, _ := v.AsString()
		return quoteStringIfNeeded(s, delim)
	default:
		return ""
	}
}

// writeObjectBody writes one object's fields as sibling lines at depth,
// applying key folding per field when enabled.
func writeObjectBody(b *strings.Builder, obj value.Object, depth int, opts Options) {
	fields := obj.Fields()
	siblings := siblingKeySet(fields)
	for _, f := range fields {
		key, val := f.Key, f.Value
		if opts.KeyFolding == FoldSafe {
			key, val = tryFoldKey(key, val, opts.FlattenDepth, siblings)
		}
		writeEntry(b, key, val, depth, opts)
	}
}

// writeEntry writes a single "key: value" (or array-header, or nested
// object) line at depth.
func writeEntry(b *strings.Builder, key string, val value.Value, depth int, opts Options) {
	indent := strings.Repeat(" ", depth*opts.Indent)
	switch val.Kind() {
	case value.KindArray:
		arr, _ := val.AsArray()
		encodeArray(b, indent, quoteKey(key), arr, depth, opts)
	case value.KindObject:
		obj, _ := val.AsObject()
		b.WriteString(indent)
		b.WriteString(quoteKey(key))
		b.WriteString(":\n")
		if obj.Len() > 0 {
			writeObjectBody(b, obj, depth+1, opts)
		}
	default:
		b.WriteString(indent)
		b.WriteString(quoteKey(key))
		b.WriteString(": ")
		b.WriteString(formatScalar(val, opts.Delimiter))
		b.WriteString("\n")
	}
}

// writeListItem writes one "- ..." bulleted-list item at itemDepth, per
// spec.md §4.1 rule 5: an object item puts its first field on the dash
// line and any remaining fields one level deeper.
func writeListItem(b *strings.Builder, item value.Value, itemDepth int, opts Options) {
	indent := strings.Repeat(" ", itemDepth*opts.Indent)
	switch item.Kind() {
	case value.KindArray:
		arr, _ := item.AsArray()
		b.WriteString(indent)
		b.WriteString("- ")
		encodeArray(b, "", "", arr, itemDepth, opts)
	case value.KindObject:
		obj, _ := item.AsObject()
		if obj.Len() == 0 {
			b.WriteString(indent)
			b.WriteString("-\n")
			return
		}
		fields := obj.Fields()
		siblings := siblingKeySet(fields)
		firstKey, firstVal := fields[0].Key, fields[0].Value
		if opts.KeyFolding == FoldSafe {
			firstKey, firstVal = tryFoldKey(firstKey, firstVal, opts.FlattenDepth, siblings)
		}
		b.WriteString(indent)
		b.WriteString("- ")
		writeDashField(b, firstKey, firstVal, itemDepth, opts)
		for _, f := range fields[1:] {
			key, val := f.Key, f.Value
			if opts.KeyFolding == FoldSafe {
				key, val = tryFoldKey(key, val, opts.FlattenDepth, siblings)
			}
			writeEntry(b, key, val, itemDepth+1, opts)
		}
	default:
		b.WriteString(indent)
		b.WriteString("- ")
		b.WriteString(formatScalar(item, opts.Delimiter))
		b.WriteString("\n")
	}
}

// writeDashField writes the first field of an object list item, already
// positioned right after "- ". Its own nested-object content is written
// one level deeper than the dash object's sibling fields (itemDepth+2,
// not itemDepth+1) so a following sibling field isn't mistaken for one of
// this field's children.
func writeDashField(b *strings.Builder, key string, val value.Value, itemDepth int, opts Options) {
	switch val.Kind() {
	case value.KindArray:
		arr, _ := val.AsArray()
		encodeArray(b, "", quoteKey(key), arr, itemDepth, opts)
	case value.KindObject:
		obj, _ := val.AsObject()
		b.WriteString(quoteKey(key))
		b.WriteString(":\n")
		if obj.Len() > 0 {
			writeObjectBody(b, obj, itemDepth+2, opts)
		}
	default:
		b.WriteString(quoteKey(key))
		b.WriteString(": ")
		b.WriteString(formatScalar(val, opts.Delimiter))
		b.WriteString("\n")
	}
}

func siblingKeySet(fields []value.Field) map[string]bool {
	m := make(map[string]bool, len(fields))
	for _, f := range fields {
		m[f.Key] = true
	}
	return m
}

// FoldKeyChain exposes tryFoldKey's chain-collapsing logic to callers
// outside this package — namely the reflective bridge's per-field
// `flatten` struct tag (SPEC_FULL.md §4.1), which forces this same
// collapse on one field regardless of the active Options.KeyFolding.
func FoldKeyChain(key string, val value.Value, flattenDepth int, siblings map[string]bool) (string, value.Value) {
	return tryFoldKey(key, val, flattenDepth, siblings)
}

// tryFoldKey collapses a chain of single-key, bare-legal-keyed objects
// into a dotted key, per spec.md §4.1's key-folding rule. The chain stops
// at the first non-object or multi-key object, at the first key that
// requires quoting, or when one more segment would exceed flattenDepth
// (a segment count; 0 means unbounded); the part folded so far is kept.
// The original key/value is returned when nothing could be folded or the
// folded key collides with a sibling already in scope.
func tryFoldKey(key string, val value.Value, flattenDepth int, siblings map[string]bool) (string, value.Value) {
	curKey, curVal, depth := key, val, 0
	for {
		obj, ok := curVal.AsObject()
		if !ok || obj.Len() != 1 {
			break
		}
		if flattenDepth > 0 && depth+1 >= flattenDepth {
			break
		}
		f := obj.Fields()[0]
		if !isBareKey(f.Key) {
			break
		}
		curKey = curKey + "." + f.Key
		curVal = f.Value
		depth++
	}
	if depth == 0 {
		return key, val
	}
	if siblings[curKey] {
		return key, val
	}
	return curKey, curVal
}
