package toon

import (
	"io"
	"reflect"
	"sort"

	ierrors "github.com/tidepoolcode/toon-go/internal/errors"
	"github.com/tidepoolcode/toon-go/internal/parser"
	"github.com/tidepoolcode/toon-go/internal/printer"
	"github.com/tidepoolcode/toon-go/internal/token"
	"github.com/tidepoolcode/toon-go/value"
	"golang.org/x/xerrors"
)

// parseValueBytes parses a Marshaler's returned text using the default
// (non-strict) parser options, independent of the outer Encoder's options.
func parseValueBytes(b []byte) (value.Value, error) {
	return parser.Parse(string(b), parser.Options{Indent: DefaultIndentSpaces})
}

// DefaultIndentSpaces is the default number of spaces per nesting level.
const DefaultIndentSpaces = 2

// Encoder writes TOON text to an output stream. It is the reflective
// bridge's write side (spec.md §4.4): Encode walks an arbitrary Go value
// into a value.Value tree, then hands that tree to the printer.
type Encoder struct {
	writer       io.Writer
	indent       int
	delimiter    token.Delimiter
	keyFolding   printer.FoldMode
	flattenDepth int
	err          error
}

// NewEncoder returns a new Encoder that writes to w.
func NewEncoder(w io.Writer, opts ...EncodeOption) *Encoder {
	e := &Encoder{
		writer: w,
		indent: DefaultIndentSpaces,
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			e.err = err
		}
	}
	return e
}

// Close closes the encoder. TOON's encoder holds no buffered state, so
// this always returns nil; it exists to match the teacher's Encoder
// lifecycle shape.
func (e *Encoder) Close() error { return nil }

func (e *Encoder) options() printer.Options {
	return printer.Options{
		Indent:       e.indent,
		Delimiter:    e.delimiter,
		KeyFolding:   e.keyFolding,
		FlattenDepth: e.flattenDepth,
	}
}

// Encode writes the TOON encoding of v to the stream, reflecting v (or
// dereferencing it, for interfaces/pointers/structs/slices/maps) into a
// value.Value first.
func (e *Encoder) Encode(v interface{}) error {
	if e.err != nil {
		return e.err
	}
	val, err := reflectToValue(reflect.ValueOf(v))
	if err != nil {
		return ierrors.Wrap(ierrors.Custom, err)
	}
	return e.EncodeValue(val)
}

// EncodeValue writes the TOON encoding of an already-built value.Value,
// bypassing reflection entirely — the entry point for callers on hosts
// without a reflection framework (spec.md §9).
func (e *Encoder) EncodeValue(val value.Value) error {
	if e.err != nil {
		return e.err
	}
	text := printer.Print(val, e.options())
	if _, err := io.WriteString(e.writer, text); err != nil {
		return ierrors.Wrap(ierrors.Io, err)
	}
	return nil
}

// reflectToValue walks an arbitrary Go value into the value.Value model,
// following the teacher's encodeValue kind-switch but building a plain
// value tree instead of an AST.
func reflectToValue(rv reflect.Value) (value.Value, error) {
	if !rv.IsValid() {
		return value.Null(), nil
	}
	if rv.CanInterface() {
		if m, ok := rv.Interface().(Marshaler); ok {
			b, err := m.MarshalTOON()
			if err != nil {
				return value.Value{}, xerrors.Errorf("toon: MarshalTOON failed: %w", err)
			}
			val, err := parseValueBytes(b)
			if err != nil {
				return value.Value{}, xerrors.Errorf("toon: MarshalTOON returned invalid TOON: %w", err)
			}
			return val, nil
		}
	}
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return value.Null(), nil
		}
		return reflectToValue(rv.Elem())
	case reflect.Bool:
		return value.FromBool(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return value.FromI64(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return value.FromU64(rv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return value.FromF64(rv.Float()), nil
	case reflect.String:
		return value.FromString(rv.String()), nil
	case reflect.Slice, reflect.Array:
		return reflectSliceToValue(rv)
	case reflect.Map:
		return reflectMapToValue(rv)
	case reflect.Struct:
		return reflectStructToValue(rv)
	default:
		return value.Value{}, xerrors.Errorf("toon: unsupported type %s", rv.Type())
	}
}

func reflectSliceToValue(rv reflect.Value) (value.Value, error) {
	if rv.Kind() == reflect.Slice && rv.IsNil() {
		return value.Null(), nil
	}
	if rv.Kind() == reflect.Slice && convertibleTo(rv, reflect.TypeOf("")) {
		return value.FromString(rv.Convert(reflect.TypeOf("")).String()), nil
	}
	items := make([]value.Value, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		v, err := reflectToValue(rv.Index(i))
		if err != nil {
			return value.Value{}, err
		}
		items[i] = v
	}
	return value.NewArray(items...), nil
}

func reflectMapToValue(rv reflect.Value) (value.Value, error) {
	if rv.IsNil() {
		return value.Null(), nil
	}
	if rv.Type().Key().Kind() != reflect.String {
		return value.Value{}, xerrors.Errorf("toon: map key type %s is not supported (only string keys)", rv.Type().Key())
	}
	keys := make([]string, 0, rv.Len())
	for _, k := range rv.MapKeys() {
		keys = append(keys, k.String())
	}
	sort.Strings(keys)
	var obj value.Object
	for _, k := range keys {
		v, err := reflectToValue(rv.MapIndex(reflect.ValueOf(k).Convert(rv.Type().Key())))
		if err != nil {
			return value.Value{}, err
		}
		obj = obj.With(k, v)
	}
	return value.NewObject(obj), nil
}

func reflectStructToValue(rv reflect.Value) (value.Value, error) {
	structType := rv.Type()
	fieldMap, err := structFieldMap(structType)
	if err != nil {
		return value.Value{}, xerrors.Errorf("toon: %w", err)
	}
	siblings := make(map[string]bool, len(fieldMap))
	for _, sf := range fieldMap {
		if !sf.IsInline {
			siblings[sf.RenderName] = true
		}
	}
	var obj value.Object
	for i := 0; i < rv.NumField(); i++ {
		field := structType.Field(i)
		if isIgnoredStructField(field) {
			continue
		}
		sf := fieldMap[field.Name]
		fieldValue := rv.Field(i)
		if sf.IsOmitEmpty && isEmptyValue(fieldValue) {
			continue
		}
		encoded, err := reflectToValue(fieldValue)
		if err != nil {
			return value.Value{}, err
		}
		if sf.IsInline {
			inlineObj, ok := encoded.AsObject()
			if !ok {
				return value.Value{}, xerrors.Errorf("toon: inline field %s is not a struct", sf.FieldName)
			}
			for _, f := range inlineObj.Fields() {
				obj = obj.With(f.Key, f.Value)
			}
			continue
		}
		key := sf.RenderName
		if sf.IsFlatten {
			key, encoded = printer.FoldKeyChain(key, encoded, 0, siblings)
		}
		obj = obj.With(key, encoded)
	}
	return value.NewObject(obj), nil
}
