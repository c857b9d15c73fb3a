package toon

import (
	"io"
	"reflect"

	ierrors "github.com/tidepoolcode/toon-go/internal/errors"
	"github.com/tidepoolcode/toon-go/internal/parser"
	"github.com/tidepoolcode/toon-go/value"
	"golang.org/x/xerrors"
)

// StructValidator is the hook a Decoder calls after assigning a struct, if
// configured via Validator. *validator.Validate from
// github.com/go-playground/validator/v10 satisfies this interface.
type StructValidator interface {
	Struct(interface{}) error
}

// Decoder reads and decodes TOON values from an input stream. It is the
// reflective bridge's read side (spec.md §4.4): Decode parses text into a
// value.Value tree, then assigns that tree into an arbitrary Go value.
type Decoder struct {
	reader    io.Reader
	indent    int
	strict    bool
	expand    parser.ExpandMode
	validator StructValidator
	err       error
}

// NewDecoder returns a new Decoder that reads from r.
func NewDecoder(r io.Reader, opts ...DecodeOption) *Decoder {
	d := &Decoder{
		reader: r,
		indent: DefaultIndentSpaces,
	}
	for _, opt := range opts {
		if err := opt(d); err != nil {
			d.err = err
		}
	}
	return d
}

func (d *Decoder) options() parser.Options {
	return parser.Options{Indent: d.indent, Strict: d.strict, Expand: d.expand}
}

// Decode reads all of the stream, parses it, and assigns the result into
// the value pointed to by v.
func (d *Decoder) Decode(v interface{}) error {
	if d.err != nil {
		return d.err
	}
	data, err := io.ReadAll(d.reader)
	if err != nil {
		return ierrors.Wrap(ierrors.Io, err)
	}
	val, err := parser.Parse(string(data), d.options())
	if err != nil {
		return err
	}
	return d.DecodeValue(val, v)
}

// ParseValue reads and parses the stream into a value.Value, bypassing
// reflection entirely — the entry point for callers on hosts without a
// reflection framework (spec.md §9).
func (d *Decoder) ParseValue() (value.Value, error) {
	if d.err != nil {
		return value.Value{}, d.err
	}
	data, err := io.ReadAll(d.reader)
	if err != nil {
		return value.Value{}, ierrors.Wrap(ierrors.Io, err)
	}
	return parser.Parse(string(data), d.options())
}

// DecodeValue assigns an already-parsed value.Value into v via reflection.
func (d *Decoder) DecodeValue(val value.Value, v interface{}) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return ierrors.Wrap(ierrors.Custom, xerrors.New("toon: Unmarshal requires a non-nil pointer"))
	}
	if err := d.assign(rv.Elem(), val); err != nil {
		return err
	}
	if d.validator != nil && rv.Elem().Kind() == reflect.Struct {
		if err := d.validator.Struct(rv.Interface()); err != nil {
			return ierrors.Wrap(ierrors.Custom, err)
		}
	}
	return nil
}

func (d *Decoder) assign(dst reflect.Value, src value.Value) error {
	if dst.CanAddr() {
		if u, ok := dst.Addr().Interface().(Unmarshaler); ok {
			b, err := MarshalValue(src)
			if err != nil {
				return err
			}
			if err := u.UnmarshalTOON(b); err != nil {
				return ierrors.Wrap(ierrors.Custom, xerrors.Errorf("toon: UnmarshalTOON failed: %w", err))
			}
			return nil
		}
	}
	switch dst.Kind() {
	case reflect.Ptr:
		if src.IsNull() {
			dst.Set(reflect.Zero(dst.Type()))
			return nil
		}
		if dst.IsNil() {
			dst.Set(reflect.New(dst.Type().Elem()))
		}
		return d.assign(dst.Elem(), src)
	case reflect.Interface:
		iv, err := valueToInterface(src)
		if err != nil {
			return err
		}
		if iv == nil {
			dst.Set(reflect.Zero(dst.Type()))
		} else {
			dst.Set(reflect.ValueOf(iv))
		}
		return nil
	case reflect.Struct:
		return d.assignStruct(dst, src)
	case reflect.Slice:
		return d.assignSlice(dst, src)
	case reflect.Array:
		return d.assignArray(dst, src)
	case reflect.Map:
		return d.assignMap(dst, src)
	case reflect.String:
		s, ok := src.AsString()
		if !ok {
			return typeMismatchErr(dst.Type(), src)
		}
		dst.SetString(s)
		return nil
	case reflect.Bool:
		b, ok := src.AsBool()
		if !ok {
			return typeMismatchErr(dst.Type(), src)
		}
		dst.SetBool(b)
		return nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, ok := src.AsNumber()
		if !ok {
			return typeMismatchErr(dst.Type(), src)
		}
		i, ok := n.Int64()
		if !ok || dst.OverflowInt(i) {
			return overflowErr(dst.Type(), src)
		}
		dst.SetInt(i)
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		n, ok := src.AsNumber()
		if !ok {
			return typeMismatchErr(dst.Type(), src)
		}
		u, ok := n.Uint64()
		if !ok || dst.OverflowUint(u) {
			return overflowErr(dst.Type(), src)
		}
		dst.SetUint(u)
		return nil
	case reflect.Float32, reflect.Float64:
		n, ok := src.AsNumber()
		if !ok {
			return typeMismatchErr(dst.Type(), src)
		}
		dst.SetFloat(n.Float64())
		return nil
	default:
		return typeMismatchErr(dst.Type(), src)
	}
}

func (d *Decoder) assignStruct(dst reflect.Value, src value.Value) error {
	obj, ok := src.AsObject()
	if !ok {
		if src.IsNull() {
			return nil
		}
		return typeMismatchErr(dst.Type(), src)
	}
	fieldMap, err := structFieldMap(dst.Type())
	if err != nil {
		return ierrors.Wrap(ierrors.Custom, xerrors.Errorf("toon: %w", err))
	}
	structType := dst.Type()
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		if isIgnoredStructField(field) {
			continue
		}
		sf := fieldMap[field.Name]
		fv := dst.Field(i)
		if sf.IsInline {
			if err := d.assign(fv, src); err != nil {
				return err
			}
			continue
		}
		v, exists := obj.Get(sf.RenderName)
		if !exists {
			continue
		}
		if err := d.assign(fv, v); err != nil {
			return err
		}
	}
	return nil
}

func (d *Decoder) assignSlice(dst reflect.Value, src value.Value) error {
	if s, ok := src.AsString(); ok && convertibleTo(reflect.ValueOf(s), dst.Type()) {
		dst.Set(reflect.ValueOf(s).Convert(dst.Type()))
		return nil
	}
	arr, ok := src.AsArray()
	if !ok {
		if src.IsNull() {
			dst.Set(reflect.Zero(dst.Type()))
			return nil
		}
		return typeMismatchErr(dst.Type(), src)
	}
	out := reflect.MakeSlice(dst.Type(), len(arr), len(arr))
	for i, item := range arr {
		if err := d.assign(out.Index(i), item); err != nil {
			return err
		}
	}
	dst.Set(out)
	return nil
}

func (d *Decoder) assignArray(dst reflect.Value, src value.Value) error {
	arr, ok := src.AsArray()
	if !ok {
		return typeMismatchErr(dst.Type(), src)
	}
	n := dst.Len()
	if len(arr) < n {
		n = len(arr)
	}
	for i := 0; i < n; i++ {
		if err := d.assign(dst.Index(i), arr[i]); err != nil {
			return err
		}
	}
	return nil
}

func (d *Decoder) assignMap(dst reflect.Value, src value.Value) error {
	obj, ok := src.AsObject()
	if !ok {
		if src.IsNull() {
			dst.Set(reflect.Zero(dst.Type()))
			return nil
		}
		return typeMismatchErr(dst.Type(), src)
	}
	mapType := dst.Type()
	keyType := mapType.Key()
	if keyType.Kind() != reflect.String {
		return ierrors.Wrap(ierrors.Custom, xerrors.Errorf("toon: map key type %s is not supported (only string keys)", keyType))
	}
	out := reflect.MakeMapWithSize(mapType, obj.Len())
	for _, f := range obj.Fields() {
		ev := reflect.New(mapType.Elem()).Elem()
		if err := d.assign(ev, f.Value); err != nil {
			return err
		}
		out.SetMapIndex(reflect.ValueOf(f.Key).Convert(keyType), ev)
	}
	dst.Set(out)
	return nil
}

// valueToInterface converts src into the plain interface{} shape (nil,
// bool, int64/uint64/float64, string, []interface{}, map[string]interface{})
// used when decoding into an interface{}-typed destination.
func valueToInterface(src value.Value) (interface{}, error) {
	switch src.Kind() {
	case value.KindNull:
		return nil, nil
	case value.KindBool:
		b, _ := src.AsBool()
		return b, nil
	case value.KindNumber:
		n, _ := src.AsNumber()
		switch n.Kind() {
		case value.NumberI64:
			i, _ := n.Int64()
			return i, nil
		case value.NumberU64:
			u, _ := n.Uint64()
			return u, nil
		default:
			return n.Float64(), nil
		}
	case value.KindString:
		s, _ := src.AsString()
		return s, nil
	case value.KindArray:
		arr, _ := src.AsArray()
		out := make([]interface{}, len(arr))
		for i, it := range arr {
			iv, err := valueToInterface(it)
			if err != nil {
				return nil, err
			}
			out[i] = iv
		}
		return out, nil
	case value.KindObject:
		obj, _ := src.AsObject()
		out := make(map[string]interface{}, obj.Len())
		for _, f := range obj.Fields() {
			iv, err := valueToInterface(f.Value)
			if err != nil {
				return nil, err
			}
			out[f.Key] = iv
		}
		return out, nil
	default:
		return nil, xerrors.Errorf("toon: unrecognized value kind %s", src.Kind())
	}
}

func typeMismatchErr(dstType reflect.Type, src value.Value) error {
	return ierrors.Wrap(ierrors.Custom, xerrors.Errorf("toon: cannot unmarshal %s into Go value of type %s", src.Kind(), dstType))
}

func overflowErr(dstType reflect.Type, src value.Value) error {
	return ierrors.Wrap(ierrors.Custom, xerrors.Errorf("toon: number overflows Go value of type %s", dstType))
}
