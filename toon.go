package toon

import (
	"bytes"

	"golang.org/x/xerrors"

	"github.com/tidepoolcode/toon-go/value"
)

// Marshaler lets a type customize its own TOON encoding. The returned bytes
// are parsed back into a value.Value and substituted for the type's default
// reflective encoding.
type Marshaler interface {
	MarshalTOON() ([]byte, error)
}

// Unmarshaler lets a type customize its own TOON decoding. UnmarshalTOON
// receives the decoded value assigned to it, re-encoded as TOON text with
// the default encoder options (not the original source text).
type Unmarshaler interface {
	UnmarshalTOON([]byte) error
}

// Marshal encodes v into TOON text. The structure of the generated document
// follows the structure of v itself: maps and pointers (to struct, string,
// int, etc) are accepted as the in value.
//
// Struct fields are only marshaled if they are exported (have an upper case
// first letter), and are marshaled using the field name lowercased as the
// default key. Custom keys may be defined via the "toon" name in the field
// tag: the content preceding the first comma is used as the key, and the
// following comma-separated options tweak the marshaling process. Conflicting
// names result in a runtime error.
//
// The field tag format accepted is:
//
//	`(...) toon:"[<key>][,<flag1>[,<flag2>]]" (...)`
//
// The following flags are currently supported:
//
//	omitempty    Only include the field if it's not the zero value for its
//	             type, or an empty slice/map/array. Zero valued structs are
//	             omitted if they implement IsZeroer and it returns true.
//
//	inline       Inline the field, which must be a struct or a map, causing
//	             all of its fields or keys to be processed as if they were
//	             part of the outer struct. Keys must not conflict with the
//	             keys of other struct fields.
//
//	flatten      Collapse a chain of single-key objects under the field into
//	             one dotted key (e.g. "home.city: Berlin"), whatever the
//	             encoder's key-folding setting, unless the dotted key
//	             collides with another field's key.
//
// In addition, if the key is "-", the field is ignored.
func Marshal(v interface{}, opts ...EncodeOption) ([]byte, error) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf, opts...)
	if err := enc.Encode(v); err != nil {
		return nil, xerrors.Errorf("toon: failed to marshal: %w", err)
	}
	return buf.Bytes(), nil
}

// MarshalValue encodes an already-built value.Value into TOON text,
// bypassing reflection.
func MarshalValue(v value.Value, opts ...EncodeOption) ([]byte, error) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf, opts...)
	if err := enc.EncodeValue(v); err != nil {
		return nil, xerrors.Errorf("toon: failed to marshal: %w", err)
	}
	return buf.Bytes(), nil
}

// Unmarshal parses data and assigns the decoded values into v.
//
// Struct fields are only unmarshaled if they are exported, and are matched
// using the field name lowercased as the default key (or the "toon" tag's
// key, when present). See Marshal for the full tag format.
func Unmarshal(data []byte, v interface{}, opts ...DecodeOption) error {
	dec := NewDecoder(bytes.NewBuffer(data), opts...)
	if err := dec.Decode(v); err != nil {
		return xerrors.Errorf("toon: failed to unmarshal: %w", err)
	}
	return nil
}

// UnmarshalValue parses data into a value.Value, bypassing reflection.
func UnmarshalValue(data []byte, opts ...DecodeOption) (value.Value, error) {
	dec := NewDecoder(bytes.NewBuffer(data), opts...)
	val, err := dec.ParseValue()
	if err != nil {
		return value.Value{}, xerrors.Errorf("toon: failed to unmarshal: %w", err)
	}
	return val, nil
}
