package value

// Field is a single key/value pair inside an Object, in the order it was
// inserted. This mirrors the teacher's approach to ordered mappings
// (a slice of pairs rather than a bare Go map) so that iteration order is
// observable and stable across an encode.
type Field struct {
	Key   string
	Value Value
}

// Object is an insertion-order-preserving string-keyed map. Lookups fall
// back to a linear scan, which is acceptable at the sizes TOON documents
// realistically reach; the ordering guarantee is the feature, not raw
// lookup speed.
type Object struct {
	fields []Field
}

// NewObjectFromFields builds an Object from a pre-built field slice.
func NewObjectFromFields(fields []Field) Object {
	return Object{fields: fields}
}

// NewObjectArgs builds an Object from variadic Field values, mirroring the
// teacher's functional-options-adjacent constructor style.
func NewObjectArgs(fields ...Field) Object {
	return Object{fields: fields}
}

// Len reports the number of fields.
func (o Object) Len() int { return len(o.fields) }

// Fields returns the fields in insertion order. The caller must not mutate
// the returned slice's Values in place; treat it as read-only.
func (o Object) Fields() []Field { return o.fields }

// Get looks up key and reports whether it was present.
func (o Object) Get(key string) (Value, bool) {
	for _, f := range o.fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return Value{}, false
}

// Has reports whether key is present.
func (o Object) Has(key string) bool {
	_, ok := o.Get(key)
	return ok
}

// Keys returns the field keys in insertion order.
func (o Object) Keys() []string {
	keys := make([]string, len(o.fields))
	for i, f := range o.fields {
		keys[i] = f.Key
	}
	return keys
}

// With returns a new Object with key set to val, appended if new or
// replaced in place if key already existed (order-preserving either way).
func (o Object) With(key string, val Value) Object {
	fields := make([]Field, len(o.fields))
	copy(fields, o.fields)
	for i, f := range fields {
		if f.Key == key {
			fields[i].Value = val
			return Object{fields: fields}
		}
	}
	fields = append(fields, Field{Key: key, Value: val})
	return Object{fields: fields}
}

// KeySetEqual reports whether o and other contain exactly the same set of
// keys, ignoring order and values — the test spec.md §4.1 rule 4 (tabular
// detection) requires ("every object's key set equals the first element's
// key set under set equality").
func (o Object) KeySetEqual(other Object) bool {
	if len(o.fields) != len(other.fields) {
		return false
	}
	for _, f := range o.fields {
		if !other.Has(f.Key) {
			return false
		}
	}
	return true
}

// Equal performs a structural, order-sensitive comparison.
func (o Object) Equal(other Object) bool {
	if len(o.fields) != len(other.fields) {
		return false
	}
	for i, f := range o.fields {
		g := other.fields[i]
		if f.Key != g.Key || !Equal(f.Value, g.Value) {
			return false
		}
	}
	return true
}
