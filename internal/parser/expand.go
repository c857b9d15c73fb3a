package parser

import (
	"fmt"
	"strings"

	"github.com/tidepoolcode/toon-go/internal/errors"
	"github.com/tidepoolcode/toon-go/value"
)

// fieldEntry is an object field as collected during parsing, before the
// (optional) path-expansion pass — it additionally carries whether the key
// was written quoted in the source, which exempts it from expansion per
// spec.md §9's "quoted dotted keys are not expanded" rule.
type fieldEntry struct {
	key    string
	quoted bool
	val    value.Value
}

// finishObject assembles the fields collected for one object level into a
// value.Object, applying dot-path expansion when requested. It is the
// single place path expansion happens; since every nested object (via
// recursion) and every array element (tabular row, list item) passes
// through this function, expansion is applied recursively throughout the
// tree without a separate tree-walking post-pass.
func finishObject(fields []fieldEntry, expand bool, strict bool) (value.Object, error) {
	var out value.Object
	for _, f := range fields {
		segs := []string{f.key}
		if !f.quoted && expand && isDottedExpandable(f.key) {
			segs = strings.Split(f.key, ".")
		}
		var err error
		out, err = mergePath(out, segs, f.val, strict)
		if err != nil {
			return value.Object{}, err
		}
	}
	return out, nil
}

func isDottedExpandable(key string) bool {
	if !strings.Contains(key, ".") {
		return false
	}
	for _, seg := range strings.Split(key, ".") {
		if !isPlainIdentifier(seg) {
			return false
		}
	}
	return true
}

func isPlainIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		isAlpha := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
		isDigit := c >= '0' && c <= '9'
		if i == 0 {
			if !isAlpha {
				return false
			}
			continue
		}
		if !isAlpha && !isDigit {
			return false
		}
	}
	return true
}

// mergePath sets segs (a dot-path, or a single literal key when expansion
// doesn't apply) to val inside obj, merging recursively when both the
// existing and new values at the leaf are objects, per spec.md §4.2's
// merge policy.
func mergePath(obj value.Object, segs []string, val value.Value, strict bool) (value.Object, error) {
	head := segs[0]
	if len(segs) == 1 {
		existing, exists := obj.Get(head)
		if !exists {
			return obj.With(head, val), nil
		}
		existingObj, existingIsObj := existing.AsObject()
		valObj, valIsObj := val.AsObject()
		if existingIsObj && valIsObj {
			merged, err := mergeObjects(existingObj, valObj, strict)
			if err != nil {
				return obj, err
			}
			return obj.With(head, value.NewObject(merged)), nil
		}
		if strict {
			return obj, errors.New(errors.ExpansionConflict, fmt.Sprintf("conflicting value for key %q during path expansion", head))
		}
		return obj.With(head, val), nil
	}

	var child value.Object
	if existing, exists := obj.Get(head); exists {
		if eo, isObj := existing.AsObject(); isObj {
			child = eo
		} else if strict {
			return obj, errors.New(errors.ExpansionConflict, fmt.Sprintf("path %q conflicts with an existing scalar value", head))
		}
	}
	merged, err := mergePath(child, segs[1:], val, strict)
	if err != nil {
		return obj, err
	}
	return obj.With(head, value.NewObject(merged)), nil
}

func mergeObjects(a, b value.Object, strict bool) (value.Object, error) {
	out := a
	for _, f := range b.Fields() {
		var err error
		out, err = mergePath(out, []string{f.Key}, f.Value, strict)
		if err != nil {
			return out, err
		}
	}
	return out, nil
}
