package value_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/tidepoolcode/toon-go/value"
)

func TestValueKind(t *testing.T) {
	tests := []struct {
		name string
		v    value.Value
		want value.Kind
	}{
		{"null", value.Null(), value.KindNull},
		{"bool", value.FromBool(true), value.KindBool},
		{"number", value.FromI64(1), value.KindNumber},
		{"string", value.FromString("x"), value.KindString},
		{"array", value.NewArray(), value.KindArray},
		{"object", value.NewObject(value.Object{}), value.KindObject},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Kind(); got != tt.want {
				t.Errorf("Kind() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValueIsPrimitive(t *testing.T) {
	if !value.FromString("x").IsPrimitive() {
		t.Error("string should be primitive")
	}
	if value.NewArray().IsPrimitive() {
		t.Error("array should not be primitive")
	}
}

func TestValueEqual(t *testing.T) {
	a := value.NewObject(value.Object{}.With("a", value.FromI64(1)).With("b", value.FromString("x")))
	b := value.NewObject(value.Object{}.With("a", value.FromI64(1)).With("b", value.FromString("x")))
	if !value.Equal(a, b) {
		t.Error("expected equal objects to compare equal")
	}

	c := value.NewObject(value.Object{}.With("a", value.FromI64(2)))
	if value.Equal(a, c) {
		t.Error("expected different objects to compare unequal")
	}

	if !value.Equal(value.FromI64(1), value.FromF64(1)) {
		t.Error("expected numerically equal numbers to compare equal across kind")
	}
}

func TestNewArrayNilBecomesEmpty(t *testing.T) {
	v := value.NewArray(nil...)
	arr, ok := v.AsArray()
	if !ok {
		t.Fatal("expected array kind")
	}
	if arr == nil {
		t.Error("expected non-nil empty slice, got nil")
	}
	if diff := cmp.Diff(0, len(arr)); diff != "" {
		t.Errorf("unexpected length (-want +got):\n%s", diff)
	}
}

func TestAsAccessorsRejectWrongKind(t *testing.T) {
	v := value.FromString("x")
	if _, ok := v.AsBool(); ok {
		t.Error("AsBool should fail on string")
	}
	if _, ok := v.AsNumber(); ok {
		t.Error("AsNumber should fail on string")
	}
	if _, ok := v.AsArray(); ok {
		t.Error("AsArray should fail on string")
	}
	if _, ok := v.AsObject(); ok {
		t.Error("AsObject should fail on string")
	}
}
