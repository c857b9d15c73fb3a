package value_test

import (
	"testing"

	"github.com/tidepoolcode/toon-go/value"
)

func TestObjectWithPreservesOrder(t *testing.T) {
	obj := value.Object{}.With("b", value.FromI64(2)).With("a", value.FromI64(1))
	keys := obj.Keys()
	if len(keys) != 2 || keys[0] != "b" || keys[1] != "a" {
		t.Fatalf("expected insertion order [b a], got %v", keys)
	}
}

func TestObjectWithReplacesInPlace(t *testing.T) {
	obj := value.Object{}.With("a", value.FromI64(1)).With("b", value.FromI64(2)).With("a", value.FromI64(99))
	keys := obj.Keys()
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "b" {
		t.Fatalf("expected order preserved on replace, got %v", keys)
	}
	v, ok := obj.Get("a")
	if !ok {
		t.Fatal("expected key a to exist")
	}
	n, _ := v.AsNumber()
	got, _ := n.Int64()
	if got != 99 {
		t.Errorf("Get(a) = %v, want 99", got)
	}
}

func TestObjectKeySetEqual(t *testing.T) {
	a := value.Object{}.With("x", value.FromI64(1)).With("y", value.FromI64(2))
	b := value.Object{}.With("y", value.FromI64(99)).With("x", value.FromI64(0))
	if !a.KeySetEqual(b) {
		t.Error("expected key sets to be equal regardless of order/value")
	}

	c := value.Object{}.With("x", value.FromI64(1))
	if a.KeySetEqual(c) {
		t.Error("expected differing key sets to compare unequal")
	}
}

func TestObjectEqualIsOrderSensitive(t *testing.T) {
	a := value.Object{}.With("x", value.FromI64(1)).With("y", value.FromI64(2))
	b := value.Object{}.With("y", value.FromI64(2)).With("x", value.FromI64(1))
	if a.Equal(b) {
		t.Error("expected differently ordered objects to compare unequal under Equal")
	}
	if !a.KeySetEqual(b) {
		t.Error("expected same key sets regardless of order")
	}
}

func TestObjectHas(t *testing.T) {
	obj := value.Object{}.With("k", value.Null())
	if !obj.Has("k") {
		t.Error("expected Has(k) true")
	}
	if obj.Has("missing") {
		t.Error("expected Has(missing) false")
	}
}
