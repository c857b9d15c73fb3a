package value_test

import (
	"math"
	"testing"

	"github.com/tidepoolcode/toon-go/value"
)

func TestNumberInt64(t *testing.T) {
	tests := []struct {
		name    string
		n       value.Number
		want    int64
		wantOK  bool
	}{
		{"i64 direct", value.NumberFromI64(-5), -5, true},
		{"u64 in range", value.NumberFromU64(5), 5, true},
		{"u64 overflow", value.NumberFromU64(math.MaxUint64), 0, false},
		{"f64 integral", value.NumberFromF64(3.0), 3, true},
		{"f64 fractional", value.NumberFromF64(3.5), 0, false},
		{"f64 nan", value.NumberFromF64(math.NaN()), 0, false},
		{"f64 inf", value.NumberFromF64(math.Inf(1)), 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.n.Int64()
			if ok != tt.wantOK {
				t.Fatalf("Int64() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("Int64() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNumberUint64(t *testing.T) {
	tests := []struct {
		name   string
		n      value.Number
		want   uint64
		wantOK bool
	}{
		{"u64 direct", value.NumberFromU64(7), 7, true},
		{"i64 negative", value.NumberFromI64(-1), 0, false},
		{"i64 positive", value.NumberFromI64(7), 7, true},
		{"f64 negative", value.NumberFromF64(-1.0), 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.n.Uint64()
			if ok != tt.wantOK {
				t.Fatalf("Uint64() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("Uint64() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNumbersEqualAcrossKind(t *testing.T) {
	if !value.NumbersEqual(value.NumberFromI64(1), value.NumberFromF64(1.0)) {
		t.Error("expected 1 == 1.0 across kinds")
	}
	if !value.NumbersEqual(value.NumberFromU64(2), value.NumberFromI64(2)) {
		t.Error("expected 2u == 2i")
	}
	if value.NumbersEqual(value.NumberFromI64(1), value.NumberFromI64(2)) {
		t.Error("expected 1 != 2")
	}
}

func TestNumberIsInteger(t *testing.T) {
	if !value.NumberFromI64(1).IsInteger() {
		t.Error("i64 should be integer")
	}
	if !value.NumberFromU64(1).IsInteger() {
		t.Error("u64 should be integer")
	}
	if value.NumberFromF64(1.5).IsInteger() {
		t.Error("f64 should not be integer")
	}
}
