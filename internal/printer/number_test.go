package printer

import (
	"math"
	"testing"

	"github.com/tidepoolcode/toon-go/value"
)

func TestFormatNumberIntegers(t *testing.T) {
	if got := formatNumber(value.NumberFromI64(-42)); got != "-42" {
		t.Errorf("got %q, want -42", got)
	}
	if got := formatNumber(value.NumberFromU64(42)); got != "42" {
		t.Errorf("got %q, want 42", got)
	}
}

func TestFormatNumberFloatIntegralDropsDecimalPoint(t *testing.T) {
	if got := formatNumber(value.NumberFromF64(3.0)); got != "3" {
		t.Errorf("got %q, want 3", got)
	}
}

func TestFormatNumberFloatFractional(t *testing.T) {
	if got := formatNumber(value.NumberFromF64(3.5)); got != "3.5" {
		t.Errorf("got %q, want 3.5", got)
	}
}

func TestFormatNumberNegativeZero(t *testing.T) {
	if got := formatNumber(value.NumberFromF64(math.Copysign(0, -1))); got != "0" {
		t.Errorf("got %q, want 0 for negative zero", got)
	}
}

func TestFormatNumberNonFinite(t *testing.T) {
	if got := formatNumber(value.NumberFromF64(math.NaN())); got != "null" {
		t.Errorf("got %q, want null for NaN", got)
	}
	if got := formatNumber(value.NumberFromF64(math.Inf(1))); got != "null" {
		t.Errorf("got %q, want null for +Inf", got)
	}
	if got := formatNumber(value.NumberFromF64(math.Inf(-1))); got != "null" {
		t.Errorf("got %q, want null for -Inf", got)
	}
}

func TestFormatNumberNeverExponential(t *testing.T) {
	got := formatNumber(value.NumberFromF64(1234567890.125))
	if got == "" || got[0] == 'e' {
		t.Errorf("unexpected format %q", got)
	}
	for _, c := range got {
		if c == 'e' || c == 'E' {
			t.Errorf("got %q, should never use exponential notation", got)
		}
	}
}
