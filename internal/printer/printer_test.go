package printer_test

import (
	"math"
	"testing"

	"github.com/tidepoolcode/toon-go/internal/printer"
	"github.com/tidepoolcode/toon-go/internal/token"
	"github.com/tidepoolcode/toon-go/value"
)

func defaultOpts() printer.Options {
	return printer.Options{Indent: 2, Delimiter: token.Comma}
}

func TestPrintEmptyArray(t *testing.T) {
	obj := value.Object{}.With("items", value.NewArray())
	got := printer.Print(value.NewObject(obj), defaultOpts())
	want := "items[0]:"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPrintPrimitiveArray(t *testing.T) {
	obj := value.Object{}.With("items", value.NewArray(value.FromString("a"), value.FromString("b")))
	got := printer.Print(value.NewObject(obj), defaultOpts())
	want := "items[2]: a,b"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPrintTabularArray(t *testing.T) {
	row := func(name string, age int64) value.Value {
		o := value.Object{}.With("name", value.FromString(name)).With("age", value.FromI64(age))
		return value.NewObject(o)
	}
	obj := value.Object{}.With("users", value.NewArray(row("Alice", 30), row("Bob", 25)))
	got := printer.Print(value.NewObject(obj), defaultOpts())
	want := "users[2]{name,age}:\n  Alice,30\n  Bob,25"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPrintMixedArray(t *testing.T) {
	o := value.Object{}.With("x", value.FromI64(1))
	obj := value.Object{}.With("items", value.NewArray(value.FromI64(1), value.NewObject(o)))
	got := printer.Print(value.NewObject(obj), defaultOpts())
	want := "items[2]:\n  - 1\n  - x: 1"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPrintMixedArrayNonTrailingNestedObjectField(t *testing.T) {
	inner := value.Object{}.With("x", value.FromI64(1))
	row := value.Object{}.With("a", value.NewObject(inner)).With("b", value.FromI64(2))
	obj := value.Object{}.With("items", value.NewArray(value.NewObject(row)))
	got := printer.Print(value.NewObject(obj), defaultOpts())
	want := "items[1]:\n  - a:\n      x: 1\n    b: 2"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPrintNegativeZeroBecomesZero(t *testing.T) {
	obj := value.Object{}.With("v", value.FromF64(math.Copysign(0, -1)))
	got := printer.Print(value.NewObject(obj), defaultOpts())
	want := "v: 0"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPrintStringQuotingTrueFalseNull(t *testing.T) {
	obj := value.Object{}.With("v", value.FromString("true"))
	got := printer.Print(value.NewObject(obj), defaultOpts())
	want := `v: "true"`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPrintDelimiterInStringForcesQuoting(t *testing.T) {
	obj := value.Object{}.With("v", value.FromString("a,b"))
	got := printer.Print(value.NewObject(obj), defaultOpts())
	want := `v: "a,b"`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPrintKeyFoldingSafe(t *testing.T) {
	inner := value.Object{}.With("c", value.FromI64(1))
	mid := value.Object{}.With("b", value.NewObject(inner))
	obj := value.Object{}.With("a", value.NewObject(mid))
	opts := defaultOpts()
	opts.KeyFolding = printer.FoldSafe
	got := printer.Print(value.NewObject(obj), opts)
	want := "a.b.c: 1"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPrintKeyFoldingOffLeavesNested(t *testing.T) {
	inner := value.Object{}.With("b", value.FromI64(1))
	obj := value.Object{}.With("a", value.NewObject(inner))
	got := printer.Print(value.NewObject(obj), defaultOpts())
	want := "a:\n  b: 1"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPrintArrayOfArrays(t *testing.T) {
	row := func(a, b int64) value.Value {
		return value.NewArray(value.FromI64(a), value.FromI64(b))
	}
	obj := value.Object{}.With("matrix", value.NewArray(row(1, 2), row(3, 4)))
	got := printer.Print(value.NewObject(obj), defaultOpts())
	want := "matrix[2]:\n  - [2]: 1,2\n  - [2]: 3,4"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPrintPipeDelimiter(t *testing.T) {
	obj := value.Object{}.With("items", value.NewArray(value.FromString("a"), value.FromString("b")))
	opts := printer.Options{Indent: 2, Delimiter: token.Pipe}
	got := printer.Print(value.NewObject(obj), opts)
	want := "items[2|]: a|b"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
