package toon_test

import (
	"bytes"
	"testing"

	toon "github.com/tidepoolcode/toon-go"
)

func TestKindOfReportsSyntaxErrorKind(t *testing.T) {
	_, err := toon.UnmarshalValue([]byte("items[3]: a,b"))
	if err == nil {
		t.Fatal("expected a count mismatch error")
	}
	if !toon.IsKind(err, toon.CountMismatch) {
		t.Errorf("expected CountMismatch, got %v", err)
	}
}

func TestKindOfFalseForNonSyntaxError(t *testing.T) {
	if _, ok := toon.KindOf(nil); ok {
		t.Error("expected KindOf(nil) to report false")
	}
}

func TestPositionOfReportsLineAndColumn(t *testing.T) {
	text := "users[2]{name,age}:\n  Alice\n  Bob,30"
	_, err := toon.UnmarshalValue([]byte(text))
	if err == nil {
		t.Fatal("expected a syntax error")
	}
	line, _, ok := toon.PositionOf(err)
	if !ok {
		t.Fatal("expected a position to be reported")
	}
	if line != 2 {
		t.Errorf("line = %d, want 2", line)
	}
}

func TestFormatErrorWritesPrefixedMessage(t *testing.T) {
	var buf bytes.Buffer
	_, err := toon.UnmarshalValue([]byte("items[3]: a,b"))
	toon.FormatError(&buf, err)
	if got := buf.String(); len(got) == 0 || got[:7] != "Error: " {
		t.Errorf("got %q, expected it to start with \"Error: \"", got)
	}
}
