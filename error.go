package toon

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	colorable "github.com/mattn/go-colorable"
	"golang.org/x/xerrors"

	ierrors "github.com/tidepoolcode/toon-go/internal/errors"
)

// Kind re-exports the closed error taxonomy of spec.md §7 under the
// public package, so callers never need to import the internal package
// to classify a returned error.
type Kind = ierrors.Kind

const (
	InvalidSyntax      = ierrors.InvalidSyntax
	InvalidEscape      = ierrors.InvalidEscape
	UnterminatedString = ierrors.UnterminatedString
	MissingColon       = ierrors.MissingColon
	IndentationError   = ierrors.IndentationError
	BlankLineInArray   = ierrors.BlankLineInArray
	CountMismatch      = ierrors.CountMismatch
	WidthMismatch      = ierrors.WidthMismatch
	ExpansionConflict  = ierrors.ExpansionConflict
	DelimiterMismatch  = ierrors.DelimiterMismatch
	InvalidHeader      = ierrors.InvalidHeader
	Io                 = ierrors.Io
	Custom             = ierrors.Custom
)

// KindOf reports the taxonomy Kind carried by err, if err (or something it
// wraps) is a *ierrors.SyntaxError.
func KindOf(err error) (Kind, bool) {
	var se *ierrors.SyntaxError
	if xerrors.As(err, &se) {
		return se.Kind(), true
	}
	return 0, false
}

// PositionOf reports the 1-based (line, column) carried by err, if any.
func PositionOf(err error) (line, column int, ok bool) {
	var se *ierrors.SyntaxError
	if xerrors.As(err, &se) {
		return se.Position()
	}
	return 0, 0, false
}

// IsKind reports whether err's taxonomy Kind is k.
func IsKind(err error, k Kind) bool {
	got, ok := KindOf(err)
	return ok && got == k
}

// FormatError writes err to w as the CLI diagnostic format from spec.md
// §6: "Error: <message>". The "Error: " prefix is colored red unless
// fatih/color's global NoColor is set, which it is when standard output
// (not w) is not a terminal or NO_COLOR is set; an *os.File w is wrapped
// with go-colorable so the color also renders on Windows. Mirrors the
// teacher's practice of a dedicated diagnostic printer rather than
// leaning on bare fmt.Fprintln at call sites.
func FormatError(w io.Writer, err error) {
	dst := w
	if f, ok := w.(*os.File); ok {
		dst = colorable.NewColorable(f)
	}
	red := color.New(color.FgRed, color.Bold)
	red.Fprint(dst, "Error: ")
	fmt.Fprintln(dst, err.Error())
}
