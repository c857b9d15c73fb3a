package toon

import (
	"github.com/tidepoolcode/toon-go/internal/printer"
	"github.com/tidepoolcode/toon-go/internal/token"
	"github.com/tidepoolcode/toon-go/internal/parser"
)

// Delimiter selects the separator character used in inline and tabular
// rows.
type Delimiter int

const (
	Comma Delimiter = Delimiter(token.Comma)
	Tab   Delimiter = Delimiter(token.Tab)
	Pipe  Delimiter = Delimiter(token.Pipe)
)

// FoldMode selects the encoder's dotted-key folding behavior.
type FoldMode int

const (
	FoldOff  FoldMode = FoldMode(printer.FoldOff)
	FoldSafe FoldMode = FoldMode(printer.FoldSafe)
)

// ExpandMode selects the decoder's dot-path expansion behavior.
type ExpandMode int

const (
	ExpandOff  ExpandMode = ExpandMode(parser.ExpandOff)
	ExpandSafe ExpandMode = ExpandMode(parser.ExpandSafe)
)

// EncodeOption configures an Encoder, per spec.md §4.3.
type EncodeOption func(e *Encoder) error

// Indent sets the number of spaces per nesting level (default 2).
func Indent(spaces int) EncodeOption {
	return func(e *Encoder) error {
		e.indent = spaces
		return nil
	}
}

// WithDelimiter selects the cell delimiter for inline and tabular rows
// (default Comma).
func WithDelimiter(d Delimiter) EncodeOption {
	return func(e *Encoder) error {
		e.delimiter = token.Delimiter(d)
		return nil
	}
}

// WithKeyFolding enables or disables dotted-key folding (default Off).
func WithKeyFolding(mode FoldMode) EncodeOption {
	return func(e *Encoder) error {
		e.keyFolding = printer.FoldMode(mode)
		return nil
	}
}

// WithFlattenDepth bounds how many segments key folding may chain
// (default 0, meaning unbounded).
func WithFlattenDepth(depth int) EncodeOption {
	return func(e *Encoder) error {
		e.flattenDepth = depth
		return nil
	}
}

// DecodeOption configures a Decoder, per spec.md §4.3.
type DecodeOption func(d *Decoder) error

// DecodeIndent sets the indent width the tokenizer assumes (default 2).
func DecodeIndent(spaces int) DecodeOption {
	return func(d *Decoder) error {
		d.indent = spaces
		return nil
	}
}

// Strict enables the strict-mode checks: indentation multiples, no tabs
// in leading whitespace, BlankLineInArray, and ExpansionConflict instead
// of silent overwrite.
func Strict(strict bool) DecodeOption {
	return func(d *Decoder) error {
		d.strict = strict
		return nil
	}
}

// WithPathExpansion enables or disables the dot-path expansion post-pass
// (default Off).
func WithPathExpansion(mode ExpandMode) DecodeOption {
	return func(d *Decoder) error {
		d.expand = parser.ExpandMode(mode)
		return nil
	}
}

// Validator attaches a post-decode struct validation hook, invoked after
// a Decode that targets a struct. *validator.Validate from
// github.com/go-playground/validator/v10 satisfies StructValidator.
func Validator(v StructValidator) DecodeOption {
	return func(d *Decoder) error {
		d.validator = v
		return nil
	}
}
