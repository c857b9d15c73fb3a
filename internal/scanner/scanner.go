// Package scanner implements Stage A of the decoder pipeline (spec.md
// §4.2): splitting TOON text into Lines, each carrying its indentation
// depth and 1-based source line number, with blank lines dropped.
package scanner

import (
	"strings"

	"github.com/tidepoolcode/toon-go/internal/errors"
	"github.com/tidepoolcode/toon-go/internal/token"
)

// Options configures the tokenizer's indentation discipline.
type Options struct {
	Indent int  // spaces per nesting level; must be >= 1.
	Strict bool // reject tab indentation and non-multiple indentation.
}

// Tokenize splits text on "\n" into Lines, stripping leading indentation
// and computing each line's nesting depth. Lines whose content is empty
// after stripping indentation are dropped, invisible to the parser except
// for the strict-mode gap check performed later, inside array bodies,
// against the original line Number.
func Tokenize(text string, opts Options) ([]token.Line, error) {
	indent := opts.Indent
	if indent <= 0 {
		indent = 2
	}
	raw := strings.Split(text, "\n")
	lines := make([]token.Line, 0, len(raw))
	for i, r := range raw {
		lineNumber := i + 1
		leading, rest := splitLeadingSpace(r)
		if rest == "" {
			continue
		}
		if opts.Strict {
			if strings.ContainsRune(leading, '\t') {
				return nil, errors.NewAt(errors.IndentationError, "tab characters are not allowed in indentation", lineNumber, 1)
			}
			if len(leading)%indent != 0 {
				return nil, errors.NewAt(errors.IndentationError, "leading space count is not a multiple of the configured indent width", lineNumber, 1)
			}
		}
		depth := len(leading) / indent
		lines = append(lines, token.Line{
			Content: rest,
			Depth:   depth,
			Number:  lineNumber,
		})
	}
	return lines, nil
}

// splitLeadingSpace separates a line's leading run of spaces/tabs from the
// remainder. It does not validate indentation; Tokenize does that, since
// the rule (tabs forbidden, multiples of indent) only applies in strict mode.
func splitLeadingSpace(line string) (leading, rest string) {
	i := 0
	for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	return line[:i], line[i:]
}
