package parser

import "github.com/tidepoolcode/toon-go/internal/errors"

// splitCells splits s on delim, honoring double-quoted spans (the
// delimiter inside a quoted cell does not split) and backslash escapes
// inside those spans. Used for inline primitive rows, tabular data rows,
// and header field-name lists.
func splitCells(s string, delim byte) ([]string, error) {
	var cells []string
	var cur []byte
	inQuotes := false
	i := 0
	for i < len(s) {
		c := s[i]
		switch {
		case inQuotes:
			cur = append(cur, c)
			if c == '\\' && i+1 < len(s) {
				cur = append(cur, s[i+1])
				i += 2
				continue
			}
			if c == '"' {
				inQuotes = false
			}
			i++
		case c == '"':
			inQuotes = true
			cur = append(cur, c)
			i++
		case c == delim:
			cells = append(cells, string(cur))
			cur = nil
			i++
		default:
			cur = append(cur, c)
			i++
		}
	}
	if inQuotes {
		return nil, errors.New(errors.UnterminatedString, "missing closing quote in delimited row")
	}
	cells = append(cells, string(cur))
	return cells, nil
}

// firstUnquoted scans s for the first occurrence of any byte in targets
// that is not inside a double-quoted span, returning its index and which
// byte matched, or (-1, 0) if none is found outside quotes.
func firstUnquoted(s string, targets string) (int, byte) {
	inQuotes := false
	i := 0
	for i < len(s) {
		c := s[i]
		if inQuotes {
			if c == '\\' && i+1 < len(s) {
				i += 2
				continue
			}
			if c == '"' {
				inQuotes = false
			}
			i++
			continue
		}
		if c == '"' {
			inQuotes = true
			i++
			continue
		}
		for j := 0; j < len(targets); j++ {
			if c == targets[j] {
				return i, c
			}
		}
		i++
	}
	return -1, 0
}
