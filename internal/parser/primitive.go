package parser

import (
	"strconv"
	"strings"

	"github.com/tidepoolcode/toon-go/internal/errors"
	"github.com/tidepoolcode/toon-go/value"
)

// parseKey splits a bare or quoted key off the front of s, returning the
// decoded key text, whether it was quoted in the source, and the remainder
// of s after the key. It assumes s begins immediately at the key (no
// leading whitespace).
func parseKey(s string) (key string, quoted bool, rest string, err error) {
	if len(s) > 0 && s[0] == '"' {
		unescaped, consumed, uerr := unquoteString(s)
		if uerr != nil {
			return "", false, "", uerr
		}
		return unescaped, true, s[consumed:], nil
	}
	i := 0
	for i < len(s) {
		c := s[i]
		if c == ':' || c == '[' {
			break
		}
		i++
	}
	return s[:i], false, s[i:], nil
}

// unquoteString parses a double-quoted string starting at s[0] == '"' and
// returns the decoded value plus the number of source bytes consumed
// (including both quote characters).
func unquoteString(s string) (string, int, error) {
	if len(s) == 0 || s[0] != '"' {
		return "", 0, errors.New(errors.InvalidSyntax, "expected opening quote")
	}
	var b strings.Builder
	i := 1
	for i < len(s) {
		c := s[i]
		if c == '"' {
			return b.String(), i + 1, nil
		}
		if c == '\\' {
			if i+1 >= len(s) {
				return "", 0, errors.New(errors.UnterminatedString, "string ends inside an escape sequence")
			}
			switch s[i+1] {
			case '\\':
				b.WriteByte('\\')
			case '"':
				b.WriteByte('"')
			case 'n':
				b.WriteByte('\n')
			case 'r':
				b.WriteByte('\r')
			case 't':
				b.WriteByte('\t')
			default:
				return "", 0, errors.New(errors.InvalidEscape, "unrecognized escape sequence \\"+string(s[i+1]))
			}
			i += 2
			continue
		}
		b.WriteByte(c)
		i++
	}
	return "", 0, errors.New(errors.UnterminatedString, "missing closing quote")
}

// parsePrimitive parses a scalar cell or inline value per spec.md §4.2:
// empty string, quoted string, true/false, null, a number, or a bare
// (trimmed) string.
func parsePrimitive(s string) (value.Value, error) {
	if s == "" {
		return value.FromString(""), nil
	}
	if s[0] == '"' {
		unescaped, consumed, err := unquoteString(s)
		if err != nil {
			return value.Value{}, err
		}
		if consumed != len(s) {
			return value.Value{}, errors.New(errors.InvalidSyntax, "unexpected characters after closing quote")
		}
		return value.FromString(unescaped), nil
	}
	switch s {
	case "true":
		return value.FromBool(true), nil
	case "false":
		return value.FromBool(false), nil
	case "null":
		return value.Null(), nil
	}
	if n, ok := parseNumberLiteral(s); ok {
		return value.FromNumber(n), nil
	}
	return value.FromString(strings.TrimSpace(s)), nil
}

// parseNumberLiteral recognizes integer, decimal, and scientific-notation
// literals, rejecting leading zeros (e.g. "01"). Negative values widen to
// I64 (never U64); fractional or exponential values widen to F64.
func parseNumberLiteral(s string) (value.Number, bool) {
	if s == "" {
		return value.Number{}, false
	}
	i := 0
	negative := false
	if s[i] == '-' {
		negative = true
		i++
	}
	start := i
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	intDigits := i - start
	if intDigits == 0 {
		return value.Number{}, false
	}
	if intDigits > 1 && s[start] == '0' {
		return value.Number{}, false
	}
	isFloat := false
	if i < len(s) && s[i] == '.' {
		isFloat = true
		i++
		fracStart := i
		for i < len(s) && isDigit(s[i]) {
			i++
		}
		if i == fracStart {
			return value.Number{}, false
		}
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		isFloat = true
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		expStart := i
		for i < len(s) && isDigit(s[i]) {
			i++
		}
		if i == expStart {
			return value.Number{}, false
		}
	}
	if i != len(s) {
		return value.Number{}, false
	}
	if isFloat {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return value.Number{}, false
		}
		return value.NumberFromF64(f), true
	}
	if negative {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return value.Number{}, false
		}
		return value.NumberFromI64(n), true
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return value.Number{}, false
	}
	return value.NumberFromU64(n), true
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
