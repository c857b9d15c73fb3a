package printer

import (
	"regexp"
	"strings"

	"github.com/tidepoolcode/toon-go/internal/token"
)

var (
	numberLiteralRe = regexp.MustCompile(`^-?\d+(\.\d+)?([eE][+-]?\d+)?$`)
	leadingZeroRe   = regexp.MustCompile(`^-?0\d`)
	bareKeyRe       = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.]*$`)
)

// needsQuoteString implements the quoting-trigger list of spec.md §4.1.
func needsQuoteString(s string, delim token.Delimiter) bool {
	if s == "" {
		return true
	}
	if strings.TrimSpace(s) != s {
		return true
	}
	if s == "true" || s == "false" || s == "null" {
		return true
	}
	if s[0] == '-' {
		return true
	}
	if strings.IndexByte(s, delim.Byte()) != -1 {
		return true
	}
	if strings.ContainsAny(s, ":\"\\[]{}\n\r\t") {
		return true
	}
	if numberLiteralRe.MatchString(s) {
		return true
	}
	if leadingZeroRe.MatchString(s) {
		return true
	}
	return false
}

// quoteStringIfNeeded renders s bare or quoted per the active delimiter.
func quoteStringIfNeeded(s string, delim token.Delimiter) string {
	if needsQuoteString(s, delim) {
		return "\"" + escapeForQuotes(s) + "\""
	}
	return s
}

// isBareKey reports whether key may be written without quotes: spec.md
// §4.1 "bare iff it matches [A-Za-z_][A-Za-z0-9_.]* and contains no
// control/quote/backslash" — the regex already excludes those by
// construction.
func isBareKey(key string) bool {
	return bareKeyRe.MatchString(key)
}

// quoteKey renders key bare or quoted.
func quoteKey(key string) string {
	if isBareKey(key) {
		return key
	}
	return "\"" + escapeForQuotes(key) + "\""
}

// escapeForQuotes applies the shared escape set: \\ \" \n \r \t.
func escapeForQuotes(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
