package parser

import (
	"strconv"

	"github.com/tidepoolcode/toon-go/internal/errors"
	"github.com/tidepoolcode/toon-go/internal/token"
)

// parseHeaderLine attempts to read content as an array header:
// `[key] "[" N [delim] "]" ["{" field (delim field)* "}"] ":" [inline]`.
// ok is false (with err nil) when content simply isn't a header line, so
// the caller can fall back to key-value parsing.
func parseHeaderLine(content string) (hdr token.ArrayHeader, inline string, ok bool, err error) {
	bracketOpen, _ := firstUnquoted(content, "[")
	if bracketOpen == -1 {
		return token.ArrayHeader{}, "", false, nil
	}
	if colonIdx, _ := firstUnquoted(content, ":"); colonIdx != -1 && colonIdx < bracketOpen {
		return token.ArrayHeader{}, "", false, nil
	}
	closeOffset, _ := firstUnquoted(content[bracketOpen+1:], "]")
	if closeOffset == -1 {
		return token.ArrayHeader{}, "", false, nil
	}
	bracketClose := bracketOpen + 1 + closeOffset

	lenDelim := content[bracketOpen+1 : bracketClose]
	if lenDelim == "" {
		return token.ArrayHeader{}, "", false, errors.New(errors.InvalidHeader, "array header is missing a length")
	}
	delim := token.Comma
	digits := lenDelim
	switch lenDelim[len(lenDelim)-1] {
	case '\t':
		delim = token.Tab
		digits = lenDelim[:len(lenDelim)-1]
	case '|':
		delim = token.Pipe
		digits = lenDelim[:len(lenDelim)-1]
	}
	length, convErr := strconv.Atoi(digits)
	if convErr != nil || length < 0 {
		return token.ArrayHeader{}, "", false, errors.New(errors.InvalidHeader, "array header length is not a non-negative integer: "+digits)
	}

	pos := bracketClose + 1
	var fields []string
	var fieldsQuoted []bool
	hasFields := false
	if pos < len(content) && content[pos] == '{' {
		closeBraceOffset, _ := firstUnquoted(content[pos+1:], "}")
		if closeBraceOffset == -1 {
			return token.ArrayHeader{}, "", false, errors.New(errors.InvalidHeader, "array header field list is missing a closing '}'")
		}
		closeBrace := pos + 1 + closeBraceOffset
		fieldsStr := content[pos+1 : closeBrace]
		tokens, splitErr := splitCells(fieldsStr, delim.Byte())
		if splitErr != nil {
			return token.ArrayHeader{}, "", false, splitErr
		}
		fields = make([]string, len(tokens))
		fieldsQuoted = make([]bool, len(tokens))
		for i, tok := range tokens {
			name, quoted, rest, perr := parseKey(tok)
			if perr != nil {
				return token.ArrayHeader{}, "", false, perr
			}
			if rest != "" {
				return token.ArrayHeader{}, "", false, errors.New(errors.InvalidHeader, "unexpected characters in column name: "+tok)
			}
			fields[i] = name
			fieldsQuoted[i] = quoted
		}
		hasFields = true
		pos = closeBrace + 1
	}

	if pos >= len(content) || content[pos] != ':' {
		return token.ArrayHeader{}, "", false, errors.New(errors.InvalidHeader, "array header is missing a trailing ':'")
	}
	inline = content[pos+1:]
	if len(inline) > 0 && inline[0] == ' ' {
		inline = inline[1:]
	}

	keyPart := content[:bracketOpen]
	hasKey := keyPart != ""
	var key string
	var keyQuoted bool
	if hasKey {
		k, quoted, rest, perr := parseKey(keyPart)
		if perr != nil {
			return token.ArrayHeader{}, "", false, perr
		}
		if rest != "" {
			return token.ArrayHeader{}, "", false, errors.New(errors.InvalidHeader, "unexpected characters before '[' in array header")
		}
		key = k
		keyQuoted = quoted
	}

	return token.ArrayHeader{
		Key:          key,
		HasKey:       hasKey,
		KeyWasQuoted: keyQuoted,
		Length:       length,
		Delimiter:    delim,
		Fields:       fields,
		FieldsQuoted: fieldsQuoted,
		HasFields:    hasFields,
	}, inline, true, nil
}
