// Package parser implements Stage B of the decoder pipeline (spec.md
// §4.2): a recursive-descent grammar driven by array headers, consuming
// the Lines produced by the scanner and building a value.Value tree, with
// an optional dot-path expansion pass folded in as each object level is
// finished.
package parser

import (
	"fmt"
	"strings"

	"github.com/tidepoolcode/toon-go/internal/errors"
	"github.com/tidepoolcode/toon-go/internal/scanner"
	"github.com/tidepoolcode/toon-go/internal/token"
	"github.com/tidepoolcode/toon-go/value"
)

// ExpandMode selects whether dot-separated keys are folded into nested
// objects after parsing.
type ExpandMode int

const (
	ExpandOff ExpandMode = iota
	ExpandSafe
)

// Options configures both the scanner and the parser.
type Options struct {
	Indent int
	Strict bool
	Expand ExpandMode
}

// Parse tokenizes text and parses it into a value.Value, per spec.md §4.2.
func Parse(text string, opts Options) (value.Value, error) {
	lines, err := scanner.Tokenize(text, scanner.Options{Indent: opts.Indent, Strict: opts.Strict})
	if err != nil {
		return value.Value{}, err
	}
	return parseDocument(lines, opts)
}

func parseDocument(lines []token.Line, opts Options) (value.Value, error) {
	if len(lines) == 0 {
		obj, _ := finishObject(nil, false, false)
		return value.NewObject(obj), nil
	}
	first := lines[0]

	hdr, inline, isHeader, err := parseHeaderLine(first.Content)
	if err != nil {
		return value.Value{}, err
	}
	if isHeader && !hdr.HasKey {
		arr, newIdx, aerr := parseArrayBody(opts, lines, 1, first.Depth+1, hdr, inline)
		if aerr != nil {
			return value.Value{}, aerr
		}
		if newIdx != len(lines) {
			return value.Value{}, errors.NewAt(errors.InvalidSyntax, "unexpected trailing content after root array", lines[newIdx].Number, 1)
		}
		return arr, nil
	}

	if len(lines) == 1 && !isHeader {
		if colonIdx, _ := firstUnquoted(first.Content, ":"); colonIdx == -1 {
			return parsePrimitive(first.Content)
		}
	}

	obj, newIdx, oerr := parseObjectLevel(opts, lines, 0, first.Depth)
	if oerr != nil {
		return value.Value{}, oerr
	}
	if newIdx != len(lines) {
		return value.Value{}, errors.NewAt(errors.IndentationError, "unexpected dedent/indent in object body", lines[newIdx].Number, 1)
	}
	return value.NewObject(obj), nil
}

func parseObjectLevel(opts Options, lines []token.Line, idx, depth int) (value.Object, int, error) {
	return parseObjectLevelFrom(opts, lines, idx, depth, nil)
}

func parseObjectLevelFrom(opts Options, lines []token.Line, idx, depth int, seed []fieldEntry) (value.Object, int, error) {
	fields := append([]fieldEntry{}, seed...)
	for idx < len(lines) && lines[idx].Depth == depth {
		fe, newIdx, err := parseOneEntry(opts, lines, idx, depth)
		if err != nil {
			return value.Object{}, 0, err
		}
		fields = append(fields, fe)
		idx = newIdx
	}
	obj, err := finishObject(fields, opts.Expand == ExpandSafe, opts.Strict)
	if err != nil {
		return value.Object{}, 0, err
	}
	return obj, idx, nil
}

// parseOneEntry parses the object entry that begins at lines[idx]: either a
// keyed array header, or a key-value line (possibly recursing into a
// nested object when its inline value is empty).
func parseOneEntry(opts Options, lines []token.Line, idx, depth int) (fieldEntry, int, error) {
	line := lines[idx]
	hdr, inline, isHeader, err := parseHeaderLine(line.Content)
	if err != nil {
		return fieldEntry{}, 0, err
	}
	if isHeader {
		if !hdr.HasKey {
			return fieldEntry{}, 0, errors.NewAt(errors.InvalidHeader, "array header without a key cannot appear as an object entry", line.Number, 1)
		}
		arrVal, newIdx, aerr := parseArrayBody(opts, lines, idx+1, depth+1, hdr, inline)
		if aerr != nil {
			return fieldEntry{}, 0, aerr
		}
		return fieldEntry{key: hdr.Key, quoted: hdr.KeyWasQuoted, val: arrVal}, newIdx, nil
	}
	return parseEntryContent(opts, line.Content, lines, idx+1, depth)
}

// parseEntryContent parses a "key[:][ value]" fragment shared by normal
// object-level lines and the first field embedded in a dash-led list item.
// afterIdx is the index of the line immediately following the fragment
// (where a nested object, if any, would begin).
func parseEntryContent(opts Options, content string, lines []token.Line, afterIdx, depth int) (fieldEntry, int, error) {
	key, quoted, rest, err := parseKey(content)
	if err != nil {
		return fieldEntry{}, 0, err
	}
	if rest == "" || rest[0] != ':' {
		return fieldEntry{}, 0, errors.New(errors.MissingColon, "expected ':' after key \""+key+"\"")
	}
	valuePart := rest[1:]
	if len(valuePart) > 0 && valuePart[0] == ' ' {
		valuePart = valuePart[1:]
	}
	if valuePart != "" {
		v, perr := parsePrimitive(valuePart)
		if perr != nil {
			return fieldEntry{}, 0, perr
		}
		return fieldEntry{key: key, quoted: quoted, val: v}, afterIdx, nil
	}
	if afterIdx < len(lines) && lines[afterIdx].Depth == depth+1 {
		childObj, newIdx, cerr := parseObjectLevel(opts, lines, afterIdx, depth+1)
		if cerr != nil {
			return fieldEntry{}, 0, cerr
		}
		return fieldEntry{key: key, quoted: quoted, val: value.NewObject(childObj)}, newIdx, nil
	}
	emptyObj, _ := finishObject(nil, false, false)
	return fieldEntry{key: key, quoted: quoted, val: value.NewObject(emptyObj)}, afterIdx, nil
}

// parseArrayBody parses the body of an array whose header has already been
// read: either an inline primitive row, or a multi-line tabular/list body
// starting at itemDepth.
func parseArrayBody(opts Options, lines []token.Line, idx, itemDepth int, hdr token.ArrayHeader, inline string) (value.Value, int, error) {
	if inline != "" {
		cells, err := splitCells(inline, hdr.Delimiter.Byte())
		if err != nil {
			return value.Value{}, 0, err
		}
		if len(cells) != hdr.Length {
			return value.Value{}, 0, errors.New(errors.CountMismatch,
				fmt.Sprintf("array declared length %d but inline row has %d value(s)", hdr.Length, len(cells)))
		}
		items := make([]value.Value, len(cells))
		for i, c := range cells {
			v, perr := parsePrimitive(c)
			if perr != nil {
				return value.Value{}, 0, perr
			}
			items[i] = v
		}
		return value.NewArray(items...), idx, nil
	}

	if hdr.Length == 0 {
		return value.NewArray(), idx, nil
	}

	if hdr.HasFields {
		return parseTabularBody(opts, lines, idx, itemDepth, hdr)
	}
	return parseListBody(opts, lines, idx, itemDepth, hdr)
}

func parseTabularBody(opts Options, lines []token.Line, idx, itemDepth int, hdr token.ArrayHeader) (value.Value, int, error) {
	items := make([]value.Value, 0, hdr.Length)
	prevLineNumber := -1
	cur := idx
	for cur < len(lines) && lines[cur].Depth == itemDepth && len(items) < hdr.Length {
		line := lines[cur]
		if prevLineNumber >= 0 && opts.Strict && line.Number-prevLineNumber > 1 {
			return value.Value{}, 0, errors.NewAt(errors.BlankLineInArray, "blank line inside array body", line.Number, 1)
		}
		colonIdx, _ := firstUnquoted(line.Content, ":")
		delimIdx, _ := firstUnquoted(line.Content, string(hdr.Delimiter.Byte()))
		if colonIdx != -1 && (delimIdx == -1 || colonIdx < delimIdx) {
			break
		}
		cells, err := splitCells(line.Content, hdr.Delimiter.Byte())
		if err != nil {
			return value.Value{}, 0, err
		}
		if len(cells) != len(hdr.Fields) {
			if detectDelimiterMismatch(line.Content, hdr.Delimiter, len(hdr.Fields)) {
				return value.Value{}, 0, errors.NewAt(errors.DelimiterMismatch,
					fmt.Sprintf("tabular row uses a different delimiter than the header declared (%s)", hdr.Delimiter), line.Number, 1)
			}
			return value.Value{}, 0, errors.NewAt(errors.WidthMismatch,
				fmt.Sprintf("tabular row has %d cell(s) but header declares %d column(s)", len(cells), len(hdr.Fields)), line.Number, 1)
		}
		rowFields := make([]fieldEntry, len(cells))
		for i, c := range cells {
			v, perr := parsePrimitive(c)
			if perr != nil {
				return value.Value{}, 0, perr
			}
			rowFields[i] = fieldEntry{key: hdr.Fields[i], quoted: hdr.FieldsQuoted[i], val: v}
		}
		rowObj, ferr := finishObject(rowFields, opts.Expand == ExpandSafe, opts.Strict)
		if ferr != nil {
			return value.Value{}, 0, ferr
		}
		items = append(items, value.NewObject(rowObj))
		prevLineNumber = line.Number
		cur++
	}
	if len(items) != hdr.Length {
		return value.Value{}, 0, errors.New(errors.CountMismatch,
			fmt.Sprintf("array declared length %d but parsed %d tabular row(s)", hdr.Length, len(items)))
	}
	return value.NewArray(items...), cur, nil
}

func parseListBody(opts Options, lines []token.Line, idx, itemDepth int, hdr token.ArrayHeader) (value.Value, int, error) {
	items := make([]value.Value, 0, hdr.Length)
	prevLineNumber := -1
	cur := idx
	for cur < len(lines) && lines[cur].Depth == itemDepth && len(items) < hdr.Length {
		line := lines[cur]
		if prevLineNumber >= 0 && opts.Strict && line.Number-prevLineNumber > 1 {
			return value.Value{}, 0, errors.NewAt(errors.BlankLineInArray, "blank line inside array body", line.Number, 1)
		}
		if line.Content != "-" && !strings.HasPrefix(line.Content, "- ") {
			break
		}
		item, newIdx, err := parseListItem(opts, lines, cur, itemDepth)
		if err != nil {
			return value.Value{}, 0, err
		}
		items = append(items, item)
		prevLineNumber = line.Number
		cur = newIdx
	}
	if len(items) != hdr.Length {
		return value.Value{}, 0, errors.New(errors.CountMismatch,
			fmt.Sprintf("array declared length %d but parsed %d item(s)", hdr.Length, len(items)))
	}
	return value.NewArray(items...), cur, nil
}

// parseListItem parses a single "- ..." line, per the Open Question in
// spec.md §9: a key-less nested array header becomes an array item; a
// keyed one becomes a single-field object item that may gain more fields
// from sibling lines one level deeper than the dash's content column.
func parseListItem(opts Options, lines []token.Line, idx, itemDepth int) (value.Value, int, error) {
	line := lines[idx]
	if line.Content == "-" {
		emptyObj, _ := finishObject(nil, false, false)
		return value.NewObject(emptyObj), idx + 1, nil
	}
	itemContent := line.Content[2:]

	hdr, inline, isHeader, err := parseHeaderLine(itemContent)
	if err != nil {
		return value.Value{}, 0, err
	}
	if isHeader {
		arrVal, newIdx, aerr := parseArrayBody(opts, lines, idx+1, itemDepth+1, hdr, inline)
		if aerr != nil {
			return value.Value{}, 0, aerr
		}
		if !hdr.HasKey {
			return arrVal, newIdx, nil
		}
		seed := []fieldEntry{{key: hdr.Key, quoted: hdr.KeyWasQuoted, val: arrVal}}
		obj, finalIdx, oerr := parseObjectLevelFrom(opts, lines, newIdx, itemDepth+1, seed)
		if oerr != nil {
			return value.Value{}, 0, oerr
		}
		return value.NewObject(obj), finalIdx, nil
	}

	if colonIdx, _ := firstUnquoted(itemContent, ":"); colonIdx != -1 {
		// The dash field's own nested-object content (if any) sits one
		// level deeper than the dash object's sibling fields, so pass
		// itemDepth+1 here: parseEntryContent looks for a child at
		// depth+1, landing on itemDepth+2.
		fe, nextIdx, ferr := parseEntryContent(opts, itemContent, lines, idx+1, itemDepth+1)
		if ferr != nil {
			return value.Value{}, 0, ferr
		}
		obj, finalIdx, oerr := parseObjectLevelFrom(opts, lines, nextIdx, itemDepth+1, []fieldEntry{fe})
		if oerr != nil {
			return value.Value{}, 0, oerr
		}
		return value.NewObject(obj), finalIdx, nil
	}

	prim, perr := parsePrimitive(itemContent)
	if perr != nil {
		return value.Value{}, 0, perr
	}
	return prim, idx + 1, nil
}

// detectDelimiterMismatch reports whether content splits cleanly into
// expectedCells using some delimiter other than declared — the trigger
// condition for DelimiterMismatch on a tabular row whose width does not
// match the header (spec.md §9 Open Question). It is checked whether or
// not Strict is set.
func detectDelimiterMismatch(content string, declared token.Delimiter, expectedCells int) bool {
	for _, d := range []token.Delimiter{token.Comma, token.Tab, token.Pipe} {
		if d == declared {
			continue
		}
		cells, err := splitCells(content, d.Byte())
		if err == nil && len(cells) == expectedCells {
			return true
		}
	}
	return false
}
