// Package cliconfig holds CLI flag definitions for the toon command,
// grounded in the pack's magicschema/config.go: a Flags struct naming the
// flags, a Config struct holding their parsed values, and RegisterFlags to
// wire both onto a *pflag.FlagSet.
package cliconfig

import (
	"fmt"

	"github.com/spf13/pflag"

	toon "github.com/tidepoolcode/toon-go"
)

// EncodeFlags names the flags registered by EncodeConfig.
type EncodeFlags struct {
	Delimiter    string
	Indent       string
	KeyFolding   string
	FlattenDepth string
}

// EncodeConfig holds parsed encode-subcommand flag values.
type EncodeConfig struct {
	Flags        EncodeFlags
	Delimiter    string
	Indent       int
	KeyFolding   string
	FlattenDepth int
}

// NewEncodeConfig returns an EncodeConfig with default flag names.
func NewEncodeConfig() *EncodeConfig {
	return &EncodeConfig{
		Flags: EncodeFlags{
			Delimiter:    "delimiter",
			Indent:       "indent",
			KeyFolding:   "key-folding",
			FlattenDepth: "flatten-depth",
		},
	}
}

// RegisterFlags adds the encode subcommand's flags to flags.
func (c *EncodeConfig) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVar(&c.Delimiter, c.Flags.Delimiter, "comma",
		"cell delimiter, one of: comma, tab, pipe")
	flags.IntVar(&c.Indent, c.Flags.Indent, toon.DefaultIndentSpaces,
		"indentation spaces per nesting level")
	flags.StringVar(&c.KeyFolding, c.Flags.KeyFolding, "off",
		"dotted-key folding mode, one of: off, safe")
	flags.IntVar(&c.FlattenDepth, c.Flags.FlattenDepth, 0,
		"maximum folded-key segment count (0 means unbounded)")
}

// Options translates the parsed flags into toon.EncodeOptions.
func (c *EncodeConfig) Options() ([]toon.EncodeOption, error) {
	var delim toon.Delimiter
	switch c.Delimiter {
	case "comma":
		delim = toon.Comma
	case "tab":
		delim = toon.Tab
	case "pipe":
		delim = toon.Pipe
	default:
		return nil, fmt.Errorf("invalid --%s %q: must be comma, tab, or pipe", c.Flags.Delimiter, c.Delimiter)
	}

	var fold toon.FoldMode
	switch c.KeyFolding {
	case "off":
		fold = toon.FoldOff
	case "safe":
		fold = toon.FoldSafe
	default:
		return nil, fmt.Errorf("invalid --%s %q: must be off or safe", c.Flags.KeyFolding, c.KeyFolding)
	}

	return []toon.EncodeOption{
		toon.Indent(c.Indent),
		toon.WithDelimiter(delim),
		toon.WithKeyFolding(fold),
		toon.WithFlattenDepth(c.FlattenDepth),
	}, nil
}

// DecodeFlags names the flags registered by DecodeConfig.
type DecodeFlags struct {
	Indent      string
	Strict      string
	ExpandPaths string
}

// DecodeConfig holds parsed decode-subcommand flag values.
type DecodeConfig struct {
	Flags       DecodeFlags
	Indent      int
	Strict      bool
	ExpandPaths string
}

// NewDecodeConfig returns a DecodeConfig with default flag names.
func NewDecodeConfig() *DecodeConfig {
	return &DecodeConfig{
		Flags: DecodeFlags{
			Indent:      "indent",
			Strict:      "strict",
			ExpandPaths: "expand-paths",
		},
	}
}

// RegisterFlags adds the decode subcommand's flags to flags.
func (c *DecodeConfig) RegisterFlags(flags *pflag.FlagSet) {
	flags.IntVar(&c.Indent, c.Flags.Indent, toon.DefaultIndentSpaces,
		"indentation spaces assumed per nesting level")
	flags.BoolVar(&c.Strict, c.Flags.Strict, false,
		"reject indentation/blank-line/expansion-conflict looseness")
	flags.StringVar(&c.ExpandPaths, c.Flags.ExpandPaths, "off",
		"dot-path expansion mode, one of: off, safe")
}

// Options translates the parsed flags into toon.DecodeOptions.
func (c *DecodeConfig) Options() ([]toon.DecodeOption, error) {
	var expand toon.ExpandMode
	switch c.ExpandPaths {
	case "off":
		expand = toon.ExpandOff
	case "safe":
		expand = toon.ExpandSafe
	default:
		return nil, fmt.Errorf("invalid --%s %q: must be off or safe", c.Flags.ExpandPaths, c.ExpandPaths)
	}

	return []toon.DecodeOption{
		toon.DecodeIndent(c.Indent),
		toon.Strict(c.Strict),
		toon.WithPathExpansion(expand),
	}, nil
}
