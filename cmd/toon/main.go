// Package main provides the CLI entry point for toon: convert between TOON
// text and a Go value tree via the `encode` and `decode` subcommands.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	charmlog "charm.land/log/v2"
	"github.com/spf13/cobra"

	toon "github.com/tidepoolcode/toon-go"
	"github.com/tidepoolcode/toon-go/internal/cliconfig"
	"github.com/tidepoolcode/toon-go/internal/loader"
	"github.com/tidepoolcode/toon-go/value"
)

func main() {
	logger := charmlog.New(os.Stderr)
	logger.SetLevel(charmlog.WarnLevel)

	rootCmd := &cobra.Command{
		Use:           "toon",
		Short:         "Convert between TOON text and JSON",
		SilenceErrors: true,
		SilenceUsage:  false,
	}

	var verbose bool
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable diagnostic logging")
	rootCmd.PersistentPreRun = func(_ *cobra.Command, _ []string) {
		if verbose {
			logger.SetLevel(charmlog.DebugLevel)
		}
	}

	rootCmd.AddCommand(newEncodeCmd(logger), newDecodeCmd(logger))

	if err := rootCmd.Execute(); err != nil {
		toon.FormatError(os.Stderr, err)
		os.Exit(1)
	}
}

func newEncodeCmd(logger *charmlog.Logger) *cobra.Command {
	cfg := cliconfig.NewEncodeConfig()
	cmd := &cobra.Command{
		Use:     "encode <input>",
		Aliases: []string{"e"},
		Short:   "Encode JSON as TOON",
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runEncode(logger, cfg, args[0])
		},
	}
	cfg.RegisterFlags(cmd.Flags())
	return cmd
}

func newDecodeCmd(logger *charmlog.Logger) *cobra.Command {
	cfg := cliconfig.NewDecodeConfig()
	cmd := &cobra.Command{
		Use:     "decode <input>",
		Aliases: []string{"d"},
		Short:   "Decode TOON text as JSON",
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runDecode(logger, cfg, args[0])
		},
	}
	cfg.RegisterFlags(cmd.Flags())
	return cmd
}

func runEncode(logger *charmlog.Logger, cfg *cliconfig.EncodeConfig, input string) error {
	opts, err := cfg.Options()
	if err != nil {
		return err
	}
	logger.Debug("resolving input", "input", input)
	data, err := loader.Resolve(input)
	if err != nil {
		return err
	}
	val, err := decodeJSONOrdered(bytes.TrimSpace(data))
	if err != nil {
		return fmt.Errorf("input is not valid JSON: %w", err)
	}
	out, err := toon.MarshalValue(val, opts...)
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func runDecode(logger *charmlog.Logger, cfg *cliconfig.DecodeConfig, input string) error {
	opts, err := cfg.Options()
	if err != nil {
		return err
	}
	logger.Debug("resolving input", "input", input)
	data, err := loader.Resolve(input)
	if err != nil {
		return err
	}
	val, err := toon.UnmarshalValue(data, opts...)
	if err != nil {
		return err
	}
	out, err := json.MarshalIndent(valueToJSON(val), "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

// decodeJSONOrdered parses data into a value.Value, walking it with
// json.Decoder.Token instead of unmarshaling into map[string]interface{}:
// a map has no iteration order, which would make `toon encode`'s output
// key order vary run to run for the same input. Token-walking preserves
// the source document's object-key order, matching the input file's
// field order the way the encoder is meant to.
func decodeJSONOrdered(data []byte) (value.Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	val, err := decodeJSONValue(dec)
	if err != nil {
		return value.Value{}, err
	}
	return val, nil
}

func decodeJSONValue(dec *json.Decoder) (value.Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return value.Value{}, err
	}
	return jsonTokenToValue(dec, tok)
}

func jsonTokenToValue(dec *json.Decoder, tok json.Token) (value.Value, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			var obj value.Object
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return value.Value{}, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return value.Value{}, fmt.Errorf("unexpected object key token %v", keyTok)
				}
				fieldVal, err := decodeJSONValue(dec)
				if err != nil {
					return value.Value{}, err
				}
				obj = obj.With(key, fieldVal)
			}
			if _, err := dec.Token(); err != nil { // consume '}'
				return value.Value{}, err
			}
			return value.NewObject(obj), nil
		case '[':
			var items []value.Value
			for dec.More() {
				item, err := decodeJSONValue(dec)
				if err != nil {
					return value.Value{}, err
				}
				items = append(items, item)
			}
			if _, err := dec.Token(); err != nil { // consume ']'
				return value.Value{}, err
			}
			return value.NewArray(items...), nil
		}
	case nil:
		return value.Null(), nil
	case bool:
		return value.FromBool(t), nil
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return value.FromI64(i), nil
		}
		f, err := t.Float64()
		if err != nil {
			return value.Value{}, err
		}
		return value.FromF64(f), nil
	case string:
		return value.FromString(t), nil
	}
	return value.Value{}, fmt.Errorf("unexpected JSON token %v", tok)
}

// valueToJSON converts a value.Value tree into the generic shape
// encoding/json can marshal.
func valueToJSON(v value.Value) interface{} {
	switch v.Kind() {
	case value.KindNull:
		return nil
	case value.KindBool:
		b, _ := v.AsBool()
		return b
	case value.KindNumber:
		n, _ := v.AsNumber()
		return n.Float64()
	case value.KindString:
		s, _ := v.AsString()
		return s
	case value.KindArray:
		arr, _ := v.AsArray()
		out := make([]interface{}, len(arr))
		for i, item := range arr {
			out[i] = valueToJSON(item)
		}
		return out
	case value.KindObject:
		obj, _ := v.AsObject()
		out := make(map[string]interface{}, obj.Len())
		for _, f := range obj.Fields() {
			out[f.Key] = valueToJSON(f.Value)
		}
		return out
	default:
		return nil
	}
}
