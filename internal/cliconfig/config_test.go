package cliconfig_test

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tidepoolcode/toon-go/internal/cliconfig"
)

func TestEncodeConfigDefaults(t *testing.T) {
	cfg := cliconfig.NewEncodeConfig()
	flags := pflag.NewFlagSet("encode", pflag.ContinueOnError)
	cfg.RegisterFlags(flags)
	require.NoError(t, flags.Parse(nil))

	opts, err := cfg.Options()
	require.NoError(t, err)
	assert.Len(t, opts, 4)
}

func TestEncodeConfigInvalidDelimiter(t *testing.T) {
	cfg := cliconfig.NewEncodeConfig()
	flags := pflag.NewFlagSet("encode", pflag.ContinueOnError)
	cfg.RegisterFlags(flags)
	require.NoError(t, flags.Parse([]string{"--delimiter=semicolon"}))

	_, err := cfg.Options()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "delimiter")
}

func TestEncodeConfigInvalidKeyFolding(t *testing.T) {
	cfg := cliconfig.NewEncodeConfig()
	flags := pflag.NewFlagSet("encode", pflag.ContinueOnError)
	cfg.RegisterFlags(flags)
	require.NoError(t, flags.Parse([]string{"--key-folding=aggressive"}))

	_, err := cfg.Options()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "key-folding")
}

func TestEncodeConfigPipeDelimiterAndFlattenDepth(t *testing.T) {
	cfg := cliconfig.NewEncodeConfig()
	flags := pflag.NewFlagSet("encode", pflag.ContinueOnError)
	cfg.RegisterFlags(flags)
	require.NoError(t, flags.Parse([]string{"--delimiter=pipe", "--key-folding=safe", "--flatten-depth=2"}))

	opts, err := cfg.Options()
	require.NoError(t, err)
	assert.Len(t, opts, 4)
}

func TestDecodeConfigDefaults(t *testing.T) {
	cfg := cliconfig.NewDecodeConfig()
	flags := pflag.NewFlagSet("decode", pflag.ContinueOnError)
	cfg.RegisterFlags(flags)
	require.NoError(t, flags.Parse(nil))

	opts, err := cfg.Options()
	require.NoError(t, err)
	assert.Len(t, opts, 3)
}

func TestDecodeConfigInvalidExpandPaths(t *testing.T) {
	cfg := cliconfig.NewDecodeConfig()
	flags := pflag.NewFlagSet("decode", pflag.ContinueOnError)
	cfg.RegisterFlags(flags)
	require.NoError(t, flags.Parse([]string{"--expand-paths=always"}))

	_, err := cfg.Options()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expand-paths")
}

func TestDecodeConfigStrictFlag(t *testing.T) {
	cfg := cliconfig.NewDecodeConfig()
	flags := pflag.NewFlagSet("decode", pflag.ContinueOnError)
	cfg.RegisterFlags(flags)
	require.NoError(t, flags.Parse([]string{"--strict"}))
	assert.True(t, cfg.Strict)
}
