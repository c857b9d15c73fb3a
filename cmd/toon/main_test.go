package main

import (
	"io"
	"os"
	"testing"

	charmlog "charm.land/log/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tidepoolcode/toon-go/internal/cliconfig"
	"github.com/tidepoolcode/toon-go/value"
)

func TestDecodeJSONOrderedRoundTrip(t *testing.T) {
	raw := []byte(`{"name":"Alice","age":30,"tags":["a","b"],"admin":true,"extra":null}`)
	v, err := decodeJSONOrdered(raw)
	require.NoError(t, err)
	obj, ok := v.AsObject()
	require.True(t, ok)

	age, ok := obj.Get("age")
	require.True(t, ok)
	n, ok := age.AsNumber()
	require.True(t, ok)
	i, ok := n.Int64()
	require.True(t, ok)
	assert.Equal(t, int64(30), i)
}

func TestDecodeJSONOrderedFractionalFloat(t *testing.T) {
	v, err := decodeJSONOrdered([]byte("3.5"))
	require.NoError(t, err)
	n, ok := v.AsNumber()
	require.True(t, ok)
	assert.Equal(t, 3.5, n.Float64())
}

// TestDecodeJSONOrderedPreservesKeyOrder guards against the non-determinism
// that unmarshaling into map[string]interface{} would introduce: the
// object's fields must come back in source order, not map iteration order.
func TestDecodeJSONOrderedPreservesKeyOrder(t *testing.T) {
	v, err := decodeJSONOrdered([]byte(`{"z":1,"a":2,"m":3}`))
	require.NoError(t, err)
	obj, ok := v.AsObject()
	require.True(t, ok)
	fields := obj.Fields()
	require.Len(t, fields, 3)
	assert.Equal(t, []string{"z", "a", "m"}, []string{fields[0].Key, fields[1].Key, fields[2].Key})
}

func TestValueToJSONRoundTrip(t *testing.T) {
	obj := value.Object{}.With("a", value.FromI64(1)).With("b", value.FromString("x"))
	got := valueToJSON(value.NewObject(obj))
	m, ok := got.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "x", m["b"])
}

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	require.NoError(t, err)
	orig := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	fn()

	require.NoError(t, w.Close())
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(out)
}

func TestRunEncodeAndRunDecodeRoundTrip(t *testing.T) {
	logger := charmlog.New(io.Discard)
	encCfg := cliconfig.NewEncodeConfig()

	var encoded string
	encoded = captureStdout(t, func() {
		err := runEncode(logger, encCfg, `{"name":"Bob","age":25}`)
		require.NoError(t, err)
	})

	decCfg := cliconfig.NewDecodeConfig()
	decoded := captureStdout(t, func() {
		err := runDecode(logger, decCfg, encoded)
		require.NoError(t, err)
	})

	assert.Contains(t, decoded, `"name": "Bob"`)
}

func TestRunEncodePreservesJSONKeyOrder(t *testing.T) {
	logger := charmlog.New(io.Discard)
	cfg := cliconfig.NewEncodeConfig()
	out := captureStdout(t, func() {
		err := runEncode(logger, cfg, `{"z":1,"a":2,"m":3}`)
		require.NoError(t, err)
	})
	assert.Equal(t, "z: 1\na: 2\nm: 3\n", out)
}

func TestRunEncodeInvalidJSONErrors(t *testing.T) {
	logger := charmlog.New(io.Discard)
	cfg := cliconfig.NewEncodeConfig()
	err := runEncode(logger, cfg, "not json at all {{{")
	require.Error(t, err)
}
