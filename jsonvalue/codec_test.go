package jsonvalue_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jsonkit.dev/jsonkit/jsonvalue"
)

func TestParsePreservesKeyOrder(t *testing.T) {
	v, err := jsonvalue.Parse([]byte(`{"b":1,"a":2,"c":3}`))
	require.NoError(t, err)
	require.Equal(t, jsonvalue.KindObject, v.Kind)
	assert.Equal(t, []string{"b", "a", "c"}, v.Obj.Keys())
}

func TestParseDuplicateKeyLastWriterWinsKeepsPosition(t *testing.T) {
	v, err := jsonvalue.Parse([]byte(`{"a":1,"b":2,"a":3}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, v.Obj.Keys())

	got, ok := v.Obj.Get("a")
	require.True(t, ok)
	assert.Equal(t, "3", string(got.Num))
}

func TestParseTrailingDataIsError(t *testing.T) {
	_, err := jsonvalue.Parse([]byte(`1 2`))
	require.Error(t, err)
}

func TestPrintRoundTrip(t *testing.T) {
	v, err := jsonvalue.Parse([]byte(`{"a":{"b":[10,20,{"c":"y"}]}}`))
	require.NoError(t, err)

	got, err := jsonvalue.Print(v, false)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":{"b":[10,20,{"c":"y"}]}}`, got)
}

func TestPrintPretty(t *testing.T) {
	v, err := jsonvalue.Parse([]byte(`{"a":1}`))
	require.NoError(t, err)

	got, err := jsonvalue.Print(v, true)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": 1\n}", got)
}

func TestPrintPrimitiveRoot(t *testing.T) {
	v, err := jsonvalue.Parse([]byte(`42`))
	require.NoError(t, err)

	got, err := jsonvalue.Print(v, false)
	require.NoError(t, err)
	assert.Equal(t, "42", got)
}
