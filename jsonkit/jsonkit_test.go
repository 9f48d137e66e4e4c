package jsonkit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jsonkit.dev/jsonkit"
	"go.jsonkit.dev/jsonkit/internal/stringtest"
)

func TestBuilderNoInputIsFatal(t *testing.T) {
	_, err := jsonkit.New().Build()
	require.Error(t, err)

	var kerr *jsonkit.Error

	require.ErrorAs(t, err, &kerr)
	assert.Equal(t, jsonkit.KindNoInput, kerr.Kind)
}

func TestBuilderParseErrorIsFatal(t *testing.T) {
	_, err := jsonkit.New().AddJSON("{not json").Build()
	require.Error(t, err)

	var kerr *jsonkit.Error

	require.ErrorAs(t, err, &kerr)
	assert.Equal(t, jsonkit.KindParseError, kerr.Kind)
}

func TestBuilderPruneEmptiesAndNulls(t *testing.T) {
	out, err := jsonkit.New().
		AddJSON(`{"a":"","b":null,"c":"x","d":{"e":"","f":1}}`).
		RemoveEmptyStrings().
		RemoveNulls().
		Build()

	require.NoError(t, err)
	assert.JSONEq(t, `{"c":"x","d":{"f":1}}`, out)
}

func TestBuilderFlattenNested(t *testing.T) {
	out, err := jsonkit.New().
		AddJSON(`{"a":{"b":[10,20,{"c":"y"}]}}`).
		Flatten().
		Build()

	require.NoError(t, err)
	assert.JSONEq(t, `{"a.b[0]":10,"a.b[1]":20,"a.b[2].c":"y"}`, out)
}

func TestBuilderReplaceKeys(t *testing.T) {
	out, err := jsonkit.New().
		AddJSON(`{"old_a":1,"old_b":2,"keep":3}`).
		ReplaceKeys(`^old_`, "").
		Build()

	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1,"b":2,"keep":3}`, out)
}

func TestBuilderReplaceValuesUnderComposition(t *testing.T) {
	out, err := jsonkit.New().
		AddJSON(`{"k":"red","m":"redshirt","n":null}`).
		ReplaceValues("red", "blue").
		RemoveNulls().
		Build()

	require.NoError(t, err)
	assert.JSONEq(t, `{"k":"blue","m":"blueshirt"}`, out)
}

func TestBuilderInvalidRegexIsNonFatalAndRecorded(t *testing.T) {
	b := jsonkit.New().AddJSON(`{"a":1}`).ReplaceKeys("(", "x")

	assert.True(t, b.HasError())
	require.NotNil(t, b.GetError())
	assert.Equal(t, jsonkit.KindRegexError, b.GetError().Kind)

	out, err := b.Build()
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, out)
}

func TestPathsWithTypesPrimitiveRoot(t *testing.T) {
	out, err := jsonkit.PathsWithTypes(`42`)
	require.NoError(t, err)
	assert.JSONEq(t, `{"root":"integer"}`, out)
}

func TestReplaceKeysTopLevelFunction(t *testing.T) {
	out, err := jsonkit.ReplaceKeys(`{"old_a":1,"keep":3}`, `^old_`, "")
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1,"keep":3}`, out)
}

func TestFlattenTopLevelFunctionSingleObject(t *testing.T) {
	out, err := jsonkit.Flatten(`{"a":{"b":1}}`, false, 0)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a.b":1}`, out)
}

func TestFlattenTopLevelFunctionBatchesArrayOfObjects(t *testing.T) {
	out, err := jsonkit.Flatten(`[{"a":1},{"a":2}]`, false, 0)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"a":1},{"a":2}]`, out)
}

// TestFlattenTopLevelFunctionPassesThroughPrimitiveArray covers the
// original implementation's documented special case: a root array of
// only primitives is not a batch of documents, so it comes back
// unchanged rather than projected into bracket-keyed objects.
func TestFlattenTopLevelFunctionPassesThroughPrimitiveArray(t *testing.T) {
	out, err := jsonkit.Flatten(`[1,2,3]`, false, 0)
	require.NoError(t, err)
	assert.JSONEq(t, `[1,2,3]`, out)
}

// TestFlattenTopLevelFunctionBatchesArrayWithOneContainer covers the
// boundary of that special case: as soon as one element is an object or
// array, the whole root array is treated as a batch again, even though
// every other element is a primitive.
func TestFlattenTopLevelFunctionBatchesArrayWithOneContainer(t *testing.T) {
	out, err := jsonkit.Flatten(`[1,2,{"a":3}]`, false, 0)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"":1},{"":2},{"a":3}]`, out)
}

func TestSchemaTopLevelFunctionBatch(t *testing.T) {
	out, err := jsonkit.Schema(`[{"id":1,"name":"A"},{"id":2,"name":null,"tag":"t"}]`, false, 0)
	require.NoError(t, err)

	assert.Contains(t, out, `"$schema":"http://json-schema.org/draft-07/schema#"`)
	assert.Contains(t, out, `"required":["id"]`)
}

func TestBuilderPrettyPrintIndentsTwoSpaces(t *testing.T) {
	out, err := jsonkit.New().AddJSON(`{"a":1,"b":[2,3]}`).PrettyPrint(true).Build()
	require.NoError(t, err)

	want := stringtest.JoinLF(
		"{",
		`  "a": 1,`,
		`  "b": [`,
		"    2,",
		"    3",
		"  ]",
		"}",
	)

	assert.Equal(t, want, out)
}
