package jsonkit

import (
	"regexp"
	"runtime"

	"go.jsonkit.dev/jsonkit/flatten"
	"go.jsonkit.dev/jsonkit/jsonvalue"
	"go.jsonkit.dev/jsonkit/schema"
	"go.jsonkit.dev/jsonkit/transform"
	"go.jsonkit.dev/jsonkit/workqueue"
)

// Flatten implements the programmatic flatten(text, use_workers, workers)
// signature of spec.md §6. When the parsed root is an array containing
// at least one object or array element, it is treated as a batch of
// independent documents: each element is flattened on its own and the
// results are reassembled into an output array, optionally in parallel.
// A root array of only primitives is not a batch of documents — per the
// original implementation's flatten_json_string, it is returned
// unchanged rather than flattened. Any other root is flattened as a
// single document (an array nested below the root still flattens via
// bracket notation, per spec.md §4.D — this root-only rule does not
// apply below the top level).
func Flatten(text string, useWorkers bool, workers int) (string, error) {
	v, err := jsonvalue.Parse([]byte(text))
	if err != nil {
		return "", wrapError(KindParseError, err)
	}

	var out jsonvalue.Value

	if v.Kind == jsonvalue.KindArray && len(v.Arr) > 0 && !hasContainerElement(v.Arr) {
		out = v
	} else {
		out = batchOrSingle(v, useWorkers, workers, func(e jsonvalue.Value) jsonvalue.Value {
			return flatten.Flatten(e)
		})
	}

	printed, err := jsonvalue.Print(out, false)
	if err != nil {
		return "", wrapError(KindMemoryError, err)
	}

	return printed, nil
}

// hasContainerElement reports whether arr contains at least one object
// or array element, the test the original implementation uses to decide
// whether a root-level array is a batch of documents or a plain array of
// primitives.
func hasContainerElement(arr []jsonvalue.Value) bool {
	for _, e := range arr {
		if e.IsContainer() {
			return true
		}
	}

	return false
}

// PathsWithTypes implements the programmatic paths_with_types(text)
// signature of spec.md §6.
func PathsWithTypes(text string) (string, error) {
	return runProjection(text, false, 0, func(v jsonvalue.Value) jsonvalue.Value {
		return flatten.PathsWithTypes(v)
	})
}

// RemoveEmpty implements the programmatic remove_empty(text) signature.
func RemoveEmpty(text string) (string, error) {
	return runOperation(text, transform.RemoveEmptyStrings())
}

// RemoveNulls implements the programmatic remove_nulls(text) signature.
func RemoveNulls(text string) (string, error) {
	return runOperation(text, transform.RemoveNulls())
}

// ReplaceKeys implements the programmatic replace_keys(text, pattern,
// replacement) signature. An invalid pattern is non-fatal: the document
// is returned unchanged, per spec.md §7's RegexError contract.
func ReplaceKeys(text, pattern, replacement string) (string, error) {
	var matcher transform.Matcher
	if re, err := regexp.Compile(pattern); err == nil {
		matcher = re
	}

	return runOperation(text, transform.ReplaceKeys(pattern, replacement, matcher))
}

// ReplaceValues implements the programmatic replace_values(text, pattern,
// replacement) signature.
func ReplaceValues(text, pattern, replacement string) (string, error) {
	var matcher transform.Matcher
	if re, err := regexp.Compile(pattern); err == nil {
		matcher = re
	}

	return runOperation(text, transform.ReplaceValues(pattern, replacement, matcher))
}

// Schema implements the programmatic schema(text, use_workers, workers)
// signature. A root-level array is treated as a batch: each element is
// analyzed independently (optionally via the worker pool) and the
// per-element schemas are merge-folded in order, per spec.md §4.E's
// analyze_batch. Any other root is analyzed as a single document.
func Schema(text string, useWorkers bool, workers int) (string, error) {
	v, err := jsonvalue.Parse([]byte(text))
	if err != nil {
		return "", wrapError(KindParseError, err)
	}

	node, err := analyzeRoot(v, useWorkers, workers)
	if err != nil {
		return "", wrapError(KindMemoryError, err)
	}

	emitted := schema.ToJSONSchema(node)
	schema.ReleaseTree(node)

	out, err := marshalSchema(emitted)
	if err != nil {
		return "", wrapError(KindMemoryError, err)
	}

	return out, nil
}

func analyzeRoot(v jsonvalue.Value, useWorkers bool, workers int) (*schema.Node, error) {
	if v.Kind != jsonvalue.KindArray || len(v.Arr) == 0 {
		return schema.Analyze(v), nil
	}

	if useWorkers && len(v.Arr) >= workqueue.MinBatchSizeForParallel {
		return schema.AnalyzeBatch(v.Arr, workqueue.OptimalWorkers(runtime.NumCPU(), workers))
	}

	node := schema.Analyze(v.Arr[0])
	for _, e := range v.Arr[1:] {
		node = schema.Merge(node, schema.Analyze(e))
	}

	return node, nil
}

func runOperation(text string, op transform.Operation) (string, error) {
	return runProjection(text, false, 0, func(v jsonvalue.Value) jsonvalue.Value {
		set := transform.NewOperationSet(op)

		return transform.Apply(v, set, func(in jsonvalue.Value) jsonvalue.Value { return flatten.Flatten(in) })
	})
}

// runProjection parses text, applies fn (batching over a root-level
// array when useWorkers allows it), and prints the result.
func runProjection(
	text string,
	useWorkers bool,
	workers int,
	fn func(jsonvalue.Value) jsonvalue.Value,
) (string, error) {
	v, err := jsonvalue.Parse([]byte(text))
	if err != nil {
		return "", wrapError(KindParseError, err)
	}

	out := batchOrSingle(v, useWorkers, workers, fn)

	printed, err := jsonvalue.Print(out, false)
	if err != nil {
		return "", wrapError(KindMemoryError, err)
	}

	return printed, nil
}

func batchOrSingle(
	v jsonvalue.Value,
	useWorkers bool,
	workers int,
	fn func(jsonvalue.Value) jsonvalue.Value,
) jsonvalue.Value {
	if v.Kind != jsonvalue.KindArray || len(v.Arr) == 0 {
		return fn(v)
	}

	if useWorkers && len(v.Arr) >= workqueue.MinBatchSizeForParallel {
		pool := workqueue.New(workqueue.OptimalWorkers(runtime.NumCPU(), workers))
		defer pool.Shutdown()

		return jsonvalue.Array(workqueue.RunBatch(pool, v.Arr, fn))
	}

	out := make([]jsonvalue.Value, len(v.Arr))
	for i, e := range v.Arr {
		out[i] = fn(e)
	}

	return jsonvalue.Array(out)
}
