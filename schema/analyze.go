package schema

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"go.jsonkit.dev/jsonkit/jsonvalue"
)

// MaxArraySampleSize bounds how many array elements Analyze folds
// together (spec.md §4.E's MAX_ARRAY_SAMPLE_SIZE). Arrays longer than
// this are sampled at an evenly spaced stride rather than walked in full,
// trading a small amount of type-coverage accuracy for bounded analysis
// cost on very large arrays.
const MaxArraySampleSize = 50

// Analyze produces the SchemaNode for a single decoded value, per
// spec.md §4.E's per-value analysis rules.
func Analyze(v jsonvalue.Value) *Node {
	switch v.Kind {
	case jsonvalue.KindNull:
		n := newNode()
		n.Kind = KindNull
		n.Nullable = true

		return n

	case jsonvalue.KindArray:
		return analyzeArray(v.Arr)

	case jsonvalue.KindObject:
		return analyzeObject(v.Obj)

	default:
		n := newNode()
		n.Kind = variantKind(v)
		n.Required = true

		return n
	}
}

func analyzeArray(elems []jsonvalue.Value) *Node {
	n := newNode()
	n.Kind = KindArray
	n.Required = true

	if len(elems) == 0 {
		items := newNode()
		items.Kind = KindNull
		items.Nullable = true
		n.Items = items

		return n
	}

	sample := sampleElements(elems)

	items := Analyze(sample[0])
	for _, e := range sample[1:] {
		items = Merge(items, Analyze(e))
	}

	n.Items = items

	return n
}

// sampleElements returns elems unchanged if it fits within
// MaxArraySampleSize, otherwise an evenly spaced stride of that many
// elements.
func sampleElements(elems []jsonvalue.Value) []jsonvalue.Value {
	if len(elems) <= MaxArraySampleSize {
		return elems
	}

	out := make([]jsonvalue.Value, MaxArraySampleSize)
	step := float64(len(elems)) / float64(MaxArraySampleSize)

	for i := range out {
		out[i] = elems[int(float64(i)*step)]
	}

	return out
}

func analyzeObject(obj *jsonvalue.Object) *Node {
	n := newNode()
	n.Kind = KindObject
	n.Required = true
	n.Properties = make([]Property, 0, obj.Len())

	for _, p := range obj.Pairs() {
		n.Properties = append(n.Properties, Property{Name: p.Key, Schema: Analyze(p.Value)})
	}

	return n
}

// AnalyzeBatch analyzes values concurrently, bounded to workers
// in-flight goroutines, then merge-folds the per-item schemas in
// submission order (spec.md §4.E's analyze_batch: a deterministic
// left-fold so test expectations are pinned even though the matrix is
// associative). workers <= 0 means unbounded.
//
// This is the one batch path SPEC_FULL.md routes through
// golang.org/x/sync/errgroup rather than workqueue.Pool: a panic while
// analyzing any element is recovered and returned as an error, cancelling
// the group's context so outstanding goroutines can observe it and
// surfacing the failure as the MemoryError spec.md §7 describes ("a
// worker that encounters an internal fault... surfaces this as
// MemoryError after drain") — fail-fast, where the general batch
// transform path (workqueue.Pool) deliberately is not.
func AnalyzeBatch(values []jsonvalue.Value, workers int) (*Node, error) {
	if len(values) == 0 {
		n := newNode()
		n.Kind = KindNull
		n.Nullable = true

		return n, nil
	}

	nodes := make([]*Node, len(values))

	g, ctx := errgroup.WithContext(context.Background())
	if workers > 0 {
		g.SetLimit(workers)
	}

	for i, v := range values {
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("analyzing batch element %d: %v", i, r)
				}
			}()

			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			nodes[i] = Analyze(v)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("schema batch analysis: %w", err)
	}

	result := nodes[0]
	for _, n := range nodes[1:] {
		result = Merge(result, n)
	}

	return result, nil
}
