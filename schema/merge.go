package schema

// Merge folds two SchemaNodes into one per spec.md §4.E's type
// compatibility matrix and structural merge rules.
//
// Merge always consumes a and b: their top-level cells return to
// schema.nodePool once this call has extracted everything it needs from
// them (see releaseNode), whether that data was moved across (the
// single-sided array case), recursively merged (matched array items and
// object properties), or copied (onlyOnOneSide). Callers must not touch
// a or b after calling Merge.
func Merge(a, b *Node) *Node {
	result := newNode()
	result.Kind = widenKind(a.Kind, b.Kind)
	result.Required = a.Required && b.Required
	result.Nullable = a.Nullable || b.Nullable

	switch {
	case a.Kind == KindArray && b.Kind == KindArray:
		result.Items = Merge(a.Items, b.Items)

	case a.Kind == KindArray:
		result.Items = a.Items

	case b.Kind == KindArray:
		result.Items = b.Items
	}

	if a.Kind == KindObject || b.Kind == KindObject {
		result.Properties = mergeProperties(a, b)
	}

	releaseNode(a)
	releaseNode(b)

	return result
}

// widenKind applies the type-compatibility matrix: identical kinds
// survive unchanged (container kinds additionally recurse on items or
// properties elsewhere), Integer/Number widen to Number, either side
// being Null widens to the other side (with nullable set by the
// caller), and any other disagreement widens to Mixed.
func widenKind(a, b Kind) Kind {
	if a == b {
		return a
	}

	if a == KindNull {
		return b
	}

	if b == KindNull {
		return a
	}

	if (a == KindInteger && b == KindNumber) || (a == KindNumber && b == KindInteger) {
		return KindNumber
	}

	return KindMixed
}

// mergeProperties implements spec.md §4.E's object merge: union of
// property names; names present on only one side are copied with
// required forced false and nullable forced true (they were absent,
// hence optional, in the other document); names present on both sides
// recursively merge.
func mergeProperties(a, b *Node) []Property {
	merged := make([]Property, 0, len(a.Properties)+len(b.Properties))
	seen := make(map[string]bool, len(a.Properties))

	for _, p := range a.Properties {
		if bp, ok := b.property(p.Name); ok {
			merged = append(merged, Property{Name: p.Name, Schema: Merge(p.Schema, bp.Schema)})
		} else {
			merged = append(merged, Property{Name: p.Name, Schema: onlyOnOneSide(p.Schema)})
		}

		seen[p.Name] = true
	}

	for _, p := range b.Properties {
		if seen[p.Name] {
			continue
		}

		merged = append(merged, Property{Name: p.Name, Schema: onlyOnOneSide(p.Schema)})
	}

	return merged
}

// onlyOnOneSide copies a property's schema as it surfaces when the
// property is absent from the other side of a merge: required becomes
// false and nullable becomes true, everything else unchanged.
//
// The copy shares n's Items/Properties with the node it was copied
// from, so n itself is left for the GC rather than returned to
// nodePool: pooling it here would let a future Get() hand the same
// cell back out while this copy's children are still reachable through
// it.
func onlyOnOneSide(n *Node) *Node {
	cp := *n
	cp.Required = false
	cp.Nullable = true

	return &cp
}
