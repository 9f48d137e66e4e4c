// Package transform implements the single-pass recursive walk of
// spec.md §4.C: applying a composed set of prune/rewrite operations to
// a decoded jsonvalue.Value tree, with Flatten composed in as an
// always-last step via the flatten package.
//
// The bitmask-dispatched operation walk is grounded on the teacher's
// magicschema.Generator.walkNode/walkMapping recursive-descent shape
// (generator.go), generalized from "build a schema while walking" to
// "build a pruned/rewritten copy while walking" and retargeted from a
// YAML AST to jsonvalue.Value.
//
// The engine sees regexes only through Matcher. Every caller in this
// module compiles patterns with the standard library's regexp package,
// so the pattern language is Go's RE2 syntax (not POSIX ERE or PCRE).
package transform

import "go.jsonkit.dev/jsonkit/jsonvalue"

// OpKind is the bitmask tag for one Operation variant (spec.md §3's
// Operation). Multiple operations of the same kind may appear in an
// OperationSet (e.g. several ReplaceKeys rules); the mask only records
// which kinds are present, not how many.
type OpKind uint8

const (
	KindRemoveEmptyStrings OpKind = 1 << iota
	KindRemoveNulls
	KindReplaceKeys
	KindReplaceValues
	KindFlatten
)

// Operation is one entry in an OperationSet. Pattern/Replacement/Matcher
// are only meaningful for ReplaceKeys and ReplaceValues; Matcher is nil
// when the pattern failed to compile (spec.md §3's invariant: a
// compiled_matcher is present iff pattern compiled successfully).
type Operation struct {
	Kind        OpKind
	Pattern     string
	Replacement string
	Matcher     Matcher
}

// Matcher is the regex capability the engine needs: find the first
// match and expand a replacement template against its submatches. The
// standard library's *regexp.Regexp satisfies this directly.
type Matcher interface {
	FindStringSubmatchIndex(s string) []int
	ExpandString(dst []byte, template string, src string, match []int) []byte
}

// RemoveEmptyStrings returns the operation that prunes empty-string
// values.
func RemoveEmptyStrings() Operation { return Operation{Kind: KindRemoveEmptyStrings} }

// RemoveNulls returns the operation that prunes null values.
func RemoveNulls() Operation { return Operation{Kind: KindRemoveNulls} }

// Flatten returns the operation that composes the flatten projection as
// the traversal's final step.
func Flatten() Operation { return Operation{Kind: KindFlatten} }

// ReplaceKeys returns a key-rewrite operation for the given compiled
// matcher. The caller compiles the pattern (e.g. via regexp.Compile) and
// passes nil for matcher if compilation failed; per spec.md §3 the
// operation is still retained in the set (its bit still participates in
// the mask) but is silently skipped at execute time.
func ReplaceKeys(pattern, replacement string, matcher Matcher) Operation {
	return Operation{Kind: KindReplaceKeys, Pattern: pattern, Replacement: replacement, Matcher: matcher}
}

// ReplaceValues returns a string-value-rewrite operation, with the same
// compile-then-pass-nil-on-failure contract as ReplaceKeys.
func ReplaceValues(pattern, replacement string, matcher Matcher) Operation {
	return Operation{Kind: KindReplaceValues, Pattern: pattern, Replacement: replacement, Matcher: matcher}
}

// OperationSet is an ordered sequence of Operations plus the derived
// bitmask spec.md §3 describes: the fast-path switch tested at each
// visited node.
type OperationSet struct {
	Ops  []Operation
	Mask OpKind
}

// NewOperationSet builds an OperationSet from ops, deriving Mask from
// their tags regardless of whether a ReplaceKeys/ReplaceValues matcher
// actually compiled.
func NewOperationSet(ops ...Operation) OperationSet {
	var mask OpKind
	for _, op := range ops {
		mask |= op.Kind
	}

	return OperationSet{Ops: ops, Mask: mask}
}

func (s OperationSet) has(k OpKind) bool { return s.Mask&k != 0 }

func (s OperationSet) ops(k OpKind) []Operation {
	var out []Operation

	for _, op := range s.Ops {
		if op.Kind == k {
			out = append(out, op)
		}
	}

	return out
}

// Apply runs the composed operation set over v once, per spec.md §4.C.
// Flatten is always the traversal's final step: when set includes it,
// the prune/rewrite pass runs first (skipped entirely if Flatten is the
// only bit set, forwarding v unchanged) and its result feeds the
// Flatten projection.
func Apply(v jsonvalue.Value, set OperationSet, flattenFn func(jsonvalue.Value) jsonvalue.Value) jsonvalue.Value {
	if set.has(KindFlatten) {
		intermediate := v
		if set.Mask&^KindFlatten != 0 {
			intermediate = walk(v, set)
		}

		return flattenFn(intermediate)
	}

	return walk(v, set)
}

func walk(v jsonvalue.Value, set OperationSet) jsonvalue.Value {
	switch v.Kind {
	case jsonvalue.KindObject:
		return walkObject(v.Obj, set)
	case jsonvalue.KindArray:
		return walkArray(v.Arr, set)
	default:
		return v
	}
}

func walkObject(obj *jsonvalue.Object, set OperationSet) jsonvalue.Value {
	out := jsonvalue.NewObject(obj.Len())

	for _, p := range obj.Pairs() {
		key := p.Key
		if set.has(KindReplaceKeys) {
			key = rewriteFirst(set.ops(KindReplaceKeys), key)
		}

		if shouldRemove(p.Value, set) {
			continue
		}

		val := rewriteValueIfString(p.Value, set)
		if val.IsContainer() {
			val = walk(val, set)
		}

		out.Set(key, val)
	}

	return jsonvalue.ObjectValue(out)
}

func walkArray(arr []jsonvalue.Value, set OperationSet) jsonvalue.Value {
	out := make([]jsonvalue.Value, 0, len(arr))

	for _, elem := range arr {
		if shouldRemove(elem, set) {
			continue
		}

		val := rewriteValueIfString(elem, set)
		if val.IsContainer() {
			val = walk(val, set)
		}

		out = append(out, val)
	}

	return jsonvalue.Array(out)
}

// shouldRemove decides entry removal on the ORIGINAL value/type, per
// spec.md §4.C's determinism rule: removal and key rewrite operate on
// disjoint fields, so their relative order is immaterial.
func shouldRemove(v jsonvalue.Value, set OperationSet) bool {
	if v.IsEmptyString() && set.has(KindRemoveEmptyStrings) {
		return true
	}

	if v.IsNull() && set.has(KindRemoveNulls) {
		return true
	}

	return false
}

func rewriteValueIfString(v jsonvalue.Value, set OperationSet) jsonvalue.Value {
	if v.Kind != jsonvalue.KindString || !set.has(KindReplaceValues) {
		return v
	}

	return jsonvalue.String(rewriteFirst(set.ops(KindReplaceValues), v.Str))
}

// rewriteFirst tests ops (all of the same kind, in operation order)
// against s and applies the first whose matcher both compiled and
// matches, substituting only that match's first occurrence within s
// (spec.md §4.C: "replace the first match within the key/value," not
// the whole string). If no op matches, s is returned unchanged.
func rewriteFirst(ops []Operation, s string) string {
	for _, op := range ops {
		if op.Matcher == nil {
			continue
		}

		loc := op.Matcher.FindStringSubmatchIndex(s)
		if loc == nil {
			continue
		}

		var buf []byte
		buf = append(buf, s[:loc[0]]...)
		buf = op.Matcher.ExpandString(buf, op.Replacement, s, loc)
		buf = append(buf, s[loc[1]:]...)

		return string(buf)
	}

	return s
}
