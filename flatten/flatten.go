// Package flatten implements the path-flattening projection of spec.md
// §4.D: collapsing a nested JSON value into a single-level object whose
// keys encode the access path and whose values are the leaf primitives,
// plus the paths-with-types variant (§6) that emits type names instead
// of values.
//
// The path-building rule (dotted object keys, bracketed array indices,
// no separator before a bracket) is grounded directly on the teacher's
// YAML-schema key-path construction in magicschema/generator.go
// (childPath = keyPath + "." + keyName), generalized to arrays and
// retargeted from a YAML AST to jsonvalue.Value.
package flatten

import (
	"strconv"
	"strings"

	"go.jsonkit.dev/jsonkit/arena"
	"go.jsonkit.dev/jsonkit/jsonvalue"
)

// MaxKeyLength is the key-buffer capacity spec.md §4.D names
// (MAX_KEY_LENGTH = 2048 bytes, including the implicit NUL terminator of
// the C original; this Go port reserves the same one byte of headroom).
const MaxKeyLength = 2048

// maxPathBytes is the largest path this implementation will emit without
// truncating (2047 content bytes, per spec.md §4.D).
const maxPathBytes = MaxKeyLength - 1

// config holds the options Flatten and PathsWithTypes share.
type config struct {
	warn          func(truncatedPath string)
	arenaCapacity int
}

// Option configures a Flatten or PathsWithTypes call.
type Option func(*config)

// WithWarn registers a callback invoked once per path that had to be
// truncated, realizing spec.md §4.D/§7's non-fatal TruncationWarning.
func WithWarn(fn func(truncatedPath string)) Option {
	return func(c *config) { c.warn = fn }
}

// WithArenaCapacity overrides the per-call arena size used for path
// construction. Defaults to 64 KiB, generous for typical documents.
func WithArenaCapacity(n int) Option {
	return func(c *config) { c.arenaCapacity = n }
}

func newConfig(opts []Option) *config {
	c := &config{
		warn:          func(string) {},
		arenaCapacity: 64 * 1024,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Flatten projects v into a single flat object, per spec.md §4.D.
func Flatten(v jsonvalue.Value, opts ...Option) jsonvalue.Value {
	cfg := newConfig(opts)
	a := arena.New(cfg.arenaCapacity)
	out := jsonvalue.NewObject(8)

	walk(out, v, "", true, a, cfg, func(leaf jsonvalue.Value) jsonvalue.Value { return leaf })

	return jsonvalue.ObjectValue(out)
}

// PathsWithTypes projects v into a flat object of path -> type name, per
// spec.md §6. A non-container root emits the single key "root".
func PathsWithTypes(v jsonvalue.Value, opts ...Option) jsonvalue.Value {
	cfg := newConfig(opts)
	a := arena.New(cfg.arenaCapacity)
	out := jsonvalue.NewObject(8)

	rootLabel := ""
	if !v.IsContainer() {
		rootLabel = "root"
	}

	walk(out, v, "", true, a, cfg, func(leaf jsonvalue.Value) jsonvalue.Value {
		return jsonvalue.String(jsonvalue.TypeName(leaf))
	})

	if rootLabel != "" {
		// The root leaf was written under the empty-string key by walk;
		// re-key it under "root" without re-running the traversal.
		if v, ok := out.Get(""); ok {
			relabeled := jsonvalue.NewObject(1)
			relabeled.Set(rootLabel, v)

			return jsonvalue.ObjectValue(relabeled)
		}
	}

	return jsonvalue.ObjectValue(out)
}

func walk(
	out *jsonvalue.Object,
	v jsonvalue.Value,
	path string,
	isRoot bool,
	a *arena.Arena,
	cfg *config,
	leaf func(jsonvalue.Value) jsonvalue.Value,
) {
	switch v.Kind {
	case jsonvalue.KindObject:
		if v.Obj.Len() == 0 {
			if isRoot {
				out.Set(safeKey(path, a, cfg), leaf(v))
			}

			return
		}

		for _, p := range v.Obj.Pairs() {
			childPath := joinObject(path, p.Key, a, cfg)
			walk(out, p.Value, childPath, false, a, cfg, leaf)
		}

	case jsonvalue.KindArray:
		if len(v.Arr) == 0 {
			if isRoot {
				out.Set(safeKey(path, a, cfg), leaf(v))
			}

			return
		}

		for i, elem := range v.Arr {
			childPath := joinArray(path, i, a, cfg)
			walk(out, elem, childPath, false, a, cfg, leaf)
		}

	default:
		out.Set(safeKey(path, a, cfg), leaf(v))
	}
}

func joinObject(path, key string, a *arena.Arena, cfg *config) string {
	var full string
	if path == "" {
		full = key
	} else {
		full = path + "." + key
	}

	return safeKey(full, a, cfg)
}

func joinArray(path string, index int, a *arena.Arena, cfg *config) string {
	full := path + "[" + strconv.Itoa(index) + "]"

	return safeKey(full, a, cfg)
}

// safeKey truncates full to the key-buffer limit if needed, reporting a
// TruncationWarning, then copies it out of the traversal arena.
func safeKey(full string, a *arena.Arena, cfg *config) string {
	if len(full) <= maxPathBytes {
		return a.CopyString(full)
	}

	truncated := full[:maxPathBytes]
	if i := strings.LastIndexAny(truncated, ".]"); i >= 0 {
		truncated = truncated[:i+1]
	}

	cfg.warn(truncated)

	return a.CopyString(truncated)
}
