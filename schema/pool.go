package schema

import (
	"sync"

	"go.jsonkit.dev/jsonkit/pool"
)

// nodePool backs spec.md §4.A's schema-node pool: Analyze and Merge
// allocate a fresh Node for every value and fold, and Merge discards its
// two inputs on every call, so recycling those top-level cells instead
// of leaving them for the GC matters on large batches. Lazily
// constructed via sync.OnceValue so package init never pays for a pool
// nothing ends up using (e.g. a build that only ever calls Flatten).
var nodePool = sync.OnceValue(func() *pool.Pool[*Node] {
	return pool.New(func() *Node { return &Node{} })
})

// Reset clears n to its zero value so the pool can hand it to an
// unrelated caller. Satisfies pool.Resetter.
func (n *Node) Reset() {
	n.Kind = KindNull
	n.Required = false
	n.Nullable = false
	n.Items = nil
	n.Properties = nil
}

func newNode() *Node {
	return nodePool().Get()
}

// releaseNode returns n itself to the pool without touching its
// children. This is always safe to call on Merge's a/b parameters:
// Merge never returns a or b themselves as part of its result, only
// moves (KindArray's single-sided case), recursively merges (matched
// array items and object properties), or copies (onlyOnOneSide)
// whatever they own. Releasing children here as well would double-free
// a cell that a move or merge already handed to the result tree.
func releaseNode(n *Node) {
	if n == nil {
		return
	}

	nodePool().Put(n)
}

// ReleaseTree returns n and every node it owns to the pool. Call this
// only on a tree with a single owner and no further readers — the
// trees Analyze/Merge/AnalyzeBatch produce qualify, since every Node
// reachable from a result is either freshly allocated or moved in
// (never aliased by two live trees at once). ToJSONSchema copies every
// field it needs into its own *jsonschema.Schema tree, so callers can
// release immediately after emitting.
func ReleaseTree(n *Node) {
	if n == nil {
		return
	}

	ReleaseTree(n.Items)

	for _, p := range n.Properties {
		ReleaseTree(p.Schema)
	}

	nodePool().Put(n)
}
