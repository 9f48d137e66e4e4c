// Package arena implements the bump allocator spec.md §4.A describes for
// per-traversal key construction: a fixed-capacity block with a bump
// pointer, 16-byte aligned spans, and a heap-backed overflow list that is
// released as a whole on Reset.
//
// Go has no manual free, so "release" here means dropping references so
// the garbage collector can reclaim them; the allocation discipline
// (bump pointer, alignment, overflow-on-exhaustion) is otherwise exactly
// the one spec.md specifies.
package arena

import "strings"

const (
	alignment = 16
	// InlineStringLimit is the largest string CopyString will place
	// inside the arena's bump region. Longer strings use the heap
	// unconditionally, per spec.md §4.A.
	InlineStringLimit = 256
)

// Arena is a single-traversal bump allocator. It is not safe for
// concurrent use: spec.md §5 assigns one arena per in-progress document,
// never shared across workers.
type Arena struct {
	buf      []byte
	pos      int
	overflow [][]byte
}

// New returns an Arena with the given backing capacity.
func New(capacity int) *Arena {
	return &Arena{buf: make([]byte, capacity)}
}

// Alloc returns an n-byte span. Spans are bump-allocated out of the
// backing block when room remains; once exhausted, Alloc falls back to a
// heap allocation tracked in the overflow list so Reset can drop it.
func (a *Arena) Alloc(n int) []byte {
	aligned := alignUp(n, alignment)

	if a.pos+aligned <= len(a.buf) {
		b := a.buf[a.pos : a.pos+n : a.pos+aligned]
		a.pos += aligned

		return b
	}

	b := make([]byte, n)
	a.overflow = append(a.overflow, b)

	return b
}

// CopyString copies s into the arena (or, above InlineStringLimit bytes,
// onto the heap unconditionally) and returns the copy. Use this for
// short-lived keys built during a traversal instead of re-slicing the
// input text.
func (a *Arena) CopyString(s string) string {
	if len(s) > InlineStringLimit {
		return strings.Clone(s)
	}

	if len(s) == 0 {
		return ""
	}

	b := a.Alloc(len(s))
	copy(b, s)

	return string(b)
}

// Reset rewinds the bump pointer and releases the overflow list. The
// arena is then ready for reuse by the next traversal.
func (a *Arena) Reset() {
	a.pos = 0
	a.overflow = nil
}

// Len returns the number of bytes currently bump-allocated (excluding
// overflow), useful for tests and diagnostics.
func (a *Arena) Len() int { return a.pos }

func alignUp(n, to int) int {
	return (n + to - 1) &^ (to - 1)
}
