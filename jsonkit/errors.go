// Package jsonkit is the operation dispatcher (builder) and programmatic
// API of spec.md §4.F/§6: it retains a parsed document, accumulates an
// ordered set of operations, and executes the transform/flatten/schema
// engines over it in one call.
//
// The Builder shape (validate eagerly as operations are added, execute
// in Build) is grounded on the teacher's magicschema.Generator
// (generator.go), and its chained-method style on pkg/shaker's Builder
// (manuelibar-tree-shaker), generalized from "build one schema" to
// "build text from a composed operation set."
package jsonkit

import "fmt"

// Kind enumerates the error conditions spec.md §7 names. Values are
// ordered so that precedence comparisons (lower Kind wins) match
// spec.md's Build() precedence: NoInput > ParseError > MemoryError >
// OperationExecutionError.
type Kind int

const (
	KindNoInput Kind = iota
	KindParseError
	KindMemoryError
	KindOperationExecutionError
	KindUsageError
	KindIOError
	KindRegexError
	KindTruncationWarning
)

func (k Kind) String() string {
	switch k {
	case KindNoInput:
		return "no input"
	case KindParseError:
		return "parse error"
	case KindMemoryError:
		return "memory error"
	case KindOperationExecutionError:
		return "operation execution error"
	case KindUsageError:
		return "usage error"
	case KindIOError:
		return "I/O error"
	case KindRegexError:
		return "regex error"
	case KindTruncationWarning:
		return "truncation warning"
	default:
		return "unknown error"
	}
}

// Error is jsonkit's structured error, carrying the abstract Kind
// spec.md §7 requires programmatic callers be able to distinguish.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}

	return e.Kind.String()
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func wrapError(kind Kind, err error) *Error {
	return &Error{Kind: kind, Message: err.Error(), Err: err}
}
