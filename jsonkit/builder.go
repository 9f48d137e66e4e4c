package jsonkit

import (
	"fmt"
	"regexp"

	"go.jsonkit.dev/jsonkit/flatten"
	"go.jsonkit.dev/jsonkit/internal/xlog"
	"go.jsonkit.dev/jsonkit/jsonvalue"
	"go.jsonkit.dev/jsonkit/transform"
)

// Builder composes a sequence of operations over one retained document
// and executes them in a single pass, per spec.md §4.F.
type Builder struct {
	tree        jsonvalue.Value
	hasTree     bool
	parseErr    *Error
	ops         []transform.Operation
	pretty      bool
	lastRegex   *Error
	diagnostics *xlog.Publisher
}

// New creates an empty Builder.
func New() *Builder {
	return &Builder{}
}

// WithDiagnostics attaches a diagnostics publisher that receives one
// entry per non-fatal RegexError or TruncationWarning encountered while
// building (spec.md §7's diagnostics channel).
func (b *Builder) WithDiagnostics(pub *xlog.Publisher) *Builder {
	b.diagnostics = pub

	return b
}

// AddJSON parses text and retains the resulting tree. A parse failure is
// recorded as a ParseError and surfaced when Build is called; it does
// not panic or return immediately, matching spec.md §4.F.
func (b *Builder) AddJSON(text string) *Builder {
	v, err := jsonvalue.Parse([]byte(text))
	if err != nil {
		b.parseErr = wrapError(KindParseError, err)

		return b
	}

	b.tree = v
	b.hasTree = true
	b.parseErr = nil

	return b
}

// RemoveEmptyStrings appends the empty-string-pruning operation.
func (b *Builder) RemoveEmptyStrings() *Builder {
	b.ops = append(b.ops, transform.RemoveEmptyStrings())

	return b
}

// RemoveNulls appends the null-pruning operation.
func (b *Builder) RemoveNulls() *Builder {
	b.ops = append(b.ops, transform.RemoveNulls())

	return b
}

// Flatten appends the flatten-composition operation; it always runs last
// within the accumulated operation set (spec.md §4.C).
func (b *Builder) Flatten() *Builder {
	b.ops = append(b.ops, transform.Flatten())

	return b
}

// ReplaceKeys appends a key-rewrite operation, compiling pattern
// eagerly. A compile failure is non-fatal: the operation is still
// appended (marked invalid, skipped at execute time) and the failure is
// recorded for HasError/GetError and published as a RegexError
// diagnostic if a publisher is attached.
func (b *Builder) ReplaceKeys(pattern, replacement string) *Builder {
	b.ops = append(b.ops, transform.ReplaceKeys(pattern, replacement, b.compile(pattern)))

	return b
}

// ReplaceValues appends a value-rewrite operation with the same
// compile-eagerly, non-fatal-on-failure contract as ReplaceKeys.
func (b *Builder) ReplaceValues(pattern, replacement string) *Builder {
	b.ops = append(b.ops, transform.ReplaceValues(pattern, replacement, b.compile(pattern)))

	return b
}

func (b *Builder) compile(pattern string) transform.Matcher {
	re, err := regexp.Compile(pattern)
	if err != nil {
		b.lastRegex = wrapError(KindRegexError, err)
		b.publish(KindRegexError, fmt.Sprintf("regex compile failed for %q: %v", pattern, err))

		return nil
	}

	return re
}

// PrettyPrint sets the output format flag.
func (b *Builder) PrettyPrint(pretty bool) *Builder {
	b.pretty = pretty

	return b
}

// HasError reports whether a ReplaceKeys/ReplaceValues pattern failed to
// compile since the Builder was created.
func (b *Builder) HasError() bool { return b.lastRegex != nil }

// GetError returns the most recent regex compilation failure, or nil.
func (b *Builder) GetError() *Error { return b.lastRegex }

// Build executes the accumulated operation set over the retained tree
// and returns the printed JSON text. Error precedence follows spec.md
// §4.F: NoInput > ParseError > MemoryError > OperationExecutionError.
func (b *Builder) Build() (string, error) {
	if b.parseErr != nil {
		return "", b.parseErr
	}

	if !b.hasTree {
		return "", newError(KindNoInput, "no document added")
	}

	set := transform.NewOperationSet(b.ops...)

	out := transform.Apply(b.tree, set, func(v jsonvalue.Value) jsonvalue.Value {
		return flatten.Flatten(v, flatten.WithWarn(func(truncated string) {
			b.publish(KindTruncationWarning, fmt.Sprintf("path truncated at %q", truncated))
		}))
	})

	text, err := jsonvalue.Print(out, b.pretty)
	if err != nil {
		return "", wrapError(KindMemoryError, err)
	}

	return text, nil
}

func (b *Builder) publish(kind Kind, message string) {
	if b.diagnostics == nil {
		return
	}

	_, _ = b.diagnostics.Write([]byte(fmt.Sprintf("%s: %s", kind, message)))
}
