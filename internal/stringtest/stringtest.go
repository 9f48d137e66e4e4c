// Package stringtest builds expected-output strings for jsonkit's test
// suite: joining CLI output lines with an explicit line ending, and
// dedenting multi-line JSON/schema fixtures so they can be written as
// indented Go raw string literals without the indentation leaking into
// the comparison.
package stringtest

import "strings"

// JoinLF joins multiple strings with LF line endings. Use this to build
// expected multi-line output, such as jsonkit's pretty-printed JSON, one
// line per argument.
//
// Example:
//
//	want := stringtest.JoinLF(
//		`{"a.b":1}`,
//		`{"a.b":2}`,
//	) // -> "{\"a.b\":1}\n{\"a.b\":2}"
func JoinLF(ss ...string) string {
	var sb strings.Builder
	for i, s := range ss {
		if i > 0 {
			sb.WriteByte('\n')
		}

		sb.WriteString(s)
	}

	return sb.String()
}

// JoinCRLF joins multiple strings with CRLF line endings, for asserting
// jsonkit's output against a Windows-style expectation.
//
// Example:
//
//	want := stringtest.JoinCRLF(
//		`{"a.b":1}`,
//		`{"a.b":2}`,
//	) // -> "{\"a.b\":1}\r\n{\"a.b\":2}"
func JoinCRLF(ss ...string) string {
	var sb strings.Builder
	for i, s := range ss {
		if i > 0 {
			sb.WriteByte('\r')
			sb.WriteByte('\n')
		}

		sb.WriteString(s)
	}

	return sb.String()
}

// Dedent normalizes an indented multi-line raw string literal into the
// text it represents, so a table-driven test can write its expected
// JSON or YAML indented to match the surrounding Go source, not flush
// against the left margin.
//
// A single leading newline and a single trailing newline are each
// consumed (any additional ones are preserved, so a fixture can still
// assert on blank lines around its payload). The remaining lines are
// stripped of their common leading whitespace, computed over the
// non-blank lines only; a whitespace-only line normalizes to "" rather
// than keeping its indentation.
func Dedent(s string) string {
	if s == "" {
		return ""
	}

	if strings.HasPrefix(s, "\n") {
		s = s[1:]
	}

	if strings.HasSuffix(s, "\n") {
		s = s[:len(s)-1]
	}

	lines := strings.Split(s, "\n")

	indent := -1

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		n := leadingWhitespace(line)
		if indent == -1 || n < indent {
			indent = n
		}
	}

	if indent <= 0 {
		indent = 0
	}

	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			lines[i] = ""
			continue
		}

		lines[i] = line[indent:]
	}

	return strings.Join(lines, "\n")
}

func leadingWhitespace(s string) int {
	n := 0
	for n < len(s) && (s[n] == ' ' || s[n] == '\t') {
		n++
	}

	return n
}
