package stringtest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go.jsonkit.dev/jsonkit/internal/stringtest"
)

func TestDedent(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input string
		want  string
	}{
		"empty string": {
			input: "",
			want:  "",
		},
		"single line no indent": {
			input: `{"a.b":1}`,
			want:  `{"a.b":1}`,
		},
		"single line with leading newline": {
			input: "\n" + `{"a.b":1}`,
			want:  `{"a.b":1}`,
		},
		"single line with trailing newline": {
			input: `{"a.b":1}` + "\n",
			want:  `{"a.b":1}`,
		},
		"single line with both newlines": {
			input: "\n" + `{"a.b":1}` + "\n",
			want:  `{"a.b":1}`,
		},
		"multi-line no indent": {
			input: "{\"a.b\":1}\n{\"a.b\":2}\n{\"a.b\":3}",
			want:  "{\"a.b\":1}\n{\"a.b\":2}\n{\"a.b\":3}",
		},
		"multi-line with common indent spaces": {
			input: `
    {"a.b":1}
    {"a.b":2}
    {"a.b":3}`,
			want: "{\"a.b\":1}\n{\"a.b\":2}\n{\"a.b\":3}",
		},
		"multi-line with common indent tabs": {
			input: "\n\t{\"a.b\":1}\n\t{\"a.b\":2}\n\t{\"a.b\":3}",
			want:  "{\"a.b\":1}\n{\"a.b\":2}\n{\"a.b\":3}",
		},
		"multi-line with varying indent": {
			input: `
    {
      "a.b": 1
    }`,
			want: "{\n  \"a.b\": 1\n}",
		},
		"multi-line with empty lines": {
			input: `
    {"a.b":1}

    {"a.b":3}`,
			want: "{\"a.b\":1}\n\n{\"a.b\":3}",
		},
		"multi-line with whitespace-only lines": {
			input: "\n    {\"a.b\":1}\n    \n    {\"a.b\":3}",
			want:  "{\"a.b\":1}\n\n{\"a.b\":3}",
		},
		"preserves multiple leading newlines minus one": {
			input: "\n\n{\"a.b\":1}\n{\"a.b\":2}",
			want:  "\n{\"a.b\":1}\n{\"a.b\":2}",
		},
		"preserves multiple trailing newlines minus one": {
			input: "{\"a.b\":1}\n{\"a.b\":2}\n\n",
			want:  "{\"a.b\":1}\n{\"a.b\":2}\n",
		},
		"schema-like input": {
			input: `
    type: object
    properties:
      a.b:
        type: integer
    required:
      - a.b`,
			want: "type: object\nproperties:\n  a.b:\n    type: integer\nrequired:\n  - a.b",
		},
		"already dedented": {
			input: "type: object\nproperties:\n  a.b:\n    type: integer",
			want:  "type: object\nproperties:\n  a.b:\n    type: integer",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got := stringtest.Dedent(tc.input)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestJoinLF(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		want  string
		input []string
	}{
		"empty input": {
			input: nil,
			want:  "",
		},
		"single document": {
			input: []string{`{"a.b":1}`},
			want:  `{"a.b":1}`,
		},
		"two documents": {
			input: []string{`{"a.b":1}`, `{"a.b":2}`},
			want:  "{\"a.b\":1}\n{\"a.b\":2}",
		},
		"three documents": {
			input: []string{`{"a":1}`, `{"a":2}`, `{"a":3}`},
			want:  "{\"a\":1}\n{\"a\":2}\n{\"a\":3}",
		},
		"with empty document": {
			input: []string{`{"a":1}`, "", `{"a":3}`},
			want:  "{\"a\":1}\n\n{\"a\":3}",
		},
		"document already containing newlines": {
			input: []string{"{\"a\":1,\n\"b\":2}", `{"a":3}`},
			want:  "{\"a\":1,\n\"b\":2}\n{\"a\":3}",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got := stringtest.JoinLF(tc.input...)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestJoinCRLF(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		want  string
		input []string
	}{
		"empty input": {
			input: nil,
			want:  "",
		},
		"single document": {
			input: []string{`{"a.b":1}`},
			want:  `{"a.b":1}`,
		},
		"two documents": {
			input: []string{`{"a.b":1}`, `{"a.b":2}`},
			want:  "{\"a.b\":1}\r\n{\"a.b\":2}",
		},
		"three documents": {
			input: []string{`{"a":1}`, `{"a":2}`, `{"a":3}`},
			want:  "{\"a\":1}\r\n{\"a\":2}\r\n{\"a\":3}",
		},
		"with empty document": {
			input: []string{`{"a":1}`, "", `{"a":3}`},
			want:  "{\"a\":1}\r\n\r\n{\"a\":3}",
		},
		"document already containing newlines": {
			input: []string{"{\"a\":1,\n\"b\":2}", `{"a":3}`},
			want:  "{\"a\":1,\n\"b\":2}\r\n{\"a\":3}",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got := stringtest.JoinCRLF(tc.input...)
			assert.Equal(t, tc.want, got)
		})
	}
}
