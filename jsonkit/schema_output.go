package jsonkit

import (
	"encoding/json"

	"github.com/google/jsonschema-go/jsonschema"
)

// marshalSchema renders a Draft-07 schema as compact JSON text, mirroring
// the teacher CLI's use of encoding/json against *jsonschema.Schema
// (cmd/magicschema/main.go), generalized from indent-on-demand output to
// this package's plain-text API.
func marshalSchema(s *jsonschema.Schema) (string, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return "", err
	}

	return string(b), nil
}
