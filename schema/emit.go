package schema

import "github.com/google/jsonschema-go/jsonschema"

// draft07 is the $schema URI spec.md §4.E mandates at the root.
const draft07 = "http://json-schema.org/draft-07/schema#"

// ToJSONSchema emits n as a Draft-07 JSON Schema document (spec.md
// §4.E's to_json). Only the root carries "$schema".
func ToJSONSchema(n *Node) *jsonschema.Schema {
	s := toSchema(n)
	s.Schema = draft07

	return s
}

func toSchema(n *Node) *jsonschema.Schema {
	s := &jsonschema.Schema{}

	switch {
	case n.Kind == KindMixed:
		s.Types = mixedTypeArray(n.Nullable)
	case n.Nullable:
		s.Types = []string{n.Kind.String(), "null"}
	default:
		s.Type = n.Kind.String()
	}

	switch n.Kind {
	case KindArray:
		if n.Items != nil {
			s.Items = toSchema(n.Items)
		}

	case KindObject:
		if len(n.Properties) > 0 {
			s.Properties = make(map[string]*jsonschema.Schema, len(n.Properties))

			order := make([]string, 0, len(n.Properties))
			var required []string

			for _, p := range n.Properties {
				s.Properties[p.Name] = toSchema(p.Schema)
				order = append(order, p.Name)

				if p.Schema.Required {
					required = append(required, p.Name)
				}
			}

			s.PropertyOrder = order
			s.Required = required
		}
	}

	return s
}

func mixedTypeArray(nullable bool) []string {
	names := make([]string, 0, len(allPrimitiveKinds)+1)
	for _, k := range allPrimitiveKinds {
		names = append(names, k.String())
	}

	if nullable {
		names = append(names, "null")
	}

	return names
}
