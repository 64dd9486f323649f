package tools

import "github.com/google/jsonschema-go/jsonschema"

// Schema is a type alias so domain files never import jsonschema-go
// directly; everything goes through Field/BuildSchema, which keeps schema
// generation mechanical rather than hand-authored per tool.
type Schema = jsonschema.Schema

// Field describes one tool-argument field: its JSON-Schema type, a free-text
// description surfaced to the model, whether it's required, and (for
// string fields with a closed vocabulary, e.g. a rest kind or ability name)
// an enum of accepted values.
type Field struct {
	Name        string
	Type        string
	Description string
	Required    bool
	Enum        []string
}

// BuildSchema renders fields into a JSON-Schema object: per-field type and
// description, and a required array derived from the fields marked
// Required.
func BuildSchema(fields ...Field) *Schema {
	props := make(map[string]*Schema, len(fields))
	var required []string
	for _, f := range fields {
		prop := &Schema{Type: f.Type, Description: f.Description}
		if len(f.Enum) > 0 {
			prop.Enum = make([]any, len(f.Enum))
			for i, v := range f.Enum {
				prop.Enum[i] = v
			}
		}
		props[f.Name] = prop
		if f.Required {
			required = append(required, f.Name)
		}
	}
	return &Schema{Type: "object", Properties: props, Required: required}
}
