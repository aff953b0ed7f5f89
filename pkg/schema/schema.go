package schema

// Kind is the closed vocabulary of parameter types exposed to callers.
type Kind string

const (
	KindString  Kind = "string"
	KindInteger Kind = "integer"
	KindNumber  Kind = "number"
	KindBoolean Kind = "boolean"
	KindArray   Kind = "array"
	KindObject  Kind = "object"
	KindAny     Kind = "any"
)

// Type describes a parameter type as a plain tree over the closed Kind
// vocabulary. Composite Go types are resolved at inference time so callers
// never see raw reflect values.
type Type struct {
	Kind     Kind     `json:"kind"`
	Elem     *Type    `json:"elem,omitempty"`     // array element type
	Nullable bool     `json:"nullable,omitempty"` // optional-T
	Enum     []string `json:"enum,omitempty"`     // allowed values
}

// Parameter describes a single tool parameter.
type Parameter struct {
	Name        string `json:"name"`
	Type        Type   `json:"type"`
	Description string `json:"description,omitempty"`
	Required    bool   `json:"required"`
	Default     any    `json:"default,omitempty"`
}

// Object is an ordered parameter schema. Order follows the declaration
// order of the source (struct fields or an explicit parameter list).
type Object struct {
	Parameters []Parameter `json:"parameters"`
}

// JSONSchema renders the object as a JSON Schema document suitable for
// argument validation and for vendor function-calling formats. Unknown
// properties are rejected and required parameters are listed explicitly.
func (o Object) JSONSchema() map[string]any {
	properties := make(map[string]any, len(o.Parameters))
	required := []string{}

	for _, p := range o.Parameters {
		prop := p.Type.jsonSchema()
		if p.Description != "" {
			prop["description"] = p.Description
		}
		if p.Default != nil {
			prop["default"] = p.Default
		}
		properties[p.Name] = prop

		if p.Required {
			required = append(required, p.Name)
		}
	}

	doc := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           properties,
	}
	if len(required) > 0 {
		doc["required"] = required
	}
	return doc
}

func (t Type) jsonSchema() map[string]any {
	prop := map[string]any{}

	switch t.Kind {
	case KindAny:
		// Unconstrained: the empty schema accepts any value.
	case KindArray:
		prop["type"] = "array"
		if t.Elem != nil && t.Elem.Kind != KindAny {
			prop["items"] = t.Elem.jsonSchema()
		}
	default:
		prop["type"] = string(t.Kind)
	}

	if len(t.Enum) > 0 {
		prop["enum"] = t.Enum
	}

	if t.Nullable {
		if typ, ok := prop["type"]; ok {
			prop["type"] = []any{typ, "null"}
		}
	}

	return prop
}
