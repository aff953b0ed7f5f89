// Package schema infers structured parameter schemas for tools.
//
// Invariants:
// - The type vocabulary is closed: string, integer, number, boolean, array, object, any.
// - Inference degrades to "any" for unsupported Go types; it never fails for a struct input.
// - A parameter is required iff it has no default and is not nullable or omitempty.
//
// Usage:
//
//	type Args struct {
//		City  string `json:"city" description:"City name"`
//		Limit int    `json:"limit" default:"10" description:"Max results"`
//	}
//	obj, _ := schema.InferStruct(reflect.TypeOf(Args{}))
//	doc := obj.JSONSchema()
package schema
