// Package toolbelt registers plain functions as named, schema-described
// tools and executes them by name.
//
// Invariants:
// - Qualified names ("group.name") are unique; Register rejects duplicates, Replace overwrites explicitly.
// - A bare name resolves only when exactly one group defines it; collisions fail as ambiguous.
// - Records are immutable after registration; the read and execute paths are safe for concurrent use.
// - Execution failures come back as Result envelopes, never as panics or raw errors.
//
// Usage:
//
//	type addArgs struct {
//		A float64 `json:"a" description:"First addend"`
//		B float64 `json:"b" description:"Second addend"`
//	}
//
//	belt := toolbelt.New()
//	def := toolbelt.MustFunc("add", "Add two numbers", func(args addArgs) (float64, error) {
//		return args.A + args.B, nil
//	})
//	def.Group = "math"
//	_ = belt.Register(def)
//
//	res := belt.ExecuteSync("math.add", map[string]any{"a": 5, "b": 3})
package toolbelt
