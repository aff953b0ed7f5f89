package toolbelt

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/harun/toolbelt/pkg/schema"
)

// DefaultGroup is the reserved group for tools registered without one.
const DefaultGroup = "core"

// separator joins group and name into a qualified name.
const separator = "."

// Handler is a suspend-capable tool body. It runs on the caller's
// goroutine and is expected to honor ctx in long-running work.
type Handler func(ctx context.Context, args map[string]any) (any, error)

// BlockingHandler is a tool body that blocks until completion.
type BlockingHandler func(args map[string]any) (any, error)

// Definition describes a tool to be registered. Exactly one of Handler
// and Blocking must be set. The parameter schema comes from Parameters
// when given, otherwise it is inferred from the Args prototype struct;
// with neither, the tool accepts no arguments.
type Definition struct {
	Name        string
	Group       string // defaults to DefaultGroup
	Description string
	Parameters  []schema.Parameter // explicit schema, wins over Args
	Args        any                // prototype struct for schema inference
	Handler     Handler
	Blocking    BlockingHandler
}

// Record is the immutable registration of a single tool. It holds a
// reference to the original function, never a wrapped copy, so the
// function stays independently callable.
type Record struct {
	name        string
	group       string
	qualified   string
	description string
	isAsync     bool
	params      schema.Object
	compiled    *gojsonschema.Schema
	handler     Handler
	blocking    BlockingHandler
}

func (r *Record) Name() string          { return r.name }
func (r *Record) Group() string         { return r.group }
func (r *Record) QualifiedName() string { return r.qualified }
func (r *Record) Description() string   { return r.description }

// IsAsync reports whether the tool body is suspend-capable.
func (r *Record) IsAsync() bool { return r.isAsync }

// Schema returns the parameter schema derived at registration time. The
// slice is copied so callers cannot reach back into the record.
func (r *Record) Schema() schema.Object {
	params := make([]schema.Parameter, len(r.params.Parameters))
	copy(params, r.params.Parameters)
	return schema.Object{Parameters: params}
}

func newRecord(def Definition) (*Record, error) {
	if def.Name == "" {
		return nil, fmt.Errorf("tool name cannot be empty")
	}
	if strings.Contains(def.Name, separator) {
		return nil, fmt.Errorf("tool name %q must not contain %q", def.Name, separator)
	}
	group := def.Group
	if group == "" {
		group = DefaultGroup
	}
	if strings.Contains(group, separator) {
		return nil, fmt.Errorf("group %q must not contain %q", group, separator)
	}

	if def.Handler == nil && def.Blocking == nil {
		return nil, fmt.Errorf("tool %s has no handler", def.Name)
	}
	if def.Handler != nil && def.Blocking != nil {
		return nil, fmt.Errorf("tool %s has both a suspend and a blocking handler", def.Name)
	}

	params, err := paramSchema(def)
	if err != nil {
		return nil, fmt.Errorf("tool %s: %w", def.Name, err)
	}

	compiled, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(params.JSONSchema()))
	if err != nil {
		return nil, fmt.Errorf("tool %s: compile schema: %w", def.Name, err)
	}

	return &Record{
		name:        def.Name,
		group:       group,
		qualified:   group + separator + def.Name,
		description: def.Description,
		isAsync:     def.Handler != nil,
		params:      params,
		compiled:    compiled,
		handler:     def.Handler,
		blocking:    def.Blocking,
	}, nil
}

func paramSchema(def Definition) (schema.Object, error) {
	if len(def.Parameters) > 0 {
		return schema.Object{Parameters: def.Parameters}, nil
	}
	if def.Args != nil {
		return schema.InferStruct(reflect.TypeOf(def.Args))
	}
	return schema.Object{}, nil
}
