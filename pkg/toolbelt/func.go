package toolbelt

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/harun/toolbelt/pkg/schema"
)

var (
	ctxType = reflect.TypeOf((*context.Context)(nil)).Elem()
	errType = reflect.TypeOf((*error)(nil)).Elem()
)

// Func builds a Definition from a plain typed function. Two signatures
// are accepted:
//
//	func(ctx context.Context, args A) (R, error)  // suspend-capable
//	func(args A) (R, error)                       // blocking
//
// A must be a struct (or pointer to struct); its fields become the
// parameter schema per schema.InferStruct. At invocation the argument bag
// is decoded into A through encoding/json, so json tags govern both the
// schema and the decoding.
func Func(name, description string, fn any) (Definition, error) {
	v := reflect.ValueOf(fn)
	t := v.Type()
	if t.Kind() != reflect.Func {
		return Definition{}, fmt.Errorf("tool %s: fn must be a function, got %s", name, t.Kind())
	}
	if t.IsVariadic() {
		return Definition{}, fmt.Errorf("tool %s: variadic functions are not supported", name)
	}
	if t.NumOut() != 2 || t.Out(1) != errType {
		return Definition{}, fmt.Errorf("tool %s: fn must return (R, error)", name)
	}

	var argType reflect.Type
	withCtx := false
	switch t.NumIn() {
	case 1:
		argType = t.In(0)
	case 2:
		if t.In(0) != ctxType {
			return Definition{}, fmt.Errorf("tool %s: first parameter must be context.Context", name)
		}
		withCtx = true
		argType = t.In(1)
	default:
		return Definition{}, fmt.Errorf("tool %s: fn must take (args) or (ctx, args)", name)
	}

	params, err := schema.InferStruct(argType)
	if err != nil {
		return Definition{}, fmt.Errorf("tool %s: %w", name, err)
	}

	def := Definition{
		Name:        name,
		Description: description,
		Parameters:  params.Parameters,
	}

	if withCtx {
		def.Handler = func(ctx context.Context, args map[string]any) (any, error) {
			argVal, err := decodeArgs(args, argType)
			if err != nil {
				return nil, err
			}
			return callTyped(v, []reflect.Value{reflect.ValueOf(ctx), argVal})
		}
	} else {
		def.Blocking = func(args map[string]any) (any, error) {
			argVal, err := decodeArgs(args, argType)
			if err != nil {
				return nil, err
			}
			return callTyped(v, []reflect.Value{argVal})
		}
	}

	return def, nil
}

// MustFunc is Func for init-time wiring; signature problems panic.
func MustFunc(name, description string, fn any) Definition {
	def, err := Func(name, description, fn)
	if err != nil {
		panic(err)
	}
	return def
}

func decodeArgs(args map[string]any, argType reflect.Type) (reflect.Value, error) {
	raw, err := json.Marshal(args)
	if err != nil {
		return reflect.Value{}, fmt.Errorf("encode arguments: %w", err)
	}
	ptr := reflect.New(argType)
	if err := json.Unmarshal(raw, ptr.Interface()); err != nil {
		return reflect.Value{}, fmt.Errorf("decode arguments: %w", err)
	}
	return ptr.Elem(), nil
}

func callTyped(fn reflect.Value, in []reflect.Value) (any, error) {
	out := fn.Call(in)
	if e := out[1].Interface(); e != nil {
		return nil, e.(error)
	}
	return out[0].Interface(), nil
}
