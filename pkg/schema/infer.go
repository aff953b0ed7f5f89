package schema

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// InferStruct derives an ordered parameter schema from the exported fields
// of a struct type. Pointer-to-struct is dereferenced. Field metadata is
// read from struct tags:
//
//	json        parameter name (fallback: lower-cased field name), omitempty
//	description human-readable parameter description
//	enum        comma-separated allowed values
//	default     default value, parsed according to the field's kind
//
// A field with a default, a pointer type, or the omitempty option is
// optional; every other field is required.
func InferStruct(t reflect.Type) (Object, error) {
	if t == nil {
		return Object{}, fmt.Errorf("argument prototype is nil")
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return Object{}, fmt.Errorf("argument prototype must be a struct, got %s", t.Kind())
	}

	var obj Object
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		name, omitempty := parseJSONTag(field)
		if name == "-" {
			continue
		}

		typ := InferType(field.Type)
		if enum := field.Tag.Get("enum"); enum != "" {
			typ.Enum = splitTrim(enum)
		}

		param := Parameter{
			Name:        name,
			Type:        typ,
			Description: field.Tag.Get("description"),
		}

		if raw, ok := field.Tag.Lookup("default"); ok {
			value, parsed := parseDefault(raw, typ.Kind)
			if !parsed {
				log.Warn().
					Str("parameter", name).
					Str("default", raw).
					Str("kind", string(typ.Kind)).
					Msg("Default tag does not parse for its kind; kept as string")
			}
			param.Default = value
			param.Required = false
		} else {
			param.Required = !typ.Nullable && !omitempty
		}

		obj.Parameters = append(obj.Parameters, param)
	}

	return obj, nil
}

// InferType maps a Go type onto the closed Kind vocabulary. Unsupported
// types (func, chan, complex, ...) degrade to "any" rather than failing,
// so inference can never block a tool from being registered.
func InferType(t reflect.Type) Type {
	switch t.Kind() {
	case reflect.String:
		return Type{Kind: KindString}
	case reflect.Bool:
		return Type{Kind: KindBoolean}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Type{Kind: KindInteger}
	case reflect.Float32, reflect.Float64:
		return Type{Kind: KindNumber}
	case reflect.Slice, reflect.Array:
		elem := InferType(t.Elem())
		return Type{Kind: KindArray, Elem: &elem}
	case reflect.Map, reflect.Struct:
		return Type{Kind: KindObject}
	case reflect.Pointer:
		inner := InferType(t.Elem())
		inner.Nullable = true
		return inner
	case reflect.Interface:
		return Type{Kind: KindAny}
	default:
		return Type{Kind: KindAny}
	}
}

func parseJSONTag(field reflect.StructField) (name string, omitempty bool) {
	name = strings.ToLower(field.Name)

	tag, ok := field.Tag.Lookup("json")
	if !ok {
		return name, false
	}

	parts := strings.Split(tag, ",")
	if parts[0] != "" {
		name = parts[0]
	}
	for _, opt := range parts[1:] {
		if opt == "omitempty" {
			omitempty = true
		}
	}
	return name, omitempty
}

// parseDefault converts a default tag value according to the parameter
// kind. A value that fails to parse is kept as a string so a malformed
// tag never blocks registration; the caller logs it so the authoring
// error surfaces at registration rather than on the first call.
func parseDefault(raw string, kind Kind) (any, bool) {
	switch kind {
	case KindInteger:
		if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return v, true
		}
		return raw, false
	case KindNumber:
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			return v, true
		}
		return raw, false
	case KindBoolean:
		if v, err := strconv.ParseBool(raw); err == nil {
			return v, true
		}
		return raw, false
	}
	return raw, true
}

func splitTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
