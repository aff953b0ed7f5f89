package toolbelt

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harun/toolbelt/pkg/schema"
)

func TestFunc_BlockingForm(t *testing.T) {
	type args struct {
		Name string `json:"name" description:"Who to greet"`
	}

	def, err := Func("greet", "Greet someone", func(a args) (string, error) {
		return "hello " + a.Name, nil
	})
	require.NoError(t, err)

	assert.Equal(t, "greet", def.Name)
	assert.Equal(t, "Greet someone", def.Description)
	assert.Nil(t, def.Handler)
	require.NotNil(t, def.Blocking)

	require.Len(t, def.Parameters, 1)
	assert.Equal(t, "name", def.Parameters[0].Name)
	assert.Equal(t, schema.KindString, def.Parameters[0].Type.Kind)
	assert.True(t, def.Parameters[0].Required)

	out, err := def.Blocking(map[string]any{"name": "world"})
	require.NoError(t, err)
	assert.Equal(t, "hello world", out)
}

func TestFunc_ContextForm(t *testing.T) {
	type args struct {
		N int `json:"n"`
	}

	def, err := Func("double", "Double a number", func(ctx context.Context, a args) (int, error) {
		return a.N * 2, nil
	})
	require.NoError(t, err)

	require.NotNil(t, def.Handler)
	assert.Nil(t, def.Blocking)

	out, err := def.Handler(context.Background(), map[string]any{"n": 21})
	require.NoError(t, err)
	assert.Equal(t, 42, out)
}

func TestFunc_ErrorsPropagate(t *testing.T) {
	type args struct{}

	def, err := Func("fail", "Always fails", func(a args) (string, error) {
		return "", errors.New("nope")
	})
	require.NoError(t, err)

	_, err = def.Blocking(map[string]any{})
	require.Error(t, err)
	assert.Equal(t, "nope", err.Error())
}

func TestFunc_RejectsBadSignatures(t *testing.T) {
	type args struct{}

	tests := []struct {
		name string
		fn   any
	}{
		{"not a function", 42},
		{"no error return", func(a args) string { return "" }},
		{"too many inputs", func(a, b, c args) (string, error) { return "", nil }},
		{"first param not context", func(s string, a args) (string, error) { return "", nil }},
		{"non-struct args", func(s string) (string, error) { return "", nil }},
		{"variadic", func(a ...args) (string, error) { return "", nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Func("bad", "bad", tt.fn)
			assert.Error(t, err)
		})
	}
}

func TestMustFunc_PanicsOnBadSignature(t *testing.T) {
	assert.Panics(t, func() {
		MustFunc("bad", "bad", "not a function")
	})
}

func TestFunc_RegisteredFunctionStaysCallable(t *testing.T) {
	type args struct {
		X float64 `json:"x"`
	}
	square := func(a args) (float64, error) { return a.X * a.X, nil }

	belt := New()
	def := MustFunc("square", "Square a number", square)
	require.NoError(t, belt.Register(def))

	// The original function is referenced, not wrapped.
	out, err := square(args{X: 3})
	require.NoError(t, err)
	assert.Equal(t, float64(9), out)

	res := belt.ExecuteSync("square", map[string]any{"x": 3})
	require.True(t, res.Success)
	assert.Equal(t, float64(9), res.Output)
}

func TestListTools(t *testing.T) {
	belt := newTestBelt(t)

	def := MustFunc("sub", "Subtract", func(a addArgs) (float64, error) { return a.A - a.B, nil })
	def.Group = "math"
	require.NoError(t, belt.Register(def))

	tools := belt.ListTools()
	require.Len(t, tools, 2)
	assert.Equal(t, "math.add", tools[0].Name)
	assert.Equal(t, "Add two numbers", tools[0].Description)
	assert.Equal(t, "math.sub", tools[1].Name)

	params := tools[0].Parameters.Parameters
	require.Len(t, params, 2)
	assert.Equal(t, "a", params[0].Name)
	assert.Equal(t, schema.KindNumber, params[0].Type.Kind)

	assert.Empty(t, belt.ListTools("ghost"))
}
