package toolbelt

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harun/toolbelt/pkg/schema"
)

type addArgs struct {
	A float64 `json:"a" description:"First addend"`
	B float64 `json:"b" description:"Second addend"`
}

func newTestBelt(t *testing.T) *Toolbelt {
	t.Helper()
	belt := New()

	def := MustFunc("add", "Add two numbers", func(args addArgs) (float64, error) {
		return args.A + args.B, nil
	})
	def.Group = "math"
	require.NoError(t, belt.Register(def))

	return belt
}

func TestExecute_RoundTripBothConventions(t *testing.T) {
	belt := newTestBelt(t)
	args := map[string]any{"a": 5, "b": 3}

	blocking := belt.ExecuteSync("math.add", args)
	require.True(t, blocking.Success, "blocking call failed: %v", blocking.Error)
	assert.Equal(t, float64(8), blocking.Output)
	assert.Equal(t, "math.add", blocking.Tool)
	assert.NotEmpty(t, blocking.CallID)
	assert.Nil(t, blocking.Error)

	suspend := belt.Execute(context.Background(), "math.add", args)
	require.True(t, suspend.Success, "suspend call failed: %v", suspend.Error)
	assert.Equal(t, float64(8), suspend.Output)

	assert.Equal(t, blocking.Output, suspend.Output, "both conventions must agree")
}

func TestExecute_BareNameResolution(t *testing.T) {
	belt := newTestBelt(t)

	res := belt.ExecuteSync("add", map[string]any{"a": 1, "b": 2})
	require.True(t, res.Success)
	assert.Equal(t, "math.add", res.Tool)
}

func TestExecute_NotFoundEnvelope(t *testing.T) {
	belt := newTestBelt(t)

	for _, res := range []Result{
		belt.ExecuteSync("ghost.tool", nil),
		belt.Execute(context.Background(), "ghost.tool", nil),
	} {
		assert.False(t, res.Success)
		require.NotNil(t, res.Error)
		assert.Equal(t, KindNotFound, res.Error.Kind)
		assert.Equal(t, "ghost.tool", res.Tool)
	}
}

func TestExecute_AmbiguousNameEnvelope(t *testing.T) {
	belt := newTestBelt(t)

	dup := MustFunc("add", "Another add", func(args addArgs) (float64, error) {
		return args.A + args.B, nil
	})
	dup.Group = "calc"
	require.NoError(t, belt.Register(dup))

	res := belt.ExecuteSync("add", map[string]any{"a": 1, "b": 2})
	assert.False(t, res.Success)
	require.NotNil(t, res.Error)
	assert.Equal(t, KindAmbiguousName, res.Error.Kind)
}

func TestExecute_MissingRequiredParameter(t *testing.T) {
	belt := newTestBelt(t)

	res := belt.ExecuteSync("math.add", map[string]any{"a": 5})
	assert.False(t, res.Success)
	require.NotNil(t, res.Error)
	assert.Equal(t, KindInvalidArguments, res.Error.Kind)
	assert.Contains(t, res.Error.Parameters, "b")
}

func TestExecute_UnknownParameter(t *testing.T) {
	belt := newTestBelt(t)

	res := belt.ExecuteSync("math.add", map[string]any{"a": 5, "b": 3, "c": 1})
	assert.False(t, res.Success)
	require.NotNil(t, res.Error)
	assert.Equal(t, KindInvalidArguments, res.Error.Kind)
	assert.Contains(t, res.Error.Parameters, "c")
}

func TestExecute_WrongParameterType(t *testing.T) {
	belt := newTestBelt(t)

	res := belt.ExecuteSync("math.add", map[string]any{"a": "five", "b": 3})
	assert.False(t, res.Success)
	require.NotNil(t, res.Error)
	assert.Equal(t, KindInvalidArguments, res.Error.Kind)
}

func TestExecute_ToolErrorBecomesEnvelope(t *testing.T) {
	belt := New()
	require.NoError(t, belt.Register(Definition{
		Name:        "fail",
		Group:       "test",
		Description: "Always fails",
		Blocking: func(args map[string]any) (any, error) {
			return nil, errors.New("boom")
		},
	}))

	res := belt.ExecuteSync("test.fail", nil)
	assert.False(t, res.Success)
	require.NotNil(t, res.Error)
	assert.Equal(t, KindExecutionError, res.Error.Kind)
	assert.Contains(t, res.Error.Message, "boom")

	// The registry stays usable after a tool failure.
	require.NoError(t, belt.Register(Definition{
		Name:     "ok",
		Group:    "test",
		Blocking: func(args map[string]any) (any, error) { return "fine", nil },
	}))
	after := belt.ExecuteSync("test.ok", nil)
	assert.True(t, after.Success)
	assert.Equal(t, "fine", after.Output)
}

func TestExecute_PanicRecovered(t *testing.T) {
	belt := New()
	require.NoError(t, belt.Register(Definition{
		Name:  "explode",
		Group: "test",
		Blocking: func(args map[string]any) (any, error) {
			panic("kaboom")
		},
	}))

	for _, res := range []Result{
		belt.ExecuteSync("test.explode", nil),
		belt.Execute(context.Background(), "test.explode", nil),
	} {
		assert.False(t, res.Success)
		require.NotNil(t, res.Error)
		assert.Equal(t, KindExecutionError, res.Error.Kind)
		assert.Contains(t, res.Error.Message, "kaboom")
	}
}

func TestExecute_BridgesAsyncToolFromBlockingCall(t *testing.T) {
	belt := New()
	require.NoError(t, belt.Register(Definition{
		Name:  "ctx_tool",
		Group: "test",
		Handler: func(ctx context.Context, args map[string]any) (any, error) {
			if ctx == nil {
				return nil, errors.New("no context supplied")
			}
			return "done", nil
		},
	}))

	res := belt.ExecuteSync("test.ctx_tool", nil)
	require.True(t, res.Success, "blocking call into a suspend-capable tool must bridge: %v", res.Error)
	assert.Equal(t, "done", res.Output)
}

func TestExecute_BridgesBlockingToolFromSuspendCall(t *testing.T) {
	belt := newTestBelt(t)

	res := belt.Execute(context.Background(), "math.add", map[string]any{"a": 2, "b": 2})
	require.True(t, res.Success)
	assert.Equal(t, float64(4), res.Output)
}

func TestExecute_DefaultsApplied(t *testing.T) {
	belt := New()
	require.NoError(t, belt.Register(Definition{
		Name:  "greet",
		Group: "test",
		Parameters: []schema.Parameter{
			{Name: "name", Type: schema.Type{Kind: schema.KindString}, Required: true},
			{Name: "greeting", Type: schema.Type{Kind: schema.KindString}, Default: "hello"},
		},
		Blocking: func(args map[string]any) (any, error) {
			return fmt.Sprintf("%v, %v", args["greeting"], args["name"]), nil
		},
	}))

	res := belt.ExecuteSync("test.greet", map[string]any{"name": "world"})
	require.True(t, res.Success, "unexpected failure: %v", res.Error)
	assert.Equal(t, "hello, world", res.Output)

	res = belt.ExecuteSync("test.greet", map[string]any{"name": "world", "greeting": "hi"})
	require.True(t, res.Success)
	assert.Equal(t, "hi, world", res.Output)
}

func TestExecute_CallerArgsNotMutated(t *testing.T) {
	belt := New()
	require.NoError(t, belt.Register(Definition{
		Name:  "noop",
		Group: "test",
		Parameters: []schema.Parameter{
			{Name: "limit", Type: schema.Type{Kind: schema.KindInteger}, Default: int64(10)},
		},
		Blocking: func(args map[string]any) (any, error) { return args["limit"], nil },
	}))

	callerArgs := map[string]any{}
	res := belt.ExecuteSync("test.noop", callerArgs)
	require.True(t, res.Success)
	assert.Equal(t, int64(10), res.Output)
	assert.Empty(t, callerArgs, "defaults must be applied on a copy")
}

func TestExecute_ConcurrentInvocations(t *testing.T) {
	belt := newTestBelt(t)

	const workers = 32
	var wg sync.WaitGroup
	results := make([]Result, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = belt.ExecuteSync("math.add", map[string]any{
				"a": float64(i),
				"b": float64(i),
			})
		}(i)
	}
	wg.Wait()

	for i, res := range results {
		require.True(t, res.Success, "worker %d failed: %v", i, res.Error)
		assert.Equal(t, float64(2*i), res.Output, "worker %d got cross-talk", i)
	}
}

func TestDefaultBelt(t *testing.T) {
	def := MustFunc("default_belt_probe", "probe", func(args addArgs) (float64, error) {
		return args.A - args.B, nil
	})
	def.Group = "probe"
	require.NoError(t, Register(def))

	res := ExecuteSync("probe.default_belt_probe", map[string]any{"a": 5, "b": 3})
	require.True(t, res.Success)
	assert.Equal(t, float64(2), res.Output)

	res = Execute(context.Background(), "probe.default_belt_probe", map[string]any{"a": 5, "b": 3})
	require.True(t, res.Success)

	found := false
	for _, info := range ListTools("probe") {
		if info.Name == "probe.default_belt_probe" {
			found = true
		}
	}
	assert.True(t, found)
}
