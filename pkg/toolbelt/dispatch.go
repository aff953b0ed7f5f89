package toolbelt

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog/log"
	"github.com/xeipuuv/gojsonschema"
)

// Result is the envelope returned by every invocation. Success and Error
// discriminate programmatically; callers never have to inspect Output to
// tell a failure from a value.
type Result struct {
	Tool     string        `json:"tool"`
	CallID   string        `json:"call_id"`
	Success  bool          `json:"success"`
	Output   any           `json:"output,omitempty"`
	Error    *ToolError    `json:"error,omitempty"`
	Duration time.Duration `json:"duration,omitempty"`
}

// Execute resolves and invokes a tool, suspend-style: a suspend-capable
// tool receives the caller's ctx, a blocking tool is handed off to a
// worker goroutine so its outcome can be awaited. All failures come back
// inside the Result; nothing is raised.
func (tb *Toolbelt) Execute(ctx context.Context, name string, args map[string]any) Result {
	return tb.dispatch(ctx, name, args, false)
}

// ExecuteSync resolves and invokes a tool, blocking the caller until
// completion. A suspend-capable tool is driven to completion with a
// background context. Semantics and error taxonomy are identical to
// Execute.
func (tb *Toolbelt) ExecuteSync(name string, args map[string]any) Result {
	return tb.dispatch(context.Background(), name, args, true)
}

// dispatch is the single core algorithm behind both entry points:
// resolve, apply defaults, validate, invoke, envelope.
func (tb *Toolbelt) dispatch(ctx context.Context, name string, args map[string]any, blockingCall bool) Result {
	start := time.Now()
	callID, _ := gonanoid.New()

	rec, err := tb.store.Resolve(name)
	if err != nil {
		kind := KindNotFound
		if errors.Is(err, ErrAmbiguousName) {
			kind = KindAmbiguousName
		}
		log.Error().Str("tool", name).Str("call_id", callID).Err(err).Msg("Tool resolution failed")
		return failure(name, callID, start, &ToolError{Kind: kind, Tool: name, Message: err.Error()})
	}

	args = rec.applyDefaults(args)

	if terr := rec.validateArgs(args); terr != nil {
		log.Error().
			Str("tool", rec.qualified).
			Str("call_id", callID).
			Strs("parameters", terr.Parameters).
			Msg("Argument validation failed")
		return failure(rec.qualified, callID, start, terr)
	}

	log.Debug().Str("tool", rec.qualified).Str("call_id", callID).Msg("Executing tool")

	output, err := rec.invoke(ctx, args, blockingCall)
	if err != nil {
		log.Error().
			Str("tool", rec.qualified).
			Str("call_id", callID).
			Dur("duration", time.Since(start)).
			Err(err).
			Msg("Tool execution failed")
		return failure(rec.qualified, callID, start, &ToolError{
			Kind:    KindExecutionError,
			Tool:    rec.qualified,
			Message: err.Error(),
		})
	}

	log.Debug().
		Str("tool", rec.qualified).
		Str("call_id", callID).
		Dur("duration", time.Since(start)).
		Msg("Tool execution completed")

	return Result{
		Tool:     rec.qualified,
		CallID:   callID,
		Success:  true,
		Output:   output,
		Duration: time.Since(start),
	}
}

func failure(tool, callID string, start time.Time, terr *ToolError) Result {
	return Result{
		Tool:     tool,
		CallID:   callID,
		Error:    terr,
		Duration: time.Since(start),
	}
}

type outcome struct {
	out any
	err error
}

// invoke runs the tool body in its native mode, bridging when the calling
// convention does not match. No timeout or cancellation is imposed here;
// a running tool completes or fails on its own.
func (r *Record) invoke(ctx context.Context, args map[string]any, blockingCall bool) (any, error) {
	switch {
	case r.isAsync:
		// A blocking caller drives the suspend-capable body to completion
		// directly; ctx is Background in that case.
		return r.callAsync(ctx, args)
	case blockingCall:
		return r.callBlocking(args)
	default:
		// Blocking body under a suspend-style call: hand off to a worker
		// and await its outcome.
		ch := make(chan outcome, 1)
		go func() {
			out, err := r.callBlocking(args)
			ch <- outcome{out, err}
		}()
		res := <-ch
		return res.out, res.err
	}
}

func (r *Record) callAsync(ctx context.Context, args map[string]any) (out any, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("tool panicked: %v", p)
		}
	}()
	return r.handler(ctx, args)
}

func (r *Record) callBlocking(args map[string]any) (out any, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("tool panicked: %v", p)
		}
	}()
	return r.blocking(args)
}

// applyDefaults returns a fresh argument map with schema defaults filled
// in for absent optional parameters. The caller's map is never mutated.
func (r *Record) applyDefaults(args map[string]any) map[string]any {
	merged := make(map[string]any, len(args)+1)
	for k, v := range args {
		merged[k] = v
	}
	for _, p := range r.params.Parameters {
		if p.Default == nil {
			continue
		}
		if _, ok := merged[p.Name]; !ok {
			merged[p.Name] = p.Default
		}
	}
	return merged
}

// validateArgs checks the argument bag against the compiled schema and
// reports schema violations with the offending parameter names.
func (r *Record) validateArgs(args map[string]any) *ToolError {
	if r.compiled == nil {
		return nil
	}

	result, err := r.compiled.Validate(gojsonschema.NewGoLoader(args))
	if err != nil {
		return &ToolError{Kind: KindInvalidArguments, Tool: r.qualified, Message: err.Error()}
	}
	if result.Valid() {
		return nil
	}

	var messages []string
	var params []string
	seen := map[string]bool{}
	for _, verr := range result.Errors() {
		messages = append(messages, verr.String())
		name := offendingParam(verr.Field(), verr.Details())
		if name != "" && !seen[name] {
			seen[name] = true
			params = append(params, name)
		}
	}

	return &ToolError{
		Kind:       KindInvalidArguments,
		Tool:       r.qualified,
		Message:    strings.Join(messages, "; "),
		Parameters: params,
	}
}

func offendingParam(field string, details gojsonschema.ErrorDetails) string {
	// "required" and "additionalProperties" findings carry the parameter
	// name in details; type findings carry it in the field path.
	if prop, ok := details["property"].(string); ok {
		return prop
	}
	if field != "" && field != "(root)" {
		return field
	}
	return ""
}
