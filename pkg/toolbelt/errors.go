package toolbelt

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned when no record matches a name.
	ErrNotFound = errors.New("tool not found")

	// ErrAmbiguousName is returned when a bare name matches tools in more
	// than one group.
	ErrAmbiguousName = errors.New("ambiguous tool name")

	// ErrAlreadyRegistered is returned when a qualified name is taken.
	// Use Replace for a deliberate overwrite.
	ErrAlreadyRegistered = errors.New("tool already registered")
)

// ErrorKind discriminates the failure modes of a tool invocation.
type ErrorKind string

const (
	KindNotFound         ErrorKind = "not_found"
	KindAmbiguousName    ErrorKind = "ambiguous_name"
	KindInvalidArguments ErrorKind = "invalid_arguments"
	KindExecutionError   ErrorKind = "execution_error"
)

// ToolError describes a failed invocation. It travels inside a Result
// envelope and is never raised past the dispatcher boundary.
type ToolError struct {
	Kind       ErrorKind `json:"kind"`
	Tool       string    `json:"tool"`
	Message    string    `json:"message"`
	Parameters []string  `json:"parameters,omitempty"` // offending parameter names, if any
}

func (e *ToolError) Error() string {
	if len(e.Parameters) > 0 {
		return fmt.Sprintf("%s: %s: %s [%s]", e.Tool, e.Kind, e.Message, strings.Join(e.Parameters, ", "))
	}
	return fmt.Sprintf("%s: %s: %s", e.Tool, e.Kind, e.Message)
}
