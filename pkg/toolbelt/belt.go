package toolbelt

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/harun/toolbelt/pkg/schema"
)

// Toolbelt ties the record store, resolver and dispatcher together behind
// the registration facade.
type Toolbelt struct {
	store *Store
}

// New creates an empty toolbelt.
func New() *Toolbelt {
	return &Toolbelt{store: NewStore()}
}

// Store exposes the underlying record store for direct enumeration.
func (tb *Toolbelt) Store() *Store { return tb.store }

// Register builds a record from the definition and installs it. The
// original function is referenced, not wrapped, so it stays callable on
// its own. Duplicate qualified names are rejected with
// ErrAlreadyRegistered.
func (tb *Toolbelt) Register(def Definition) error {
	rec, err := newRecord(def)
	if err != nil {
		return fmt.Errorf("invalid tool definition: %w", err)
	}
	if err := tb.store.Register(rec); err != nil {
		return err
	}

	log.Info().
		Str("tool", rec.qualified).
		Bool("async", rec.isAsync).
		Int("parameters", len(rec.params.Parameters)).
		Msg("Tool registered")

	return nil
}

// MustRegister is Register for init-time wiring; definition problems are
// programming errors and panic.
func (tb *Toolbelt) MustRegister(def Definition) {
	if err := tb.Register(def); err != nil {
		panic(err)
	}
}

// Replace installs a definition, overwriting any existing registration
// under the same qualified name. The overwrite is logged by the store.
func (tb *Toolbelt) Replace(def Definition) error {
	rec, err := newRecord(def)
	if err != nil {
		return fmt.Errorf("invalid tool definition: %w", err)
	}
	tb.store.Replace(rec)
	return nil
}

// Resolve maps a qualified or bare name to its record.
func (tb *Toolbelt) Resolve(name string) (*Record, error) {
	return tb.store.Resolve(name)
}

// ToolInfo is the stable shape handed to format adapters: qualified name,
// description and the structural parameter schema.
type ToolInfo struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Parameters  schema.Object `json:"parameters"`
}

// ListTools enumerates registered tools in insertion order, optionally
// filtered to the given groups.
func (tb *Toolbelt) ListTools(groups ...string) []ToolInfo {
	records := tb.store.List(groups...)
	out := make([]ToolInfo, 0, len(records))
	for _, rec := range records {
		out = append(out, ToolInfo{
			Name:        rec.qualified,
			Description: rec.description,
			Parameters:  rec.Schema(),
		})
	}
	return out
}

// defaultBelt is the process-wide registry, populated incrementally from
// init functions during program start-up and read-only thereafter.
var defaultBelt = New()

// Default returns the process-wide toolbelt.
func Default() *Toolbelt { return defaultBelt }

// Register installs a definition into the process-wide toolbelt.
func Register(def Definition) error { return defaultBelt.Register(def) }

// MustRegister installs a definition into the process-wide toolbelt,
// panicking on definition errors.
func MustRegister(def Definition) { defaultBelt.MustRegister(def) }

// Execute invokes a tool on the process-wide toolbelt, suspend-style.
func Execute(ctx context.Context, name string, args map[string]any) Result {
	return defaultBelt.Execute(ctx, name, args)
}

// ExecuteSync invokes a tool on the process-wide toolbelt, blocking.
func ExecuteSync(name string, args map[string]any) Result {
	return defaultBelt.ExecuteSync(name, args)
}

// ListTools enumerates the process-wide toolbelt.
func ListTools(groups ...string) []ToolInfo { return defaultBelt.ListTools(groups...) }
