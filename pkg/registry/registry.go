// Package registry maps node-type strings to their executable
// implementations and defines the contract every implementation honors.
package registry

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/weftflow/weft/pkg/domain"
)

// ExecutionContext is what a node implementation may see of the run it is
// part of. The packet it exposes is a copy; implementations cannot perturb
// the orchestrator's routing state.
type ExecutionContext interface {
	// GraphID, ExecutionID and NodeID identify the invocation.
	GraphID() string
	ExecutionID() string
	NodeID() string

	// NodeConfig returns the node's editor-authored settings.
	NodeConfig() map[string]any

	// Credential resolves an opaque credential reference.
	// Returns domain.ErrCredentialNotFound for unknown ids.
	Credential(ctx context.Context, id string) (*domain.Credential, error)

	// AuthHeaders derives ready-to-use request headers for a credential.
	AuthHeaders(cred *domain.Credential) map[string]string

	// DataPacket returns a copy of every upstream output recorded so far.
	DataPacket() domain.DataPacket

	// TriggerData returns the trigger payload.
	TriggerData() any

	// Logger is scoped to this execution and node.
	Logger() *slog.Logger
}

// Implementation is one pluggable node variant. Returning an error is the
// sole failure signal the orchestrator understands, and it fails the whole
// execution.
type Implementation interface {
	Execute(ctx context.Context, input any, ec ExecutionContext) (domain.NodeOutcome, error)
}

// Func adapts a plain function to Implementation.
type Func func(ctx context.Context, input any, ec ExecutionContext) (domain.NodeOutcome, error)

func (f Func) Execute(ctx context.Context, input any, ec ExecutionContext) (domain.NodeOutcome, error) {
	return f(ctx, input, ec)
}

// Registry holds the known node types. Unknown tags are rejected at lookup
// time; there is intentionally no silent fallback.
type Registry struct {
	mu    sync.RWMutex
	impls map[string]Implementation
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{impls: make(map[string]Implementation)}
}

// Register adds an implementation under a type key. Registering the same key
// twice is a programming error.
func (r *Registry) Register(nodeType string, impl Implementation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.impls[nodeType]; exists {
		return fmt.Errorf("node type %q already registered", nodeType)
	}
	r.impls[nodeType] = impl
	return nil
}

// MustRegister is Register that panics, for wiring at startup.
func (r *Registry) MustRegister(nodeType string, impl Implementation) {
	if err := r.Register(nodeType, impl); err != nil {
		panic(err)
	}
}

// Get looks up the implementation for a node type.
func (r *Registry) Get(nodeType string) (Implementation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	impl, ok := r.impls[nodeType]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrNoImplementation, nodeType)
	}
	return impl, nil
}

// Types returns the registered type keys, sorted.
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]string, 0, len(r.impls))
	for t := range r.impls {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
