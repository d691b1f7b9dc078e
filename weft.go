package weft

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/weftflow/weft/internal/adapters/memory"
	"github.com/weftflow/weft/internal/credentials"
	"github.com/weftflow/weft/internal/eval"
	"github.com/weftflow/weft/internal/logging"
	"github.com/weftflow/weft/internal/nodes"
	"github.com/weftflow/weft/internal/runtime"
	"github.com/weftflow/weft/pkg/domain"
	"github.com/weftflow/weft/pkg/registry"
)

// Version is the library version, stamped at release time.
var Version = "0.1.0"

// Engine is the high-level entry point for embedding the execution runtime
// in-process. It wires an in-memory store, the builtin node set and the
// orchestrator behind a small API; the distributed path (redis store plus
// queue consumer) is assembled by the worker command instead.
type Engine struct {
	store    *memory.Store
	registry *registry.Registry
	runner   *runtime.Runner
	logger   *slog.Logger
	client   *http.Client
}

// Option configures the Engine.
type Option func(*Engine)

// WithLogger sets the structured logger. Defaults to a no-op logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithHTTPClient sets the client used by outbound nodes (http-request,
// telegram, email, ai). Useful for tests and custom transports.
func WithHTTPClient(client *http.Client) Option {
	return func(e *Engine) { e.client = client }
}

// New builds an Engine with the builtin node implementations registered.
func New(opts ...Option) *Engine {
	e := &Engine{
		store:    memory.NewStore(),
		registry: registry.New(),
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}

	nodes.RegisterBuiltins(e.registry, eval.New(), e.client)

	creds := credentials.NewResolver(e.store)
	e.runner = runtime.NewRunner(e.store, creds, e.registry, runtime.WithLogger(e.logger))
	return e
}

// Registry exposes the node registry so hosts can add custom node types
// before executing.
func (e *Engine) Registry() *registry.Registry {
	return e.registry
}

// Store exposes the backing in-memory store for seeding snapshots, node
// instances and credentials.
func (e *Engine) Store() *memory.Store {
	return e.store
}

// LoadSnapshot stores a graph snapshot and derives one node instance record
// per node, so the snapshot is immediately executable.
func (e *Engine) LoadSnapshot(ctx context.Context, snapshot *domain.GraphSnapshot) error {
	if snapshot.ID == "" {
		return fmt.Errorf("snapshot id is required")
	}
	if err := e.store.PutGraphSnapshot(ctx, snapshot); err != nil {
		return err
	}
	for _, node := range snapshot.Nodes {
		instance := &domain.NodeInstance{
			ID:      uuid.NewString(),
			GraphID: snapshot.GraphID,
			NodeID:  node.ID,
		}
		if err := e.store.PutNodeInstance(ctx, instance); err != nil {
			return err
		}
	}
	return nil
}

// AddCredential stores a credential for nodes to reference by id.
func (e *Engine) AddCredential(ctx context.Context, cred *domain.Credential) error {
	return e.store.PutCredential(ctx, cred)
}

// Execute creates an execution against a loaded snapshot, runs it to a
// terminal status and returns the final execution row with its per-node
// results. A failed execution is not an error at this level; inspect
// Execution.Status. The returned error covers setup problems only.
func (e *Engine) Execute(ctx context.Context, graphVersionID string, mode domain.ExecutionMode, triggerPayload any) (*domain.Execution, []domain.ExecutionResult, error) {
	snapshot, err := e.store.GetGraphSnapshot(ctx, graphVersionID)
	if err != nil {
		return nil, nil, err
	}

	execution := &domain.Execution{
		ID:             uuid.NewString(),
		GraphID:        snapshot.GraphID,
		GraphVersionID: graphVersionID,
		Mode:           mode,
		Status:         domain.StatusQueued,
	}
	if err := e.store.CreateExecution(ctx, execution); err != nil {
		return nil, nil, err
	}

	if err := e.runner.Run(ctx, execution.ID, graphVersionID, triggerPayload); err != nil {
		e.logger.Error("execution failed", "executionId", execution.ID, "err", err)
	}

	final, err := e.store.GetExecution(ctx, execution.ID)
	if err != nil {
		return nil, nil, err
	}
	results, err := e.store.ListExecutionResults(ctx, execution.ID)
	if err != nil {
		return nil, nil, err
	}
	return final, results, nil
}
