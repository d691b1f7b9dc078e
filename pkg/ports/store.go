package ports

import (
	"context"
	"time"

	"github.com/weftflow/weft/pkg/domain"
)

// Store is the persistence contract the orchestrator consumes. Executions own
// disjoint rows, so implementations need no cross-execution locking; results
// and logs are append-only.
type Store interface {
	// GetGraphSnapshot retrieves a pinned graph version.
	// Returns domain.ErrSnapshotNotFound if the version does not exist.
	GetGraphSnapshot(ctx context.Context, versionID string) (*domain.GraphSnapshot, error)

	// ListNodeInstances returns the stored instance records for a graph.
	ListNodeInstances(ctx context.Context, graphID string) ([]domain.NodeInstance, error)

	// GetExecution retrieves an execution row.
	// Returns domain.ErrExecutionNotFound if the id does not exist.
	GetExecution(ctx context.Context, executionID string) (*domain.Execution, error)

	// UpdateExecutionStatus drives the execution state machine. at stamps
	// StartedAt when transitioning to RUNNING and FinishedAt on a terminal
	// status.
	UpdateExecutionStatus(ctx context.Context, executionID string, status domain.ExecutionStatus, at time.Time) error

	// CreateExecutionResult appends one node result.
	CreateExecutionResult(ctx context.Context, result *domain.ExecutionResult) error

	// AppendExecutionLog appends one trace entry.
	AppendExecutionLog(ctx context.Context, entry *domain.ExecutionLog) error
}

// SeedStore extends Store with the write-side used by the enqueuing
// collaborator, the local runner and tests.
type SeedStore interface {
	Store

	PutGraphSnapshot(ctx context.Context, snapshot *domain.GraphSnapshot) error
	PutNodeInstance(ctx context.Context, instance *domain.NodeInstance) error
	CreateExecution(ctx context.Context, execution *domain.Execution) error

	ListExecutionResults(ctx context.Context, executionID string) ([]domain.ExecutionResult, error)
	ListExecutionLogs(ctx context.Context, executionID string) ([]domain.ExecutionLog, error)
}
