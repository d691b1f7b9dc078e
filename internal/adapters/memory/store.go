// Package memory implements ports.SeedStore and ports.CredentialSource in
// memory, for tests and the local one-shot runner.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/weftflow/weft/pkg/domain"
)

// Store keeps snapshots, executions, results and logs in maps.
// Safe for concurrent use.
type Store struct {
	mu          sync.RWMutex
	snapshots   map[string]*domain.GraphSnapshot
	instances   map[string][]domain.NodeInstance // keyed by graph id
	executions  map[string]*domain.Execution
	results     map[string][]domain.ExecutionResult // keyed by execution id
	logs        map[string][]domain.ExecutionLog
	credentials map[string]*domain.Credential
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		snapshots:   make(map[string]*domain.GraphSnapshot),
		instances:   make(map[string][]domain.NodeInstance),
		executions:  make(map[string]*domain.Execution),
		results:     make(map[string][]domain.ExecutionResult),
		logs:        make(map[string][]domain.ExecutionLog),
		credentials: make(map[string]*domain.Credential),
	}
}

// PutGraphSnapshot stores a snapshot copy under its id.
func (s *Store) PutGraphSnapshot(ctx context.Context, snapshot *domain.GraphSnapshot) error {
	copied := *snapshot
	copied.Nodes = append([]domain.Node(nil), snapshot.Nodes...)
	copied.Connections = append([]domain.Connection(nil), snapshot.Connections...)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots[snapshot.ID] = &copied
	return nil
}

// GetGraphSnapshot retrieves a snapshot copy by version id.
func (s *Store) GetGraphSnapshot(ctx context.Context, versionID string) (*domain.GraphSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot, ok := s.snapshots[versionID]
	if !ok {
		return nil, domain.ErrSnapshotNotFound
	}
	copied := *snapshot
	copied.Nodes = append([]domain.Node(nil), snapshot.Nodes...)
	copied.Connections = append([]domain.Connection(nil), snapshot.Connections...)
	return &copied, nil
}

// PutNodeInstance records one node instance for a graph.
func (s *Store) PutNodeInstance(ctx context.Context, instance *domain.NodeInstance) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.instances[instance.GraphID] = append(s.instances[instance.GraphID], *instance)
	return nil
}

// ListNodeInstances returns the instance records for a graph.
func (s *Store) ListNodeInstances(ctx context.Context, graphID string) ([]domain.NodeInstance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.NodeInstance(nil), s.instances[graphID]...), nil
}

// CreateExecution stores a new execution row.
func (s *Store) CreateExecution(ctx context.Context, execution *domain.Execution) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *execution
	s.executions[execution.ID] = &copied
	return nil
}

// GetExecution retrieves an execution copy.
func (s *Store) GetExecution(ctx context.Context, executionID string) (*domain.Execution, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	execution, ok := s.executions[executionID]
	if !ok {
		return nil, domain.ErrExecutionNotFound
	}
	copied := *execution
	return &copied, nil
}

// UpdateExecutionStatus drives the state machine, stamping StartedAt on
// RUNNING and FinishedAt on terminal statuses. Terminal states are immutable.
func (s *Store) UpdateExecutionStatus(ctx context.Context, executionID string, status domain.ExecutionStatus, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	execution, ok := s.executions[executionID]
	if !ok {
		return domain.ErrExecutionNotFound
	}
	if execution.Status.Terminal() {
		return nil
	}
	execution.Status = status
	switch {
	case status == domain.StatusRunning:
		execution.StartedAt = &at
	case status.Terminal():
		execution.FinishedAt = &at
	}
	return nil
}

// CreateExecutionResult appends one node result.
func (s *Store) CreateExecutionResult(ctx context.Context, result *domain.ExecutionResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[result.ExecutionID] = append(s.results[result.ExecutionID], *result)
	return nil
}

// ListExecutionResults returns the results recorded for an execution.
func (s *Store) ListExecutionResults(ctx context.Context, executionID string) ([]domain.ExecutionResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.ExecutionResult(nil), s.results[executionID]...), nil
}

// AppendExecutionLog appends one trace entry.
func (s *Store) AppendExecutionLog(ctx context.Context, entry *domain.ExecutionLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logs[entry.ExecutionID] = append(s.logs[entry.ExecutionID], *entry)
	return nil
}

// ListExecutionLogs returns the trace recorded for an execution.
func (s *Store) ListExecutionLogs(ctx context.Context, executionID string) ([]domain.ExecutionLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.ExecutionLog(nil), s.logs[executionID]...), nil
}

// PutCredential stores a credential for tests and local runs.
func (s *Store) PutCredential(ctx context.Context, cred *domain.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *cred
	s.credentials[cred.ID] = &copied
	return nil
}

// GetCredential implements ports.CredentialSource. Missing ids yield
// (nil, nil), matching the vault contract.
func (s *Store) GetCredential(ctx context.Context, id string) (*domain.Credential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cred, ok := s.credentials[id]
	if !ok {
		return nil, nil
	}
	copied := *cred
	return &copied, nil
}
