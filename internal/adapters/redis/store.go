// Package redis implements ports.SeedStore and ports.CredentialSource on
// Redis. Executions own disjoint keys, so plain JSON values and append-only
// lists are enough; no cross-execution locking is needed.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"
	"github.com/weftflow/weft/pkg/domain"
)

// Store persists engine state in Redis.
type Store struct {
	client *backend.Client
	prefix string
}

// Option configures a Store.
type Option func(*Store)

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(s *Store) { s.prefix = prefix }
}

// New creates a Redis store with its own client.
func New(address, password string, db int, opts ...Option) *Store {
	client := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(client, opts...)
}

// NewFromClient creates a Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "weft:",
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

func (s *Store) snapshotKey(versionID string) string { return s.prefix + "snapshot:" + versionID }
func (s *Store) instancesKey(graphID string) string  { return s.prefix + "instances:" + graphID }
func (s *Store) executionKey(id string) string       { return s.prefix + "execution:" + id }
func (s *Store) resultsKey(id string) string         { return s.prefix + "execution:" + id + ":results" }
func (s *Store) logsKey(id string) string            { return s.prefix + "execution:" + id + ":logs" }
func (s *Store) credentialKey(id string) string      { return s.prefix + "credential:" + id }

// PutGraphSnapshot stores a snapshot under its version id.
func (s *Store) PutGraphSnapshot(ctx context.Context, snapshot *domain.GraphSnapshot) error {
	return s.setJSON(ctx, s.snapshotKey(snapshot.ID), snapshot)
}

// GetGraphSnapshot retrieves a snapshot by version id.
func (s *Store) GetGraphSnapshot(ctx context.Context, versionID string) (*domain.GraphSnapshot, error) {
	var snapshot domain.GraphSnapshot
	if err := s.getJSON(ctx, s.snapshotKey(versionID), &snapshot, domain.ErrSnapshotNotFound); err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// PutNodeInstance appends one instance record to the graph's list.
func (s *Store) PutNodeInstance(ctx context.Context, instance *domain.NodeInstance) error {
	data, err := json.Marshal(instance)
	if err != nil {
		return fmt.Errorf("marshal node instance: %w", err)
	}
	if err := s.client.RPush(ctx, s.instancesKey(instance.GraphID), data).Err(); err != nil {
		return fmt.Errorf("push node instance: %w", err)
	}
	return nil
}

// ListNodeInstances returns the instance records for a graph.
func (s *Store) ListNodeInstances(ctx context.Context, graphID string) ([]domain.NodeInstance, error) {
	raw, err := s.client.LRange(ctx, s.instancesKey(graphID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list node instances: %w", err)
	}
	out := make([]domain.NodeInstance, 0, len(raw))
	for _, item := range raw {
		var ni domain.NodeInstance
		if err := json.Unmarshal([]byte(item), &ni); err != nil {
			return nil, fmt.Errorf("unmarshal node instance: %w", err)
		}
		out = append(out, ni)
	}
	return out, nil
}

// CreateExecution stores a new execution row.
func (s *Store) CreateExecution(ctx context.Context, execution *domain.Execution) error {
	return s.setJSON(ctx, s.executionKey(execution.ID), execution)
}

// GetExecution retrieves an execution row.
func (s *Store) GetExecution(ctx context.Context, executionID string) (*domain.Execution, error) {
	var execution domain.Execution
	if err := s.getJSON(ctx, s.executionKey(executionID), &execution, domain.ErrExecutionNotFound); err != nil {
		return nil, err
	}
	return &execution, nil
}

// UpdateExecutionStatus transitions an execution. The row is owned by the one
// in-flight run, so read-modify-write is safe. Terminal states stay as-is.
func (s *Store) UpdateExecutionStatus(ctx context.Context, executionID string, status domain.ExecutionStatus, at time.Time) error {
	execution, err := s.GetExecution(ctx, executionID)
	if err != nil {
		return err
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
	return s.setJSON(ctx, s.executionKey(executionID), execution)
}

// CreateExecutionResult appends one node result.
func (s *Store) CreateExecutionResult(ctx context.Context, result *domain.ExecutionResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal execution result: %w", err)
	}
	if err := s.client.RPush(ctx, s.resultsKey(result.ExecutionID), data).Err(); err != nil {
		return fmt.Errorf("push execution result: %w", err)
	}
	return nil
}

// ListExecutionResults returns the results recorded for an execution.
func (s *Store) ListExecutionResults(ctx context.Context, executionID string) ([]domain.ExecutionResult, error) {
	raw, err := s.client.LRange(ctx, s.resultsKey(executionID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list execution results: %w", err)
	}
	out := make([]domain.ExecutionResult, 0, len(raw))
	for _, item := range raw {
		var result domain.ExecutionResult
		if err := json.Unmarshal([]byte(item), &result); err != nil {
			return nil, fmt.Errorf("unmarshal execution result: %w", err)
		}
		out = append(out, result)
	}
	return out, nil
}

// AppendExecutionLog appends one trace entry.
func (s *Store) AppendExecutionLog(ctx context.Context, entry *domain.ExecutionLog) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal execution log: %w", err)
	}
	if err := s.client.RPush(ctx, s.logsKey(entry.ExecutionID), data).Err(); err != nil {
		return fmt.Errorf("push execution log: %w", err)
	}
	return nil
}

// ListExecutionLogs returns the trace recorded for an execution.
func (s *Store) ListExecutionLogs(ctx context.Context, executionID string) ([]domain.ExecutionLog, error) {
	raw, err := s.client.LRange(ctx, s.logsKey(executionID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list execution logs: %w", err)
	}
	out := make([]domain.ExecutionLog, 0, len(raw))
	for _, item := range raw {
		var entry domain.ExecutionLog
		if err := json.Unmarshal([]byte(item), &entry); err != nil {
			return nil, fmt.Errorf("unmarshal execution log: %w", err)
		}
		out = append(out, entry)
	}
	return out, nil
}

// PutCredential stores a decrypted credential view.
func (s *Store) PutCredential(ctx context.Context, cred *domain.Credential) error {
	return s.setJSON(ctx, s.credentialKey(cred.ID), cred)
}

// GetCredential implements ports.CredentialSource; missing ids yield
// (nil, nil).
func (s *Store) GetCredential(ctx context.Context, id string) (*domain.Credential, error) {
	val, err := s.client.Get(ctx, s.credentialKey(id)).Result()
	if err != nil {
		if err == backend.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("get credential: %w", err)
	}
	var cred domain.Credential
	if err := json.Unmarshal([]byte(val), &cred); err != nil {
		return nil, fmt.Errorf("unmarshal credential: %w", err)
	}
	return &cred, nil
}

// Close closes the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) setJSON(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err := s.client.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

func (s *Store) getJSON(ctx context.Context, key string, v any, missing error) error {
	val, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if err == backend.Nil {
			return missing
		}
		return fmt.Errorf("get %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(val), v); err != nil {
		return fmt.Errorf("unmarshal %s: %w", key, err)
	}
	return nil
}
