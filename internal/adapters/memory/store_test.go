package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weftflow/weft/internal/adapters/memory"
	"github.com/weftflow/weft/pkg/domain"
)

func TestStore_SnapshotIsolation(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	snapshot := &domain.GraphSnapshot{
		ID: "v1", GraphID: "g1", Version: 1,
		Nodes: []domain.Node{{ID: "a", Type: "manual", Role: domain.RoleTrigger}},
	}
	require.NoError(t, store.PutGraphSnapshot(ctx, snapshot))

	got, err := store.GetGraphSnapshot(ctx, "v1")
	require.NoError(t, err)

	// Mutating the returned copy must not leak into the store.
	got.Nodes[0].Type = "mutated"
	again, err := store.GetGraphSnapshot(ctx, "v1")
	require.NoError(t, err)
	assert.Equal(t, "manual", again.Nodes[0].Type)

	_, err = store.GetGraphSnapshot(ctx, "nope")
	assert.True(t, errors.Is(err, domain.ErrSnapshotNotFound))
}

func TestStore_StatusMachine(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	require.NoError(t, store.CreateExecution(ctx, &domain.Execution{
		ID: "e1", Status: domain.StatusQueued,
	}))

	now := time.Now()
	require.NoError(t, store.UpdateExecutionStatus(ctx, "e1", domain.StatusRunning, now))
	require.NoError(t, store.UpdateExecutionStatus(ctx, "e1", domain.StatusFailed, now))

	// FAILED is terminal; later transitions are ignored.
	require.NoError(t, store.UpdateExecutionStatus(ctx, "e1", domain.StatusCompleted, now))
	got, err := store.GetExecution(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusFailed, got.Status)
	assert.NotNil(t, got.StartedAt)
	assert.NotNil(t, got.FinishedAt)

	assert.Error(t, store.UpdateExecutionStatus(ctx, "nope", domain.StatusRunning, now))
}

func TestStore_AppendOnlyTrace(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, store.AppendExecutionLog(ctx, &domain.ExecutionLog{
			ExecutionID: "e1", Level: domain.LevelInfo, Message: "m",
		}))
	}
	logs, err := store.ListExecutionLogs(ctx, "e1")
	require.NoError(t, err)
	assert.Len(t, logs, 3)
}

func TestStore_CredentialSource(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	require.NoError(t, store.PutCredential(ctx, &domain.Credential{ID: "c1", Type: domain.CredentialCustom}))

	cred, err := store.GetCredential(ctx, "c1")
	require.NoError(t, err)
	assert.NotNil(t, cred)

	cred, err = store.GetCredential(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, cred)
}
