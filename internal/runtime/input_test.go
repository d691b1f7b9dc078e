package runtime_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weftflow/weft/internal/runtime"
	"github.com/weftflow/weft/pkg/domain"
)

func TestResolveInput_NoPredecessorsFallsBackToTrigger(t *testing.T) {
	packet := domain.NewDataPacket(map[string]any{"n": float64(3)})

	input, err := runtime.ResolveInput("a", nil, packet)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"n": float64(3)}, input)
}

func TestResolveInput_SinglePredecessorPassthrough(t *testing.T) {
	packet := domain.NewDataPacket(nil)
	packet["a"] = domain.NodeData{Output: "raw string output"}

	input, err := runtime.ResolveInput("b", []domain.Connection{edge("a", "b")}, packet)
	require.NoError(t, err)
	assert.Equal(t, "raw string output", input)
}

func TestResolveInput_FanInLaterSourceWins(t *testing.T) {
	packet := domain.NewDataPacket(nil)
	packet["a"] = domain.NodeData{Output: map[string]any{"x": float64(1), "only_a": true}}
	packet["b"] = domain.NodeData{Output: map[string]any{"x": float64(2)}}

	connections := []domain.Connection{edge("a", "c"), edge("b", "c")}
	input, err := runtime.ResolveInput("c", connections, packet)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"x": float64(2), "only_a": true}, input)
}

func TestResolveInput_FanInSkipsMissingSources(t *testing.T) {
	packet := domain.NewDataPacket(nil)
	packet["a"] = domain.NodeData{Output: map[string]any{"x": float64(1)}}

	// "b" never ran; its entry is absent.
	connections := []domain.Connection{edge("a", "c"), edge("b", "c")}
	input, err := runtime.ResolveInput("c", connections, packet)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"x": float64(1)}, input)
}

func TestResolveInput_MissingSingleSourceIsSkip(t *testing.T) {
	packet := domain.NewDataPacket(nil)

	_, err := runtime.ResolveInput("b", []domain.Connection{edge("a", "b")}, packet)
	assert.True(t, errors.Is(err, domain.ErrNotRunnable))
}

func TestResolveInput_HandleMismatchIsSkip(t *testing.T) {
	packet := domain.NewDataPacket(nil)
	packet["gate"] = domain.NodeData{Output: map[string]any{"n": float64(6)}, Handle: "true"}

	taken := domain.Connection{ID: "c1", SourceNodeID: "gate", TargetNodeID: "yes", SourceHandle: "true"}
	notTaken := domain.Connection{ID: "c2", SourceNodeID: "gate", TargetNodeID: "no", SourceHandle: "false"}
	connections := []domain.Connection{taken, notTaken}

	input, err := runtime.ResolveInput("yes", connections, packet)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"n": float64(6)}, input)

	_, err = runtime.ResolveInput("no", connections, packet)
	assert.True(t, errors.Is(err, domain.ErrNotRunnable))
}

func TestResolveInput_UntaggedEdgeFollowsAnyHandle(t *testing.T) {
	packet := domain.NewDataPacket(nil)
	packet["gate"] = domain.NodeData{Output: map[string]any{"n": float64(6)}, Handle: "true"}

	input, err := runtime.ResolveInput("after", []domain.Connection{edge("gate", "after")}, packet)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"n": float64(6)}, input)
}

func TestResolveInput_Idempotent(t *testing.T) {
	packet := domain.NewDataPacket(map[string]any{"t": true})
	packet["a"] = domain.NodeData{Output: map[string]any{"x": float64(1)}}
	packet["b"] = domain.NodeData{Output: map[string]any{"y": float64(2)}}
	connections := []domain.Connection{edge("a", "c"), edge("b", "c")}

	first, err := runtime.ResolveInput("c", connections, packet)
	require.NoError(t, err)
	second, err := runtime.ResolveInput("c", connections, packet)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// The packet itself is untouched.
	assert.Len(t, packet, 3)
	assert.Equal(t, map[string]any{"x": float64(1)}, packet["a"].Output)
}
