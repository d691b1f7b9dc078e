package nodes_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/weftflow/weft/internal/nodes"
	"github.com/weftflow/weft/pkg/domain"
)

func TestManualTrigger_Passthrough(t *testing.T) {
	reg := builtins(t)
	payload := map[string]any{"n": float64(3)}

	out := run(t, reg, nodes.TypeManual, payload, &fakeContext{})
	assert.Equal(t, payload, out.Data)
}

func TestWebhookTrigger_PrefersRecordedPayload(t *testing.T) {
	reg := builtins(t)
	payload := map[string]any{"event": "push"}
	ec := &fakeContext{packet: domain.NewDataPacket(payload)}

	out := run(t, reg, nodes.TypeWebhook, nil, ec)
	assert.Equal(t, payload, out.Data)
}

func TestScheduleTrigger_StampsFireTime(t *testing.T) {
	reg := builtins(t)

	out := run(t, reg, nodes.TypeSchedule, map[string]any{"job": "nightly"}, &fakeContext{})
	result := out.Data.(map[string]any)
	assert.Equal(t, "nightly", result["job"])

	fired, ok := result["firedAt"].(string)
	assert.True(t, ok)
	_, err := time.Parse(time.RFC3339, fired)
	assert.NoError(t, err)
}

func TestLogNode_Passthrough(t *testing.T) {
	reg := builtins(t)
	ec := &fakeContext{config: map[string]any{"message": "value is {{ $json.n }}"}}

	input := map[string]any{"n": float64(5)}
	out := run(t, reg, nodes.TypeLog, input, ec)
	assert.Equal(t, input, out.Data)
	assert.False(t, out.Branched)
}

func TestDelay_SleepsAndAnnotates(t *testing.T) {
	reg := builtins(t)
	ec := &fakeContext{config: map[string]any{"delay": 10, "unit": "milliseconds"}}

	start := time.Now()
	out := run(t, reg, nodes.TypeDelay, map[string]any{"x": float64(1)}, ec)
	assert.GreaterOrEqual(t, time.Since(start), 10*time.Millisecond)

	result := out.Data.(map[string]any)
	assert.Equal(t, float64(1), result["x"])
	assert.Equal(t, int64(10), result["delayDurationMs"])
	assert.NotEmpty(t, result["delayedAt"])
}

func TestDelay_CancelledContext(t *testing.T) {
	reg := builtins(t)
	impl, err := reg.Get(nodes.TypeDelay)
	assert.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = impl.Execute(ctx, nil, &fakeContext{config: map[string]any{"delay": 60, "unit": "seconds"}})
	assert.Error(t, err)
}
