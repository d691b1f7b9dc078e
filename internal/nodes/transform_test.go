package nodes_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weftflow/weft/internal/eval"
	"github.com/weftflow/weft/internal/nodes"
	"github.com/weftflow/weft/pkg/domain"
	"github.com/weftflow/weft/pkg/registry"
)

func builtins(t *testing.T) *registry.Registry {
	t.Helper()
	reg := registry.New()
	nodes.RegisterBuiltins(reg, eval.New(), nil)
	return reg
}

func run(t *testing.T, reg *registry.Registry, nodeType string, input any, ec *fakeContext) domain.NodeOutcome {
	t.Helper()
	impl, err := reg.Get(nodeType)
	require.NoError(t, err)
	out, err := impl.Execute(context.Background(), input, ec)
	require.NoError(t, err)
	return out
}

func TestTransform_Math(t *testing.T) {
	reg := builtins(t)
	ec := &fakeContext{config: map[string]any{
		"transformations": []any{
			map[string]any{"type": "math", "field": "n", "operation": "multiply", "operand": 2},
			map[string]any{"type": "math", "field": "n", "operation": "add", "operand": 1},
		},
	}}

	out := run(t, reg, nodes.TypeTransform, map[string]any{"n": float64(3)}, ec)
	assert.Equal(t, map[string]any{"n": float64(7)}, out.Data)
	assert.False(t, out.Branched)
}

func TestTransform_DivideByZeroYieldsZero(t *testing.T) {
	reg := builtins(t)
	ec := &fakeContext{config: map[string]any{
		"transformations": []any{
			map[string]any{"type": "math", "field": "n", "operation": "divide", "operand": 0},
		},
	}}

	out := run(t, reg, nodes.TypeTransform, map[string]any{"n": float64(9)}, ec)
	assert.Equal(t, map[string]any{"n": float64(0)}, out.Data)
}

func TestTransform_SetWithTemplate(t *testing.T) {
	reg := builtins(t)
	ec := &fakeContext{config: map[string]any{
		"transformations": []any{
			map[string]any{"type": "set", "field": "greeting", "value": "hello {{ $json.name }}"},
		},
	}}

	out := run(t, reg, nodes.TypeTransform, map[string]any{"name": "ada"}, ec)
	assert.Equal(t, map[string]any{"name": "ada", "greeting": "hello ada"}, out.Data)
}

func TestTransform_RenameAndRemove(t *testing.T) {
	reg := builtins(t)
	ec := &fakeContext{config: map[string]any{
		"transformations": []any{
			map[string]any{"type": "rename", "field": "old", "newField": "new"},
			map[string]any{"type": "remove", "field": "junk"},
		},
	}}

	out := run(t, reg, nodes.TypeTransform, map[string]any{"old": "v", "junk": true}, ec)
	assert.Equal(t, map[string]any{"new": "v"}, out.Data)
}

func TestTransform_Format(t *testing.T) {
	reg := builtins(t)
	ec := &fakeContext{config: map[string]any{
		"transformations": []any{
			map[string]any{"type": "format", "field": "name", "formatType": "uppercase"},
			map[string]any{"type": "format", "field": "when", "formatType": "date"},
		},
	}}

	out := run(t, reg, nodes.TypeTransform, map[string]any{
		"name": "ada",
		"when": "2026-08-30T12:00:00Z",
	}, ec)
	assert.Equal(t, map[string]any{"name": "ADA", "when": "2026-08-30"}, out.Data)
}

func TestTransform_InputUntouched(t *testing.T) {
	reg := builtins(t)
	ec := &fakeContext{config: map[string]any{
		"transformations": []any{
			map[string]any{"type": "set", "field": "x", "value": "1"},
		},
	}}

	input := map[string]any{"n": float64(1)}
	run(t, reg, nodes.TypeTransform, input, ec)
	assert.Equal(t, map[string]any{"n": float64(1)}, input)
}
