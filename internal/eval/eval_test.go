package eval_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weftflow/weft/internal/eval"
)

func TestEvaluate_Comparisons(t *testing.T) {
	e := eval.New()

	tests := []struct {
		expr string
		env  map[string]any
		want bool
	}{
		{"n > 5", map[string]any{"n": float64(6)}, true},
		{"n > 5", map[string]any{"n": float64(3)}, false},
		{`status == "ok"`, map[string]any{"status": "ok"}, true},
		{`status == "ok"`, map[string]any{"status": "bad"}, false},
		{"a && b", map[string]any{"a": true, "b": false}, false},
		{"n > 1 || m > 1", map[string]any{"n": float64(0), "m": float64(2)}, true},
	}

	for _, tt := range tests {
		got, err := e.Evaluate(tt.expr, tt.env)
		require.NoError(t, err, tt.expr)
		assert.Equal(t, tt.want, got, tt.expr)
	}
}

func TestEvaluate_TruthyCoercion(t *testing.T) {
	e := eval.New()

	got, err := e.Evaluate("name", map[string]any{"name": "ada"})
	require.NoError(t, err)
	assert.True(t, got)

	got, err = e.Evaluate("name", map[string]any{"name": ""})
	require.NoError(t, err)
	assert.False(t, got)

	got, err = e.Evaluate("missing", map[string]any{})
	require.NoError(t, err)
	assert.False(t, got)
}

func TestEvaluate_BadExpression(t *testing.T) {
	e := eval.New()

	_, err := e.Evaluate("n >", map[string]any{"n": 1})
	assert.Error(t, err)
}

func TestEvaluate_CachedProgramReused(t *testing.T) {
	e := eval.New()

	for i := 0; i < 3; i++ {
		got, err := e.Evaluate("n == 1", map[string]any{"n": 1})
		require.NoError(t, err)
		assert.True(t, got)
	}
}
