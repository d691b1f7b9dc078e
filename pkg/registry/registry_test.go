package registry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weftflow/weft/pkg/domain"
	"github.com/weftflow/weft/pkg/registry"
)

func passthrough(ctx context.Context, input any, ec registry.ExecutionContext) (domain.NodeOutcome, error) {
	return domain.Value(input), nil
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := registry.New()
	require.NoError(t, r.Register("noop", registry.Func(passthrough)))

	impl, err := r.Get("noop")
	require.NoError(t, err)

	out, err := impl.Execute(context.Background(), "x", nil)
	require.NoError(t, err)
	assert.Equal(t, "x", out.Data)
	assert.False(t, out.Branched)
}

func TestRegistry_DuplicateRejected(t *testing.T) {
	r := registry.New()
	require.NoError(t, r.Register("noop", registry.Func(passthrough)))
	assert.Error(t, r.Register("noop", registry.Func(passthrough)))
}

func TestRegistry_UnknownType(t *testing.T) {
	r := registry.New()

	_, err := r.Get("nope")
	assert.True(t, errors.Is(err, domain.ErrNoImplementation))
}

func TestRegistry_Types(t *testing.T) {
	r := registry.New()
	r.MustRegister("b", registry.Func(passthrough))
	r.MustRegister("a", registry.Func(passthrough))

	assert.Equal(t, []string{"a", "b"}, r.Types())
}
