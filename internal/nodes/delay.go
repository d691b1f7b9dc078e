package nodes

import (
	"context"
	"time"

	"github.com/weftflow/weft/pkg/domain"
	"github.com/weftflow/weft/pkg/registry"
)

type delayConfig struct {
	Delay float64 `mapstructure:"delay"`
	Unit  string  `mapstructure:"unit"` // milliseconds | seconds | minutes | hours
}

// delayNode sleeps for the configured duration, honoring cancellation, then
// passes its input through with timing metadata.
func delayNode(ctx context.Context, input any, ec registry.ExecutionContext) (domain.NodeOutcome, error) {
	var cfg delayConfig
	if err := decodeConfig(ec, &cfg); err != nil {
		return domain.NodeOutcome{}, err
	}
	if cfg.Delay <= 0 {
		cfg.Delay = 1000
	}

	unit := time.Millisecond
	switch cfg.Unit {
	case "seconds":
		unit = time.Second
	case "minutes":
		unit = time.Minute
	case "hours":
		unit = time.Hour
	}
	d := time.Duration(cfg.Delay * float64(unit))

	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return domain.NodeOutcome{}, ctx.Err()
	case <-timer.C:
	}

	out := copyMap(input)
	out["delayedAt"] = time.Now().UTC().Format(time.RFC3339)
	out["delayDurationMs"] = d.Milliseconds()
	return domain.Value(out), nil
}
