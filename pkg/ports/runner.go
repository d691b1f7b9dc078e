package ports

import "context"

// Runner executes one stored graph version against one trigger payload. The
// queue consumer invokes it exactly once per delivered job; a redelivery
// re-runs the whole execution from scratch.
type Runner interface {
	Run(ctx context.Context, executionID, graphVersionID string, triggerPayload any) error
}
