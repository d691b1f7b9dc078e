// Package queue is the asynchronous entry point of the engine: a durable
// redis-list job queue with an at-least-once consumer that invokes the
// orchestrator exactly once per delivered job.
//
// The engine does not deduplicate; the enqueuing collaborator guarantees
// at most one enqueue per logical execution. Redelivery re-runs the whole
// execution from scratch.
package queue

import (
	"encoding/json"

	"github.com/google/uuid"
)

// DefaultName is the queue the web collaborator and the worker agree on.
const DefaultName = "workflow-execution"

// Job is the queue message contract.
type Job struct {
	ExecutionID    string `json:"executionId"`
	GraphVersionID string `json:"graphVersionId"`
	TriggerPayload any    `json:"triggerPayload"`
}

// envelope wraps a Job with a delivery id for tracing.
type envelope struct {
	ID string `json:"id"`
	Job
}

func encodeEnvelope(id string, job Job) ([]byte, error) {
	return json.Marshal(envelope{ID: id, Job: job})
}

func newEnvelopeID() string {
	return uuid.NewString()
}
