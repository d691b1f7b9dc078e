package queue

import (
	"context"
	"fmt"

	backend "github.com/redis/go-redis/v9"
)

// Producer enqueues execution jobs. It lives here for the enqueuing
// collaborators and for tests; the worker itself only consumes.
type Producer struct {
	client *backend.Client
	queue  string
}

// NewProducer creates a producer on a queue (DefaultName when empty).
func NewProducer(client *backend.Client, queueName string) *Producer {
	if queueName == "" {
		queueName = DefaultName
	}
	return &Producer{client: client, queue: queueName}
}

// Enqueue pushes one job and returns its delivery id. The Execution row must
// already exist in status QUEUED.
func (p *Producer) Enqueue(ctx context.Context, job Job) (string, error) {
	id := newEnvelopeID()
	data, err := encodeEnvelope(id, job)
	if err != nil {
		return "", fmt.Errorf("encode job: %w", err)
	}
	if err := p.client.LPush(ctx, p.queue, data).Err(); err != nil {
		return "", fmt.Errorf("enqueue job: %w", err)
	}
	return id, nil
}
