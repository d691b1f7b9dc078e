package queue

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	backend "github.com/redis/go-redis/v9"
	"github.com/weftflow/weft/internal/logging"
	"github.com/weftflow/weft/internal/metrics"
	"github.com/weftflow/weft/pkg/ports"
)

// Consumer drains the job queue and dispatches each job to the runner.
// Concurrency bounds how many jobs one process works at once; the baseline
// is one, so executions never overlap within a process. Failed runs are
// logged, not retried here: retry policy belongs to the queue collaborator.
type Consumer struct {
	client      *backend.Client
	queue       string
	runner      ports.Runner
	concurrency int
	logger      *slog.Logger
	metrics     *metrics.Metrics
}

// ConsumerOption configures a Consumer.
type ConsumerOption func(*Consumer)

// WithQueueName overrides DefaultName.
func WithQueueName(name string) ConsumerOption {
	return func(c *Consumer) { c.queue = name }
}

// WithConcurrency sets how many jobs may be in flight at once.
func WithConcurrency(n int) ConsumerOption {
	return func(c *Consumer) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

// WithLogger sets the process logger.
func WithLogger(logger *slog.Logger) ConsumerOption {
	return func(c *Consumer) { c.logger = logger }
}

// WithMetrics sets the prometheus instruments.
func WithMetrics(m *metrics.Metrics) ConsumerOption {
	return func(c *Consumer) { c.metrics = m }
}

// NewConsumer wires a consumer to a redis client and a runner.
func NewConsumer(client *backend.Client, runner ports.Runner, opts ...ConsumerOption) *Consumer {
	c := &Consumer{
		client:      client,
		queue:       DefaultName,
		runner:      runner,
		concurrency: 1,
		logger:      logging.NewNop(),
		metrics:     metrics.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start blocks draining the queue until ctx is canceled, then waits for
// in-flight jobs to finish.
func (c *Consumer) Start(ctx context.Context) error {
	c.logger.Info("worker started", "queue", c.queue, "concurrency", c.concurrency)

	slots := make(chan struct{}, c.concurrency)
	var wg sync.WaitGroup

	for ctx.Err() == nil {
		// Take a slot before popping so a delivered job always has capacity.
		select {
		case slots <- struct{}{}:
		case <-ctx.Done():
			continue
		}

		res, err := c.client.BRPop(ctx, 2*time.Second, c.queue).Result()
		if err != nil {
			<-slots
			if errors.Is(err, backend.Nil) {
				continue
			}
			if ctx.Err() != nil {
				break
			}
			c.logger.Error("queue poll failed", "error", err)
			time.Sleep(time.Second)
			continue
		}
		// BRPop returns [queue, payload].
		payload := res[1]

		// Detach the job from the poll context so shutdown lets delivered
		// jobs run to completion instead of cancelling them mid-flight.
		jobCtx := context.WithoutCancel(ctx)

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() { <-slots }()
			c.handle(jobCtx, payload)
		}()
	}

	wg.Wait()
	c.logger.Info("worker stopped")
	return nil
}

func (c *Consumer) handle(ctx context.Context, payload string) {
	var env envelope
	if err := json.Unmarshal([]byte(payload), &env); err != nil {
		c.logger.Error("dropping malformed job", "error", err)
		return
	}
	if env.ExecutionID == "" || env.GraphVersionID == "" {
		c.logger.Warn("skipping job with missing ids", "job_id", env.ID)
		return
	}

	logger := c.logger.With("job_id", env.ID, "execution_id", env.ExecutionID)
	logger.Info("job received")

	c.metrics.JobsInFlight.Inc()
	defer c.metrics.JobsInFlight.Dec()

	if err := c.runner.Run(ctx, env.ExecutionID, env.GraphVersionID, env.TriggerPayload); err != nil {
		logger.Error("job failed", "error", err)
		return
	}
	logger.Info("job completed")
}
