package runtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/weftflow/weft/internal/credentials"
	"github.com/weftflow/weft/internal/logging"
	"github.com/weftflow/weft/internal/metrics"
	"github.com/weftflow/weft/pkg/domain"
	"github.com/weftflow/weft/pkg/ports"
	"github.com/weftflow/weft/pkg/registry"
)

// Runner is the execution orchestrator. One Run call owns one execution end
// to end; node visitation is strictly sequential, so a node's packet entry
// is always visible before any descendant resolves its input.
type Runner struct {
	store    ports.Store
	creds    *credentials.Resolver
	registry *registry.Registry
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the process logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) { r.logger = logger }
}

// WithMetrics sets the prometheus instruments.
func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Runner) { r.metrics = m }
}

// NewRunner wires an orchestrator from its ports.
func NewRunner(store ports.Store, creds *credentials.Resolver, reg *registry.Registry, opts ...Option) *Runner {
	r := &Runner{
		store:    store,
		creds:    creds,
		registry: reg,
		logger:   logging.NewNop(),
		metrics:  metrics.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes one stored graph version against one trigger payload,
// driving the execution through QUEUED -> RUNNING -> {COMPLETED | FAILED}.
// Any node failure, unknown node type or graph cycle fails the whole run;
// there is no partial-success state.
func (r *Runner) Run(ctx context.Context, executionID, graphVersionID string, triggerPayload any) error {
	logger := r.logger.With("execution_id", executionID, "graph_version_id", graphVersionID)

	if err := r.store.UpdateExecutionStatus(ctx, executionID, domain.StatusRunning, time.Now()); err != nil {
		return fmt.Errorf("transition execution %s to RUNNING: %w", executionID, err)
	}
	r.trace(ctx, logger, executionID, "", domain.LevelInfo,
		fmt.Sprintf("Execution started with trigger data: %s", compactJSON(triggerPayload)))

	snapshot, err := r.store.GetGraphSnapshot(ctx, graphVersionID)
	if err != nil {
		return r.fail(ctx, logger, executionID, "", fmt.Errorf("load graph snapshot %s: %w", graphVersionID, err))
	}

	instances, err := r.nodeInstances(ctx, snapshot.GraphID)
	if err != nil {
		return r.fail(ctx, logger, executionID, "", err)
	}

	order, err := ResolveOrder(snapshot.Nodes, snapshot.Connections)
	if err != nil {
		return r.fail(ctx, logger, executionID, "", err)
	}
	r.trace(ctx, logger, executionID, "", domain.LevelInfo,
		fmt.Sprintf("Execution order determined: %s", strings.Join(order, " -> ")))

	packet := domain.NewDataPacket(triggerPayload)

	for _, nodeID := range order {
		node := snapshot.NodeByID(nodeID)
		if node == nil {
			return r.fail(ctx, logger, executionID, nodeID,
				fmt.Errorf("invariant: ordered node %s missing from snapshot", nodeID))
		}

		input, err := ResolveInput(nodeID, snapshot.Connections, packet)
		if errors.Is(err, domain.ErrNotRunnable) {
			r.trace(ctx, logger, executionID, nodeID, domain.LevelInfo,
				fmt.Sprintf("Skipping node %s: its branch was not taken", nodeID))
			continue
		}
		if err != nil {
			return r.fail(ctx, logger, executionID, nodeID, err)
		}

		impl, err := r.registry.Get(node.Type)
		if err != nil {
			return r.fail(ctx, logger, executionID, nodeID, err)
		}

		instanceID, ok := instances[nodeID]
		if !ok {
			return r.fail(ctx, logger, executionID, nodeID,
				fmt.Errorf("invariant: no node instance for %s in graph %s", nodeID, snapshot.GraphID))
		}

		r.trace(ctx, logger, executionID, nodeID, domain.LevelInfo,
			fmt.Sprintf("Executing node %s (%s)", nodeID, node.Type))

		nodeCtx := &nodeContext{
			graphID:     snapshot.GraphID,
			executionID: executionID,
			node:        node,
			packet:      packet.Clone(),
			creds:       r.creds,
			logger:      logger.With("node_id", nodeID, "node_type", node.Type),
		}

		start := time.Now()
		outcome, execErr := impl.Execute(ctx, input, nodeCtx)
		elapsed := time.Since(start)
		r.metrics.NodeDuration.WithLabelValues(node.Type).Observe(elapsed.Seconds())

		if execErr != nil {
			r.metrics.NodesTotal.WithLabelValues(node.Type, string(domain.ResultFailed)).Inc()
			result := &domain.ExecutionResult{
				ExecutionID:     executionID,
				NodeID:          nodeID,
				NodeInstanceID:  instanceID,
				InputData:       input,
				Status:          domain.ResultFailed,
				ErrorMessage:    execErr.Error(),
				StartTime:       start,
				ExecutionTimeMs: elapsed.Milliseconds(),
			}
			if err := r.store.CreateExecutionResult(ctx, result); err != nil {
				logger.Error("persist failed node result", "node_id", nodeID, "error", err)
			}
			return r.fail(ctx, logger, executionID, nodeID,
				fmt.Errorf("node %s (%s): %w", nodeID, node.Type, execErr))
		}

		if outcome.Branched {
			r.trace(ctx, logger, executionID, nodeID, domain.LevelInfo,
				fmt.Sprintf("Node %s took branch %q", nodeID, outcome.Handle))
		}
		packet[nodeID] = domain.NodeData{Output: outcome.Data, Handle: outcome.Handle}

		result := &domain.ExecutionResult{
			ExecutionID:     executionID,
			NodeID:          nodeID,
			NodeInstanceID:  instanceID,
			InputData:       input,
			OutputData:      outcome.Data,
			Status:          domain.ResultCompleted,
			StartTime:       start,
			ExecutionTimeMs: elapsed.Milliseconds(),
		}
		if err := r.store.CreateExecutionResult(ctx, result); err != nil {
			return r.fail(ctx, logger, executionID, nodeID,
				fmt.Errorf("persist result for node %s: %w", nodeID, err))
		}
		r.metrics.NodesTotal.WithLabelValues(node.Type, string(domain.ResultCompleted)).Inc()
		r.trace(ctx, logger, executionID, nodeID, domain.LevelInfo,
			fmt.Sprintf("Node %s executed in %dms", nodeID, elapsed.Milliseconds()))
	}

	if err := r.store.UpdateExecutionStatus(ctx, executionID, domain.StatusCompleted, time.Now()); err != nil {
		return fmt.Errorf("transition execution %s to COMPLETED: %w", executionID, err)
	}
	r.metrics.ExecutionsTotal.WithLabelValues(string(domain.StatusCompleted)).Inc()
	r.trace(ctx, logger, executionID, "", domain.LevelInfo, "Execution completed successfully")
	logger.Info("execution completed")
	return nil
}

// fail drives the execution to FAILED and reports the cause. The terminal
// transition is best-effort: the original error always wins.
func (r *Runner) fail(ctx context.Context, logger *slog.Logger, executionID, nodeID string, cause error) error {
	if err := r.store.UpdateExecutionStatus(ctx, executionID, domain.StatusFailed, time.Now()); err != nil {
		logger.Error("transition execution to FAILED", "error", err)
	}
	r.metrics.ExecutionsTotal.WithLabelValues(string(domain.StatusFailed)).Inc()
	r.trace(ctx, logger, executionID, nodeID, domain.LevelError,
		fmt.Sprintf("Execution failed: %s", cause.Error()))
	logger.Error("execution failed", "error", cause)
	return cause
}

func (r *Runner) nodeInstances(ctx context.Context, graphID string) (map[string]string, error) {
	list, err := r.store.ListNodeInstances(ctx, graphID)
	if err != nil {
		return nil, fmt.Errorf("list node instances for graph %s: %w", graphID, err)
	}
	byNode := make(map[string]string, len(list))
	for _, ni := range list {
		byNode[ni.NodeID] = ni.ID
	}
	return byNode, nil
}

// trace appends an execution log entry. Trace persistence is best-effort;
// a failing store write must not abort the run it is describing.
func (r *Runner) trace(ctx context.Context, logger *slog.Logger, executionID, nodeID string, level domain.LogLevel, message string) {
	entry := &domain.ExecutionLog{
		ExecutionID: executionID,
		NodeID:      nodeID,
		Level:       level,
		Message:     message,
		Timestamp:   time.Now(),
	}
	if err := r.store.AppendExecutionLog(ctx, entry); err != nil {
		logger.Warn("append execution log", "error", err)
	}
}

func compactJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}
