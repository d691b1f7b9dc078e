package domain

import "time"

// ExecutionStatus is the lifecycle state of one execution.
// Transitions are one-directional: QUEUED -> RUNNING -> {COMPLETED | FAILED}.
type ExecutionStatus string

const (
	StatusQueued    ExecutionStatus = "QUEUED"
	StatusRunning   ExecutionStatus = "RUNNING"
	StatusCompleted ExecutionStatus = "COMPLETED"
	StatusFailed    ExecutionStatus = "FAILED"
)

// Terminal reports whether the status is immutable once set.
func (s ExecutionStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// ExecutionMode records what fired the trigger.
type ExecutionMode string

const (
	ModeManual   ExecutionMode = "manual"
	ModeWebhook  ExecutionMode = "webhook"
	ModeSchedule ExecutionMode = "schedule"
)

// Execution is one run of a graph version against one trigger payload.
type Execution struct {
	ID             string          `json:"id"`
	GraphID        string          `json:"graphId"`
	GraphVersionID string          `json:"graphVersionId"`
	Mode           ExecutionMode   `json:"mode"`
	Status         ExecutionStatus `json:"status"`
	StartedAt      *time.Time      `json:"startedAt,omitempty"`
	FinishedAt     *time.Time      `json:"finishedAt,omitempty"`
}

// ResultStatus is the outcome of a single node run.
type ResultStatus string

const (
	ResultCompleted ResultStatus = "COMPLETED"
	ResultFailed    ResultStatus = "FAILED"
)

// ExecutionResult records one node's run inside an execution. Skipped nodes
// never get a result record, only a log entry.
type ExecutionResult struct {
	ExecutionID     string       `json:"executionId"`
	NodeID          string       `json:"nodeId"`
	NodeInstanceID  string       `json:"nodeInstanceId"`
	InputData       any          `json:"inputData"`
	OutputData      any          `json:"outputData"`
	Status          ResultStatus `json:"status"`
	ErrorMessage    string       `json:"errorMessage,omitempty"`
	StartTime       time.Time    `json:"startTime"`
	ExecutionTimeMs int64        `json:"executionTimeMs"`
}

// LogLevel for execution trace entries.
type LogLevel string

const (
	LevelDebug LogLevel = "DEBUG"
	LevelInfo  LogLevel = "INFO"
	LevelWarn  LogLevel = "WARN"
	LevelError LogLevel = "ERROR"
)

// ExecutionLog is one append-only structured trace entry.
type ExecutionLog struct {
	ExecutionID string    `json:"executionId"`
	NodeID      string    `json:"nodeId,omitempty"`
	Level       LogLevel  `json:"level"`
	Message     string    `json:"message"`
	Timestamp   time.Time `json:"timestamp"`
}
