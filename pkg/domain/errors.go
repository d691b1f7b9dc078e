package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoImplementation is returned when the registry has no variant for a node
// type. Fatal for the whole execution; there is intentionally no fallback.
var ErrNoImplementation = errors.New("no implementation for node type")

// ErrExecutionNotFound is returned when an execution id cannot be found.
var ErrExecutionNotFound = errors.New("execution not found")

// ErrSnapshotNotFound is returned when a graph version id cannot be found.
var ErrSnapshotNotFound = errors.New("graph snapshot not found")

// ErrCredentialNotFound is returned when a credential reference resolves to
// nothing.
var ErrCredentialNotFound = errors.New("credential not found")

// ErrNotRunnable marks a node whose every incoming edge is unsatisfied this
// execution (its branch was not taken). The orchestrator logs a skip and
// moves on; it is never surfaced as a failure.
var ErrNotRunnable = errors.New("node not runnable this execution")

// CycleError reports a graph that cannot be topologically ordered. It names
// the node ids left unresolved after the order ran dry.
type CycleError struct {
	Unresolved []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("graph contains a cycle: unresolved nodes [%s]", strings.Join(e.Unresolved, ", "))
}
