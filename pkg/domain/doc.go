// Package domain contains the core data model of the Weft execution engine.
//
// It is intentionally dependency-free: graph snapshots, executions, results,
// logs and the in-memory data packet are plain data carried between the
// runtime, the storage adapters and the node implementations.
package domain
