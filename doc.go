/*
Package weft is a workflow execution engine. It runs versioned node graphs:
trigger nodes start an execution, action nodes transform a flowing data
packet, and branch nodes route it down tagged handles.

The engine is built hexagonally. The orchestrator in internal/runtime only
talks to the ports in pkg/ports, so the same core serves two deployments:

  - Embedded: this package wires an in-memory store and the builtin node set
    into an Engine you call directly.
  - Distributed: the weft worker consumes jobs from a redis queue and
    persists state through the redis store adapter.

# Usage

Load a snapshot, then execute it:

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/weftflow/weft"
		"github.com/weftflow/weft/pkg/domain"
	)

	func main() {
		engine := weft.New()
		ctx := context.Background()

		snapshot := &domain.GraphSnapshot{
			ID:      "v1",
			GraphID: "g1",
			Version: 1,
			Nodes: []domain.Node{
				{ID: "start", Type: "manual", Role: domain.RoleTrigger},
				{ID: "log", Type: "log", Role: domain.RoleAction},
			},
			Connections: []domain.Connection{
				{ID: "e1", SourceNodeID: "start", TargetNodeID: "log"},
			},
		}
		if err := engine.LoadSnapshot(ctx, snapshot); err != nil {
			log.Fatal(err)
		}

		execution, results, err := engine.Execute(ctx, "v1", domain.ModeManual, map[string]any{"hello": "world"})
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(execution.Status, len(results))
	}

Custom node types implement registry.Implementation and are registered on
engine.Registry() before the first Execute call.
*/
package weft
