package weft_test

import (
	"context"
	"fmt"
	"log"

	"github.com/weftflow/weft"
	"github.com/weftflow/weft/pkg/domain"
)

// Example runs a two-node flow in-process: a manual trigger feeds a
// data-transform node that templates a greeting from the trigger payload.
func Example() {
	engine := weft.New()
	ctx := context.Background()

	snapshot := &domain.GraphSnapshot{
		ID:      "v1",
		GraphID: "greetings",
		Version: 1,
		Nodes: []domain.Node{
			{ID: "start", Type: "manual", Role: domain.RoleTrigger},
			{ID: "greet", Type: "data-transform", Role: domain.RoleAction, Config: map[string]any{
				"transformations": []any{
					map[string]any{"type": "set", "field": "greeting", "value": "Hello {{ $json.name }}"},
				},
			}},
		},
		Connections: []domain.Connection{
			{ID: "e1", SourceNodeID: "start", TargetNodeID: "greet"},
		},
	}
	if err := engine.LoadSnapshot(ctx, snapshot); err != nil {
		log.Fatal(err)
	}

	execution, results, err := engine.Execute(ctx, "v1", domain.ModeManual, map[string]any{"name": "Ada"})
	if err != nil {
		log.Fatal(err)
	}

	out := results[len(results)-1].OutputData.(map[string]any)
	fmt.Println(execution.Status)
	fmt.Println(out["greeting"])
	// Output:
	// COMPLETED
	// Hello Ada
}
