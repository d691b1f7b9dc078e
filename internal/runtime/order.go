// Package runtime drives one execution of a graph snapshot: it computes the
// visitation order, resolves each node's input from its predecessors,
// dispatches to the registered implementation, routes branch handles, and
// persists results, logs and the execution status.
package runtime

import "github.com/weftflow/weft/pkg/domain"

// ResolveOrder computes a deterministic topological order over the snapshot
// via Kahn's algorithm, draining level by level so same-depth nodes stay in
// input order. A graph with a cycle yields a *domain.CycleError naming the
// unresolved nodes.
func ResolveOrder(nodes []domain.Node, connections []domain.Connection) ([]string, error) {
	inDegree := make(map[string]int, len(nodes))
	adjacency := make(map[string][]string, len(nodes))
	for _, n := range nodes {
		inDegree[n.ID] = 0
	}
	for _, c := range connections {
		// Edges referencing unknown nodes are dropped rather than invented.
		if _, ok := inDegree[c.SourceNodeID]; !ok {
			continue
		}
		if _, ok := inDegree[c.TargetNodeID]; !ok {
			continue
		}
		adjacency[c.SourceNodeID] = append(adjacency[c.SourceNodeID], c.TargetNodeID)
		inDegree[c.TargetNodeID]++
	}

	var queue []string
	for _, n := range nodes {
		if inDegree[n.ID] == 0 {
			queue = append(queue, n.ID)
		}
	}

	order := make([]string, 0, len(nodes))
	for len(queue) > 0 {
		level := len(queue)
		for i := 0; i < level; i++ {
			id := queue[0]
			queue = queue[1:]
			order = append(order, id)

			for _, next := range adjacency[id] {
				inDegree[next]--
				if inDegree[next] == 0 {
					queue = append(queue, next)
				}
			}
		}
	}

	if len(order) < len(nodes) {
		seen := make(map[string]bool, len(order))
		for _, id := range order {
			seen[id] = true
		}
		var unresolved []string
		for _, n := range nodes {
			if !seen[n.ID] {
				unresolved = append(unresolved, n.ID)
			}
		}
		return nil, &domain.CycleError{Unresolved: unresolved}
	}

	return order, nil
}
