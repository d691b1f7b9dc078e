package runtime

import "github.com/weftflow/weft/pkg/domain"

// ResolveInput computes a node's input from its predecessors' recorded
// outputs.
//
//   - No incoming connections: the trigger payload.
//   - One satisfied incoming connection: that source's output, passed through.
//   - Several satisfied connections: a shallow merge of their map outputs in
//     connection order, later sources overwriting earlier keys.
//
// An incoming connection is satisfied only when its source has a packet
// entry and the edge's SourceHandle is either empty or matches the handle
// the source recorded. Incoming connections with none satisfied mean the
// node's branch was not taken: ResolveInput returns domain.ErrNotRunnable
// and the orchestrator skips the node, which propagates the skip to
// descendants that depend on it alone.
func ResolveInput(nodeID string, connections []domain.Connection, packet domain.DataPacket) (any, error) {
	var incoming []domain.Connection
	for _, c := range connections {
		if c.TargetNodeID == nodeID {
			incoming = append(incoming, c)
		}
	}

	if len(incoming) == 0 {
		return packet.Trigger(), nil
	}

	var satisfied []domain.NodeData
	for _, c := range incoming {
		entry, ok := packet[c.SourceNodeID]
		if !ok {
			continue
		}
		if c.SourceHandle != "" && c.SourceHandle != entry.Handle {
			continue
		}
		satisfied = append(satisfied, entry)
	}

	switch len(satisfied) {
	case 0:
		return nil, domain.ErrNotRunnable
	case 1:
		return satisfied[0].Output, nil
	}

	merged := make(map[string]any)
	for _, entry := range satisfied {
		m, ok := entry.Output.(map[string]any)
		if !ok {
			continue
		}
		for k, v := range m {
			merged[k] = v
		}
	}
	return merged, nil
}
