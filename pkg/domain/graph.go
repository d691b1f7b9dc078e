package domain

// NodeRole constants describe how a node participates in the control flow.
const (
	// RoleTrigger starts an execution; its input is the trigger payload.
	RoleTrigger = "trigger"
	// RoleAction performs work and passes data downstream.
	RoleAction = "action"
	// RoleBranch selects one of several outgoing handles.
	RoleBranch = "branch"
)

// Node is one typed unit of work in the graph.
type Node struct {
	ID   string `json:"id" yaml:"id"`
	Type string `json:"type" yaml:"type"` // registry key, e.g. "http-request"
	Role string `json:"role" yaml:"role"` // trigger | action | branch

	// Config holds the node's editor-authored settings. It is opaque to the
	// runtime; each implementation decodes the keys it understands.
	Config map[string]any `json:"config,omitempty" yaml:"config,omitempty"`
}

// Connection is a directed edge between two nodes. SourceHandle is empty for
// ordinary edges; branch nodes tag their outgoing edges (e.g. "true"/"false").
type Connection struct {
	ID           string `json:"id" yaml:"id"`
	SourceNodeID string `json:"sourceNodeId" yaml:"source_node_id"`
	TargetNodeID string `json:"targetNodeId" yaml:"target_node_id"`
	SourceHandle string `json:"sourceHandle,omitempty" yaml:"source_handle,omitempty"`
}

// GraphSnapshot is an immutable versioned copy of a graph. A new snapshot is
// written on every save of the visual editor; executions always run against
// one pinned snapshot.
type GraphSnapshot struct {
	ID          string       `json:"id"`
	GraphID     string       `json:"graphId"`
	Version     int          `json:"version"`
	Nodes       []Node       `json:"nodes"`
	Connections []Connection `json:"connections"`
}

// NodeByID returns the node with the given id, or nil.
func (s *GraphSnapshot) NodeByID(id string) *Node {
	for i := range s.Nodes {
		if s.Nodes[i].ID == id {
			return &s.Nodes[i]
		}
	}
	return nil
}

// NodeInstance ties a node id inside a snapshot to its stored per-graph
// instance record. Results reference the instance, matching the store schema.
type NodeInstance struct {
	ID      string `json:"id"`
	GraphID string `json:"graphId"`
	NodeID  string `json:"nodeId"`
}
