package domain

// NodeOutcome is the tagged result of one node execution: either a plain
// value, or a branch selecting an outgoing handle. The orchestrator matches
// on Branched instead of sniffing the output's shape.
type NodeOutcome struct {
	Data     any
	Handle   string
	Branched bool
}

// Value wraps an ordinary node output.
func Value(v any) NodeOutcome {
	return NodeOutcome{Data: v}
}

// Branch wraps a branch node's output together with the taken handle.
func Branch(handle string, v any) NodeOutcome {
	return NodeOutcome{Data: v, Handle: handle, Branched: true}
}
