package domain

// TriggerKey is the reserved DataPacket key holding the trigger payload.
const TriggerKey = "trigger"

// NodeData is one node's recorded contribution to the data packet.
// Handle is empty unless the node branched.
type NodeData struct {
	Output any    `json:"output"`
	Handle string `json:"handle,omitempty"`
}

// DataPacket maps node ids (plus TriggerKey) to their recorded outputs during
// one execution. It is owned exclusively by a single in-flight run, rebuilt
// from scratch per execution, and discarded when the run ends.
type DataPacket map[string]NodeData

// NewDataPacket seeds a packet with the trigger payload.
func NewDataPacket(triggerPayload any) DataPacket {
	return DataPacket{TriggerKey: {Output: triggerPayload}}
}

// Trigger returns the trigger payload, or nil for an unseeded packet.
func (p DataPacket) Trigger() any {
	return p[TriggerKey].Output
}

// Clone returns a shallow copy. Node implementations receive clones so they
// cannot perturb the orchestrator's routing state.
func (p DataPacket) Clone() DataPacket {
	out := make(DataPacket, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}
