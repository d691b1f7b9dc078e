package runtime

import (
	"context"
	"log/slog"

	"github.com/weftflow/weft/internal/credentials"
	"github.com/weftflow/weft/pkg/domain"
)

// nodeContext is the per-node registry.ExecutionContext handed to an
// implementation. It carries a cloned packet so implementations cannot
// mutate routing state.
type nodeContext struct {
	graphID     string
	executionID string
	node        *domain.Node
	packet      domain.DataPacket
	creds       *credentials.Resolver
	logger      *slog.Logger
}

func (c *nodeContext) GraphID() string     { return c.graphID }
func (c *nodeContext) ExecutionID() string { return c.executionID }
func (c *nodeContext) NodeID() string      { return c.node.ID }

func (c *nodeContext) NodeConfig() map[string]any {
	if c.node.Config == nil {
		return map[string]any{}
	}
	return c.node.Config
}

func (c *nodeContext) Credential(ctx context.Context, id string) (*domain.Credential, error) {
	return c.creds.Get(ctx, id)
}

func (c *nodeContext) AuthHeaders(cred *domain.Credential) map[string]string {
	if cred == nil {
		return map[string]string{}
	}
	return credentials.AuthHeaders(cred.Type, cred.Data)
}

func (c *nodeContext) DataPacket() domain.DataPacket { return c.packet }
func (c *nodeContext) TriggerData() any              { return c.packet.Trigger() }
func (c *nodeContext) Logger() *slog.Logger          { return c.logger }
