package nodes_test

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/weftflow/weft/internal/credentials"
	"github.com/weftflow/weft/internal/logging"
	"github.com/weftflow/weft/pkg/domain"
)

// fakeContext is a minimal registry.ExecutionContext for exercising node
// implementations directly.
type fakeContext struct {
	config map[string]any
	packet domain.DataPacket
	creds  map[string]*domain.Credential
}

func (f *fakeContext) GraphID() string     { return "g1" }
func (f *fakeContext) ExecutionID() string { return "e1" }
func (f *fakeContext) NodeID() string      { return "n1" }

func (f *fakeContext) NodeConfig() map[string]any {
	if f.config == nil {
		return map[string]any{}
	}
	return f.config
}

func (f *fakeContext) Credential(_ context.Context, id string) (*domain.Credential, error) {
	cred, ok := f.creds[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrCredentialNotFound, id)
	}
	return cred, nil
}

func (f *fakeContext) AuthHeaders(cred *domain.Credential) map[string]string {
	if cred == nil {
		return map[string]string{}
	}
	return credentials.AuthHeaders(cred.Type, cred.Data)
}

func (f *fakeContext) DataPacket() domain.DataPacket {
	if f.packet == nil {
		return domain.NewDataPacket(nil)
	}
	return f.packet
}

func (f *fakeContext) TriggerData() any { return f.DataPacket().Trigger() }

func (f *fakeContext) Logger() *slog.Logger { return logging.NewNop() }
