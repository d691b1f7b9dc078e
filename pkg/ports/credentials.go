package ports

import (
	"context"

	"github.com/weftflow/weft/pkg/domain"
)

// CredentialSource is the read/decrypt contract of the credential vault.
// Lookup of a missing id returns (nil, nil); the caller decides whether an
// absent credential is an error.
type CredentialSource interface {
	GetCredential(ctx context.Context, id string) (*domain.Credential, error)
}
