// Package credentials resolves opaque credential references into decrypted
// fields and derives ready-to-use request headers for the auth schemes the
// builtin nodes speak.
package credentials

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/weftflow/weft/pkg/domain"
	"github.com/weftflow/weft/pkg/ports"
)

// Resolver wraps a CredentialSource with header/URL derivation.
type Resolver struct {
	source ports.CredentialSource
}

// NewResolver creates a Resolver over the vault's read contract.
func NewResolver(source ports.CredentialSource) *Resolver {
	return &Resolver{source: source}
}

// Get resolves a credential id. A missing credential is reported as
// domain.ErrCredentialNotFound so callers can fail their node cleanly.
func (r *Resolver) Get(ctx context.Context, id string) (*domain.Credential, error) {
	cred, err := r.source.GetCredential(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("resolve credential %s: %w", id, err)
	}
	if cred == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrCredentialNotFound, id)
	}
	return cred, nil
}

// AuthHeaders derives request headers for a credential's auth scheme.
// Unknown schemes yield an empty map.
func AuthHeaders(credType domain.CredentialType, data map[string]any) map[string]string {
	str := func(key string) string {
		s, _ := data[key].(string)
		return s
	}

	switch credType {
	case domain.CredentialTelegramBot:
		return map[string]string{"Authorization": "Bearer " + str("token")}

	case domain.CredentialResendEmail:
		return map[string]string{
			"Authorization": "Bearer " + str("apiKey"),
			"Content-Type":  "application/json",
		}

	case domain.CredentialOpenAIAPI:
		return map[string]string{
			"Authorization": "Bearer " + str("apiKey"),
			"Content-Type":  "application/json",
		}

	case domain.CredentialOAuth2:
		return map[string]string{"Authorization": "Bearer " + str("accessToken")}

	case domain.CredentialHTTPBasicAuth:
		basic := base64.StdEncoding.EncodeToString([]byte(str("username") + ":" + str("password")))
		return map[string]string{"Authorization": "Basic " + basic}

	case domain.CredentialAPIKey:
		header := str("headerName")
		if header == "" {
			header = "Authorization"
		}
		return map[string]string{header: str("apiKey")}

	case domain.CredentialGeminiAPI, domain.CredentialWebhookURL:
		return map[string]string{"Content-Type": "application/json"}

	case domain.CredentialCustom:
		headers := map[string]string{}
		if raw, ok := data["headers"].(map[string]any); ok {
			for k, v := range raw {
				if s, ok := v.(string); ok {
					headers[k] = s
				}
			}
		}
		return headers
	}

	return map[string]string{}
}

// BaseURL returns the API base for hosted services, or "" when the scheme
// has no fixed endpoint.
func BaseURL(credType domain.CredentialType, data map[string]any) string {
	str := func(key string) string {
		s, _ := data[key].(string)
		return s
	}

	switch credType {
	case domain.CredentialTelegramBot:
		return "https://api.telegram.org/bot" + str("token")
	case domain.CredentialResendEmail:
		return "https://api.resend.com"
	case domain.CredentialGeminiAPI:
		return "https://generativelanguage.googleapis.com/v1beta"
	case domain.CredentialOpenAIAPI:
		return "https://api.openai.com/v1"
	case domain.CredentialWebhookURL:
		return str("url")
	}
	return ""
}
