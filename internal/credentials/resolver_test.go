package credentials_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weftflow/weft/internal/credentials"
	"github.com/weftflow/weft/pkg/domain"
)

type fakeSource map[string]*domain.Credential

func (f fakeSource) GetCredential(_ context.Context, id string) (*domain.Credential, error) {
	return f[id], nil
}

func TestResolver_Get(t *testing.T) {
	source := fakeSource{
		"c1": {ID: "c1", Type: domain.CredentialOpenAIAPI, Data: map[string]any{"apiKey": "sk-x"}},
	}
	r := credentials.NewResolver(source)

	cred, err := r.Get(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, "sk-x", cred.String("apiKey"))

	_, err = r.Get(context.Background(), "missing")
	assert.True(t, errors.Is(err, domain.ErrCredentialNotFound))
}

func TestAuthHeaders(t *testing.T) {
	tests := []struct {
		name     string
		credType domain.CredentialType
		data     map[string]any
		want     map[string]string
	}{
		{
			"bearer token",
			domain.CredentialTelegramBot,
			map[string]any{"token": "t123"},
			map[string]string{"Authorization": "Bearer t123"},
		},
		{
			"basic auth",
			domain.CredentialHTTPBasicAuth,
			map[string]any{"username": "u", "password": "p"},
			map[string]string{"Authorization": "Basic dTpw"},
		},
		{
			"named api key header",
			domain.CredentialAPIKey,
			map[string]any{"headerName": "X-Api-Key", "apiKey": "k"},
			map[string]string{"X-Api-Key": "k"},
		},
		{
			"api key default header",
			domain.CredentialAPIKey,
			map[string]any{"apiKey": "k"},
			map[string]string{"Authorization": "k"},
		},
		{
			"custom header map",
			domain.CredentialCustom,
			map[string]any{"headers": map[string]any{"X-Custom": "v"}},
			map[string]string{"X-Custom": "v"},
		},
		{
			"unknown scheme",
			domain.CredentialType("NOPE"),
			nil,
			map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, credentials.AuthHeaders(tt.credType, tt.data))
		})
	}
}

func TestBaseURL(t *testing.T) {
	assert.Equal(t, "https://api.telegram.org/botT", credentials.BaseURL(domain.CredentialTelegramBot, map[string]any{"token": "T"}))
	assert.Equal(t, "https://api.openai.com/v1", credentials.BaseURL(domain.CredentialOpenAIAPI, nil))
	assert.Equal(t, "https://hooks.example.com/x", credentials.BaseURL(domain.CredentialWebhookURL, map[string]any{"url": "https://hooks.example.com/x"}))
	assert.Equal(t, "", credentials.BaseURL(domain.CredentialCustom, nil))
}
