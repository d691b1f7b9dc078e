package nodes_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weftflow/weft/internal/nodes"
	"github.com/weftflow/weft/pkg/domain"
)

func TestEmail_SendsThroughAPI(t *testing.T) {
	var gotAuth string
	var got map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/emails", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"id": "msg-1"})
	}))
	defer server.Close()

	reg := builtins(t)
	impl, err := reg.Get(nodes.TypeEmail)
	require.NoError(t, err)
	impl.(*nodes.EmailNode).BaseURL = server.URL

	ec := &fakeContext{
		config: map[string]any{
			"credentialId": "mail",
			"to":           "{{ $json.email }}",
			"subject":      "Order {{ $json.order }}",
			"body":         "Thanks!",
		},
		creds: map[string]*domain.Credential{
			"mail": {ID: "mail", Type: domain.CredentialResendEmail, Data: map[string]any{"apiKey": "re_x"}},
		},
	}

	out := run(t, reg, nodes.TypeEmail, map[string]any{"email": "a@b.c", "order": "42"}, ec)

	assert.Equal(t, "Bearer re_x", gotAuth)
	assert.Equal(t, []any{"a@b.c"}, got["to"])
	assert.Equal(t, "Order 42", got["subject"])
	assert.Equal(t, "Thanks!", got["text"])

	result := out.Data.(map[string]any)
	assert.Equal(t, true, result["success"])
	assert.Equal(t, "msg-1", result["messageId"])
}

func TestEmail_MissingConfigFails(t *testing.T) {
	reg := builtins(t)
	impl, err := reg.Get(nodes.TypeEmail)
	require.NoError(t, err)

	_, err = impl.Execute(context.Background(), nil, &fakeContext{config: map[string]any{"to": "a@b.c"}})
	assert.Error(t, err)
}

func TestEmail_APIErrorFailsNode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer server.Close()

	reg := builtins(t)
	impl, err := reg.Get(nodes.TypeEmail)
	require.NoError(t, err)
	impl.(*nodes.EmailNode).BaseURL = server.URL

	ec := &fakeContext{
		config: map[string]any{
			"credentialId": "mail", "to": "a@b.c", "subject": "s", "body": "b",
		},
		creds: map[string]*domain.Credential{
			"mail": {ID: "mail", Type: domain.CredentialResendEmail, Data: map[string]any{"apiKey": "k"}},
		},
	}

	_, err = impl.Execute(context.Background(), nil, ec)
	assert.Error(t, err)
}
