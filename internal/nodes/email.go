package nodes

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/weftflow/weft/internal/credentials"
	"github.com/weftflow/weft/pkg/domain"
	"github.com/weftflow/weft/pkg/registry"
	"github.com/weftflow/weft/pkg/template"
)

// EmailNode sends one email through the Resend API.
type EmailNode struct {
	Client *http.Client

	// BaseURL overrides the API endpoint, for tests.
	BaseURL string
}

type emailConfig struct {
	CredentialID string `mapstructure:"credentialId"`
	From         string `mapstructure:"from"`
	To           string `mapstructure:"to"`
	Subject      string `mapstructure:"subject"`
	Body         string `mapstructure:"body"`
	HTML         bool   `mapstructure:"isHtml"`
}

func (n *EmailNode) Execute(ctx context.Context, input any, ec registry.ExecutionContext) (domain.NodeOutcome, error) {
	var cfg emailConfig
	if err := decodeConfig(ec, &cfg); err != nil {
		return domain.NodeOutcome{}, err
	}
	if cfg.CredentialID == "" || cfg.To == "" || cfg.Subject == "" || cfg.Body == "" {
		return domain.NodeOutcome{}, errors.New("email: credentialId, to, subject and body are required")
	}
	if cfg.From == "" {
		cfg.From = "noreply@example.com"
	}

	cred, err := ec.Credential(ctx, cfg.CredentialID)
	if err != nil {
		return domain.NodeOutcome{}, err
	}
	if cred.String("apiKey") == "" {
		return domain.NodeOutcome{}, errors.New("email: API key not found in credential")
	}

	tctx := templateContext(input, ec)
	to := template.Resolve(cfg.To, tctx)
	subject := template.Resolve(cfg.Subject, tctx)
	body := template.Resolve(cfg.Body, tctx)

	payload := map[string]any{
		"from":    cfg.From,
		"to":      []string{to},
		"subject": subject,
	}
	if cfg.HTML {
		payload["html"] = body
	} else {
		payload["text"] = body
	}

	base := n.BaseURL
	if base == "" {
		base = credentials.BaseURL(cred.Type, cred.Data)
	}

	status, reply, err := postJSON(ctx, n.Client, base+"/emails", ec.AuthHeaders(cred), payload)
	if err != nil {
		return domain.NodeOutcome{}, err
	}
	if status < 200 || status >= 300 {
		return domain.NodeOutcome{}, fmt.Errorf("email API error (%d)", status)
	}

	return domain.Value(map[string]any{
		"success":   true,
		"emailSent": true,
		"messageId": reply["id"],
		"to":        to,
		"subject":   subject,
		"sentAt":    time.Now().UTC().Format(time.RFC3339),
	}), nil
}
