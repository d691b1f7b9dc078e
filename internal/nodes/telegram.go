package nodes

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/weftflow/weft/internal/credentials"
	"github.com/weftflow/weft/pkg/domain"
	"github.com/weftflow/weft/pkg/registry"
	"github.com/weftflow/weft/pkg/template"
)

// TelegramNode sends one message through the Bot API.
type TelegramNode struct {
	Client *http.Client

	// BaseURL overrides the Bot API endpoint, for tests.
	BaseURL string
}

type telegramConfig struct {
	CredentialID string `mapstructure:"credentialId"`
	ChatID       string `mapstructure:"chatId"`
	Message      string `mapstructure:"message"`
}

func (n *TelegramNode) Execute(ctx context.Context, input any, ec registry.ExecutionContext) (domain.NodeOutcome, error) {
	var cfg telegramConfig
	if err := decodeConfig(ec, &cfg); err != nil {
		return domain.NodeOutcome{}, err
	}
	if cfg.CredentialID == "" || cfg.ChatID == "" || cfg.Message == "" {
		return domain.NodeOutcome{}, errors.New("telegram: credentialId, chatId and message are required")
	}

	cred, err := ec.Credential(ctx, cfg.CredentialID)
	if err != nil {
		return domain.NodeOutcome{}, err
	}
	if cred.String("token") == "" {
		return domain.NodeOutcome{}, errors.New("telegram: bot token not found in credential")
	}

	message := template.Resolve(cfg.Message, templateContext(input, ec))

	base := n.BaseURL
	if base == "" {
		base = credentials.BaseURL(cred.Type, cred.Data)
	}

	status, reply, err := postJSON(ctx, n.Client, base+"/sendMessage", nil, map[string]any{
		"chat_id": cfg.ChatID,
		"text":    message,
	})
	if err != nil {
		return domain.NodeOutcome{}, err
	}
	if status < 200 || status >= 300 {
		desc, _ := reply["description"].(string)
		return domain.NodeOutcome{}, fmt.Errorf("telegram API error (%d): %s", status, desc)
	}

	result, _ := reply["result"].(map[string]any)
	return domain.Value(map[string]any{
		"success":   true,
		"messageId": result["message_id"],
		"chatId":    cfg.ChatID,
		"text":      message,
	}), nil
}
