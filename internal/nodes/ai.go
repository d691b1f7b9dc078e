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

// AINode calls a hosted completion API (OpenAI- or Gemini-style) with a
// templated prompt and returns the generated text.
type AINode struct {
	Client *http.Client

	// BaseURL overrides the provider endpoint, for tests.
	BaseURL string
}

type aiConfig struct {
	Provider     string  `mapstructure:"provider"` // openai | gemini
	Model        string  `mapstructure:"model"`
	Temperature  float64 `mapstructure:"temperature"`
	MaxTokens    int     `mapstructure:"maxTokens"`
	SystemPrompt string  `mapstructure:"systemPrompt"`
	Prompt       string  `mapstructure:"prompt"`
	CredentialID string  `mapstructure:"credentialId"`
}

func (n *AINode) Execute(ctx context.Context, input any, ec registry.ExecutionContext) (domain.NodeOutcome, error) {
	var cfg aiConfig
	if err := decodeConfig(ec, &cfg); err != nil {
		return domain.NodeOutcome{}, err
	}
	if cfg.Prompt == "" {
		return domain.NodeOutcome{}, errors.New("ai-generate: prompt is required")
	}
	if cfg.CredentialID == "" {
		return domain.NodeOutcome{}, errors.New("ai-generate: credentialId is required")
	}
	if cfg.Provider == "" {
		cfg.Provider = "openai"
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = 0.7
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 2000
	}

	cred, err := ec.Credential(ctx, cfg.CredentialID)
	if err != nil {
		return domain.NodeOutcome{}, err
	}

	prompt := template.Resolve(cfg.Prompt, templateContext(input, ec))

	base := n.BaseURL
	if base == "" {
		base = credentials.BaseURL(cred.Type, cred.Data)
	}

	var output string
	switch cfg.Provider {
	case "openai":
		output, err = n.completeOpenAI(ctx, ec, cred, base, cfg, prompt)
	case "gemini":
		output, err = n.completeGemini(ctx, cred, base, cfg, prompt)
	default:
		err = fmt.Errorf("ai-generate: unknown provider %q", cfg.Provider)
	}
	if err != nil {
		return domain.NodeOutcome{}, err
	}

	return domain.Value(map[string]any{
		"provider": cfg.Provider,
		"model":    cfg.Model,
		"prompt":   prompt,
		"output":   output,
	}), nil
}

func (n *AINode) completeOpenAI(ctx context.Context, ec registry.ExecutionContext, cred *domain.Credential, base string, cfg aiConfig, prompt string) (string, error) {
	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}

	messages := []map[string]any{}
	if cfg.SystemPrompt != "" {
		messages = append(messages, map[string]any{"role": "system", "content": cfg.SystemPrompt})
	}
	messages = append(messages, map[string]any{"role": "user", "content": prompt})

	status, reply, err := postJSON(ctx, n.Client, base+"/chat/completions", ec.AuthHeaders(cred), map[string]any{
		"model":       model,
		"messages":    messages,
		"temperature": cfg.Temperature,
		"max_tokens":  cfg.MaxTokens,
	})
	if err != nil {
		return "", err
	}
	if status < 200 || status >= 300 {
		return "", fmt.Errorf("openai API error (%d)", status)
	}

	choices, _ := reply["choices"].([]any)
	if len(choices) == 0 {
		return "", errors.New("openai reply has no choices")
	}
	choice, _ := choices[0].(map[string]any)
	message, _ := choice["message"].(map[string]any)
	content, _ := message["content"].(string)
	return content, nil
}

func (n *AINode) completeGemini(ctx context.Context, cred *domain.Credential, base string, cfg aiConfig, prompt string) (string, error) {
	model := cfg.Model
	if model == "" {
		model = "gemini-pro"
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", base, model, cred.String("apiKey"))
	status, reply, err := postJSON(ctx, n.Client, url, nil, map[string]any{
		"contents": []map[string]any{
			{"parts": []map[string]any{{"text": prompt}}},
		},
	})
	if err != nil {
		return "", err
	}
	if status < 200 || status >= 300 {
		return "", fmt.Errorf("gemini API error (%d)", status)
	}

	candidates, _ := reply["candidates"].([]any)
	if len(candidates) == 0 {
		return "", errors.New("gemini reply has no candidates")
	}
	candidate, _ := candidates[0].(map[string]any)
	content, _ := candidate["content"].(map[string]any)
	parts, _ := content["parts"].([]any)
	if len(parts) == 0 {
		return "", errors.New("gemini reply has no parts")
	}
	part, _ := parts[0].(map[string]any)
	text, _ := part["text"].(string)
	return text, nil
}
