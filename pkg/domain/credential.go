package domain

// CredentialType identifies the auth scheme a credential carries.
type CredentialType string

const (
	CredentialTelegramBot   CredentialType = "TELEGRAM_BOT"
	CredentialResendEmail   CredentialType = "RESEND_EMAIL"
	CredentialGeminiAPI     CredentialType = "GEMINI_API"
	CredentialOpenAIAPI     CredentialType = "OPENAI_API"
	CredentialHTTPBasicAuth CredentialType = "HTTP_BASIC_AUTH"
	CredentialAPIKey        CredentialType = "API_KEY"
	CredentialOAuth2        CredentialType = "OAUTH2"
	CredentialWebhookURL    CredentialType = "WEBHOOK_URL"
	CredentialCustom        CredentialType = "CUSTOM"
)

// Credential is the decrypted view of a stored credential. Encryption at rest
// belongs to the vault collaborator; the engine only ever sees this shape.
type Credential struct {
	ID   string         `json:"id"`
	Name string         `json:"name"`
	Type CredentialType `json:"type"`
	Data map[string]any `json:"data"`
}

// String returns a field of Data as a string, or "".
func (c *Credential) String(key string) string {
	if c == nil || c.Data == nil {
		return ""
	}
	s, _ := c.Data[key].(string)
	return s
}
