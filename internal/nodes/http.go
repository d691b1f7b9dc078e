package nodes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/weftflow/weft/pkg/domain"
	"github.com/weftflow/weft/pkg/registry"
	"github.com/weftflow/weft/pkg/template"
)

// HTTPRequestNode performs one outbound HTTP call with templated URL,
// headers and body, optionally authenticated by a stored credential.
type HTTPRequestNode struct {
	Client *http.Client
}

type httpConfig struct {
	Method       string            `mapstructure:"method"`
	URL          string            `mapstructure:"url"`
	Headers      map[string]string `mapstructure:"headers"`
	Body         string            `mapstructure:"body"`
	TimeoutMs    int               `mapstructure:"timeoutMs"`
	CredentialID string            `mapstructure:"credentialId"`
}

func (n *HTTPRequestNode) Execute(ctx context.Context, input any, ec registry.ExecutionContext) (domain.NodeOutcome, error) {
	var cfg httpConfig
	if err := decodeConfig(ec, &cfg); err != nil {
		return domain.NodeOutcome{}, err
	}
	if cfg.URL == "" {
		return domain.NodeOutcome{}, errors.New("http-request: url is required")
	}
	if cfg.Method == "" {
		cfg.Method = http.MethodGet
	}
	if cfg.TimeoutMs <= 0 {
		cfg.TimeoutMs = 10000
	}

	tctx := templateContext(input, ec)
	url := template.Resolve(cfg.URL, tctx)

	headers := make(map[string]string, len(cfg.Headers))
	for k, v := range cfg.Headers {
		headers[k] = template.Resolve(v, tctx)
	}
	if cfg.CredentialID != "" {
		cred, err := ec.Credential(ctx, cfg.CredentialID)
		if err != nil {
			return domain.NodeOutcome{}, err
		}
		for k, v := range ec.AuthHeaders(cred) {
			headers[k] = v
		}
	}

	body := ""
	if cfg.Body != "" {
		body = template.Resolve(cfg.Body, tctx)
	}

	// Each call bounds its own deadline; the orchestrator imposes none.
	callCtx, cancel := context.WithTimeout(ctx, time.Duration(cfg.TimeoutMs)*time.Millisecond)
	defer cancel()

	status, statusText, respHeaders, data, err := doRequest(callCtx, n.Client, strings.ToUpper(cfg.Method), url, headers, body)
	if err != nil {
		return domain.NodeOutcome{}, fmt.Errorf("http-request failed: %w", err)
	}

	return domain.Value(map[string]any{
		"statusCode": status,
		"statusText": statusText,
		"headers":    respHeaders,
		"data":       data,
		"success":    status >= 200 && status < 300,
	}), nil
}

// doRequest executes one HTTP exchange and decodes JSON bodies when the
// response says so.
func doRequest(ctx context.Context, client *http.Client, method, url string, headers map[string]string, body string) (int, string, map[string]string, any, error) {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return 0, "", nil, nil, err
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return 0, "", nil, nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, "", nil, nil, err
	}

	respHeaders := make(map[string]string, len(resp.Header))
	for k := range resp.Header {
		respHeaders[k] = resp.Header.Get(k)
	}

	var data any
	if strings.Contains(resp.Header.Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(raw, &data); err != nil {
			data = string(raw)
		}
	} else {
		data = string(raw)
	}

	return resp.StatusCode, resp.Status, respHeaders, data, nil
}

// postJSON sends a JSON payload and decodes a JSON reply, for the hosted-API
// nodes.
func postJSON(ctx context.Context, client *http.Client, url string, headers map[string]string, payload any) (int, map[string]any, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, err
	}
	if headers == nil {
		headers = map[string]string{}
	}
	if _, ok := headers["Content-Type"]; !ok {
		headers["Content-Type"] = "application/json"
	}

	status, _, _, data, err := doRequest(ctx, client, http.MethodPost, url, headers, string(body))
	if err != nil {
		return 0, nil, err
	}
	m, _ := data.(map[string]any)
	return status, m, nil
}
