// Package nodes contains the builtin node implementations: trigger
// passthroughs, the logging sink, the conditional branch, outbound HTTP and
// messaging senders, data-shape transforms, a delay unit and AI-completion
// callers.
package nodes

import (
	"fmt"
	"net/http"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/weftflow/weft/pkg/ports"
	"github.com/weftflow/weft/pkg/registry"
	"github.com/weftflow/weft/pkg/template"
)

// Type keys as the editor stores them.
const (
	TypeManual    = "manual"
	TypeWebhook   = "webhook"
	TypeSchedule  = "schedule"
	TypeLog       = "log"
	TypeIf        = "if"
	TypeHTTP      = "http-request"
	TypeTelegram  = "telegram-send-message"
	TypeEmail     = "email"
	TypeTransform = "data-transform"
	TypeDelay     = "delay"
	TypeAI        = "ai-generate"
)

// RegisterBuiltins wires every builtin node type into a registry. The
// evaluator backs the IF node; the client is shared by all outbound calls.
func RegisterBuiltins(r *registry.Registry, evaluator ports.PredicateEvaluator, client *http.Client) {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	r.MustRegister(TypeManual, registry.Func(manualTrigger))
	r.MustRegister(TypeWebhook, registry.Func(webhookTrigger))
	r.MustRegister(TypeSchedule, registry.Func(scheduleTrigger))
	r.MustRegister(TypeLog, registry.Func(logNode))
	r.MustRegister(TypeIf, &BranchNode{Evaluator: evaluator})
	r.MustRegister(TypeHTTP, &HTTPRequestNode{Client: client})
	r.MustRegister(TypeTelegram, &TelegramNode{Client: client})
	r.MustRegister(TypeEmail, &EmailNode{Client: client})
	r.MustRegister(TypeTransform, registry.Func(transformNode))
	r.MustRegister(TypeDelay, registry.Func(delayNode))
	r.MustRegister(TypeAI, &AINode{Client: client})
}

// decodeConfig maps a node's opaque config into a typed struct. Weak typing
// tolerates the editor storing numbers for string fields and vice versa.
func decodeConfig(ec registry.ExecutionContext, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(ec.NodeConfig()); err != nil {
		return fmt.Errorf("decode node config: %w", err)
	}
	return nil
}

// templateContext builds the layered template context for one node call.
func templateContext(input any, ec registry.ExecutionContext) template.Context {
	return template.Context{
		Input:   input,
		Packet:  ec.DataPacket(),
		Trigger: ec.TriggerData(),
	}
}

// asMap views an input as an object, yielding an empty map for any other
// shape (the JS spread behavior node configs were written against).
func asMap(input any) map[string]any {
	if m, ok := input.(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

// copyMap shallow-copies an input object.
func copyMap(input any) map[string]any {
	src := asMap(input)
	out := make(map[string]any, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
