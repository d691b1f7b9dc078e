package nodes

import (
	"context"
	"encoding/json"
	"time"

	"github.com/weftflow/weft/pkg/domain"
	"github.com/weftflow/weft/pkg/registry"
	"github.com/weftflow/weft/pkg/template"
)

// manualTrigger passes the trigger payload straight through.
func manualTrigger(ctx context.Context, input any, ec registry.ExecutionContext) (domain.NodeOutcome, error) {
	ec.Logger().Debug("manual trigger fired")
	return domain.Value(input), nil
}

// webhookTrigger emits the webhook payload recorded at enqueue time.
func webhookTrigger(ctx context.Context, input any, ec registry.ExecutionContext) (domain.NodeOutcome, error) {
	ec.Logger().Debug("webhook trigger fired")
	if payload := ec.TriggerData(); payload != nil {
		return domain.Value(payload), nil
	}
	return domain.Value(input), nil
}

// scheduleTrigger passes the payload through and stamps the fire time.
func scheduleTrigger(ctx context.Context, input any, ec registry.ExecutionContext) (domain.NodeOutcome, error) {
	out := copyMap(input)
	out["firedAt"] = time.Now().UTC().Format(time.RFC3339)
	return domain.Value(out), nil
}

type logConfig struct {
	Message string `mapstructure:"message"`
}

// logNode renders a templated message into the process log and passes its
// input through.
func logNode(ctx context.Context, input any, ec registry.ExecutionContext) (domain.NodeOutcome, error) {
	var cfg logConfig
	if err := decodeConfig(ec, &cfg); err != nil {
		return domain.NodeOutcome{}, err
	}
	if cfg.Message == "" {
		cfg.Message = "{{ $json }}"
	}

	var message string
	if cfg.Message == "{{ $json }}" {
		data, err := json.MarshalIndent(input, "", "  ")
		if err != nil {
			return domain.NodeOutcome{}, err
		}
		message = string(data)
	} else {
		message = template.Resolve(cfg.Message, templateContext(input, ec))
	}

	ec.Logger().Info("log node", "message", message)
	return domain.Value(input), nil
}
