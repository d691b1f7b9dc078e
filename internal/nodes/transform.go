package nodes

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/weftflow/weft/pkg/domain"
	"github.com/weftflow/weft/pkg/registry"
	"github.com/weftflow/weft/pkg/template"
)

type transformOp struct {
	Type     string `mapstructure:"type"` // set | remove | rename | math | format
	Field    string `mapstructure:"field"`
	NewField string `mapstructure:"newField"`
	Value    string `mapstructure:"value"`

	// math
	Operation string  `mapstructure:"operation"` // add | subtract | multiply | divide
	Operand   float64 `mapstructure:"operand"`

	// format
	FormatType string `mapstructure:"formatType"` // date | uppercase | lowercase
}

type transformConfig struct {
	Transformations []transformOp `mapstructure:"transformations"`
}

// transformNode applies a configured list of shape operations to its input
// object, in order.
func transformNode(ctx context.Context, input any, ec registry.ExecutionContext) (domain.NodeOutcome, error) {
	var cfg transformConfig
	if err := decodeConfig(ec, &cfg); err != nil {
		return domain.NodeOutcome{}, err
	}

	result := copyMap(input)

	for _, op := range cfg.Transformations {
		switch op.Type {
		case "set":
			field := op.NewField
			if field == "" {
				field = op.Field
			}
			result[field] = template.Resolve(op.Value, templateContext(result, ec))

		case "remove":
			delete(result, op.Field)

		case "rename":
			if v, ok := result[op.Field]; ok {
				result[op.NewField] = v
				delete(result, op.Field)
			}

		case "math":
			current := toFloat(result[op.Field])
			switch op.Operation {
			case "add":
				result[op.Field] = current + op.Operand
			case "subtract":
				result[op.Field] = current - op.Operand
			case "multiply":
				result[op.Field] = current * op.Operand
			case "divide":
				if op.Operand == 0 {
					result[op.Field] = float64(0)
				} else {
					result[op.Field] = current / op.Operand
				}
			}

		case "format":
			switch op.FormatType {
			case "date":
				if s, ok := result[op.Field].(string); ok {
					if t, err := time.Parse(time.RFC3339, s); err == nil {
						result[op.Field] = t.Format("2006-01-02")
					}
				}
			case "uppercase":
				result[op.Field] = strings.ToUpper(toString(result[op.Field]))
			case "lowercase":
				result[op.Field] = strings.ToLower(toString(result[op.Field]))
			}
		}
	}

	return domain.Value(result), nil
}

func toFloat(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case float32:
		return float64(t)
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case string:
		f, _ := strconv.ParseFloat(t, 64)
		return f
	}
	return 0
}

func toString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	}
	return ""
}
