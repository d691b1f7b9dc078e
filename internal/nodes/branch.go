package nodes

import (
	"context"

	"github.com/weftflow/weft/pkg/domain"
	"github.com/weftflow/weft/pkg/ports"
	"github.com/weftflow/weft/pkg/registry"
)

// BranchNode evaluates a boolean condition against its input object and
// routes downstream via the "true" or "false" handle. An evaluation error is
// recoverable: it conservatively resolves to the false branch instead of
// failing the node.
type BranchNode struct {
	Evaluator ports.PredicateEvaluator
}

type branchConfig struct {
	Condition string `mapstructure:"condition"`
}

func (n *BranchNode) Execute(ctx context.Context, input any, ec registry.ExecutionContext) (domain.NodeOutcome, error) {
	var cfg branchConfig
	if err := decodeConfig(ec, &cfg); err != nil {
		return domain.NodeOutcome{}, err
	}

	if cfg.Condition == "" {
		ec.Logger().Warn("branch node has no condition, passing through")
		return domain.Value(input), nil
	}

	result, err := n.Evaluator.Evaluate(cfg.Condition, asMap(input))
	if err != nil {
		ec.Logger().Warn("condition evaluation failed, taking false branch",
			"condition", cfg.Condition, "error", err)
		result = false
	}

	handle := "false"
	if result {
		handle = "true"
	}
	return domain.Branch(handle, input), nil
}
