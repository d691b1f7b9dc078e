package ports

// PredicateEvaluator evaluates a user-authored boolean expression against an
// input environment. It exists as a narrow port so the scripting engine can
// be swapped (and sandboxed) without touching the orchestrator or the branch
// node.
type PredicateEvaluator interface {
	Evaluate(expression string, env map[string]any) (bool, error)
}
