// Package eval implements ports.PredicateEvaluator on top of expr-lang.
//
// Expressions are user-authored, so the engine matters: expr compiles to a
// small VM with no IO builtins, which keeps conditions sandboxed. The
// orchestrator only ever sees this through the port, so the engine can be
// swapped without touching it.
package eval

import (
	"fmt"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Evaluator compiles and runs boolean expressions against an input
// environment. Compiled programs are cached by source.
type Evaluator struct {
	mu    sync.RWMutex
	cache map[string]*vm.Program
}

// New creates an Evaluator.
func New() *Evaluator {
	return &Evaluator{cache: make(map[string]*vm.Program)}
}

// Evaluate runs expression with the given environment and coerces the result
// to a boolean. Undefined variables resolve to nil rather than failing the
// compile, matching how conditions behave over loosely-shaped node data.
func (e *Evaluator) Evaluate(expression string, env map[string]any) (bool, error) {
	program, err := e.compile(expression)
	if err != nil {
		return false, fmt.Errorf("compile condition: %w", err)
	}

	if env == nil {
		env = map[string]any{}
	}
	out, err := expr.Run(program, env)
	if err != nil {
		return false, fmt.Errorf("evaluate condition: %w", err)
	}
	return truthy(out), nil
}

func (e *Evaluator) compile(expression string) (*vm.Program, error) {
	e.mu.RLock()
	program, ok := e.cache[expression]
	e.mu.RUnlock()
	if ok {
		return program, nil
	}

	program, err := expr.Compile(expression, expr.AllowUndefinedVariables())
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	e.cache[expression] = program
	e.mu.Unlock()
	return program, nil
}

// truthy applies loose-typing rules so conditions like "name" or "count"
// work the way workflow authors expect.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case int:
		return t != 0
	case int64:
		return t != 0
	case uint64:
		return t != 0
	case float64:
		return t != 0
	case float32:
		return t != 0
	}
	return true
}
