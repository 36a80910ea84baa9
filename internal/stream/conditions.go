package stream

import (
	"context"
	"fmt"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	channerics "github.com/niceyeti/channerics/channels"

	"github.com/PMeeske/hypergrid/internal/domain"
)

// ConditionEvaluator compiles and caches boolean expressions evaluated
// against thought environments. Expressions see the variables
// `payload`, `origin`, `trace_id` and `metadata`.
type ConditionEvaluator struct {
	mu       sync.RWMutex
	compiled map[string]*vm.Program
}

// NewConditionEvaluator creates an evaluator with an empty cache.
func NewConditionEvaluator() *ConditionEvaluator {
	return &ConditionEvaluator{
		compiled: make(map[string]*vm.Program),
	}
}

// Compile validates a condition and caches the compiled program.
func (ce *ConditionEvaluator) Compile(condition string) error {
	_, err := ce.program(condition)
	return err
}

// Evaluate evaluates a condition against the given environment.
func (ce *ConditionEvaluator) Evaluate(condition string, env map[string]any) (bool, error) {
	program, err := ce.program(condition)
	if err != nil {
		return false, err
	}

	result, err := expr.Run(program, env)
	if err != nil {
		return false, domain.NewDomainError(
			domain.ErrCodeInvalidInput,
			fmt.Sprintf("condition %q failed to evaluate", condition),
			err,
		)
	}

	b, ok := result.(bool)
	if !ok {
		return false, domain.NewDomainError(
			domain.ErrCodeInvalidInput,
			fmt.Sprintf("condition %q did not return boolean, got %T", condition, result),
			nil,
		)
	}
	return b, nil
}

// EvaluateThought evaluates a condition against a thought environment.
func (ce *ConditionEvaluator) EvaluateThought(condition string, t domain.Thought[string]) (bool, error) {
	return ce.Evaluate(condition, ThoughtEnv(t))
}

func (ce *ConditionEvaluator) program(condition string) (*vm.Program, error) {
	if condition == "" {
		return nil, domain.NewDomainError(
			domain.ErrCodeInvalidInput,
			"condition cannot be empty",
			nil,
		)
	}

	ce.mu.RLock()
	program, cached := ce.compiled[condition]
	ce.mu.RUnlock()
	if cached {
		return program, nil
	}

	program, err := expr.Compile(condition, expr.AsBool(), expr.AllowUndefinedVariables())
	if err != nil {
		return nil, domain.NewDomainError(
			domain.ErrCodeInvalidInput,
			fmt.Sprintf("condition %q failed to compile", condition),
			err,
		)
	}

	ce.mu.Lock()
	ce.compiled[condition] = program
	ce.mu.Unlock()
	return program, nil
}

// ThoughtEnv builds the expression environment of a thought.
func ThoughtEnv(t domain.Thought[string]) map[string]any {
	metadata := t.Metadata()
	if metadata == nil {
		metadata = map[string]any{}
	}
	return map[string]any{
		"payload":  t.Payload(),
		"origin":   t.Origin().String(),
		"trace_id": t.TraceID(),
		"metadata": metadata,
	}
}

// FilterExpr keeps the thoughts satisfying an expression condition.
// The condition is compiled before the stream starts; evaluation errors
// terminate the stream.
func FilterExpr(ctx context.Context, in *Stream[string], ce *ConditionEvaluator, condition string) (*Stream[string], error) {
	if err := ce.Compile(condition); err != nil {
		return nil, err
	}

	out := Generate(ctx, func(emit func(domain.Thought[string]) bool) error {
		for t := range channerics.OrDone(ctx.Done(), in.C()) {
			ok, err := ce.EvaluateThought(condition, t)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
			if !emit(t) {
				return nil
			}
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return in.Err()
	})
	return out, nil
}
