// Package cel provides a verdict.Evaluator backed by Google's cel-go
// expression engine. See https://github.com/google/cel-go for the CEL
// language specification.
//
// CEL evaluates against plain values: bind maps, numbers, strings and
// lists into the FactContext. Capability method calls from the dsl dialect
// have no CEL equivalent; use custom CEL functions or the dsl backend when
// rules must invoke operations on bound objects.
package cel

import (
	"fmt"

	celgo "github.com/google/cel-go/cel"

	"github.com/mfeller/verdict"
)

// Evaluator implements verdict.Evaluator with CEL programs.
type Evaluator struct {
	env *celgo.Env
}

// NewEvaluator creates a CEL-backed evaluator. Each variable name is
// declared as a dynamic type in the CEL environment; rule expressions may
// only reference declared names.
func NewEvaluator(variables ...string) (*Evaluator, error) {
	opts := make([]celgo.EnvOption, 0, len(variables))
	for _, name := range variables {
		opts = append(opts, celgo.Variable(name, celgo.DynType))
	}

	env, err := celgo.NewEnv(opts...)
	if err != nil {
		return nil, fmt.Errorf("creating CEL environment: %w", err)
	}
	return &Evaluator{env: env}, nil
}

// Compile parses and checks the expression, returning a runnable CEL
// program.
func (ev *Evaluator) Compile(expr string) (interface{}, error) {
	ast, issues := ev.env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, &verdict.ParseError{Msg: issues.Err().Error()}
	}

	prg, err := ev.env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("generating program: %w", err)
	}
	return prg, nil
}

// Evaluate runs the compiled program against the facts, compiling first
// if no program was provided.
func (ev *Evaluator) Evaluate(facts *verdict.FactContext, expr string, program interface{}) (interface{}, error) {
	prg, ok := program.(celgo.Program)
	if !ok {
		compiled, err := ev.Compile(expr)
		if err != nil {
			return nil, err
		}
		prg = compiled.(celgo.Program)
	}

	out, _, err := prg.Eval(facts.Values())
	if err != nil {
		// CEL reports unknown attributes and bad operand types at
		// evaluation time; surface them as a resolution failure so the
		// engine fails only the referencing rule.
		return nil, &verdict.ResolutionError{Name: err.Error()}
	}
	return out.Value(), nil
}
