// Package expr provides a verdict.Evaluator backed by expr-lang/expr.
// Like the cel backend it evaluates against plain values; it keeps its own
// compiled-program cache so that ad-hoc evaluations without a pre-compiled
// program do not re-parse on every call.
package expr

import (
	"sync"

	exprlang "github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/mfeller/verdict"
)

// Evaluator implements verdict.Evaluator with expr programs.
type Evaluator struct {
	mu    sync.RWMutex
	cache map[string]*vm.Program
}

// NewEvaluator creates an expr-backed evaluator.
func NewEvaluator() *Evaluator {
	return &Evaluator{
		cache: map[string]*vm.Program{},
	}
}

// Compile compiles the expression, caching the program. Undefined
// variables are allowed at compile time; referencing one at evaluation
// time fails the referencing rule only.
func (ev *Evaluator) Compile(expr string) (interface{}, error) {
	ev.mu.RLock()
	prog, ok := ev.cache[expr]
	ev.mu.RUnlock()
	if ok {
		return prog, nil
	}

	prog, err := exprlang.Compile(expr, exprlang.AllowUndefinedVariables())
	if err != nil {
		return nil, &verdict.ParseError{Msg: err.Error()}
	}

	// Compiled output is a pure function of the expression text, so a
	// concurrent compile of the same text may overwrite this entry with an
	// equivalent program.
	ev.mu.Lock()
	ev.cache[expr] = prog
	ev.mu.Unlock()
	return prog, nil
}

// Evaluate runs the program against the facts, compiling first if no
// program was provided.
func (ev *Evaluator) Evaluate(facts *verdict.FactContext, expr string, program interface{}) (interface{}, error) {
	prog, ok := program.(*vm.Program)
	if !ok {
		compiled, err := ev.Compile(expr)
		if err != nil {
			return nil, err
		}
		prog = compiled.(*vm.Program)
	}

	out, err := exprlang.Run(prog, facts.Values())
	if err != nil {
		return nil, &verdict.ResolutionError{Name: err.Error()}
	}
	return out, nil
}

// CacheSize returns the number of cached programs.
func (ev *Evaluator) CacheSize() int {
	ev.mu.RLock()
	defer ev.mu.RUnlock()
	return len(ev.cache)
}
