package verdict

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

// Engine holds a read-only registry of workflows and evaluates them
// against caller-supplied facts. The registry and the compiled-program
// cache tolerate concurrent readers, so independent Evaluate calls may run
// concurrently provided each call owns its FactContext.
type Engine struct {
	// The Evaluator used to compile and evaluate rule expressions.
	evaluator Evaluator

	mu        sync.RWMutex
	workflows map[string]Workflow

	// programs caches compiled expressions, keyed by expression text.
	// Compiled output is a pure function of the text, so population is
	// idempotent: concurrent first-use compiles of the same expression may
	// redundantly compile, and the last writer wins. Keying by text also
	// means replacing a workflow can never serve a stale program for a
	// renamed or rewritten rule.
	progMu   sync.RWMutex
	programs map[string]interface{}

	opts EngineOptions
}

// NewEngine initializes an engine that evaluates rule expressions with the
// given evaluator.
func NewEngine(evaluator Evaluator, opts ...EngineOption) *Engine {
	e := &Engine{
		evaluator: evaluator,
		workflows: map[string]Workflow{},
		programs:  map[string]interface{}{},
	}
	applyEngineOptions(&e.opts, opts...)
	return e
}

// See the functional definitions below for the meaning.
type EngineOptions struct {
	LazyCompile bool
}

type EngineOption func(o *EngineOptions)

// Given a list of EngineOption functions, apply their effect
// on the EngineOptions struct.
func applyEngineOptions(o *EngineOptions, opts ...EngineOption) {
	for _, opt := range opts {
		opt(o)
	}
}

// LazyCompile defers compilation of rule expressions until a rule is first
// evaluated, rather than compiling when the workflow is added. Malformed
// expressions are then reported as failed rule results instead of
// registration errors.
// Default: off
func LazyCompile(b bool) EngineOption {
	return func(o *EngineOptions) {
		o.LazyCompile = b
	}
}

// AddWorkflow validates and registers the workflows, compiling every rule
// expression. A rule whose expression does not compile aborts registration
// of the workflow it belongs to; workflows registered earlier in the call
// are kept. An existing workflow with the same name is replaced.
func (e *Engine) AddWorkflow(ws ...Workflow) error {
	for _, w := range ws {
		if err := w.Validate(); err != nil {
			return err
		}

		if !e.opts.LazyCompile {
			for _, r := range w.Rules {
				prog, err := e.evaluator.Compile(r.Expr)
				if err != nil {
					return fmt.Errorf("workflow %s: compiling rule %s: %w", w.Name, r.Name, err)
				}
				e.storeProgram(r.Expr, prog)
			}
		}

		e.mu.Lock()
		e.workflows[w.Name] = w
		e.mu.Unlock()
	}
	return nil
}

// Workflow returns the workflow with the name.
func (e *Engine) Workflow(name string) (Workflow, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	w, ok := e.workflows[name]
	return w, ok
}

// WorkflowNames returns the names of the registered workflows, sorted.
func (e *Engine) WorkflowNames() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	names := make([]string, 0, len(e.workflows))
	for name := range e.workflows {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// WorkflowCount is the number of workflows in the engine.
func (e *Engine) WorkflowCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.workflows)
}

// Evaluate evaluates every rule of the named workflow against the facts,
// returning one result per rule in workflow definition order. Rules are
// evaluated sequentially; a rule that fails to evaluate (unresolved
// identifier, incompatible operands, bad capability call) produces a
// failed result and does not abort the remaining rules.
//
// An error is returned only if the workflow does not exist or the context
// is canceled; per-rule errors are reported in the results.
func (e *Engine) Evaluate(ctx context.Context, workflowName string, facts *FactContext) (Results, error) {
	e.mu.RLock()
	w, ok := e.workflows[workflowName]
	e.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrWorkflowNotFound, workflowName)
	}

	if facts == nil {
		facts = Facts()
	}

	results := make(Results, 0, len(w.Rules))
	for _, r := range w.Rules {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		results = append(results, e.evalRule(w, r, facts))
	}
	return results, nil
}

// EvaluateRule evaluates a single rule of the named workflow.
func (e *Engine) EvaluateRule(ctx context.Context, workflowName, ruleName string, facts *FactContext) (RuleResult, error) {
	e.mu.RLock()
	w, ok := e.workflows[workflowName]
	e.mu.RUnlock()
	if !ok {
		return RuleResult{}, fmt.Errorf("%w: %s", ErrWorkflowNotFound, workflowName)
	}

	r, ok := w.Rule(ruleName)
	if !ok {
		return RuleResult{}, fmt.Errorf("%w: %s/%s", ErrRuleNotFound, workflowName, ruleName)
	}

	if err := ctx.Err(); err != nil {
		return RuleResult{}, err
	}

	if facts == nil {
		facts = Facts()
	}
	return e.evalRule(w, r, facts), nil
}

// evalRule evaluates one rule, converting any evaluation error into a
// failed result.
func (e *Engine) evalRule(w Workflow, r Rule, facts *FactContext) RuleResult {
	start := time.Now()
	res := RuleResult{
		WorkflowName: w.Name,
		RuleName:     r.Name,
	}

	prog, err := e.program(r.Expr)
	if err != nil {
		res.Err = err
		res.Message = fmt.Sprintf("evaluation failed: %v", err)
		res.Duration = time.Since(start)
		return res
	}

	value, err := e.evaluator.Evaluate(facts, r.Expr, prog)
	res.Duration = time.Since(start)
	if err != nil {
		res.Err = err
		res.Message = fmt.Sprintf("evaluation failed: %v", err)
		return res
	}

	res.Value = value
	pass, ok := value.(bool)
	if !ok {
		res.Err = &TypeError{Msg: fmt.Sprintf("expression did not produce a boolean (got %T)", value)}
		res.Message = fmt.Sprintf("evaluation failed: %v", res.Err)
		return res
	}

	res.Passed = pass
	if pass {
		res.Message = r.SuccessMessage
	} else {
		res.Message = r.ErrorMessage
	}
	return res
}

// program returns the compiled program for the expression, compiling on
// first use if it is not already cached.
func (e *Engine) program(expr string) (interface{}, error) {
	e.progMu.RLock()
	prog, ok := e.programs[expr]
	e.progMu.RUnlock()
	if ok {
		return prog, nil
	}

	prog, err := e.evaluator.Compile(expr)
	if err != nil {
		return nil, err
	}
	e.storeProgram(expr, prog)
	return prog, nil
}

func (e *Engine) storeProgram(expr string, prog interface{}) {
	e.progMu.Lock()
	e.programs[expr] = prog
	e.progMu.Unlock()
}
