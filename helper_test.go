package verdict_test

import (
	"fmt"
	"strconv"
	"sync/atomic"

	"github.com/mfeller/verdict"
)

// mockEvaluator is used for engine tests. It understands a tiny fixed
// vocabulary and records how often it was asked to compile and evaluate.
//
//	"true" / "false"  evaluate to the corresponding boolean
//	"fortytwo"        evaluates to a non-boolean value
//	"parsefail"       fails to compile
//	"evalfail"        compiles, then fails to evaluate
type mockEvaluator struct {
	compiles  atomic.Int64
	evals     atomic.Int64
	lastFacts *verdict.FactContext
}

type mockProgram struct {
	expr string
}

func newMockEvaluator() *mockEvaluator {
	return &mockEvaluator{}
}

func (m *mockEvaluator) Compile(expr string) (interface{}, error) {
	m.compiles.Add(1)
	if expr == "parsefail" {
		return nil, &verdict.ParseError{Msg: "not in the mock vocabulary"}
	}
	return mockProgram{expr: expr}, nil
}

func (m *mockEvaluator) Evaluate(facts *verdict.FactContext, expr string, program interface{}) (interface{}, error) {
	m.evals.Add(1)
	m.lastFacts = facts

	prg, ok := program.(mockProgram)
	if !ok {
		return nil, fmt.Errorf("compiled program type assertion failed")
	}

	switch prg.expr {
	case "true", "false":
		return prg.expr == "true", nil
	case "fortytwo":
		return 42, nil
	case "evalfail":
		return nil, &verdict.ResolutionError{Name: "evalfail"}
	}
	return false, nil
}

// boolWorkflow builds a workflow whose rule expressions are the given
// booleans, with predictable rule names and messages.
func boolWorkflow(name string, exprs ...bool) verdict.Workflow {
	w := verdict.Workflow{Name: name}
	for i, b := range exprs {
		w.Rules = append(w.Rules, verdict.Rule{
			Name:           "r" + strconv.Itoa(i),
			Expr:           strconv.FormatBool(b),
			SuccessMessage: "ok " + strconv.Itoa(i),
			ErrorMessage:   "bad " + strconv.Itoa(i),
		})
	}
	return w
}
