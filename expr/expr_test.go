package expr_test

import (
	"context"
	"errors"
	"testing"

	"github.com/matryer/is"

	"github.com/mfeller/verdict"
	"github.com/mfeller/verdict/expr"
)

func exprFacts() *verdict.FactContext {
	return verdict.Facts().
		Bind("TotalPurchasesToDate", 6500.0).
		Bind("LoyaltyFactor", 5).
		Bind("Country", "US")
}

func TestCompileAndEvaluate(t *testing.T) {
	is := is.New(t)

	ev := expr.NewEvaluator()

	prog, err := ev.Compile("TotalPurchasesToDate >= 5000 && LoyaltyFactor >= 5")
	is.NoErr(err)

	v, err := ev.Evaluate(exprFacts(), "", prog)
	is.NoErr(err)
	is.Equal(v, true)

	// Without a compiled program the evaluator compiles on the fly.
	v, err = ev.Evaluate(exprFacts(), `Country == "US"`, nil)
	is.NoErr(err)
	is.Equal(v, true)
}

func TestCompileErrorIsParseError(t *testing.T) {
	ev := expr.NewEvaluator()

	_, err := ev.Compile("1 +")
	var perr *verdict.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("want *verdict.ParseError, got %T: %v", err, err)
	}
}

func TestProgramCache(t *testing.T) {
	is := is.New(t)

	ev := expr.NewEvaluator()
	is.Equal(ev.CacheSize(), 0)

	first, err := ev.Compile("LoyaltyFactor >= 3")
	is.NoErr(err)
	is.Equal(ev.CacheSize(), 1)

	// Compiling the same text again returns the cached program.
	second, err := ev.Compile("LoyaltyFactor >= 3")
	is.NoErr(err)
	is.Equal(ev.CacheSize(), 1)
	is.Equal(first, second)

	_, err = ev.Compile("LoyaltyFactor >= 4")
	is.NoErr(err)
	is.Equal(ev.CacheSize(), 2)

	// Failed compiles are not cached.
	_, err = ev.Compile("1 +")
	is.True(err != nil)
	is.Equal(ev.CacheSize(), 2)
}

func TestUndefinedVariableFailsEvaluation(t *testing.T) {
	is := is.New(t)

	ev := expr.NewEvaluator()

	// AllowUndefinedVariables defers the failure to evaluation time.
	prog, err := ev.Compile("missing > 1")
	is.NoErr(err)

	_, err = ev.Evaluate(exprFacts(), "", prog)
	var rerr *verdict.ResolutionError
	is.True(errors.As(err, &rerr))
}

func TestEngineWithExprBackend(t *testing.T) {
	is := is.New(t)

	e := verdict.NewEngine(expr.NewEvaluator())
	is.NoErr(e.AddWorkflow(verdict.Workflow{
		Name: "Discount",
		Rules: []verdict.Rule{
			{
				Name:           "Vip",
				Expr:           "TotalPurchasesToDate >= 5000 && LoyaltyFactor >= 5",
				SuccessMessage: "vip",
				ErrorMessage:   "not vip",
			},
			{
				Name:         "BigSpender",
				Expr:         "TotalPurchasesToDate >= 10000",
				ErrorMessage: "keep shopping",
			},
		},
	}))

	results, err := e.Evaluate(context.Background(), "Discount", exprFacts())
	is.NoErr(err)
	is.Equal(len(results), 2)
	is.True(results[0].Passed)
	is.Equal(results[0].Message, "vip")
	is.True(!results[1].Passed)
	is.Equal(results[1].Message, "keep shopping")
}
