// Package dsl implements the default rule expression language for the
// verdict engine: a small, deterministic boolean/comparison dialect with
// member access on bound records and method calls on bound capability
// objects.
//
// Grammar, in order of increasing precedence:
//
//	or    = and { ("OR" | "||") and }
//	and   = cmp { ("AND" | "&&") cmp }
//	cmp   = unary [ ("==" | "!=" | ">=" | "<=" | ">" | "<") unary ]
//	unary = ("NOT" | "!") unary | primary
//	primary = number | string | boolean | "(" or ")" | path | call
//	path  = ident { "." ident }
//	call  = [ ident "." ] ident "(" [ or { "," or } ] ")"
//
// Keywords (AND, OR, NOT, TRUE, FALSE) are case-insensitive. Identifiers
// consist of Unicode letters, digits and underscores and start with a
// letter or underscore. String literals are double-quoted; numeric
// literals use standard decimal syntax. AND and OR short-circuit: if the left operand determines the
// result, the right operand is never evaluated.
//
// Parsing is purely structural. Identifiers, members and methods are
// resolved only at evaluation time, against the FactContext supplied with
// each call, so the compiler never validates that a method exists.
package dsl

import "github.com/mfeller/verdict"

// Evaluator implements verdict.Evaluator for the dsl dialect.
type Evaluator struct{}

// NewEvaluator returns the dialect's evaluator. It is stateless and safe
// for concurrent use.
func NewEvaluator() *Evaluator {
	return &Evaluator{}
}

// Compile parses the expression into an immutable tree.
func (ev *Evaluator) Compile(expr string) (interface{}, error) {
	t, err := Parse(expr)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// Evaluate walks the compiled tree against the facts, parsing first if no
// compiled program was provided.
func (ev *Evaluator) Evaluate(facts *verdict.FactContext, expr string, program interface{}) (interface{}, error) {
	t, ok := program.(*Tree)
	if !ok {
		var err error
		t, err = Parse(expr)
		if err != nil {
			return nil, err
		}
	}
	return t.Eval(facts)
}
