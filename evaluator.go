package verdict

// Evaluator is the interface implemented by types that can compile and
// evaluate expressions defined in the rules.
type Evaluator interface {
	// Compile pre-processes the expression, returning a compiled version.
	// The engine stores the compiled version, later providing it back to
	// the evaluator. Compilation requires no FactContext; it is a pure
	// function of the expression text.
	Compile(expr string) (interface{}, error)

	// Evaluate tests the expression against the facts. The program is the
	// value previously returned by Compile for the same expression; if it
	// is nil the evaluator must compile the expression itself.
	Evaluate(facts *FactContext, expr string, program interface{}) (interface{}, error)
}
