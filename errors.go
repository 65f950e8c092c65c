package verdict

import (
	"errors"
	"fmt"
)

var (
	// ErrWorkflowNotFound is returned by Evaluate when the named workflow
	// has not been added to the engine.
	ErrWorkflowNotFound = errors.New("workflow not found")

	// ErrRuleNotFound is returned by EvaluateRule when the workflow exists
	// but has no rule with the given name.
	ErrRuleNotFound = errors.New("rule not found")
)

// ParseError reports a rule expression that is outside the supported
// grammar. It is detected at compile time and aborts registration of the
// workflow the rule belongs to.
type ParseError struct {
	// Byte offset of the offending token in the expression source.
	Pos int

	// Human-readable reason.
	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at position %d: %s", e.Pos, e.Msg)
}

// ResolutionError reports an identifier or member that could not be found
// in the FactContext supplied at evaluation time. It fails the referencing
// rule only; sibling rules in the workflow still evaluate.
type ResolutionError struct {
	// The identifier or dotted member that failed to resolve.
	Name string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("cannot resolve %q", e.Name)
}

// TypeError reports an operator applied to incompatible value kinds, or a
// rule expression that did not produce a boolean.
type TypeError struct {
	Op  string
	Msg string
}

func (e *TypeError) Error() string {
	if e.Op == "" {
		return e.Msg
	}
	return fmt.Sprintf("operator %s: %s", e.Op, e.Msg)
}

// CallError reports an invocation of a capability operation that does not
// exist, or that was called with the wrong number or kinds of arguments.
type CallError struct {
	Receiver string
	Method   string
	Msg      string
}

func (e *CallError) Error() string {
	name := e.Method
	if e.Receiver != "" {
		name = e.Receiver + "." + e.Method
	}
	return fmt.Sprintf("calling %s: %s", name, e.Msg)
}
