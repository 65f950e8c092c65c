package dsl

import (
	"fmt"
	"strings"
	"time"

	"github.com/mfeller/verdict"
)

// Eval walks the tree against the facts and returns the value the root
// node produces. Evaluation is single-threaded per call; a Tree may be
// shared by concurrent calls because it is never mutated.
func (t *Tree) Eval(facts *verdict.FactContext) (interface{}, error) {
	return eval(t.Root, facts)
}

func eval(n Node, facts *verdict.FactContext) (interface{}, error) {
	switch node := n.(type) {
	case Literal:
		return node.Value, nil
	case Path:
		return evalPath(node, facts)
	case Call:
		return evalCall(node, facts)
	case Unary:
		return evalUnary(node, facts)
	case Binary:
		return evalBinary(node, facts)
	}
	return nil, fmt.Errorf("unknown node type %T", n)
}

func evalPath(p Path, facts *verdict.FactContext) (interface{}, error) {
	value, ok := facts.Resolve(p.Root)
	if !ok {
		return nil, &verdict.ResolutionError{Name: p.Root}
	}

	for i, member := range p.Members {
		next, err := verdict.Member(value, member)
		if err != nil {
			// Report the full dotted path up to the member that failed.
			return nil, &verdict.ResolutionError{
				Name: p.Root + "." + strings.Join(p.Members[:i+1], "."),
			}
		}
		value = next
	}
	return value, nil
}

func evalCall(c Call, facts *verdict.FactContext) (interface{}, error) {
	args := make([]interface{}, len(c.Args))
	for i, a := range c.Args {
		v, err := eval(a, facts)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	if c.Receiver == "" {
		bound, ok := facts.Resolve(c.Method)
		if !ok {
			return nil, &verdict.ResolutionError{Name: c.Method}
		}
		fn, ok := bound.(verdict.Func)
		if !ok {
			return nil, &verdict.CallError{
				Method: c.Method,
				Msg:    fmt.Sprintf("bound value of type %T is not callable", bound),
			}
		}
		out, err := fn(args...)
		if err != nil {
			return nil, callError("", c.Method, err)
		}
		return out, nil
	}

	bound, ok := facts.Resolve(c.Receiver)
	if !ok {
		return nil, &verdict.ResolutionError{Name: c.Receiver}
	}
	caller, ok := bound.(verdict.Caller)
	if !ok {
		return nil, &verdict.CallError{
			Receiver: c.Receiver,
			Method:   c.Method,
			Msg:      fmt.Sprintf("bound value of type %T exposes no operations", bound),
		}
	}
	out, err := caller.Call(c.Method, args)
	if err != nil {
		return nil, callError(c.Receiver, c.Method, err)
	}
	return out, nil
}

// callError preserves typed capability errors and wraps anything else.
func callError(receiver, method string, err error) error {
	if ce, ok := err.(*verdict.CallError); ok {
		if ce.Receiver == "" {
			ce.Receiver = receiver
		}
		return ce
	}
	return &verdict.CallError{Receiver: receiver, Method: method, Msg: err.Error()}
}

func evalUnary(u Unary, facts *verdict.FactContext) (interface{}, error) {
	v, err := eval(u.Operand, facts)
	if err != nil {
		return nil, err
	}
	b, ok := v.(bool)
	if !ok {
		return nil, &verdict.TypeError{Op: u.Op, Msg: fmt.Sprintf("operand is not a boolean (got %T)", v)}
	}
	return !b, nil
}

func evalBinary(b Binary, facts *verdict.FactContext) (interface{}, error) {
	switch b.Op {
	case "AND", "OR":
		return evalLogical(b, facts)
	}

	left, err := eval(b.Left, facts)
	if err != nil {
		return nil, err
	}
	right, err := eval(b.Right, facts)
	if err != nil {
		return nil, err
	}
	return compare(b.Op, left, right)
}

// evalLogical short-circuits: if the left operand already determines the
// result, the right operand is never evaluated, so skipped capability
// calls cannot produce side effects.
func evalLogical(b Binary, facts *verdict.FactContext) (interface{}, error) {
	left, err := eval(b.Left, facts)
	if err != nil {
		return nil, err
	}
	lb, ok := left.(bool)
	if !ok {
		return nil, &verdict.TypeError{Op: b.Op, Msg: fmt.Sprintf("left operand is not a boolean (got %T)", left)}
	}

	if b.Op == "AND" && !lb {
		return false, nil
	}
	if b.Op == "OR" && lb {
		return true, nil
	}

	right, err := eval(b.Right, facts)
	if err != nil {
		return nil, err
	}
	rb, ok := right.(bool)
	if !ok {
		return nil, &verdict.TypeError{Op: b.Op, Msg: fmt.Sprintf("right operand is not a boolean (got %T)", right)}
	}
	return rb, nil
}

// compare applies a comparison operator using the native semantics for the
// operand kinds: numeric kinds compare as float64, strings compare
// lexicographically, booleans and timestamps support the operators that
// make sense for them. Mixing kinds is a TypeError, not false.
func compare(op string, left, right interface{}) (interface{}, error) {
	if ln, ok := toFloat(left); ok {
		rn, rok := toFloat(right)
		if !rok {
			return nil, typeMismatch(op, left, right)
		}
		switch op {
		case "==":
			return ln == rn, nil
		case "!=":
			return ln != rn, nil
		case ">=":
			return ln >= rn, nil
		case "<=":
			return ln <= rn, nil
		case ">":
			return ln > rn, nil
		case "<":
			return ln < rn, nil
		}
	}

	if ls, ok := left.(string); ok {
		rs, rok := right.(string)
		if !rok {
			return nil, typeMismatch(op, left, right)
		}
		switch op {
		case "==":
			return ls == rs, nil
		case "!=":
			return ls != rs, nil
		case ">=":
			return ls >= rs, nil
		case "<=":
			return ls <= rs, nil
		case ">":
			return ls > rs, nil
		case "<":
			return ls < rs, nil
		}
	}

	if lb, ok := left.(bool); ok {
		rb, rok := right.(bool)
		if !rok {
			return nil, typeMismatch(op, left, right)
		}
		switch op {
		case "==":
			return lb == rb, nil
		case "!=":
			return lb != rb, nil
		}
		return nil, &verdict.TypeError{Op: op, Msg: "booleans support == and != only"}
	}

	if lt, ok := left.(time.Time); ok {
		rt, rok := right.(time.Time)
		if !rok {
			return nil, typeMismatch(op, left, right)
		}
		switch op {
		case "==":
			return lt.Equal(rt), nil
		case "!=":
			return !lt.Equal(rt), nil
		case ">=":
			return !lt.Before(rt), nil
		case "<=":
			return !lt.After(rt), nil
		case ">":
			return lt.After(rt), nil
		case "<":
			return lt.Before(rt), nil
		}
	}

	return nil, &verdict.TypeError{Op: op, Msg: fmt.Sprintf("unsupported operand type %T", left)}
}

func typeMismatch(op string, left, right interface{}) error {
	return &verdict.TypeError{
		Op:  op,
		Msg: fmt.Sprintf("incompatible operand kinds %T and %T", left, right),
	}
}

// toFloat widens the numeric kinds a record field or capability may
// produce to float64 for comparison.
func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}
