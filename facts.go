package verdict

import "fmt"

// A Record exposes named fields, including computed properties, to rule
// expressions via dotted member access (for example input1.LoyaltyFactor).
// Implementations typically switch on the field name; this keeps member
// lookup free of runtime reflection.
type Record interface {
	// Field returns the value of the named field and whether it exists.
	Field(name string) (interface{}, bool)
}

// A Caller exposes named operations to rule expressions (for example
// businessLogic.IsVipCustomer(p, l)). The evaluator never inspects the
// receiver; it only invokes operations by name.
type Caller interface {
	// Call invokes the named operation with the evaluated arguments.
	Call(method string, args []interface{}) (interface{}, error)
}

// Func is a bare callable that can be bound directly into a FactContext
// and invoked from an expression without a receiver, e.g. isWeekend().
type Func func(args ...interface{}) (interface{}, error)

// MethodMap is a name-to-function dispatch table satisfying Caller. It is
// the lightest way to bind a set of operations without declaring a type.
type MethodMap map[string]Func

// Call implements Caller.
func (m MethodMap) Call(method string, args []interface{}) (interface{}, error) {
	fn, ok := m[method]
	if !ok {
		return nil, &CallError{Method: method, Msg: "no such operation"}
	}
	return fn(args...)
}

// A FactContext is the set of named values and capability objects a rule
// expression may reference during evaluation. It is built by the caller,
// passed by reference into evaluation and discarded after. The engine only
// reads bound values; it never mutates them.
//
// A FactContext is not safe for concurrent modification. Concurrent
// evaluation calls must each own their own instance.
type FactContext struct {
	names  []string
	values map[string]interface{}
}

// Facts creates an empty FactContext.
func Facts() *FactContext {
	return &FactContext{
		values: map[string]interface{}{},
	}
}

// Bind adds or replaces a binding. Binding order is preserved for new
// names; re-binding an existing name keeps its original position.
// It returns the context to allow chained binds.
func (f *FactContext) Bind(name string, value interface{}) *FactContext {
	if _, ok := f.values[name]; !ok {
		f.names = append(f.names, name)
	}
	f.values[name] = value
	return f
}

// Resolve returns the value bound to the name.
func (f *FactContext) Resolve(name string) (interface{}, bool) {
	v, ok := f.values[name]
	return v, ok
}

// Names returns the bound names in binding order.
func (f *FactContext) Names() []string {
	out := make([]string, len(f.names))
	copy(out, f.names)
	return out
}

// Values returns a shallow copy of the bindings as a plain map. Backends
// that evaluate against map data (cel, expr) use this form.
func (f *FactContext) Values() map[string]interface{} {
	out := make(map[string]interface{}, len(f.values))
	for k, v := range f.values {
		out[k] = v
	}
	return out
}

// Len returns the number of bindings.
func (f *FactContext) Len() int {
	return len(f.names)
}

// Member reads one step of a dotted member path from a resolved value.
// Records answer through their Field method; map values are indexed by
// key. Anything else has no members.
func Member(value interface{}, name string) (interface{}, error) {
	switch v := value.(type) {
	case Record:
		if out, ok := v.Field(name); ok {
			return out, nil
		}
	case map[string]interface{}:
		if out, ok := v[name]; ok {
			return out, nil
		}
	default:
		return nil, &ResolutionError{Name: fmt.Sprintf("%s (value of type %T has no members)", name, value)}
	}
	return nil, &ResolutionError{Name: name}
}
