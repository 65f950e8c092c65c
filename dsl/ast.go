package dsl

import "strings"

// A Node is one typed node of a compiled expression tree. Trees are
// immutable once built and safe to share across evaluation calls.
type Node interface {
	isNode()
}

// Literal is a boolean, numeric (float64) or string constant.
type Literal struct {
	Value interface{}
}

// Path is an identifier with optional dotted member access, e.g.
// input1.TotalPurchasesToDate. The root identifier is resolved against the
// FactContext; each member is then read in turn.
type Path struct {
	Root    string
	Members []string
}

// Call invokes a named operation: either a method on a bound capability
// object (Receiver set) or a bare callable bound directly to a name
// (Receiver empty). Arguments are evaluated left to right before the call.
type Call struct {
	Receiver string
	Method   string
	Args     []Node
}

// Unary is logical negation.
type Unary struct {
	Op      string // "NOT"
	Operand Node
}

// Binary is a comparison or a short-circuiting logical combination.
type Binary struct {
	Op    string // "AND", "OR", "==", "!=", ">=", "<=", ">", "<"
	Left  Node
	Right Node
}

func (Literal) isNode() {}
func (Path) isNode()    {}
func (Call) isNode()    {}
func (Unary) isNode()   {}
func (Binary) isNode()  {}

// A Tree is a compiled expression: the parsed root node plus the source
// it was parsed from. Parsing is deterministic, so compiling the same
// source twice yields structurally equal trees.
type Tree struct {
	Root   Node
	Source string
}

// String returns the source the tree was compiled from.
func (t *Tree) String() string {
	return t.Source
}

func (p Path) String() string {
	if len(p.Members) == 0 {
		return p.Root
	}
	return p.Root + "." + strings.Join(p.Members, ".")
}
