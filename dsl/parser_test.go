package dsl

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/mfeller/verdict"
)

func TestParseTrees(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want Node
	}{
		{
			name: "number literal",
			src:  "42",
			want: Literal{Value: 42.0},
		},
		{
			name: "decimal literal",
			src:  "4999.99",
			want: Literal{Value: 4999.99},
		},
		{
			name: "string literal",
			src:  `"Gold"`,
			want: Literal{Value: "Gold"},
		},
		{
			name: "booleans are case-insensitive",
			src:  "True AND false",
			want: Binary{Op: "AND", Left: Literal{Value: true}, Right: Literal{Value: false}},
		},
		{
			name: "identifier path",
			src:  "input1.TotalPurchasesToDate",
			want: Path{Root: "input1", Members: []string{"TotalPurchasesToDate"}},
		},
		{
			name: "bare identifier",
			src:  "flag",
			want: Path{Root: "flag"},
		},
		{
			name: "comparison",
			src:  "input1.LoyaltyFactor >= 3",
			want: Binary{
				Op:    ">=",
				Left:  Path{Root: "input1", Members: []string{"LoyaltyFactor"}},
				Right: Literal{Value: 3.0},
			},
		},
		{
			name: "method call with path arguments",
			src:  "businessLogic.IsVipCustomer(input1.TotalPurchasesToDate, input1.LoyaltyFactor)",
			want: Call{
				Receiver: "businessLogic",
				Method:   "IsVipCustomer",
				Args: []Node{
					Path{Root: "input1", Members: []string{"TotalPurchasesToDate"}},
					Path{Root: "input1", Members: []string{"LoyaltyFactor"}},
				},
			},
		},
		{
			name: "bare call",
			src:  "isWeekend()",
			want: Call{Method: "isWeekend"},
		},
		{
			name: "AND binds tighter than OR",
			src:  "a OR b AND c",
			want: Binary{
				Op:   "OR",
				Left: Path{Root: "a"},
				Right: Binary{
					Op:    "AND",
					Left:  Path{Root: "b"},
					Right: Path{Root: "c"},
				},
			},
		},
		{
			name: "comparison binds tighter than AND",
			src:  "x >= 1 AND y < 2",
			want: Binary{
				Op:    "AND",
				Left:  Binary{Op: ">=", Left: Path{Root: "x"}, Right: Literal{Value: 1.0}},
				Right: Binary{Op: "<", Left: Path{Root: "y"}, Right: Literal{Value: 2.0}},
			},
		},
		{
			name: "parentheses override precedence",
			src:  "(a OR b) AND c",
			want: Binary{
				Op:    "AND",
				Left:  Binary{Op: "OR", Left: Path{Root: "a"}, Right: Path{Root: "b"}},
				Right: Path{Root: "c"},
			},
		},
		{
			name: "negation",
			src:  "NOT (tier == \"Bronze\")",
			want: Unary{
				Op: "NOT",
				Operand: Binary{
					Op:    "==",
					Left:  Path{Root: "tier"},
					Right: Literal{Value: "Bronze"},
				},
			},
		},
		{
			name: "non-ASCII identifiers",
			src:  "café.Größe >= 3",
			want: Binary{
				Op:    ">=",
				Left:  Path{Root: "café", Members: []string{"Größe"}},
				Right: Literal{Value: 3.0},
			},
		},
		{
			name: "symbolic operators",
			src:  "!a && b || c != 1",
			want: Binary{
				Op: "OR",
				Left: Binary{
					Op:    "AND",
					Left:  Unary{Op: "NOT", Operand: Path{Root: "a"}},
					Right: Path{Root: "b"},
				},
				Right: Binary{Op: "!=", Left: Path{Root: "c"}, Right: Literal{Value: 1.0}},
			},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			tree, err := Parse(c.src)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(c.want, tree.Root); diff != "" {
				t.Errorf("tree mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// Compiling the same string twice yields structurally equal trees.
func TestParseIsDeterministic(t *testing.T) {
	src := `businessLogic.IsWeekend() AND input1.LoyaltyFactor >= 3 OR NOT (x == "a")`

	first, err := Parse(src)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Parse(src)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("parse is not deterministic (-first +second):\n%s", diff)
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name    string
		src     string
		wantMsg string
		wantPos int
	}{
		{name: "empty", src: "", wantMsg: "expected a value", wantPos: 0},
		{name: "trailing tokens", src: "a b", wantMsg: "after expression", wantPos: 2},
		{name: "missing operand", src: "a AND", wantMsg: "expected a value"},
		{name: "unterminated string", src: `x == "Gold`, wantMsg: "unterminated string", wantPos: 5},
		{name: "unbalanced paren", src: "(a OR b", wantMsg: "expected )"},
		{name: "bad member", src: "a.1", wantMsg: "member name"},
		{name: "nested receiver", src: "a.b.C(1)", wantMsg: "single receiver identifier"},
		{name: "unexpected character", src: "a # b", wantMsg: "unexpected character", wantPos: 2},
		{name: "unexpected multi-byte character", src: "a £ b", wantMsg: "unexpected character '£'", wantPos: 2},
		{name: "dangling comma", src: "f(1,)", wantMsg: "expected a value"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Parse(c.src)
			if err == nil {
				t.Fatalf("want parse error for %q", c.src)
			}

			var perr *verdict.ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("want *verdict.ParseError, got %T: %v", err, err)
			}
			if !strings.Contains(perr.Msg, c.wantMsg) {
				t.Errorf("message %q does not contain %q", perr.Msg, c.wantMsg)
			}
			if c.wantPos != 0 && perr.Pos != c.wantPos {
				t.Errorf("want position %d, got %d", c.wantPos, perr.Pos)
			}
		})
	}
}

func TestTreeRetainsSource(t *testing.T) {
	src := "a AND b"
	tree, err := Parse(src)
	if err != nil {
		t.Fatal(err)
	}
	if tree.String() != src {
		t.Errorf("want source %q, got %q", src, tree.String())
	}
}
