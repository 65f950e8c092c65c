package verdict_test

import (
	"strings"
	"testing"

	"github.com/mfeller/verdict"
)

func TestWorkflowValidate(t *testing.T) {
	cases := []struct {
		name    string
		w       verdict.Workflow
		wantErr string
	}{
		{
			name: "valid",
			w: verdict.Workflow{
				Name:  "wf",
				Rules: []verdict.Rule{{Name: "a", Expr: "true"}, {Name: "b", Expr: "false"}},
			},
		},
		{
			name:    "missing workflow name",
			w:       verdict.Workflow{Rules: []verdict.Rule{{Name: "a", Expr: "true"}}},
			wantErr: "workflow name is required",
		},
		{
			name:    "missing rule name",
			w:       verdict.Workflow{Name: "wf", Rules: []verdict.Rule{{Expr: "true"}}},
			wantErr: "rule name is required",
		},
		{
			name: "duplicate rule name",
			w: verdict.Workflow{
				Name:  "wf",
				Rules: []verdict.Rule{{Name: "a", Expr: "true"}, {Name: "a", Expr: "false"}},
			},
			wantErr: "duplicate rule name",
		},
		{
			name:    "missing expression",
			w:       verdict.Workflow{Name: "wf", Rules: []verdict.Rule{{Name: "a"}}},
			wantErr: "expression is required",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.w.Validate()
			if c.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), c.wantErr) {
				t.Fatalf("want error containing %q, got %v", c.wantErr, err)
			}
		})
	}
}

func TestWorkflowRuleLookup(t *testing.T) {
	w := verdict.Workflow{
		Name:  "wf",
		Rules: []verdict.Rule{{Name: "a", Expr: "true"}, {Name: "b", Expr: "false"}},
	}

	r, ok := w.Rule("b")
	if !ok || r.Expr != "false" {
		t.Fatalf("want rule b, got %+v (ok=%v)", r, ok)
	}
	if _, ok := w.Rule("zzz"); ok {
		t.Fatal("found a rule that does not exist")
	}
}

func TestWorkflowString(t *testing.T) {
	w := verdict.Workflow{
		Name: "Discount",
		Rules: []verdict.Rule{
			{Name: "Vip", Expr: "x >= 5000", SuccessMessage: "vip", ErrorMessage: "not vip"},
		},
	}

	s := w.String()
	for _, want := range []string{"Discount", "Vip", "x >= 5000"} {
		if !strings.Contains(s, want) {
			t.Errorf("workflow table missing %q:\n%s", want, s)
		}
	}
}
