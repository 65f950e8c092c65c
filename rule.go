package verdict

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// A Rule is a named boolean expression with attached success and error
// messages. Rules are immutable after they are added to an engine.
type Rule struct {
	// A rule identifier, unique within its workflow. (required)
	Name string `json:"name" yaml:"name"`

	// The expression to evaluate. (required)
	// The expression language is determined by the engine's Evaluator.
	Expr string `json:"expression" yaml:"expression"`

	// Message attached to the result when the rule passes.
	SuccessMessage string `json:"success_message" yaml:"success_message"`

	// Message attached to the result when the rule fails.
	ErrorMessage string `json:"error_message" yaml:"error_message"`
}

// A Workflow is a named, ordered collection of rules evaluated together
// against one FactContext. Rules are evaluated in the order they appear
// here, and results are reported in the same order.
type Workflow struct {
	// A workflow identifier, unique within an engine. (required)
	Name string `json:"name" yaml:"name"`

	// The rules, in evaluation order.
	Rules []Rule `json:"rules" yaml:"rules"`
}

// Rule returns the rule with the name.
func (w Workflow) Rule(name string) (Rule, bool) {
	for _, r := range w.Rules {
		if r.Name == name {
			return r, true
		}
	}
	return Rule{}, false
}

// Validate checks that the workflow can be added to an engine: the
// workflow and every rule must be named, rule names must be unique within
// the workflow, and every rule must have an expression.
func (w Workflow) Validate() error {
	if strings.TrimSpace(w.Name) == "" {
		return fmt.Errorf("workflow name is required")
	}
	seen := map[string]bool{}
	for i, r := range w.Rules {
		if strings.TrimSpace(r.Name) == "" {
			return fmt.Errorf("workflow %s: rule %d: rule name is required", w.Name, i)
		}
		if seen[r.Name] {
			return fmt.Errorf("workflow %s: duplicate rule name %s", w.Name, r.Name)
		}
		seen[r.Name] = true
		if strings.TrimSpace(r.Expr) == "" {
			return fmt.Errorf("workflow %s: rule %s: expression is required", w.Name, r.Name)
		}
	}
	return nil
}

// String returns the workflow's rules as a table, in evaluation order.
func (w Workflow) String() string {
	tw := table.NewWriter()
	tw.SetTitle("\nWORKFLOW %s\n", w.Name)
	tw.AppendHeader(table.Row{"Rule", "Expression", "Success Message", "Error Message"})

	maxWidthOfExpressionColumn := 50
	maxExprLength := 0
	for _, r := range w.Rules {
		if len(r.Expr) > maxExprLength {
			maxExprLength = len(r.Expr)
		}
		tw.AppendRow(table.Row{r.Name, r.Expr, r.SuccessMessage, r.ErrorMessage})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, WidthMax: maxWidthOfExpressionColumn},
	})

	style := table.StyleLight
	style.Format.Header = text.FormatDefault
	// Only add the row separator if an expression is wide enough to wrap.
	if maxExprLength > maxWidthOfExpressionColumn {
		style.Options.SeparateRows = true
	}
	tw.SetStyle(style)
	return tw.Render()
}
