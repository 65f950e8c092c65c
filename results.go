package verdict

import (
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// RuleResult is the outcome of evaluating one rule. Results are created
// fresh per evaluation call and are not retained by the engine.
type RuleResult struct {
	// The workflow the rule belongs to.
	WorkflowName string

	// The rule that was evaluated.
	RuleName string

	// Whether the rule's expression yielded a TRUE logical value.
	// The default is FALSE: evaluation errors and non-boolean expression
	// values both fail the rule.
	Passed bool

	// The rule's success or error message, chosen by Passed. If the rule
	// could not be evaluated, Message describes the failure instead.
	Message string

	// The raw value the expression produced, when evaluation succeeded.
	Value interface{}

	// The evaluation error, if any. Resolution, type and call errors are
	// captured here; they never abort sibling rules.
	Err error

	// Wall time spent evaluating this rule.
	Duration time.Duration
}

// Results is an ordered list of rule results, one per rule in the
// evaluated workflow, in workflow definition order.
type Results []RuleResult

// Passed reports whether every rule in the list passed.
func (rs Results) Passed() bool {
	for _, r := range rs {
		if !r.Passed {
			return false
		}
	}
	return true
}

// String produces a table of the evaluated rules and their outcomes.
func (rs Results) String() string {
	tw := table.NewWriter()
	tw.SetTitle("\nVERDICT RESULT SUMMARY\n")
	tw.AppendHeader(table.Row{"Rule", "Pass/\nFail", "Message", "Value", "Error"})

	for _, r := range rs {
		errText := ""
		if r.Err != nil {
			errText = r.Err.Error()
		}
		tw.AppendRow(table.Row{
			r.RuleName,
			boolString(r.Passed),
			r.Message,
			fmt.Sprintf("%v", r.Value),
			errText,
		})
	}

	style := table.StyleLight
	style.Format.Header = text.FormatDefault
	tw.SetStyle(style)
	return tw.Render()
}

func boolString(b bool) string {
	switch b {
	case true:
		return "PASS"
	default:
		return "FAIL"
	}
}
