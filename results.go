package woad

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// RuleEvaluationResult is the outcome of evaluating one rule.
type RuleEvaluationResult struct {
	// The rule that was evaluated.
	Rule *ConditionalRule

	// Whether the rule's condition held. Always false for inactive rules
	// and for rules whose evaluation failed.
	Triggered bool

	// Set when the rule could not be evaluated (malformed condition,
	// unknown operator). A failed rule never aborts batch evaluation;
	// the error travels with the result so the editor can display it.
	Err string
}

// ActionToPerform is the rule's action if the rule triggered, otherwise "".
func (r *RuleEvaluationResult) ActionToPerform() Action {
	if r == nil || !r.Triggered || r.Rule == nil {
		return ""
	}
	return r.Rule.Action
}

// TargetFieldID passes through the rule's target field.
func (r *RuleEvaluationResult) TargetFieldID() string {
	if r == nil || r.Rule == nil {
		return ""
	}
	return r.Rule.TargetFieldID
}

// TargetStepNumber passes through the rule's target step.
func (r *RuleEvaluationResult) TargetStepNumber() int {
	if r == nil || r.Rule == nil {
		return 0
	}
	return r.Rule.TargetStepNumber
}

// TargetModuleKey passes through the rule's target module.
func (r *RuleEvaluationResult) TargetModuleKey() string {
	if r == nil || r.Rule == nil {
		return ""
	}
	return r.Rule.TargetModuleKey
}

// ResultsTable renders a batch of evaluation results as a table, in the
// order given (EvaluateRules and EvaluateRulesAll return priority order).
func ResultsTable(results []*RuleEvaluationResult) string {
	tw := table.NewWriter()
	tw.SetTitle("\nRULE EVALUATION RESULTS\n")
	tw.AppendHeader(table.Row{"\nRule", "\nPriority", "Trig-\ngered", "\nAction", "\nTarget", "\nError"})

	for _, r := range results {
		if r == nil || r.Rule == nil {
			continue
		}
		tw.AppendRow(table.Row{
			r.Rule.ID,
			fmt.Sprintf("%d", r.Rule.Priority),
			triggeredString(r.Triggered),
			string(r.Rule.Action),
			targetString(r.Rule),
			r.Err,
		})
	}

	style := table.StyleLight
	style.Format.Header = text.FormatDefault
	tw.SetStyle(style)
	return tw.Render()
}

func triggeredString(b bool) string {
	if b {
		return "YES"
	}
	return "no"
}

func targetString(r *ConditionalRule) string {
	switch {
	case r.TargetFieldID != "":
		return "field " + r.TargetFieldID
	case r.TargetStepNumber != 0:
		return fmt.Sprintf("step %d", r.TargetStepNumber)
	case r.TargetModuleKey != "":
		return "module " + r.TargetModuleKey
	default:
		return ""
	}
}
