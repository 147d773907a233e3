package woad_test

import (
	"fmt"

	"github.com/woadrules/woad"
)

// Example showing basic rule evaluation: a workflow rule that skips the
// manual review step for small requests.
func Example() {

	// Step 1: the condition, as the authoring UI would build it
	condition := &woad.Comparison{
		Field: "Step1.total_request_amount",
		Op:    woad.OpLessThan,
		Value: 10000,
	}

	// Step 2: the rule binding the condition to an action and target
	rule := &woad.ConditionalRule{
		ID:               "small_request_skips_review",
		Condition:        condition,
		Action:           woad.ActionSkipStep,
		TargetStepNumber: 3,
		Active:           true,
	}

	// Step 3: the form runtime's current data
	data := woad.DataContext{
		Modules: map[string]map[string]any{
			"Step1": {"total_request_amount": 7500},
		},
	}

	// Step 4: evaluate and inspect the result
	engine := woad.NewEngine()
	result := engine.EvaluateRule(rule, data)

	fmt.Println(result.Triggered)
	fmt.Println(result.ActionToPerform())
	fmt.Println(result.TargetStepNumber())
	// Output:
	// true
	// skipStep
	// 3
}

// Example showing a nested condition spanning two modules.
func Example_nestedCondition() {

	condition := &woad.Group{
		Op: woad.And,
		Children: []woad.Condition{
			&woad.Comparison{Field: "PersonalInfo.applicant_age", Op: woad.OpLessThan, Value: 18},
			&woad.Group{
				Op: woad.Or,
				Children: []woad.Condition{
					&woad.Comparison{Field: "PersonalInfo.province", Op: woad.OpEquals, Value: "ON"},
					&woad.Comparison{Field: "PersonalInfo.province", Op: woad.OpEquals, Value: "QC"},
				},
			},
		},
	}

	data := woad.DataContext{
		Modules: map[string]map[string]any{
			"PersonalInfo": {"applicant_age": 16, "province": "ON"},
		},
	}

	ok, err := woad.Evaluate(condition, data)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(ok)
	// Output: true
}
