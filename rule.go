package woad

import "github.com/google/uuid"

// Action is what a triggered rule asks the workflow layer to do. The known
// actions form a closed set, but any string is carried through unchanged so
// stored schemas from newer authoring tools keep working.
type Action string

const (
	ActionShow             Action = "show"
	ActionHide             Action = "hide"
	ActionRequire          Action = "require"
	ActionSkipStep         Action = "skipStep"
	ActionGoToStep         Action = "goToStep"
	ActionCompleteWorkflow Action = "completeWorkflow"
)

// Known reports whether the action is one the engine ships constants for.
// Unknown actions still evaluate and dispatch normally.
func (a Action) Known() bool {
	switch a {
	case ActionShow, ActionHide, ActionRequire,
		ActionSkipStep, ActionGoToStep, ActionCompleteWorkflow:
		return true
	}
	return false
}

// A ConditionalRule binds a condition to an action and a target. Rules are
// authored in the UI, stored with the module/workflow schema, and read-only
// to this engine.
type ConditionalRule struct {
	// A rule identifier. (required)
	ID string `json:"id"`

	// Optional human-readable description shown in the editor.
	Description string `json:"description,omitempty"`

	// The condition that triggers the rule.
	Condition Condition `json:"condition"`

	// The action performed when the rule triggers.
	Action Action `json:"action"`

	// The field the action applies to, for field-level actions such as
	// show/hide/require.
	TargetFieldID string `json:"targetFieldId,omitempty"`

	// The workflow step the action applies to, for skipStep/goToStep.
	TargetStepNumber int `json:"targetStepNumber,omitempty"`

	// The module the action applies to.
	TargetModuleKey string `json:"targetModuleKey,omitempty"`

	// Rules are applied in ascending priority order; lower numbers win.
	// Rules sharing a priority keep their authored relative order.
	Priority int `json:"priority"`

	// Inactive rules are short-circuited: their condition is never
	// evaluated.
	Active bool `json:"isActive"`
}

// NewRule initializes an active rule with the id and action.
// A blank id is replaced with a generated one.
func NewRule(id string, action Action) *ConditionalRule {
	if id == "" {
		id = uuid.NewString()
	}
	return &ConditionalRule{
		ID:     id,
		Action: action,
		Active: true,
	}
}
