package onboarding

// ActionKind distinguishes navigation links from actions the client performs
// itself.
type ActionKind string

const (
	ActionLink   ActionKind = "link"
	ActionUpload ActionKind = "upload"
)

// Action describes the call-to-action surfaced for a step.
type Action struct {
	Kind   ActionKind
	Label  string
	Target string
}

// stepActions is data, not behavior: the step index keys the static action
// table. Steps 0 (upload handled by the dedicated resume flow) and 5
// (onboarding finished) have no step-local action.
var stepActions = map[int]Action{
	1: {Kind: ActionLink, Label: "Schedule intake call", Target: "/schedule/intake"},
	2: {Kind: ActionLink, Label: "Take assessment", Target: "/assessment"},
	3: {Kind: ActionUpload, Label: "Upload assessment results"},
	4: {Kind: ActionLink, Label: "Schedule follow-up", Target: "/schedule/follow-up"},
}

// ActionFor returns the action descriptor for a step index, if any.
func ActionFor(stepIndex int) (Action, bool) {
	action, ok := stepActions[stepIndex]
	return action, ok
}
