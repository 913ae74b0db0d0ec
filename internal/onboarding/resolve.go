package onboarding

// Progress is the display state derived from a candidate's status.
type Progress struct {
	StepIndex      int
	IsComplete     bool
	RequiresUpload bool
}

// Resolve maps a server-reported status to display state. It is a pure total
// function: unknown statuses resolve to the first step, and identical inputs
// always yield identical outputs.
func Resolve(status Status) Progress {
	index := StepIndex(status)
	return Progress{
		StepIndex:      index,
		IsComplete:     status == StatusCompletedOnboarding,
		RequiresUpload: index == 0,
	}
}
