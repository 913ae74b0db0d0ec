package onboarding

import "strings"

// Status represents a candidate's milestone in the onboarding progression.
type Status string

const (
	StatusRegistered          Status = "registered"
	StatusUploadedResume      Status = "uploaded_resume"
	StatusScheduledIntake     Status = "scheduled_intake"
	StatusCompletedAssessment Status = "completed_assessment"
	StatusUploadedResults     Status = "uploaded_results"
	StatusCompletedOnboarding Status = "completed_onboarding"
)

var allStatuses = []Status{
	StatusRegistered,
	StatusUploadedResume,
	StatusScheduledIntake,
	StatusCompletedAssessment,
	StatusUploadedResults,
	StatusCompletedOnboarding,
}

var statusRank = func() map[Status]int {
	ranks := make(map[Status]int, len(allStatuses))
	for i, status := range allStatuses {
		ranks[status] = i
	}
	return ranks
}()

// AllStatuses returns the ordered list of known statuses.
func AllStatuses() []Status {
	cp := make([]Status, len(allStatuses))
	copy(cp, allStatuses)
	return cp
}

// ParseStatus converts a string into a known Status.
func ParseStatus(value string) (Status, bool) {
	normalized := Status(strings.ToLower(strings.TrimSpace(value)))
	if normalized == "" {
		return "", false
	}
	_, ok := statusRank[normalized]
	return normalized, ok
}

// StepIndex returns the zero-based rank of a status within the milestone
// ladder. Unknown or empty statuses map to 0 so a stale or malformed record
// renders as the first step rather than breaking the display.
func StepIndex(status Status) int {
	if rank, ok := statusRank[status]; ok {
		return rank
	}
	return 0
}

// IsKnown reports whether the status is part of the milestone ladder.
func IsKnown(status Status) bool {
	_, ok := statusRank[status]
	return ok
}

// Next returns the forward successor of a status. The client only ever asks
// the server to advance, never to regress; the final milestone returns itself.
func Next(status Status) Status {
	rank, ok := statusRank[status]
	if !ok {
		return allStatuses[0]
	}
	if rank+1 >= len(allStatuses) {
		return allStatuses[len(allStatuses)-1]
	}
	return allStatuses[rank+1]
}
