// Package onboarding defines the candidate onboarding progression and the
// pure mapping from a server-reported status to display state.
//
// The Status enum is the ordered milestone ladder; Resolve converts a status
// into a step index, completion flag, and whether the resume-upload
// call-to-action applies. ActionFor supplies the static per-step action
// descriptor shown alongside a step. Nothing in this package performs I/O or
// holds mutable state, so callers may invoke it repeatedly and concurrently.
//
// Treat this package as the single source of truth for milestone ordering;
// when the portal grows a new milestone, extend allStatuses and the action
// table together.
package onboarding
