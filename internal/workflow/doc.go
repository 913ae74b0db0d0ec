// Package workflow coordinates the cross-component effects of onboarding
// actions.
//
// The Synchronizer owns the one sequence with partial-failure semantics in
// the client: after a resume upload succeeds, the server status must advance
// and the authoritative user record must be refetched, strictly in that
// order. A failed transition surfaces as a SyncError, distinct from an
// upload failure, because the resume itself is already stored server-side. A
// failed refetch after a successful transition is only a stale view: the
// outcome is still reported, computed from the transition's target status.
package workflow
