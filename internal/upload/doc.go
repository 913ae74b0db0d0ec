// Package upload owns the resume intake pipeline: validating a candidate
// file against the portal's type and size policy and driving a single upload
// attempt through its lifecycle.
//
// Validate is pure and deterministic; the Orchestrator is a small state
// machine (Idle, Selected, Uploading, Succeeded, Failed) that guarantees
// validation happens before any network call, enforces at most one in-flight
// submission per instance, and preserves the staged file across failures so
// the user can retry without reselecting. The network side is injected
// through the Transport interface; PortalTransport adapts the portal client.
package upload
