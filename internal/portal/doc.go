// Package portal implements the HTTP client for the candidate onboarding
// portal API.
//
// The Client wraps the portal's authentication, resume upload, status
// transition, and current-user endpoints behind context-aware methods. The
// HTTP layer is injected through the HTTPDoer interface so tests can supply
// fakes; bearer tokens come from an injected TokenProvider rather than any
// ambient lookup.
//
// Error classification lives here too: responses carrying a structured detail
// become *APIError values tagged with ErrServer, while failures to complete
// the exchange at all are tagged with ErrTransport. Reason converts either
// into user-facing text without leaking transport internals.
package portal
