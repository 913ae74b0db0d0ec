// Package session persists the authenticated portal session.
//
// A Session holds the bearer token and the identity returned at login. The
// Store writes it to a JSON file with restricted permissions inside the
// configured state directory. Components receive the session explicitly (it
// implements portal.TokenProvider) instead of reading ambient storage; login
// establishes it and logout tears it down.
package session
