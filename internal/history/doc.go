// Package history persists the client-side record of upload attempts and the
// cached user snapshot in SQLite.
//
// The journal is bookkeeping for the local user, not authority: the server
// owns the candidate record, and the snapshot table only caches the last
// authoritative view so the CLI can render progress without a network call.
// Schema changes bump schemaVersion; users delete the database to adopt a new
// schema.
package history
