// Package logging builds the slog loggers used across the onboarding client.
//
// New constructs a logger from Options (level, console or json format,
// destination writer); NewNop returns a discard logger for tests and for
// components constructed without one. Attr helpers and the Field* constants
// keep structured keys consistent between the CLI and the library packages.
package logging
