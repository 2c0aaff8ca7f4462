// Package logging provides slog-based structured logging for discshelf.
//
// The package wraps logger construction (console and JSON handlers, level
// parsing, optional log file output) and exposes small attribute helpers so
// callers do not import log/slog directly for common cases.
package logging
