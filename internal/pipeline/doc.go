// Package pipeline runs the full library pass: scan, group, relocate,
// playlist sync, playlist repair, and audit, in that order. A single Run is
// the unit of work the CLI invokes.
package pipeline
