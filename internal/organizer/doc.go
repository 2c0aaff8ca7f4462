// Package organizer groups disc files by canonical title and relocates each
// group into its final layout, rewriting cue-sheet references as files move.
//
// Every operation is idempotent: relocating an already-relocated file is a
// no-op, and a cue sheet is only rewritten when its content actually changes.
package organizer
