package organizer

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"discshelf/internal/disc"
	"discshelf/internal/logging"
)

// fileRefPattern matches cue-sheet FILE reference lines:
//
//	FILE "Game (Disc 1).bin" BINARY
var fileRefPattern = regexp.MustCompile(`(?i)^\s*FILE\s+"([^"]*)"(?:\s+\S+)?\s*$`)

type cueResult struct {
	moved    int
	rewrites int
	warnings int
}

// relocateCue moves a cue sheet into targetDir, then moves every referenced
// track beside it. Sheets that actually moved get their FILE lines rewritten
// to the canonical `FILE "<name>" BINARY` form; a sheet already at its
// destination is never touched. Track references are resolved against the
// cue's pre-move directory. A reference that resolves nowhere is left
// untouched and logged; the audit pass reports it later.
func (o *Organizer) relocateCue(cue disc.File, targetDir string) (cueResult, error) {
	res := cueResult{}

	newPath, moved, err := o.Relocate(cue.Path, targetDir)
	if err != nil {
		return res, err
	}
	if moved {
		res.moved++
	}

	// In preview mode the sheet still lives at its original path.
	readPath := newPath
	if o.ops.Preview() {
		readPath = cue.Path
	}
	data, err := os.ReadFile(readPath)
	if err != nil {
		return res, err
	}

	lines := strings.Split(string(data), "\n")
	changed := false
	for i, line := range lines {
		match := fileRefPattern.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		name := match[1]

		src := filepath.Join(cue.Dir, name)
		if _, err := os.Stat(src); err != nil {
			if _, err := os.Stat(filepath.Join(targetDir, name)); err != nil {
				o.logger.Warn("cue references missing track",
					logging.String("cue", newPath),
					logging.String("track", name),
				)
				res.warnings++
				continue
			}
			// Track already beside the cue from an earlier run.
		} else {
			_, trackMoved, err := o.Relocate(src, targetDir)
			if err != nil {
				return res, err
			}
			if trackMoved {
				res.moved++
			}
		}

		// Only a relocated sheet gets its FILE lines normalized; a sheet
		// already in place is left byte-for-byte as found.
		if moved {
			canonical := fmt.Sprintf("FILE %q BINARY", name)
			if line != canonical {
				lines[i] = canonical
				changed = true
			}
		}
	}

	if changed {
		res.rewrites++
		if err := o.ops.WriteFile(newPath, []byte(strings.Join(lines, "\n"))); err != nil {
			return res, err
		}
		if !o.ops.Preview() {
			o.logger.Info("rewrote cue sheet", logging.String(logging.FieldPath, newPath))
		}
	}
	return res, nil
}
