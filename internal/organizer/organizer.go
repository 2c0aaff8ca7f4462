package organizer

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"discshelf/internal/disc"
	"discshelf/internal/fsops"
	"discshelf/internal/logging"
)

// Stats accumulates the file operations performed for a group.
type Stats struct {
	Moved       int
	CueRewrites int
	Warnings    int
	PrunedDirs  int
}

// Add merges other into s.
func (s *Stats) Add(other Stats) {
	s.Moved += other.Moved
	s.CueRewrites += other.CueRewrites
	s.Warnings += other.Warnings
	s.PrunedDirs += other.PrunedDirs
}

// Organizer relocates disc files into their per-title layout.
type Organizer struct {
	ops    fsops.Ops
	logger *slog.Logger

	// previewMoved tracks logical moves during a preview run, where the
	// source file stays on disk and the missing-source no-op check cannot
	// detect an earlier relocation. previewPruned tracks directories a
	// preview run has logically removed for the same reason.
	previewMoved  map[string]string
	previewPruned map[string]struct{}
}

// New constructs an organizer. A nil ops uses the real filesystem; a nil
// logger disables logging.
func New(ops fsops.Ops, logger *slog.Logger) *Organizer {
	if ops == nil {
		ops = fsops.Real{}
	}
	return &Organizer{
		ops:           ops,
		logger:        logging.NewComponentLogger(logger, "organizer"),
		previewMoved:  map[string]string{},
		previewPruned: map[string]struct{}{},
	}
}

// OrganizeGroup moves every file of the group into its target directory,
// rewriting cue sheets as they move, then prunes source directories this run
// emptied.
func (o *Organizer) OrganizeGroup(root string, group Group) (Stats, error) {
	stats := Stats{}
	target := group.TargetDir(root)
	sourceDirs := map[string]struct{}{}

	for _, file := range group.Files {
		switch file.Kind {
		case disc.KindCue:
			res, err := o.relocateCue(file, target)
			stats.Moved += res.moved
			stats.CueRewrites += res.rewrites
			stats.Warnings += res.warnings
			if err != nil {
				return stats, err
			}
			if res.moved > 0 {
				sourceDirs[file.Dir] = struct{}{}
			}
		default:
			_, moved, err := o.Relocate(file.Path, target)
			if err != nil {
				return stats, err
			}
			if moved {
				stats.Moved++
				sourceDirs[file.Dir] = struct{}{}
			}
		}
	}

	stats.PrunedDirs = o.pruneSourceDirs(root, target, sourceDirs)
	return stats, nil
}

// Relocate moves path into targetDir, creating the directory when missing.
// It reports the destination path and whether a move actually happened.
// A source that no longer exists is a no-op so retries stay idempotent, and
// a source already at its destination reports success without moving.
func (o *Organizer) Relocate(path, targetDir string) (string, bool, error) {
	dst := filepath.Join(targetDir, filepath.Base(path))

	if o.ops.Preview() {
		if moved, ok := o.previewMoved[path]; ok {
			return moved, false, nil
		}
	}

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return dst, false, nil
		}
		return "", false, err
	}
	if path == dst {
		return dst, false, nil
	}

	if err := o.ops.MkdirAll(targetDir); err != nil {
		return "", false, err
	}
	if err := o.ops.Rename(path, dst); err != nil {
		return "", false, err
	}
	if o.ops.Preview() {
		// The recorder already reported the suppressed move.
		o.previewMoved[path] = dst
		return dst, true, nil
	}
	o.logger.Info("moved file",
		logging.String(logging.FieldPath, path),
		logging.String("target", dst),
	)
	return dst, true, nil
}

// dirEmptied reports whether dir holds nothing. In preview the files are
// still on disk, so entries the run has logically moved out or pruned count
// as gone.
func (o *Organizer) dirEmptied(dir string) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false
	}
	if !o.ops.Preview() {
		return len(entries) == 0
	}
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if entry.IsDir() {
			if _, ok := o.previewPruned[path]; ok {
				continue
			}
			return false
		}
		if _, ok := o.previewMoved[path]; ok {
			continue
		}
		return false
	}
	return true
}

// pruneSourceDirs removes directories files were moved out of, walking
// upward while each parent is empty. The root and the target directory are
// never removed, and only directories emptied by this run are candidates.
func (o *Organizer) pruneSourceDirs(root, target string, dirs map[string]struct{}) int {
	sorted := make([]string, 0, len(dirs))
	for dir := range dirs {
		sorted = append(sorted, dir)
	}
	sort.Strings(sorted)

	pruned := 0
	for _, dir := range sorted {
		for dir != root && dir != target {
			rel, err := filepath.Rel(root, dir)
			if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
				break
			}
			if !o.dirEmptied(dir) {
				break
			}
			if err := o.ops.Remove(dir); err != nil {
				break
			}
			if o.ops.Preview() {
				o.previewPruned[dir] = struct{}{}
			} else {
				o.logger.Info("pruned empty source directory", logging.String(logging.FieldPath, dir))
			}
			pruned++
			dir = filepath.Dir(dir)
		}
	}
	return pruned
}
