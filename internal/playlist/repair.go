package playlist

import (
	"os"
	"path/filepath"
	"strings"

	"discshelf/internal/disc"
	"discshelf/internal/logging"
	"discshelf/internal/title"
)

// RepairResult reports the outcome of the repair pass.
type RepairResult struct {
	Kept      []string // playlists that survive, post-normalization paths
	Removed   []string
	Rewritten int
	Relocated int
}

// Repair walks existing playlists and brings each back in line with the
// masters actually present: loose playlists are moved into a matching
// subdirectory, playlists whose directory no longer holds two masters are
// deleted, and drifted content is overwritten with the expected sorted
// list. Paths in skip (freshly created this run) are left alone but still
// reported as kept.
func (m *Manager) Repair(root string, playlists []string, skip map[string]struct{}) (RepairResult, error) {
	result := RepairResult{}

	for _, path := range playlists {
		if _, ok := skip[path]; ok {
			result.Kept = append(result.Kept, path)
			continue
		}

		name := strings.TrimSuffix(filepath.Base(path), disc.PlaylistExt)
		dir := filepath.Dir(path)
		readPath := path

		// A loose playlist next to a subdirectory named after it belongs
		// inside that subdirectory.
		if filepath.Base(dir) != name {
			sub := filepath.Join(dir, name)
			if info, err := os.Stat(sub); err == nil && info.IsDir() {
				moved := filepath.Join(sub, filepath.Base(path))
				if err := m.ops.Rename(path, moved); err != nil {
					return result, err
				}
				result.Relocated++
				m.logger.Info("normalized playlist location",
					logging.String(logging.FieldPath, path),
					logging.String("target", moved),
				)
				if !m.ops.Preview() {
					readPath = moved
				}
				path = moved
				dir = sub
			}
		}

		masters, err := mastersMatching(dir, name)
		if err != nil {
			return result, err
		}
		if len(masters) < 2 {
			if err := m.ops.Remove(path); err != nil {
				return result, err
			}
			result.Removed = append(result.Removed, path)
			m.logger.Info("removed playlist without enough masters",
				logging.String(logging.FieldPath, path),
				logging.Int("masters", len(masters)),
			)
			continue
		}

		expected := expectedNames(masters)
		current, err := os.ReadFile(readPath)
		if err != nil {
			return result, err
		}
		if !equalEntries(Parse(string(current)), expected) || !strings.HasSuffix(string(current), "\n") {
			if err := m.ops.WriteFile(path, Render(expected)); err != nil {
				return result, err
			}
			result.Rewritten++
			m.logger.Info("repaired playlist content",
				logging.String(logging.FieldPath, path),
				logging.Int("entries", len(expected)),
			)
		}
		result.Kept = append(result.Kept, path)
	}

	return result, nil
}

// mastersMatching lists master disc files in dir whose canonical title
// matches the playlist name. Filtering by title keeps a loose root-level
// playlist from adopting every master at the root.
func mastersMatching(dir, name string) ([]disc.File, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var masters []disc.File
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		file, ok := disc.New(filepath.Join(dir, entry.Name()))
		if !ok || !file.IsMaster() {
			continue
		}
		if title.Canonical(file.Base) != name {
			continue
		}
		masters = append(masters, file)
	}
	return masters, nil
}

func equalEntries(current, expected []string) bool {
	if len(current) != len(expected) {
		return false
	}
	for i := range current {
		if current[i] != expected[i] {
			return false
		}
	}
	return true
}
