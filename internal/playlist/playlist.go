package playlist

import (
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"discshelf/internal/disc"
	"discshelf/internal/fsops"
	"discshelf/internal/logging"
	"discshelf/internal/organizer"
)

// Manager maintains per-title playlists.
type Manager struct {
	ops    fsops.Ops
	logger *slog.Logger
}

// NewManager constructs a playlist manager. A nil ops uses the real
// filesystem; a nil logger disables logging.
func NewManager(ops fsops.Ops, logger *slog.Logger) *Manager {
	if ops == nil {
		ops = fsops.Real{}
	}
	return &Manager{ops: ops, logger: logging.NewComponentLogger(logger, "playlist")}
}

// PathFor returns the playlist path for a title inside dir.
func PathFor(dir, name string) string {
	return filepath.Join(dir, name+disc.PlaylistExt)
}

// Render produces playlist content: each name on its own line, including a
// terminator after the last line.
func Render(names []string) []byte {
	if len(names) == 0 {
		return []byte{}
	}
	return []byte(strings.Join(names, "\n") + "\n")
}

// Parse splits playlist content into entries, tolerating a missing final
// terminator and blank lines.
func Parse(content string) []string {
	var entries []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		entries = append(entries, line)
	}
	return entries
}

// expectedNames returns the sorted master file names for a playlist.
func expectedNames(masters []disc.File) []string {
	names := make([]string, 0, len(masters))
	for _, master := range masters {
		names = append(names, master.Name())
	}
	sort.Strings(names)
	return names
}

// SyncResult reports the outcome of the creation pass for one group.
type SyncResult struct {
	Written string   // playlist path written or confirmed, empty for <2 masters
	Updated bool     // content was actually (re)written this run
	Removed []string // stale playlists deleted
}

// Sync enforces the playlist state for a freshly organized group: groups
// with at least two masters get a playlist in their target directory,
// smaller groups have any leftover playlist removed from both candidate
// locations.
func (m *Manager) Sync(root string, group organizer.Group) (SyncResult, error) {
	result := SyncResult{}
	masters := group.Masters()

	if len(masters) < 2 {
		for _, stale := range []string{
			PathFor(root, group.Title),
			PathFor(filepath.Join(root, group.Title), group.Title),
		} {
			if _, err := os.Stat(stale); err != nil {
				continue
			}
			if err := m.ops.Remove(stale); err != nil {
				return result, err
			}
			result.Removed = append(result.Removed, stale)
			m.logger.Info("removed stale playlist",
				logging.String(logging.FieldTitle, group.Title),
				logging.String(logging.FieldPath, stale),
			)
		}
		return result, nil
	}

	path := PathFor(group.TargetDir(root), group.Title)
	content := Render(expectedNames(masters))

	if current, err := os.ReadFile(path); err == nil && string(current) == string(content) {
		result.Written = path
		return result, nil
	}
	if err := m.ops.WriteFile(path, content); err != nil {
		return result, err
	}
	result.Written = path
	result.Updated = true
	m.logger.Info("wrote playlist",
		logging.String(logging.FieldTitle, group.Title),
		logging.String(logging.FieldPath, path),
		logging.Int("entries", len(masters)),
	)
	return result, nil
}
