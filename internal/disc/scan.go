package disc

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"discshelf/internal/logging"
)

// Scanner enumerates candidate disc files and playlists under a root.
type Scanner struct {
	logger *slog.Logger
}

// NewScanner constructs a scanner. A nil logger disables logging.
func NewScanner(logger *slog.Logger) *Scanner {
	return &Scanner{logger: logging.NewComponentLogger(logger, "scanner")}
}

// Scan walks root and returns the supported disc files plus every playlist
// path it encountered, both sorted by full path. With recurse disabled only
// the root's direct entries are considered.
func (s *Scanner) Scan(root string, recurse bool) ([]File, []string, error) {
	var files []File
	var playlists []string

	collect := func(path string) {
		if strings.EqualFold(filepath.Ext(path), PlaylistExt) {
			playlists = append(playlists, path)
			return
		}
		if file, ok := New(path); ok {
			files = append(files, file)
		}
	}

	if recurse {
		err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if entry.IsDir() {
				return nil
			}
			collect(path)
			return nil
		})
		if err != nil {
			return nil, nil, err
		}
	} else {
		entries, err := os.ReadDir(root)
		if err != nil {
			return nil, nil, err
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			collect(filepath.Join(root, entry.Name()))
		}
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	sort.Strings(playlists)

	s.logger.Debug("scan completed",
		logging.String(logging.FieldPath, root),
		logging.Bool("recurse", recurse),
		logging.Int("files", len(files)),
		logging.Int("playlists", len(playlists)),
	)
	return files, playlists, nil
}

// ScanPlaylists returns only the playlist paths under root, sorted.
func (s *Scanner) ScanPlaylists(root string, recurse bool) ([]string, error) {
	_, playlists, err := s.Scan(root, recurse)
	return playlists, err
}
