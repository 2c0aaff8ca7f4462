package organizer

import (
	"path/filepath"
	"sort"

	"discshelf/internal/disc"
)

// Group is the set of disc files sharing one canonical title.
type Group struct {
	Title string
	Files []disc.File
}

// BuildGroups clusters files by canonical title. Groups come back sorted by
// title and files within a group sorted by path, so processing order is
// deterministic regardless of discovery order.
func BuildGroups(files []disc.File) []Group {
	byTitle := map[string][]disc.File{}
	for _, file := range files {
		key := file.Title()
		byTitle[key] = append(byTitle[key], file)
	}

	titles := make([]string, 0, len(byTitle))
	for key := range byTitle {
		titles = append(titles, key)
	}
	sort.Strings(titles)

	groups := make([]Group, 0, len(titles))
	for _, key := range titles {
		members := byTitle[key]
		sort.Slice(members, func(i, j int) bool { return members[i].Path < members[j].Path })
		groups = append(groups, Group{Title: key, Files: members})
	}
	return groups
}

// Masters returns the group's full-disc images (cue/iso/img/chd), in path
// order.
func (g Group) Masters() []disc.File {
	var masters []disc.File
	for _, file := range g.Files {
		if file.IsMaster() {
			masters = append(masters, file)
		}
	}
	return masters
}

// MultiDisc reports whether the group owns a dedicated subdirectory.
func (g Group) MultiDisc() bool {
	return len(g.Masters()) >= 2
}

// TargetDir returns where the group's files belong: a subdirectory named
// after the title for multi-disc groups, the root itself otherwise.
func (g Group) TargetDir(root string) string {
	if g.MultiDisc() {
		return filepath.Join(root, g.Title)
	}
	return root
}
