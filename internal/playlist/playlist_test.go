package playlist_test

import (
	"path/filepath"
	"testing"

	"discshelf/internal/disc"
	"discshelf/internal/organizer"
	"discshelf/internal/playlist"
	"discshelf/internal/testsupport"
)

func groupFor(t *testing.T, root string) organizer.Group {
	t.Helper()
	files, _, err := disc.NewScanner(nil).Scan(root, true)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	groups := organizer.BuildGroups(files)
	if len(groups) != 1 {
		t.Fatalf("expected one group, got %d", len(groups))
	}
	return groups[0]
}

func TestSyncWritesSortedMasterPlaylist(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(root, "Game", "Game (Disc 2).cue"), "")
	testsupport.WriteFile(t, filepath.Join(root, "Game", "Game (Disc 1).cue"), "")
	testsupport.WriteFile(t, filepath.Join(root, "Game", "Game (Disc 1).bin"), "")
	testsupport.WriteFile(t, filepath.Join(root, "Game", "Game (Disc 2).bin"), "")

	manager := playlist.NewManager(nil, nil)
	result, err := manager.Sync(root, groupFor(t, root))
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	want := filepath.Join(root, "Game", "Game.m3u")
	if result.Written != want {
		t.Fatalf("Written = %q, want %q", result.Written, want)
	}

	content := testsupport.ReadFile(t, want)
	if content != "Game (Disc 1).cue\nGame (Disc 2).cue\n" {
		t.Fatalf("unexpected playlist content:\n%q", content)
	}
}

func TestSyncIsIdempotent(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(root, "Game", "Game (Disc 1).chd"), "")
	testsupport.WriteFile(t, filepath.Join(root, "Game", "Game (Disc 2).chd"), "")

	manager := playlist.NewManager(nil, nil)
	group := groupFor(t, root)
	if _, err := manager.Sync(root, group); err != nil {
		t.Fatalf("first Sync: %v", err)
	}

	before := testsupport.ReadFile(t, filepath.Join(root, "Game", "Game.m3u"))
	result, err := manager.Sync(root, group)
	if err != nil {
		t.Fatalf("second Sync: %v", err)
	}
	if result.Written == "" {
		t.Fatal("second Sync must still report the playlist as known")
	}
	after := testsupport.ReadFile(t, filepath.Join(root, "Game", "Game.m3u"))
	if before != after {
		t.Fatal("second Sync changed playlist content")
	}
}

func TestSyncRemovesPlaylistForSingleMasterGroup(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(root, "Solo.cue"), "")
	testsupport.WriteFile(t, filepath.Join(root, "Solo.m3u"), "Solo.cue\n")
	testsupport.WriteFile(t, filepath.Join(root, "Solo", "Solo.m3u"), "Solo.cue\n")

	manager := playlist.NewManager(nil, nil)
	files, _, err := disc.NewScanner(nil).Scan(root, false)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	group := organizer.BuildGroups(files)[0]

	result, err := manager.Sync(root, group)
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if result.Written != "" {
		t.Fatal("single-master group must never get a playlist")
	}
	if len(result.Removed) != 2 {
		t.Fatalf("expected 2 removed playlists, got %d", len(result.Removed))
	}
	if testsupport.Exists(t, filepath.Join(root, "Solo.m3u")) {
		t.Fatal("root-level stale playlist still present")
	}
	if testsupport.Exists(t, filepath.Join(root, "Solo", "Solo.m3u")) {
		t.Fatal("subdirectory stale playlist still present")
	}
}

func TestRenderAndParse(t *testing.T) {
	names := []string{"A.cue", "B.cue"}
	content := playlist.Render(names)
	if string(content) != "A.cue\nB.cue\n" {
		t.Fatalf("Render = %q", content)
	}
	entries := playlist.Parse(string(content))
	if len(entries) != 2 || entries[0] != "A.cue" || entries[1] != "B.cue" {
		t.Fatalf("Parse = %v", entries)
	}
	if got := playlist.Parse("A.cue\r\n\r\nB.cue"); len(got) != 2 {
		t.Fatalf("Parse with CRLF/blank = %v", got)
	}
}
