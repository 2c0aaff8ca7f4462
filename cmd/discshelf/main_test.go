package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runCLI(t *testing.T, configPath string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	flags := []string{}
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), err
}

func writeTestConfig(t *testing.T, dir, root string) string {
	t.Helper()
	path := filepath.Join(dir, "config.toml")
	content := fmt.Sprintf("[library]\nroot = %q\n\n[organize]\nrecurse = true\n\n[logging]\nlevel = \"error\"\n", root)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func writeLibraryFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestCLIOrganizeEndToEnd(t *testing.T) {
	base := t.TempDir()
	root := filepath.Join(base, "library")
	writeLibraryFile(t, filepath.Join(root, "Game (Disc 1).cue"),
		"FILE \"Game (Disc 1).bin\" BINARY\n")
	writeLibraryFile(t, filepath.Join(root, "Game (Disc 1).bin"), "a")
	writeLibraryFile(t, filepath.Join(root, "Game (Disc 2).cue"),
		"FILE \"Game (Disc 2).bin\" BINARY\n")
	writeLibraryFile(t, filepath.Join(root, "Game (Disc 2).bin"), "b")
	configPath := writeTestConfig(t, base, root)

	out, err := runCLI(t, configPath, "organize")
	if err != nil {
		t.Fatalf("organize: %v", err)
	}
	if !strings.Contains(out, "Files moved:") {
		t.Fatalf("missing summary in output: %q", out)
	}
	if _, err := os.Stat(filepath.Join(root, "Game", "Game.m3u")); err != nil {
		t.Fatalf("expected playlist after organize: %v", err)
	}
	if !strings.Contains(out, "Game.m3u") {
		t.Fatalf("audit table missing playlist: %q", out)
	}
}

func TestCLIOrganizePreviewLeavesFilesInPlace(t *testing.T) {
	base := t.TempDir()
	root := filepath.Join(base, "library")
	writeLibraryFile(t, filepath.Join(root, "Game (Disc 1).iso"), "a")
	writeLibraryFile(t, filepath.Join(root, "Game (Disc 2).iso"), "b")
	configPath := writeTestConfig(t, base, root)

	out, err := runCLI(t, configPath, "organize", "--preview")
	if err != nil {
		t.Fatalf("organize --preview: %v", err)
	}
	if !strings.Contains(out, "no changes were made") {
		t.Fatalf("missing preview notice: %q", out)
	}
	if _, err := os.Stat(filepath.Join(root, "Game (Disc 1).iso")); err != nil {
		t.Fatalf("preview moved a file: %v", err)
	}
}

func TestCLIScanListsGroups(t *testing.T) {
	base := t.TempDir()
	root := filepath.Join(base, "library")
	writeLibraryFile(t, filepath.Join(root, "Game (Disc 1).chd"), "")
	writeLibraryFile(t, filepath.Join(root, "Game (Disc 2).chd"), "")
	writeLibraryFile(t, filepath.Join(root, "Solo.iso"), "")
	configPath := writeTestConfig(t, base, root)

	out, err := runCLI(t, configPath, "scan")
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	for _, want := range []string{"MULTI-DISC", "Game", "Solo", "2 group(s)"} {
		if !strings.Contains(out, want) {
			t.Fatalf("scan output missing %q:\n%s", want, out)
		}
	}
}

func TestCLIAuditFailsOnBrokenPlaylist(t *testing.T) {
	base := t.TempDir()
	root := filepath.Join(base, "library")
	writeLibraryFile(t, filepath.Join(root, "Game", "Game.m3u"),
		"Game (Disc 1).cue\nGame (Disc 2).cue\n")
	configPath := writeTestConfig(t, base, root)

	_, err := runCLI(t, configPath, "audit")
	if err == nil {
		t.Fatal("audit must fail when playlist entries are missing")
	}
	if !strings.Contains(err.Error(), "audit failed") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestConfigInitAndShow(t *testing.T) {
	tmp := t.TempDir()
	target := filepath.Join(tmp, "config.toml")

	out, err := runCLI(t, "", "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(out, "Wrote sample configuration") {
		t.Fatalf("unexpected init output: %q", out)
	}
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	out, err = runCLI(t, target, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	if !strings.Contains(out, "[library]") {
		t.Fatalf("show output missing library section: %q", out)
	}
}
