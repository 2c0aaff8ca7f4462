package logging_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"discshelf/internal/logging"
)

func TestNewWritesConsoleLinesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "discshelf.log")
	logger, err := logging.New(logging.Options{
		Level:       "debug",
		Format:      "console",
		OutputPaths: []string{path},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Info("moved file",
		logging.String(logging.FieldComponent, "organizer"),
		logging.String(logging.FieldPath, "/lib/Game"),
	)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	line := string(data)
	for _, want := range []string{"INF", "moved file", "component=organizer", "path=/lib/Game"} {
		if !strings.Contains(line, want) {
			t.Fatalf("log line missing %q: %q", want, line)
		}
	}
}

func TestNewJSONFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "discshelf.log")
	logger, err := logging.New(logging.Options{
		Format:      "json",
		OutputPaths: []string{path},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Warn("cue references missing track", logging.String("track", "a.bin"))

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), `"track":"a.bin"`) {
		t.Fatalf("json log missing attr: %q", data)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "logfmt"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestLevelFiltering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "discshelf.log")
	logger, err := logging.New(logging.Options{
		Level:       "warn",
		Format:      "console",
		OutputPaths: []string{path},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Info("dropped")
	logger.Warn("kept")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if strings.Contains(string(data), "dropped") {
		t.Fatalf("info record written at warn level: %q", data)
	}
	if !strings.Contains(string(data), "kept") {
		t.Fatalf("warn record missing: %q", data)
	}
}

func TestComponentLoggerToleratesNilBase(t *testing.T) {
	logger := logging.NewComponentLogger(nil, "scanner")
	// Must not panic and must stay silent.
	logger.Info("ignored")
	if logger.Enabled(nil, 0) {
		t.Fatal("nop logger must report disabled")
	}
}
