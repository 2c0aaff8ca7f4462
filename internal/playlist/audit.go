package playlist

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"discshelf/internal/logging"
)

// Status classifies one audited playlist.
type Status int

const (
	StatusOK Status = iota
	StatusWarn
	StatusFail
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusWarn:
		return "WARN"
	case StatusFail:
		return "FAIL"
	default:
		return "UNKNOWN"
	}
}

// AuditResult is the audit classification for a single playlist.
type AuditResult struct {
	Playlist  string
	Status    Status
	Missing   int
	CueErrors int
	Detail    string
}

// Auditor validates playlists against the files on disk. It never mutates
// state.
type Auditor struct {
	logger *slog.Logger
}

// NewAuditor constructs an auditor. A nil logger disables logging.
func NewAuditor(logger *slog.Logger) *Auditor {
	return &Auditor{logger: logging.NewComponentLogger(logger, "auditor")}
}

// Audit classifies every playlist path, in sorted order.
func (a *Auditor) Audit(paths []string) []AuditResult {
	sorted := append([]string{}, paths...)
	sort.Strings(sorted)

	results := make([]AuditResult, 0, len(sorted))
	for _, path := range sorted {
		result := a.auditOne(path)
		a.logger.Info("audited playlist",
			logging.String(logging.FieldPath, result.Playlist),
			logging.String("status", result.Status.String()),
			logging.Int("missing", result.Missing),
			logging.Int("cue_errors", result.CueErrors),
		)
		results = append(results, result)
	}
	return results
}

func (a *Auditor) auditOne(path string) AuditResult {
	result := AuditResult{Playlist: path}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Status = StatusFail
		result.Detail = "playlist missing"
		return result
	}
	raw := string(data)
	if !strings.Contains(raw, "\n") {
		// A single unterminated line signals an interrupted write.
		result.Status = StatusFail
		result.Detail = "malformed playlist (no line terminator)"
		return result
	}

	dir := filepath.Dir(path)
	for _, entry := range Parse(raw) {
		entryPath := filepath.Join(dir, entry)
		if _, err := os.Stat(entryPath); err != nil {
			result.Missing++
			continue
		}
		if strings.EqualFold(filepath.Ext(entry), ".cue") {
			result.CueErrors += danglingCueRefs(entryPath)
		}
	}

	switch {
	case result.Missing > 0:
		result.Status = StatusFail
		result.Detail = fmt.Sprintf("%d missing, %d cue errors", result.Missing, result.CueErrors)
	case result.CueErrors > 0:
		result.Status = StatusWarn
		result.Detail = fmt.Sprintf("%d dangling cue reference(s)", result.CueErrors)
	default:
		result.Status = StatusOK
	}
	return result
}

// cueRefPattern mirrors the rewriter's FILE line match, tolerant of any
// trailing type token.
var cueRefPattern = regexp.MustCompile(`(?i)^\s*FILE\s+"([^"]*)"(?:\s+\S+)?\s*$`)

// danglingCueRefs counts FILE references inside a cue sheet that do not
// resolve next to it. An unreadable cue counts as one error.
func danglingCueRefs(cuePath string) int {
	data, err := os.ReadFile(cuePath)
	if err != nil {
		return 1
	}
	dir := filepath.Dir(cuePath)
	errors := 0
	for _, line := range strings.Split(string(data), "\n") {
		match := cueRefPattern.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		if _, err := os.Stat(filepath.Join(dir, match[1])); err != nil {
			errors++
		}
	}
	return errors
}
