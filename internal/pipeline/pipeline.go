package pipeline

import (
	"context"
	"fmt"
	"hash/fnv"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"discshelf/internal/disc"
	"discshelf/internal/fsops"
	"discshelf/internal/logging"
	"discshelf/internal/organizer"
	"discshelf/internal/playlist"
	"discshelf/internal/services"
)

// Options configures a single pipeline run.
type Options struct {
	Root    string
	Recurse bool
	Preview bool
}

// Report summarizes everything a run did (or, in preview, would do).
type Report struct {
	RunID   string
	Root    string
	Preview bool

	Groups             int
	FilesMoved         int
	CueRewrites        int
	Warnings           int
	DirsPruned         int
	PlaylistsWritten   int
	PlaylistsRepaired  int
	PlaylistsRelocated int
	PlaylistsRemoved   int

	Audit   []playlist.AuditResult
	Actions []fsops.Action
}

// AuditFailures counts playlists the audit classified as FAIL.
func (r Report) AuditFailures() int {
	failures := 0
	for _, result := range r.Audit {
		if result.Status == playlist.StatusFail {
			failures++
		}
	}
	return failures
}

// Run executes one full organize pass over the library root. Preview runs
// record intended mutations instead of performing them and skip the audit,
// since the tree they would audit does not exist yet.
func Run(ctx context.Context, opts Options, logger *slog.Logger) (Report, error) {
	report := Report{Preview: opts.Preview, RunID: uuid.NewString()}

	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return report, services.Wrap(services.ErrValidation, "pipeline", "resolve root", opts.Root, err)
	}
	report.Root = root
	info, err := os.Stat(root)
	if err != nil {
		return report, services.Wrap(services.ErrValidation, "pipeline", "stat root", root, err)
	}
	if !info.IsDir() {
		return report, services.Wrap(services.ErrValidation, "pipeline", "stat root", root+" is not a directory", nil)
	}

	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logger.With(logging.String(logging.FieldRunID, report.RunID))

	if !opts.Preview {
		lock := flock.New(lockPath(root))
		ok, lockErr := lock.TryLock()
		if lockErr != nil {
			return report, services.Wrap(services.ErrTransient, "pipeline", "acquire lock", lock.Path(), lockErr)
		}
		if !ok {
			return report, services.Wrap(services.ErrTransient, "pipeline", "acquire lock",
				"another run is organizing this library", nil)
		}
		defer func() {
			if unlockErr := lock.Unlock(); unlockErr != nil {
				logger.Warn("failed to release library lock", logging.Error(unlockErr))
			}
		}()
	}

	var ops fsops.Ops = fsops.Real{}
	var recorder *fsops.Recorder
	if opts.Preview {
		recorder = fsops.NewRecorder(logger)
		ops = recorder
	}

	scanner := disc.NewScanner(logger)
	files, _, err := scanner.Scan(root, opts.Recurse)
	if err != nil {
		return report, services.Wrap(services.ErrTransient, "pipeline", "scan", root, err)
	}

	groups := organizer.BuildGroups(files)
	report.Groups = len(groups)
	logger.Info("library scanned",
		logging.String(logging.FieldPath, root),
		logging.Int("files", len(files)),
		logging.Int("groups", len(groups)),
	)

	org := organizer.New(ops, logger)
	manager := playlist.NewManager(ops, logger)

	// Playlists touched this run are exempt from the repair pass: freshly
	// written ones are already correct, and in preview a "removed" playlist
	// is still on disk and must not be removed twice.
	skip := map[string]struct{}{}
	var created []string

	for _, group := range groups {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		stats, err := org.OrganizeGroup(root, group)
		report.FilesMoved += stats.Moved
		report.CueRewrites += stats.CueRewrites
		report.Warnings += stats.Warnings
		report.DirsPruned += stats.PrunedDirs
		if err != nil {
			return report, services.Wrap(services.ErrTransient, "pipeline", "organize", group.Title, err)
		}

		sync, err := manager.Sync(root, group)
		if err != nil {
			return report, services.Wrap(services.ErrTransient, "pipeline", "playlist sync", group.Title, err)
		}
		if sync.Updated {
			report.PlaylistsWritten++
		}
		report.PlaylistsRemoved += len(sync.Removed)
		if sync.Written != "" {
			skip[sync.Written] = struct{}{}
			created = append(created, sync.Written)
		}
		if opts.Preview {
			for _, removed := range sync.Removed {
				skip[removed] = struct{}{}
			}
		}
	}

	if err := ctx.Err(); err != nil {
		return report, err
	}

	// Rescan for playlists after the moves so the repair pass sees the
	// post-organize layout.
	playlists, err := scanner.ScanPlaylists(root, opts.Recurse)
	if err != nil {
		return report, services.Wrap(services.ErrTransient, "pipeline", "rescan playlists", root, err)
	}

	repair, err := manager.Repair(root, playlists, skip)
	report.PlaylistsRepaired += repair.Rewritten
	report.PlaylistsRelocated += repair.Relocated
	report.PlaylistsRemoved += len(repair.Removed)
	if err != nil {
		return report, services.Wrap(services.ErrTransient, "pipeline", "playlist repair", root, err)
	}

	if opts.Preview {
		report.Actions = recorder.Actions()
		logger.Info("preview complete", logging.Int("actions", len(report.Actions)))
		return report, nil
	}

	// The audit set is the union of both passes: playlists the repair pass
	// kept plus the ones the creation pass wrote, which a non-recursive
	// rescan does not see inside fresh per-title subdirectories.
	known := append([]string{}, repair.Kept...)
	seen := map[string]struct{}{}
	for _, path := range known {
		seen[path] = struct{}{}
	}
	for _, path := range created {
		if _, ok := seen[path]; !ok {
			known = append(known, path)
		}
	}

	report.Audit = playlist.NewAuditor(logger).Audit(known)
	logger.Info("run complete",
		logging.Int("moved", report.FilesMoved),
		logging.Int("cue_rewrites", report.CueRewrites),
		logging.Int("playlists", len(report.Audit)),
		logging.Int("audit_failures", report.AuditFailures()),
	)
	return report, nil
}

// lockPath derives a per-library lock file under the system temp directory,
// so concurrent runs against the same root exclude each other while distinct
// libraries stay independent.
func lockPath(root string) string {
	h := fnv.New64a()
	_, _ = h.Write([]byte(root))
	return filepath.Join(os.TempDir(), fmt.Sprintf("discshelf-%x.lock", h.Sum64()))
}
