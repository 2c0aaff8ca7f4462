// Package fsops is the mutation layer between the pipeline and the
// filesystem. Every destructive operation goes through an Ops value so that
// preview mode can substitute a recorder that reports actions instead of
// performing them.
package fsops

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"syscall"

	"discshelf/internal/logging"
)

// Ops abstracts the mutating filesystem calls the pipeline performs. Reads
// always go straight to the filesystem.
type Ops interface {
	MkdirAll(path string) error
	Rename(src, dst string) error
	Remove(path string) error
	WriteFile(path string, data []byte) error
	// Preview reports whether mutations are suppressed.
	Preview() bool
}

// Real performs mutations directly against the filesystem.
type Real struct{}

func (Real) MkdirAll(path string) error {
	return os.MkdirAll(path, 0o755)
}

// Rename moves src to dst atomically, overwriting dst. Cross-device moves
// fall back to copy-and-remove.
func (Real) Rename(src, dst string) error {
	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}
	var linkErr *os.LinkError
	if errors.As(err, &linkErr) && errors.Is(linkErr.Err, syscall.EXDEV) {
		if copyErr := copyFile(src, dst); copyErr != nil {
			return copyErr
		}
		return os.Remove(src)
	}
	return err
}

func (Real) Remove(path string) error {
	return os.Remove(path)
}

func (Real) WriteFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0o644)
}

func (Real) Preview() bool { return false }

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() {
		_ = out.Close()
	}()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}

// Action records one suppressed mutation during a preview run.
type Action struct {
	Op     string // mkdir, move, remove, write
	Path   string
	Target string // destination for move actions
}

// Recorder satisfies Ops by logging and recording each action without
// touching the filesystem.
type Recorder struct {
	logger  *slog.Logger
	actions []Action
}

// NewRecorder constructs a preview recorder. A nil logger disables logging.
func NewRecorder(logger *slog.Logger) *Recorder {
	return &Recorder{logger: logging.NewComponentLogger(logger, "preview")}
}

func (r *Recorder) MkdirAll(path string) error {
	r.record(Action{Op: "mkdir", Path: path}, "would create directory")
	return nil
}

func (r *Recorder) Rename(src, dst string) error {
	r.record(Action{Op: "move", Path: src, Target: dst}, "would move file")
	return nil
}

func (r *Recorder) Remove(path string) error {
	r.record(Action{Op: "remove", Path: path}, "would remove")
	return nil
}

func (r *Recorder) WriteFile(path string, data []byte) error {
	r.record(Action{Op: "write", Path: path}, "would write file")
	return nil
}

func (r *Recorder) Preview() bool { return true }

// Actions returns the suppressed mutations in the order they were attempted.
func (r *Recorder) Actions() []Action {
	return r.actions
}

func (r *Recorder) record(action Action, message string) {
	r.actions = append(r.actions, action)
	attrs := []logging.Attr{logging.String(logging.FieldPath, action.Path)}
	if action.Target != "" {
		attrs = append(attrs, logging.String("target", action.Target))
	}
	r.logger.Info(message, logging.Args(attrs...)...)
}
