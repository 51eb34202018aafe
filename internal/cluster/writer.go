package cluster

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/nomoriel/phase2vec/internal/ctxlog"
)

// ManifestFileName is the dispatch manifest written under the save
// directory: one executable command line per job.
const ManifestFileName = "jobs.sh"

// IncompleteDispatchError reports a job count mismatch in the dispatch
// manifest: fewer commands were persisted than jobs were expanded. It
// signals a dispatch bug, never a tolerable partial success.
type IncompleteDispatchError struct {
	Expected int
	Written  int
	cause    error
}

func (e *IncompleteDispatchError) Error() string {
	msg := fmt.Sprintf("incomplete dispatch: wrote %d of %d jobs", e.Written, e.Expected)
	if e.cause != nil {
		msg += ": " + e.cause.Error()
	}
	return msg
}

func (e *IncompleteDispatchError) Unwrap() error {
	return e.cause
}

// WriteManifest streams the command lines (shebang first) to w and returns
// the number of jobs written. A short write surfaces as an
// IncompleteDispatchError wrapping the underlying cause.
func WriteManifest(w io.Writer, commands []Command) (int, error) {
	if _, err := io.WriteString(w, "#!/bin/bash\n"); err != nil {
		return 0, &IncompleteDispatchError{Expected: len(commands), Written: 0, cause: err}
	}
	written := 0
	for _, cmd := range commands {
		if _, err := io.WriteString(w, cmd.Line+"\n"); err != nil {
			return written, &IncompleteDispatchError{Expected: len(commands), Written: written, cause: err}
		}
		written++
	}
	return written, nil
}

// WriteJobs persists the wrapped commands under saveDir: batch scripts first
// (when the backend produced any), then the jobs.sh manifest. It returns the
// number of jobs written, which always equals len(commands) on success.
func WriteJobs(ctx context.Context, commands []Command, saveDir string) (int, error) {
	logger := ctxlog.FromContext(ctx)

	for _, cmd := range commands {
		if cmd.Script == nil {
			continue
		}
		path := filepath.Join(saveDir, cmd.Script.Name)
		if err := os.WriteFile(path, cmd.Script.Contents, 0o755); err != nil {
			return 0, fmt.Errorf("failed to write batch script %s: %w", path, err)
		}
		logger.Debug("Wrote batch script.", "path", path)
	}

	manifestPath := filepath.Join(saveDir, ManifestFileName)
	f, err := os.OpenFile(manifestPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o755)
	if err != nil {
		return 0, fmt.Errorf("failed to create dispatch manifest %s: %w", manifestPath, err)
	}

	written, werr := WriteManifest(f, commands)
	if serr := f.Sync(); werr == nil && serr != nil {
		werr = &IncompleteDispatchError{Expected: len(commands), Written: written, cause: serr}
	}
	if cerr := f.Close(); werr == nil && cerr != nil {
		werr = &IncompleteDispatchError{Expected: len(commands), Written: written, cause: cerr}
	}
	if werr != nil {
		return written, werr
	}
	if written != len(commands) {
		return written, &IncompleteDispatchError{Expected: len(commands), Written: written}
	}

	logger.Debug("Wrote dispatch manifest.", "path", manifestPath, "jobs", written)
	return written, nil
}
