// Package workspace provides isolated task directories under a shared root.
// Every task gets an exclusive, uniquely named directory; no two tasks ever
// share one. The root itself is a shared read-only path namespace.
package workspace

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sesigl/ai-coding-arena/internal/errors"
	"github.com/sesigl/ai-coding-arena/internal/logging"
)

// Allocator creates and tears down task workspaces.
type Allocator interface {
	// Allocate returns the path of a fresh, empty directory for the given
	// name. A pre-existing non-empty directory is reported as
	// ErrWorkspaceNotEmpty (a task-level failure, not an infrastructure one):
	// leftover files mean possible cross-contamination between tasks.
	Allocate(name string) (string, error)

	// Release removes the workspace recursively. Best-effort: it never
	// reports an error, a leaked directory is preferable to failing a round
	// during cleanup.
	Release(path string)
}

// DirAllocator allocates workspaces as subdirectories of a root directory.
type DirAllocator struct {
	root   string
	logger *logging.Logger
}

// NewDirAllocator creates an allocator rooted at root. The root directory is
// created on first allocation. A nil logger disables logging.
func NewDirAllocator(root string, logger *logging.Logger) *DirAllocator {
	if logger == nil {
		logger = logging.Nop()
	}
	return &DirAllocator{root: root, logger: logger}
}

// Root returns the shared workspace root path.
func (a *DirAllocator) Root() string { return a.root }

// Allocate implements Allocator.
func (a *DirAllocator) Allocate(name string) (string, error) {
	if err := os.MkdirAll(a.root, 0o755); err != nil {
		return "", errors.NewInfrastructure("create workspace root", err).WithPath(a.root)
	}

	path := filepath.Join(a.root, name)

	info, err := os.Stat(path)
	switch {
	case err == nil:
		if !info.IsDir() {
			return "", errors.NewInfrastructure("allocate workspace",
				errors.New("target exists and is not a directory")).WithPath(path)
		}
		empty, emptyErr := isEmptyDir(path)
		if emptyErr != nil {
			return "", errors.NewInfrastructure("inspect workspace", emptyErr).WithPath(path)
		}
		if !empty {
			return "", errors.Wrapf(errors.ErrWorkspaceNotEmpty, "workspace %s", path)
		}
		// Existing but empty: safe to reuse.
	case os.IsNotExist(err):
		if mkErr := os.Mkdir(path, 0o755); mkErr != nil {
			return "", errors.NewInfrastructure("create workspace", mkErr).WithPath(path)
		}
	default:
		return "", errors.NewInfrastructure("inspect workspace", err).WithPath(path)
	}

	a.logger.Debug("workspace allocated", "path", path)
	return path, nil
}

// Release implements Allocator.
func (a *DirAllocator) Release(path string) {
	if path == "" {
		return
	}
	if err := os.RemoveAll(path); err != nil {
		a.logger.Warn("failed to release workspace", "path", path, "error", err)
	}
}

func isEmptyDir(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	_, err = f.Readdirnames(1)
	if err == io.EOF {
		return true, nil
	}
	return false, err
}
