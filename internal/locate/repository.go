package locate

import (
	"log/slog"
	"path/filepath"

	"github.com/go-git/go-git/v5"

	"git.home.luguber.info/inful/pyrefgen/internal/logfields"
)

// RepositoryRoot returns the work tree root of the git repository enclosing dir.
func RepositoryRoot(dir string) (string, bool) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", false
	}
	wt, err := repo.Worktree()
	if err != nil {
		// Bare repositories have no work tree to edit in.
		return "", false
	}
	return wt.Filesystem.Root(), true
}

// EditPaths derives the edit path of generated documents: the source file
// relative to its repository work tree, or to the module root outside git.
type EditPaths struct {
	roots map[string]string
}

// NewEditPaths returns an empty, caching edit path resolver.
func NewEditPaths() *EditPaths {
	return &EditPaths{roots: make(map[string]string)}
}

// For returns the slash-separated edit path of file found under moduleRoot.
func (e *EditPaths) For(moduleRoot, file string) string {
	base, ok := e.roots[moduleRoot]
	if !ok {
		base = moduleRoot
		if abs, err := filepath.Abs(moduleRoot); err == nil {
			base = abs
			if root, found := RepositoryRoot(abs); found {
				base = root
				slog.Debug("Using repository root for edit paths", logfields.Path(root))
			}
		}
		e.roots[moduleRoot] = base
	}

	abs, err := filepath.Abs(file)
	if err != nil {
		return filepath.ToSlash(file)
	}
	rel, err := filepath.Rel(base, abs)
	if err != nil {
		return filepath.ToSlash(file)
	}
	return filepath.ToSlash(rel)
}
