// Package locate resolves Python package names to the directory that
// contains them.
package locate

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/pyrefgen/internal/logfields"
)

var (
	// ErrNameRequired indicates an empty module name.
	ErrNameRequired = errors.New("module name is required")
	// ErrModuleNotFound indicates no search path contains the module.
	ErrModuleNotFound = errors.New("module not found")
	// ErrInvalidName indicates a dotted or path-like module name.
	ErrInvalidName = errors.New("module name must be a top-level package")
)

const initFile = "__init__.py"

// Resolver maps a module name to the root path it lives under, so that
// filepath.Join(root, name) is the package directory.
type Resolver interface {
	Resolve(name string) (string, error)
}

// SearchPath resolves modules against an ordered list of directories.
type SearchPath struct {
	dirs []string
}

// NewSearchPath returns a resolver over dirs. Empty entries are dropped.
func NewSearchPath(dirs ...string) *SearchPath {
	sp := &SearchPath{}
	for _, d := range dirs {
		if d = strings.TrimSpace(d); d != "" {
			sp.dirs = append(sp.dirs, d)
		}
	}
	return sp
}

// FromEnvironment builds the search path from configured directories,
// then PYTHONPATH, then the working directory.
func FromEnvironment(configured []string) *SearchPath {
	dirs := append([]string(nil), configured...)
	dirs = append(dirs, filepath.SplitList(os.Getenv("PYTHONPATH"))...)
	if wd, err := os.Getwd(); err == nil {
		dirs = append(dirs, wd)
	}
	return NewSearchPath(dirs...)
}

// Dirs returns the search directories in lookup order.
func (s *SearchPath) Dirs() []string {
	return append([]string(nil), s.dirs...)
}

// Resolve returns the first search directory holding name as a regular
// package (with __init__.py). Namespace packages (plain directories) are
// only considered when no regular package matches.
func (s *SearchPath) Resolve(name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", ErrNameRequired
	}
	if strings.ContainsAny(name, `./\`) {
		return "", fmt.Errorf("%w: %s", ErrInvalidName, name)
	}

	namespace := ""
	for _, dir := range s.dirs {
		pkgDir := filepath.Join(dir, name)
		if isFile(filepath.Join(pkgDir, initFile)) {
			root := filepath.Dir(pkgDir)
			slog.Debug("Resolved module", logfields.Module(name), logfields.Path(root))
			return root, nil
		}
		if namespace == "" && isDir(pkgDir) {
			namespace = filepath.Dir(pkgDir)
		}
	}
	if namespace != "" {
		slog.Debug("Resolved namespace package", logfields.Module(name), logfields.Path(namespace))
		return namespace, nil
	}
	return "", fmt.Errorf("%w: %s (searched %d paths)", ErrModuleNotFound, name, len(s.dirs))
}

func isFile(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.Mode().IsRegular()
}

func isDir(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.IsDir()
}
