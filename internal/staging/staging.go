// Package staging implements the write boundary for generated documents.
//
// Documents are written into a sibling staging directory (<output>_stage)
// and only promoted into the output directory once the whole run succeeded.
// Promotion replaces each staged top-level entry (normally "reference")
// and leaves anything else in the output directory untouched.
package staging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/pyrefgen/internal/logfields"
	"git.home.luguber.info/inful/pyrefgen/internal/util/sets"
)

var (
	// ErrNotStarted indicates use of the area before Begin or after Finalize/Abort.
	ErrNotStarted = errors.New("staging area not started")
	// ErrInvalidPath indicates a staged path that is absolute or escapes the staging root.
	ErrInvalidPath = errors.New("invalid staged path")
	// ErrPromoteFailed indicates moving staged content into the output directory failed.
	ErrPromoteFailed = errors.New("promote staged output failed")
)

// Area collects staged documents for one run.
type Area struct {
	outputDir string
	stageDir  string
	files     sets.Set[string]
	editPaths map[string]string
}

// NewArea creates a staging area that promotes into outputDir.
func NewArea(outputDir string) *Area {
	return &Area{
		outputDir: filepath.Clean(outputDir),
		files:     sets.New[string](),
		editPaths: make(map[string]string),
	}
}

// Begin creates an empty staging directory next to the output directory.
// Leftovers from an interrupted run are removed first.
func (a *Area) Begin() error {
	stage := a.outputDir + "_stage"
	if err := os.RemoveAll(stage); err != nil {
		return fmt.Errorf("clear stale staging directory: %w", err)
	}
	if err := os.MkdirAll(stage, 0o755); err != nil {
		return fmt.Errorf("create staging directory: %w", err)
	}
	a.stageDir = stage
	a.files = sets.New[string]()
	a.editPaths = make(map[string]string)
	slog.Debug("Initialized staging directory", slog.String("staging", stage), logfields.Path(a.outputDir))
	return nil
}

// Root returns the directory writes currently land in.
func (a *Area) Root() string {
	return a.stageDir
}

// OutputDir returns the final output directory.
func (a *Area) OutputDir() string {
	return a.outputDir
}

// Open creates (or truncates) rel inside the staging directory.
func (a *Area) Open(rel string) (io.WriteCloser, error) {
	full, clean, err := a.resolve(rel)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return nil, err
	}
	f, err := os.Create(full)
	if err != nil {
		return nil, err
	}
	a.files.Add(clean)
	return f, nil
}

// WriteFile stages data under rel.
func (a *Area) WriteFile(rel string, data []byte) error {
	w, err := a.Open(rel)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}

// Read returns the staged content of rel.
func (a *Area) Read(rel string) ([]byte, error) {
	full, _, err := a.resolve(rel)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(full)
}

// SetEditPath records the source file a staged document was generated from.
func (a *Area) SetEditPath(rel, source string) {
	a.editPaths[filepath.ToSlash(filepath.Clean(rel))] = filepath.ToSlash(source)
}

// EditPaths returns a copy of the recorded document -> source mapping.
func (a *Area) EditPaths() map[string]string {
	out := make(map[string]string, len(a.editPaths))
	for k, v := range a.editPaths {
		out[k] = v
	}
	return out
}

// Files returns the staged paths (slash separated) in sorted order.
func (a *Area) Files() []string {
	return sets.Sorted(a.files)
}

func (a *Area) resolve(rel string) (string, string, error) {
	if a.stageDir == "" {
		return "", "", ErrNotStarted
	}
	clean := filepath.Clean(filepath.FromSlash(rel))
	if !filepath.IsLocal(clean) {
		return "", "", fmt.Errorf("%w: %s", ErrInvalidPath, rel)
	}
	return filepath.Join(a.stageDir, clean), filepath.ToSlash(clean), nil
}

// Finalize promotes every staged top-level entry into the output directory.
// Strategy per entry:
//  1. Move the existing entry (if any) to <entry>.prev.
//  2. Rename the staged entry into place, restoring the backup on failure.
//  3. Remove the backup.
func (a *Area) Finalize() error {
	if a.stageDir == "" {
		return ErrNotStarted
	}
	if err := os.MkdirAll(a.outputDir, 0o755); err != nil {
		return fmt.Errorf("%w: %w", ErrPromoteFailed, err)
	}
	entries, err := os.ReadDir(a.stageDir)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPromoteFailed, err)
	}
	for _, e := range entries {
		if err := promote(filepath.Join(a.stageDir, e.Name()), filepath.Join(a.outputDir, e.Name())); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrPromoteFailed, e.Name(), err)
		}
	}
	if err := os.RemoveAll(a.stageDir); err != nil {
		slog.Warn("Failed to remove staging directory", slog.String("staging", a.stageDir), logfields.Error(err))
	}
	a.stageDir = ""
	slog.Info("Promoted staged output", logfields.Path(a.outputDir), logfields.Count(len(a.files)))
	return nil
}

func promote(src, dst string) error {
	prev := dst + ".prev"
	if err := os.RemoveAll(prev); err != nil {
		return err
	}
	backedUp := false
	if _, err := os.Stat(dst); err == nil {
		if err := os.Rename(dst, prev); err != nil {
			return fmt.Errorf("backup existing output: %w", err)
		}
		backedUp = true
	}
	if err := os.Rename(src, dst); err != nil {
		if backedUp {
			if rerr := os.Rename(prev, dst); rerr != nil {
				slog.Error("Failed to restore previous output", logfields.Path(dst), logfields.Error(rerr))
			}
		}
		return err
	}
	if backedUp {
		if err := os.RemoveAll(prev); err != nil {
			slog.Warn("Failed to remove previous backup", logfields.Path(prev), logfields.Error(err))
		}
	}
	return nil
}

// Abort removes the staging directory after a failed or dry run.
func (a *Area) Abort() {
	if a.stageDir == "" {
		return
	}
	dir := a.stageDir
	a.stageDir = "" // prevent double cleanup
	if err := os.RemoveAll(dir); err != nil {
		slog.Warn("Failed to remove staging directory after abort", slog.String("staging", dir), logfields.Error(err))
		return
	}
	slog.Debug("Removed staging directory after abort", slog.String("staging", dir))
}

