// Package reference walks Python module sources and emits one stub document
// per public module, registering each in a navigation tree.
package reference

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"git.home.luguber.info/inful/pyrefgen/internal/locate"
	"git.home.luguber.info/inful/pyrefgen/internal/logfields"
	"git.home.luguber.info/inful/pyrefgen/internal/metrics"
	"git.home.luguber.info/inful/pyrefgen/internal/navigation"
	"git.home.luguber.info/inful/pyrefgen/internal/observability"
	"git.home.luguber.info/inful/pyrefgen/internal/options"
)

// Module describes one documented package.
type Module struct {
	Name         string
	RootPath     string
	ExcludeFiles []string
	ExcludeDirs  []string
	Options      options.Set
}

// SourceDir returns the traversal root of the module.
func (m Module) SourceDir() string {
	return filepath.Join(m.RootPath, m.Name)
}

// Writer opens staged documents by output-relative path.
type Writer interface {
	Open(rel string) (io.WriteCloser, error)
}

// EditPathRecorder is implemented by writers that track the source file of
// each generated document.
type EditPathRecorder interface {
	SetEditPath(rel, source string)
}

// Renderer emits stub documents through a Writer.
type Renderer struct {
	out       Writer
	recorder  metrics.Recorder
	editPaths *locate.EditPaths
}

// NewRenderer returns a renderer writing through out.
func NewRenderer(out Writer) *Renderer {
	return &Renderer{
		out:       out,
		recorder:  metrics.NoopRecorder{},
		editPaths: locate.NewEditPaths(),
	}
}

// WithRecorder sets the metrics recorder. A nil recorder restores the no-op default.
func (r *Renderer) WithRecorder(rec metrics.Recorder) *Renderer {
	if rec == nil {
		rec = metrics.NoopRecorder{}
	}
	r.recorder = rec
	return r
}

// Sources lists the .py files under the module source directory. Entries of
// each directory are visited in lexical order, so "a/x.py" precedes "a.py".
func Sources(m Module) ([]string, error) {
	root := m.SourceDir()
	var files []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), sourceExt) {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrWalkFailed, root, err)
	}
	return files, nil
}

// Render emits a stub for every qualifying source file of m, registers it in
// nav and returns the emitted output paths in traversal order.
func (r *Renderer) Render(ctx context.Context, m Module, nav *navigation.Nav) ([]string, error) {
	start := time.Now()
	defer func() { r.recorder.ObserveModuleDuration(m.Name, time.Since(start)) }()

	files, err := Sources(m)
	if err != nil {
		return nil, err
	}

	excludeFiles := normalizePaths(m.ExcludeFiles)
	excludeDirs := normalizePaths(m.ExcludeDirs)

	var emitted []string
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return emitted, err
		}

		if reason, skip := exclusionReason(file, excludeFiles, excludeDirs); skip {
			observability.DebugContext(ctx, "Excluded source file", logfields.File(file), logfields.Reason(string(reason)))
			r.recorder.IncFileExcluded(m.Name, reason)
			continue
		}

		target, ok, err := TargetFor(m.RootPath, file)
		if err != nil {
			return emitted, err
		}
		if !ok {
			observability.DebugContext(ctx, "Skipped entry point", logfields.File(file))
			r.recorder.IncFileExcluded(m.Name, metrics.ReasonEntryPoint)
			continue
		}
		if err := nav.Set(target.Segments, target.DocPath); err != nil {
			return emitted, fmt.Errorf("%w: %s: %w", ErrNavigationFailed, file, err)
		}
		if err := r.writeStub(target.OutputPath, target.Identifier, m.Options); err != nil {
			return emitted, err
		}
		if rec, ok := r.out.(EditPathRecorder); ok {
			rec.SetEditPath(target.OutputPath, r.editPaths.For(m.RootPath, file))
		}

		observability.DebugContext(ctx, "Emitted stub", logfields.Identifier(target.Identifier), logfields.DocPath(target.OutputPath))
		r.recorder.IncStubEmitted(m.Name)
		emitted = append(emitted, target.OutputPath)
	}

	observability.InfoContext(ctx, "Rendered module", logfields.Count(len(emitted)))
	return emitted, nil
}

func (r *Renderer) writeStub(rel, identifier string, opts options.Set) error {
	w, err := r.out.Open(rel)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrStubWriteFailed, rel, err)
	}
	if _, err := io.WriteString(w, StubContent(identifier, opts)+"\n"); err != nil {
		_ = w.Close()
		return fmt.Errorf("%w: %s: %w", ErrStubWriteFailed, rel, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrStubWriteFailed, rel, err)
	}
	return nil
}
