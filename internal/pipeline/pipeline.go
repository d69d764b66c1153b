// Package pipeline runs a complete reference build: every configured module
// is rendered in order into one navigation accumulator, then the summary is
// written and checked against the emitted stubs.
package pipeline

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	dberrors "git.home.luguber.info/inful/pyrefgen/internal/foundation/errors"
	"git.home.luguber.info/inful/pyrefgen/internal/logfields"
	"git.home.luguber.info/inful/pyrefgen/internal/metrics"
	"git.home.luguber.info/inful/pyrefgen/internal/navigation"
	"git.home.luguber.info/inful/pyrefgen/internal/observability"
	"git.home.luguber.info/inful/pyrefgen/internal/reference"
	"git.home.luguber.info/inful/pyrefgen/internal/verify"
)

// Output is the staged write boundary the pipeline renders into.
type Output interface {
	reference.Writer
}

// Deps are the collaborators of a run.
type Deps struct {
	Output   Output
	Recorder metrics.Recorder
}

// Run renders modules in order and writes the summary. There is no partial
// success: the first error aborts the run and is returned classified, along
// with a report describing how far the run got.
func Run(ctx context.Context, modules []reference.Module, deps Deps) (*Report, error) {
	recorder := deps.Recorder
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}

	report := newReport(uuid.NewString())
	ctx = observability.WithBuildID(ctx, report.BuildID)

	fail := func(status Status, err error) (*Report, error) {
		report.finish(status)
		outcome := metrics.OutcomeFailed
		if status == StatusCanceled {
			outcome = metrics.OutcomeCanceled
		}
		recorder.IncBuildOutcome(outcome)
		recorder.ObserveBuildDuration(report.Duration)
		observability.ErrorContext(ctx, "Reference build failed", logfields.Error(err))
		return report, err
	}

	if len(modules) == 0 {
		return fail(StatusFailed, dberrors.ConfigError("no modules configured").Build())
	}
	if deps.Output == nil {
		return fail(StatusFailed, dberrors.NewError(dberrors.CategoryInternal, "output writer required").Build())
	}

	nav := navigation.New()
	renderer := reference.NewRenderer(deps.Output).WithRecorder(recorder)

	observability.InfoContext(ctx, "Starting reference build", logfields.Count(len(modules)))
	for _, m := range modules {
		mctx := observability.WithStage(observability.WithModule(ctx, m.Name), "render")
		start := time.Now()

		// Each module folds into its own tree first so a failed module leaves
		// the accumulator untouched.
		moduleNav := navigation.New()
		emitted, err := renderer.Render(mctx, m, moduleNav)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return fail(StatusCanceled, err)
			}
			return fail(StatusFailed, classifyRenderError(m, err))
		}
		if err := nav.Merge(moduleNav); err != nil {
			return fail(StatusFailed, dberrors.BuildError(err, "merge navigation").
				WithContext("module", m.Name).Build())
		}

		report.Modules = append(report.Modules, ModuleReport{
			Name:      m.Name,
			Source:    m.SourceDir(),
			Documents: emitted,
		})
		observability.DebugContext(mctx, "Module rendered",
			logfields.Count(len(emitted)),
			logfields.DurationMS(float64(time.Since(start).Microseconds())/1000))
	}

	sctx := observability.WithStage(ctx, "summary")
	if err := reference.GenerateSummary(deps.Output, nav); err != nil {
		return fail(StatusFailed, dberrors.FileSystemError(err, "write summary").
			WithContext("path", reference.SummaryPath).Build())
	}
	report.Summary = reference.SummaryPath
	report.nav = nav

	result := verify.Completeness(navTargets(nav), reference.ReferenceDir, report.Documents())
	if len(result.Dangling) > 0 {
		return fail(StatusFailed, dberrors.BuildError(result.Err(), "summary verification failed").Build())
	}
	// A package directory and a same-named module both map to one entry;
	// the later one wins the summary link.
	report.Shadowed = result.Missing
	for _, doc := range result.Missing {
		observability.WarnContext(sctx, "Stub shadowed in summary", logfields.DocPath(doc))
	}

	if ep, ok := deps.Output.(interface{ EditPaths() map[string]string }); ok {
		report.EditPaths = ep.EditPaths()
	}

	report.finish(StatusSuccess)
	recorder.IncBuildOutcome(metrics.OutcomeSuccess)
	recorder.ObserveBuildDuration(report.Duration)
	observability.InfoContext(ctx, "Reference build complete",
		logfields.Count(len(report.Documents())),
		logfields.DurationMS(float64(report.Duration.Microseconds())/1000))
	return report, nil
}

func navTargets(nav *navigation.Nav) []string {
	var targets []string
	for _, it := range nav.Items() {
		if it.HasTarget {
			targets = append(targets, it.Target)
		}
	}
	return targets
}

func classifyRenderError(m reference.Module, err error) error {
	b := dberrors.FileSystemError(err, "render module "+m.Name)
	if errors.Is(err, reference.ErrInvalidRelativePath) || errors.Is(err, reference.ErrNavigationFailed) {
		b = dberrors.BuildError(err, "render module "+m.Name)
	}
	return b.WithContext("module", m.Name).WithContext("source", m.SourceDir()).Build()
}
