package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	prom "github.com/prometheus/client_golang/prometheus"

	dberrors "git.home.luguber.info/inful/pyrefgen/internal/foundation/errors"
	"git.home.luguber.info/inful/pyrefgen/internal/logfields"
	"git.home.luguber.info/inful/pyrefgen/internal/metrics"
	"git.home.luguber.info/inful/pyrefgen/internal/pipeline"
	"git.home.luguber.info/inful/pyrefgen/internal/reference"
	"git.home.luguber.info/inful/pyrefgen/internal/staging"
	"git.home.luguber.info/inful/pyrefgen/internal/verify"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Output      string `short:"o" help:"Output directory (overrides output.directory)"`
	Check       bool   `help:"Only report drift against the existing output; exit non-zero when stale"`
	Report      string `name:"report" help:"Write a YAML build report to this file"`
	MetricsFile string `name:"metrics-file" help:"Write Prometheus metrics in textfile-collector format"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	ctx, cancel := signalContext()
	defer cancel()
	return b.run(ctx, g, root)
}

func (b *BuildCmd) run(ctx context.Context, g *Global, root *CLI) error {
	cfg, modules, err := loadModules(root, "")
	if err != nil {
		return err
	}
	outputDir := ResolveOutputDir(b.Output, cfg)

	var recorder metrics.Recorder = metrics.NoopRecorder{}
	registry := prom.NewRegistry()
	if b.MetricsFile != "" {
		recorder = metrics.NewPrometheusRecorder(registry)
	}
	defer func() {
		if b.MetricsFile == "" {
			return
		}
		if werr := metrics.WriteTextfile(b.MetricsFile, registry); werr != nil {
			slog.Warn("Failed to write metrics file", logfields.Path(b.MetricsFile), logfields.Error(werr))
		}
	}()

	area := staging.NewArea(outputDir)
	if err := area.Begin(); err != nil {
		return dberrors.FileSystemError(err, "prepare staging directory").
			WithContext("output", outputDir).Build()
	}
	// Abort is a no-op once Finalize succeeded.
	defer area.Abort()

	report, err := pipeline.Run(ctx, modules, pipeline.Deps{Output: area, Recorder: recorder})
	if report != nil && b.Report != "" {
		if werr := report.WriteYAML(b.Report); werr != nil {
			slog.Warn("Failed to write build report", logfields.Path(b.Report), logfields.Error(werr))
		}
	}
	if err != nil {
		return err
	}

	if b.Check {
		return b.check(g, area, outputDir)
	}

	if err := area.Finalize(); err != nil {
		return dberrors.FileSystemError(err, "promote generated reference").
			WithContext("output", outputDir).Build()
	}
	_, _ = fmt.Fprintf(g.out(), "Generated %d reference documents into %s\n", len(report.Documents()), outputDir)
	return nil
}

func (b *BuildCmd) check(g *Global, area *staging.Area, outputDir string) error {
	changes, err := verify.Drift(area.Read, outputDir, reference.ReferenceDir, area.Files())
	if err != nil {
		return dberrors.FileSystemError(err, "compare generated reference").Build()
	}
	w := g.out()
	if len(changes) == 0 {
		_, _ = fmt.Fprintln(w, "Reference output is up to date")
		return nil
	}
	for _, c := range changes {
		_, _ = fmt.Fprintf(w, "%s: %s\n", c.Kind, c.Path)
		if c.Diff != "" {
			_, _ = fmt.Fprint(w, c.Diff)
		}
		if c.Path == reference.SummaryPath && c.Kind == verify.ChangeModified {
			reportSummaryEntries(w, area, outputDir)
		}
	}
	return staleOutput(len(changes))
}

func reportSummaryEntries(w io.Writer, area *staging.Area, outputDir string) {
	before, err := os.ReadFile(filepath.Join(outputDir, filepath.FromSlash(reference.SummaryPath)))
	if err != nil {
		return
	}
	after, err := area.Read(reference.SummaryPath)
	if err != nil {
		return
	}
	added, removed := verify.LinkChanges(before, after)
	for _, l := range added {
		_, _ = fmt.Fprintf(w, "summary entry added: %s\n", l)
	}
	for _, l := range removed {
		_, _ = fmt.Fprintf(w, "summary entry removed: %s\n", l)
	}
}
