package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	dberrors "git.home.luguber.info/inful/pyrefgen/internal/foundation/errors"
	"git.home.luguber.info/inful/pyrefgen/internal/metrics"
	"git.home.luguber.info/inful/pyrefgen/internal/reference"
	"git.home.luguber.info/inful/pyrefgen/internal/staging"
)

type outcomeRecorder struct {
	metrics.NoopRecorder
	outcomes []metrics.BuildOutcome
}

func (o *outcomeRecorder) IncBuildOutcome(outcome metrics.BuildOutcome) {
	o.outcomes = append(o.outcomes, outcome)
}

func writeSources(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, f := range files {
		p := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte("pass\n"), 0o600))
	}
}

func newArea(t *testing.T) *staging.Area {
	t.Helper()
	area := staging.NewArea(filepath.Join(t.TempDir(), "docs"))
	require.NoError(t, area.Begin())
	t.Cleanup(area.Abort)
	return area
}

func TestRunFoldsModulesIntoOneSummary(t *testing.T) {
	src := t.TempDir()
	writeSources(t, src,
		"alpha/__init__.py", "alpha/core.py", "alpha/__main__.py",
		"beta/__init__.py", "beta/tests/test_b.py", "beta/util.py",
	)
	area := newArea(t)
	rec := &outcomeRecorder{}

	modules := []reference.Module{
		{Name: "alpha", RootPath: src},
		{Name: "beta", RootPath: src, ExcludeDirs: []string{"tests"}},
	}
	report, err := Run(context.Background(), modules, Deps{Output: area, Recorder: rec})
	require.NoError(t, err)

	require.Equal(t, StatusSuccess, report.Status)
	require.NotEmpty(t, report.BuildID)
	require.Equal(t, []string{
		"reference/alpha/index.md",
		"reference/alpha/core.md",
		"reference/beta/index.md",
		"reference/beta/util.md",
	}, report.Documents())
	require.Equal(t, reference.SummaryPath, report.Summary)
	require.Empty(t, report.Shadowed)
	require.Equal(t, 4, report.Nav().Len())
	require.Equal(t, []metrics.BuildOutcome{metrics.OutcomeSuccess}, rec.outcomes)
	require.Contains(t, report.EditPaths, "reference/alpha/core.md")

	summary, err := area.Read(reference.SummaryPath)
	require.NoError(t, err)
	require.Equal(t,
		"* [alpha](alpha/index.md)\n"+
			"    * [core](alpha/core.md)\n"+
			"* [beta](beta/index.md)\n"+
			"    * [util](beta/util.md)\n",
		string(summary))

	require.ElementsMatch(t, append(report.Documents(), reference.SummaryPath), area.Files())
}

func TestRunReportsShadowedStubs(t *testing.T) {
	src := t.TempDir()
	writeSources(t, src, "pkg/__init__.py", "pkg/a.py", "pkg/a/__init__.py")

	report, err := Run(context.Background(), []reference.Module{{Name: "pkg", RootPath: src}}, Deps{Output: newArea(t)})
	require.NoError(t, err)
	require.Equal(t, []string{"pkg/a/index.md"}, report.Shadowed)
}

func TestRunAcceptsFilenamesOutsideLinkSyntax(t *testing.T) {
	src := t.TempDir()
	writeSources(t, src, "pkg/__init__.py", "pkg/a)b.py", "pkg/my mod.py")
	area := newArea(t)

	report, err := Run(context.Background(), []reference.Module{{Name: "pkg", RootPath: src}}, Deps{Output: area})
	require.NoError(t, err)
	require.Equal(t, StatusSuccess, report.Status)
	require.Empty(t, report.Shadowed)
	require.Equal(t, []string{
		"reference/pkg/index.md",
		"reference/pkg/a)b.md",
		"reference/pkg/my mod.md",
	}, report.Documents())

	summary, err := area.Read(reference.SummaryPath)
	require.NoError(t, err)
	require.Equal(t,
		"* [pkg](pkg/index.md)\n"+
			"    * [a)b](pkg/a)b.md)\n"+
			"    * [my mod](pkg/my mod.md)\n",
		string(summary))
}

func TestRunFailures(t *testing.T) {
	t.Run("no modules", func(t *testing.T) {
		rec := &outcomeRecorder{}
		report, err := Run(context.Background(), nil, Deps{Output: newArea(t), Recorder: rec})
		require.Error(t, err)
		require.True(t, dberrors.HasCategory(err, dberrors.CategoryConfig))
		require.Equal(t, StatusFailed, report.Status)
		require.Equal(t, []metrics.BuildOutcome{metrics.OutcomeFailed}, rec.outcomes)
	})

	t.Run("missing module source", func(t *testing.T) {
		_, err := Run(context.Background(),
			[]reference.Module{{Name: "ghost", RootPath: t.TempDir()}}, Deps{Output: newArea(t)})
		require.ErrorIs(t, err, reference.ErrWalkFailed)
		require.True(t, dberrors.HasCategory(err, dberrors.CategoryFileSystem))
	})

	t.Run("canceled", func(t *testing.T) {
		src := t.TempDir()
		writeSources(t, src, "pkg/__init__.py")
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		rec := &outcomeRecorder{}

		report, err := Run(ctx, []reference.Module{{Name: "pkg", RootPath: src}}, Deps{Output: newArea(t), Recorder: rec})
		require.ErrorIs(t, err, context.Canceled)
		require.Equal(t, StatusCanceled, report.Status)
		require.Equal(t, []metrics.BuildOutcome{metrics.OutcomeCanceled}, rec.outcomes)
	})

	t.Run("unstarted output", func(t *testing.T) {
		src := t.TempDir()
		writeSources(t, src, "pkg/__init__.py")
		area := staging.NewArea(filepath.Join(t.TempDir(), "docs"))

		_, err := Run(context.Background(), []reference.Module{{Name: "pkg", RootPath: src}}, Deps{Output: area})
		require.ErrorIs(t, err, staging.ErrNotStarted)
		require.ErrorIs(t, err, reference.ErrStubWriteFailed)
	})
}

func TestReportWriteYAML(t *testing.T) {
	src := t.TempDir()
	writeSources(t, src, "pkg/__init__.py", "pkg/mod.py")
	report, err := Run(context.Background(), []reference.Module{{Name: "pkg", RootPath: src}}, Deps{Output: newArea(t)})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out", "report.yaml")
	require.NoError(t, report.WriteYAML(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var decoded struct {
		BuildID string `yaml:"build_id"`
		Status  string `yaml:"status"`
		Modules []struct {
			Name      string   `yaml:"name"`
			Documents []string `yaml:"documents"`
		} `yaml:"modules"`
		Duration string `yaml:"duration"`
	}
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	require.Equal(t, report.BuildID, decoded.BuildID)
	require.Equal(t, "success", decoded.Status)
	require.Len(t, decoded.Modules, 1)
	require.Equal(t, []string{"reference/pkg/index.md", "reference/pkg/mod.md"}, decoded.Modules[0].Documents)
	require.True(t, strings.HasSuffix(decoded.Duration, "s"))
}
