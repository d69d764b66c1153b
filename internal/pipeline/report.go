package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/pyrefgen/internal/navigation"
)

// Status is the outcome of a run.
type Status string

const (
	StatusRunning  Status = "running"
	StatusSuccess  Status = "success"
	StatusFailed   Status = "failed"
	StatusCanceled Status = "canceled"
)

// ModuleReport lists what one module produced.
type ModuleReport struct {
	Name      string   `yaml:"name"`
	Source    string   `yaml:"source"`
	Documents []string `yaml:"documents"`
}

// Report describes a pipeline run.
type Report struct {
	BuildID   string            `yaml:"build_id"`
	Status    Status            `yaml:"status"`
	Modules   []ModuleReport    `yaml:"modules"`
	Summary   string            `yaml:"summary,omitempty"`
	Shadowed  []string          `yaml:"shadowed,omitempty"`
	EditPaths map[string]string `yaml:"edit_paths,omitempty"`
	StartTime time.Time         `yaml:"start_time"`
	EndTime   time.Time         `yaml:"end_time"`
	Duration  time.Duration     `yaml:"duration"`

	nav *navigation.Nav
}

func newReport(buildID string) *Report {
	return &Report{BuildID: buildID, Status: StatusRunning, StartTime: time.Now()}
}

func (r *Report) finish(status Status) {
	r.Status = status
	r.EndTime = time.Now()
	r.Duration = r.EndTime.Sub(r.StartTime)
}

// Documents returns every emitted stub path across modules in render order.
func (r *Report) Documents() []string {
	var out []string
	for _, m := range r.Modules {
		out = append(out, m.Documents...)
	}
	return out
}

// Nav returns the navigation tree built by a successful run, or nil.
func (r *Report) Nav() *navigation.Nav {
	return r.nav
}

// WriteYAML writes the report to path, creating parent directories.
func (r *Report) WriteYAML(path string) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create report directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
