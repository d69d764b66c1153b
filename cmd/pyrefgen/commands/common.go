package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/pyrefgen/internal/config"
	"git.home.luguber.info/inful/pyrefgen/internal/locate"
	"git.home.luguber.info/inful/pyrefgen/internal/reference"
)

// Global carries state shared by all subcommands.
type Global struct {
	Logger *slog.Logger
	// Out receives user-facing command output.
	Out io.Writer
}

func (g *Global) out() io.Writer {
	if g == nil || g.Out == nil {
		return os.Stdout
	}
	return g.Out
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"pyrefgen.yaml" type:"path"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build    BuildCmd    `cmd:"" help:"Generate reference stubs and SUMMARY.md into the output directory"`
	Discover DiscoverCmd `cmd:"" help:"Show the reference navigation tree without writing output"`
	Init     InitCmd     `cmd:"" help:"Initialize a new configuration file"`
	Options  OptionsCmd  `cmd:"" help:"Print the renderer option block written into stubs"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}

// ConfigureLogging applies the configured level and format. --verbose always
// wins over the configured level.
func ConfigureLogging(cfg *config.Config, verbose bool) *slog.Logger {
	level := cfg.Logging.Level.SlogLevel()
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler = slog.NewTextHandler(os.Stderr, opts)
	if cfg.Logging.Format == config.LogFormatJSON {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// ResolveOutputDir picks the output directory. Priority: CLI flag > config.
func ResolveOutputDir(cliOutput string, cfg *config.Config) string {
	if cliOutput != "" {
		return cliOutput
	}
	return cfg.Output.Directory
}

// loadModules loads the configuration and resolves every module, restricted
// to only when it is non-empty.
func loadModules(root *CLI, only string) (*config.Config, []reference.Module, error) {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return nil, nil, err
	}
	ConfigureLogging(cfg, root.Verbose)

	if only != "" {
		m, ok := cfg.Module(only)
		if !ok {
			return nil, nil, moduleNotConfigured(only)
		}
		cfg.Modules = []config.Module{m}
	}

	modules, err := cfg.Resolve(locate.FromEnvironment(cfg.SearchPaths))
	if err != nil {
		return nil, nil, err
	}
	return cfg, modules, nil
}
