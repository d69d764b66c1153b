// Package config loads the pyrefgen YAML configuration and turns its module
// entries into render-ready module descriptions.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	dberrors "git.home.luguber.info/inful/pyrefgen/internal/foundation/errors"
	"git.home.luguber.info/inful/pyrefgen/internal/logfields"
)

// DefaultPath is the configuration file read when none is given.
const DefaultPath = "pyrefgen.yaml"

// DefaultOutputDirectory receives the reference tree when output.directory is unset.
const DefaultOutputDirectory = "docs"

// LogLevelEnv overrides logging.level when set.
const LogLevelEnv = "PYREFGEN_LOG_LEVEL"

// Config is the root configuration document.
type Config struct {
	Modules     []Module      `yaml:"modules"`
	SearchPaths []string      `yaml:"search_paths,omitempty"`
	Output      OutputConfig  `yaml:"output"`
	Logging     LoggingConfig `yaml:"logging"`
}

// Module configures one documented package.
type Module struct {
	Name         string   `yaml:"name"`
	Path         string   `yaml:"path,omitempty"`          // Parent directory of the package; resolved when empty
	ExcludeFiles []string `yaml:"exclude_files,omitempty"` // Path suffixes of skipped files
	ExcludeDirs  []string `yaml:"exclude_dirs,omitempty"`  // Path suffixes of skipped directories
	// Options is kept as a node so key order and scalar text survive into the stubs.
	Options yaml.Node `yaml:"options,omitempty"`
}

// OutputConfig controls where generated documents land.
type OutputConfig struct {
	Directory string `yaml:"directory"`
}

// LoggingConfig selects log verbosity and encoding.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// Load reads configPath. Variables from .env and .env.local are loaded first
// without overriding the process environment, then ${VAR} references in the
// file are expanded.
func Load(configPath string) (*Config, error) {
	loadEnvFiles()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, dberrors.WrapError(err, dberrors.CategoryConfig, "configuration file not found").
				WithContext("path", configPath).Fatal().Build()
		}
		return nil, dberrors.WrapError(err, dberrors.CategoryConfig, "failed to read config file").
			WithContext("path", configPath).Build()
	}
	return Parse([]byte(os.ExpandEnv(string(data))))
}

// Parse decodes, normalizes, defaults and validates a configuration document.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, dberrors.WrapError(err, dberrors.CategoryConfig, "failed to unmarshal config").Build()
	}
	if err := normalize(&cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadEnvFiles() {
	for _, name := range []string{".env", ".env.local"} {
		if err := godotenv.Load(name); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				slog.Warn("Failed to load environment file", logfields.File(name), logfields.Error(err))
			}
			continue
		}
		slog.Debug("Loaded environment variables", logfields.File(name))
	}
}

func normalize(cfg *Config) error {
	if env := strings.TrimSpace(os.Getenv(LogLevelEnv)); env != "" {
		cfg.Logging.Level = LogLevel(env)
	}
	if cfg.Logging.Level != "" {
		level, err := logLevelNormalizer.NormalizeWithError(string(cfg.Logging.Level))
		if err != nil {
			return dberrors.WrapError(err, dberrors.CategoryValidation, "invalid logging.level").Build()
		}
		cfg.Logging.Level = level
	}
	if cfg.Logging.Format != "" {
		format, err := logFormatNormalizer.NormalizeWithError(string(cfg.Logging.Format))
		if err != nil {
			return dberrors.WrapError(err, dberrors.CategoryValidation, "invalid logging.format").Build()
		}
		cfg.Logging.Format = format
	}
	for i := range cfg.Modules {
		m := &cfg.Modules[i]
		m.Name = strings.TrimSpace(m.Name)
		m.Path = strings.TrimSpace(m.Path)
	}
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.Output.Directory == "" {
		cfg.Output.Directory = DefaultOutputDirectory
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = LogLevelInfo
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = LogFormatText
	}
}

func validate(cfg *Config) error {
	if len(cfg.Modules) == 0 {
		return dberrors.ConfigError("no modules configured").Build()
	}
	seen := make(map[string]int, len(cfg.Modules))
	for i, m := range cfg.Modules {
		if m.Name == "" {
			return dberrors.ValidationError(fmt.Sprintf("modules[%d]: name is required", i)).Build()
		}
		if prev, dup := seen[m.Name]; dup {
			slog.Warn("Module configured more than once",
				logfields.Module(m.Name), slog.Int("first", prev), slog.Int("index", i))
		}
		seen[m.Name] = i
	}
	return nil
}

// ModuleNames returns the configured module names in order.
func (c *Config) ModuleNames() []string {
	names := make([]string, 0, len(c.Modules))
	for _, m := range c.Modules {
		names = append(names, m.Name)
	}
	return names
}

// Module returns the first module entry named name.
func (c *Config) Module(name string) (Module, bool) {
	for _, m := range c.Modules {
		if m.Name == name {
			return m, true
		}
	}
	return Module{}, false
}
