package config

import (
	"errors"
	"log/slog"

	dberrors "git.home.luguber.info/inful/pyrefgen/internal/foundation/errors"
	"git.home.luguber.info/inful/pyrefgen/internal/locate"
	"git.home.luguber.info/inful/pyrefgen/internal/logfields"
	"git.home.luguber.info/inful/pyrefgen/internal/options"
	"git.home.luguber.info/inful/pyrefgen/internal/reference"
)

// Resolve turns configured modules into render inputs. Modules without a
// path are looked up through resolver. Unknown option keys are kept and
// reported as warnings.
func (c *Config) Resolve(resolver locate.Resolver) ([]reference.Module, error) {
	out := make([]reference.Module, 0, len(c.Modules))
	for _, m := range c.Modules {
		rm, err := m.resolve(resolver)
		if err != nil {
			return nil, err
		}
		out = append(out, rm)
	}
	return out, nil
}

func (m Module) resolve(resolver locate.Resolver) (reference.Module, error) {
	overrides, err := options.FromYAML(&m.Options)
	if err != nil {
		return reference.Module{}, dberrors.WrapError(err, dberrors.CategoryConfig, "invalid options").
			WithContext("module", m.Name).Build()
	}
	for _, key := range options.Unknown(overrides) {
		slog.Warn("Unknown renderer option", logfields.Module(m.Name), slog.String("option", key))
	}

	root := m.Path
	if root == "" {
		root, err = resolver.Resolve(m.Name)
		if err != nil {
			return reference.Module{}, classifyLookup(m.Name, err)
		}
	}

	return reference.Module{
		Name:         m.Name,
		RootPath:     root,
		ExcludeFiles: m.ExcludeFiles,
		ExcludeDirs:  m.ExcludeDirs,
		Options:      overrides,
	}, nil
}

func classifyLookup(name string, err error) error {
	switch {
	case errors.Is(err, locate.ErrModuleNotFound):
		return dberrors.WrapError(err, dberrors.CategoryNotFound, "module not found").
			WithContext("module", name).Build()
	case errors.Is(err, locate.ErrNameRequired), errors.Is(err, locate.ErrInvalidName):
		return dberrors.WrapError(err, dberrors.CategoryValidation, "invalid module name").
			WithContext("module", name).Build()
	default:
		return dberrors.WrapError(err, dberrors.CategoryInternal, "module lookup failed").
			WithContext("module", name).Build()
	}
}
