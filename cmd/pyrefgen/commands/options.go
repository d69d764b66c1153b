package commands

import (
	"fmt"
	"log/slog"

	"git.home.luguber.info/inful/pyrefgen/internal/config"
	dberrors "git.home.luguber.info/inful/pyrefgen/internal/foundation/errors"
	"git.home.luguber.info/inful/pyrefgen/internal/logfields"
	"git.home.luguber.info/inful/pyrefgen/internal/options"
)

// OptionsCmd implements the 'options' command.
type OptionsCmd struct {
	Module string `short:"m" help:"Apply the option overrides of this configured module"`
}

func (o *OptionsCmd) Run(g *Global, root *CLI) error {
	var overrides options.Set
	if o.Module != "" {
		cfg, err := config.Load(root.Config)
		if err != nil {
			return err
		}
		m, ok := cfg.Module(o.Module)
		if !ok {
			return moduleNotConfigured(o.Module)
		}
		overrides, err = options.FromYAML(&m.Options)
		if err != nil {
			return dberrors.WrapError(err, dberrors.CategoryConfig, "invalid options").
				WithContext("module", o.Module).Build()
		}
		for _, key := range options.Unknown(overrides) {
			slog.Warn("Unknown renderer option", logfields.Module(o.Module), slog.String("option", key))
		}
	}
	_, _ = fmt.Fprint(g.out(), options.Encode(options.Merge(options.Defaults(), overrides), 0))
	return nil
}
