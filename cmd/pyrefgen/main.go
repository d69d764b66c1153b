package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/pyrefgen/cmd/pyrefgen/commands"
	dberrors "git.home.luguber.info/inful/pyrefgen/internal/foundation/errors"
	"git.home.luguber.info/inful/pyrefgen/internal/version"
)

func main() {
	var cli commands.CLI
	parser := kong.Parse(&cli,
		kong.Name("pyrefgen"),
		kong.Description("Generate API reference stubs and a literate SUMMARY.md for Python packages."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)

	global := &commands.Global{Logger: slog.Default(), Out: os.Stdout}
	if err := parser.Run(global, &cli); err != nil {
		dberrors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
	}
}
