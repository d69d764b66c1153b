package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/disiqueira/gotree/v3"

	dberrors "git.home.luguber.info/inful/pyrefgen/internal/foundation/errors"
	"git.home.luguber.info/inful/pyrefgen/internal/navigation"
	"git.home.luguber.info/inful/pyrefgen/internal/pipeline"
	"git.home.luguber.info/inful/pyrefgen/internal/reference"
	"git.home.luguber.info/inful/pyrefgen/internal/staging"
)

// DiscoverCmd implements the 'discover' command.
type DiscoverCmd struct {
	Module string `short:"m" help:"Only discover this configured module"`
}

func (d *DiscoverCmd) Run(g *Global, root *CLI) error {
	ctx, cancel := signalContext()
	defer cancel()
	return d.run(ctx, g, root)
}

func (d *DiscoverCmd) run(ctx context.Context, g *Global, root *CLI) error {
	_, modules, err := loadModules(root, d.Module)
	if err != nil {
		return err
	}

	scratch, err := os.MkdirTemp("", "pyrefgen-discover-")
	if err != nil {
		return dberrors.WrapError(err, dberrors.CategoryFileSystem, "create scratch directory").Build()
	}
	defer func() { _ = os.RemoveAll(scratch) }()

	area := staging.NewArea(filepath.Join(scratch, "out"))
	if err := area.Begin(); err != nil {
		return dberrors.WrapError(err, dberrors.CategoryFileSystem, "prepare staging directory").Build()
	}
	defer area.Abort()

	report, err := pipeline.Run(ctx, modules, pipeline.Deps{Output: area})
	if err != nil {
		return err
	}

	w := g.out()
	_, _ = fmt.Fprint(w, NavTree(reference.ReferenceDir, report.Nav()).Print())
	_, _ = fmt.Fprintf(w, "%d stub(s) from %d module(s)\n", len(report.Documents()), len(report.Modules))
	for _, doc := range report.Shadowed {
		_, _ = fmt.Fprintf(w, "shadowed: %s\n", doc)
	}
	return nil
}

// NavTree renders nav as a gotree rooted at label. Entries with a document
// show it in parentheses.
func NavTree(label string, nav *navigation.Nav) gotree.Tree {
	tree := gotree.New(label)
	if nav == nil {
		return tree
	}
	stack := []gotree.Tree{tree}
	for _, it := range nav.Items() {
		text := it.Title
		if it.HasTarget {
			text += " (" + it.Target + ")"
		}
		stack = stack[:it.Level+1]
		stack = append(stack, stack[it.Level].Add(text))
	}
	return tree
}
