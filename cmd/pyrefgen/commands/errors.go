package commands

import (
	"fmt"

	dberrors "git.home.luguber.info/inful/pyrefgen/internal/foundation/errors"
)

func moduleNotConfigured(name string) error {
	return dberrors.NotFoundError(fmt.Sprintf("module %q is not configured", name)).
		WithContext("module", name).Build()
}

func staleOutput(changes int) error {
	return dberrors.ValidationError(fmt.Sprintf("reference output is stale: %d file(s) differ", changes)).
		WithContext("changes", changes).Build()
}
