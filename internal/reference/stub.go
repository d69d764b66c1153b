package reference

import (
	"git.home.luguber.info/inful/pyrefgen/internal/options"
)

// Handler is the renderer handler declared in every stub.
const Handler = "python"

// StubContent returns the stub document body for identifier. Written stubs
// carry one additional trailing newline.
func StubContent(identifier string, overrides options.Set) string {
	return "\n::: " + identifier + "\n" +
		"    handler: " + Handler + "\n" +
		"    options:\n" +
		options.Format(overrides) + "\n"
}
