package markdown

// Options controls how Markdown is parsed for internal analysis.
type Options struct {
	// SkipImages omits image destinations from the result.
	SkipImages bool
}

type LinkKind string

const (
	LinkKindInline              LinkKind = "inline"
	LinkKindImage               LinkKind = "image"
	LinkKindAuto                LinkKind = "auto"
	LinkKindReferenceDefinition LinkKind = "reference_definition"
)

// Link is a link-like construct found in a Markdown body.
type Link struct {
	Kind        LinkKind
	Destination string
	Text        string
}
