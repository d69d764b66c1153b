// Package verify checks generated reference output: that SUMMARY.md and the
// emitted stubs agree, and how staged output differs from what is on disk.
package verify

import (
	"errors"
	"fmt"
	"strings"

	"git.home.luguber.info/inful/pyrefgen/internal/markdown"
	"git.home.luguber.info/inful/pyrefgen/internal/util/sets"
)

var (
	// ErrMissingFromSummary indicates emitted stubs that no summary entry links to.
	ErrMissingFromSummary = errors.New("stubs missing from summary")
	// ErrDanglingLink indicates summary entries linking to documents that were not emitted.
	ErrDanglingLink = errors.New("summary links to missing stubs")
)

// SummaryLinks returns the inline link destinations of a literate summary in
// listing order.
func SummaryLinks(summary []byte) []string {
	var out []string
	for _, l := range markdown.ExtractLinks(summary, markdown.Options{SkipImages: true}) {
		if l.Kind == markdown.LinkKindInline {
			out = append(out, l.Destination)
		}
	}
	return out
}

// Result is the outcome of a completeness check. Paths are relative to the
// summary's directory.
type Result struct {
	Missing  []string
	Dangling []string
}

// Err reports the first failing condition, dangling links before missing stubs.
func (r Result) Err() error {
	if len(r.Dangling) > 0 {
		return fmt.Errorf("%w: %s", ErrDanglingLink, strings.Join(r.Dangling, ", "))
	}
	if len(r.Missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingFromSummary, strings.Join(r.Missing, ", "))
	}
	return nil
}

// Completeness compares the navigation targets with the emitted stub paths.
// Emitted paths carry dir as prefix ("reference/pkg/mod.md"), targets are
// relative to dir ("pkg/mod.md"). Targets are taken from the navigation
// tree rather than parsed back out of SUMMARY.md, whose link destinations
// are written unescaped.
func Completeness(targets []string, dir string, emitted []string) Result {
	prefix := strings.TrimSuffix(dir, "/") + "/"
	docs := sets.New[string]()
	for _, p := range emitted {
		docs.Add(strings.TrimPrefix(p, prefix))
	}
	linked := sets.New(targets...)

	return Result{
		Missing:  sets.Sorted(docs.Difference(linked)),
		Dangling: sets.Sorted(linked.Difference(docs)),
	}
}

// LinkChanges lists summary link destinations present only in after (added)
// or only in before (removed), each in listing order. It reads the rendered
// Markdown, so destinations that are not valid link syntax show up as
// whatever a Markdown reader makes of them.
func LinkChanges(before, after []byte) (added, removed []string) {
	old := SummaryLinks(before)
	cur := SummaryLinks(after)
	oldSet, curSet := sets.New(old...), sets.New(cur...)
	for _, l := range cur {
		if !oldSet.Has(l) {
			added = append(added, l)
		}
	}
	for _, l := range old {
		if !curSet.Has(l) {
			removed = append(removed, l)
		}
	}
	return added, removed
}
