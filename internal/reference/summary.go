package reference

import (
	"fmt"
	"io"
	"log/slog"

	"git.home.luguber.info/inful/pyrefgen/internal/logfields"
	"git.home.luguber.info/inful/pyrefgen/internal/navigation"
)

// GenerateSummary writes the literate listing of nav to SummaryPath. It runs
// once per build, after every module has been rendered.
func GenerateSummary(out Writer, nav *navigation.Nav) error {
	w, err := out.Open(SummaryPath)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSummaryWriteFailed, err)
	}
	if _, err := io.WriteString(w, nav.Literate()); err != nil {
		_ = w.Close()
		return fmt.Errorf("%w: %w", ErrSummaryWriteFailed, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrSummaryWriteFailed, err)
	}
	slog.Debug("Wrote summary", logfields.DocPath(SummaryPath), logfields.Count(nav.Len()))
	return nil
}
