package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBuildID    = "build_id"
	KeyModule     = "module"
	KeyIdentifier = "identifier"
	KeyPath       = "path"
	KeyFile       = "file"
	KeyDocPath    = "doc_path"
	KeyReason     = "reason"
	KeyCount      = "count"
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func BuildID(id string) slog.Attr      { return slog.String(KeyBuildID, id) }
func Module(name string) slog.Attr     { return slog.String(KeyModule, name) }
func Identifier(id string) slog.Attr   { return slog.String(KeyIdentifier, id) }
func Path(p string) slog.Attr          { return slog.String(KeyPath, p) }
func File(f string) slog.Attr          { return slog.String(KeyFile, f) }
func DocPath(p string) slog.Attr       { return slog.String(KeyDocPath, p) }
func Reason(r string) slog.Attr        { return slog.String(KeyReason, r) }
func Count(n int) slog.Attr            { return slog.Int(KeyCount, n) }
func Stage(name string) slog.Attr      { return slog.String(KeyStage, name) }
func DurationMS(ms float64) slog.Attr  { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
