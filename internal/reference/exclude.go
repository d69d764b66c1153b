package reference

import (
	"path"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/pyrefgen/internal/metrics"
)

const (
	initMarker  = "__init__"
	mainMarker  = "__main__"
	sourceExt   = ".py"
	privateMark = "_"
)

// ShouldExclude reports whether path is skipped: private base names, files
// whose absolute path ends with an excludeFiles entry, or files whose
// containing directory ends with an excludeDirs entry. Matching is a plain
// suffix match on slash-normalized paths.
func ShouldExclude(p string, excludeFiles, excludeDirs []string) bool {
	_, excluded := exclusionReason(p, normalizePaths(excludeFiles), normalizePaths(excludeDirs))
	return excluded
}

// exclusionReason expects already normalized exclusion lists.
func exclusionReason(p string, excludeFiles, excludeDirs []string) (metrics.ExcludeReason, bool) {
	if isPrivate(filepath.Base(p)) {
		return metrics.ReasonPrivate, true
	}

	abs, err := filepath.Abs(p)
	if err != nil {
		abs = p
	}
	abs = filepath.ToSlash(abs)
	for _, suffix := range excludeFiles {
		if strings.HasSuffix(abs, suffix) {
			return metrics.ReasonExcludedFile, true
		}
	}

	dir := filepath.ToSlash(filepath.Dir(p))
	for _, suffix := range excludeDirs {
		if strings.HasSuffix(dir, suffix) {
			return metrics.ReasonExcludedDir, true
		}
	}
	return "", false
}

// isPrivate treats underscore-prefixed names as private. The package
// initializer and entry point markers are handled by target derivation instead.
func isPrivate(base string) bool {
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == initMarker || stem == mainMarker {
		return false
	}
	return strings.HasPrefix(base, privateMark)
}

// normalizePaths converts entries to forward-slash form and drops empty ones.
func normalizePaths(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if strings.TrimSpace(p) == "" {
			continue
		}
		clean := path.Clean(strings.ReplaceAll(p, "\\", "/"))
		if clean == "." {
			continue
		}
		out = append(out, clean)
	}
	return out
}
