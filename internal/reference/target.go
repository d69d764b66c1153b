package reference

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"
)

const (
	// ReferenceDir is the output directory stubs are written under.
	ReferenceDir = "reference"
	// SummaryPath is the output path of the generated navigation summary.
	SummaryPath = ReferenceDir + "/SUMMARY.md"

	indexDoc = "index.md"
)

// Target describes the stub generated for one source file.
type Target struct {
	Segments   []string // Module path segments, e.g. ["pkg", "mod"]
	Identifier string   // Dotted identifier in NFKC form, e.g. "pkg.mod"
	DocPath    string   // Document path relative to ReferenceDir
	OutputPath string   // Document path relative to the output root
}

// TargetFor derives the stub target of file relative to rootPath. The
// second return is false for entry point modules, which get no stub.
func TargetFor(rootPath, file string) (Target, bool, error) {
	rel, err := filepath.Rel(rootPath, file)
	if err != nil || !filepath.IsLocal(rel) {
		return Target{}, false, fmt.Errorf("%w: %s from %s", ErrInvalidRelativePath, file, rootPath)
	}
	rel = strings.TrimSuffix(rel, filepath.Ext(rel))

	segments := strings.Split(filepath.ToSlash(rel), "/")

	var docPath string
	switch segments[len(segments)-1] {
	case mainMarker:
		return Target{}, false, nil
	case initMarker:
		segments = segments[:len(segments)-1]
		docPath = path.Join(append(append([]string(nil), segments...), indexDoc)...)
	default:
		docPath = path.Join(segments...) + ".md"
	}
	if len(segments) == 0 {
		return Target{}, false, fmt.Errorf("%w: %s has no module segments", ErrInvalidRelativePath, file)
	}

	return Target{
		Segments:   segments,
		// Python compares identifiers in NFKC form; paths keep the file name.
		Identifier: norm.NFKC.String(strings.Join(segments, ".")),
		DocPath:    docPath,
		OutputPath: path.Join(ReferenceDir, docPath),
	}, true, nil
}
