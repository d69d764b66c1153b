package verify

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/pmezard/go-difflib/difflib"

	"git.home.luguber.info/inful/pyrefgen/internal/util/sets"
)

// ChangeKind classifies a drifted file.
type ChangeKind string

const (
	ChangeAdded    ChangeKind = "added"
	ChangeRemoved  ChangeKind = "removed"
	ChangeModified ChangeKind = "modified"
)

// Change describes one file that differs between staged and current output.
type Change struct {
	Path string
	Kind ChangeKind
	Diff string
}

// ReadFunc returns the staged content of a relative path.
type ReadFunc func(rel string) ([]byte, error)

// Drift compares the staged files against outputDir. Files present under
// outputDir/dir but not staged are reported as removed. Changes are sorted
// by path.
func Drift(read ReadFunc, outputDir, dir string, staged []string) ([]Change, error) {
	var changes []Change
	seen := sets.New(staged...)

	for _, rel := range staged {
		want, err := read(rel)
		if err != nil {
			return nil, fmt.Errorf("read staged %s: %w", rel, err)
		}
		have, err := os.ReadFile(filepath.Join(outputDir, filepath.FromSlash(rel)))
		switch {
		case errors.Is(err, fs.ErrNotExist):
			changes = append(changes, Change{Path: rel, Kind: ChangeAdded, Diff: unified(rel, nil, want)})
		case err != nil:
			return nil, fmt.Errorf("read current %s: %w", rel, err)
		case string(have) != string(want):
			changes = append(changes, Change{Path: rel, Kind: ChangeModified, Diff: unified(rel, have, want)})
		}
	}

	current := filepath.Join(outputDir, filepath.FromSlash(dir))
	err := filepath.WalkDir(current, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && p == current {
				return filepath.SkipDir
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(outputDir, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if seen.Has(rel) {
			return nil
		}
		have, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		changes = append(changes, Change{Path: rel, Kind: ChangeRemoved, Diff: unified(rel, have, nil)})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan current output: %w", err)
	}

	sort.Slice(changes, func(i, j int) bool { return changes[i].Path < changes[j].Path })
	return changes, nil
}

func unified(rel string, a, b []byte) string {
	diff := difflib.UnifiedDiff{
		A:        lines(a),
		B:        lines(b),
		FromFile: "a/" + rel,
		ToFile:   "b/" + rel,
		Context:  3,
	}
	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return ""
	}
	return text
}

func lines(b []byte) []string {
	if len(b) == 0 {
		return nil
	}
	return difflib.SplitLines(string(b))
}
