package locate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, nil, 0o600))
}

func TestSearchPathResolve(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	touch(t, filepath.Join(second, "pkg", "__init__.py"))
	require.NoError(t, os.MkdirAll(filepath.Join(first, "nspkg"), 0o755))
	// A namespace directory earlier on the path loses to a regular package later on.
	require.NoError(t, os.MkdirAll(filepath.Join(first, "pkg"), 0o755))

	sp := NewSearchPath(first, "", "  ", second)
	require.Equal(t, []string{first, second}, sp.Dirs())

	root, err := sp.Resolve("pkg")
	require.NoError(t, err)
	require.Equal(t, filepath.Clean(second), root)

	root, err = sp.Resolve("nspkg")
	require.NoError(t, err)
	require.Equal(t, filepath.Clean(first), root)
}

func TestSearchPathErrors(t *testing.T) {
	sp := NewSearchPath(t.TempDir())

	_, err := sp.Resolve("")
	require.ErrorIs(t, err, ErrNameRequired)

	_, err = sp.Resolve("missing")
	require.ErrorIs(t, err, ErrModuleNotFound)

	_, err = sp.Resolve("pkg.sub")
	require.ErrorIs(t, err, ErrInvalidName)
}

func TestFromEnvironmentOrder(t *testing.T) {
	a, b := t.TempDir(), t.TempDir()
	t.Setenv("PYTHONPATH", b)

	dirs := FromEnvironment([]string{a}).Dirs()
	require.GreaterOrEqual(t, len(dirs), 3)
	require.Equal(t, a, dirs[0])
	require.Equal(t, b, dirs[1])
}

func TestEditPathsInsideRepository(t *testing.T) {
	repoDir := t.TempDir()
	_, err := git.PlainInit(repoDir, false)
	require.NoError(t, err)

	src := filepath.Join(repoDir, "src")
	file := filepath.Join(src, "pkg", "mod.py")
	touch(t, file)

	root, ok := RepositoryRoot(src)
	require.True(t, ok)
	want, _ := filepath.EvalSymlinks(repoDir)
	got, _ := filepath.EvalSymlinks(root)
	require.Equal(t, want, got)

	require.Equal(t, "src/pkg/mod.py", NewEditPaths().For(src, file))
}

func TestEditPathsOutsideRepository(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "pkg", "mod.py")
	touch(t, file)

	if _, ok := RepositoryRoot(dir); ok {
		t.Skip("temporary directory is inside a git work tree")
	}
	require.Equal(t, "pkg/mod.py", NewEditPaths().For(dir, file))
}
