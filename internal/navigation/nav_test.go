package navigation

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNavSetAndLiterate(t *testing.T) {
	nav := New()
	require.NoError(t, nav.Set([]string{"pkg"}, "pkg/index.md"))
	require.NoError(t, nav.Set([]string{"pkg", "mod_a"}, "pkg/mod_a.md"))
	require.NoError(t, nav.Set([]string{"pkg", "sub", "deep"}, "pkg/sub/deep.md"))
	require.NoError(t, nav.Set([]string{"other"}, "other/index.md"))

	require.Equal(t, 4, nav.Len())
	require.Equal(t, []string{
		"* [pkg](pkg/index.md)\n",
		"    * [mod_a](pkg/mod_a.md)\n",
		"    * sub\n",
		"        * [deep](pkg/sub/deep.md)\n",
		"* [other](other/index.md)\n",
	}, nav.BuildLiterate())
}

func TestNavOverwriteKeepsPosition(t *testing.T) {
	nav := New()
	require.NoError(t, nav.Set([]string{"a"}, "a.md"))
	require.NoError(t, nav.Set([]string{"b"}, "b.md"))
	require.NoError(t, nav.Set([]string{"a"}, "a/index.md"))

	require.Equal(t, 2, nav.Len())
	require.Equal(t, "* [a](a/index.md)\n* [b](b.md)\n", nav.Literate())

	target, ok := nav.Get([]string{"a"})
	require.True(t, ok)
	require.Equal(t, "a/index.md", target)
}

func TestNavEscapesMarkdownTitles(t *testing.T) {
	nav := New()
	require.NoError(t, nav.Set([]string{"_private"}, "_private.md"))
	require.NoError(t, nav.Set([]string{"plain_name"}, "plain_name.md"))
	require.Equal(t, "* [\\_private](_private.md)\n* [plain_name](plain_name.md)\n", nav.Literate())
}

func TestNavRejectsEmptyPaths(t *testing.T) {
	nav := New()
	require.ErrorIs(t, nav.Set(nil, "x.md"), ErrEmptyPath)
	require.ErrorIs(t, nav.Set([]string{"pkg", ""}, "x.md"), ErrEmptySegment)
}

func TestNavGetMissing(t *testing.T) {
	nav := New()
	require.NoError(t, nav.Set([]string{"pkg", "mod"}, "pkg/mod.md"))

	_, ok := nav.Get([]string{"pkg"})
	require.False(t, ok, "intermediate nodes carry no target")
	_, ok = nav.Get([]string{"nope"})
	require.False(t, ok)
	_, ok = nav.Get(nil)
	require.False(t, ok)
}

func TestNavMergeMatchesSharedAccumulator(t *testing.T) {
	shared := New()
	first, second := New(), New()

	entries := []struct {
		nav  *Nav
		segs []string
		path string
	}{
		{first, []string{"pkg"}, "pkg/index.md"},
		{first, []string{"pkg", "mod"}, "pkg/mod.md"},
		{second, []string{"pkg", "extra"}, "pkg/extra.md"},
		{second, []string{"tools"}, "tools/index.md"},
	}
	for _, e := range entries {
		require.NoError(t, shared.Set(e.segs, e.path))
		require.NoError(t, e.nav.Set(e.segs, e.path))
	}

	merged := New()
	require.NoError(t, merged.Merge(first))
	require.NoError(t, merged.Merge(second))
	require.NoError(t, merged.Merge(nil))

	require.Equal(t, shared.Literate(), merged.Literate())
	require.Equal(t, shared.Len(), merged.Len())
}

func TestNavEmpty(t *testing.T) {
	nav := New()
	require.Empty(t, nav.Items())
	require.Equal(t, "", nav.Literate())
}
