package options

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const defaultBlock = `      show_root_heading: false
      allow_inspection: false
      show_root_full_path: true
      find_stubs_package: true
      show_source: false
      show_submodules: false
      members_order: source
      inherited_members: false
      summary:
        attributes: true
        methods: true
        classes: true
        modules: false
      imported_members: true
      docstring_section_style: spacy
      relative_crossrefs: true
      show_root_members_full_path: false
      show_object_full_path: false
      annotations_path: source
      show_category_heading: true
      group_by_category: true
      show_signature_annotations: true
      separate_signature: true
      signature_crossrefs: true
`

func TestEncode(t *testing.T) {
	tests := []struct {
		name   string
		set    Set
		indent int
		want   string
	}{
		{"simple", Set{{"key", String("value")}}, 0, "key: value\n"},
		{"nested", Set{{"key", Nested(Set{{"nested", String("value")}})}}, 0, "key:\n  nested: value\n"},
		{"boolean", Set{{"key", Bool(true)}}, 0, "key: true\n"},
		{"false boolean", Set{{"key", Bool(false)}}, 1, "  key: false\n"},
		{"empty nested", Set{{"key", Nested(nil)}}, 0, "key:\n"},
		{"negative indent", Set{{"key", String("v")}}, -2, "key: v\n"},
		{"empty", nil, 3, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Encode(tt.set, tt.indent))
		})
	}
}

func TestFormatDefaults(t *testing.T) {
	require.Equal(t, defaultBlock, Format(nil))
	require.Equal(t, defaultBlock, Format(Set{}))
	require.Len(t, Defaults(), 20)
}

func TestFormatSingleOverrideChangesOnlyThatKey(t *testing.T) {
	for _, key := range Defaults().Keys() {
		t.Run(key, func(t *testing.T) {
			got := strings.Split(Format(Set{{key, String("custom")}}), "\n")
			want := strings.Split(defaultBlock, "\n")

			idx := -1
			for i, line := range want {
				if strings.HasPrefix(line, "      "+key+":") {
					idx = i
					break
				}
			}
			require.NotEqual(t, -1, idx)
			require.Equal(t, "      "+key+": custom", got[idx])

			// Everything before the key is untouched.
			require.Equal(t, want[:idx], got[:idx])
			// Only the summary block collapses; other keys keep their defaults.
			tailWant := want[idx+1:]
			if key == Summary {
				tailWant = tailWant[4:]
			}
			require.Equal(t, tailWant, got[idx+1:])
		})
	}
}

func TestMergeIsShallow(t *testing.T) {
	merged := Merge(Defaults(), Set{{Summary, Nested(Set{{SummaryModules, Bool(true)}})}})
	summary, ok := merged.Get(Summary)
	require.True(t, ok)
	require.Equal(t, Set{{SummaryModules, Bool(true)}}, summary.Set())

	// The defaults themselves are not mutated.
	summary, _ = Defaults().Get(Summary)
	require.Len(t, summary.Set(), 4)
}

func TestMergeAppendsUnknownKeys(t *testing.T) {
	merged := Merge(Defaults(), Set{{"custom_flag", Bool(true)}, {ShowSource, String("true")}})
	keys := merged.Keys()
	require.Equal(t, "custom_flag", keys[len(keys)-1])
	v, _ := merged.Get(ShowSource)
	require.Equal(t, "true", v.String())
	require.Equal(t, []string{"custom_flag"}, Unknown(Set{{"custom_flag", Bool(true)}, {ShowSource, String("true")}}))
}

func TestWithDoesNotAlias(t *testing.T) {
	base := Set{{"a", String("1")}}
	next := base.With("a", String("2"))
	require.Equal(t, "1", base[0].Value.String())
	require.Equal(t, "2", next[0].Value.String())
}

func TestFromYAML(t *testing.T) {
	src := `
show_root_heading: true
members_order: alphabetical
quoted: "true"
count: 3
empty:
filters: [private, dunder]
summary:
  modules: true
  classes: false
`
	var doc yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte(src), &doc))

	set, err := FromYAML(&doc)
	require.NoError(t, err)
	require.Equal(t, []string{"show_root_heading", "members_order", "quoted", "count", "empty", "filters", "summary"}, set.Keys())

	require.Equal(t, `show_root_heading: true
members_order: alphabetical
quoted: true
count: 3
empty: null
filters: [private, dunder]
summary:
  modules: true
  classes: false
`, Encode(set, 0))

	v, _ := set.Get(ShowRootHeading)
	require.Equal(t, Bool(true), v)
	v, _ = set.Get("quoted")
	require.Equal(t, String("true"), v)
}

func TestFromYAMLEmptyAndInvalid(t *testing.T) {
	set, err := FromYAML(nil)
	require.NoError(t, err)
	require.Nil(t, set)

	for _, src := range []string{"false", "null", "~"} {
		var doc yaml.Node
		require.NoError(t, yaml.Unmarshal([]byte(src), &doc))
		set, err := FromYAML(&doc)
		require.NoError(t, err, src)
		require.Nil(t, set, src)
	}

	var doc yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte("[a, b]"), &doc))
	_, err = FromYAML(&doc)
	require.ErrorIs(t, err, ErrNotMapping)
}
