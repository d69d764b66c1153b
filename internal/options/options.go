// Package options builds the renderer option block embedded in every stub.
//
// A Set is an ordered list of entries. Merging is shallow: an overlay entry
// replaces the whole value of the matching default, including nested sets,
// so a partial summary override drops the other summary flags.
package options

import (
	"strings"
)

// StubIndent is the base indentation level used when embedding options in a stub.
const StubIndent = 3

// Default option keys.
const (
	ShowRootHeading          = "show_root_heading"
	AllowInspection          = "allow_inspection"
	ShowRootFullPath         = "show_root_full_path"
	FindStubsPackage         = "find_stubs_package"
	ShowSource               = "show_source"
	ShowSubmodules           = "show_submodules"
	MembersOrder             = "members_order"
	InheritedMembers         = "inherited_members"
	Summary                  = "summary"
	ImportedMembers          = "imported_members"
	DocstringSectionStyle    = "docstring_section_style"
	RelativeCrossrefs        = "relative_crossrefs"
	ShowRootMembersFullPath  = "show_root_members_full_path"
	ShowObjectFullPath       = "show_object_full_path"
	AnnotationsPath          = "annotations_path"
	ShowCategoryHeading      = "show_category_heading"
	GroupByCategory          = "group_by_category"
	ShowSignatureAnnotations = "show_signature_annotations"
	SeparateSignature        = "separate_signature"
	SignatureCrossrefs       = "signature_crossrefs"

	SummaryAttributes = "attributes"
	SummaryMethods    = "methods"
	SummaryClasses    = "classes"
	SummaryModules    = "modules"
)

// Entry is a single key/value pair of a Set.
type Entry struct {
	Key   string
	Value Value
}

// Set is an ordered option mapping.
type Set []Entry

// Defaults returns a fresh copy of the default option set.
func Defaults() Set {
	return Set{
		{ShowRootHeading, String("false")},
		{AllowInspection, String("false")},
		{ShowRootFullPath, String("true")},
		{FindStubsPackage, String("true")},
		{ShowSource, String("false")},
		{ShowSubmodules, String("false")},
		{MembersOrder, String("source")},
		{InheritedMembers, String("false")},
		{Summary, Nested(Set{
			{SummaryAttributes, Bool(true)},
			{SummaryMethods, Bool(true)},
			{SummaryClasses, Bool(true)},
			{SummaryModules, Bool(false)},
		})},
		{ImportedMembers, String("true")},
		{DocstringSectionStyle, String("spacy")},
		{RelativeCrossrefs, String("true")},
		{ShowRootMembersFullPath, String("false")},
		{ShowObjectFullPath, String("false")},
		{AnnotationsPath, String("source")},
		{ShowCategoryHeading, String("true")},
		{GroupByCategory, String("true")},
		{ShowSignatureAnnotations, String("true")},
		{SeparateSignature, String("true")},
		{SignatureCrossrefs, String("true")},
	}
}

// Get returns the value stored under key.
func (s Set) Get(key string) (Value, bool) {
	for _, e := range s {
		if e.Key == key {
			return e.Value, true
		}
	}
	return Value{}, false
}

// With returns a copy of s with key set to v. An existing key keeps its
// position; a new key is appended.
func (s Set) With(key string, v Value) Set {
	out := make(Set, len(s), len(s)+1)
	copy(out, s)
	for i := range out {
		if out[i].Key == key {
			out[i].Value = v
			return out
		}
	}
	return append(out, Entry{Key: key, Value: v})
}

// Keys returns the keys of s in order.
func (s Set) Keys() []string {
	keys := make([]string, len(s))
	for i, e := range s {
		keys[i] = e.Key
	}
	return keys
}

// Merge overlays onto base at the top level only.
func Merge(base, overlay Set) Set {
	out := make(Set, len(base))
	copy(out, base)
	for _, e := range overlay {
		out = out.With(e.Key, e.Value)
	}
	return out
}

// Unknown returns the overlay keys that are not part of the default set.
func Unknown(overlay Set) []string {
	defaults := Defaults()
	var unknown []string
	for _, e := range overlay {
		if _, ok := defaults.Get(e.Key); !ok {
			unknown = append(unknown, e.Key)
		}
	}
	return unknown
}

// Format merges overrides onto the defaults and encodes the result at StubIndent.
func Format(overrides Set) string {
	return Encode(Merge(Defaults(), overrides), StubIndent)
}

// Encode serializes s as an indented YAML-like block, two spaces per level.
// Every line, nested ones included, ends with a newline.
func Encode(s Set, indent int) string {
	var b strings.Builder
	encodeTo(&b, s, max(indent, 0))
	return b.String()
}

func encodeTo(b *strings.Builder, s Set, indent int) {
	pad := strings.Repeat("  ", indent)
	for _, e := range s {
		b.WriteString(pad)
		b.WriteString(e.Key)
		b.WriteByte(':')
		if e.Value.kind == kindSet {
			b.WriteByte('\n')
			encodeTo(b, e.Value.set, indent+1)
			continue
		}
		b.WriteByte(' ')
		b.WriteString(e.Value.String())
		b.WriteByte('\n')
	}
}
