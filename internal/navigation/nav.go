// Package navigation holds the ordered documentation index built while
// rendering and flattens it into a literate SUMMARY listing.
package navigation

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyPath indicates an attempt to register an entry without segments.
	ErrEmptyPath = errors.New("navigation path must not be empty")
	// ErrEmptySegment indicates a navigation path containing an empty segment.
	ErrEmptySegment = errors.New("navigation path segment must not be empty")
)

// markdownEscapeChars are the leading characters that would otherwise change
// how a bullet title is parsed.
const markdownEscapeChars = "!#()*+-[\\]_`{}"

// Item is one flattened navigation node.
type Item struct {
	Level     int
	Title     string
	Target    string
	HasTarget bool
	Segments  []string
}

type node struct {
	title     string
	target    string
	hasTarget bool
	children  []*node
	byTitle   map[string]*node
}

func (n *node) child(title string) *node {
	if c, ok := n.byTitle[title]; ok {
		return c
	}
	c := &node{title: title}
	if n.byTitle == nil {
		n.byTitle = make(map[string]*node)
	}
	n.byTitle[title] = c
	n.children = append(n.children, c)
	return c
}

// Nav maps segment tuples to relative document paths. Siblings keep their
// insertion order; re-assigning a path only replaces its target.
type Nav struct {
	root    node
	entries int
}

// New returns an empty navigation tree.
func New() *Nav {
	return &Nav{}
}

// Set registers target under segments, creating intermediate nodes as needed.
func (n *Nav) Set(segments []string, target string) error {
	if len(segments) == 0 {
		return ErrEmptyPath
	}
	cur := &n.root
	for _, seg := range segments {
		if seg == "" {
			return fmt.Errorf("%w: %q", ErrEmptySegment, segments)
		}
		cur = cur.child(seg)
	}
	if !cur.hasTarget {
		n.entries++
	}
	cur.target = target
	cur.hasTarget = true
	return nil
}

// Get returns the target registered under segments.
func (n *Nav) Get(segments []string) (string, bool) {
	cur := &n.root
	for _, seg := range segments {
		next, ok := cur.byTitle[seg]
		if !ok {
			return "", false
		}
		cur = next
	}
	if cur == &n.root {
		return "", false
	}
	return cur.target, cur.hasTarget
}

// Len returns the number of registered entries.
func (n *Nav) Len() int {
	return n.entries
}

// Items returns every node in depth-first insertion order.
func (n *Nav) Items() []Item {
	var items []Item
	var walk func(parent *node, level int, prefix []string)
	walk = func(parent *node, level int, prefix []string) {
		for _, c := range parent.children {
			segs := append(append([]string(nil), prefix...), c.title)
			items = append(items, Item{
				Level:     level,
				Title:     c.title,
				Target:    c.target,
				HasTarget: c.hasTarget,
				Segments:  segs,
			})
			walk(c, level+1, segs)
		}
	}
	walk(&n.root, 0, nil)
	return items
}

// Merge replays other's entries into n in order.
func (n *Nav) Merge(other *Nav) error {
	if other == nil {
		return nil
	}
	for _, it := range other.Items() {
		if !it.HasTarget {
			continue
		}
		if err := n.Set(it.Segments, it.Target); err != nil {
			return err
		}
	}
	return nil
}

// BuildLiterate flattens the tree into bullet lines, four spaces per level.
// Each line is newline terminated.
func (n *Nav) BuildLiterate() []string {
	items := n.Items()
	lines := make([]string, 0, len(items))
	for _, it := range items {
		title := it.Title
		if strings.ContainsRune(markdownEscapeChars, rune(title[0])) {
			title = "\\" + title
		}
		if it.HasTarget {
			title = "[" + title + "](" + it.Target + ")"
		}
		lines = append(lines, strings.Repeat("    ", it.Level)+"* "+title+"\n")
	}
	return lines
}

// Literate returns the flattened listing as a single string.
func (n *Nav) Literate() string {
	return strings.Join(n.BuildLiterate(), "")
}
