package options

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrNotMapping indicates an options node that is neither a mapping nor empty.
var ErrNotMapping = errors.New("options must be a mapping")

// FromYAML converts a YAML mapping node into an ordered overlay. Key order and
// scalar source text are preserved; !!bool scalars become Bool values and
// sequences are kept in flow form. A missing, null or false node yields an
// empty overlay.
func FromYAML(node *yaml.Node) (Set, error) {
	if node == nil || node.Kind == 0 {
		return nil, nil
	}
	node = resolve(node)
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		node = resolve(node.Content[0])
	}
	switch node.Kind {
	case yaml.MappingNode:
		return fromMapping(node), nil
	case yaml.ScalarNode:
		if node.Tag == "!!null" || (node.Tag == "!!bool" && !parseBool(node.Value)) {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("%w (line %d)", ErrNotMapping, node.Line)
}

func fromMapping(node *yaml.Node) Set {
	var s Set
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := resolve(node.Content[i]).Value
		s = s.With(key, fromNode(resolve(node.Content[i+1])))
	}
	return s
}

func fromNode(node *yaml.Node) Value {
	switch node.Kind {
	case yaml.MappingNode:
		return Nested(fromMapping(node))
	case yaml.ScalarNode:
		switch node.Tag {
		case "!!bool":
			return Bool(parseBool(node.Value))
		case "!!null":
			return String("null")
		}
		return String(node.Value)
	default:
		return String(flow(node))
	}
}

// flow renders any other node kind on a single line.
func flow(node *yaml.Node) string {
	c := *node
	c.Style = yaml.FlowStyle
	out, err := yaml.Marshal(&c)
	if err != nil {
		return node.Value
	}
	return strings.TrimSpace(string(out))
}

func resolve(node *yaml.Node) *yaml.Node {
	for node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	return node
}

func parseBool(s string) bool {
	b, _ := strconv.ParseBool(strings.ToLower(s))
	return b
}
