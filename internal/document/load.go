// Package document loads CV data files into a plain tree of mappings, lists and scalars.
package document

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// MaxInputSize limits data files to 1 MiB.
const MaxInputSize = 1 << 20

const mergeKey = "<<"

// Alias expansion may build at most maxExpansionRatio values per node in the
// source, and never fewer than minExpansionBudget in total.
const (
	maxExpansionRatio  = 10
	minExpansionBudget = 10000
)

// Load reads a YAML (or JSON) data file and returns its root mapping.
func Load(path string) (map[string]any, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &LoadError{
			Message: fmt.Sprintf("failed to read file %s", path),
			Cause:   err,
		}
	}
	if info.Size() > MaxInputSize {
		return nil, &LoadError{
			Message: fmt.Sprintf("file %s is %d bytes (max %d)", path, info.Size(), MaxInputSize),
		}
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{
			Message: fmt.Sprintf("failed to read file %s", path),
			Cause:   err,
		}
	}

	return Parse(content)
}

// Parse decodes YAML content into a tree of map[string]any, []any, string
// and nil. Scalars keep the exact text written in the source, so "2020"
// and "01" are not reinterpreted as numbers. An empty document yields an
// empty mapping.
func Parse(content []byte) (map[string]any, error) {
	if len(content) > MaxInputSize {
		return nil, &LoadError{
			Message: fmt.Sprintf("input is %d bytes (max %d)", len(content), MaxInputSize),
		}
	}

	var root yaml.Node
	if err := yaml.Unmarshal(content, &root); err != nil {
		return nil, &LoadError{
			Message: "failed to parse YAML",
			Cause:   err,
		}
	}

	// Empty input leaves the node zero-valued.
	if root.Kind == 0 || (root.Kind == yaml.DocumentNode && len(root.Content) == 0) {
		return map[string]any{}, nil
	}

	c := newConverter(&root)
	value, err := c.convert(&root)
	if err != nil {
		return nil, err
	}

	switch v := value.(type) {
	case nil:
		return map[string]any{}, nil
	case map[string]any:
		return v, nil
	default:
		return nil, &LoadError{
			Message: fmt.Sprintf("document root must be a mapping, got %s", describe(&root)),
		}
	}
}

// converter turns a yaml.Node tree into plain Go values. It tracks the
// aliases currently being expanded and the number of values built.
type converter struct {
	expanding map[*yaml.Node]bool
	built     int
	budget    int
}

func newConverter(root *yaml.Node) *converter {
	budget := countNodes(root) * maxExpansionRatio
	if budget < minExpansionBudget {
		budget = minExpansionBudget
	}
	return &converter{
		expanding: make(map[*yaml.Node]bool),
		budget:    budget,
	}
}

// countNodes counts the nodes written in the source, without following aliases.
func countNodes(n *yaml.Node) int {
	count := 1
	for _, child := range n.Content {
		count += countNodes(child)
	}
	return count
}

// convert turns a yaml.Node into plain Go values.
func (c *converter) convert(n *yaml.Node) (any, error) {
	c.built++
	if c.built > c.budget {
		return nil, &LoadError{
			Message: fmt.Sprintf("aliases expand to more than %d values", c.budget),
		}
	}

	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) != 1 {
			return nil, &LoadError{
				Message: "invalid YAML structure: document node should have exactly one child",
			}
		}
		return c.convert(n.Content[0])
	case yaml.AliasNode:
		if c.expanding[n.Alias] {
			return nil, &LoadError{
				Message: fmt.Sprintf("anchor %q value contains itself", n.Value),
			}
		}
		c.expanding[n.Alias] = true
		defer delete(c.expanding, n.Alias)
		return c.convert(n.Alias)
	case yaml.ScalarNode:
		if n.ShortTag() == "!!null" {
			return nil, nil
		}
		return n.Value, nil
	case yaml.SequenceNode:
		items := make([]any, 0, len(n.Content))
		for _, child := range n.Content {
			v, err := c.convert(child)
			if err != nil {
				return nil, err
			}
			items = append(items, v)
		}
		return items, nil
	case yaml.MappingNode:
		return c.convertMapping(n)
	default:
		return nil, &LoadError{
			Message: fmt.Sprintf("unsupported YAML node at line %d", n.Line),
		}
	}
}

// convertMapping builds a map from key/value node pairs. Merge keys ("<<")
// contribute only the keys the mapping does not define itself, regardless
// of where they appear.
func (c *converter) convertMapping(n *yaml.Node) (map[string]any, error) {
	m := make(map[string]any, len(n.Content)/2)
	var merges []*yaml.Node

	for i := 0; i+1 < len(n.Content); i += 2 {
		keyNode, valueNode := n.Content[i], n.Content[i+1]
		if keyNode.Kind != yaml.ScalarNode {
			return nil, &LoadError{
				Message: fmt.Sprintf("mapping key at line %d must be a scalar", keyNode.Line),
			}
		}
		if keyNode.Value == mergeKey && keyNode.ShortTag() == "!!merge" {
			merges = append(merges, valueNode)
			continue
		}

		v, err := c.convert(valueNode)
		if err != nil {
			return nil, err
		}
		m[keyNode.Value] = v
	}

	for _, merge := range merges {
		if err := c.applyMerge(m, merge); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// applyMerge handles both "<<: *a" and "<<: [*a, *b]"; earlier sources win.
func (c *converter) applyMerge(m map[string]any, merge *yaml.Node) error {
	sources := []*yaml.Node{merge}
	if merge.Kind == yaml.SequenceNode {
		sources = merge.Content
	}

	for _, src := range sources {
		v, err := c.convert(src)
		if err != nil {
			return err
		}
		extra, ok := v.(map[string]any)
		if !ok {
			return &LoadError{
				Message: fmt.Sprintf("merge value at line %d must be a mapping", src.Line),
			}
		}
		for key, value := range extra {
			if _, exists := m[key]; !exists {
				m[key] = value
			}
		}
	}
	return nil
}

// describe names the kind of the top-level node for error messages.
func describe(n *yaml.Node) string {
	if n.Kind == yaml.DocumentNode && len(n.Content) == 1 {
		n = n.Content[0]
	}
	for n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	switch n.Kind {
	case yaml.SequenceNode:
		return "list"
	case yaml.ScalarNode:
		return "scalar"
	default:
		return "unknown"
	}
}
