// Package markup composes a CV data tree into an ordered Markdown document.
package markup

import (
	"fmt"
	"strconv"
)

// node is a read-only view over one mapping of the data tree. It carries the
// dotted path of the mapping so shape errors can name the offending field.
type node struct {
	path string
	m    map[string]any
}

func (n node) childPath(key string) string {
	if n.path == "" {
		return key
	}
	return n.path + "." + key
}

// mapping returns the nested mapping under key. An absent or null key yields
// an empty node.
func (n node) mapping(key string) (node, error) {
	path := n.childPath(key)
	switch v := n.m[key].(type) {
	case nil:
		return node{path: path}, nil
	case map[string]any:
		return node{path: path, m: v}, nil
	default:
		return node{}, malformed(path, "mapping", v)
	}
}

// list returns the elements of the list under key, each of which must be a
// mapping. An absent or null key yields no elements.
func (n node) list(key string) ([]node, error) {
	path := n.childPath(key)
	raw, ok := n.m[key]
	if !ok || raw == nil {
		return nil, nil
	}

	items, ok := raw.([]any)
	if !ok {
		return nil, malformed(path, "list of mappings", raw)
	}

	nodes := make([]node, 0, len(items))
	for i, item := range items {
		itemPath := fmt.Sprintf("%s[%d]", path, i)
		m, ok := item.(map[string]any)
		if !ok {
			return nil, malformed(itemPath, "mapping", item)
		}
		nodes = append(nodes, node{path: itemPath, m: m})
	}
	return nodes, nil
}

// nestedList resolves container.key, e.g. experiences.info.
func (n node) nestedList(container, key string) ([]node, error) {
	c, err := n.mapping(container)
	if err != nil {
		return nil, err
	}
	return c.list(key)
}

// text returns the scalar under key as text. Absent and null values are "".
func (n node) text(key string) (string, error) {
	switch v := n.m[key].(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case bool:
		return strconv.FormatBool(v), nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case uint64:
		return strconv.FormatUint(v, 10), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case fmt.Stringer:
		return v.String(), nil
	default:
		return "", malformed(n.childPath(key), "scalar", v)
	}
}

// texts reads several scalar fields at once, stopping at the first
// malformed one.
func (n node) texts(keys ...string) ([]string, error) {
	values := make([]string, len(keys))
	for i, key := range keys {
		v, err := n.text(key)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}
