// Package markup composes a CV data tree into an ordered Markdown document.
package markup

import "fmt"

// MalformedInputError reports a field whose value has the wrong shape,
// such as a scalar where a list of mappings is expected.
type MalformedInputError struct {
	Path     string // dotted field path, e.g. "experiences.info[2]"
	Expected string
	Got      string
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("malformed input: %s: expected %s, got %s", e.Path, e.Expected, e.Got)
}

func malformed(path, expected string, value any) *MalformedInputError {
	return &MalformedInputError{
		Path:     path,
		Expected: expected,
		Got:      kindOf(value),
	}
}

// kindOf names the shape of a tree value for error messages.
func kindOf(value any) string {
	switch value.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "mapping"
	case []any:
		return "list"
	case string:
		return "string"
	case bool:
		return "bool"
	case int, int64, uint64, float64:
		return "number"
	default:
		return fmt.Sprintf("%T", value)
	}
}
