// Package rendering turns a composed CV document into a finished artifact (PDF or HTML).
package rendering

import (
	"fmt"
	"strings"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"

	"github.com/jonathan/cvgen/internal/markup"
)

const frontMatterFence = "---"

// FrontMatter holds the document-wide typesetting options prepended to the
// Markdown before rendering. Pandoc passes these through to LaTeX.
type FrontMatter struct {
	Geometry  string `yaml:"geometry"`
	FontSize  string `yaml:"fontsize"`
	LinkColor string `yaml:"linkcolor"`
}

// DefaultFrontMatter is fixed; the data document cannot change it.
var DefaultFrontMatter = FrontMatter{
	Geometry:  "margin=2cm",
	FontSize:  "11pt",
	LinkColor: "blue",
}

// Margin extracts the margin from the geometry options, e.g. "2cm" from
// "margin=2cm,top=1cm". It returns "" when no margin is set.
func (fm FrontMatter) Margin() string {
	for _, opt := range strings.Split(fm.Geometry, ",") {
		key, value, ok := strings.Cut(strings.TrimSpace(opt), "=")
		if ok && key == "margin" {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

// WithFrontMatter returns the renderer source: a fenced YAML front-matter
// block, a blank line, then the document followed by a newline.
func WithFrontMatter(doc markup.Document, fm FrontMatter) (string, error) {
	meta, err := yaml.Marshal(fm)
	if err != nil {
		return "", &RenderError{
			Message: "failed to encode front matter",
			Cause:   err,
		}
	}

	var sb strings.Builder
	sb.WriteString(frontMatterFence + "\n")
	sb.Write(meta)
	sb.WriteString(frontMatterFence + "\n\n")
	sb.WriteString(doc.String())
	sb.WriteString("\n")
	return sb.String(), nil
}

// SplitFrontMatter separates a renderer source back into its front matter
// and Markdown body.
func SplitFrontMatter(source string) (FrontMatter, []byte, error) {
	var fm FrontMatter
	body, err := frontmatter.Parse(strings.NewReader(source), &fm)
	if err != nil {
		return FrontMatter{}, nil, &RenderError{
			Message: fmt.Sprintf("failed to parse front matter: %v", err),
			Cause:   err,
		}
	}
	return fm, body, nil
}
