// Package rendering turns a composed CV document into a finished artifact (PDF or HTML).
package rendering

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"

	"github.com/jonathan/cvgen/internal/markup"
)

// defaultTitle is used when the document has no level-1 heading.
const defaultTitle = "Curriculum Vitae"

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
@page { margin: {{.Margin}}; }
body { font-family: "Latin Modern Roman", "Times New Roman", serif; font-size: {{.FontSize}}; line-height: 1.35; max-width: 48em; margin: 0 auto; }
a { color: {{.LinkColor}}; text-decoration: none; }
hr { border: 0; border-top: 1px solid #999; }
h1 { margin-bottom: 0.2em; }
h3 { margin-bottom: 0.1em; }
</style>
</head>
<body>
{{.Body}}
</body>
</html>
`

// pageData feeds pageTemplate.
type pageData struct {
	Title     string
	Margin    string
	FontSize  string
	LinkColor string
	Body      template.HTML
}

// HTMLRenderer writes the document as a standalone HTML page styled from the
// front matter. It needs no external tools.
type HTMLRenderer struct {
	FrontMatter FrontMatter
	markdown    goldmark.Markdown
	page        *template.Template
}

// NewHTMLRenderer creates an HTMLRenderer with the default front matter.
func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{
		FrontMatter: DefaultFrontMatter,
		markdown: goldmark.New(
			goldmark.WithExtensions(extension.Linkify),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		),
		page: template.Must(template.New("page").Parse(pageTemplate)),
	}
}

// Describe implements Renderer.
func (r *HTMLRenderer) Describe() string {
	return "html (goldmark)"
}

// Render implements Renderer.
func (r *HTMLRenderer) Render(_ context.Context, doc markup.Document, output string) error {
	page, err := r.Page(doc)
	if err != nil {
		return err
	}

	if err := os.WriteFile(output, []byte(page), 0644); err != nil {
		return &RenderError{
			Message: fmt.Sprintf("failed to write output file %s", output),
			Cause:   err,
		}
	}
	return nil
}

// Page returns the full HTML page for doc. It goes through the same
// front-matter source pandoc receives, so both engines share one styling
// contract.
func (r *HTMLRenderer) Page(doc markup.Document) (string, error) {
	source, err := WithFrontMatter(doc, r.FrontMatter)
	if err != nil {
		return "", err
	}
	return r.PageFromSource(source)
}

// PageFromSource renders a front-matter Markdown source into an HTML page.
func (r *HTMLRenderer) PageFromSource(source string) (string, error) {
	fm, body, err := SplitFrontMatter(source)
	if err != nil {
		return "", err
	}

	var htmlBody bytes.Buffer
	if err := r.markdown.Convert(body, &htmlBody); err != nil {
		return "", &RenderError{
			Message: "failed to convert markdown to HTML",
			Cause:   err,
		}
	}

	title, err := firstHeading(htmlBody.String())
	if err != nil {
		return "", err
	}

	data := pageData{
		Title:     title,
		Margin:    fm.Margin(),
		FontSize:  fm.FontSize,
		LinkColor: fm.LinkColor,
		Body:      template.HTML(htmlBody.String()), //nolint:gosec // produced by goldmark without raw HTML
	}

	var page strings.Builder
	if err := r.page.Execute(&page, data); err != nil {
		return "", &TemplateError{
			Message: "failed to execute page template",
			Cause:   err,
		}
	}
	return page.String(), nil
}

// firstHeading returns the text of the first <h1>, or defaultTitle.
func firstHeading(htmlContent string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return "", &RenderError{
			Message: "failed to parse generated HTML",
			Cause:   err,
		}
	}

	title := strings.TrimSpace(doc.Find("h1").First().Text())
	if title == "" {
		return defaultTitle, nil
	}
	return title, nil
}
