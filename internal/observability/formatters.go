// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/cvgen/internal/markup"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines by rune
		runes := []rune(line)
		if len(runes) > boxWidth-4 {
			runes = append(runes[:boxWidth-7], []rune("...")...)
		}
		// Pad by rune count
		fmt.Fprintf(p.out, "│ %s%s │\n", string(runes), strings.Repeat(" ", boxWidth-4-len(runes)))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintDocumentSummary outputs the composed document's title, size and sections.
func (p *Printer) PrintDocumentSummary(doc markup.Document) {
	if len(doc) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Title:    %s\n", strings.TrimPrefix(doc[0], "# ")))
	sb.WriteString(fmt.Sprintf("Lines:    %d\n", strings.Count(doc.String(), "\n")+1))
	sb.WriteString("\n")

	headings := doc.Headings()
	sb.WriteString(fmt.Sprintf("Sections (%d):\n", len(headings)))
	for _, h := range headings {
		sb.WriteString(fmt.Sprintf("  • %s\n", h))
	}

	p.printBox("COMPOSED DOCUMENT", strings.TrimSuffix(sb.String(), "\n"))
}

// RenderPlan describes one renderer invocation for verbose output.
type RenderPlan struct {
	Input    string
	Output   string
	Renderer string
}

// PrintRenderPlan outputs where the document comes from, where it goes and
// what renders it.
func (p *Printer) PrintRenderPlan(plan RenderPlan) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Input:    %s\n", plan.Input))
	sb.WriteString(fmt.Sprintf("Output:   %s\n", plan.Output))
	sb.WriteString(fmt.Sprintf("Renderer: %s", plan.Renderer))

	p.printBox("RENDER PLAN", sb.String())
}
