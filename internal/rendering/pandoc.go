// Package rendering turns a composed CV document into a finished artifact (PDF or HTML).
package rendering

import (
	"context"
	"fmt"
	"io"
	"log"
	"os/exec"
	"strings"
	"time"

	"github.com/jonathan/cvgen/internal/markup"
)

const (
	// DefaultPandocCommand is used when no renderer command is configured.
	DefaultPandocCommand = "pandoc"
	// DefaultPDFEngine is the LaTeX engine pandoc drives.
	DefaultPDFEngine = "pdflatex"
)

// PandocRenderer renders PDF by writing the document with front matter to a
// transient Markdown file and running pandoc on it.
type PandocRenderer struct {
	Command     string // resolved executable path
	PDFEngine   string
	FrontMatter FrontMatter
	Runner      CommandRunner
	Timeout     time.Duration
	Verbose     bool
	Progress    io.Writer
}

// NewPandocRenderer resolves command on PATH (or as a path) once. A missing
// renderer is reported as a *RenderError.
func NewPandocRenderer(command, pdfEngine string) (*PandocRenderer, error) {
	if command == "" {
		command = DefaultPandocCommand
	}
	if pdfEngine == "" {
		pdfEngine = DefaultPDFEngine
	}

	resolved, err := exec.LookPath(command)
	if err != nil {
		return nil, &RenderError{
			Message: fmt.Sprintf("renderer %q not found. Install pandoc or set --renderer / CVGEN_RENDERER", command),
			Command: command,
			Cause:   err,
		}
	}

	return &PandocRenderer{
		Command:     resolved,
		PDFEngine:   pdfEngine,
		FrontMatter: DefaultFrontMatter,
		Runner:      &ExecRunner{},
	}, nil
}

// Args returns the pandoc arguments for converting input into output.
func (r *PandocRenderer) Args(input, output string) []string {
	return []string{input, "-o", output, "--pdf-engine=" + r.PDFEngine}
}

// Describe implements Renderer.
func (r *PandocRenderer) Describe() string {
	return fmt.Sprintf("pandoc (%s, pdf engine %s)", r.Command, r.PDFEngine)
}

// Render implements Renderer. The transient Markdown file is removed whether
// or not pandoc succeeds.
func (r *PandocRenderer) Render(ctx context.Context, doc markup.Document, output string) error {
	source, err := WithFrontMatter(doc, r.FrontMatter)
	if err != nil {
		return err
	}

	ctx, cancel := withTimeout(ctx, r.Timeout)
	defer cancel()

	return WithTransientFile(source, "md", func(path string) error {
		args := r.Args(path, output)
		cmdLine := commandLine(r.Command, args...)
		if r.Progress != nil {
			_, _ = fmt.Fprintf(r.Progress, "Running: %s\n", cmdLine)
		}
		if r.Verbose {
			log.Printf("[RENDER] transient source %s (%d bytes)", path, len(source))
		}

		stdout, stderr, err := r.Runner.Run(ctx, r.Command, args...)
		if r.Verbose && strings.TrimSpace(stdout) != "" {
			log.Printf("[RENDER] %s", strings.TrimSpace(stdout))
		}
		if err != nil {
			return &RenderError{
				Message: "error generating PDF",
				Command: cmdLine,
				Output:  strings.TrimSpace(stderr),
				Cause:   err,
			}
		}
		return nil
	})
}
