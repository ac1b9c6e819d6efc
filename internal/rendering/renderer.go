// Package rendering turns a composed CV document into a finished artifact (PDF or HTML).
package rendering

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/jonathan/cvgen/internal/markup"
)

// Engine selects how a document is rendered.
type Engine string

const (
	// EnginePandoc renders PDF through pandoc and a LaTeX engine.
	EnginePandoc Engine = "pandoc"
	// EngineHTML writes a standalone HTML page without external tools.
	EngineHTML Engine = "html"
	// EngineChrome prints the HTML page to PDF with headless Chrome.
	EngineChrome Engine = "chrome"
)

// Renderer produces the output artifact for a composed document.
type Renderer interface {
	Render(ctx context.Context, doc markup.Document, output string) error
	// Describe names the engine and command for progress output.
	Describe() string
}

// Options configures New. The renderer command is resolved once, here.
type Options struct {
	Engine     Engine
	Command    string // pandoc executable name or path
	PDFEngine  string // passed to pandoc --pdf-engine
	ChromePath string // optional Chrome/Chromium executable
	Timeout    time.Duration
	Verbose    bool
	Progress   io.Writer // receives "Running: ..." lines; may be nil
}

// New builds the renderer for opts.Engine.
func New(opts Options) (Renderer, error) {
	switch opts.Engine {
	case EnginePandoc, "":
		r, err := NewPandocRenderer(opts.Command, opts.PDFEngine)
		if err != nil {
			return nil, err
		}
		r.Timeout = opts.Timeout
		r.Verbose = opts.Verbose
		r.Progress = opts.Progress
		return r, nil
	case EngineHTML:
		return NewHTMLRenderer(), nil
	case EngineChrome:
		r := NewChromeRenderer(opts.ChromePath)
		r.Timeout = opts.Timeout
		r.Verbose = opts.Verbose
		r.Progress = opts.Progress
		return r, nil
	default:
		return nil, &RenderError{Message: fmt.Sprintf("unknown engine %q", opts.Engine)}
	}
}

// withTimeout bounds ctx when d is positive. Zero means no timeout.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d > 0 {
		return context.WithTimeout(ctx, d)
	}
	return context.WithCancel(ctx)
}
