// Package rendering turns a composed CV document into a finished artifact (PDF or HTML).
package rendering

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/jonathan/cvgen/internal/markup"
)

// ChromeRenderer prints the HTML page to PDF with headless Chrome. It is the
// fallback for machines without pandoc and a LaTeX distribution.
type ChromeRenderer struct {
	ExecPath string // optional; chromedp searches common locations when empty
	Timeout  time.Duration
	Verbose  bool
	Progress io.Writer
	html     *HTMLRenderer
}

// NewChromeRenderer creates a ChromeRenderer using the given browser binary.
func NewChromeRenderer(execPath string) *ChromeRenderer {
	return &ChromeRenderer{
		ExecPath: execPath,
		html:     NewHTMLRenderer(),
	}
}

// Describe implements Renderer.
func (r *ChromeRenderer) Describe() string {
	if r.ExecPath != "" {
		return fmt.Sprintf("chrome (%s)", r.ExecPath)
	}
	return "chrome (headless)"
}

// Render implements Renderer. The page is written to a transient HTML file
// that is removed once printing finishes or fails.
func (r *ChromeRenderer) Render(ctx context.Context, doc markup.Document, output string) error {
	htmlPage, err := r.html.Page(doc)
	if err != nil {
		return err
	}

	ctx, cancel := withTimeout(ctx, r.Timeout)
	defer cancel()

	return WithTransientFile(htmlPage, "html", func(path string) error {
		url := "file://" + path
		if r.Progress != nil {
			_, _ = fmt.Fprintf(r.Progress, "Running: %s print-to-pdf %s\n", r.Describe(), url)
		}

		pdf, err := r.printToPDF(ctx, url)
		if err != nil {
			return &RenderError{
				Message: "error generating PDF",
				Command: r.Describe(),
				Cause:   err,
			}
		}

		if err := os.WriteFile(output, pdf, 0644); err != nil {
			return &RenderError{
				Message: fmt.Sprintf("failed to write output file %s", output),
				Cause:   err,
			}
		}
		return nil
	})
}

func (r *ChromeRenderer) printToPDF(ctx context.Context, url string) ([]byte, error) {
	if r.Verbose {
		log.Printf("[RENDER] Starting headless browser for: %s", url)
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if r.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(r.ExecPath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	var pdf []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPreferCSSPageSize(true).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = buf
			return nil
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("browser rendering failed: %w", err)
	}

	if r.Verbose {
		log.Printf("[RENDER] Printed PDF: %d bytes", len(pdf))
	}
	return pdf, nil
}
