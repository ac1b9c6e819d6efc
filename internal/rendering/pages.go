package rendering

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// CountPDFPages counts the pages of a rendered PDF.
// It tries pdfinfo first, then falls back to ghostscript.
func CountPDFPages(ctx context.Context, runner CommandRunner, pdfPath string) (int, error) {
	if runner == nil {
		runner = &ExecRunner{}
	}

	if count, err := countPagesWithPdfinfo(ctx, runner, pdfPath); err == nil {
		return count, nil
	}

	if count, err := countPagesWithGhostscript(ctx, runner, pdfPath); err == nil {
		return count, nil
	}

	return 0, &RenderError{
		Message: "failed to count PDF pages: neither pdfinfo nor ghostscript available. Install poppler-utils (pdfinfo) or ghostscript",
	}
}

// countPagesWithPdfinfo looks for the "Pages: N" line of pdfinfo output
func countPagesWithPdfinfo(ctx context.Context, runner CommandRunner, pdfPath string) (int, error) {
	stdout, _, err := runner.Run(ctx, "pdfinfo", pdfPath)
	if err != nil {
		return 0, fmt.Errorf("pdfinfo command failed: %w", err)
	}

	for _, line := range strings.Split(stdout, "\n") {
		if !strings.HasPrefix(line, "Pages:") {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) >= 2 {
			if count, err := strconv.Atoi(parts[1]); err == nil {
				return count, nil
			}
		}
	}

	return 0, fmt.Errorf("could not parse page count from pdfinfo output")
}

// countPagesWithGhostscript asks gs for pdfpagecount
func countPagesWithGhostscript(ctx context.Context, runner CommandRunner, pdfPath string) (int, error) {
	script := fmt.Sprintf("(%s) (r) file runpdfbegin pdfpagecount = quit", postScriptString(pdfPath))
	stdout, _, err := runner.Run(ctx, "gs", "-q", "-dNODISPLAY", "-dSAFER", "--permit-file-read="+pdfPath, "-c", script)
	if err != nil {
		return 0, fmt.Errorf("ghostscript command failed: %w", err)
	}

	out := strings.TrimSpace(stdout)
	count, err := strconv.Atoi(out)
	if err != nil {
		return 0, fmt.Errorf("could not parse page count from ghostscript output: %s", out)
	}
	return count, nil
}

// postScriptString escapes s for use inside a PostScript (...) string literal.
func postScriptString(s string) string {
	return strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`).Replace(s)
}
