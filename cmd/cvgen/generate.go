package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/cvgen/internal/document"
	"github.com/jonathan/cvgen/internal/markup"
	"github.com/jonathan/cvgen/internal/observability"
	"github.com/jonathan/cvgen/internal/rendering"
)

func runGenerate(cmd *cobra.Command, opts *rootOptions, args []string) error {
	cfg, err := resolveConfig(opts, args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "Reading: %s\n", cfg.Input)

	doc, err := loadAndCompose(cfg.Input, cfg.Verbose)
	if err != nil {
		return err
	}

	rOpts := rendererOptions(cfg)
	rOpts.Progress = out
	renderer, err := rendering.New(rOpts)
	if err != nil {
		return err
	}

	if cfg.Verbose {
		printer := observability.NewPrinter(out)
		printer.PrintDocumentSummary(doc)
		printer.PrintRenderPlan(observability.RenderPlan{
			Input:    cfg.Input,
			Output:   cfg.Output,
			Renderer: renderer.Describe(),
		})
	}

	outputDir := filepath.Dir(cfg.Output)
	if outputDir != "" && outputDir != "." {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := renderer.Render(cmd.Context(), doc, cfg.Output); err != nil {
		var renderErr *rendering.RenderError
		if errors.As(err, &renderErr) && renderErr.Output != "" {
			_, _ = fmt.Fprintln(cmd.ErrOrStderr(), renderErr.Output)
		}
		return err
	}

	_, _ = fmt.Fprintf(out, "Successfully generated: %s\n", cfg.Output)

	if cfg.Verbose && rendering.Engine(cfg.Engine) != rendering.EngineHTML {
		pages, err := rendering.CountPDFPages(cmd.Context(), nil, cfg.Output)
		if err != nil {
			log.Printf("[RENDER] Warning: %v", err)
		} else {
			log.Printf("[RENDER] %s: %d page(s)", cfg.Output, pages)
		}
	}
	return nil
}

// loadAndCompose reads the data file and composes it into a Markdown document.
func loadAndCompose(path string, verbose bool) (markup.Document, error) {
	data, err := document.Load(path)
	if err != nil {
		return nil, err
	}
	if verbose {
		log.Printf("[LOAD] %s: %d top-level keys", path, len(data))
	}

	doc, err := markup.Compose(data)
	if err != nil {
		return nil, fmt.Errorf("failed to compose %s: %w", path, err)
	}
	if verbose {
		log.Printf("[COMPOSE] %d lines, %d sections", len(doc), len(doc.Headings()))
	}
	return doc, nil
}
