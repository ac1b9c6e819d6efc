package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/cvgen/internal/rendering"
)

type composeOptions struct {
	outputFile  string
	frontMatter bool
}

func newComposeCmd(root *rootOptions) *cobra.Command {
	opts := &composeOptions{}

	cmd := &cobra.Command{
		Use:   "compose [input]",
		Short: "Compose the CV data into Markdown without rendering it",
		Long:  "Reads the CV data file and writes the composed Markdown to stdout or --out. With --front-matter the renderer's YAML header is prepended.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompose(cmd, root, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.outputFile, "out", "o", "", "Path to output Markdown file (default stdout)")
	cmd.Flags().BoolVar(&opts.frontMatter, "front-matter", false, "Prepend the renderer front-matter block")

	return cmd
}

func runCompose(cmd *cobra.Command, root *rootOptions, opts *composeOptions, args []string) error {
	cfg, err := resolveConfig(root, args)
	if err != nil {
		return err
	}

	doc, err := loadAndCompose(cfg.Input, cfg.Verbose)
	if err != nil {
		return err
	}

	content := doc.String() + "\n"
	if opts.frontMatter {
		content, err = rendering.WithFrontMatter(doc, rendering.DefaultFrontMatter)
		if err != nil {
			return err
		}
	}

	if opts.outputFile == "" {
		_, _ = fmt.Fprint(cmd.OutOrStdout(), content)
		return nil
	}

	outputDir := filepath.Dir(opts.outputFile)
	if outputDir != "" && outputDir != "." {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(opts.outputFile, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Successfully composed: %s\n", opts.outputFile)
	return nil
}
