package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/cvgen/internal/rendering"
)

func newCheckCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check the configuration and that the renderer is available",
		Long:  "Resolves flags, environment and config file, validates the result and locates the configured renderer without rendering anything.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheck(cmd, root)
		},
	}
}

func runCheck(cmd *cobra.Command, root *rootOptions) error {
	cfg, err := resolveConfig(root, nil)
	if err != nil {
		return err
	}

	renderer, err := rendering.New(rendererOptions(cfg))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "Input:    %s\n", cfg.Input)
	_, _ = fmt.Fprintf(out, "Output:   %s\n", cfg.Output)
	_, _ = fmt.Fprintf(out, "Renderer: %s\n", renderer.Describe())
	_, _ = fmt.Fprintln(out, "OK")
	return nil
}
