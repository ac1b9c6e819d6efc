// Package main implements the cvgen CLI, which turns a YAML CV data file into a PDF.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// rootOptions holds the flags shared by every command.
type rootOptions struct {
	configFile     string
	engine         string
	renderer       string
	pdfEngine      string
	chromePath     string
	timeoutSeconds int
	verbose        bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "cvgen [input] [output]",
		Short: "Generate a CV document from YAML data",
		Long: "cvgen reads a YAML CV data file, composes it into Markdown and renders it into a PDF " +
			"with pandoc (or HTML / headless Chrome). Input and output default to data.yml and cv.pdf " +
			"next to the executable.",
		Args:          cobra.MaximumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, opts, args)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.configFile, "config", "c", "", "Path to JSON config file")
	flags.StringVar(&opts.engine, "engine", "", "Rendering engine: pandoc, html or chrome (default pandoc)")
	flags.StringVar(&opts.renderer, "renderer", "", "pandoc executable name or path (default pandoc)")
	flags.StringVar(&opts.pdfEngine, "pdf-engine", "", "PDF engine passed to pandoc (default pdflatex)")
	flags.StringVar(&opts.chromePath, "chrome-path", "", "Browser binary for the chrome engine")
	flags.IntVar(&opts.timeoutSeconds, "timeout", 0, "Renderer timeout in seconds (0 = no timeout)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Print detailed debug information")

	rootCmd.AddCommand(newComposeCmd(opts))
	rootCmd.AddCommand(newCheckCmd(opts))

	return rootCmd
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
