package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/cvgen/internal/config"
	"github.com/jonathan/cvgen/internal/rendering"
)

const (
	defaultInputName  = "data.yml"
	defaultOutputName = "cv"
)

// resolveConfig merges flags, environment, config file and defaults, in that
// order of precedence, and fills in default paths.
func resolveConfig(opts *rootOptions, args []string) (config.Config, error) {
	flagCfg := config.Config{
		Engine:         opts.engine,
		Renderer:       opts.renderer,
		PDFEngine:      opts.pdfEngine,
		ChromePath:     opts.chromePath,
		TimeoutSeconds: opts.timeoutSeconds,
		Verbose:        opts.verbose,
	}
	if len(args) > 0 {
		flagCfg.Input = args[0]
	}
	if len(args) > 1 {
		flagCfg.Output = args[1]
	}

	envCfg, err := config.FromEnv()
	if err != nil {
		return config.Config{}, err
	}

	fileCfg := config.Config{}
	if opts.configFile != "" {
		loaded, err := config.LoadConfig(opts.configFile)
		if err != nil {
			return config.Config{}, err
		}
		fileCfg = *loaded
	}

	cfg := flagCfg.MergeWithDefaults(envCfg)
	cfg = cfg.MergeWithDefaults(fileCfg)
	cfg = cfg.MergeWithDefaults(config.Defaults())

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}

	if cfg.Input == "" || cfg.Output == "" {
		dir, err := executableDir()
		if err != nil {
			return config.Config{}, err
		}
		if cfg.Input == "" {
			cfg.Input = filepath.Join(dir, defaultInputName)
		}
		if cfg.Output == "" {
			cfg.Output = filepath.Join(dir, defaultOutputName+outputExtension(cfg.Engine))
		}
	}

	return cfg, nil
}

// executableDir returns the directory holding the running binary.
func executableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to locate executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}

func outputExtension(engine string) string {
	if rendering.Engine(engine) == rendering.EngineHTML {
		return ".html"
	}
	return ".pdf"
}

func rendererOptions(cfg config.Config) rendering.Options {
	return rendering.Options{
		Engine:     rendering.Engine(cfg.Engine),
		Command:    cfg.Renderer,
		PDFEngine:  cfg.PDFEngine,
		ChromePath: cfg.ChromePath,
		Timeout:    cfg.Timeout(),
		Verbose:    cfg.Verbose,
	}
}
