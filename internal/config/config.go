// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/cvgen/internal/schemas"
)

// Environment variables read by FromEnv.
const (
	EnvRenderer   = "CVGEN_RENDERER"
	EnvPDFEngine  = "CVGEN_PDF_ENGINE"
	EnvEngine     = "CVGEN_ENGINE"
	EnvChromePath = "CVGEN_CHROME_PATH"
	EnvTimeout    = "CVGEN_TIMEOUT_SECONDS"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Paths
	Input  string `json:"input,omitempty"`  // Path to the CV data file
	Output string `json:"output,omitempty"` // Path of the rendered document

	// Renderer
	Engine string `json:"engine,omitempty" validate:"omitempty,oneof=pandoc html chrome"`
	// Renderer is the pandoc executable name or path
	Renderer string `json:"renderer,omitempty"`
	// PDFEngine is passed to pandoc --pdf-engine, by name or as a path
	PDFEngine string `json:"pdf_engine,omitempty" validate:"omitempty,pdfengine"`
	// ChromePath is the browser binary for the chrome engine
	ChromePath string `json:"chrome_path,omitempty"`

	// Behavior
	TimeoutSeconds int  `json:"timeout_seconds,omitempty" validate:"gte=0"` // 0 means no timeout
	Verbose        bool `json:"verbose,omitempty"`                          // Print detailed debug information
}

// PDFEngines lists the engines pandoc accepts for --pdf-engine.
var PDFEngines = []string{
	"pdflatex", "xelatex", "lualatex", "latexmk", "tectonic", "context",
	"wkhtmltopdf", "weasyprint", "pagedjs-cli", "prince", "typst",
}

// isPDFEngine accepts a known engine name or a path whose basename is one.
func isPDFEngine(fl validator.FieldLevel) bool {
	name := filepath.Base(fl.Field().String())
	name = strings.TrimSuffix(name, ".exe")
	for _, engine := range PDFEngines {
		if name == engine {
			return true
		}
	}
	return false
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Engine:    "pandoc",
		Renderer:  "pandoc",
		PDFEngine: "pdflatex",
	}
}

// LoadConfig loads configuration from a JSON file.
// The file is checked against the config schema before it is decoded.
// Returns an error if the file cannot be read, validated or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := schemas.ValidateConfig(data); err != nil {
		var validationErr *schemas.ValidationError
		if errors.As(err, &validationErr) {
			return nil, fmt.Errorf("config file %s does not match schema: %w", path, err)
		}
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv reads renderer settings from CVGEN_* environment variables.
// Call godotenv.Load first to pick up a .env file.
func FromEnv() (Config, error) {
	cfg := Config{
		Renderer:   os.Getenv(EnvRenderer),
		PDFEngine:  os.Getenv(EnvPDFEngine),
		Engine:     os.Getenv(EnvEngine),
		ChromePath: os.Getenv(EnvChromePath),
	}

	if raw := strings.TrimSpace(os.Getenv(EnvTimeout)); raw != "" {
		seconds, err := strconv.Atoi(raw)
		if err != nil {
			return Config{}, &Error{
				Message: fmt.Sprintf("%s must be an integer number of seconds", EnvTimeout),
				Cause:   err,
			}
		}
		cfg.TimeoutSeconds = seconds
	}

	return cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		return name
	})
	if err := validate.RegisterValidation("pdfengine", isPDFEngine); err != nil {
		return &Error{Message: "invalid configuration", Cause: err}
	}

	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &Error{Message: "invalid configuration", Cause: err}
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, describeFieldError(fe))
	}
	return &Error{Message: strings.Join(msgs, "; ")}
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "oneof":
		return fmt.Sprintf("'%s' must be one of [%s], got %q", fe.Field(), fe.Param(), fe.Value())
	case "pdfengine":
		return fmt.Sprintf("'%s' must be one of [%s] or a path to one, got %q", fe.Field(), strings.Join(PDFEngines, " "), fe.Value())
	case "gte":
		return fmt.Sprintf("'%s' must be non-negative", fe.Field())
	default:
		return fmt.Sprintf("'%s' failed %s validation", fe.Field(), fe.Tag())
	}
}

// Timeout returns the renderer timeout; zero disables it.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// Chaining calls gives precedence: flags.MergeWithDefaults(env).MergeWithDefaults(file).
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Input == "" {
		result.Input = defaults.Input
	}
	if result.Output == "" {
		result.Output = defaults.Output
	}
	if result.Engine == "" {
		result.Engine = defaults.Engine
	}
	if result.Renderer == "" {
		result.Renderer = defaults.Renderer
	}
	if result.PDFEngine == "" {
		result.PDFEngine = defaults.PDFEngine
	}
	if result.ChromePath == "" {
		result.ChromePath = defaults.ChromePath
	}

	// Int fields: use default if zero
	if result.TimeoutSeconds == 0 {
		result.TimeoutSeconds = defaults.TimeoutSeconds
	}

	// Bool fields: unset cannot be told apart from false, so either source enables it
	result.Verbose = result.Verbose || defaults.Verbose

	return result
}
