package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ValidJSON(t *testing.T) {
	// Create temp config file
	content := `{
		"input": "data.yml",
		"output": "out/cv.pdf",
		"engine": "pandoc",
		"renderer": "/opt/pandoc/bin/pandoc",
		"pdf_engine": "xelatex",
		"timeout_seconds": 90,
		"verbose": true
	}`

	tmpFile := filepath.Join(t.TempDir(), "cvgen.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "data.yml", cfg.Input)
	assert.Equal(t, "out/cv.pdf", cfg.Output)
	assert.Equal(t, "pandoc", cfg.Engine)
	assert.Equal(t, "/opt/pandoc/bin/pandoc", cfg.Renderer)
	assert.Equal(t, "xelatex", cfg.PDFEngine)
	assert.Equal(t, 90*time.Second, cfg.Timeout())
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	content := `{ invalid json }`

	tmpFile := filepath.Join(t.TempDir(), "cvgen.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_SchemaViolation(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "cvgen.json")
	err := os.WriteFile(tmpFile, []byte(`{"engine": "pandoc", "max_pages": 1}`), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "does not match schema")
	assert.Contains(t, err.Error(), "max_pages")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/cvgen.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestLoadConfig_RelativePath(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "cvgen.json"), []byte(`{"engine": "html"}`), 0644))

	origDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tmpDir))
	t.Cleanup(func() { _ = os.Chdir(origDir) })

	cfg, err := LoadConfig("cvgen.json")
	require.NoError(t, err)
	assert.Equal(t, "html", cfg.Engine)
}

func TestFromEnv(t *testing.T) {
	t.Setenv(EnvRenderer, "/usr/local/bin/pandoc")
	t.Setenv(EnvPDFEngine, "lualatex")
	t.Setenv(EnvEngine, "chrome")
	t.Setenv(EnvChromePath, "/usr/bin/chromium")
	t.Setenv(EnvTimeout, "45")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "/usr/local/bin/pandoc", cfg.Renderer)
	assert.Equal(t, "lualatex", cfg.PDFEngine)
	assert.Equal(t, "chrome", cfg.Engine)
	assert.Equal(t, "/usr/bin/chromium", cfg.ChromePath)
	assert.Equal(t, 45, cfg.TimeoutSeconds)
}

func TestFromEnv_Unset(t *testing.T) {
	for _, key := range []string{EnvRenderer, EnvPDFEngine, EnvEngine, EnvChromePath, EnvTimeout} {
		t.Setenv(key, "")
	}

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, Config{}, cfg)
}

func TestFromEnv_InvalidTimeout(t *testing.T) {
	t.Setenv(EnvTimeout, "soon")

	_, err := FromEnv()
	require.Error(t, err)

	var cfgErr *Error
	require.True(t, errors.As(err, &cfgErr))
	assert.Contains(t, err.Error(), EnvTimeout)
}

func TestValidate_Valid(t *testing.T) {
	cfg := Defaults()
	assert.NoError(t, cfg.Validate())

	cfg = Config{}
	assert.NoError(t, cfg.Validate(), "empty config is valid")
}

func TestValidate_UnknownEngine(t *testing.T) {
	cfg := Config{Engine: "troff"}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "'engine' must be one of [pandoc html chrome]")
}

func TestValidate_UnknownPDFEngine(t *testing.T) {
	cfg := Config{PDFEngine: "word"}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "'pdf_engine' must be one of")
	assert.Contains(t, err.Error(), `got "word"`)
}

func TestValidate_PDFEngineAsPath(t *testing.T) {
	for _, engine := range []string{
		"/opt/texlive/bin/xelatex",
		"./bin/tectonic",
		"lualatex",
	} {
		cfg := Config{PDFEngine: engine}
		assert.NoError(t, cfg.Validate(), engine)
	}
}

func TestValidate_PDFEnginePathToUnknownTool(t *testing.T) {
	cfg := Config{PDFEngine: "/usr/bin/word"}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "or a path to one")
}

func TestValidate_NegativeTimeout(t *testing.T) {
	cfg := Config{TimeoutSeconds: -5}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "'timeout_seconds' must be non-negative")
}

func TestMergeWithDefaults_FillsEmptyFields(t *testing.T) {
	flags := Config{Renderer: "/flag/pandoc"}
	env := Config{Renderer: "/env/pandoc", PDFEngine: "xelatex"}
	file := Config{PDFEngine: "lualatex", Engine: "html", Input: "cv.yml", Verbose: true}

	merged := flags.MergeWithDefaults(env)
	merged = merged.MergeWithDefaults(file)
	merged = merged.MergeWithDefaults(Defaults())

	assert.Equal(t, "/flag/pandoc", merged.Renderer, "flags win")
	assert.Equal(t, "xelatex", merged.PDFEngine, "env beats file")
	assert.Equal(t, "html", merged.Engine, "file beats defaults")
	assert.Equal(t, "cv.yml", merged.Input)
	assert.True(t, merged.Verbose)
}

func TestMergeWithDefaults_DoesNotMutateReceiver(t *testing.T) {
	cfg := Config{}
	_ = cfg.MergeWithDefaults(Defaults())
	assert.Equal(t, Config{}, cfg)
}

func TestTimeout_Zero(t *testing.T) {
	cfg := Config{}
	assert.Equal(t, time.Duration(0), cfg.Timeout())
}
