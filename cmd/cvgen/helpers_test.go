package main

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/jonathan/cvgen/internal/config"
)

// executeCommand runs a fresh command tree with args and returns what it wrote.
func executeCommand(t *testing.T, args ...string) (stdout string, stderr string, err error) {
	t.Helper()

	var outBuf, errBuf bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)

	err = cmd.Execute()
	return outBuf.String(), errBuf.String(), err
}

// clearEnv unsets the CVGEN_* variables so a local .env does not leak into tests.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		config.EnvRenderer,
		config.EnvPDFEngine,
		config.EnvEngine,
		config.EnvChromePath,
		config.EnvTimeout,
	} {
		t.Setenv(name, "")
	}
}

// sampleDataPath returns the shared CV fixture.
func sampleDataPath() string {
	return filepath.Join("..", "..", "testdata", "valid", "data.yml")
}

// writeFakePandoc writes a shell script that behaves like pandoc: it writes
// the -o target, or fails with a message on stderr when fail is set.
func writeFakePandoc(t *testing.T, fail bool) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake renderer script requires a POSIX shell")
	}

	script := `#!/bin/sh
out=""
while [ $# -gt 0 ]; do
  if [ "$1" = "-o" ]; then
    shift
    out="$1"
  fi
  shift
done
printf '%%PDF-1.4 fake' > "$out"
`
	if fail {
		script = `#!/bin/sh
echo "pdflatex not found" >&2
exit 43
`
	}

	path := filepath.Join(t.TempDir(), "fake-pandoc")
	if err := os.WriteFile(path, []byte(script), 0755); err != nil {
		t.Fatalf("failed to write fake pandoc: %v", err)
	}
	return path
}
