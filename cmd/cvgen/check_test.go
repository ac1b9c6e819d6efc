package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckCommand_HTMLEngine(t *testing.T) {
	clearEnv(t)

	stdout, _, err := executeCommand(t, "check", "--engine", "html")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Renderer: html (goldmark)")
	assert.Contains(t, stdout, "OK")
}

func TestCheckCommand_FakePandoc(t *testing.T) {
	clearEnv(t)
	fake := writeFakePandoc(t, false)

	stdout, _, err := executeCommand(t, "check", "--renderer", fake, "--pdf-engine", "lualatex")
	require.NoError(t, err)
	assert.Contains(t, stdout, "pdf engine lualatex")
}

func TestCheckCommand_RendererMissing(t *testing.T) {
	clearEnv(t)

	_, _, err := executeCommand(t, "check", "--renderer", "cvgen-no-such-renderer")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestCheckCommand_RejectsArgs(t *testing.T) {
	clearEnv(t)

	_, _, err := executeCommand(t, "check", "extra")
	require.Error(t, err)
}
