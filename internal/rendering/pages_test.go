package rendering

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedRunner answers per command name.
type scriptedRunner struct {
	stdout map[string]string
	fail   map[string]bool
	calls  []string
	args   map[string][]string
}

func (s *scriptedRunner) Run(_ context.Context, name string, args ...string) (string, string, error) {
	s.calls = append(s.calls, name)
	if s.args == nil {
		s.args = make(map[string][]string)
	}
	s.args[name] = args
	if s.fail[name] {
		return "", "not found", errors.New("exit status 127")
	}
	return s.stdout[name], "", nil
}

func TestCountPDFPages_Pdfinfo(t *testing.T) {
	runner := &scriptedRunner{stdout: map[string]string{
		"pdfinfo": "Title:          cv\nProducer:       pdfTeX\nPages:          2\nEncrypted:      no\n",
	}}

	count, err := CountPDFPages(context.Background(), runner, "cv.pdf")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, []string{"pdfinfo"}, runner.calls)
}

func TestCountPDFPages_GhostscriptFallback(t *testing.T) {
	runner := &scriptedRunner{
		stdout: map[string]string{"gs": "3\n"},
		fail:   map[string]bool{"pdfinfo": true},
	}

	count, err := CountPDFPages(context.Background(), runner, "cv.pdf")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.Equal(t, []string{"pdfinfo", "gs"}, runner.calls)
}

func TestCountPDFPages_UnparsablePdfinfo(t *testing.T) {
	runner := &scriptedRunner{stdout: map[string]string{
		"pdfinfo": "Title: cv\n",
		"gs":      "1",
	}}

	count, err := CountPDFPages(context.Background(), runner, "cv.pdf")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestCountPDFPages_NoTools(t *testing.T) {
	runner := &scriptedRunner{fail: map[string]bool{"pdfinfo": true, "gs": true}}

	_, err := CountPDFPages(context.Background(), runner, "cv.pdf")
	require.Error(t, err)

	var renderErr *RenderError
	require.True(t, errors.As(err, &renderErr))
	assert.Contains(t, err.Error(), "neither pdfinfo nor ghostscript")
}

func TestCountPDFPages_GhostscriptQuotesPath(t *testing.T) {
	runner := &scriptedRunner{
		stdout: map[string]string{"gs": "1\n"},
		fail:   map[string]bool{"pdfinfo": true},
	}
	path := `/tmp/cv) (evil) run (x\.pdf`

	_, err := CountPDFPages(context.Background(), runner, path)
	require.NoError(t, err)

	args := runner.args["gs"]
	assert.Contains(t, args, "-dSAFER")
	assert.NotContains(t, args, "-dNOSAFER")
	assert.Contains(t, args, "--permit-file-read="+path)
	assert.Equal(t, `(/tmp/cv\) \(evil\) run \(x\\.pdf) (r) file runpdfbegin pdfpagecount = quit`, args[len(args)-1])
}

func TestPostScriptString(t *testing.T) {
	assert.Equal(t, "cv.pdf", postScriptString("cv.pdf"))
	assert.Equal(t, `a\(b\)c\\d`, postScriptString(`a(b)c\d`))
}
