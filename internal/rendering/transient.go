// Package rendering turns a composed CV document into a finished artifact (PDF or HTML).
package rendering

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// transientPattern names transient files, e.g. cvgen-123456.md.
const transientPattern = "cvgen-*."

// WithTransientFile writes content to a new temporary file, calls fn with its
// path, and removes the file afterwards. Removal happens on every exit path,
// including an error or panic inside fn.
func WithTransientFile(content, extension string, fn func(path string) error) (err error) {
	if extension == "" || strings.ContainsAny(extension, "/\\\x00") {
		return &RenderError{Message: fmt.Sprintf("invalid transient file extension %q", extension)}
	}

	tmpFile, err := os.CreateTemp("", transientPattern+extension)
	if err != nil {
		return &RenderError{
			Message: "failed to create transient file",
			Cause:   err,
		}
	}
	path := tmpFile.Name()

	defer func() {
		rmErr := os.Remove(path)
		if rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) && err == nil {
			err = &RenderError{
				Message: fmt.Sprintf("failed to remove transient file %s", path),
				Cause:   rmErr,
			}
		}
	}()

	if _, err := tmpFile.WriteString(content); err != nil {
		_ = tmpFile.Close()
		return &RenderError{
			Message: fmt.Sprintf("failed to write transient file %s", path),
			Cause:   err,
		}
	}
	if err := tmpFile.Close(); err != nil {
		return &RenderError{
			Message: fmt.Sprintf("failed to close transient file %s", path),
			Cause:   err,
		}
	}

	return fn(path)
}
