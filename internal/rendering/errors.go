// Package rendering turns a composed CV document into a finished artifact (PDF or HTML).
package rendering

import "fmt"

// TemplateError represents an error parsing or executing the HTML page template
type TemplateError struct {
	Message string
	Cause   error
}

func (e *TemplateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("template error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("template error: %s", e.Message)
}

func (e *TemplateError) Unwrap() error {
	return e.Cause
}

// RenderError represents a rendering failure. Command holds the command line
// that ran (if any) and Output whatever it wrote to stderr.
type RenderError struct {
	Message string
	Command string
	Output  string
	Cause   error
}

func (e *RenderError) Error() string {
	msg := "render error: " + e.Message
	if e.Command != "" {
		msg += fmt.Sprintf(" (command: %s)", e.Command)
	}
	if e.Cause != nil {
		msg += fmt.Sprintf(": %v", e.Cause)
	}
	return msg
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}
