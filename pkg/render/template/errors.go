package template

import (
	"errors"
	"fmt"
)

// ErrForeignTemplate is returned when an engine is asked to render a template
// compiled by a different engine.
var ErrForeignTemplate = errors.New("template: template was not compiled by this engine")

// SyntaxError reports a docLinkTemplate that failed to compile.
type SyntaxError struct {
	Source string
	Err    error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("template: compile %q: %v", e.Source, e.Err)
}

func (e *SyntaxError) Unwrap() error { return e.Err }

// RenderError reports a failure while rendering a compiled template for a
// specific hook.
type RenderError struct {
	Source string
	Name   string
	Err    error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("template: render %q for hook %q: %v", e.Source, e.Name, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }
