// Package pongo implements template.Engine on top of pongo2, whose
// Django/Liquid style syntax (`{{ type }}/{{ name|lower }}`) matches the
// docLinkTemplate strings published alongside hook documentation.
//
// pongo2 filters take a single argument, so multi-argument calls such as
// replace_regex:"_","-","g" must be written in the sed-style form
// replace_regex:"/_/-/g".
package pongo

import (
	"embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-hooks/pkg/render/template"
)

// Option configures the engine before construction.
type Option func(*config)

type config struct {
	setName string
	filters map[string]FilterFunc
}

// FilterFunc is a plain Go filter. param is nil when the template passes no
// argument.
type FilterFunc func(input any, param any) (any, error)

// WithSetName overrides the pongo2 template set name, which shows up in error
// messages.
func WithSetName(name string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			cfg.setName = trimmed
		}
	}
}

// WithFilter registers an additional filter when the engine is created.
// Filters are process-wide in pongo2; an existing filter with the same name
// makes New fail.
func WithFilter(name string, fn FilterFunc) Option {
	return func(cfg *config) {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" || fn == nil {
			return
		}
		if cfg.filters == nil {
			cfg.filters = make(map[string]FilterFunc)
		}
		cfg.filters[trimmed] = fn
	}
}

// Engine satisfies template.Engine using a pongo2 template set.
type Engine struct {
	set *pongo2.TemplateSet
}

var _ template.Engine = (*Engine)(nil)

// Doc link templates never include other files; the set still needs a loader.
var noTemplates embed.FS

var (
	defaultOnce   sync.Once
	defaultEngine *Engine
)

// Default returns a shared engine constructed on first use.
func Default() *Engine {
	defaultOnce.Do(func() {
		defaultEngine = newEngine(&config{setName: "hooks"})
	})
	return defaultEngine
}

// New constructs an Engine. The replace_regex filter is registered
// process-wide on first use.
func New(options ...Option) (*Engine, error) {
	cfg := &config{setName: "hooks"}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}

	engine := newEngine(cfg)
	for name, fn := range cfg.filters {
		if err := engine.RegisterFilter(name, fn); err != nil {
			return nil, fmt.Errorf("pongo: register filter %q: %w", name, err)
		}
	}
	return engine, nil
}

func newEngine(cfg *config) *Engine {
	registerDefaultFilters()
	return &Engine{
		set: pongo2.NewSet(cfg.setName, pongo2.NewFSLoader(noTemplates)),
	}
}

type compiled struct {
	source string
	tpl    *pongo2.Template
	owner  *Engine
}

func (c *compiled) Source() string { return c.source }

// Compile parses source once. Output is never HTML-escaped since doc links
// are plain text.
func (e *Engine) Compile(source string) (template.Template, error) {
	if e == nil || e.set == nil {
		return nil, errors.New("pongo: engine is nil")
	}
	tpl, err := e.set.FromString("{% autoescape off %}" + source + "{% endautoescape %}")
	if err != nil {
		return nil, &template.SyntaxError{Source: source, Err: err}
	}
	return &compiled{source: source, tpl: tpl, owner: e}, nil
}

// Render executes a template compiled by this engine with name and type bound.
func (e *Engine) Render(tpl template.Template, vars template.Vars) (string, error) {
	c, ok := tpl.(*compiled)
	if !ok || c == nil || c.owner != e {
		return "", template.ErrForeignTemplate
	}
	out, err := c.tpl.Execute(pongo2.Context{
		"name": vars.Name,
		"type": vars.Type,
	})
	if err != nil {
		return "", &template.RenderError{Source: c.source, Name: vars.Name, Err: err}
	}
	return out, nil
}

// RegisterFilter exposes a Go function as a pongo2 filter. Registration is
// process-wide and fails when the name is already taken.
func (e *Engine) RegisterFilter(name string, fn FilterFunc) error {
	if strings.TrimSpace(name) == "" || fn == nil {
		return errors.New("pongo: filter name and function required")
	}

	filter := func(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		var paramVal any
		if param != nil && !param.IsNil() {
			paramVal = param.Interface()
		}
		result, err := fn(in.Interface(), paramVal)
		if err != nil {
			return nil, &pongo2.Error{Sender: "filter:" + name, OrigError: err}
		}
		return pongo2.AsValue(result), nil
	}

	filtersMu.Lock()
	defer filtersMu.Unlock()
	if pongo2.FilterExists(name) {
		return fmt.Errorf("pongo: filter %q already exists", name)
	}
	return pongo2.RegisterFilter(name, filter)
}
