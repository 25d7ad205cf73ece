package present

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-hooks/pkg/model"
)

// Built-in format names.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Formatter writes a list of hooks in one output format.
type Formatter interface {
	Name() string
	Format(w io.Writer, hooks []*model.Hook, opts Options) error
}

type formatterFunc struct {
	name string
	fn   func(io.Writer, []*model.Hook, Options) error
}

func (f formatterFunc) Name() string { return f.name }

func (f formatterFunc) Format(w io.Writer, hooks []*model.Hook, opts Options) error {
	return f.fn(w, hooks, opts)
}

// NewFormatter adapts a function into a Formatter.
func NewFormatter(name string, fn func(io.Writer, []*model.Hook, Options) error) Formatter {
	return formatterFunc{name: name, fn: fn}
}

// Registry stores formatters by name.
type Registry struct {
	mu         sync.RWMutex
	formatters map[string]Formatter
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{formatters: make(map[string]Formatter)}
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// DefaultRegistry returns the shared registry holding the text, json and yaml
// formatters.
func DefaultRegistry() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewRegistry()
		defaultRegistry.MustRegister(NewFormatter(FormatText, Text))
		defaultRegistry.MustRegister(NewFormatter(FormatJSON, func(w io.Writer, hooks []*model.Hook, _ Options) error {
			return JSON(w, hooks)
		}))
		defaultRegistry.MustRegister(NewFormatter(FormatYAML, func(w io.Writer, hooks []*model.Hook, _ Options) error {
			return YAML(w, hooks)
		}))
	})
	return defaultRegistry
}

// Register adds a formatter by its lower-cased Name(). Duplicate names return
// an error.
func (r *Registry) Register(f Formatter) error {
	if f == nil {
		return fmt.Errorf("present: formatter is required")
	}
	name := strings.ToLower(f.Name())
	if name == "" {
		return fmt.Errorf("present: formatter name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.formatters[name]; exists {
		return fmt.Errorf("present: formatter %q already registered", name)
	}
	r.formatters[name] = f
	return nil
}

// MustRegister panics on registration failure.
func (r *Registry) MustRegister(f Formatter) {
	if err := r.Register(f); err != nil {
		panic(err)
	}
}

// Get retrieves a formatter by name, ignoring case.
func (r *Registry) Get(name string) (Formatter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.formatters[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("present: unknown format %q (available: %s)", name, strings.Join(r.namesLocked(), ", "))
	}
	return f, nil
}

// Has reports whether a formatter is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.formatters[strings.ToLower(name)]
	return ok
}

// List returns the sorted formatter names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.namesLocked()
}

func (r *Registry) namesLocked() []string {
	names := make([]string, 0, len(r.formatters))
	for name := range r.formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
