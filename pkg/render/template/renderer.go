package template

// Vars are the only values bound while rendering a doc link.
type Vars struct {
	Name string
	Type string
}

// Template is a compiled doc link template. Engines return their own
// implementation and only accept templates they compiled.
type Template interface {
	Source() string
}

// Engine compiles doc link templates once per batch and renders them per hook.
type Engine interface {
	// Compile parses source. Malformed input yields a *SyntaxError.
	Compile(source string) (Template, error)
	// Render executes tpl against vars. Execution failures yield a *RenderError.
	Render(tpl Template, vars Vars) (string, error)
}
