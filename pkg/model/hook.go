package model

import (
	"encoding/json"
	"fmt"
	"maps"

	"gopkg.in/yaml.v3"
)

// Field names with a dedicated slot on Hook.
const (
	FieldName = "name"
	FieldType = "type"
)

// Hook types used by WordPress style hook documentation.
const (
	TypeAction = "action"
	TypeFilter = "filter"
)

// LinkFunc renders the documentation link for a hook. It receives the hook at
// call time so the output follows later edits to Name or Type.
type LinkFunc func(h *Hook) (string, error)

// Hook is a named extension point. Name is the repository key; Type is the
// conventional kind tag ("action", "filter"). Any other attribute is kept in
// Extra as opaque payload. A type decoded or Set as an empty string stays
// present in the flattened record.
type Hook struct {
	Name  string
	Type  string
	Extra map[string]any

	hasType bool
	docLink LinkFunc
}

// Hooks is an ordered sequence of hooks.
type Hooks []*Hook

// Criteria is a partial-match object: every key present must match the
// corresponding hook field, nested maps are matched recursively.
type Criteria map[string]any

// Predicate reports whether a hook should be selected.
type Predicate func(h *Hook) bool

// NewHook builds a hook from a flat field map, splitting name and type from
// the remaining payload.
func NewHook(fields map[string]any) *Hook {
	h := &Hook{}
	h.assign(fields)
	return h
}

// Get returns the value of a field by its flattened name.
func (h *Hook) Get(key string) (any, bool) {
	if h == nil {
		return nil, false
	}
	switch key {
	case FieldName:
		return h.Name, true
	case FieldType:
		if !h.typeSet() {
			return nil, false
		}
		return h.Type, true
	}
	value, ok := h.Extra[key]
	return value, ok
}

// Set updates a field by its flattened name. Non-string values for name or
// type are formatted with fmt.Sprint.
func (h *Hook) Set(key string, value any) {
	if h == nil {
		return
	}
	switch key {
	case FieldName:
		h.Name = stringify(value)
	case FieldType:
		h.Type = stringify(value)
		h.hasType = value != nil
	default:
		if h.Extra == nil {
			h.Extra = make(map[string]any)
		}
		h.Extra[key] = value
	}
}

// Fields returns the flattened record: name, type (when present) and every extra
// field. The returned map is a fresh copy at the top level.
func (h *Hook) Fields() map[string]any {
	if h == nil {
		return nil
	}
	out := make(map[string]any, len(h.Extra)+2)
	for key, value := range h.Extra {
		out[key] = value
	}
	out[FieldName] = h.Name
	if h.typeSet() {
		out[FieldType] = h.Type
	}
	return out
}

func (h *Hook) typeSet() bool {
	return h.hasType || h.Type != ""
}

// Clone returns a shallow copy: the Extra map is copied, its values are
// shared. A bound doc link travels with the copy.
func (h *Hook) Clone() *Hook {
	if h == nil {
		return nil
	}
	clone := *h
	if h.Extra != nil {
		clone.Extra = maps.Clone(h.Extra)
	}
	return &clone
}

// WithDocLink returns a shallow copy of h carrying the doc link capability.
// The repository applies it while loading a batch that declares a
// docLinkTemplate.
func WithDocLink(h *Hook, fn LinkFunc) *Hook {
	clone := h.Clone()
	if clone == nil {
		return nil
	}
	clone.docLink = fn
	return clone
}

// HasDocLink reports whether DocLink can render a link for this hook.
func (h *Hook) HasDocLink() bool {
	return h != nil && h.docLink != nil
}

// DocLink renders the documentation link against the hook's current name and
// type. The link is computed on every call, never cached.
func (h *Hook) DocLink() (string, error) {
	if !h.HasDocLink() {
		return "", ErrNoDocLink
	}
	return h.docLink(h)
}

// MarshalJSON flattens Extra next to name and type.
func (h *Hook) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.Fields())
}

// UnmarshalJSON accepts any JSON object; unknown keys land in Extra.
func (h *Hook) UnmarshalJSON(data []byte) error {
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("model: decode hook: %w", err)
	}
	*h = Hook{}
	h.assign(fields)
	return nil
}

// MarshalYAML mirrors MarshalJSON for YAML documents.
func (h *Hook) MarshalYAML() (any, error) {
	return h.Fields(), nil
}

// UnmarshalYAML mirrors UnmarshalJSON for YAML documents.
func (h *Hook) UnmarshalYAML(node *yaml.Node) error {
	var fields map[string]any
	if err := node.Decode(&fields); err != nil {
		return fmt.Errorf("model: decode hook: %w", err)
	}
	*h = Hook{}
	h.assign(fields)
	return nil
}

func (h *Hook) assign(fields map[string]any) {
	for key, value := range fields {
		h.Set(key, value)
	}
}

func stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
