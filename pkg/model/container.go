package model

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// DefaultSchema is the schema reference attached to bare hook sequences when
// they are wrapped into a Container.
const DefaultSchema = "https://raw.githubusercontent.com/wp-hooks/generator/0.9.0/schema.json"

const (
	keySchema          = "$schema"
	keyHooks           = "hooks"
	keyDocLinkTemplate = "docLinkTemplate"
)

// Container wraps a batch of hooks with an optional doc link template and
// arbitrary metadata.
type Container struct {
	Schema          string
	DocLinkTemplate string
	Hooks           Hooks
	Meta            map[string]any
}

// MarshalJSON writes the container using its wire field names, merging Meta
// into the top level.
func (c Container) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(c.Meta)+3)
	for key, value := range c.Meta {
		out[key] = value
	}
	if c.Schema != "" {
		out[keySchema] = c.Schema
	}
	if c.DocLinkTemplate != "" {
		out[keyDocLinkTemplate] = c.DocLinkTemplate
	}
	hooks := c.Hooks
	if hooks == nil {
		hooks = Hooks{}
	}
	out[keyHooks] = hooks
	return json.Marshal(out)
}

// UnmarshalJSON reads a container; keys other than $schema, docLinkTemplate
// and hooks are kept in Meta.
func (c *Container) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("model: decode container: %w", err)
	}
	*c = Container{}
	for key, value := range raw {
		var err error
		switch key {
		case keySchema:
			err = json.Unmarshal(value, &c.Schema)
		case keyDocLinkTemplate:
			err = json.Unmarshal(value, &c.DocLinkTemplate)
		case keyHooks:
			err = json.Unmarshal(value, &c.Hooks)
		default:
			var decoded any
			if err = json.Unmarshal(value, &decoded); err == nil {
				if c.Meta == nil {
					c.Meta = make(map[string]any)
				}
				c.Meta[key] = decoded
			}
		}
		if err != nil {
			return fmt.Errorf("model: decode container field %q: %w", key, err)
		}
	}
	return nil
}

// IsContainer reports whether value owns a `hooks` field holding an ordered
// sequence. Anything else is treated as a bare sequence by Classify.
func IsContainer(value any) bool {
	switch v := value.(type) {
	case Container:
		return true
	case *Container:
		return v != nil
	case map[string]any:
		hooks, ok := v[keyHooks]
		return ok && isSequence(hooks)
	default:
		return false
	}
}

// Classify normalises a batch into a Container. Bare sequences are wrapped with
// DefaultSchema and no template. Raw decoded values (maps and slices produced
// by encoding/json or yaml.v3) are converted into typed hooks.
func Classify(value any) (Container, error) {
	if IsContainer(value) {
		switch v := value.(type) {
		case Container:
			return v, nil
		case *Container:
			return *v, nil
		default:
			var container Container
			if err := convert(value, &container); err != nil {
				return Container{}, err
			}
			return container, nil
		}
	}

	hooks, err := toHooks(value)
	if err != nil {
		return Container{}, err
	}
	return Container{Schema: DefaultSchema, Hooks: hooks}, nil
}

func toHooks(value any) (Hooks, error) {
	switch v := value.(type) {
	case Hooks:
		return v, nil
	case []*Hook:
		return Hooks(v), nil
	case []Hook:
		out := make(Hooks, len(v))
		for i := range v {
			out[i] = &v[i]
		}
		return out, nil
	}

	if !isSequence(value) {
		return nil, fmt.Errorf("%w: got %T", ErrInvalidBatch, value)
	}
	var hooks Hooks
	if err := convert(value, &hooks); err != nil {
		return nil, err
	}
	return hooks, nil
}

func convert(value any, dest any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBatch, err)
	}
	if err := json.Unmarshal(payload, dest); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBatch, err)
	}
	return nil
}

func isSequence(value any) bool {
	if value == nil {
		return false
	}
	kind := reflect.TypeOf(value).Kind()
	return kind == reflect.Slice || kind == reflect.Array
}
