// Package repository holds hooks in memory keyed by name. Batches are merged
// with last-writer-wins semantics, docLinkTemplate values are compiled once per
// batch and rendered lazily per hook, and reads support exact lookup by name,
// partial-match criteria and predicates with an optional result cap.
//
// A Repository is not safe for concurrent mutation; callers sharing one
// instance must serialise Push and Clear.
package repository

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/goliatone/go-hooks/pkg/match"
	"github.com/goliatone/go-hooks/pkg/model"
	"github.com/goliatone/go-hooks/pkg/render/template"
	"github.com/goliatone/go-hooks/pkg/render/template/pongo"
)

// Repository is the keyed hook store.
type Repository struct {
	hooks  *store
	engine template.Engine
	logger *zap.Logger
}

// New constructs an empty repository.
func New(options ...Option) *Repository {
	r := &Repository{
		hooks:  newStore(),
		logger: zap.NewNop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	if r.engine == nil {
		r.engine = pongo.Default()
	}
	return r
}

// All returns every stored hook in insertion order.
func (r *Repository) All() []*model.Hook {
	return r.hooks.values()
}

// Len reports the number of stored hooks.
func (r *Repository) Len() int {
	return r.hooks.len()
}

// Names returns the stored keys in insertion order.
func (r *Repository) Names() []string {
	values := r.hooks.values()
	names := make([]string, len(values))
	for i, hook := range values {
		names[i] = hook.Name
	}
	return names
}

// Clear removes every hook.
func (r *Repository) Clear() {
	r.hooks.clear()
}

// Push classifies each batch and upserts its hooks by name. A batch declaring
// a docLinkTemplate has it compiled once; its hooks are stored as copies that
// render the link on demand. Push returns the input hooks it processed, in
// call order. A template that fails to compile aborts its batch before any of
// its hooks are stored; earlier batches stay applied.
func (r *Repository) Push(batches ...any) ([]*model.Hook, error) {
	var processed []*model.Hook

	for i, batch := range batches {
		container, err := model.Classify(batch)
		if err != nil {
			return processed, fmt.Errorf("repository: batch %d: %w", i, err)
		}

		transform, err := r.transformFor(container)
		if err != nil {
			return processed, fmt.Errorf("repository: batch %d: %w", i, err)
		}

		for _, hook := range container.Hooks {
			if hook == nil {
				continue
			}
			stored := hook
			if transform != nil {
				stored = transform(hook)
			}
			r.hooks.set(hook.Name, stored)
			processed = append(processed, hook)
		}

		r.logger.Debug("hooks batch upserted",
			zap.Int("batch", i),
			zap.Int("hooks", len(container.Hooks)),
			zap.String("schema", container.Schema),
			zap.Bool("doc_links", transform != nil),
		)
	}

	return processed, nil
}

func (r *Repository) transformFor(container model.Container) (func(*model.Hook) *model.Hook, error) {
	if container.DocLinkTemplate == "" {
		return nil, nil
	}
	compiled, err := r.engine.Compile(container.DocLinkTemplate)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("doc link template compiled", zap.String("template", container.DocLinkTemplate))

	engine := r.engine
	link := func(h *model.Hook) (string, error) {
		return engine.Render(compiled, template.Vars{Name: h.Name, Type: h.Type})
	}
	return func(h *model.Hook) *model.Hook {
		return model.WithDocLink(h, link)
	}, nil
}

// Find returns a single hook. A string criteria is an exact lookup by name;
// anything else is handed to Filter with a limit of one.
func (r *Repository) Find(criteria any) (*model.Hook, bool) {
	if name, ok := criteria.(string); ok {
		return r.hooks.get(name)
	}
	found := r.Filter(criteria, 1)
	if len(found) == 0 {
		return nil, false
	}
	return found[0], true
}

// Filter returns the hooks satisfying criteria in store order. criteria may be
// a model.Predicate, a func(*model.Hook) bool, a model.Criteria or any map
// matched partially, or a string matched against the name. A limit of zero or
// less returns every match.
func (r *Repository) Filter(criteria any, limit int) []*model.Hook {
	pred := predicateFor(criteria)
	haystack := r.hooks.values()

	switch {
	case limit <= 0:
		var out []*model.Hook
		for _, hook := range haystack {
			if pred(hook) {
				out = append(out, hook)
			}
		}
		return out
	case limit == 1:
		for _, hook := range haystack {
			if pred(hook) {
				return []*model.Hook{hook}
			}
		}
		return nil
	}

	var needles []*model.Hook
	for len(needles) < limit {
		pos := indexOf(haystack, pred)
		if pos < 0 {
			break
		}
		needles = append(needles, haystack[pos])
		haystack = haystack[pos+1:]
	}
	return needles
}

func indexOf(hooks []*model.Hook, pred model.Predicate) int {
	for i, hook := range hooks {
		if pred(hook) {
			return i
		}
	}
	return -1
}

func predicateFor(criteria any) model.Predicate {
	switch c := criteria.(type) {
	case model.Predicate:
		if c != nil {
			return c
		}
	case func(*model.Hook) bool:
		if c != nil {
			return c
		}
	case model.Criteria:
		return matcher(map[string]any(c))
	case map[string]any:
		return matcher(c)
	case string:
		return matcher(map[string]any{model.FieldName: c})
	case nil:
		return matcher(nil)
	default:
		return matcher(normalise(c))
	}
	return func(*model.Hook) bool { return false }
}

func matcher(criteria any) model.Predicate {
	return func(h *model.Hook) bool {
		return match.Matches(h.Fields(), criteria)
	}
}

// normalise converts arbitrary criteria values (structs, typed maps) into the
// generic JSON shape the matcher understands.
func normalise(criteria any) any {
	payload, err := json.Marshal(criteria)
	if err != nil {
		return criteria
	}
	var out any
	if err := json.Unmarshal(payload, &out); err != nil {
		return criteria
	}
	return out
}
