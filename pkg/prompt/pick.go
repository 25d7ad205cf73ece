package prompt

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-hooks/pkg/model"
	"github.com/goliatone/go-hooks/pkg/present"
)

// DefaultPageSize is the number of hooks shown at once while picking.
const DefaultPageSize = 15

// PickOptions tunes Pick.
type PickOptions struct {
	Message  string
	PageSize int
	// Refine asks for a substring first and narrows the list before selecting.
	Refine bool
}

// Pick asks the user to choose one of hooks and returns it. Options show the
// hook name and type; the short description is offered as the option hint.
func Pick(ctx context.Context, driver Driver, hooks []*model.Hook, opts PickOptions) (*model.Hook, error) {
	if driver == nil {
		return nil, fmt.Errorf("prompt: driver is required")
	}

	candidates := compact(hooks)
	if opts.Refine && len(candidates) > 0 {
		term, err := driver.Input(ctx, InputConfig{
			Message: "Filter hooks by name:",
			Help:    "Leave empty to list every hook.",
		})
		if err != nil {
			return nil, err
		}
		candidates = narrow(candidates, term)
	}
	if len(candidates) == 0 {
		return nil, ErrNoOptions
	}

	labels := make([]string, len(candidates))
	for i, h := range candidates {
		labels[i] = label(h)
	}

	message := opts.Message
	if message == "" {
		message = "Select a hook:"
	}
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	idx, err := driver.Select(ctx, SelectConfig{
		Message:  message,
		Options:  labels,
		PageSize: pageSize,
		Description: func(_ string, index int) string {
			if index < 0 || index >= len(candidates) {
				return ""
			}
			return present.Description(candidates[index])
		},
	})
	if err != nil {
		return nil, err
	}
	if idx < 0 || idx >= len(candidates) {
		return nil, fmt.Errorf("prompt: selection %d out of range", idx)
	}
	return candidates[idx], nil
}

func label(h *model.Hook) string {
	if h.Type == "" {
		return h.Name
	}
	return h.Name + " (" + h.Type + ")"
}

func compact(hooks []*model.Hook) []*model.Hook {
	out := make([]*model.Hook, 0, len(hooks))
	for _, h := range hooks {
		if h != nil {
			out = append(out, h)
		}
	}
	return out
}

func narrow(hooks []*model.Hook, term string) []*model.Hook {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return hooks
	}
	var out []*model.Hook
	for _, h := range hooks {
		if strings.Contains(strings.ToLower(h.Name), term) {
			out = append(out, h)
		}
	}
	return out
}
