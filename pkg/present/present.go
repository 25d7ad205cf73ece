// Package present formats hooks for terminals and scripts. Hook documentation
// often carries HTML (long descriptions generated from PHPDoc), which is
// stripped before printing.
package present

import (
	"encoding/json"
	"fmt"
	"html"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/microcosm-cc/bluemonday"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-hooks/pkg/model"
)

// Options controls text output.
type Options struct {
	// NoColor disables ANSI styling.
	NoColor bool
	// Long includes the long description when present.
	Long bool
	// Links prints the rendered doc link for hooks that have one.
	Links bool
}

var (
	stripOnce   sync.Once
	stripPolicy *bluemonday.Policy
)

func stripper() *bluemonday.Policy {
	stripOnce.Do(func() {
		stripPolicy = bluemonday.StrictPolicy()
	})
	return stripPolicy
}

// PlainText removes markup from a documentation snippet and collapses
// whitespace.
func PlainText(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	cleaned := html.UnescapeString(stripper().Sanitize(trimmed))
	return strings.Join(strings.Fields(cleaned), " ")
}

// Description returns the short description of a hook, looked up under
// doc.description first and description second.
func Description(h *model.Hook) string {
	return PlainText(docField(h, "description"))
}

// LongDescription returns the long description of a hook, if any.
func LongDescription(h *model.Hook) string {
	return PlainText(docField(h, "long_description"))
}

func docField(h *model.Hook, key string) string {
	if h == nil {
		return ""
	}
	if doc, ok := h.Extra["doc"].(map[string]any); ok {
		if value, ok := doc[key].(string); ok && value != "" {
			return value
		}
	}
	if value, ok := h.Extra[key].(string); ok {
		return value
	}
	return ""
}

// Text writes one block per hook: the name and type on the first line, then
// the description and, when requested, the doc link.
func Text(w io.Writer, hooks []*model.Hook, opts Options) error {
	title := color.New(color.FgCyan, color.Bold)
	kind := color.New(color.FgYellow)
	faint := color.New(color.Faint)
	failed := color.New(color.FgRed)
	if opts.NoColor {
		for _, c := range []*color.Color{title, kind, faint, failed} {
			c.DisableColor()
		}
	}

	for i, h := range hooks {
		if h == nil {
			continue
		}
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}

		line := title.Sprint(h.Name)
		if h.Type != "" {
			line += " " + kind.Sprintf("(%s)", h.Type)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}

		if desc := Description(h); desc != "" {
			if _, err := fmt.Fprintf(w, "  %s\n", desc); err != nil {
				return err
			}
		}
		if opts.Long {
			if long := LongDescription(h); long != "" {
				if _, err := fmt.Fprintf(w, "  %s\n", faint.Sprint(long)); err != nil {
					return err
				}
			}
		}
		if opts.Links && h.HasDocLink() {
			link, err := h.DocLink()
			if err != nil {
				link = failed.Sprintf("link error: %v", err)
			}
			if _, err := fmt.Fprintf(w, "  %s\n", link); err != nil {
				return err
			}
		}
	}
	return nil
}

// JSON writes hooks as an indented JSON array. Hooks with a doc link gain a
// docLink field holding the rendered URL, or docLinkError when rendering
// fails.
func JSON(w io.Writer, hooks []*model.Hook) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(records(hooks))
}

// YAML writes the same records as JSON in YAML form.
func YAML(w io.Writer, hooks []*model.Hook) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(records(hooks)); err != nil {
		return err
	}
	return enc.Close()
}

func records(hooks []*model.Hook) []map[string]any {
	out := make([]map[string]any, 0, len(hooks))
	for _, h := range hooks {
		if h == nil {
			continue
		}
		fields := h.Fields()
		if h.HasDocLink() {
			if link, err := h.DocLink(); err != nil {
				fields["docLinkError"] = err.Error()
			} else {
				fields["docLink"] = link
			}
		}
		out = append(out, fields)
	}
	return out
}
