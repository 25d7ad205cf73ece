package model

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
)

func TestHookUnmarshalJSONSplitsPayload(t *testing.T) {
	var h Hook
	data := []byte(`{"name":"init","type":"action","since":"1.5.0","args":2,"doc":{"description":"Fires after load."}}`)
	if err := json.Unmarshal(data, &h); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if h.Name != "init" || h.Type != TypeAction {
		t.Fatalf("unexpected identity %q/%q", h.Name, h.Type)
	}
	want := map[string]any{
		"since": "1.5.0",
		"args":  float64(2),
		"doc":   map[string]any{"description": "Fires after load."},
	}
	if diff := cmp.Diff(want, h.Extra); diff != "" {
		t.Fatalf("extra mismatch (-want +got):\n%s", diff)
	}

	out, err := json.Marshal(&h)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var roundTrip map[string]any
	if err := json.Unmarshal(out, &roundTrip); err != nil {
		t.Fatalf("unmarshal round trip: %v", err)
	}
	if roundTrip["name"] != "init" || roundTrip["since"] != "1.5.0" {
		t.Fatalf("payload lost in round trip: %v", roundTrip)
	}
}

func TestHookUnmarshalYAML(t *testing.T) {
	var hooks Hooks
	data := []byte("- name: the_content\n  type: filter\n  tags: [content]\n")
	if err := yaml.Unmarshal(data, &hooks); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(hooks) != 1 {
		t.Fatalf("expected 1 hook, got %d", len(hooks))
	}
	if hooks[0].Name != "the_content" || hooks[0].Type != TypeFilter {
		t.Fatalf("unexpected hook %+v", hooks[0])
	}
	if diff := cmp.Diff([]any{"content"}, hooks[0].Extra["tags"]); diff != "" {
		t.Fatalf("tags mismatch (-want +got):\n%s", diff)
	}
}

func TestHookGetSet(t *testing.T) {
	h := NewHook(map[string]any{"name": "save_post", "description": "Fires once a post is saved."})

	if v, ok := h.Get(FieldType); ok {
		t.Fatalf("expected type to be unset, got %v", v)
	}
	h.Set(FieldType, TypeAction)
	if v, ok := h.Get(FieldType); !ok || v != TypeAction {
		t.Fatalf("expected type action, got %v (ok=%v)", v, ok)
	}
	h.Set("since", "2.0.0")
	if h.Extra["since"] != "2.0.0" {
		t.Fatalf("expected since in extra, got %v", h.Extra)
	}
}

func TestHookDocLink(t *testing.T) {
	plain := &Hook{Name: "init"}
	if _, err := plain.DocLink(); !errors.Is(err, ErrNoDocLink) {
		t.Fatalf("expected ErrNoDocLink, got %v", err)
	}

	linked := WithDocLink(plain, func(h *Hook) (string, error) {
		return "/" + h.Type + "/" + h.Name, nil
	})
	if plain.HasDocLink() {
		t.Fatalf("original hook must stay untouched")
	}
	linked.Type = TypeAction
	got, err := linked.DocLink()
	if err != nil {
		t.Fatalf("doc link: %v", err)
	}
	if got != "/action/init" {
		t.Fatalf("unexpected link %q", got)
	}
}

func TestHookCloneCopiesExtra(t *testing.T) {
	h := &Hook{Name: "a", Extra: map[string]any{"k": "v"}}
	clone := h.Clone()
	clone.Extra["k"] = "changed"
	if h.Extra["k"] != "v" {
		t.Fatalf("clone shares extra map")
	}
}

func TestHookEmptyTypeRoundTrip(t *testing.T) {
	var h Hook
	if err := json.Unmarshal([]byte(`{"name":"e","type":""}`), &h); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if v, ok := h.Get(FieldType); !ok || v != "" {
		t.Fatalf("expected empty type to be present, got %v (ok=%v)", v, ok)
	}

	out, err := json.Marshal(&h)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if diff := cmp.Diff(`{"name":"e","type":""}`, string(out)); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}

	var missing Hook
	if err := json.Unmarshal([]byte(`{"name":"e"}`), &missing); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := missing.Fields()[FieldType]; ok {
		t.Fatalf("absent type must stay absent")
	}
	if _, ok := missing.Clone().Get(FieldType); ok {
		t.Fatalf("clone must not invent a type")
	}
	if _, ok := h.Clone().Get(FieldType); !ok {
		t.Fatalf("clone must keep an empty type")
	}
}
