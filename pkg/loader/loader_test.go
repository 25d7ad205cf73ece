package loader

import (
	"context"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-hooks/pkg/model"
	"github.com/goliatone/go-hooks/pkg/source"
)

func TestDecodeJSONAndYAML(t *testing.T) {
	cases := []struct {
		name     string
		location string
		raw      string
		want     any
	}{
		{
			name:     "json container",
			location: "hooks.json",
			raw:      `{"hooks":[{"name":"init"}]}`,
			want:     map[string]any{"hooks": []any{map[string]any{"name": "init"}}},
		},
		{
			name:     "yaml sequence",
			location: "hooks.yaml",
			raw:      "- name: init\n  type: action\n",
			want:     []any{map[string]any{"name": "init", "type": "action"}},
		},
		{
			name:     "yaml without extension hint",
			location: "hooks.txt",
			raw:      "hooks:\n  - name: init\n",
			want:     map[string]any{"hooks": []any{map[string]any{"name": "init"}}},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc := source.MustNewDocument(source.SourceFromFS(tc.location), []byte(tc.raw))
			got, err := Decode(doc)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("decode mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecodeInvalid(t *testing.T) {
	doc := source.MustNewDocument(source.SourceFromFS("bad.json"), []byte("{hooks: [unterminated"))
	if _, err := Decode(doc); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestLoadFS(t *testing.T) {
	batches, err := LoadFS(context.Background(), os.DirFS("testdata/hooks"))
	if err != nil {
		t.Fatalf("load fs: %v", err)
	}
	if len(batches) != 2 {
		t.Fatalf("expected 2 batches (README skipped), got %d", len(batches))
	}

	if !model.IsContainer(batches[0]) {
		t.Fatalf("expected actions.json to decode into a container")
	}
	if model.IsContainer(batches[1]) {
		t.Fatalf("expected filters.yaml to decode into a bare sequence")
	}
}

func TestLoadFSCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := LoadFS(ctx, os.DirFS("testdata/hooks")); err == nil {
		t.Fatalf("expected context error")
	}
}
