package present

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-hooks/pkg/model"
)

func TestDefaultRegistry(t *testing.T) {
	t.Parallel()

	reg := DefaultRegistry()
	if diff := cmp.Diff([]string{FormatJSON, FormatText, FormatYAML}, reg.List()); diff != "" {
		t.Fatalf("formats mismatch (-want +got):\n%s", diff)
	}
	if !reg.Has("JSON") {
		t.Fatalf("lookups should ignore case")
	}
	if _, err := reg.Get("xml"); err == nil || !strings.Contains(err.Error(), "json, text, yaml") {
		t.Fatalf("expected unknown format error listing formats, got %v", err)
	}
}

func TestRegistryRegister(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	names := NewFormatter("names", func(w io.Writer, hooks []*model.Hook, _ Options) error {
		for _, h := range hooks {
			if _, err := io.WriteString(w, h.Name+"\n"); err != nil {
				return err
			}
		}
		return nil
	})
	if err := reg.Register(names); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := reg.Register(names); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
	if err := reg.Register(nil); err == nil {
		t.Fatalf("expected error for nil formatter")
	}
	if err := reg.Register(NewFormatter("", nil)); err == nil {
		t.Fatalf("expected error for unnamed formatter")
	}

	f, err := reg.Get("names")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	var buf bytes.Buffer
	if err := f.Format(&buf, []*model.Hook{{Name: "init"}, {Name: "wp_head"}}, Options{}); err != nil {
		t.Fatalf("format: %v", err)
	}
	if buf.String() != "init\nwp_head\n" {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestYAMLFormatter(t *testing.T) {
	t.Parallel()

	f, err := DefaultRegistry().Get(FormatYAML)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	var buf bytes.Buffer
	if err := f.Format(&buf, sampleHooks(), Options{}); err != nil {
		t.Fatalf("format: %v", err)
	}

	var got []map[string]any
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
	if got[0]["name"] != "init" || got[0]["docLink"] != "https://example.test/hooks/init/" {
		t.Fatalf("unexpected first record %v", got[0])
	}
	if got[1]["docLinkError"] != "boom" {
		t.Fatalf("unexpected second record %v", got[1])
	}
}
