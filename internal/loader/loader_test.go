package loader

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	pkgloader "github.com/goliatone/go-hooks/pkg/loader"
	"github.com/goliatone/go-hooks/pkg/source"
)

type unknownSource struct{}

func (unknownSource) Kind() source.Kind { return "ftp" }
func (unknownSource) Location() string  { return "ftp://example.com/hooks.json" }

func TestLoaderFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hooks.json")
	if err := os.WriteFile(path, []byte(`[{"name":"init"}]`), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	l := New(pkgloader.NewOptions())
	doc, err := l.Load(context.Background(), source.SourceFromFile(path))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(doc.Raw()) != `[{"name":"init"}]` {
		t.Fatalf("unexpected payload %q", doc.Raw())
	}
	if doc.Location() != path {
		t.Fatalf("unexpected location %q", doc.Location())
	}
}

func TestLoaderFS(t *testing.T) {
	files := fstest.MapFS{
		"hooks/filters.yaml": &fstest.MapFile{Data: []byte("- name: the_title\n")},
		"hooks/empty.json":   &fstest.MapFile{Data: []byte("  \n")},
	}
	l := New(pkgloader.NewOptions(pkgloader.WithFileSystem(files)))

	doc, err := l.Load(context.Background(), source.SourceFromFS("hooks/filters.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.Ext() != ".yaml" {
		t.Fatalf("unexpected extension %q", doc.Ext())
	}

	if _, err := l.Load(context.Background(), source.SourceFromFS("hooks/empty.json")); err == nil {
		t.Fatalf("expected empty document to fail")
	}
	if _, err := l.Load(context.Background(), source.SourceFromFS("hooks/missing.json")); err == nil {
		t.Fatalf("expected missing file to fail")
	}
}

func TestLoaderErrors(t *testing.T) {
	l := New(pkgloader.NewOptions())
	ctx := context.Background()

	if _, err := l.Load(ctx, nil); err == nil {
		t.Fatalf("expected nil source to fail")
	}
	if _, err := l.Load(ctx, source.SourceFromFS("hooks.json")); err == nil {
		t.Fatalf("expected fs source without fs to fail")
	}
	if _, err := l.Load(ctx, unknownSource{}); err == nil {
		t.Fatalf("expected unsupported kind to fail")
	}

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := l.Load(canceled, source.SourceFromFile("hooks.json")); err == nil {
		t.Fatalf("expected canceled context to fail")
	}
}
