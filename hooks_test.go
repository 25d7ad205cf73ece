package hooks

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-hooks/pkg/loader"
	"github.com/goliatone/go-hooks/pkg/source"
)

func TestLoadFSFixtures(t *testing.T) {
	repo := NewRepository()
	processed, err := LoadFS(context.Background(), repo, os.DirFS(filepath.Join("pkg", "loader", "testdata", "hooks")))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(processed) != 4 {
		t.Fatalf("expected 4 hooks, got %d", len(processed))
	}

	dynamic, ok := repo.Find("save_post_{$post->post_type}")
	if !ok {
		t.Fatalf("expected dynamic hook")
	}
	link, err := dynamic.DocLink()
	if err != nil {
		t.Fatalf("doc link: %v", err)
	}
	if link != "https://developer.wordpress.org/reference/hooks/save_post_/" {
		t.Fatalf("unexpected link %q", link)
	}

	title, ok := repo.Find("the_title")
	if !ok {
		t.Fatalf("expected the_title")
	}
	if title.HasDocLink() {
		t.Fatalf("bare yaml sequence must not carry a doc link")
	}

	filters := repo.Filter(Criteria{"type": "filter"}, 0)
	if len(filters) != 2 {
		t.Fatalf("expected 2 filters, got %d", len(filters))
	}
}

func TestLoadIntoFromFS(t *testing.T) {
	files := os.DirFS(filepath.Join("pkg", "loader", "testdata"))
	l := NewLoader(loader.WithFileSystem(files))
	repo := NewRepository()

	processed, err := LoadInto(context.Background(), repo, l, source.SourceFromFS("hooks/filters.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(processed) != 2 || !strings.HasPrefix(processed[0].Name, "the_") {
		t.Fatalf("unexpected processed hooks %+v", processed)
	}

	if _, err := LoadInto(context.Background(), repo, l, source.SourceFromFS("hooks/missing.json")); err == nil {
		t.Fatalf("expected missing source to fail")
	}
}
