// Package testsupport holds fixture and golden-file helpers shared by tests.
// It depends only on model and source so any package's tests can import it.
package testsupport

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-hooks/pkg/model"
	"github.com/goliatone/go-hooks/pkg/source"
)

// LoadDocument reads a fixture into a source.Document backed by a file source.
func LoadDocument(t *testing.T, path string) source.Document {
	t.Helper()

	doc, err := LoadDocumentFromPath(path)
	if err != nil {
		t.Fatalf("load document: %v", err)
	}
	return doc
}

// LoadDocumentFromPath returns a Document without requiring testing.T.
func LoadDocumentFromPath(path string) (source.Document, error) {
	if path == "" {
		return source.Document{}, errors.New("testsupport: document path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return source.Document{}, fmt.Errorf("testsupport: read document: %w", err)
	}
	doc, err := source.NewDocument(source.SourceFromFile(path), data)
	if err != nil {
		return source.Document{}, fmt.Errorf("testsupport: new document: %w", err)
	}
	return doc, nil
}

// MustLoadBatch decodes a JSON or YAML fixture into the raw value a
// repository accepts as a batch.
func MustLoadBatch(t *testing.T, path string) any {
	t.Helper()

	doc := LoadDocument(t, path)
	var out any
	if err := yaml.Unmarshal(doc.Raw(), &out); err != nil {
		t.Fatalf("decode batch %s: %v", path, err)
	}
	return out
}

// MustLoadContainer decodes a fixture and classifies it.
func MustLoadContainer(t *testing.T, path string) model.Container {
	t.Helper()

	container, err := model.Classify(MustLoadBatch(t, path))
	if err != nil {
		t.Fatalf("classify %s: %v", path, err)
	}
	return container
}

// HookNames lists hook names in order; nil hooks are skipped.
func HookNames(hooks []*model.Hook) []string {
	out := make([]string, 0, len(hooks))
	for _, h := range hooks {
		if h != nil {
			out = append(out, h.Name)
		}
	}
	return out
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}
