// Package loader reads hooks documents and decodes them into batches the
// repository accepts. JSON and YAML are both supported; the decoded value is
// either a container map or a bare sequence, left for the repository to
// classify.
package loader

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-hooks/pkg/source"
)

// Loader fetches hooks documents. Implementations live under internal/loader.
type Loader interface {
	Load(ctx context.Context, src source.Source) (source.Document, error)
}

// Options configures how a Loader resolves sources.
type Options struct {
	// FileSystem backs fs sources; without it they fail to load.
	FileSystem fs.FS
}

// Option mutates Options prior to construction.
type Option func(*Options)

// WithFileSystem injects an fs.FS for source.SourceFromFS locations.
func WithFileSystem(files fs.FS) Option {
	return func(opts *Options) {
		opts.FileSystem = files
	}
}

// NewOptions applies options and returns the resulting configuration.
func NewOptions(options ...Option) Options {
	cfg := Options{}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// Decode parses a document as JSON, falling back to YAML. Files with a .yaml
// or .yml extension go straight to YAML.
func Decode(doc source.Document) (any, error) {
	raw := doc.Raw()
	var out any

	switch doc.Ext() {
	case ".yaml", ".yml":
	default:
		if err := json.Unmarshal(raw, &out); err == nil {
			return out, nil
		}
	}

	if err := yaml.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("loader: parse %s: invalid JSON or YAML: %w", doc.Location(), err)
	}
	if out == nil {
		return nil, fmt.Errorf("loader: parse %s: document is empty", doc.Location())
	}
	return out, nil
}

// LoadAndDecode loads every source in order and decodes it into a batch.
func LoadAndDecode(ctx context.Context, l Loader, sources ...source.Source) ([]any, error) {
	batches := make([]any, 0, len(sources))
	for _, src := range sources {
		doc, err := l.Load(ctx, src)
		if err != nil {
			return nil, fmt.Errorf("loader: load %s: %w", locationOf(src), err)
		}
		batch, err := Decode(doc)
		if err != nil {
			return nil, err
		}
		batches = append(batches, batch)
	}
	return batches, nil
}

func locationOf(src source.Source) string {
	if src == nil {
		return "<nil>"
	}
	return src.Location()
}
