package loader

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/goliatone/go-hooks/pkg/source"
)

// LoadFS walks fsys in lexical order and decodes every JSON or YAML file into
// a batch. Files such as actions.json and filters.json in a hooks package can
// then be pushed in one call.
func LoadFS(ctx context.Context, fsys fs.FS) ([]any, error) {
	if fsys == nil {
		return nil, nil
	}

	var batches []any
	err := fs.WalkDir(fsys, ".", func(name string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if entry.IsDir() || !isHooksFile(name) {
			return nil
		}

		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("loader: read %s: %w", name, err)
		}
		doc, err := source.NewDocument(source.SourceFromFS(name), data)
		if err != nil {
			return fmt.Errorf("loader: %w", err)
		}
		batch, err := Decode(doc)
		if err != nil {
			return err
		}
		batches = append(batches, batch)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return batches, nil
}

func isHooksFile(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
