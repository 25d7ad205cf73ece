package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	pkgloader "github.com/goliatone/go-hooks/pkg/loader"
	"github.com/goliatone/go-hooks/pkg/source"
)

// Loader implements pkgloader.Loader by delegating to file or fs.FS
// strategies.
type Loader struct {
	fs fs.FS
}

var _ pkgloader.Loader = (*Loader)(nil)

// New constructs a Loader from pre-resolved options.
func New(options pkgloader.Options) *Loader {
	return &Loader{fs: options.FileSystem}
}

// Load reads the document behind src.
func (l *Loader) Load(ctx context.Context, src source.Source) (source.Document, error) {
	if src == nil {
		return source.Document{}, errors.New("loader: source is nil")
	}

	var (
		data []byte
		err  error
	)
	switch src.Kind() {
	case source.KindFile:
		data, err = loadFile(ctx, src.Location())
	case source.KindFS:
		data, err = loadFromFS(ctx, l.fs, src.Location())
	default:
		err = fmt.Errorf("loader: unsupported source kind %q", src.Kind())
	}
	if err != nil {
		return source.Document{}, err
	}

	return source.NewDocument(src, data)
}
