// Package hooks is the entry point for go-hooks: an in-memory repository of
// hook documentation records with partial-match lookups and lazily rendered
// documentation links. The subpackages under pkg/ hold the building blocks;
// this package wires the defaults together.
package hooks

import (
	"context"
	"fmt"
	"io/fs"

	internalloader "github.com/goliatone/go-hooks/internal/loader"
	"github.com/goliatone/go-hooks/pkg/loader"
	"github.com/goliatone/go-hooks/pkg/model"
	"github.com/goliatone/go-hooks/pkg/repository"
	"github.com/goliatone/go-hooks/pkg/source"
)

// Hook aliases model.Hook for callers that only import the root package.
type Hook = model.Hook

// Container aliases model.Container.
type Container = model.Container

// Criteria aliases model.Criteria.
type Criteria = model.Criteria

// Predicate aliases model.Predicate.
type Predicate = model.Predicate

// Repository aliases repository.Repository.
type Repository = repository.Repository

// NewRepository constructs an empty repository backed by the default pongo2
// template engine unless repository.WithEngine overrides it.
func NewRepository(options ...repository.Option) *Repository {
	return repository.New(options...)
}

// NewLoader constructs a loader using the internal implementation while
// keeping the concrete type hidden from consumers.
func NewLoader(options ...loader.Option) loader.Loader {
	return internalloader.New(loader.NewOptions(options...))
}

// LoadInto loads and decodes each source, then pushes the resulting batches
// into repo in order. It returns the hooks processed by Push.
func LoadInto(ctx context.Context, repo *Repository, l loader.Loader, sources ...source.Source) ([]*Hook, error) {
	if repo == nil {
		return nil, fmt.Errorf("hooks: repository is nil")
	}
	if l == nil {
		l = NewLoader()
	}
	batches, err := loader.LoadAndDecode(ctx, l, sources...)
	if err != nil {
		return nil, err
	}
	return repo.Push(batches...)
}

// LoadFS pushes every JSON or YAML hooks file found in fsys.
func LoadFS(ctx context.Context, repo *Repository, fsys fs.FS) ([]*Hook, error) {
	if repo == nil {
		return nil, fmt.Errorf("hooks: repository is nil")
	}
	batches, err := loader.LoadFS(ctx, fsys)
	if err != nil {
		return nil, err
	}
	return repo.Push(batches...)
}
