package repository

import (
	"go.uber.org/zap"

	"github.com/goliatone/go-hooks/pkg/render/template"
)

// Option customises a Repository at construction time.
type Option func(*Repository)

// WithEngine sets the engine used to compile docLinkTemplate values. Without
// it the shared pongo2 engine is used.
func WithEngine(engine template.Engine) Option {
	return func(r *Repository) {
		if engine != nil {
			r.engine = engine
		}
	}
}

// WithLogger attaches a logger for debug traces of batch loading.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Repository) {
		if logger != nil {
			r.logger = logger
		}
	}
}
