package commands

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"strings"

	"go.uber.org/zap"

	hooks "github.com/goliatone/go-hooks"
	"github.com/goliatone/go-hooks/internal/cli/config"
	"github.com/goliatone/go-hooks/pkg/loader"
	"github.com/goliatone/go-hooks/pkg/model"
	"github.com/goliatone/go-hooks/pkg/present"
	"github.com/goliatone/go-hooks/pkg/prompt"
	"github.com/goliatone/go-hooks/pkg/repository"
	"github.com/goliatone/go-hooks/pkg/source"
)

var errNoSources = errors.New("no hook sources configured: pass --source or list sources in hooks.yaml")

// setup loads configuration and applies flag overrides.
func (a *app) setup() error {
	cfg, err := config.Load(config.Options{File: a.configFile})
	if err != nil {
		return err
	}
	if len(a.sources) > 0 {
		cfg.Sources = a.sources
	}
	if a.template != "" {
		cfg.DocLinkTemplate = a.template
	}
	if a.noColor {
		cfg.Output.Color = false
	}
	if a.output != "" {
		if !present.DefaultRegistry().Has(a.output) {
			return fmt.Errorf("unknown output format %q (available: %s)", a.output, strings.Join(present.DefaultRegistry().List(), ", "))
		}
		cfg.Output.Format = strings.ToLower(a.output)
	}
	a.cfg = cfg

	if a.logger == nil {
		logger, err := cfg.Log.NewLogger()
		if err != nil {
			return err
		}
		a.logger = logger
	}
	if a.driver == nil {
		a.driver = prompt.NewSurveyDriver()
	}
	return nil
}

// repository loads every configured source once per invocation.
func (a *app) repository(ctx context.Context) (*repository.Repository, error) {
	if a.repo != nil {
		return a.repo, nil
	}
	if len(a.cfg.Sources) == 0 {
		return nil, errNoSources
	}

	repo := hooks.NewRepository(repository.WithLogger(a.logger))
	l := hooks.NewLoader()
	for _, path := range a.cfg.Sources {
		batches, err := loadPath(ctx, l, path)
		if err != nil {
			return nil, err
		}
		for i := range batches {
			batches[i] = withDocLinkTemplate(batches[i], a.cfg.DocLinkTemplate)
		}
		if _, err := repo.Push(batches...); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		a.logger.Debug("source loaded",
			zap.String("path", path),
			zap.Int("batches", len(batches)),
		)
	}
	a.logger.Debug("repository ready", zap.Int("hooks", repo.Len()))

	a.repo = repo
	return repo, nil
}

func loadPath(ctx context.Context, l loader.Loader, path string) ([]any, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("source %s: %w", path, err)
	}
	if info.IsDir() {
		return loader.LoadFS(ctx, os.DirFS(path))
	}
	return loader.LoadAndDecode(ctx, l, source.SourceFromFile(path))
}

// withDocLinkTemplate attaches tmpl to batches that do not declare their own
// docLinkTemplate. Bare sequences are wrapped into a container.
func withDocLinkTemplate(batch any, tmpl string) any {
	if tmpl == "" {
		return batch
	}
	if m, ok := batch.(map[string]any); ok && model.IsContainer(m) {
		if existing, _ := m["docLinkTemplate"].(string); existing != "" {
			return batch
		}
		out := maps.Clone(m)
		out["docLinkTemplate"] = tmpl
		return out
	}
	if model.IsContainer(batch) {
		return batch
	}
	return map[string]any{
		"$schema":         model.DefaultSchema,
		"docLinkTemplate": tmpl,
		"hooks":           batch,
	}
}
