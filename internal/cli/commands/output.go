package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-hooks/pkg/model"
	"github.com/goliatone/go-hooks/pkg/present"
	"github.com/goliatone/go-hooks/pkg/repository"
)

func (a *app) print(cmd *cobra.Command, found []*model.Hook, long, links bool) error {
	formatter, err := present.DefaultRegistry().Get(a.cfg.Output.Format)
	if err != nil {
		return err
	}
	return formatter.Format(cmd.OutOrStdout(), found, present.Options{
		NoColor: !a.cfg.Output.Color,
		Long:    long,
		Links:   links,
	})
}

// lookup finds a hook by exact name, suggesting close names when it is missing.
func lookup(repo *repository.Repository, name string) (*model.Hook, error) {
	if h, ok := repo.Find(name); ok {
		return h, nil
	}
	err := fmt.Errorf("hook %q not found", name)
	if similar := present.Suggest(name, repo.Names(), 3); len(similar) > 0 {
		err = fmt.Errorf("%w; did you mean: %s?", err, strings.Join(similar, ", "))
	}
	return nil, err
}
