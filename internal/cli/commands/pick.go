package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-hooks/pkg/model"
	"github.com/goliatone/go-hooks/pkg/prompt"
)

func newPickCommand(a *app) *cobra.Command {
	var (
		where  []string
		expr   string
		refine bool
	)
	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Choose a hook interactively and show its details",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pred, err := buildPredicate(where, expr)
			if err != nil {
				return err
			}
			repo, err := a.repository(cmd.Context())
			if err != nil {
				return err
			}

			chosen, err := prompt.Pick(cmd.Context(), a.driver, repo.Filter(pred, 0), prompt.PickOptions{Refine: refine})
			if errors.Is(err, prompt.ErrAborted) {
				return nil
			}
			if errors.Is(err, prompt.ErrNoOptions) {
				return errors.New("no hooks to pick from")
			}
			if err != nil {
				return err
			}
			return a.print(cmd, []*model.Hook{chosen}, true, true)
		},
	}
	cmd.Flags().StringArrayVarP(&where, "where", "w", nil, "narrow candidates with key=value criteria (repeatable)")
	cmd.Flags().StringVarP(&expr, "expr", "e", "", "narrow candidates with a boolean expression")
	cmd.Flags().BoolVarP(&refine, "refine", "r", false, "ask for a name substring before listing")
	return cmd
}
