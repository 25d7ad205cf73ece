package commands

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-hooks/pkg/model"
)

func newFindCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "find NAME",
		Short: "Show a single hook by exact name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := a.repository(cmd.Context())
			if err != nil {
				return err
			}
			h, err := lookup(repo, args[0])
			if err != nil {
				return err
			}
			return a.print(cmd, []*model.Hook{h}, true, true)
		},
	}
}
