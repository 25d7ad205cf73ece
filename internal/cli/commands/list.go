package commands

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-hooks/pkg/model"
)

func newListCommand(a *app) *cobra.Command {
	var (
		kind  string
		long  bool
		links bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every loaded hook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := a.repository(cmd.Context())
			if err != nil {
				return err
			}
			found := repo.All()
			if kind != "" {
				found = repo.Filter(model.Criteria{model.FieldType: kind}, 0)
			}
			return a.print(cmd, found, long, links)
		},
	}
	cmd.Flags().StringVarP(&kind, "type", "t", "", "only list hooks of this type (action or filter)")
	cmd.Flags().BoolVarP(&long, "long", "l", false, "include long descriptions")
	cmd.Flags().BoolVar(&links, "links", false, "include doc links")
	return cmd
}
