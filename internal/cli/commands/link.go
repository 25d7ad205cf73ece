package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-hooks/pkg/model"
)

func newLinkCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "link NAME",
		Short: "Print the documentation link of a hook",
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
			link, err := h.DocLink()
			if errors.Is(err, model.ErrNoDocLink) {
				return fmt.Errorf("hook %q has no doc link; its source declares no docLinkTemplate (try --template)", h.Name)
			}
			if err != nil {
				return fmt.Errorf("hook %q: %w", h.Name, err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), link)
			return err
		},
	}
}
