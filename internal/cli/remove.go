package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/portalsur/portalsur/internal/store"
)

func newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a property from the catalog",
		Long:  "Permanently delete a listing by id. There is no undo. Requires privileged mode.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRemove(cmd, args[0])
		},
	}
}

func runRemove(cmd *cobra.Command, id string) error {
	if _, err := requirePrivileged(); err != nil {
		return err
	}

	s, closer, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer closeMedium(closer)

	if err := s.Delete(cmd.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("property %s not found", id)
		}
		return err
	}

	fmt.Printf("Property %s removed.\n", id)
	return nil
}
