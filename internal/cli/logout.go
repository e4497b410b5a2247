package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored admin secret",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogout()
		},
	}
}

func runLogout() error {
	cliCfg, err := loadConfig()
	if err != nil {
		return err
	}

	if cliCfg.Secret == "" {
		fmt.Println("Not logged in.")
		return nil
	}

	cliCfg.Secret = ""
	if err := saveConfig(cliCfg); err != nil {
		return err
	}

	fmt.Println("Logged out.")
	return nil
}
