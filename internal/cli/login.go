package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/portalsur/portalsur/internal/config"
	"github.com/portalsur/portalsur/internal/gate"
)

func newLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login <secret>",
		Short: "Unlock privileged mode for later commands",
		Long:  "Verify the admin secret and persist it to the CLI config so later commands run privileged without --secret.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(args[0])
		},
	}
}

func runLogin(secret string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.AdminSecret == "" {
		return fmt.Errorf("PORTALSUR_ADMIN_SECRET is not configured, cannot verify secret")
	}

	g := gate.New(cfg.AdminSecret)
	if !g.Submit(secret) {
		return fmt.Errorf("incorrect secret")
	}

	cliCfg, err := loadConfig()
	if err != nil {
		return err
	}
	cliCfg.Secret = secret
	if err := saveConfig(cliCfg); err != nil {
		return err
	}

	fmt.Println("Privileged mode unlocked.")
	return nil
}
