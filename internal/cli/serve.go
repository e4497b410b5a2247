package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/portalsur/portalsur/internal/gate"
	"github.com/portalsur/portalsur/internal/logging"
	"github.com/portalsur/portalsur/internal/store"
	"github.com/portalsur/portalsur/internal/web"
)

func newServeCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the catalog API server",
		Long:  "Start the HTTP JSON API for the property catalog. Requires PORTALSUR_ADMIN_SECRET so the privileged editing mode can be unlocked.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, port)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "port to listen on (default from PORTALSUR_PORT or 8080)")

	return cmd
}

func runServe(cmd *cobra.Command, port int) error {
	cfg, err := loadServerConfig()
	if err != nil {
		return err
	}
	if cfg.AdminSecret == "" {
		return fmt.Errorf("PORTALSUR_ADMIN_SECRET is required to serve")
	}
	if port == 0 {
		port = cfg.Port
	}

	logging.Setup(cfg.Dev)

	medium, closer, err := openMedium(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer closeMedium(closer)

	srv := web.NewServer(store.New(medium), gate.New(cfg.AdminSecret))

	slog.Info("starting catalog api",
		"port", port,
		"driver", cfg.Store.Driver,
	)
	return srv.ListenAndServe(port)
}
