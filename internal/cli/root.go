// Package cli defines the cobra command tree for portalsur.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/portalsur/portalsur/internal/config"
	"github.com/portalsur/portalsur/internal/gate"
	"github.com/portalsur/portalsur/internal/store"
)

var (
	flagFormat  string
	flagDriver  string
	flagCatalog string
	flagSecret  string
)

// NewRootCmd creates the root cobra command with global flags.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "portalsur",
		Short:         "Manage the portalsur property catalog",
		Long:          "A property-listing catalog with a gated administrative editing mode. Browse and filter listings, or unlock the privileged mode to create, replace and remove them.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flagFormat, "format", "text", "output format (text|json)")
	root.PersistentFlags().StringVar(&flagDriver, "driver", "", "store driver (file|sqlite|s3), overrides env and config")
	root.PersistentFlags().StringVar(&flagCatalog, "catalog", "", "catalog file or database path, overrides env and config")
	root.PersistentFlags().StringVar(&flagSecret, "secret", "", "admin secret for privileged operations")

	root.AddCommand(
		newListCmd(),
		newShowCmd(),
		newAddCmd(),
		newRemoveCmd(),
		newServeCmd(),
		newLoginCmd(),
		newLogoutCmd(),
		newVersionCmd(),
	)

	return root
}

// loadServerConfig merges environment config with the persisted CLI
// config and command-line flags. Flags win, then env, then CLI config.
func loadServerConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	cliCfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	if cfg.Store.CatalogPath == "" {
		cfg.Store.CatalogPath = cliCfg.CatalogPath
	}
	if cfg.Store.DBPath == "" {
		cfg.Store.DBPath = cliCfg.DBPath
	}

	if flagDriver != "" {
		cfg.Store.Driver = flagDriver
	}
	if flagCatalog != "" {
		switch cfg.Store.Driver {
		case config.DriverSQLite:
			cfg.Store.DBPath = flagCatalog
		default:
			cfg.Store.CatalogPath = flagCatalog
		}
	}

	return cfg, nil
}

// openMedium constructs the backing medium selected by cfg.
func openMedium(ctx context.Context, cfg *config.Config) (store.Medium, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Store.Driver {
	case config.DriverFile:
		path := cfg.Store.CatalogPath
		if path == "" {
			var err error
			path, err = store.DefaultCatalogPath()
			if err != nil {
				return nil, nil, err
			}
		}
		return store.NewFileMedium(path), noop, nil

	case config.DriverSQLite:
		path := cfg.Store.DBPath
		if path == "" {
			return nil, nil, fmt.Errorf("PORTALSUR_DB_PATH is required for the sqlite driver")
		}
		m, err := store.OpenSQLite(path)
		if err != nil {
			return nil, nil, err
		}
		return m, m.Close, nil

	case config.DriverS3:
		m, err := store.NewS3Medium(ctx, store.S3Config{
			Bucket:    cfg.Store.S3Bucket,
			Region:    cfg.Store.S3Region,
			Endpoint:  cfg.Store.S3Endpoint,
			PathStyle: cfg.Store.S3PathStyle,
		})
		if err != nil {
			return nil, nil, err
		}
		return m, noop, nil
	}

	return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
}

// openStore opens the catalog store for a CLI command.
func openStore(ctx context.Context) (*store.Store, func() error, error) {
	cfg, err := loadServerConfig()
	if err != nil {
		return nil, nil, err
	}
	medium, closer, err := openMedium(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return store.New(medium), closer, nil
}

// resolveGate builds a gate for this invocation and submits the secret
// from the --secret flag or the persisted CLI config, if any. The
// returned gate reports whether this run is privileged.
func resolveGate() (*gate.Gate, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	secret := flagSecret
	if secret == "" {
		cliCfg, err := loadConfig()
		if err != nil {
			return nil, err
		}
		secret = cliCfg.Secret
	}

	g := gate.New(cfg.AdminSecret)
	if secret == "" {
		return g, nil
	}
	if cfg.AdminSecret == "" {
		return nil, fmt.Errorf("PORTALSUR_ADMIN_SECRET is not configured, cannot verify secret")
	}
	g.Submit(secret)
	return g, nil
}

// requirePrivileged resolves the gate and fails unless it opens.
func requirePrivileged() (*gate.Gate, error) {
	g, err := resolveGate()
	if err != nil {
		return nil, err
	}
	if !g.Privileged() {
		return nil, fmt.Errorf("privileged mode required: pass --secret or run portalsur login")
	}
	return g, nil
}

// isJSON returns true if the --format flag is set to json.
func isJSON() bool {
	return flagFormat == "json"
}

// closeMedium closes the medium, reporting any error on stderr.
func closeMedium(closer func() error) {
	if err := closer(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: closing store: %v\n", err)
	}
}
