package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/bizflow-api/internal/infrastructure/postgres"
	"github.com/jhoicas/bizflow-api/pkg/config"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Aplica las migraciones pendientes de PostgreSQL (goose up)",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, log, err := loadConfig(os.Stdout)
		if err != nil {
			return err
		}
		if cfg.Store.Driver != config.StoreDriverPostgres {
			return fmt.Errorf("migrate requiere STORE_DRIVER=postgres (actual: %s)", cfg.Store.Driver)
		}
		pool, err := postgres.NewPool(cmd.Context(), cfg.DB)
		if err != nil {
			return fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		defer pool.Close()

		if err := postgres.Migrate(cmd.Context(), pool); err != nil {
			return err
		}
		log.Info().Msg("migraciones aplicadas")
		return nil
	},
}
