package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/bizflow-api/internal/application/analytics"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Imprime el resumen financiero de una cuenta en JSON",
	RunE: func(cmd *cobra.Command, _ []string) error {
		// stdout queda para el JSON
		cfg, log, err := loadConfig(os.Stderr)
		if err != nil {
			return err
		}
		account, _ := cmd.Flags().GetString("account")

		b, err := openBackend(cmd.Context(), cfg, log)
		if err != nil {
			return err
		}
		defer b.close()

		summary, err := analytics.NewDashboardUseCase(b.repos, financeOptions(cfg.Ledger)).GetSummary(cmd.Context(), account)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	},
}

func init() {
	summaryCmd.Flags().String("account", "", "cuenta (tienda) a resumir")
	_ = summaryCmd.MarkFlagRequired("account")
}
