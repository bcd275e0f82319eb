package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "bizflow",
	Short: "BizFlow API: inventario, ventas, cobros y gastos de una tienda",
	Long: `BizFlow expone la API HTTP del libro de la tienda (stock, saldos de clientes,
ventas y gastos) y comandos de mantenimiento.

La configuración se lee de variables de entorno o de .env / config/config.env
(APP_ENV, STORE_DRIVER, DATABASE_URL, JWT_SECRET, ...).`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, tokenCmd, summaryCmd)
}
