package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	pkgjwt "github.com/jhoicas/bizflow-api/pkg/jwt"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Emite un token de desarrollo para una cuenta",
	Example: `  bizflow token --account tienda-1 --user admin
  curl -H "Authorization: Bearer $(bizflow token --account tienda-1)" localhost:8080/api/sales`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, _, err := loadConfig(os.Stderr)
		if err != nil {
			return err
		}
		account, _ := cmd.Flags().GetString("account")
		user, _ := cmd.Flags().GetString("user")
		minutes, _ := cmd.Flags().GetInt("minutes")
		if minutes <= 0 {
			minutes = cfg.JWT.Expiration
		}

		tok, err := pkgjwt.Generate(cfg.JWT.Secret, user, account, cfg.JWT.Issuer, minutes)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), tok)
		return nil
	},
}

func init() {
	tokenCmd.Flags().String("account", "", "cuenta (tienda) del token")
	tokenCmd.Flags().String("user", "cli", "usuario del token")
	tokenCmd.Flags().Int("minutes", 0, "vigencia en minutos (default JWT_EXPIRATION_MINUTES)")
	_ = tokenCmd.MarkFlagRequired("account")
}
