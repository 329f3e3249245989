package cmd

import (
	"github.com/spf13/cobra"

	"github.com/AlexCourivaud/ShareTech2/config"
	"github.com/AlexCourivaud/ShareTech2/routes"
	"github.com/AlexCourivaud/ShareTech2/utils"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		utils.SetJWTSecret(cfg.JWTSecret)

		db, err := config.ConnectDB(cfg)
		if err != nil {
			return err
		}
		if err := autoMigrate(db); err != nil {
			return err
		}

		r := routes.SetupRouter(db)
		return r.Run(cfg.Listen)
	},
}
