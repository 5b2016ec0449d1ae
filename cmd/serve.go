package cmd

import (
	"github.com/spf13/cobra"

	"github.com/opsdash/india-ops/config"
	"github.com/opsdash/india-ops/router"
	"github.com/opsdash/india-ops/seeder"
	"github.com/opsdash/india-ops/utils"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the analytics API server",
	Long: `serve seeds the database when it is empty and then starts the HTTP
API that backs the operations dashboard.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		utils.InitLogger()

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		db, err := cfg.InitDB()
		if err != nil {
			return err
		}
		utils.InitDB(db)

		if err := seeder.New(utils.GetDB()).Run(seeder.DefaultParams(cfg.Seed)); err != nil {
			return err
		}

		r := router.SetupRouter(utils.GetDB(), *cfg)
		utils.InfoLogger.Printf("listening on %s", cfg.Addr())
		return r.Run(cfg.Addr())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
