package cmd

import (
	"github.com/spf13/cobra"

	"github.com/opsdash/india-ops/config"
	"github.com/opsdash/india-ops/seeder"
	"github.com/opsdash/india-ops/utils"
)

var seedFlag int64

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Generate and store the synthetic dataset",
	Long: `seed generates the full deterministic dataset and writes it to the
configured database. If the database is already seeded the command is a
no-op, so it is safe to run repeatedly.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		utils.InitLogger()

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("seed") {
			cfg.Seed = seedFlag
		}

		db, err := cfg.InitDB()
		if err != nil {
			return err
		}
		utils.InitDB(db)

		return seeder.New(utils.GetDB()).Run(seeder.DefaultParams(cfg.Seed))
	},
}

func init() {
	seedCmd.Flags().Int64Var(&seedFlag, "seed", 2024, "random seed for the generator")
	rootCmd.AddCommand(seedCmd)
}
