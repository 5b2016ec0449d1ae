package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "india-ops",
	Short: "India e-commerce operations dataset and analytics service",
	Long: `india-ops seeds a deterministic synthetic dataset of customers,
orders, support tickets and returns for the India market, then serves
dashboard analytics, trend alerts and HTML reports over HTTP.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
