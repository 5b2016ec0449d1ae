package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/opsdash/india-ops/analytics"
	"github.com/opsdash/india-ops/catalog"
	"github.com/opsdash/india-ops/config"
	"github.com/opsdash/india-ops/seeder"
	"github.com/opsdash/india-ops/services"
	"github.com/opsdash/india-ops/utils"
)

var (
	reportOut   string
	reportStart string
	reportEnd   string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render the HTML operations report to a file",
	RunE: func(cmd *cobra.Command, args []string) error {
		utils.InitLogger()

		const layout = "2006-01-02"
		start := reportStart
		end := reportEnd
		if start == "" {
			start = catalog.WindowStart.Format(layout)
		}
		if end == "" {
			end = catalog.WindowEnd.Format(layout)
		}
		if _, err := time.Parse(layout, start); err != nil {
			return fmt.Errorf("invalid --start %q, expected YYYY-MM-DD", start)
		}
		if _, err := time.Parse(layout, end); err != nil {
			return fmt.Errorf("invalid --end %q, expected YYYY-MM-DD", end)
		}

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

		html, err := services.NewReportService(analytics.New(utils.GetDB())).Render(start, end)
		if err != nil {
			return err
		}
		if err := os.WriteFile(reportOut, html, 0o644); err != nil {
			return fmt.Errorf("write report: %w", err)
		}

		utils.InfoLogger.Printf("report written to %s", reportOut)
		return nil
	},
}

func init() {
	reportCmd.Flags().StringVar(&reportOut, "out", "ops_report.html", "output file path")
	reportCmd.Flags().StringVar(&reportStart, "start", "", "report period start (YYYY-MM-DD)")
	reportCmd.Flags().StringVar(&reportEnd, "end", "", "report period end (YYYY-MM-DD)")
	rootCmd.AddCommand(reportCmd)
}
