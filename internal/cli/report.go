package cli

import (
	"fmt"
	"os"

	"github.com/autospa/autospa-api/internal/application/service"
	"github.com/autospa/autospa-api/internal/infrastructure/repository"
	"github.com/spf13/cobra"
)

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Sales reports",
	}
	cmd.AddCommand(newReportExportCmd())
	return cmd
}

func newReportExportCmd() *cobra.Command {
	var (
		reportType string
		startDate  string
		endDate    string
		out        string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a sales report as an .xlsx workbook",
		Long:  "Export the daily, weekly or monthly report, or an explicit --start/--end range (YYYY-MM-DD, end inclusive).",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, err := connect()
			if err != nil {
				return err
			}

			reports := service.NewReportService(
				repository.NewBillRepository(db),
				repository.NewAnalyticsRepository(db),
				cfg.Database.Location(),
			)
			r, err := reports.ResolveRange(reportType, startDate, endDate)
			if err != nil {
				return err
			}
			report, err := reports.GetReport(cmd.Context(), r)
			if err != nil {
				return fmt.Errorf("building report: %w", err)
			}
			buf, err := reports.ExportReport(report)
			if err != nil {
				return fmt.Errorf("writing workbook: %w", err)
			}

			if out == "" {
				out = service.ExportFilename(r)
			}
			if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("saving %s: %w", out, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%d bills, total %s, written to %s\n",
				report.TotalBills, report.TotalSales, out)
			return nil
		},
	}

	cmd.Flags().StringVar(&reportType, "type", service.ReportDaily, "daily, weekly or monthly")
	cmd.Flags().StringVar(&startDate, "start", "", "first day of a custom range")
	cmd.Flags().StringVar(&endDate, "end", "", "last day of a custom range")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default sales-<dates>.xlsx)")
	return cmd
}
