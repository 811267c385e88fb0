package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/de-tools/debt-atlas/pkg/adapters"
	"github.com/de-tools/debt-atlas/pkg/models/domain"
	"github.com/de-tools/debt-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/debt-atlas/pkg/services/countries"
	"github.com/de-tools/debt-atlas/pkg/services/dataset"
	"github.com/de-tools/debt-atlas/pkg/services/report"
	"github.com/de-tools/debt-atlas/pkg/store/workbook"
)

type ReportCmd struct {
	workbookPath string
	countryCodes []string
	fromYear     int
	toYear       int
	reporter     *export.Reporter
}

// NewReportCmd reads the persisted workbook back and prints an analysis
// report for the selected countries and years.
func NewReportCmd(reporter *export.Reporter) *cobra.Command {
	rc := &ReportCmd{reporter: reporter}
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print an analysis report from the workbook",
		RunE:  rc.run,
	}

	cmd.Flags().StringVarP(&rc.workbookPath, "workbook", "w", "data/ppg-bilateral-debt.xlsx",
		"Path to the workbook produced by fetch")
	cmd.Flags().StringSliceVar(&rc.countryCodes, "countries", nil,
		"Debtor codes to include (default all)")
	cmd.Flags().IntVar(&rc.fromYear, "from", 0, "First year to include")
	cmd.Flags().IntVar(&rc.toYear, "to", 0, "Last year to include")

	return cmd
}

func (rc *ReportCmd) run(_ *cobra.Command, _ []string) error {
	store, err := workbook.NewStore(rc.workbookPath)
	if err != nil {
		return err
	}
	rows, err := store.ReadDataset()
	if err != nil {
		return fmt.Errorf("failed to load workbook: %w", err)
	}

	records := make([]domain.DebtRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, adapters.MapWorkbookRowStoreToDomain(row))
	}
	ds := dataset.FromRecords(records)

	years := ds.Years()
	if rc.fromYear != 0 {
		years.From = rc.fromYear
	}
	if rc.toYear != 0 {
		years.To = rc.toYear
	}
	filter := dataset.Filter{Countries: rc.countryCodes, Years: years}

	resolver := countries.NewResolver()
	return rc.reporter.Handle(report.Build(resolver, ds.Select(filter)))
}
