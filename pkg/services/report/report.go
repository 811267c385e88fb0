package report

import (
	"fmt"

	"github.com/de-tools/debt-atlas/pkg/models/domain"
	"github.com/de-tools/debt-atlas/pkg/services/countries"
	"github.com/de-tools/debt-atlas/pkg/services/dataset"
)

// Build assembles an analysis report for a filtered record set: an
// executive summary section plus one growth section per debtor.
func Build(resolver *countries.Resolver, records []domain.DebtRecord) *domain.Report {
	summary := dataset.Summarize(records)

	r := &domain.Report{
		Title: "PPG Bilateral Debt Analysis (creditor: India)",
		Period: domain.ReportPeriod{
			FromYear: summary.Years.From,
			ToYear:   summary.Years.To,
			Years:    summary.Years.To - summary.Years.From + 1,
		},
		TotalDebtUSD: summary.TotalDebtUSD,
		Currency:     "USD",
	}
	if summary.RecordCount == 0 {
		r.Period = domain.ReportPeriod{}
		return r
	}

	topDebtor := summary.TopDebtorCode
	if name, err := resolver.NameByCode(topDebtor); err == nil {
		topDebtor = name
	}

	r.Sections = append(r.Sections, domain.ReportSection{
		Title: "Executive Summary",
		Summary: map[string]interface{}{
			"Records":   summary.RecordCount,
			"Countries": len(summary.GrowthByDebtor),
		},
		Details: []domain.ReportDetail{
			{Name: "Total Debt", Value: fmt.Sprintf("%.2f", summary.TotalDebtUSD/1e9), Unit: "B USD"},
			{Name: "Average Annual Debt", Value: fmt.Sprintf("%.1f", summary.AvgAnnualUSD/1e6), Unit: "M USD"},
			{Name: "Peak Debt Year", Value: summary.PeakYear},
			{Name: "Top Debtor", Value: topDebtor},
		},
	})

	for _, g := range summary.GrowthByDebtor {
		name := g.DebtorCode
		if resolved, err := resolver.NameByCode(g.DebtorCode); err == nil {
			name = resolved
		}
		r.Sections = append(r.Sections, domain.ReportSection{
			Title: fmt.Sprintf("Growth: %s", name),
			Details: []domain.ReportDetail{
				{Name: "Mean", Value: fmt.Sprintf("%.2f", g.Mean), Unit: "%"},
				{Name: "Std Dev", Value: fmt.Sprintf("%.2f", g.StdDev), Unit: "%"},
				{Name: "Min", Value: fmt.Sprintf("%.2f", g.Min), Unit: "%"},
				{Name: "Max", Value: fmt.Sprintf("%.2f", g.Max), Unit: "%"},
				{Name: "Samples", Value: g.Samples, Description: "years with defined growth"},
			},
		})
	}
	return r
}
