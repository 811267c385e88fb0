package adapters

import (
	"github.com/de-tools/debt-atlas/pkg/models/api"
	"github.com/de-tools/debt-atlas/pkg/models/domain"
	"github.com/de-tools/debt-atlas/pkg/models/store"
)

func MapDebtRecordDomainToApi(rec domain.DebtRecord) api.DebtRecord {
	return api.DebtRecord{
		Year:         rec.Year,
		DebtorCode:   rec.DebtorCode,
		DebtUSD:      rec.DebtUSD,
		YoYGrowthPct: cloneGrowth(rec.YoYGrowthPct),
	}
}

func MapDebtRecordsDomainToApi(records []domain.DebtRecord) []api.DebtRecord {
	out := make([]api.DebtRecord, 0, len(records))
	for _, rec := range records {
		out = append(out, MapDebtRecordDomainToApi(rec))
	}
	return out
}

func MapCountryDomainToApi(c domain.Country) api.Country {
	return api.Country{Name: c.Name, Code: c.Code}
}

func MapDebtRecordDomainToStore(rec domain.DebtRecord) store.WorkbookRow {
	return store.WorkbookRow{
		Year:         rec.Year,
		DebtorCode:   rec.DebtorCode,
		DebtUSD:      rec.DebtUSD,
		YoYGrowthPct: cloneGrowth(rec.YoYGrowthPct),
	}
}

func MapWorkbookRowStoreToDomain(row store.WorkbookRow) domain.DebtRecord {
	return domain.DebtRecord{
		Year:         row.Year,
		DebtorCode:   row.DebtorCode,
		DebtUSD:      row.DebtUSD,
		YoYGrowthPct: cloneGrowth(row.YoYGrowthPct),
	}
}

func MapSummaryDomainToApi(s domain.Summary) api.Summary {
	summary := api.Summary{
		TotalDebtUSD:  s.TotalDebtUSD,
		AvgAnnualUSD:  s.AvgAnnualUSD,
		PeakYear:      s.PeakYear,
		PeakDebtUSD:   s.PeakDebtUSD,
		TopDebtorCode: s.TopDebtorCode,
		RecordCount:   s.RecordCount,
		Years:         api.YearRange{From: s.Years.From, To: s.Years.To},
	}
	for _, g := range s.GrowthByDebtor {
		summary.GrowthByDebtor = append(summary.GrowthByDebtor, api.GrowthStats{
			DebtorCode: g.DebtorCode,
			Mean:       g.Mean,
			StdDev:     g.StdDev,
			Min:        g.Min,
			Max:        g.Max,
			Samples:    g.Samples,
		})
	}
	return summary
}

func cloneGrowth(v *float64) *float64 {
	if v == nil {
		return nil
	}
	clone := *v
	return &clone
}
