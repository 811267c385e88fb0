package dataset

import (
	"math"
	"sort"

	"github.com/de-tools/debt-atlas/pkg/models/domain"
)

// Summarize computes the headline metrics of a filtered record set: totals,
// peak year, top debtor and per-debtor growth statistics.
func Summarize(records []domain.DebtRecord) domain.Summary {
	summary := domain.Summary{RecordCount: len(records)}
	if len(records) == 0 {
		return summary
	}

	totalsByDebtor := make(map[string]float64)
	growthByDebtor := make(map[string][]float64)
	summary.Years = domain.YearRange{From: records[0].Year, To: records[0].Year}

	for _, rec := range records {
		summary.TotalDebtUSD += rec.DebtUSD
		totalsByDebtor[rec.DebtorCode] += rec.DebtUSD
		if rec.YoYGrowthPct != nil {
			growthByDebtor[rec.DebtorCode] = append(growthByDebtor[rec.DebtorCode], *rec.YoYGrowthPct)
		}
		if rec.DebtUSD > summary.PeakDebtUSD {
			summary.PeakDebtUSD = rec.DebtUSD
			summary.PeakYear = rec.Year
		}
		if rec.Year < summary.Years.From {
			summary.Years.From = rec.Year
		}
		if rec.Year > summary.Years.To {
			summary.Years.To = rec.Year
		}
	}
	summary.AvgAnnualUSD = summary.TotalDebtUSD / float64(len(records))

	codes := make([]string, 0, len(totalsByDebtor))
	for code := range totalsByDebtor {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	var topTotal float64
	for _, code := range codes {
		if totalsByDebtor[code] > topTotal {
			topTotal = totalsByDebtor[code]
			summary.TopDebtorCode = code
		}
		if series := growthByDebtor[code]; len(series) > 0 {
			summary.GrowthByDebtor = append(summary.GrowthByDebtor, growthStats(code, series))
		}
	}
	return summary
}

func growthStats(code string, series []float64) domain.GrowthStats {
	stats := domain.GrowthStats{
		DebtorCode: code,
		Min:        series[0],
		Max:        series[0],
		Samples:    len(series),
	}

	var sum float64
	for _, v := range series {
		sum += v
		if v < stats.Min {
			stats.Min = v
		}
		if v > stats.Max {
			stats.Max = v
		}
	}
	stats.Mean = sum / float64(len(series))

	if len(series) > 1 {
		var sq float64
		for _, v := range series {
			sq += (v - stats.Mean) * (v - stats.Mean)
		}
		stats.StdDev = math.Sqrt(sq / float64(len(series)-1))
	}
	return stats
}
