package domain

// GrowthStats aggregates the year-over-year growth series of one debtor.
// Years without a defined growth value are excluded from the aggregates.
type GrowthStats struct {
	DebtorCode string
	Mean       float64
	StdDev     float64
	Min        float64
	Max        float64
	Samples    int
}

// Summary is the headline view of a (possibly filtered) dataset.
type Summary struct {
	TotalDebtUSD   float64
	AvgAnnualUSD   float64
	PeakYear       int
	PeakDebtUSD    float64
	TopDebtorCode  string
	RecordCount    int
	Years          YearRange
	GrowthByDebtor []GrowthStats
}
