package api

type Country struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

type DebtRecord struct {
	Year         int      `json:"year"`
	DebtorCode   string   `json:"debtor_code"`
	DebtUSD      float64  `json:"debt_usd"`
	YoYGrowthPct *float64 `json:"yoy_growth_pct,omitempty"`
}

type YearRange struct {
	From int `json:"from"`
	To   int `json:"to"`
}

type GrowthStats struct {
	DebtorCode string  `json:"debtor_code"`
	Mean       float64 `json:"mean"`
	StdDev     float64 `json:"std_dev"`
	Min        float64 `json:"min"`
	Max        float64 `json:"max"`
	Samples    int     `json:"samples"`
}

type Summary struct {
	TotalDebtUSD   float64       `json:"total_debt_usd"`
	AvgAnnualUSD   float64       `json:"avg_annual_usd"`
	PeakYear       int           `json:"peak_year"`
	PeakDebtUSD    float64       `json:"peak_debt_usd"`
	TopDebtorCode  string        `json:"top_debtor_code"`
	RecordCount    int           `json:"record_count"`
	Years          YearRange     `json:"years"`
	GrowthByDebtor []GrowthStats `json:"growth_by_debtor"`
}
