package domain

// Country is a single entry of the static debtor/creditor reference table.
type Country struct {
	Name string
	Code string
}

// DebtRecord is one observation of PPG bilateral debt owed by a debtor
// country to the creditor for a calendar year. YoYGrowthPct is nil for the
// first year of a partition and whenever the prior-year amount is zero.
type DebtRecord struct {
	Year         int
	DebtorCode   string
	DebtUSD      float64
	YoYGrowthPct *float64
}

// RawTable is the untyped tabular payload produced by a single fetch call,
// before normalization. Columns are positional; rows hold string cells in
// the same order.
type RawTable struct {
	DebtorCode   string
	CreditorCode string
	Columns      []string
	Rows         [][]string
}

// YearRange is an inclusive [From, To] filter over record years.
type YearRange struct {
	From int
	To   int
}

// Contains reports whether year falls inside the range.
func (r YearRange) Contains(year int) bool {
	return year >= r.From && year <= r.To
}
