package store

// WorkbookRow is one spreadsheet row of the persisted dataset. Growth is a
// pointer so that an undefined growth value round-trips as a blank cell
// rather than a zero.
type WorkbookRow struct {
	Year         int
	DebtorCode   string
	DebtUSD      float64
	YoYGrowthPct *float64
}
