package domain

// Report represents a complete analysis report
type Report struct {
	Title        string
	Period       ReportPeriod
	Sections     []ReportSection
	TotalDebtUSD float64
	Currency     string
}

// ReportPeriod represents the year span covered by the report
type ReportPeriod struct {
	FromYear int
	ToYear   int
	Years    int
}

// ReportSection represents a logical section in the report
type ReportSection struct {
	Title   string
	Summary map[string]interface{}
	Details []ReportDetail
}

// ReportDetail represents detailed information within a section
type ReportDetail struct {
	Name        string
	Value       interface{}
	Unit        string
	Description string
}
