package workbook

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/de-tools/debt-atlas/pkg/models/domain"
	"github.com/de-tools/debt-atlas/pkg/models/store"
	"github.com/xuri/excelize/v2"
)

const (
	combinedSheet = "Combined"
	analysisSheet = "Analysis"
)

// Store persists the normalized dataset as an xlsx workbook: one sheet per
// debtor, a combined sheet with every row, and an analysis sheet with the
// headline metrics. The combined sheet is authoritative on read.
type Store struct {
	path string
}

func NewStore(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("workbook path is required")
	}
	return &Store{path: path}, nil
}

func (s *Store) Path() string { return s.path }

// WriteDataset writes the workbook atomically in the sense that a failed
// write never replaces an existing file.
func (s *Store) WriteDataset(rows []store.WorkbookRow, summary domain.Summary) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", combinedSheet); err != nil {
		return fmt.Errorf("rename combined sheet: %w", err)
	}
	if err := writeCombined(f, rows); err != nil {
		return err
	}
	if err := writeCountrySheets(f, rows); err != nil {
		return err
	}
	if err := writeAnalysis(f, summary); err != nil {
		return err
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create workbook directory: %w", err)
		}
	}

	// Save to a temp file first so a failed write cannot truncate an
	// existing workbook.
	tmp := s.path + ".tmp"
	if err := f.SaveAs(tmp); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace workbook: %w", err)
	}
	return nil
}

// ReadDataset reads the combined sheet back into workbook rows.
func (s *Store) ReadDataset() ([]store.WorkbookRow, error) {
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	raw, err := f.GetRows(combinedSheet)
	if err != nil {
		return nil, fmt.Errorf("read combined sheet: %w", err)
	}
	if len(raw) == 0 {
		return nil, nil
	}

	rows := make([]store.WorkbookRow, 0, len(raw)-1)
	for i, cells := range raw[1:] { // skip header
		if len(cells) < 3 {
			return nil, fmt.Errorf("combined sheet row %d is short", i+2)
		}
		year, err := strconv.Atoi(strings.TrimSpace(cells[0]))
		if err != nil {
			return nil, fmt.Errorf("combined sheet row %d: bad year %q", i+2, cells[0])
		}
		amount, err := strconv.ParseFloat(strings.TrimSpace(cells[2]), 64)
		if err != nil {
			return nil, fmt.Errorf("combined sheet row %d: bad amount %q", i+2, cells[2])
		}
		row := store.WorkbookRow{
			Year:       year,
			DebtorCode: strings.TrimSpace(cells[1]),
			DebtUSD:    amount,
		}
		if len(cells) > 3 && strings.TrimSpace(cells[3]) != "" {
			growth, err := strconv.ParseFloat(strings.TrimSpace(cells[3]), 64)
			if err != nil {
				return nil, fmt.Errorf("combined sheet row %d: bad growth %q", i+2, cells[3])
			}
			row.YoYGrowthPct = &growth
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func writeCombined(f *excelize.File, rows []store.WorkbookRow) error {
	header := []interface{}{"Year", "Debtor Code", "Debt (USD)", "YoY Growth (%)"}
	if err := setRow(f, combinedSheet, 1, header); err != nil {
		return err
	}
	for i, row := range rows {
		cells := []interface{}{row.Year, row.DebtorCode, row.DebtUSD, growthCell(row.YoYGrowthPct)}
		if err := setRow(f, combinedSheet, i+2, cells); err != nil {
			return err
		}
	}
	return nil
}

func writeCountrySheets(f *excelize.File, rows []store.WorkbookRow) error {
	nextLine := make(map[string]int)
	for _, row := range rows {
		sheet := row.DebtorCode
		line, seen := nextLine[sheet]
		if !seen {
			if _, err := f.NewSheet(sheet); err != nil {
				return fmt.Errorf("create sheet %s: %w", sheet, err)
			}
			header := []interface{}{"Year", "Debt (USD)", "YoY Growth (%)"}
			if err := setRow(f, sheet, 1, header); err != nil {
				return err
			}
			line = 2
		}
		cells := []interface{}{row.Year, row.DebtUSD, growthCell(row.YoYGrowthPct)}
		if err := setRow(f, sheet, line, cells); err != nil {
			return err
		}
		nextLine[sheet] = line + 1
	}
	return nil
}

func writeAnalysis(f *excelize.File, summary domain.Summary) error {
	if _, err := f.NewSheet(analysisSheet); err != nil {
		return fmt.Errorf("create sheet %s: %w", analysisSheet, err)
	}

	lines := [][]interface{}{
		{"Metric", "Value"},
		{"Total Debt (USD)", summary.TotalDebtUSD},
		{"Average Annual Debt (USD)", summary.AvgAnnualUSD},
		{"Peak Debt Year", summary.PeakYear},
		{"Peak Debt (USD)", summary.PeakDebtUSD},
		{"Top Debtor", summary.TopDebtorCode},
		{"Records", summary.RecordCount},
		{"First Year", summary.Years.From},
		{"Last Year", summary.Years.To},
		{},
		{"Debtor", "Mean Growth (%)", "Std Dev", "Min", "Max", "Samples"},
	}
	for _, g := range summary.GrowthByDebtor {
		lines = append(lines, []interface{}{g.DebtorCode, g.Mean, g.StdDev, g.Min, g.Max, g.Samples})
	}

	for i, cells := range lines {
		if len(cells) == 0 {
			continue
		}
		if err := setRow(f, analysisSheet, i+1, cells); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, line int, cells []interface{}) error {
	for col, value := range cells {
		if value == nil {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(col+1, line)
		if err != nil {
			return fmt.Errorf("sheet %s line %d: %w", sheet, line, err)
		}
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return fmt.Errorf("sheet %s cell %s: %w", sheet, cell, err)
		}
	}
	return nil
}

func growthCell(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
