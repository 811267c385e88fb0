package dataset

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/de-tools/debt-atlas/pkg/models/domain"
)

const (
	columnYear   = "year"
	columnAmount = "amount"
)

// ValidationError reports a raw table that cannot be normalized: a missing
// required column or a cell that fails type coercion.
type ValidationError struct {
	DebtorCode string
	Column     string
	Reason     string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validate table %s, column %q: %s", e.DebtorCode, e.Column, e.Reason)
}

// Normalize merges raw per-country tables into a single dataset. Rows are
// appended in input order, tagged with their table's debtor code, then each
// partition is ordered by year and annotated with year-over-year growth.
// The first error aborts normalization; no partial dataset is produced.
func Normalize(tables []domain.RawTable) (*Dataset, error) {
	ds := &Dataset{partitions: make(map[string][]domain.DebtRecord)}

	for _, table := range tables {
		records, err := coerceTable(table)
		if err != nil {
			return nil, err
		}
		if _, seen := ds.partitions[table.DebtorCode]; !seen {
			ds.order = append(ds.order, table.DebtorCode)
		}
		ds.partitions[table.DebtorCode] = append(ds.partitions[table.DebtorCode], records...)
	}

	for code, records := range ds.partitions {
		sortByYear(records)
		if err := ensureUniqueYears(code, records); err != nil {
			return nil, err
		}
		annotateGrowth(records)
	}
	return ds, nil
}

func coerceTable(table domain.RawTable) ([]domain.DebtRecord, error) {
	yearIdx, err := columnIndex(table, columnYear)
	if err != nil {
		return nil, err
	}
	amountIdx, err := columnIndex(table, columnAmount)
	if err != nil {
		return nil, err
	}

	records := make([]domain.DebtRecord, 0, len(table.Rows))
	for i, row := range table.Rows {
		if yearIdx >= len(row) || amountIdx >= len(row) {
			return nil, &ValidationError{
				DebtorCode: table.DebtorCode,
				Column:     columnAmount,
				Reason:     fmt.Sprintf("row %d is short (%d cells)", i, len(row)),
			}
		}
		year, err := strconv.Atoi(strings.TrimSpace(row[yearIdx]))
		if err != nil {
			return nil, &ValidationError{
				DebtorCode: table.DebtorCode,
				Column:     columnYear,
				Reason:     fmt.Sprintf("row %d: %q is not an integer year", i, row[yearIdx]),
			}
		}
		amount, err := strconv.ParseFloat(strings.TrimSpace(row[amountIdx]), 64)
		if err != nil {
			return nil, &ValidationError{
				DebtorCode: table.DebtorCode,
				Column:     columnAmount,
				Reason:     fmt.Sprintf("row %d: %q is not a number", i, row[amountIdx]),
			}
		}
		if amount < 0 {
			return nil, &ValidationError{
				DebtorCode: table.DebtorCode,
				Column:     columnAmount,
				Reason:     fmt.Sprintf("row %d: debt amount %v is negative", i, amount),
			}
		}
		records = append(records, domain.DebtRecord{
			Year:       year,
			DebtorCode: table.DebtorCode,
			DebtUSD:    amount,
		})
	}
	return records, nil
}

func columnIndex(table domain.RawTable, name string) (int, error) {
	for i, col := range table.Columns {
		if strings.EqualFold(strings.TrimSpace(col), name) {
			return i, nil
		}
	}
	return 0, &ValidationError{
		DebtorCode: table.DebtorCode,
		Column:     name,
		Reason:     "required column is absent",
	}
}

func ensureUniqueYears(code string, records []domain.DebtRecord) error {
	for i := 1; i < len(records); i++ {
		if records[i].Year == records[i-1].Year {
			return &ValidationError{
				DebtorCode: code,
				Column:     columnYear,
				Reason:     fmt.Sprintf("duplicate year %d", records[i].Year),
			}
		}
	}
	return nil
}

// annotateGrowth computes the year-over-year percentage change within one
// partition already ordered by year. Growth stays undefined for the first
// year, for any year whose predecessor is missing, and when the prior-year
// amount is zero.
func annotateGrowth(records []domain.DebtRecord) {
	for i := 1; i < len(records); i++ {
		prev := records[i-1]
		if records[i].Year != prev.Year+1 {
			continue
		}
		if prev.DebtUSD == 0 {
			continue
		}
		growth := (records[i].DebtUSD - prev.DebtUSD) / prev.DebtUSD * 100
		records[i].YoYGrowthPct = &growth
	}
}
