package dataset

import (
	"sort"

	"github.com/de-tools/debt-atlas/pkg/models/domain"
)

// Dataset is the normalized debt dataset: one partition per debtor code,
// each ordered by year. It is read-only after Normalize returns, so
// concurrent queries need no locking.
type Dataset struct {
	partitions map[string][]domain.DebtRecord
	order      []string
}

// Filter selects a subset of the dataset. A nil Countries slice means all
// debtors; an empty non-nil slice selects nothing. Years of zero value
// (From==To==0) mean the full year span.
type Filter struct {
	Countries []string
	Years     domain.YearRange
}

// Select returns the filtered records, partitions in dataset order and each
// partition ordered by year. An empty selection yields an empty slice, not
// an error.
func (d *Dataset) Select(f Filter) []domain.DebtRecord {
	codes := f.Countries
	if codes == nil {
		codes = d.order
	}
	years := f.Years
	if years.From == 0 && years.To == 0 {
		years = d.Years()
	}

	out := make([]domain.DebtRecord, 0)
	for _, code := range codes {
		for _, rec := range d.partitions[code] {
			if years.Contains(rec.Year) {
				out = append(out, rec)
			}
		}
	}
	return out
}

// Records returns every record, partitions in input order.
func (d *Dataset) Records() []domain.DebtRecord {
	return d.Select(Filter{})
}

// Partition returns the records of one debtor, ordered by year.
func (d *Dataset) Partition(code string) []domain.DebtRecord {
	recs := d.partitions[code]
	out := make([]domain.DebtRecord, len(recs))
	copy(out, recs)
	return out
}

// Countries returns the debtor codes in partition input order.
func (d *Dataset) Countries() []string {
	out := make([]string, len(d.order))
	copy(out, d.order)
	return out
}

// Years returns the inclusive year span covered by the dataset.
func (d *Dataset) Years() domain.YearRange {
	var r domain.YearRange
	first := true
	for _, records := range d.partitions {
		for _, rec := range records {
			if first || rec.Year < r.From {
				r.From = rec.Year
			}
			if first || rec.Year > r.To {
				r.To = rec.Year
			}
			first = false
		}
	}
	return r
}

// FromRecords rebuilds a dataset from already-normalized records, e.g. rows
// read back from the workbook. Growth annotations are recomputed rather
// than trusted.
func FromRecords(records []domain.DebtRecord) *Dataset {
	ds := &Dataset{partitions: make(map[string][]domain.DebtRecord)}
	for _, rec := range records {
		if _, seen := ds.partitions[rec.DebtorCode]; !seen {
			ds.order = append(ds.order, rec.DebtorCode)
		}
		rec.YoYGrowthPct = nil
		ds.partitions[rec.DebtorCode] = append(ds.partitions[rec.DebtorCode], rec)
	}
	for _, records := range ds.partitions {
		sortByYear(records)
		annotateGrowth(records)
	}
	return ds
}

func sortByYear(records []domain.DebtRecord) {
	sort.Slice(records, func(i, j int) bool { return records[i].Year < records[j].Year })
}
