package report

import (
	"testing"

	"github.com/de-tools/debt-atlas/pkg/models/domain"
	"github.com/de-tools/debt-atlas/pkg/services/countries"
	"github.com/de-tools/debt-atlas/pkg/services/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	ds, err := dataset.Normalize([]domain.RawTable{
		{
			DebtorCode: "BTN",
			Columns:    []string{"year", "amount"},
			Rows:       [][]string{{"2018", "1000000000"}, {"2019", "1500000000"}},
		},
	})
	require.NoError(t, err)

	r := Build(countries.NewResolver(), ds.Records())

	assert.Equal(t, domain.ReportPeriod{FromYear: 2018, ToYear: 2019, Years: 2}, r.Period)
	assert.InDelta(t, 2.5e9, r.TotalDebtUSD, 1e-3)
	require.Len(t, r.Sections, 2)

	exec := r.Sections[0]
	assert.Equal(t, "Executive Summary", exec.Title)
	assert.Equal(t, 2, exec.Summary["Records"])
	assert.Equal(t, "Bhutan", exec.Details[3].Value)

	growth := r.Sections[1]
	assert.Equal(t, "Growth: Bhutan", growth.Title)
	assert.Equal(t, "50.00", growth.Details[0].Value)
}

func TestBuild_EmptySelection(t *testing.T) {
	r := Build(countries.NewResolver(), nil)

	assert.Zero(t, r.TotalDebtUSD)
	assert.Empty(t, r.Sections)
	assert.Equal(t, domain.ReportPeriod{}, r.Period)
}
