package debt

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResponse = `{
	"total": 4,
	"source": {
		"id": "6",
		"data": [
			{
				"variable": [
					{"concept": "Country", "id": "BTN", "value": "Bhutan"},
					{"concept": "Counterpart-Area", "id": "646", "value": "India"},
					{"concept": "Time", "id": "YR2017", "value": "2017"}
				],
				"value": 90000000
			},
			{
				"variable": [
					{"concept": "Country", "id": "BTN", "value": "Bhutan"},
					{"concept": "Counterpart-Area", "id": "646", "value": "India"},
					{"concept": "Time", "id": "YR2018", "value": "2018"}
				],
				"value": 100000000
			},
			{
				"variable": [
					{"concept": "Country", "id": "BTN", "value": "Bhutan"},
					{"concept": "Counterpart-Area", "id": "646", "value": "India"},
					{"concept": "Time", "id": "YR2019", "value": "2019"}
				],
				"value": null
			},
			{
				"variable": [
					{"concept": "Country", "id": "BTN", "value": "Bhutan"},
					{"concept": "Counterpart-Area", "id": "646", "value": "India"},
					{"concept": "Time", "id": "YR2021", "value": "2021"}
				],
				"value": 150000000
			}
		]
	}
}`

func TestFetchTable(t *testing.T) {
	var requestedPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestedPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleResponse))
	}))
	defer server.Close()

	fetcher := NewFetcher(Config{BaseURL: server.URL})
	table, err := fetcher.FetchTable(context.Background(), "BTN", "646", 2017, 2020)
	require.NoError(t, err)

	assert.Equal(t, "/sources/6/country/BTN/series/DT.DOD.BLAT.CD/counterpart-area/646/time/all", requestedPath)
	assert.Equal(t, "BTN", table.DebtorCode)
	assert.Equal(t, "646", table.CreditorCode)
	assert.Equal(t, []string{"year", "amount"}, table.Columns)

	// Null 2019 is dropped as a gap, 2021 falls outside the range.
	require.Len(t, table.Rows, 2)
	assert.Equal(t, []string{"2017", "90000000"}, table.Rows[0])
	assert.Equal(t, []string{"2018", "100000000"}, table.Rows[1])
}

func TestFetchTable_ProviderFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "upstream unavailable", http.StatusBadGateway)
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"source": [not json`))
			},
		},
		{
			name: "missing source block",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"total": 0}`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			fetcher := NewFetcher(Config{BaseURL: server.URL})
			_, err := fetcher.FetchTable(context.Background(), "BTN", "646", 1972, 2020)

			require.Error(t, err)
			var fetchErr *FetchError
			assert.True(t, errors.As(err, &fetchErr))
		})
	}
}

func TestFetchTable_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	fetcher := NewFetcher(Config{BaseURL: server.URL})
	_, err := fetcher.FetchTable(context.Background(), "BTN", "646", 1972, 2020)

	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
}
