package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/de-tools/debt-atlas/pkg/models/api"
	"github.com/de-tools/debt-atlas/pkg/models/domain"
	"github.com/de-tools/debt-atlas/pkg/services/countries"
	"github.com/de-tools/debt-atlas/pkg/services/dataset"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebAPI_Endpoints(t *testing.T) {
	ds, err := dataset.Normalize([]domain.RawTable{
		{
			DebtorCode: "BTN",
			Columns:    []string{"year", "amount"},
			Rows:       [][]string{{"2018", "100"}, {"2019", "150"}},
		},
		{
			DebtorCode: "NPL",
			Columns:    []string{"year", "amount"},
			Rows:       [][]string{{"2019", "400"}},
		},
	})
	require.NoError(t, err)

	config := Config{
		Addr:            ":8080",
		ShutdownTimeout: 10 * time.Second,
		Dependencies: Dependencies{
			Resolver: countries.NewResolver(),
			Dataset:  ds,
			Logger:   zerolog.New(zerolog.NewTestWriter(t)),
		},
	}
	router := ConfigureRouter(config)
	testServer := httptest.NewServer(router)
	defer testServer.Close()

	tests := []struct {
		name           string
		path           string
		expectedStatus int
		expected       interface{}
		parseResponse  func([]byte) (interface{}, error)
	}{
		{
			name:           "ListCountries",
			path:           "/api/v1/countries",
			expectedStatus: http.StatusOK,
			expected: []api.Country{
				{Name: "Bangladesh", Code: "BGD"},
				{Name: "Bhutan", Code: "BTN"},
				{Name: "Maldives", Code: "MDV"},
				{Name: "Myanmar", Code: "MMR"},
				{Name: "Nepal", Code: "NPL"},
				{Name: "Sri Lanka", Code: "LKA"},
			},
			parseResponse: unmarshalResponse[[]api.Country](),
		},
		{
			name:           "GetRecords_Filtered",
			path:           "/api/v1/debt?countries=BTN&from=2018&to=2018",
			expectedStatus: http.StatusOK,
			expected: []api.DebtRecord{
				{Year: 2018, DebtorCode: "BTN", DebtUSD: 100},
			},
			parseResponse: unmarshalResponse[[]api.DebtRecord](),
		},
		{
			name:           "GetRecords_EmptySelection",
			path:           "/api/v1/debt?countries=",
			expectedStatus: http.StatusOK,
			expected:       []api.DebtRecord{},
			parseResponse:  unmarshalResponse[[]api.DebtRecord](),
		},
		{
			name:           "GetRecords_InvalidYear",
			path:           "/api/v1/debt?from=abcd",
			expectedStatus: http.StatusBadRequest,
			expected:       "invalid 'from' year. Expected a 4-digit year\n",
			parseResponse: func(data []byte) (interface{}, error) {
				return string(data), nil
			},
		},
		{
			name:           "GetSummary",
			path:           "/api/v1/debt/summary?countries=NPL",
			expectedStatus: http.StatusOK,
			expected: api.Summary{
				TotalDebtUSD:  400,
				AvgAnnualUSD:  400,
				PeakYear:      2019,
				PeakDebtUSD:   400,
				TopDebtorCode: "NPL",
				RecordCount:   1,
				Years:         api.YearRange{From: 2019, To: 2019},
			},
			parseResponse: unmarshalResponse[api.Summary](),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := http.Get(testServer.URL + tc.path)
			require.NoError(t, err, "Failed to send request")
			defer resp.Body.Close()

			assert.Equal(t, tc.expectedStatus, resp.StatusCode, "Status code mismatch")

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err, "Failed to read response body")

			actual, err := tc.parseResponse(body)
			require.NoError(t, err, "Failed to parse response")

			assert.Equal(t, tc.expected, actual)
		})
	}
}

func TestWebAPI_ExportDownload(t *testing.T) {
	ds, err := dataset.Normalize([]domain.RawTable{
		{
			DebtorCode: "BTN",
			Columns:    []string{"year", "amount"},
			Rows:       [][]string{{"2018", "100"}},
		},
	})
	require.NoError(t, err)

	router := ConfigureRouter(Config{
		Dependencies: Dependencies{
			Resolver: countries.NewResolver(),
			Dataset:  ds,
			Logger:   zerolog.New(zerolog.NewTestWriter(t)),
		},
	})
	testServer := httptest.NewServer(router)
	defer testServer.Close()

	resp, err := http.Get(testServer.URL + "/api/v1/debt/export")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/csv", resp.Header.Get("Content-Type"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "2018,BTN,100,")
}

func unmarshalResponse[T any]() func([]byte) (interface{}, error) {
	return func(data []byte) (interface{}, error) {
		var response T
		err := json.Unmarshal(data, &response)
		return response, err
	}
}
