package debt

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/de-tools/debt-atlas/pkg/models/domain"
)

const (
	defaultBaseURL   = "https://api.worldbank.org/v2"
	defaultSeries    = "DT.DOD.BLAT.CD" // PPG bilateral debt, disbursed and outstanding
	defaultSourceID  = "6"              // International Debt Statistics
	defaultPerPage   = 1000
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "debt-atlas/0.1"
)

// FetchError wraps any failure to obtain or decode a provider response.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Config holds the provider endpoint settings. Zero values fall back to the
// public International Debt Statistics API.
type Config struct {
	BaseURL   string
	Series    string
	SourceID  string
	PerPage   int
	Timeout   time.Duration
	UserAgent string
}

// Fetcher is a thin client for the World Bank Debt Statistics API. It does
// not retry and does not cache; callers own the retry policy.
type Fetcher struct {
	config Config
	client *http.Client
}

func NewFetcher(cfg Config) *Fetcher {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = defaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Series == "" {
		cfg.Series = defaultSeries
	}
	if cfg.SourceID == "" {
		cfg.SourceID = defaultSourceID
	}
	if cfg.PerPage <= 0 {
		cfg.PerPage = defaultPerPage
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	return &Fetcher{
		config: cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// FetchTable requests the debt series for one debtor/creditor pair and
// returns it as a raw table with "year" and "amount" columns. Years outside
// [startYear, endYear] are dropped; years the provider reports as null are
// omitted, leaving an explicit gap in the series.
func (f *Fetcher) FetchTable(
	ctx context.Context,
	debtorCode, creditorCode string,
	startYear, endYear int,
) (domain.RawTable, error) {
	// The IDS time dimension has no range syntax, so request all years and
	// filter locally.
	path := fmt.Sprintf("/sources/%s/country/%s/series/%s/counterpart-area/%s/time/all",
		f.config.SourceID,
		url.PathEscape(debtorCode),
		url.PathEscape(f.config.Series),
		url.PathEscape(creditorCode),
	)
	endpoint := f.config.BaseURL + path + "?" + url.Values{
		"format":   {"json"},
		"per_page": {strconv.Itoa(f.config.PerPage)},
	}.Encode()

	payload, err := f.doJSON(ctx, endpoint)
	if err != nil {
		return domain.RawTable{}, err
	}

	table := domain.RawTable{
		DebtorCode:   debtorCode,
		CreditorCode: creditorCode,
		Columns:      []string{"year", "amount"},
	}
	for _, point := range payload.Source.Data {
		if point.Value == nil {
			continue
		}
		year, ok := point.year()
		if !ok {
			continue
		}
		if year < startYear || year > endYear {
			continue
		}
		table.Rows = append(table.Rows, []string{
			strconv.Itoa(year),
			strconv.FormatFloat(*point.Value, 'f', -1, 64),
		})
	}
	return table, nil
}

func (f *Fetcher) doJSON(ctx context.Context, endpoint string) (*idsResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &FetchError{URL: endpoint, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", f.config.UserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: endpoint, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{URL: endpoint, Err: err}
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &FetchError{
			URL: endpoint,
			Err: fmt.Errorf("provider returned %s: %s", resp.Status, strings.TrimSpace(string(body))),
		}
	}

	var payload idsResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &FetchError{URL: endpoint, Err: fmt.Errorf("malformed response: %w", err)}
	}
	if payload.Source == nil {
		return nil, &FetchError{URL: endpoint, Err: fmt.Errorf("malformed response: missing source block")}
	}
	return &payload, nil
}

// idsResponse mirrors the /sources/{id} JSON shape: each data point carries
// its dimension memberships in a "variable" list plus a nullable value.
type idsResponse struct {
	Total  int        `json:"total"`
	Source *idsSource `json:"source"`
}

type idsSource struct {
	ID   string         `json:"id"`
	Data []idsDataPoint `json:"data"`
}

type idsDataPoint struct {
	Variables []idsVariable `json:"variable"`
	Value     *float64      `json:"value"`
}

type idsVariable struct {
	Concept string `json:"concept"`
	ID      string `json:"id"`
	Value   string `json:"value"`
}

func (p idsDataPoint) year() (int, bool) {
	for _, v := range p.Variables {
		if !strings.EqualFold(v.Concept, "Time") {
			continue
		}
		raw := strings.TrimSpace(v.Value)
		if raw == "" {
			raw = strings.TrimPrefix(strings.TrimSpace(v.ID), "YR")
		}
		year, err := strconv.Atoi(raw)
		if err != nil {
			return 0, false
		}
		return year, true
	}
	return 0, false
}
