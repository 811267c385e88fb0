package debt

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/de-tools/debt-atlas/pkg/adapters"
	"github.com/de-tools/debt-atlas/pkg/models/api"
	"github.com/de-tools/debt-atlas/pkg/models/domain"
	"github.com/de-tools/debt-atlas/pkg/services/countries"
	"github.com/de-tools/debt-atlas/pkg/services/dataset"
)

// DatasetService is the read-only dataset surface the handler queries. The
// underlying dataset never changes after construction, so handlers share it
// across sessions without locking.
type DatasetService interface {
	Select(f dataset.Filter) []domain.DebtRecord
	Years() domain.YearRange
}

type Handler struct {
	resolver *countries.Resolver
	dataset  DatasetService
}

func NewHandler(resolver *countries.Resolver, ds DatasetService) *Handler {
	return &Handler{
		resolver: resolver,
		dataset:  ds,
	}
}

func (h *Handler) ListCountries(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	response := make([]api.Country, 0)
	for _, c := range h.resolver.All() {
		response = append(response, adapters.MapCountryDomainToApi(c))
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Error().
			Err(err).
			Msg("failed to encode countries")
	}
}

func (h *Handler) GetRecords(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	filter, err := h.parseFilter(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	records := h.dataset.Select(filter)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(adapters.MapDebtRecordsDomainToApi(records)); err != nil {
		logger.Error().
			Err(err).
			Msg("failed to encode debt records")
	}
}

func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	filter, err := h.parseFilter(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	summary := dataset.Summarize(h.dataset.Select(filter))

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(adapters.MapSummaryDomainToApi(summary)); err != nil {
		logger.Error().
			Err(err).
			Msg("failed to encode summary")
	}
}

// ExportCSV streams the filtered table as a delimited-text download.
func (h *Handler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	filter, err := h.parseFilter(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	records := h.dataset.Select(filter)

	filename := fmt.Sprintf("debt_analysis_%s.csv", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"year", "debtor_code", "debt_usd", "yoy_growth_pct"})
	for _, rec := range records {
		growth := ""
		if rec.YoYGrowthPct != nil {
			growth = strconv.FormatFloat(*rec.YoYGrowthPct, 'f', -1, 64)
		}
		_ = cw.Write([]string{
			strconv.Itoa(rec.Year),
			rec.DebtorCode,
			strconv.FormatFloat(rec.DebtUSD, 'f', -1, 64),
			growth,
		})
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		logger.Error().
			Err(err).
			Msg("failed to write csv export")
	}
}

// parseFilter reads the country multi-select and year range from the query
// string. An absent countries parameter selects every debtor; a present but
// empty one selects none. Absent year bounds default to the dataset span.
func (h *Handler) parseFilter(r *http.Request) (dataset.Filter, error) {
	query := r.URL.Query()
	span := h.dataset.Years()

	filter := dataset.Filter{Years: span}
	if query.Has("countries") {
		filter.Countries = splitCodes(query.Get("countries"))
	}

	var err error
	filter.Years.From, err = parseYearParam(query.Get("from"), span.From)
	if err != nil {
		return dataset.Filter{}, fmt.Errorf("invalid 'from' year. Expected a 4-digit year")
	}
	filter.Years.To, err = parseYearParam(query.Get("to"), span.To)
	if err != nil {
		return dataset.Filter{}, fmt.Errorf("invalid 'to' year. Expected a 4-digit year")
	}
	return filter, nil
}

func parseYearParam(raw string, fallback int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}

// splitCodes parses the country multi-select as a set: repeated codes
// count once.
func splitCodes(raw string) []string {
	codes := make([]string, 0)
	seen := make(map[string]struct{})
	for _, part := range strings.Split(raw, ",") {
		part = strings.ToUpper(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		if _, ok := seen[part]; ok {
			continue
		}
		seen[part] = struct{}{}
		codes = append(codes, part)
	}
	return codes
}
