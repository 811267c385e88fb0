package pipeline

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/de-tools/debt-atlas/pkg/adapters"
	"github.com/de-tools/debt-atlas/pkg/models/domain"
	"github.com/de-tools/debt-atlas/pkg/models/store"
	"github.com/de-tools/debt-atlas/pkg/services/countries"
	"github.com/de-tools/debt-atlas/pkg/services/dataset"
)

// Fetcher is the slice of the debt API client the pipeline needs.
type Fetcher interface {
	FetchTable(ctx context.Context, debtorCode, creditorCode string, startYear, endYear int) (domain.RawTable, error)
}

// DatasetStore persists the normalized dataset.
type DatasetStore interface {
	WriteDataset(rows []store.WorkbookRow, summary domain.Summary) error
}

// CodeStore persists the country-code reference table.
type CodeStore interface {
	Write(entries []domain.Country) error
}

// Pipeline runs the batch flow: resolve country names, fetch each debtor
// series, normalize, then persist. Steps are strictly sequential and the
// first failure aborts the run; no partial artifact is written.
type Pipeline struct {
	cfg      Config
	resolver *countries.Resolver
	fetcher  Fetcher
	dataset  DatasetStore
	codes    CodeStore
}

func New(cfg Config, resolver *countries.Resolver, fetcher Fetcher, datasetStore DatasetStore, codeStore CodeStore) *Pipeline {
	return &Pipeline{
		cfg:      cfg,
		resolver: resolver,
		fetcher:  fetcher,
		dataset:  datasetStore,
		codes:    codeStore,
	}
}

func (p *Pipeline) Run(ctx context.Context) (*dataset.Dataset, error) {
	logger := zerolog.Ctx(ctx)

	codes := make([]string, 0, len(p.cfg.Countries))
	for _, name := range p.cfg.Countries {
		code, err := p.resolver.CodeByName(name)
		if err != nil {
			return nil, err
		}
		codes = append(codes, code)
	}

	tables := make([]domain.RawTable, 0, len(codes))
	for i, code := range codes {
		logger.Info().
			Str("debtor", code).
			Str("creditor", p.cfg.Creditor).
			Msgf("fetching debt series for %s", p.cfg.Countries[i])

		table, err := p.fetcher.FetchTable(ctx, code, p.cfg.Creditor, p.cfg.StartYear, p.cfg.EndYear)
		if err != nil {
			return nil, err
		}
		logger.Info().Str("debtor", code).Int("rows", len(table.Rows)).Msg("series fetched")
		tables = append(tables, table)
	}

	ds, err := dataset.Normalize(tables)
	if err != nil {
		return nil, err
	}

	records := ds.Records()
	rows := make([]store.WorkbookRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, adapters.MapDebtRecordDomainToStore(rec))
	}
	if err := p.dataset.WriteDataset(rows, dataset.Summarize(records)); err != nil {
		return nil, fmt.Errorf("persist dataset: %w", err)
	}
	if err := p.codes.Write(p.resolver.All()); err != nil {
		return nil, fmt.Errorf("persist code file: %w", err)
	}

	logger.Info().Int("records", len(records)).Msg("pipeline run complete")
	return ds, nil
}
