package commands

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/de-tools/debt-atlas/pkg/services/countries"
	"github.com/de-tools/debt-atlas/pkg/services/debt"
	"github.com/de-tools/debt-atlas/pkg/services/pipeline"
	"github.com/de-tools/debt-atlas/pkg/store/codefile"
	"github.com/de-tools/debt-atlas/pkg/store/workbook"
)

type FetchCmd struct {
	configPath string
	baseURL    string
	logger     zerolog.Logger
}

// NewFetchCmd runs the full pipeline: resolve the configured countries,
// fetch each debtor series from the World Bank API, normalize and write the
// workbook plus the country-code file.
func NewFetchCmd(logger zerolog.Logger) *cobra.Command {
	fc := &FetchCmd{logger: logger}
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch debt series and build the workbook",
		RunE:  fc.run,
	}

	cmd.Flags().StringVarP(&fc.configPath, "config", "c", "configs/debtatlas.yaml",
		"Path to the pipeline configuration file")
	cmd.Flags().StringVar(&fc.baseURL, "base-url", "",
		"Override the statistics provider base URL")

	return cmd
}

func (fc *FetchCmd) run(cmd *cobra.Command, _ []string) error {
	cfg, err := pipeline.LoadConfig(fc.configPath)
	if err != nil {
		return err
	}

	workbookStore, err := workbook.NewStore(cfg.Workbook)
	if err != nil {
		return err
	}
	codeStore, err := codefile.NewStore(cfg.CodeFile)
	if err != nil {
		return err
	}

	fetcher := debt.NewFetcher(debt.Config{BaseURL: fc.baseURL})
	p := pipeline.New(*cfg, countries.NewResolver(), fetcher, workbookStore, codeStore)

	ctx := fc.logger.WithContext(cmd.Context())
	ds, err := p.Run(ctx)
	if err != nil {
		return fmt.Errorf("pipeline run failed: %w", err)
	}

	fc.logger.Info().
		Str("workbook", cfg.Workbook).
		Str("code_file", cfg.CodeFile).
		Int("countries", len(ds.Countries())).
		Msg("workbook written")
	return nil
}
