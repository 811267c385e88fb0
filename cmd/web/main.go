package main

import (
	"fmt"
	"net"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/de-tools/debt-atlas/pkg/adapters"
	"github.com/de-tools/debt-atlas/pkg/models/domain"
	"github.com/de-tools/debt-atlas/pkg/server"
	"github.com/de-tools/debt-atlas/pkg/services/countries"
	"github.com/de-tools/debt-atlas/pkg/services/dataset"
	"github.com/de-tools/debt-atlas/pkg/store/codefile"
	"github.com/de-tools/debt-atlas/pkg/store/workbook"
)

var (
	workbookPath string
	codeFilePath string
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for Debt Atlas",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&workbookPath, "workbook", "w", "data/ppg-bilateral-debt.xlsx",
		"Path to the workbook produced by the fetch pipeline")
	rootCmd.Flags().StringVar(&codeFilePath, "codes", "",
		"Path to the country-code file (default is the built-in table)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	resolver := countries.NewResolver()
	if codeFilePath != "" {
		codeStore, err := codefile.NewStore(codeFilePath)
		if err != nil {
			return err
		}
		entries, err := codeStore.Read()
		if err != nil {
			return fmt.Errorf("failed to load country codes: %w", err)
		}
		resolver = countries.NewResolverFromEntries(entries)
	}

	workbookStore, err := workbook.NewStore(workbookPath)
	if err != nil {
		return err
	}
	rows, err := workbookStore.ReadDataset()
	if err != nil {
		return fmt.Errorf("failed to load workbook: %w", err)
	}
	records := make([]domain.DebtRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, adapters.MapWorkbookRowStoreToDomain(row))
	}
	ds := dataset.FromRecords(records)

	span := ds.Years()
	logger.Info().
		Str("workbook", workbookPath).
		Int("records", len(records)).
		Int("countries", len(ds.Countries())).
		Msgf("dataset loaded, years %d-%d", span.From, span.To)

	host := os.Getenv("SERVER_HOST")
	port := os.Getenv("SERVER_PORT")

	if host == "" || port == "" {
		logger.Error().Msgf("Missing server configuration from .env file")
		os.Exit(1)
	}

	api := server.NewWebAPI(server.Config{
		Addr: net.JoinHostPort(host, port),
		Dependencies: server.Dependencies{
			Resolver: resolver,
			Dataset:  ds,
			Logger:   logger,
		},
	})

	return api.Start()
}
