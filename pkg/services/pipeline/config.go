package pipeline

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config drives one pipeline run. Countries are human-readable names
// resolved against the reference table before fetching.
type Config struct {
	Countries []string `mapstructure:"countries"`
	Creditor  string   `mapstructure:"creditor"`
	StartYear int      `mapstructure:"start_year"`
	EndYear   int      `mapstructure:"end_year"`
	Workbook  string   `mapstructure:"workbook"`
	CodeFile  string   `mapstructure:"code_file"`
}

func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetDefault("creditor", "646")
	v.SetDefault("start_year", 1972)
	v.SetDefault("end_year", 2020)
	v.SetDefault("workbook", "data/ppg-bilateral-debt.xlsx")
	v.SetDefault("code_file", "data/country-codes.csv")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse pipeline config: %w", err)
	}
	if len(cfg.Countries) == 0 {
		return nil, fmt.Errorf("pipeline config: at least one country is required")
	}
	if cfg.StartYear > cfg.EndYear {
		return nil, fmt.Errorf("pipeline config: start_year %d is after end_year %d", cfg.StartYear, cfg.EndYear)
	}
	return &cfg, nil
}
