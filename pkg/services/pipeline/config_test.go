package pipeline

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig_ValidYAML_PopulatesAllFields(t *testing.T) {
	// Given
	dir := t.TempDir()
	path := filepath.Join(dir, "valid.yaml")
	content := `countries:
- Bhutan
- Nepal
creditor: "646"
start_year: 1990
end_year: 2020
workbook: "out/debt.xlsx"
code_file: "out/codes.csv"`
	err := os.WriteFile(path, []byte(content), 0o644)
	if err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// When
	cfg, err := LoadConfig(path)

	// Then
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(cfg.Countries) != 2 || cfg.Countries[0] != "Bhutan" {
		t.Errorf("unexpected countries: %v", cfg.Countries)
	}
	if cfg.Creditor != "646" {
		t.Errorf("expected Creditor=646, got %s", cfg.Creditor)
	}
	if cfg.StartYear != 1990 || cfg.EndYear != 2020 {
		t.Errorf("unexpected year range: %d-%d", cfg.StartYear, cfg.EndYear)
	}
	if cfg.Workbook != "out/debt.xlsx" {
		t.Errorf("expected Workbook=out/debt.xlsx, got %s", cfg.Workbook)
	}
	if cfg.CodeFile != "out/codes.csv" {
		t.Errorf("expected CodeFile=out/codes.csv, got %s", cfg.CodeFile)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "minimal.yaml")
	err := os.WriteFile(path, []byte("countries:\n- Bhutan"), 0o644)
	if err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Creditor != "646" {
		t.Errorf("expected default creditor 646, got %s", cfg.Creditor)
	}
	if cfg.StartYear != 1972 || cfg.EndYear != 2020 {
		t.Errorf("unexpected default year range: %d-%d", cfg.StartYear, cfg.EndYear)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
	}{
		{name: "no countries", content: "creditor: \"646\""},
		{name: "inverted year range", content: "countries:\n- Bhutan\nstart_year: 2020\nend_year: 1990"},
		{name: "bad yaml", content: "countries: [unclosed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatalf("failed to write config: %v", err)
			}
			if _, err := LoadConfig(path); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}
