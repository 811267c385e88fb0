package codefile

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/de-tools/debt-atlas/pkg/models/domain"
)

var header = []string{"country_name", "code"}

// Store persists the country-code reference table as a small CSV lookup
// file next to the workbook.
type Store struct {
	path string
}

func NewStore(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("code file path is required")
	}
	return &Store{path: path}, nil
}

func (s *Store) Path() string { return s.path }

func (s *Store) Write(entries []domain.Country) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create code file directory: %w", err)
		}
	}
	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("create code file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write code file header: %w", err)
	}
	for _, entry := range entries {
		if err := w.Write([]string{entry.Name, entry.Code}); err != nil {
			return fmt.Errorf("write code file entry %s: %w", entry.Code, err)
		}
	}
	w.Flush()
	return w.Error()
}

func (s *Store) Read() ([]domain.Country, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open code file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(header)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read code file: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("code file is empty")
	}

	entries := make([]domain.Country, 0, len(rows)-1)
	for _, row := range rows[1:] {
		entries = append(entries, domain.Country{
			Name: strings.TrimSpace(row[0]),
			Code: strings.ToUpper(strings.TrimSpace(row[1])),
		})
	}
	return entries, nil
}
