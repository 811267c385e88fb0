package countries

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/de-tools/debt-atlas/pkg/models/domain"
)

// ErrNotFound is returned when a country name or code is absent from the
// reference table.
var ErrNotFound = errors.New("country not found")

// CreditorIndia is the World Bank DRS creditor code for India.
const CreditorIndia = "646"

// defaultEntries is the supported debtor set. The table is refreshed
// manually when the World Bank revises its country list.
var defaultEntries = []domain.Country{
	{Name: "Bangladesh", Code: "BGD"},
	{Name: "Bhutan", Code: "BTN"},
	{Name: "Maldives", Code: "MDV"},
	{Name: "Myanmar", Code: "MMR"},
	{Name: "Nepal", Code: "NPL"},
	{Name: "Sri Lanka", Code: "LKA"},
}

// Resolver maps country names to World Bank debtor codes and back. It is
// built once during initialization and never mutated afterwards.
type Resolver struct {
	byName map[string]domain.Country
	byCode map[string]domain.Country
	all    []domain.Country
}

// NewResolver returns a resolver over the built-in debtor table.
func NewResolver() *Resolver {
	return NewResolverFromEntries(defaultEntries)
}

// NewResolverFromEntries builds a resolver from an explicit reference table,
// e.g. one read back from the persisted code file.
func NewResolverFromEntries(entries []domain.Country) *Resolver {
	r := &Resolver{
		byName: make(map[string]domain.Country, len(entries)),
		byCode: make(map[string]domain.Country, len(entries)),
		all:    make([]domain.Country, len(entries)),
	}
	copy(r.all, entries)
	sort.Slice(r.all, func(i, j int) bool { return r.all[i].Name < r.all[j].Name })
	for _, c := range r.all {
		r.byName[normalize(c.Name)] = c
		r.byCode[strings.ToUpper(c.Code)] = c
	}
	return r
}

// CodeByName resolves a human-readable country name to its debtor code.
func (r *Resolver) CodeByName(name string) (string, error) {
	c, ok := r.byName[normalize(name)]
	if !ok {
		return "", fmt.Errorf("resolve %q: %w", name, ErrNotFound)
	}
	return c.Code, nil
}

// NameByCode resolves a debtor code to its country name.
func (r *Resolver) NameByCode(code string) (string, error) {
	c, ok := r.byCode[strings.ToUpper(code)]
	if !ok {
		return "", fmt.Errorf("resolve %q: %w", code, ErrNotFound)
	}
	return c.Name, nil
}

// Contains reports whether code belongs to the supported debtor set.
func (r *Resolver) Contains(code string) bool {
	_, ok := r.byCode[strings.ToUpper(code)]
	return ok
}

// All returns the reference table ordered by country name.
func (r *Resolver) All() []domain.Country {
	out := make([]domain.Country, len(r.all))
	copy(out, r.all)
	return out
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
