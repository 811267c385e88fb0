package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/de-tools/debt-atlas/pkg/services/countries"
)

// NewCountriesCmd prints the supported debtor reference table.
func NewCountriesCmd(out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "countries",
		Short: "List supported debtor countries and codes",
		RunE: func(_ *cobra.Command, _ []string) error {
			for _, c := range countries.NewResolver().All() {
				if _, err := fmt.Fprintf(out, "%s\t%s\n", c.Code, c.Name); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
