package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/portalsur/portalsur/internal/property"
)

func newListCmd() *cobra.Command {
	var (
		location string
		bedrooms int
		minPrice float64
		maxPrice float64
		propType string
		all      bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog properties",
		Long:  "List properties, optionally filtered by location, bedrooms, price range and type. Pass --all with the admin secret to include unpublished listings and private data.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			criteria := property.Criteria{
				Location:    location,
				MinBedrooms: bedrooms,
				MinPrice:    minPrice,
				MaxPrice:    maxPrice,
				Type:        propType,
			}
			return runList(cmd, criteria, all)
		},
	}

	cmd.Flags().StringVar(&location, "location", "", "substring match on location")
	cmd.Flags().IntVar(&bedrooms, "bedrooms", 0, "minimum number of bedrooms")
	cmd.Flags().Float64Var(&minPrice, "min-price", 0, "minimum price in CLP")
	cmd.Flags().Float64Var(&maxPrice, "max-price", 0, "maximum price in CLP")
	cmd.Flags().StringVar(&propType, "type", "", "property type (villa, apartment, house, land, commercial, office, parking)")
	cmd.Flags().BoolVar(&all, "all", false, "include unpublished listings (privileged)")

	return cmd
}

func runList(cmd *cobra.Command, criteria property.Criteria, all bool) error {
	g, err := resolveGate()
	if err != nil {
		return err
	}
	privileged := g.Privileged()
	if all && !privileged {
		return fmt.Errorf("--all requires privileged mode: pass --secret or run portalsur login")
	}

	s, closer, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer closeMedium(closer)

	records, err := s.List(cmd.Context())
	if err != nil {
		return err
	}

	results := property.Query(records, criteria, privileged && all)
	if !privileged {
		for i := range results {
			results[i] = results[i].Redacted()
		}
	}

	if isJSON() {
		return printJSON(results)
	}
	return printPropertyTable(results)
}
