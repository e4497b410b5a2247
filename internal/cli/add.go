package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/portalsur/portalsur/internal/currency"
	"github.com/portalsur/portalsur/internal/property"
)

func newAddCmd() *cobra.Command {
	var (
		p          property.Property
		currTag    string
		propType   string
		status     string
		ownerName  string
		ownerPhone string
		legal      string
		notes      string
	)

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a property to the catalog",
		Long:  "Create a new catalog listing from flags. Requires privileged mode.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p.Title = args[0]
			p.Currency = currency.Tag(currTag)
			p.Type = property.Type(propType)

			if status != "" {
				published, err := property.ParseStatus(status)
				if err != nil {
					return err
				}
				p.IsPublished = published
			}

			if ownerName != "" || ownerPhone != "" || legal != "" || notes != "" {
				p.PrivateData = &property.PrivateData{
					OwnerName:        ownerName,
					OwnerPhone:       ownerPhone,
					LegalDescription: legal,
					PrivateNotes:     notes,
				}
			}

			return runAdd(cmd, p)
		},
	}

	cmd.Flags().StringVar(&p.Subtitle, "subtitle", "", "listing subtitle")
	cmd.Flags().StringVar(&p.Location, "location", "", "location as \"commune, country\"")
	cmd.Flags().Float64Var(&p.Price, "price", 0, "asking price")
	cmd.Flags().StringVar(&currTag, "currency", string(currency.UF), "price unit (UF, $, US$, €)")
	cmd.Flags().StringVar(&propType, "type", "", "property type")
	cmd.Flags().IntVar(&p.Bedrooms, "bedrooms", 1, "number of bedrooms")
	cmd.Flags().IntVar(&p.Bathrooms, "bathrooms", 1, "number of bathrooms")
	cmd.Flags().Float64Var(&p.Area, "area", 0, "area in square meters")
	cmd.Flags().StringVar(&p.ImageURL, "image", "", "image URL")
	cmd.Flags().StringVar(&p.Description, "description", "", "listing description")
	cmd.Flags().StringSliceVar(&p.Amenities, "amenities", nil, "amenity tags")
	cmd.Flags().BoolVar(&p.IsPremium, "premium", false, "mark as premium")
	cmd.Flags().BoolVar(&p.IsPublished, "published", true, "publish the listing")
	cmd.Flags().StringVar(&status, "status", "", "legacy status (Published|Draft), overrides --published")
	cmd.Flags().StringVar(&ownerName, "owner-name", "", "owner name (private)")
	cmd.Flags().StringVar(&ownerPhone, "owner-phone", "", "owner phone (private)")
	cmd.Flags().StringVar(&legal, "legal", "", "legal description (private)")
	cmd.Flags().StringVar(&notes, "notes", "", "private notes")

	return cmd
}

func runAdd(cmd *cobra.Command, p property.Property) error {
	if _, err := requirePrivileged(); err != nil {
		return err
	}

	if err := property.Validate(p); err != nil {
		return err
	}

	s, closer, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer closeMedium(closer)

	created, err := s.Create(cmd.Context(), p)
	if err != nil {
		return fmt.Errorf("adding property: %w", err)
	}

	if isJSON() {
		return printJSON(created)
	}

	fmt.Println("Property added.")
	printPropertySummary(created)
	return nil
}
