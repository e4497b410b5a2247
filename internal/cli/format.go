package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/portalsur/portalsur/internal/currency"
	"github.com/portalsur/portalsur/internal/property"
)

// printJSON marshals v as indented JSON and writes it to stdout.
func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printPropertySummary prints a single property in text format.
func printPropertySummary(p property.Property) {
	fmt.Printf("Property %s\n", p.ID)
	fmt.Printf("  Title:     %s\n", p.Title)
	if p.Subtitle != "" {
		fmt.Printf("  Subtitle:  %s\n", p.Subtitle)
	}
	fmt.Printf("  Location:  %s\n", p.Location)
	fmt.Printf("  Price:     %s\n", formatPrice(p.Price, p.Currency))
	fmt.Printf("  Type:      %s\n", p.Type)
	fmt.Printf("  Beds:      %d\n", p.Bedrooms)
	fmt.Printf("  Baths:     %d\n", p.Bathrooms)
	fmt.Printf("  Area:      %.0f m²\n", p.Area)
	if len(p.Amenities) > 0 {
		fmt.Printf("  Amenities: %s\n", strings.Join(p.Amenities, ", "))
	}
	fmt.Printf("  Status:    %s\n", property.StatusFor(p.IsPublished))
	if p.IsPremium {
		fmt.Printf("  Premium:   yes\n")
	}
	if p.PrivateData != nil {
		fmt.Printf("  Owner:     %s (%s)\n", p.PrivateData.OwnerName, p.PrivateData.OwnerPhone)
		if p.PrivateData.LegalDescription != "" {
			fmt.Printf("  Legal:     %s\n", p.PrivateData.LegalDescription)
		}
		if p.PrivateData.PrivateNotes != "" {
			fmt.Printf("  Notes:     %s\n", p.PrivateData.PrivateNotes)
		}
	}
}

// printPropertyTable prints a list of properties as a formatted table.
func printPropertyTable(props []property.Property) error {
	if len(props) == 0 {
		fmt.Println("No properties found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(w, "ID\tTITLE\tLOCATION\tPRICE\tBED\tBATH\tTYPE\tSTATUS"); err != nil {
		return fmt.Errorf("writing table header: %w", err)
	}

	for _, p := range props {
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\t%s\t%s\n",
			shortID(p.ID),
			truncate(p.Title, 32),
			truncate(p.Location, 28),
			formatPrice(p.Price, p.Currency),
			p.Bedrooms, p.Bathrooms, p.Type,
			property.StatusFor(p.IsPublished),
		); err != nil {
			return fmt.Errorf("writing table row: %w", err)
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing table: %w", err)
	}

	fmt.Printf("\nTotal: %d properties\n", len(props))
	return nil
}

// formatPrice renders a price with its unit tag and thousands separators.
func formatPrice(amount float64, unit currency.Tag) string {
	switch unit {
	case currency.UF:
		return fmt.Sprintf("UF %s", withThousands(amount))
	case currency.CLP:
		return fmt.Sprintf("$%s", withThousands(amount))
	case currency.USD:
		return fmt.Sprintf("US$%s", withThousands(amount))
	case currency.EUR:
		return fmt.Sprintf("€%s", withThousands(amount))
	}
	return fmt.Sprintf("%s %s", unit, withThousands(amount))
}

// withThousands formats the integer part of n with dot separators,
// the local convention.
func withThousands(n float64) string {
	s := fmt.Sprintf("%.0f", n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)

	out := strings.Join(parts, ".")
	if neg {
		out = "-" + out
	}
	return out
}

// shortID abbreviates a UUID for table display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// truncate shortens a string to maxLen, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
