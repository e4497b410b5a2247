package property

import (
	"math"
	"strings"

	"github.com/portalsur/portalsur/internal/currency"
)

// Criteria describes the optional filter dimensions a caller may set.
// Zero values and the "any"/"all" sentinels mean "no constraint".
// Criteria are ephemeral: they are never persisted.
type Criteria struct {
	Location    string
	MinBedrooms int
	MinPrice    float64
	MaxPrice    float64
	Type        string
}

// Predicate reports whether a property matches a set of criteria.
type Predicate func(Property) bool

// unsetText returns true for values that mean "no constraint".
func unsetText(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "any", "all":
		return true
	}
	return false
}

// BuildPredicate translates criteria into a single conjunctive predicate.
// Each set dimension must match; unset dimensions exclude nothing.
// Building is pure: equal criteria always produce predicates with
// identical filtering behavior.
func BuildPredicate(c Criteria) Predicate {
	var preds []Predicate

	if !unsetText(c.Location) {
		want := strings.ToLower(strings.TrimSpace(c.Location))
		preds = append(preds, func(p Property) bool {
			return strings.Contains(strings.ToLower(p.Location), want)
		})
	}

	if c.MinBedrooms > 0 {
		min := c.MinBedrooms
		preds = append(preds, func(p Property) bool {
			return p.Bedrooms >= min
		})
	}

	if !unsetText(c.Type) {
		want := Type(strings.ToLower(strings.TrimSpace(c.Type)))
		preds = append(preds, func(p Property) bool {
			return p.Type == want
		})
	}

	if c.MinPrice > 0 || c.MaxPrice > 0 {
		min := c.MinPrice
		max := c.MaxPrice
		if max <= 0 {
			max = math.Inf(1)
		}
		// Conversion happens per property: each record carries its own
		// currency tag, so the rate cannot be hoisted out of the predicate.
		preds = append(preds, func(p Property) bool {
			v := currency.ToBaseUnit(p.Price, p.Currency)
			return v >= min && v <= max
		})
	}

	return func(p Property) bool {
		for _, pred := range preds {
			if !pred(p) {
				return false
			}
		}
		return true
	}
}
