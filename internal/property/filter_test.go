package property

import (
	"testing"

	"github.com/portalsur/portalsur/internal/currency"
)

func listing(loc string, beds int, price float64, unit currency.Tag, typ Type) Property {
	return Property{
		Title:       "t",
		Location:    loc,
		Price:       price,
		Currency:    unit,
		Type:        typ,
		Bedrooms:    beds,
		Bathrooms:   1,
		Area:        100,
		IsPublished: true,
	}
}

func TestEmptyCriteriaMatchesEverything(t *testing.T) {
	match := BuildPredicate(Criteria{})

	records := []Property{
		listing("Vitacura, Chile", 1, 0, currency.CLP, TypeApartment),
		listing("Pucón, Chile", 8, 99999, currency.UF, TypeVilla),
	}
	for i, p := range records {
		if !match(p) {
			t.Errorf("record %d excluded by empty criteria", i)
		}
	}
}

func TestLocationSubstringCaseInsensitive(t *testing.T) {
	match := BuildPredicate(Criteria{Location: "vitacura"})

	if !match(listing("Vitacura, Chile", 2, 100, currency.UF, TypeApartment)) {
		t.Error("case-insensitive substring should match")
	}
	if match(listing("Providencia, Chile", 2, 100, currency.UF, TypeApartment)) {
		t.Error("non-matching location should be excluded")
	}
}

func TestLocationSentinels(t *testing.T) {
	for _, sentinel := range []string{"", "  ", "any", "All", "ANY"} {
		match := BuildPredicate(Criteria{Location: sentinel})
		if !match(listing("Osorno, Chile", 2, 100, currency.UF, TypeHouse)) {
			t.Errorf("sentinel %q should be treated as unset", sentinel)
		}
	}
}

func TestMinBedrooms(t *testing.T) {
	match := BuildPredicate(Criteria{MinBedrooms: 3})

	if match(listing("x", 2, 100, currency.UF, TypeHouse)) {
		t.Error("2 bedrooms should fail min 3")
	}
	if !match(listing("x", 3, 100, currency.UF, TypeHouse)) {
		t.Error("3 bedrooms should pass min 3")
	}
	if !match(listing("x", 5, 100, currency.UF, TypeHouse)) {
		t.Error("5 bedrooms should pass min 3")
	}
}

func TestTypeExactMatch(t *testing.T) {
	match := BuildPredicate(Criteria{Type: "villa"})

	if !match(listing("x", 2, 100, currency.UF, TypeVilla)) {
		t.Error("villa should match type villa")
	}
	if match(listing("x", 2, 100, currency.UF, TypeHouse)) {
		t.Error("house should not match type villa")
	}

	match = BuildPredicate(Criteria{Type: "all"})
	if !match(listing("x", 2, 100, currency.UF, TypeHouse)) {
		t.Error("sentinel type should be treated as unset")
	}
}

func TestPriceRangeConvertsPerProperty(t *testing.T) {
	// 10,000 UF is 378,000,000 CLP at the fixed rate; 300,000,000 CLP
	// stays as-is. A band around 300M keeps only the CLP listing.
	match := BuildPredicate(Criteria{MinPrice: 250000000, MaxPrice: 350000000})

	ufListing := listing("x", 3, 10000, currency.UF, TypeHouse)
	clpListing := listing("x", 3, 300000000, currency.CLP, TypeHouse)

	if match(ufListing) {
		t.Error("UF listing above the band should be excluded")
	}
	if !match(clpListing) {
		t.Error("CLP listing inside the band should match")
	}
}

func TestPriceBoundsDefaults(t *testing.T) {
	// Only a lower bound: upper defaults to +inf.
	match := BuildPredicate(Criteria{MinPrice: 1000})
	if !match(listing("x", 1, 1e12, currency.CLP, TypeLand)) {
		t.Error("no upper bound set, huge price should match")
	}
	if match(listing("x", 1, 500, currency.CLP, TypeLand)) {
		t.Error("price below lower bound should be excluded")
	}

	// Only an upper bound: lower defaults to 0.
	match = BuildPredicate(Criteria{MaxPrice: 1000})
	if !match(listing("x", 1, 0, currency.CLP, TypeLand)) {
		t.Error("zero price should pass with only an upper bound")
	}
}

func TestPriceUnknownCurrencyDegrades(t *testing.T) {
	match := BuildPredicate(Criteria{MinPrice: 100, MaxPrice: 200})

	// Unknown tag: raw magnitude is compared directly, no panic.
	p := listing("x", 1, 150, currency.Tag("GBP"), TypeHouse)
	if !match(p) {
		t.Error("unknown currency should compare by raw magnitude")
	}
}

func TestConjunction(t *testing.T) {
	match := BuildPredicate(Criteria{Location: "chile", MinBedrooms: 3, Type: "house"})

	if !match(listing("Temuco, Chile", 3, 100, currency.UF, TypeHouse)) {
		t.Error("record satisfying all dimensions should match")
	}
	// Each failing dimension alone must exclude.
	if match(listing("Lima, Peru", 3, 100, currency.UF, TypeHouse)) {
		t.Error("wrong location should exclude despite other matches")
	}
	if match(listing("Temuco, Chile", 2, 100, currency.UF, TypeHouse)) {
		t.Error("too few bedrooms should exclude")
	}
	if match(listing("Temuco, Chile", 3, 100, currency.UF, TypeVilla)) {
		t.Error("wrong type should exclude")
	}
}

func TestBuildPredicateIsPure(t *testing.T) {
	c := Criteria{Location: "chile", MinBedrooms: 2}
	a := BuildPredicate(c)
	b := BuildPredicate(c)

	records := []Property{
		listing("Temuco, Chile", 2, 100, currency.UF, TypeHouse),
		listing("Lima, Peru", 5, 100, currency.UF, TypeHouse),
		listing("Arica, Chile", 1, 100, currency.UF, TypeHouse),
	}
	for i, p := range records {
		if a(p) != b(p) {
			t.Errorf("predicates from equal criteria disagree on record %d", i)
		}
	}
}
