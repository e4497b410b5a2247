// Package currency converts listing prices between display units and the
// base unit used for comparisons.
package currency

// Tag identifies the unit a listing price is expressed in.
type Tag string

const (
	UF  Tag = "UF"
	CLP Tag = "$"
	USD Tag = "US$"
	EUR Tag = "€"
)

// toCLP holds the fixed conversion rate from each supported unit to
// Chilean pesos. CLP is the base unit, so its rate is 1.
var toCLP = map[Tag]float64{
	UF:  37800,
	CLP: 1,
	USD: 950,
	EUR: 1030,
}

// Known returns true if unit has a conversion rate.
func Known(unit Tag) bool {
	_, ok := toCLP[unit]
	return ok
}

// ToBaseUnit converts amount from the given unit into CLP.
// Unrecognized tags are passed through unchanged: the amount is treated
// as already comparable so a price filter never fails on them.
func ToBaseUnit(amount float64, unit Tag) float64 {
	rate, ok := toCLP[unit]
	if !ok {
		return amount
	}
	return amount * rate
}
