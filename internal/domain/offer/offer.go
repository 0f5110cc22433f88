// Package offer implements the merchant offer catalog: parsing the
// JSON-encoded offer list, matching offers to cart lines, and evaluating
// the winning discount per line.
package offer

import "github.com/shopspring/decimal"

// Mechanism discriminates how an offer reduces a line's price.
type Mechanism string

const (
	// MechanismPercentage discounts the whole line by a percentage.
	MechanismPercentage Mechanism = "percentage"
	// MechanismAmount takes a fixed monetary amount off the line.
	MechanismAmount Mechanism = "amount"
)

// Offer is one normalized discount rule from the merchant's catalog.
//
// Target is a product or variant GID; empty means the offer applies to
// every line. MinQty is the buy threshold: the offer is inapplicable to
// lines with a smaller quantity, and a non-positive MinQty disables the
// offer entirely. Exactly one discount mechanism is expected to be
// configured; when AmountOff is positive it wins over the percent and
// free-quantity fields regardless of their values.
type Offer struct {
	Target     string
	MinQty     int64
	PercentOff decimal.Decimal
	FreeQty    int64
	AmountOff  decimal.Decimal
}
