package offer

import (
	"github.com/shopspring/decimal"

	"github.com/xenking/shopify-offers-function/internal/domain/cart"
)

var hundred = decimal.NewFromInt(100)

// Evaluated is the outcome of applying one offer to a line's quantity.
type Evaluated struct {
	Mechanism Mechanism

	// Percent is the effective blanket percentage off the whole line
	// (MechanismPercentage only). A free-unit promotion is folded in here
	// as its percentage equivalent.
	Percent decimal.Decimal

	// Amount is the fixed monetary discount (MechanismAmount only).
	Amount decimal.Decimal

	// FreeItems is how many units the free-quantity rule waived, kept for
	// message rendering.
	FreeItems int64

	// Offer is the rule that produced this result.
	Offer Offer
}

// Evaluate applies an offer to a line quantity. It returns nil when the
// offer does not apply: a non-positive threshold or a quantity below it.
// That is the normal "not eligible" path, not an error.
//
// A positive AmountOff short-circuits to the amount mechanism; percent and
// free-quantity fields on the same record are ignored in that case. The
// catalog is assumed to configure one mechanism per offer, but nothing
// enforces it, so precedence has to be deterministic here.
//
// Otherwise the free-quantity rule is converted to a percentage over the
// whole line: quantity is split into groups of MinQty+FreeQty, each group
// waives FreeQty units, and the waived share of the line is the equivalent
// percentage. The effective percentage is the larger of that and the flat
// PercentOff.
func Evaluate(o Offer, quantity int) *Evaluated {
	qty := int64(quantity)
	if o.MinQty <= 0 || qty < o.MinQty {
		return nil
	}

	if o.AmountOff.IsPositive() {
		return &Evaluated{
			Mechanism: MechanismAmount,
			Amount:    o.AmountOff,
			Offer:     o,
		}
	}

	var freeItems int64
	if o.FreeQty > 0 {
		group := o.MinQty + o.FreeQty
		freeItems = qty / group * o.FreeQty
	}

	freePercent := decimal.Zero
	if freeItems > 0 {
		// quantity > 0 is implied by the threshold check above.
		freePercent = decimal.NewFromInt(freeItems).Mul(hundred).Div(decimal.NewFromInt(qty))
	}

	return &Evaluated{
		Mechanism: MechanismPercentage,
		Percent:   decimal.Max(o.PercentOff, freePercent),
		FreeItems: freeItems,
		Offer:     o,
	}
}

// SelectBest picks the single winning result from a catalog-ordered scan.
//
// Amount results always take over the incumbent, including other amount
// results: the last amount offer encountered wins, and no percentage
// result can displace it afterwards. Percentage results compete on strictly
// larger effective percentage, so ties keep the first encountered, and a
// zero percentage never wins. Returns nil when nothing applied.
func SelectBest(candidates []*Evaluated) *Evaluated {
	var best *Evaluated
	for _, c := range candidates {
		if c == nil {
			continue
		}
		switch c.Mechanism {
		case MechanismAmount:
			best = c
		case MechanismPercentage:
			if !c.Percent.IsPositive() {
				continue
			}
			if best == nil || (best.Mechanism == MechanismPercentage && c.Percent.GreaterThan(best.Percent)) {
				best = c
			}
		}
	}
	return best
}

// BestFor matches, evaluates, and selects the winning offer for a line.
func BestFor(line cart.Line, catalog []Offer) *Evaluated {
	matched := MatchLine(line, catalog)
	if len(matched) == 0 {
		return nil
	}
	evaluated := make([]*Evaluated, 0, len(matched))
	for _, o := range matched {
		if ev := Evaluate(o, line.Quantity); ev != nil {
			evaluated = append(evaluated, ev)
		}
	}
	return SelectBest(evaluated)
}
