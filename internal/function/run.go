package function

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/xenking/shopify-offers-function/internal/domain/cart"
	"github.com/xenking/shopify-offers-function/internal/domain/offer"
)

// fallbackLineID satisfies the host's "targets can't be blank" rule when
// the cart has no usable line at all.
const fallbackLineID = "gid://shopify/CartLine/0"

// Run computes the discount result for one invocation. It is a pure
// function of its input: the catalog is re-parsed every call, nothing is
// cached across calls, and every malformed input degrades to a zero-effect
// discount rather than an error. The output lists at most one instruction
// per cart line, in input line order.
func Run(in RunInput) Result {
	global := offer.ParseCatalog(in.DiscountNode.Metafield)

	discounts := make([]Discount, 0, len(in.Cart.Lines))
	for _, line := range in.Cart.Lines {
		if d, ok := lineDiscount(line, global); ok {
			discounts = append(discounts, d)
		}
	}

	if len(discounts) == 0 {
		discounts = append(discounts, fallbackDiscount(in.Cart))
	}

	return Result{Strategy: StrategyAll, Discounts: discounts}
}

// RunParallel is Run with per-line evaluation fanned out over at most
// limit goroutines. Lines are independent, so the result is identical to
// the sequential one, including instruction order.
func RunParallel(ctx context.Context, in RunInput, limit int) Result {
	if limit <= 1 || len(in.Cart.Lines) < 2 {
		return Run(in)
	}

	global := offer.ParseCatalog(in.DiscountNode.Metafield)

	type slot struct {
		d  Discount
		ok bool
	}
	slots := make([]slot, len(in.Cart.Lines))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, line := range in.Cart.Lines {
		g.Go(func() error {
			slots[i].d, slots[i].ok = lineDiscount(line, global)
			return nil
		})
	}
	// Workers never return errors; evaluation cannot fail.
	_ = g.Wait()

	discounts := make([]Discount, 0, len(slots))
	for _, s := range slots {
		if s.ok {
			discounts = append(discounts, s.d)
		}
	}
	if len(discounts) == 0 {
		discounts = append(discounts, fallbackDiscount(in.Cart))
	}

	return Result{Strategy: StrategyAll, Discounts: discounts}
}

// lineDiscount emits the instruction for a single line. Lines with
// non-variant merchandise or a non-positive quantity are skipped entirely
// (ok=false); every other line gets exactly one instruction, falling back
// to a zero percentage when no offer applies.
func lineDiscount(line cart.Line, global []offer.Offer) (Discount, bool) {
	if !line.Eligible() {
		return Discount{}, false
	}

	// Offers attached directly to the variant or product are candidates
	// alongside the global list; neither overrides the other.
	catalog := global
	if local := offer.ParseCatalog(line.LocalOffers()); len(local) > 0 {
		merged := make([]offer.Offer, 0, len(global)+len(local))
		merged = append(merged, global...)
		merged = append(merged, local...)
		catalog = merged
	}

	best := offer.BestFor(line, catalog)
	if best == nil {
		return zeroDiscount(line.Merchandise.ID), true
	}

	if best.Mechanism == offer.MechanismAmount {
		return Discount{
			Target: Target{CartLine: line.ID},
			Value:  Value{FixedAmount: trim(best.Amount)},
		}, true
	}

	return Discount{
		Message: offerMessage(best),
		Target:  Target{ProductVariant: line.Merchandise.ID},
		Value:   Value{Percentage: trim(best.Percent)},
	}, true
}

// fallbackDiscount builds the single zero-value instruction emitted when
// no line produced one: the first line's variant when possible, else the
// first line itself, else a placeholder line.
func fallbackDiscount(c cart.Cart) Discount {
	if len(c.Lines) > 0 {
		first := c.Lines[0]
		if first.IsVariant() && first.Merchandise.ID != "" {
			return zeroDiscount(first.Merchandise.ID)
		}
		if first.ID != "" {
			return Discount{
				Target: Target{CartLine: first.ID},
				Value:  Value{Percentage: "0"},
			}
		}
	}
	return Discount{
		Target: Target{CartLine: fallbackLineID},
		Value:  Value{Percentage: "0"},
	}
}

func zeroDiscount(variantID string) Discount {
	return Discount{
		Target: Target{ProductVariant: variantID},
		Value:  Value{Percentage: "0"},
	}
}

func offerMessage(best *offer.Evaluated) string {
	if best.FreeItems > 0 {
		return fmt.Sprintf("Buy %d get %d free", best.Offer.MinQty, best.Offer.FreeQty)
	}
	return fmt.Sprintf("Buy %d get %s%% off", best.Offer.MinQty, best.Offer.PercentOff.String())
}

// trim renders a decimal rounded to at most 6 fractional digits with
// trailing zeros removed, e.g. 25.000000 -> "25", 33.330000 -> "33.33".
func trim(d decimal.Decimal) string {
	return d.Round(6).String()
}
