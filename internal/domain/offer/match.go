package offer

import (
	"strings"

	"github.com/xenking/shopify-offers-function/internal/domain/cart"
)

// Matches reports whether the offer targets the given variant or product.
// An empty target is a wildcard and matches every line. Targets travel
// through at least one JSON round-trip on the admin side, so backslash
// escaping artifacts are stripped before comparison.
func (o Offer) Matches(variantID, productID string) bool {
	if o.Target == "" {
		return true
	}
	target := strings.ReplaceAll(o.Target, `\`, "")
	if target == variantID {
		return true
	}
	return productID != "" && target == productID
}

// MatchLine filters the catalog down to the offers applicable to the line.
func MatchLine(line cart.Line, catalog []Offer) []Offer {
	var matched []Offer
	for _, o := range catalog {
		if o.Matches(line.Merchandise.ID, line.Merchandise.Product.ID) {
			matched = append(matched, o)
		}
	}
	return matched
}
