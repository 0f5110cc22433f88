// Package cart defines the checkout cart snapshot the host runtime passes
// to the discount function on every invocation.
package cart

// VariantTypename is the merchandise __typename for purchasable variants.
// Lines carrying any other merchandise kind are ignored by the function.
const VariantTypename = "ProductVariant"

// Cart is an ordered sequence of checkout lines.
type Cart struct {
	Lines []Line
}

// Line is a single cart entry: a quantity of one purchasable variant.
type Line struct {
	ID          string
	Quantity    int
	Merchandise Merchandise
}

// Merchandise references the purchased variant and its parent product.
// Metafield carries the raw JSON offer list attached to the variant, if any.
type Merchandise struct {
	Typename  string
	ID        string
	Metafield string
	Product   Product
}

// Product is the parent catalog entry of a variant.
type Product struct {
	ID        string
	Metafield string
}

// IsVariant reports whether the line's merchandise is a product variant.
func (l Line) IsVariant() bool {
	return l.Merchandise.Typename == VariantTypename
}

// Eligible reports whether the line participates in discount evaluation:
// variant merchandise with a positive quantity.
func (l Line) Eligible() bool {
	return l.IsVariant() && l.Quantity > 0
}

// LocalOffers returns the raw offer JSON attached closest to the line:
// the variant metafield when present, otherwise the product metafield.
func (l Line) LocalOffers() string {
	if l.Merchandise.Metafield != "" {
		return l.Merchandise.Metafield
	}
	return l.Merchandise.Product.Metafield
}
