package function

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/shopify-offers-function/internal/domain/cart"
)

func TestDecodeInput(t *testing.T) {
	payload := `{
		"cart": {
			"lines": [
				{
					"id": "gid://shopify/CartLine/1",
					"quantity": 3,
					"merchandise": {
						"__typename": "ProductVariant",
						"id": "gid://shopify/ProductVariant/11",
						"metafield": {"value": "[{\"minQty\":1}]"},
						"product": {
							"id": "gid://shopify/Product/7",
							"metafield": null
						}
					}
				},
				{
					"id": "gid://shopify/CartLine/2",
					"quantity": "2",
					"merchandise": {"__typename": "GiftCard"}
				}
			]
		},
		"discountNode": {"metafield": {"value": "[]"}}
	}`

	in, err := DecodeInput([]byte(payload))
	require.NoError(t, err)

	require.Len(t, in.Cart.Lines, 2)

	first := in.Cart.Lines[0]
	assert.Equal(t, "gid://shopify/CartLine/1", first.ID)
	assert.Equal(t, 3, first.Quantity)
	assert.Equal(t, cart.VariantTypename, first.Merchandise.Typename)
	assert.Equal(t, "gid://shopify/ProductVariant/11", first.Merchandise.ID)
	assert.Equal(t, `[{"minQty":1}]`, first.Merchandise.Metafield)
	assert.Equal(t, "gid://shopify/Product/7", first.Merchandise.Product.ID)
	assert.Empty(t, first.Merchandise.Product.Metafield)

	second := in.Cart.Lines[1]
	assert.Equal(t, 2, second.Quantity, "stringified quantities coerce")
	assert.Equal(t, "GiftCard", second.Merchandise.Typename)

	assert.Equal(t, "[]", in.DiscountNode.Metafield)
}

func TestDecodeInputTolerance(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		wantErr bool
	}{
		{name: "empty object", payload: `{}`},
		{name: "null cart", payload: `{"cart":null}`},
		{name: "null discount node", payload: `{"cart":{"lines":[]},"discountNode":null}`},
		{name: "unknown fields", payload: `{"cart":{"lines":[]},"shop":{"name":"x"}}`},
		{name: "non-numeric quantity string", payload: `{"cart":{"lines":[{"id":"l1","quantity":"lots"}]}}`},
		{name: "empty input", payload: ``, wantErr: true},
		{name: "not an object", payload: `[]`, wantErr: true},
		{name: "truncated JSON", payload: `{"cart":{"lines":[`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := DecodeInput([]byte(tt.payload))
			if tt.wantErr {
				require.Error(t, err)
				// The zero input still runs and produces the fallback.
				res := Run(in)
				require.Len(t, res.Discounts, 1)
				assert.Equal(t, "0", res.Discounts[0].Value.Percentage)
				return
			}
			require.NoError(t, err)
		})
	}
}
