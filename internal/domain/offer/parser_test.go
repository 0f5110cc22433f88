package offer

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func TestParseCatalog(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []Offer
	}{
		{
			name: "empty string",
			raw:  "",
			want: nil,
		},
		{
			name: "empty array",
			raw:  "[]",
			want: nil,
		},
		{
			name: "malformed JSON",
			raw:  "{not json",
			want: nil,
		},
		{
			name: "non-array payload",
			raw:  `{"minQty": 2}`,
			want: nil,
		},
		{
			name: "camelCase fields",
			raw:  `[{"productId":"gid://shopify/Product/1","minQty":2,"percentOff":10,"freeQty":1,"fixedAmountOff":5}]`,
			want: []Offer{{
				Target:     "gid://shopify/Product/1",
				MinQty:     2,
				PercentOff: d("10"),
				FreeQty:    1,
				AmountOff:  d("5"),
			}},
		},
		{
			name: "snake_case aliases",
			raw:  `[{"product_id":"gid://shopify/Product/2","min_qty":3,"percent_off":25,"free_quantity":2,"fixed_amount_off":50}]`,
			want: []Offer{{
				Target:     "gid://shopify/Product/2",
				MinQty:     3,
				PercentOff: d("25"),
				FreeQty:    2,
				AmountOff:  d("50"),
			}},
		},
		{
			name: "legacy aliases",
			raw:  `[{"buy_quantity":4,"discount_percent":15,"free_qty":1,"amount_off":9}]`,
			want: []Offer{{
				MinQty:     4,
				PercentOff: d("15"),
				FreeQty:    1,
				AmountOff:  d("9"),
			}},
		},
		{
			name: "numeric strings coerce",
			raw:  `[{"minQty":"2","percentOff":"12.5"}]`,
			want: []Offer{{MinQty: 2, PercentOff: d("12.5")}},
		},
		{
			name: "null and missing fields stay zero",
			raw:  `[{"productId":null,"minQty":null}]`,
			want: []Offer{{}},
		},
		{
			name: "unknown fields skipped",
			raw:  `[{"minQty":1,"label":"summer sale","nested":{"a":[1,2]}}]`,
			want: []Offer{{MinQty: 1}},
		},
		{
			name: "scalar elements dropped",
			raw:  `[5,"x",{"minQty":2,"percentOff":20}]`,
			want: []Offer{{MinQty: 2, PercentOff: d("20")}},
		},
		{
			name: "wrong-typed field drops whole catalog",
			raw:  `[{"minQty":{"weird":true}}]`,
			want: nil,
		},
		{
			name: "no range validation at parse time",
			raw:  `[{"minQty":-3,"percentOff":150}]`,
			want: []Offer{{MinQty: -3, PercentOff: d("150")}},
		},
		{
			name: "multiple records preserve order",
			raw:  `[{"minQty":1,"percentOff":5},{"minQty":2,"percentOff":10}]`,
			want: []Offer{
				{MinQty: 1, PercentOff: d("5")},
				{MinQty: 2, PercentOff: d("10")},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseCatalog(tt.raw)
			require.Len(t, got, len(tt.want))
			for i := range tt.want {
				assert.Equal(t, tt.want[i].Target, got[i].Target)
				assert.Equal(t, tt.want[i].MinQty, got[i].MinQty)
				assert.Equal(t, tt.want[i].FreeQty, got[i].FreeQty)
				assert.True(t, tt.want[i].PercentOff.Equal(got[i].PercentOff),
					"percentOff = %s, want %s", got[i].PercentOff, tt.want[i].PercentOff)
				assert.True(t, tt.want[i].AmountOff.Equal(got[i].AmountOff),
					"amountOff = %s, want %s", got[i].AmountOff, tt.want[i].AmountOff)
			}
		})
	}
}
