package offer

import (
	"strings"

	"github.com/go-faster/jx"
	"github.com/shopspring/decimal"
)

// ParseCatalog decodes a JSON-encoded offer list into normalized offers.
//
// The input is merchant configuration transported through a metafield, so
// it is treated as untrusted: an empty string, malformed JSON, a non-array
// payload, or wrong-typed fields all degrade to an empty catalog. A broken
// configuration must never break pricing; it prices as "no discount".
//
// Historical configurations use both camelCase and snake_case field names;
// all known aliases are folded into the canonical schema here so nothing
// downstream branches on naming. Numeric fields accept JSON numbers and
// numeric strings. Ranges are not validated at parse time; evaluation
// decides applicability.
func ParseCatalog(raw string) []Offer {
	if raw == "" {
		return nil
	}

	d := jx.DecodeStr(raw)
	if d.Next() != jx.Array {
		return nil
	}

	var offers []Offer
	err := d.Arr(func(d *jx.Decoder) error {
		if d.Next() != jx.Object {
			// Scalar elements cannot carry a threshold, so they can never
			// produce a discount. Drop them instead of failing the catalog.
			return d.Skip()
		}
		o, err := decodeOffer(d)
		if err != nil {
			return err
		}
		offers = append(offers, o)
		return nil
	})
	if err != nil {
		return nil
	}
	return offers
}

func decodeOffer(d *jx.Decoder) (Offer, error) {
	var o Offer
	err := d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		switch string(key) {
		case "productId", "product_id":
			return readStr(d, &o.Target)
		case "minQty", "min_qty", "buy_quantity":
			return readInt(d, &o.MinQty)
		case "percentOff", "percent_off", "discount_percent":
			return readDecimal(d, &o.PercentOff)
		case "freeQty", "free_quantity", "free_qty":
			return readInt(d, &o.FreeQty)
		case "fixedAmountOff", "fixed_amount_off", "amount_off":
			return readDecimal(d, &o.AmountOff)
		default:
			return d.Skip()
		}
	})
	return o, err
}

func readStr(d *jx.Decoder, dst *string) error {
	if d.Next() == jx.Null {
		return d.Null()
	}
	s, err := d.Str()
	if err != nil {
		return err
	}
	*dst = s
	return nil
}

// readInt accepts a JSON number or numeric string, truncating any
// fractional part.
func readInt(d *jx.Decoder, dst *int64) error {
	dec, err := readNumber(d)
	if err != nil {
		return err
	}
	*dst = dec.IntPart()
	return nil
}

func readDecimal(d *jx.Decoder, dst *decimal.Decimal) error {
	dec, err := readNumber(d)
	if err != nil {
		return err
	}
	*dst = dec
	return nil
}

func readNumber(d *jx.Decoder) (decimal.Decimal, error) {
	switch d.Next() {
	case jx.Null:
		return decimal.Zero, d.Null()
	case jx.String:
		s, err := d.Str()
		if err != nil {
			return decimal.Zero, err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return decimal.Zero, nil
		}
		return decimal.NewFromString(s)
	default:
		n, err := d.Num()
		if err != nil {
			return decimal.Zero, err
		}
		return decimal.NewFromString(string(n))
	}
}
