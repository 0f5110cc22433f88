// Package function glues the offer catalog, line matching, and evaluation
// into the discount function the checkout host invokes: decode the run
// input, compute one instruction per eligible line, encode the result.
package function

import (
	"strconv"
	"strings"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"github.com/xenking/shopify-offers-function/internal/domain/cart"
)

// RunInput is the host payload for one function invocation: the cart
// snapshot plus the discount node whose metafield transports the global
// offer catalog.
type RunInput struct {
	Cart         cart.Cart
	DiscountNode DiscountNode
}

// DiscountNode carries the metafield value the merchant app wrote the
// global offer list into.
type DiscountNode struct {
	Metafield string
}

// DecodeInput decodes the host payload. Unknown fields are skipped and
// missing fields stay zero; only a structurally broken payload returns an
// error. Callers are expected to run the zero-value input in that case so
// the host still receives a well-formed result.
func DecodeInput(data []byte) (RunInput, error) {
	var in RunInput
	d := jx.DecodeBytes(data)
	if d.Next() != jx.Object {
		return in, errors.New("run input: expected top-level object")
	}
	err := d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		switch string(key) {
		case "cart":
			return decodeCart(d, &in.Cart)
		case "discountNode":
			return decodeDiscountNode(d, &in.DiscountNode)
		default:
			return d.Skip()
		}
	})
	if err != nil {
		return RunInput{}, errors.Wrap(err, "run input")
	}
	return in, nil
}

func decodeCart(d *jx.Decoder, c *cart.Cart) error {
	if d.Next() != jx.Object {
		return d.Skip()
	}
	return d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		if string(key) != "lines" {
			return d.Skip()
		}
		if d.Next() != jx.Array {
			return d.Skip()
		}
		return d.Arr(func(d *jx.Decoder) error {
			var line cart.Line
			if err := decodeLine(d, &line); err != nil {
				return err
			}
			c.Lines = append(c.Lines, line)
			return nil
		})
	})
}

func decodeLine(d *jx.Decoder, line *cart.Line) error {
	if d.Next() != jx.Object {
		return d.Skip()
	}
	return d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		switch string(key) {
		case "id":
			return decodeString(d, &line.ID)
		case "quantity":
			return decodeQuantity(d, &line.Quantity)
		case "merchandise":
			return decodeMerchandise(d, &line.Merchandise)
		default:
			return d.Skip()
		}
	})
}

func decodeMerchandise(d *jx.Decoder, m *cart.Merchandise) error {
	if d.Next() != jx.Object {
		return d.Skip()
	}
	return d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		switch string(key) {
		case "__typename":
			return decodeString(d, &m.Typename)
		case "id":
			return decodeString(d, &m.ID)
		case "metafield":
			return decodeMetafield(d, &m.Metafield)
		case "product":
			return decodeProduct(d, &m.Product)
		default:
			return d.Skip()
		}
	})
}

func decodeProduct(d *jx.Decoder, p *cart.Product) error {
	if d.Next() != jx.Object {
		return d.Skip()
	}
	return d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		switch string(key) {
		case "id":
			return decodeString(d, &p.ID)
		case "metafield":
			return decodeMetafield(d, &p.Metafield)
		default:
			return d.Skip()
		}
	})
}

func decodeDiscountNode(d *jx.Decoder, n *DiscountNode) error {
	if d.Next() != jx.Object {
		return d.Skip()
	}
	return d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		if string(key) != "metafield" {
			return d.Skip()
		}
		return decodeMetafield(d, &n.Metafield)
	})
}

// decodeMetafield extracts the "value" string from a metafield object.
// Null metafields (not configured) decode to an empty value.
func decodeMetafield(d *jx.Decoder, dst *string) error {
	if d.Next() != jx.Object {
		return d.Skip()
	}
	return d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		if string(key) != "value" {
			return d.Skip()
		}
		return decodeString(d, dst)
	})
}

func decodeString(d *jx.Decoder, dst *string) error {
	if d.Next() != jx.String {
		return d.Skip()
	}
	s, err := d.Str()
	if err != nil {
		return err
	}
	*dst = s
	return nil
}

// decodeQuantity tolerates numeric strings alongside plain numbers; some
// upstream serializers stringify quantities. Fractional parts truncate.
func decodeQuantity(d *jx.Decoder, dst *int) error {
	switch d.Next() {
	case jx.Number:
		n, err := d.Num()
		if err != nil {
			return err
		}
		f, err := n.Float64()
		if err != nil {
			return err
		}
		*dst = int(f)
		return nil
	case jx.String:
		s, err := d.Str()
		if err != nil {
			return err
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil
		}
		*dst = int(f)
		return nil
	default:
		return d.Skip()
	}
}
