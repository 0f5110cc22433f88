package function

import "github.com/go-faster/jx"

// Strategy tells the checkout engine how emitted discounts combine.
type Strategy string

const (
	// StrategyAll applies every emitted discount. Each line carries at most
	// one instruction here, so nothing competes.
	StrategyAll Strategy = "All"
	// StrategyMaximum applies only the single best discount.
	StrategyMaximum Strategy = "Maximum"
)

// Result is the function output returned to the checkout engine.
type Result struct {
	Strategy  Strategy
	Discounts []Discount
}

// Discount is one instruction: reduce the target's price by the value.
type Discount struct {
	Message string
	Target  Target
	Value   Value
}

// Target names what an instruction applies to; exactly one field is set.
// Percentage discounts target the variant, fixed amounts target the cart
// line because monetary amounts are per line, not per unit.
type Target struct {
	CartLine       string
	ProductVariant string
}

// Value is the discount magnitude; exactly one field is set. Both are
// decimal strings with trailing zeros already trimmed.
type Value struct {
	Percentage  string
	FixedAmount string
}

// Encode writes the result in the host's wire shape. Field order is fixed,
// so identical inputs produce byte-identical output.
func (r Result) Encode(e *jx.Encoder) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("discountApplicationStrategy", func(e *jx.Encoder) {
			e.Str(string(r.Strategy))
		})
		e.Field("discounts", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, d := range r.Discounts {
					d.encode(e)
				}
			})
		})
	})
}

// Bytes returns the encoded result.
func (r Result) Bytes() []byte {
	var e jx.Encoder
	r.Encode(&e)
	return e.Bytes()
}

func (d Discount) encode(e *jx.Encoder) {
	e.Obj(func(e *jx.Encoder) {
		if d.Message != "" {
			e.Field("message", func(e *jx.Encoder) {
				e.Str(d.Message)
			})
		}
		e.Field("targets", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				d.Target.encode(e)
			})
		})
		e.Field("value", func(e *jx.Encoder) {
			d.Value.encode(e)
		})
	})
}

func (t Target) encode(e *jx.Encoder) {
	e.Obj(func(e *jx.Encoder) {
		if t.CartLine != "" {
			e.Field("cartLine", func(e *jx.Encoder) {
				encodeIDObj(e, t.CartLine)
			})
			return
		}
		e.Field("productVariant", func(e *jx.Encoder) {
			encodeIDObj(e, t.ProductVariant)
		})
	})
}

func (v Value) encode(e *jx.Encoder) {
	e.Obj(func(e *jx.Encoder) {
		if v.FixedAmount != "" {
			e.Field("fixedAmount", func(e *jx.Encoder) {
				e.Obj(func(e *jx.Encoder) {
					e.Field("amount", func(e *jx.Encoder) {
						e.Str(v.FixedAmount)
					})
				})
			})
			return
		}
		e.Field("percentage", func(e *jx.Encoder) {
			e.Obj(func(e *jx.Encoder) {
				e.Field("value", func(e *jx.Encoder) {
					e.Str(v.Percentage)
				})
			})
		})
	})
}

func encodeIDObj(e *jx.Encoder, id string) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("id", func(e *jx.Encoder) {
			e.Str(id)
		})
	})
}
