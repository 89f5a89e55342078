package pricing

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/swinck/catalogo-backend/internal/catalog"
)

// Line is one priced cart entry.
type Line struct {
	Product   catalog.Product `json:"product"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// Quote is the full deterministic pricing breakdown for a cart.
type Quote struct {
	Lines         []Line          `json:"lines"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	CouponCode    string          `json:"coupon_code,omitempty"`
	DiscountRate  decimal.Decimal `json:"discount_rate"`
	DiscountValue decimal.Decimal `json:"discount_value"`
	ShippingValue decimal.Decimal `json:"shipping_value"`
	GrandTotal    decimal.Decimal `json:"grand_total"`
}

// IsEmpty reports whether no cart entry resolved to a catalog product.
func (q Quote) IsEmpty() bool {
	return len(q.Lines) == 0
}

// Calculate prices the cart against the catalog index. Entries whose
// product id is not in the index are skipped: the product may have been
// removed from the catalog after being carted, and that is not an error.
// The grand total is floored at zero.
func Calculate(cart map[string]int, products map[string]catalog.Product, couponCode string, shipping decimal.Decimal) Quote {
	quote := Quote{
		Lines:         make([]Line, 0, len(cart)),
		Subtotal:      decimal.Zero,
		ShippingValue: shipping,
	}

	ids := make([]string, 0, len(cart))
	for id := range cart {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		product, ok := products[id]
		if !ok {
			continue
		}
		qty := cart[id]
		unit := product.EffectivePrice()
		lineTotal := unit.Mul(decimal.NewFromInt(int64(qty)))
		quote.Subtotal = quote.Subtotal.Add(lineTotal)
		quote.Lines = append(quote.Lines, Line{
			Product:   product,
			Quantity:  qty,
			UnitPrice: unit,
			LineTotal: lineTotal,
		})
	}

	rate, recognized := CouponRate(couponCode)
	if recognized {
		quote.CouponCode = couponCode
	}
	quote.DiscountRate = rate
	quote.DiscountValue = quote.Subtotal.Mul(rate).Round(2)

	total := quote.Subtotal.Sub(quote.DiscountValue).Add(shipping)
	if total.IsNegative() {
		total = decimal.Zero
	}
	quote.GrandTotal = total
	return quote
}
