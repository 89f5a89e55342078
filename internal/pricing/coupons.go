package pricing

import "github.com/shopspring/decimal"

// The recognized coupon codes and their discount rates. Anything else maps
// to a zero rate and counts as "coupon cleared".
var couponRates = map[string]decimal.Decimal{
	"DESCONTO10": decimal.NewFromFloat(0.10),
	"DESCONTO5":  decimal.NewFromFloat(0.05),
}

// CouponRate resolves a coupon code to its discount rate. The second return
// reports whether the code is recognized.
func CouponRate(code string) (decimal.Decimal, bool) {
	rate, ok := couponRates[code]
	if !ok {
		return decimal.Zero, false
	}
	return rate, true
}
