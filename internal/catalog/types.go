package catalog

import "github.com/shopspring/decimal"

// Supplier is one catalog supplier. LogoPath is empty when the record
// carries no logo reference.
type Supplier struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	LogoPath string `json:"logo_path,omitempty"`
}

// Product is one sellable item. PromoPrice, when present, is the effective
// sale price regardless of its relation to Price.
type Product struct {
	ID         string           `json:"id"`
	SupplierID string           `json:"supplier_id"`
	Name       string           `json:"name"`
	Price      decimal.Decimal  `json:"price"`
	PromoPrice *decimal.Decimal `json:"promo_price,omitempty"`
	ImagePath  string           `json:"image_path,omitempty"`
}

// EffectivePrice returns the promo price when set, the list price otherwise.
func (p Product) EffectivePrice() decimal.Decimal {
	if p.PromoPrice != nil {
		return *p.PromoPrice
	}
	return p.Price
}

// Client is a shopper record. Passwords are stored and compared as plain
// text, mirroring the demo dataset this catalog serves.
type Client struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"-"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`
	State    string `json:"state,omitempty"`
	City     string `json:"city,omitempty"`
	CEP      string `json:"cep,omitempty"`
}
