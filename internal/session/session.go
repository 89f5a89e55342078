package session

import (
	"context"

	"github.com/shopspring/decimal"
)

// Session is the per-browser state document. The cart maps product id to
// requested quantity; the remaining fields mirror what the storefront keeps
// between requests.
type Session struct {
	Cart          map[string]int  `json:"cart,omitempty"`
	UserEmail     string          `json:"user_email,omitempty"`
	CouponCode    string          `json:"coupon_code,omitempty"`
	ShippingValue decimal.Decimal `json:"shipping_value"`
}

// New returns an empty session with an initialized cart.
func New() *Session {
	return &Session{Cart: map[string]int{}}
}

func (s *Session) ensureCart() {
	if s.Cart == nil {
		s.Cart = map[string]int{}
	}
}

// Store persists sessions keyed by an opaque session id. Get returns a
// fresh empty session when nothing is stored yet.
type Store interface {
	Get(ctx context.Context, sessionID string) (*Session, error)
	Save(ctx context.Context, sessionID string, sess *Session) error
	Delete(ctx context.Context, sessionID string) error
}
