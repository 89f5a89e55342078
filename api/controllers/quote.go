package controllers

import (
	"context"

	"github.com/swinck/catalogo-backend/internal/catalog"
	"github.com/swinck/catalogo-backend/internal/pricing"
	"github.com/swinck/catalogo-backend/internal/session"
	pkgerrors "github.com/swinck/catalogo-backend/pkg/errors"
)

// buildQuote loads the session and prices its cart against the current
// catalog. Shared by the cart view, checkout and the three exports so they
// all see the same totals.
func buildQuote(ctx context.Context, sessions session.Store, repo *catalog.Repository, sessionID string) (pricing.Quote, error) {
	sess, err := sessions.Get(ctx, sessionID)
	if err != nil {
		return pricing.Quote{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load session")
	}
	index, err := repo.ProductIndex()
	if err != nil {
		return pricing.Quote{}, err
	}
	return pricing.Calculate(sess.Cart, index, sess.CouponCode, sess.ShippingValue), nil
}
