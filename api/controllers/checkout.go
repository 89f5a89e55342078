package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/swinck/catalogo-backend/api/middleware"
	"github.com/swinck/catalogo-backend/api/responses"
	"github.com/swinck/catalogo-backend/internal/cart"
	"github.com/swinck/catalogo-backend/internal/catalog"
	"github.com/swinck/catalogo-backend/internal/session"
	pkgerrors "github.com/swinck/catalogo-backend/pkg/errors"
	"github.com/swinck/catalogo-backend/pkg/logger"
)

type CheckoutController struct {
	carts    *cart.Store
	sessions session.Store
	repo     *catalog.Repository
	logg     *logger.Logger
}

func NewCheckoutController(carts *cart.Store, sessions session.Store, repo *catalog.Repository, logg *logger.Logger) *CheckoutController {
	return &CheckoutController{carts: carts, sessions: sessions, repo: repo, logg: logg}
}

// Checkout finalizes the cart: the quote is frozen into an order summary
// and the cart is emptied. Coupon and shipping stay on the session for the
// next purchase. Login is enforced at the route.
func (c *CheckoutController) Checkout(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.SessionID(r.Context())

	quote, err := buildQuote(r.Context(), c.sessions, c.repo, sessionID)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	if quote.IsEmpty() {
		responses.WriteError(r.Context(), c.logg, w,
			pkgerrors.New(pkgerrors.CodeEmptyCart, "carrinho vazio"))
		return
	}

	if err := c.carts.Clear(r.Context(), sessionID); err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	ctx := c.logg.WithField(r.Context(), "grand_total", quote.GrandTotal.StringFixed(2))
	c.logg.Info(ctx, "checkout.completed")

	responses.WriteSuccess(w, map[string]any{
		"order_id":   uuid.NewString(),
		"user_email": middleware.UserEmail(r.Context()),
		"quote":      quote,
	})
}
