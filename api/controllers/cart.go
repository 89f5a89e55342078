package controllers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/swinck/catalogo-backend/api/middleware"
	"github.com/swinck/catalogo-backend/api/responses"
	"github.com/swinck/catalogo-backend/api/validators"
	"github.com/swinck/catalogo-backend/internal/cart"
	"github.com/swinck/catalogo-backend/internal/catalog"
	"github.com/swinck/catalogo-backend/internal/pricing"
	"github.com/swinck/catalogo-backend/internal/session"
	pkgerrors "github.com/swinck/catalogo-backend/pkg/errors"
	"github.com/swinck/catalogo-backend/pkg/logger"
)

type CartController struct {
	carts    *cart.Store
	sessions session.Store
	repo     *catalog.Repository
	logg     *logger.Logger
}

func NewCartController(carts *cart.Store, sessions session.Store, repo *catalog.Repository, logg *logger.Logger) *CartController {
	return &CartController{carts: carts, sessions: sessions, repo: repo, logg: logg}
}

// View prices the current cart and returns the full quote.
func (c *CartController) View(w http.ResponseWriter, r *http.Request) {
	quote, err := buildQuote(r.Context(), c.sessions, c.repo, middleware.SessionID(r.Context()))
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccess(w, quote)
}

type addItemRequest struct {
	Quantity int `json:"quantity"`
}

// AddItem increments the carted quantity for the product in the path. The
// body is optional; a missing or sub-one quantity means one. The id is not
// checked against the catalog; entries that never resolve price to nothing.
func (c *CartController) AddItem(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")

	var req addItemRequest
	if r.ContentLength > 0 {
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), c.logg, w, err)
			return
		}
	}

	sessionID := middleware.SessionID(r.Context())
	if err := c.carts.Add(r.Context(), sessionID, productID, req.Quantity); err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	c.respondWithQuote(w, r, sessionID)
}

// RemoveItem drops a product from the cart; removing an absent id succeeds.
func (c *CartController) RemoveItem(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.SessionID(r.Context())
	if err := c.carts.Remove(r.Context(), sessionID, chi.URLParam(r, "productID")); err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	c.respondWithQuote(w, r, sessionID)
}

type couponRequest struct {
	Code string `json:"code" validate:"required"`
}

// ApplyCoupon stores the coupon code on the session. Codes are uppercased
// before the lookup; unrecognized codes clear any previously applied coupon
// instead of failing.
func (c *CartController) ApplyCoupon(w http.ResponseWriter, r *http.Request) {
	var req couponRequest
	if err := validators.DecodeJSONBody(r, &req); err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	code := strings.ToUpper(strings.TrimSpace(req.Code))

	sessionID := middleware.SessionID(r.Context())
	sess, err := c.sessions.Get(r.Context(), sessionID)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w,
			pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load session"))
		return
	}

	_, recognized := pricing.CouponRate(code)
	if recognized {
		sess.CouponCode = code
	} else {
		sess.CouponCode = ""
	}
	if err := c.sessions.Save(r.Context(), sessionID, sess); err != nil {
		responses.WriteError(r.Context(), c.logg, w,
			pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save session"))
		return
	}

	quote, err := buildQuote(r.Context(), c.sessions, c.repo, sessionID)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccess(w, map[string]any{
		"applied": recognized,
		"quote":   quote,
	})
}

type shippingRequest struct {
	Value json.Number `json:"value"`
}

// SetShipping stores the shipping value on the session. Malformed or
// negative values coerce to zero rather than failing, matching the lenient
// coercion applied to catalog prices.
func (c *CartController) SetShipping(w http.ResponseWriter, r *http.Request) {
	var req shippingRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	value, err := decimal.NewFromString(req.Value.String())
	if err != nil || value.IsNegative() {
		value = decimal.Zero
	}

	sessionID := middleware.SessionID(r.Context())
	sess, err := c.sessions.Get(r.Context(), sessionID)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w,
			pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load session"))
		return
	}
	sess.ShippingValue = value
	if err := c.sessions.Save(r.Context(), sessionID, sess); err != nil {
		responses.WriteError(r.Context(), c.logg, w,
			pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save session"))
		return
	}
	c.respondWithQuote(w, r, sessionID)
}

func (c *CartController) respondWithQuote(w http.ResponseWriter, r *http.Request, sessionID string) {
	quote, err := buildQuote(r.Context(), c.sessions, c.repo, sessionID)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccess(w, quote)
}
