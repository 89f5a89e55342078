package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/swinck/catalogo-backend/api/controllers"
	"github.com/swinck/catalogo-backend/api/middleware"
	"github.com/swinck/catalogo-backend/internal/session"
	"github.com/swinck/catalogo-backend/pkg/logger"
	"github.com/swinck/catalogo-backend/pkg/metrics"
)

// Deps carries everything the router wires together.
type Deps struct {
	Logger   *logger.Logger
	Metrics  *metrics.HTTPMetrics
	Registry *prometheus.Registry

	Sessions      session.Store
	SessionCookie string
	SessionTTL    time.Duration

	Admin middleware.Authorizer

	Health   *controllers.HealthController
	Catalog  *controllers.CatalogController
	Cart     *controllers.CartController
	Checkout *controllers.CheckoutController
	Auth     *controllers.AuthController
	Account  *controllers.AccountController
	Imports  *controllers.ImportController
	Exports  *controllers.ExportController

	// StaticDir, when set, is served under /images for supplier logos and
	// product photos.
	StaticDir string
}

func New(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID(deps.Logger))
	r.Use(middleware.Logging(deps.Logger))
	r.Use(middleware.Recoverer(deps.Logger))
	if deps.Metrics != nil {
		r.Use(middleware.Metrics(deps.Metrics))
	}
	r.Use(middleware.Session(deps.Sessions, deps.SessionCookie, deps.SessionTTL, deps.Logger))

	r.Get("/health/live", deps.Health.Live)
	r.Get("/health/ready", deps.Health.Ready)
	if deps.Registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	if deps.StaticDir != "" {
		r.Handle("/images/*", http.StripPrefix("/images/", http.FileServer(http.Dir(deps.StaticDir))))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/suppliers", deps.Catalog.ListSuppliers)
		r.Get("/suppliers/{supplierID}/products", deps.Catalog.SupplierProducts)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", deps.Cart.View)
			r.Post("/items/{productID}", deps.Cart.AddItem)
			r.Delete("/items/{productID}", deps.Cart.RemoveItem)
			r.Post("/coupon", deps.Cart.ApplyCoupon)
			r.Post("/shipping", deps.Cart.SetShipping)

			r.Get("/export/csv", deps.Exports.CSV)
			r.Get("/export/xlsx", deps.Exports.XLSX)
			r.Get("/export/pdf", deps.Exports.PDF)
		})

		r.Post("/auth/login", deps.Auth.Login)
		r.Post("/auth/logout", deps.Auth.Logout)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireLogin(deps.Logger))
			r.Post("/checkout", deps.Checkout.Checkout)
			r.Get("/account", deps.Account.Get)
			r.Put("/account", deps.Account.Update)
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.RequireAdmin(deps.Admin, deps.Logger))
		r.Post("/{entity}/import", deps.Imports.Import)
	})

	return r
}
