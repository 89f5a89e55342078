package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/swinck/catalogo-backend/api/responses"
	"github.com/swinck/catalogo-backend/api/validators"
	"github.com/swinck/catalogo-backend/internal/catalog"
	pkgerrors "github.com/swinck/catalogo-backend/pkg/errors"
	"github.com/swinck/catalogo-backend/pkg/logger"
)

// productPageSize is the fixed storefront grid size.
const productPageSize = 9

type CatalogController struct {
	repo *catalog.Repository
	logg *logger.Logger
}

func NewCatalogController(repo *catalog.Repository, logg *logger.Logger) *CatalogController {
	return &CatalogController{repo: repo, logg: logg}
}

// ListSuppliers returns every supplier; the storefront home renders them all.
func (c *CatalogController) ListSuppliers(w http.ResponseWriter, r *http.Request) {
	suppliers, err := c.repo.ListSuppliers()
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccess(w, map[string]any{"suppliers": suppliers})
}

// SupplierProducts returns one page of a supplier's products. Pages are
// 1-based with a fixed size of nine; out-of-range pages clamp to the last
// available page.
func (c *CatalogController) SupplierProducts(w http.ResponseWriter, r *http.Request) {
	supplierID := chi.URLParam(r, "supplierID")

	supplier, err := c.repo.FindSupplier(supplierID)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	if supplier == nil {
		responses.WriteError(r.Context(), c.logg, w,
			pkgerrors.New(pkgerrors.CodeNotFound, "fornecedor não encontrado"))
		return
	}

	products, err := c.repo.ProductsBySupplier(supplierID)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	totalPages := (len(products) + productPageSize - 1) / productPageSize
	if totalPages == 0 {
		totalPages = 1
	}
	page := validators.ParseQueryInt(r, "page", 1, 1, totalPages)

	start := (page - 1) * productPageSize
	end := start + productPageSize
	if start > len(products) {
		start = len(products)
	}
	if end > len(products) {
		end = len(products)
	}

	responses.WriteSuccess(w, map[string]any{
		"supplier":    supplier,
		"products":    products[start:end],
		"page":        page,
		"total_pages": totalPages,
		"total":       len(products),
	})
}
