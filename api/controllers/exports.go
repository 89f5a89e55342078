package controllers

import (
	"net/http"

	"github.com/swinck/catalogo-backend/api/middleware"
	"github.com/swinck/catalogo-backend/api/responses"
	"github.com/swinck/catalogo-backend/internal/catalog"
	"github.com/swinck/catalogo-backend/internal/exporter"
	"github.com/swinck/catalogo-backend/internal/pricing"
	"github.com/swinck/catalogo-backend/internal/session"
	"github.com/swinck/catalogo-backend/pkg/logger"
)

// MIME types for the three cart downloads.
const (
	contentTypeCSV  = "text/csv; charset=utf-8"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypePDF  = "application/pdf"
)

type ExportController struct {
	sessions session.Store
	repo     *catalog.Repository
	logg     *logger.Logger
}

func NewExportController(sessions session.Store, repo *catalog.Repository, logg *logger.Logger) *ExportController {
	return &ExportController{sessions: sessions, repo: repo, logg: logg}
}

func (c *ExportController) CSV(w http.ResponseWriter, r *http.Request) {
	c.export(w, r, exporter.FileNameCSV, contentTypeCSV, exporter.CSV)
}

func (c *ExportController) XLSX(w http.ResponseWriter, r *http.Request) {
	c.export(w, r, exporter.FileNameXLSX, contentTypeXLSX, exporter.XLSX)
}

func (c *ExportController) PDF(w http.ResponseWriter, r *http.Request) {
	c.export(w, r, exporter.FileNamePDF, contentTypePDF, exporter.PDF)
}

func (c *ExportController) export(w http.ResponseWriter, r *http.Request, filename, contentType string, render func(pricing.Quote) ([]byte, error)) {
	quote, err := buildQuote(r.Context(), c.sessions, c.repo, middleware.SessionID(r.Context()))
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	data, err := render(quote)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteAttachment(w, filename, contentType, data)
}
