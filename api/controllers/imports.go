package controllers

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/swinck/catalogo-backend/api/middleware"
	"github.com/swinck/catalogo-backend/api/responses"
	"github.com/swinck/catalogo-backend/internal/importer"
	"github.com/swinck/catalogo-backend/internal/tabular"
	pkgerrors "github.com/swinck/catalogo-backend/pkg/errors"
	"github.com/swinck/catalogo-backend/pkg/logger"
)

// maxUploadBytes bounds a spreadsheet upload; the demo datasets are tiny.
const maxUploadBytes = 10 << 20

type ImportController struct {
	pipeline *importer.Pipeline
	logg     *logger.Logger
}

func NewImportController(pipeline *importer.Pipeline, logg *logger.Logger) *ImportController {
	return &ImportController{pipeline: pipeline, logg: logg}
}

// Import replaces one entity's dataset from an uploaded .xlsx or .csv. The
// file arrives as the multipart field "file"; its extension selects the
// parser. The route is admin-guarded, and the pipeline re-checks the caller
// before touching the payload.
func (c *ImportController) Import(w http.ResponseWriter, r *http.Request) {
	entity := tabular.Entity(chi.URLParam(r, "entity"))

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		responses.WriteError(r.Context(), c.logg, w,
			pkgerrors.Wrap(pkgerrors.CodeValidation, err, "envio inválido"))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w,
			pkgerrors.Wrap(pkgerrors.CodeValidation, err, "arquivo ausente no campo \"file\""))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w,
			pkgerrors.Wrap(pkgerrors.CodeValidation, err, "falha ao ler o arquivo enviado"))
		return
	}

	count, err := c.pipeline.Import(middleware.UserEmail(r.Context()), entity, header.Filename, data)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	ctx := c.logg.WithEntity(r.Context(), string(entity))
	ctx = c.logg.WithField(ctx, "rows", count)
	c.logg.Info(ctx, "import.completed")

	responses.WriteSuccess(w, map[string]any{
		"entity": string(entity),
		"rows":   count,
	})
}
