package controllers

import (
	"context"
	"net/http"

	"github.com/swinck/catalogo-backend/api/responses"
	pkgerrors "github.com/swinck/catalogo-backend/pkg/errors"
	"github.com/swinck/catalogo-backend/pkg/logger"
)

// Pinger is implemented by backends whose reachability gates readiness.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthController struct {
	pinger Pinger
	logg   *logger.Logger
}

// NewHealthController builds the liveness/readiness handlers. pinger may be
// nil when no external backend is configured.
func NewHealthController(pinger Pinger, logg *logger.Logger) *HealthController {
	return &HealthController{pinger: pinger, logg: logg}
}

func (c *HealthController) Live(w http.ResponseWriter, r *http.Request) {
	responses.WriteSuccess(w, map[string]string{"status": "ok"})
}

func (c *HealthController) Ready(w http.ResponseWriter, r *http.Request) {
	if c.pinger != nil {
		if err := c.pinger.Ping(r.Context()); err != nil {
			responses.WriteError(r.Context(), c.logg, w,
				pkgerrors.Wrap(pkgerrors.CodeDependency, err, "session backend unreachable"))
			return
		}
	}
	responses.WriteSuccess(w, map[string]string{"status": "ready"})
}
