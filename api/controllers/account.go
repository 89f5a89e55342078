package controllers

import (
	"net/http"

	"github.com/swinck/catalogo-backend/api/middleware"
	"github.com/swinck/catalogo-backend/api/responses"
	"github.com/swinck/catalogo-backend/api/validators"
	"github.com/swinck/catalogo-backend/internal/admin"
	"github.com/swinck/catalogo-backend/internal/catalog"
	"github.com/swinck/catalogo-backend/internal/session"
	pkgerrors "github.com/swinck/catalogo-backend/pkg/errors"
	"github.com/swinck/catalogo-backend/pkg/logger"
)

type AccountController struct {
	repo     *catalog.Repository
	admins   *admin.Store
	sessions session.Store
	logg     *logger.Logger
}

func NewAccountController(repo *catalog.Repository, admins *admin.Store, sessions session.Store, logg *logger.Logger) *AccountController {
	return &AccountController{repo: repo, admins: admins, sessions: sessions, logg: logg}
}

// Get returns the logged-in profile. The administrator has no client row,
// only the credential email.
func (c *AccountController) Get(w http.ResponseWriter, r *http.Request) {
	email := middleware.UserEmail(r.Context())

	isAdmin, err := c.admins.IsAdmin(email)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	if isAdmin {
		responses.WriteSuccess(w, map[string]string{
			"email": email,
			"role":  RoleAdmin,
		})
		return
	}

	client, err := c.repo.FindClientByEmail(email)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	if client == nil {
		responses.WriteError(r.Context(), c.logg, w,
			pkgerrors.New(pkgerrors.CodeNotFound, "cadastro não encontrado"))
		return
	}
	responses.WriteSuccess(w, map[string]any{
		"role":    RoleClient,
		"profile": client,
	})
}

type accountUpdateRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	State    string `json:"state"`
	City     string `json:"city"`
	CEP      string `json:"cep"`
}

// Update rewrites the logged-in profile. For the administrator only email
// and password apply; for a client the full row is rewritten. Empty email
// and password keep the stored values. A changed email is carried onto the
// session so the login survives the rename.
func (c *AccountController) Update(w http.ResponseWriter, r *http.Request) {
	var req accountUpdateRequest
	if err := validators.DecodeJSONBody(r, &req); err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	email := middleware.UserEmail(r.Context())

	isAdmin, err := c.admins.IsAdmin(email)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	if isAdmin {
		if err := c.admins.Set(req.Email, req.Password); err != nil {
			responses.WriteError(r.Context(), c.logg, w, err)
			return
		}
	} else {
		update := catalog.ClientUpdate{
			Name:     req.Name,
			Email:    req.Email,
			Password: req.Password,
			Phone:    req.Phone,
			Address:  req.Address,
			State:    req.State,
			City:     req.City,
			CEP:      req.CEP,
		}
		if err := c.repo.UpdateClientByEmail(email, update); err != nil {
			responses.WriteError(r.Context(), c.logg, w, err)
			return
		}
	}

	effectiveEmail := email
	if req.Email != "" && req.Email != email {
		effectiveEmail = req.Email
		sessionID := middleware.SessionID(r.Context())
		sess, err := c.sessions.Get(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), c.logg, w,
				pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load session"))
			return
		}
		sess.UserEmail = effectiveEmail
		if err := c.sessions.Save(r.Context(), sessionID, sess); err != nil {
			responses.WriteError(r.Context(), c.logg, w,
				pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save session"))
			return
		}
	}

	responses.WriteSuccess(w, map[string]string{
		"email":  effectiveEmail,
		"status": "updated",
	})
}
