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

// Roles reported by login and account lookups.
const (
	RoleAdmin  = "admin"
	RoleClient = "client"
)

type AuthController struct {
	repo     *catalog.Repository
	admins   *admin.Store
	sessions session.Store
	logg     *logger.Logger
}

func NewAuthController(repo *catalog.Repository, admins *admin.Store, sessions session.Store, logg *logger.Logger) *AuthController {
	return &AuthController{repo: repo, admins: admins, sessions: sessions, logg: logg}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login checks the administrator record first, then the client dataset.
// Both comparisons are plain-text equality against the stored values.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := validators.DecodeJSONBody(r, &req); err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	role, err := c.authenticate(req.Email, req.Password)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	if role == "" {
		responses.WriteError(r.Context(), c.logg, w,
			pkgerrors.New(pkgerrors.CodeUnauthorized, "credenciais inválidas"))
		return
	}

	sessionID := middleware.SessionID(r.Context())
	sess, err := c.sessions.Get(r.Context(), sessionID)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w,
			pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load session"))
		return
	}
	sess.UserEmail = req.Email
	if err := c.sessions.Save(r.Context(), sessionID, sess); err != nil {
		responses.WriteError(r.Context(), c.logg, w,
			pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save session"))
		return
	}

	ctx := c.logg.WithUserEmail(r.Context(), req.Email)
	c.logg.Info(ctx, "auth.login")

	responses.WriteSuccess(w, map[string]string{
		"email": req.Email,
		"role":  role,
	})
}

// Logout drops the identity from the session. The cart survives so an
// anonymous shopper can keep browsing what they carted.
func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.SessionID(r.Context())
	sess, err := c.sessions.Get(r.Context(), sessionID)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w,
			pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load session"))
		return
	}
	sess.UserEmail = ""
	if err := c.sessions.Save(r.Context(), sessionID, sess); err != nil {
		responses.WriteError(r.Context(), c.logg, w,
			pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save session"))
		return
	}
	responses.WriteSuccess(w, map[string]string{"status": "logged_out"})
}

// authenticate returns the matched role, empty when neither record matches.
func (c *AuthController) authenticate(email, password string) (string, error) {
	cred, err := c.admins.Get()
	if err != nil {
		return "", err
	}
	if email == cred.Email && password == cred.Password {
		return RoleAdmin, nil
	}

	client, err := c.repo.FindClientByEmail(email)
	if err != nil {
		return "", err
	}
	if client != nil && client.Password == password {
		return RoleClient, nil
	}
	return "", nil
}
