package middleware

import (
	"net/http"

	"github.com/swinck/catalogo-backend/api/responses"
	pkgerrors "github.com/swinck/catalogo-backend/pkg/errors"
	"github.com/swinck/catalogo-backend/pkg/logger"
)

// Authorizer answers whether an email is the administrator identity.
type Authorizer interface {
	IsAdmin(email string) (bool, error)
}

// RequireLogin rejects anonymous requests with 401.
func RequireLogin(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if UserEmail(r.Context()) == "" {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.New(pkgerrors.CodeUnauthorized, "faça login para continuar"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin rejects requests whose identity is not the administrator.
// Anonymous requests get 401 so clients can distinguish "log in first"
// from "logged in but not allowed".
func RequireAdmin(auth Authorizer, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			email := UserEmail(r.Context())
			if email == "" {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.New(pkgerrors.CodeUnauthorized, "faça login para continuar"))
				return
			}
			ok, err := auth.IsAdmin(email)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			if !ok {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.New(pkgerrors.CodeForbidden, "acesso restrito ao administrador"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
