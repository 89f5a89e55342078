package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/swinck/catalogo-backend/internal/session"
	"github.com/swinck/catalogo-backend/pkg/logger"
)

// Session guarantees every request carries a session cookie, minting one on
// first contact, and resolves the logged-in identity from the stored
// session so downstream handlers and guards can read it from the context.
func Session(sessions session.Store, cookieName string, ttl time.Duration, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := ""
			if cookie, err := r.Cookie(cookieName); err == nil {
				sessionID = cookie.Value
			}
			if sessionID == "" {
				sessionID = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     cookieName,
					Value:    sessionID,
					Path:     "/",
					MaxAge:   int(ttl.Seconds()),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := withSessionID(r.Context(), sessionID)
			ctx = logg.WithSessionID(ctx, sessionID)

			sess, err := sessions.Get(ctx, sessionID)
			if err != nil {
				// A broken session backend must not block anonymous
				// browsing; the request proceeds without identity.
				logg.Error(ctx, "session.load_failed", err)
			} else if sess.UserEmail != "" {
				ctx = withUserEmail(ctx, sess.UserEmail)
				ctx = logg.WithUserEmail(ctx, sess.UserEmail)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
