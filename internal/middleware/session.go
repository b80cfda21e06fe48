package middleware

import (
	"context"
	"net/http"

	"shelter-catalog/internal/domain/sessions"
	"shelter-catalog/internal/platform/logger"
)

type ctxKey string

const sessionKey ctxKey = "session_id"

// SessionCookie guarda el id de la sesión del visitante. Sin MaxAge: dura lo
// que dura el navegador abierto.
const SessionCookie = "refuge_session"

// SessionContext:
// - Si viene cookie con una sesión conocida => la reutiliza.
// - Si no (o es inválida) => crea una sesión nueva y setea la cookie.
// - Si el repo falla, el request sigue sin sesión; los handlers deciden.
func SessionContext(svc *sessions.Service, log logger.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = logger.NewNop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var current string
			if c, err := r.Cookie(SessionCookie); err == nil {
				current = c.Value
			}

			sess, err := svc.Resume(r.Context(), current)
			if err != nil {
				log.Warn("session resume failed", map[string]any{"err": err})
				next.ServeHTTP(w, r)
				return
			}

			if sess.ID != current {
				http.SetCookie(w, &http.Cookie{
					Name:     SessionCookie,
					Value:    sess.ID,
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
					Secure:   r.TLS != nil,
				})
			}

			ctx := context.WithValue(r.Context(), sessionKey, sess.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetSessionID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(sessionKey).(string)
	return id, ok && id != ""
}
