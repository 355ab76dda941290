package web

import (
	"net/http"

	"github.com/JonMunkholm/csvview/internal/core"
	"github.com/JonMunkholm/csvview/internal/logging"
)

// sessionMiddleware resolves the caller's session from the session cookie,
// creating one (and setting the cookie) for new or expired visitors.
func (s *Server) sessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var id string
		if c, err := r.Cookie(s.cfg.Session.CookieName); err == nil {
			id = c.Value
		}

		sess, created := s.service.Sessions().GetOrCreate(id)
		if created {
			http.SetCookie(w, &http.Cookie{
				Name:     s.cfg.Session.CookieName,
				Value:    sess.ID,
				Path:     "/",
				HttpOnly: true,
				Secure:   s.cfg.Session.CookieSecure,
				SameSite: http.SameSiteLaxMode,
			})
			if id != "" {
				logging.FromContext(r.Context()).Info("session replaced", "session_id", sess.ID)
			}
		}

		ctx := core.ContextWithSession(r.Context(), sess)
		ctx = logging.WithSessionID(ctx, sess.ID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// session returns the session attached by sessionMiddleware.
func session(r *http.Request) *core.Session {
	return core.SessionFromContext(r.Context())
}
