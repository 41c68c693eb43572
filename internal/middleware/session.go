package middleware

import (
	"net/http"

	"github.com/fraudshield/go-fraud-screening-pipeline/internal/utils"
)

// SessionMiddleware mints a session cookie for clients that do not have one.
// The session id becomes the admission key on subsequent requests, so it must
// exist before rate limiting can track a client more precisely than by IP.
func SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := r.Cookie(utils.SessionCookieName); err != nil {
			sessionID := utils.GenerateSessionID()
			cookie := &http.Cookie{
				Name:     utils.SessionCookieName,
				Value:    sessionID,
				Path:     "/",
				MaxAge:   utils.SessionCookieMaxAge,
				HttpOnly: true,
				Secure:   utils.IsProduction(),
				SameSite: http.SameSiteStrictMode,
			}
			http.SetCookie(w, cookie)

			// Make the fresh cookie visible to the admission resolver on
			// this same request, not just the next one.
			r.AddCookie(cookie)
		}

		next.ServeHTTP(w, r)
	})
}
