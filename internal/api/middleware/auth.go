package middleware

import (
	"net/http"
	"strings"

	"github.com/fitsight/fitsight/internal/api/models"
	"github.com/fitsight/fitsight/internal/session"
)

// Auth extracts the bearer token from the Authorization header and scopes it
// to the request context. The gateway does not verify the token itself; the
// upstream API owns the signature and rejects bad tokens, and the session
// token source short-circuits expired ones before a doomed round trip.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeUnauthorized(w, r, "missing authorization header")
			return
		}

		// Check for Bearer prefix (case-insensitive)
		const bearerPrefix = "Bearer "
		if len(authHeader) < len(bearerPrefix) ||
			!strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
			writeUnauthorized(w, r, "invalid authorization header format")
			return
		}

		token := authHeader[len(bearerPrefix):]
		if token == "" {
			writeUnauthorized(w, r, "missing bearer token")
			return
		}

		next.ServeHTTP(w, r.WithContext(session.WithToken(r.Context(), token)))
	})
}

// writeUnauthorized writes a 401 Unauthorized response.
// This is implemented directly here to avoid import cycle with response package.
func writeUnauthorized(w http.ResponseWriter, r *http.Request, detail string) {
	traceID := GetRequestID(r.Context())
	problem := models.NewUnauthorized(traceID, detail)
	problem.Instance = r.URL.Path
	problem.Write(w)
}
