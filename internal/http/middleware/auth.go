package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"estate_search/internal/http/httputil"

	"github.com/golang-jwt/jwt/v5"
)

// Auth verifies externally issued bearer tokens on admin routes. The
// service does not manage users or sessions; it only checks the
// signature and expiry of tokens minted by the identity provider.
func Auth(secret string, disabled bool, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if disabled {
				next.ServeHTTP(w, r)
				return
			}

			header := r.Header.Get("Authorization")
			tokenStr, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || tokenStr == "" {
				httputil.RespondError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			_, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(secret), nil
			})
			if err != nil {
				log.Warn("rejected admin request", slog.String("error", err.Error()))
				httputil.RespondError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
