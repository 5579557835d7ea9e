package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"estate_search/internal/http/httputil"
)

// GenericErrorMessage is what callers see for any uncaught fault; stack
// traces stay in the logs.
const GenericErrorMessage = "An unexpected error occurred"

// RecoverJSON перехватывает панику и возвращает JSON-ошибку 500.
func RecoverJSON(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					log.Error("panic in request handler",
						slog.Any("panic", rec),
						slog.String("path", r.URL.Path),
						slog.String("stack", string(debug.Stack())),
					)
					httputil.RespondError(w, http.StatusInternalServerError, GenericErrorMessage)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
