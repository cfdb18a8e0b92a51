package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/hongminglow/staffly-be/internal/http/respond"
)

// Recover turns a panicking handler into a 500 response.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			p := recover()
			if p == nil {
				return
			}
			if p == http.ErrAbortHandler {
				panic(p)
			}
			slog.ErrorContext(r.Context(), "panic serving request",
				"method", r.Method,
				"path", r.URL.Path,
				"panic", p,
				"stack", string(debug.Stack()),
			)
			respond.InternalError(w)
		}()
		next.ServeHTTP(w, r)
	})
}
