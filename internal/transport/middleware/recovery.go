package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/heartmarshall/vocabcoach/pkg/ctxutil"
)

// Recovery turns a handler panic into a logged stack trace and a 500 with
// the API error envelope. Nothing is written when the handler already
// started its response.
func Recovery(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sw := newStatusWriter(w)
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				attrs := []any{
					slog.Any("error", rec),
					slog.String("stack", string(debug.Stack())),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.String("request_id", ctxutil.RequestIDFromCtx(r.Context())),
				}
				if key, ok := ctxutil.ProfileKeyFromCtx(r.Context()); ok {
					attrs = append(attrs, slog.String("profile", key))
				}
				logger.ErrorContext(r.Context(), "panic recovered", attrs...)

				if sw.wroteHeader {
					return
				}
				sw.Header().Set("Content-Type", "application/json")
				sw.WriteHeader(http.StatusInternalServerError)
				_ = json.NewEncoder(sw).Encode(map[string]any{
					"error": map[string]any{"code": "INTERNAL", "message": "internal server error"},
				})
			}()
			next.ServeHTTP(sw, r)
		})
	}
}
