package middleware

import (
	"net/http"

	"github.com/heartmarshall/vocabcoach/internal/domain"
	"github.com/heartmarshall/vocabcoach/pkg/ctxutil"
)

type activeSession interface {
	Active() (domain.Profile, bool)
}

// ActiveProfile stores the key of the profile active when the request
// arrives in the request context. Requests pass through either way; the
// services reject work that needs a session.
func ActiveProfile(sessions activeSession) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := sessions.Active()
			if !ok {
				next.ServeHTTP(w, r)
				return
			}
			ctx := ctxutil.WithProfileKey(r.Context(), p.Key)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
