package cart

import (
	"context"
	"net/http"
	"strings"

	"Storefront/pkg/kit"
)

type ctxKey string

const userKey ctxKey = "user"

type User struct {
	ID    string
	Email string
}

func UserFromContext(ctx context.Context) (User, bool) {
	u, ok := ctx.Value(userKey).(User)
	return u, ok
}

// RequireUserHeaders trusts the identity headers the gateway injects after
// token verification. The cart service itself never parses tokens.
func RequireUserHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uid := strings.TrimSpace(r.Header.Get("X-User-Id"))
		if uid == "" {
			kit.WriteError(w, r, http.StatusUnauthorized, "no user", nil)
			return
		}

		u := User{
			ID:    uid,
			Email: strings.TrimSpace(r.Header.Get("X-User-Email")),
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey, u)))
	})
}
