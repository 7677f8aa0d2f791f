package httptransport

import (
	"context"
	"net/http"

	"eats-backend/internal/auth"
	"eats-backend/internal/store"
)

// AccountSource looks up the account a token names. *store.AccountStore
// satisfies it; absence is (nil, nil).
type AccountSource interface {
	FindByID(ctx context.Context, id int32) (*store.Account, error)
}

// AuthMiddleware resolves the caller's identity from the X-JWT header and
// attaches it to the request context. A missing or invalid token passes the
// request through unauthenticated: public operations must still work, and
// the resolvers decide which operations require an identity.
type AuthMiddleware struct {
	Tokens   auth.Manager
	Accounts AccountSource
}

func (m AuthMiddleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get("X-JWT")
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := m.Tokens.Parse(token)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		a, err := m.Accounts.FindByID(r.Context(), claims.AccountID)
		if err != nil || a == nil {
			next.ServeHTTP(w, r)
			return
		}

		ctx := auth.WithAccount(r.Context(), a)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
