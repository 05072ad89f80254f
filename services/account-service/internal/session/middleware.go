package session

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/cashflower/services/account-service/internal/usecase"
	"github.com/vasapolrittideah/cashflower/shared/httpx"
)

type contextKey struct{}

var UserClaimsKey = contextKey{}

// Verifier checks a raw session token.
type Verifier interface {
	VerifySession(ctx context.Context, token string) (*usecase.SessionClaims, error)
}

// RequireSession rejects requests without a valid session cookie and stores the
// verified claims in the request context.
func (m *Manager) RequireSession(verifier Verifier, logger *zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := m.Token(r)
			if !ok {
				httpx.WriteError(w, http.StatusUnauthorized, "missing session")
				return
			}

			claims, err := verifier.VerifySession(r.Context(), token)
			if err != nil {
				logger.Debug().Err(err).Msg("rejected session cookie")
				m.Clear(w)
				httpx.WriteError(w, http.StatusUnauthorized, "invalid session")
				return
			}

			ctx := context.WithValue(r.Context(), UserClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext returns the session claims stored by RequireSession.
func ClaimsFromContext(ctx context.Context) (*usecase.SessionClaims, bool) {
	claims, ok := ctx.Value(UserClaimsKey).(*usecase.SessionClaims)
	return claims, ok
}
