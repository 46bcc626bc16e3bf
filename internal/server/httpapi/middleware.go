package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/server/auth"
)

type ctxKey string

const accountIDKey ctxKey = "accountID"

// AccountIDFromContext returns the account id attached by requireAuth.
// Handlers behind the middleware may assume it is present and authentic.
func AccountIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(accountIDKey).(string)
	return id, ok
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header. A missing header or any other scheme yields common.ErrNoToken.
func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", common.ErrNoToken
	}
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", common.ErrNoToken
	}
	return parts[1], nil
}

// requireAuth is the authorization gate. It verifies the bearer token,
// re-resolves the subject against the account store, and attaches the
// account id to the request context. Every failure mode is fail-closed:
// the request is rejected with 401 before any downstream handler runs, and
// identity is never read from the request body or query.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := bearerToken(r)
		if err != nil {
			writeError(w, err)
			return
		}

		accountID, err := auth.GetAccountIDFromToken(token, s.jwtSecret)
		if err != nil {
			writeError(w, common.ErrInvalidToken)
			return
		}

		account, err := s.accounts.Resolve(r.Context(), accountID)
		if err != nil {
			writeError(w, common.ErrUnknownSubject)
			return
		}

		ctx := context.WithValue(r.Context(), accountIDKey, account.ID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
