package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/hongminglow/blogcart-be/internal/auth"
	"github.com/hongminglow/blogcart-be/internal/http/respond"
	"github.com/hongminglow/blogcart-be/internal/models"
	"github.com/hongminglow/blogcart-be/internal/storage"
)

type contextKey int

const (
	userContextKey contextKey = iota
	identityRecordKey
)

// identityRecord is installed by Logging before the inner handlers run.
// RequireUser fills it when it resolves an identity, so the request log
// line can carry the user id even though the identity itself lives on a
// derived context the outer middleware never sees.
type identityRecord struct {
	userID string
}

// UserFromContext returns the authenticated user attached by RequireUser.
func UserFromContext(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(userContextKey).(models.User)
	return user, ok
}

// WithUser attaches an authenticated user to the context. Exported for
// handler tests that bypass the middleware.
func WithUser(ctx context.Context, user models.User) context.Context {
	if rec, ok := ctx.Value(identityRecordKey).(*identityRecord); ok {
		rec.userID = user.ID
	}
	return context.WithValue(ctx, userContextKey, user)
}

// RequireUser rejects requests without a valid bearer token. On success the
// resolved user is attached to the request context. All rejection paths
// answer 401 with a generic message; the distinction between a missing
// token, a failed verification, and an unknown subject is logged only.
func RequireUser(tokens *auth.TokenManager, users storage.UserStore, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				respond.Message(w, http.StatusUnauthorized, "Not authorized, no token")
				return
			}

			userID, err := tokens.Parse(token)
			if err != nil {
				logger.Warn("token rejected",
					zap.String("path", r.URL.Path),
					zap.Error(err),
				)
				respond.Message(w, http.StatusUnauthorized, "Not authorized, token failed")
				return
			}

			user, err := users.FindUserByID(r.Context(), userID)
			if err != nil {
				if errors.Is(err, storage.ErrNotFound) {
					logger.Warn("token subject no longer exists", zap.String("user_id", userID))
					respond.Message(w, http.StatusUnauthorized, "Not authorized, user not found")
					return
				}
				logger.Error("auth user lookup failed", zap.String("user_id", userID), zap.Error(err))
				respond.Message(w, http.StatusInternalServerError, "Error authorizing request")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// bearerToken extracts the token from an Authorization header value. The
// scheme is the case-sensitive prefix "Bearer" followed by exactly one
// space.
func bearerToken(header string) (string, bool) {
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" || strings.HasPrefix(token, " ") {
		return "", false
	}
	return token, true
}
