package middleware

import (
	"net/http"
	"strings"

	"togetherbikes/internal/identity"

	"go.uber.org/zap"
)

// AuthMiddleware resolves an optional bearer token through the identity
// gateway and attaches the session to the request context. Requests without
// an Authorization header pass through as guests; a header that fails to
// resolve is rejected so a caller never silently loses its account state.
func AuthMiddleware(gateway identity.Gateway, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				logger.Debug("Invalid authorization header format")
				RespondWithError(w, http.StatusUnauthorized, "invalid authorization header format")
				return
			}

			sess, err := gateway.Session(r.Context(), parts[1])
			if err != nil {
				logger.Debug("Token validation failed", zap.Error(err))
				if err == identity.ErrTokenExpired {
					RespondWithError(w, http.StatusUnauthorized, "token expired")
				} else {
					RespondWithError(w, http.StatusUnauthorized, "invalid token")
				}
				return
			}

			logger.Debug("User authenticated",
				zap.String("user_id", sess.User.ID.String()),
			)

			next.ServeHTTP(w, r.WithContext(identity.WithSession(r.Context(), sess)))
		})
	}
}
