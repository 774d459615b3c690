package middleware

import (
	"context"
	"net/http"
)

// ProfileHeader carries the caller's browser profile identifier. Cart,
// wishlist and checkout state is keyed by it, for guests and authenticated
// users alike.
const ProfileHeader = "X-Profile-ID"

type contextKey string

const profileIDKey contextKey = "profile_id"

// RequireProfile rejects requests that do not identify a browser profile.
func RequireProfile() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			profileID := r.Header.Get(ProfileHeader)
			if profileID == "" {
				RespondWithError(w, http.StatusBadRequest, "missing "+ProfileHeader+" header")
				return
			}

			ctx := context.WithValue(r.Context(), profileIDKey, profileID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetProfileID extracts the profile identifier from request context
func GetProfileID(ctx context.Context) (string, bool) {
	profileID, ok := ctx.Value(profileIDKey).(string)
	return profileID, ok
}
