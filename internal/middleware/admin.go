package middleware

import (
	"net/http"

	"github.com/DKS2424/Travel/internal/auth"
)

// NewAdminHandler returns a middleware that lets through only sessions the
// policy marks as privileged. It must run after NewBearerAuthHandler.
func NewAdminHandler(policy auth.PrivilegePolicy) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, ok := SessionFrom(r.Context())
			if !ok {
				writeError(w, http.StatusUnauthorized, "unauthorized", "Missing bearer token")
				return
			}
			if !policy.IsPrivileged(&session) {
				writeError(w, http.StatusForbidden, "forbidden", "Admin access required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
