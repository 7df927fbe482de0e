package middleware

import (
	"crypto/subtle"
	"net/http"
)

// APIKeyHeader carries the public anon key on every API request.
const APIKeyHeader = "apikey"

// NewAPIKeyHandler returns a middleware that rejects requests whose apikey
// header does not match key with 401.
func NewAPIKeyHandler(key string) func(http.Handler) http.Handler {
	want := []byte(key)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := []byte(r.Header.Get(APIKeyHeader))
			if len(got) == 0 || subtle.ConstantTimeCompare(got, want) != 1 {
				writeError(w, http.StatusUnauthorized, "unauthorized", "Invalid API key")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
