package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DKS2424/Travel/internal/auth"
	"github.com/DKS2424/Travel/internal/domain"
	"github.com/DKS2424/Travel/internal/middleware"
)

// authenticatorFunc adapts a function to middleware.Authenticator.
type authenticatorFunc func(ctx context.Context, token string) (domain.Session, error)

func (f authenticatorFunc) Authenticate(ctx context.Context, token string) (domain.Session, error) {
	return f(ctx, token)
}

// tokens maps known bearer tokens to sessions.
func tokens(known map[string]string) middleware.Authenticator {
	return authenticatorFunc(func(_ context.Context, token string) (domain.Session, error) {
		email, ok := known[token]
		if !ok {
			return domain.Session{}, domain.ErrUnauthorized
		}
		return domain.Session{UserID: uuid.New(), Email: email, AccessToken: token}, nil
	})
}

// sessionEcho writes the email of the session found in the request context.
var sessionEcho = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	s, ok := middleware.SessionFrom(r.Context())
	if !ok {
		w.WriteHeader(http.StatusTeapot)
		return
	}
	_, _ = w.Write([]byte(s.Email))
})

func TestAPIKeyHandler(t *testing.T) {
	h := middleware.NewAPIKeyHandler("anon")(trivialHandler)

	tests := []struct {
		name   string
		key    string
		status int
	}{
		{"valid", "anon", http.StatusOK},
		{"wrong", "nope", http.StatusUnauthorized},
		{"missing", "", http.StatusUnauthorized},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/rest/v1/treks", nil)
			if tc.key != "" {
				req.Header.Set(middleware.APIKeyHeader, tc.key)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tc.status, rec.Code)
		})
	}
}

func TestBearerAuthHandler(t *testing.T) {
	h := middleware.NewBearerAuthHandler(tokens(map[string]string{"good": "hiker@example.com"}))(sessionEcho)

	tests := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"valid", "Bearer good", http.StatusOK, "hiker@example.com"},
		{"lowercase scheme", "bearer good", http.StatusOK, "hiker@example.com"},
		{"unknown token", "Bearer bad", http.StatusUnauthorized, ""},
		{"basic scheme", "Basic good", http.StatusUnauthorized, ""},
		{"empty token", "Bearer ", http.StatusUnauthorized, ""},
		{"missing", "", http.StatusUnauthorized, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/auth/v1/user", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			require.Equal(t, tc.status, rec.Code)
			if tc.body != "" {
				assert.Equal(t, tc.body, rec.Body.String())
			} else {
				assert.Contains(t, rec.Body.String(), `"unauthorized"`)
			}
		})
	}
}

func TestAdminHandler(t *testing.T) {
	chain := func(next http.Handler) http.Handler {
		authn := middleware.NewBearerAuthHandler(tokens(map[string]string{
			"admin": domain.AdminEmail,
			"user":  "hiker@example.com",
		}))
		return authn(middleware.NewAdminHandler(auth.DefaultPolicy)(next))
	}
	h := chain(trivialHandler)

	for token, want := range map[string]int{"admin": http.StatusOK, "user": http.StatusForbidden} {
		req := httptest.NewRequest(http.MethodDelete, "/rest/v1/treks/x", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, want, rec.Code, token)
	}
}

func TestAdminHandler_WithoutSession(t *testing.T) {
	h := middleware.NewAdminHandler(auth.DefaultPolicy)(trivialHandler)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/rest/v1/treks", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSessionFrom_Empty(t *testing.T) {
	_, ok := middleware.SessionFrom(context.Background())
	assert.False(t, ok)

	ctx := middleware.WithSession(context.Background(), domain.Session{Email: "a@b.co"})
	s, ok := middleware.SessionFrom(ctx)
	require.True(t, ok)
	assert.Equal(t, "a@b.co", s.Email)
}
