package remote_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DKS2424/Travel/internal/api"
	"github.com/DKS2424/Travel/internal/auth"
	"github.com/DKS2424/Travel/internal/domain"
	"github.com/DKS2424/Travel/internal/remote"
	"github.com/DKS2424/Travel/internal/store"
)

// compile-time checks: the client serves both core components.
var (
	_ auth.IdentityProvider = (*remote.Client)(nil)
	_ store.Table           = (*remote.Client)(nil)
)

const anonKey = "anon-key"

// ---- helpers ---------------------------------------------------------------

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func writeErr(t *testing.T, w http.ResponseWriter, status int, code, msg string) {
	writeJSON(t, w, status, api.ErrorResponse{Error: api.ErrorDetail{Code: code, Message: msg}})
}

func newClient(t *testing.T, h http.HandlerFunc, opts ...remote.Option) *remote.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := remote.New(remote.Config{URL: srv.URL, AnonKey: anonKey}, opts...)
	require.NoError(t, err)
	return c
}

func sessionBody(email string) api.Session {
	return api.Session{
		AccessToken: "tok-" + email,
		TokenType:   "bearer",
		ExpiresIn:   3600,
		ExpiresAt:   time.Now().Add(time.Hour).Unix(),
		User:        api.User{Id: uuid.New(), Email: email},
	}
}

func signedInStore(email string) *remote.MemorySessionStore {
	s := remote.NewMemorySessionStore()
	_ = s.Save(&domain.Session{UserID: uuid.New(), Email: email, AccessToken: "tok", ExpiresAt: time.Now().Add(time.Hour)})
	return s
}

// ---- construction ----------------------------------------------------------

func TestNew_NotConfigured(t *testing.T) {
	for _, cfg := range []remote.Config{{}, {URL: "http://x"}, {AnonKey: "k"}, {URL: "  ", AnonKey: "k"}} {
		_, err := remote.New(cfg)
		assert.ErrorIs(t, err, remote.ErrNotConfigured)
	}
}

func TestNew_InvalidURL(t *testing.T) {
	_, err := remote.New(remote.Config{URL: "not a url", AnonKey: "k"})

	require.Error(t, err)
	assert.NotErrorIs(t, err, remote.ErrNotConfigured)
}

// ---- treks -----------------------------------------------------------------

func TestClient_Select(t *testing.T) {
	want := api.Trek{
		Id:         uuid.New(),
		Title:      "Everest Base Camp",
		Difficulty: "Hard",
		StartDate:  openapi_types.Date{Time: time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)},
		EndDate:    openapi_types.Date{Time: time.Date(2025, 10, 14, 0, 0, 0, 0, time.UTC)},
	}
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/rest/v1/treks", r.URL.Path)
		assert.Equal(t, "start_date.asc", r.URL.Query().Get("order"))
		assert.Equal(t, anonKey, r.Header.Get("apikey"))
		assert.Empty(t, r.Header.Get("Authorization"), "reads are anonymous")
		writeJSON(t, w, http.StatusOK, []api.Trek{want})
	})

	got, err := c.Select(context.Background(), domain.DefaultTrekOrder)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, want.Id, got[0].ID)
	assert.Equal(t, domain.DifficultyHard, got[0].Difficulty)
	assert.True(t, got[0].StartDate.Equal(want.StartDate.Time))
}

func TestClient_Get_NotFound(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		writeErr(t, w, http.StatusNotFound, "not_found", "trek not found")
	})

	_, err := c.Get(context.Background(), uuid.New())

	var re *remote.Error
	require.ErrorAs(t, err, &re)
	assert.Equal(t, http.StatusNotFound, re.Status)
	assert.Equal(t, "not_found", re.Code)
	assert.Equal(t, "trek not found", err.Error())
}

func TestClient_Insert_SendsBearer(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body api.NewTrek
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Moderate", body.Difficulty)

		writeJSON(t, w, http.StatusCreated, api.Trek{Id: uuid.New(), Title: body.Title, Difficulty: body.Difficulty})
	}, remote.WithSessionStore(signedInStore(domain.AdminEmail)))

	got, err := c.Insert(context.Background(), domain.NewTrek{Title: "Annapurna", Difficulty: domain.DifficultyModerate})

	require.NoError(t, err)
	assert.Equal(t, "Annapurna", got.Title)
	assert.NotEqual(t, uuid.Nil, got.ID)
}

func TestClient_Insert_NotSignedIn(t *testing.T) {
	c := newClient(t, func(http.ResponseWriter, *http.Request) {
		t.Error("no request is sent without a session")
	})

	_, err := c.Insert(context.Background(), domain.NewTrek{Title: "x"})

	assert.True(t, remote.IsStatus(err, http.StatusUnauthorized))
}

func TestClient_Update_SendsOnlySetFields(t *testing.T) {
	id := uuid.New()
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/rest/v1/treks/"+id.String(), r.URL.Path)

		var raw map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		assert.Equal(t, map[string]any{"price": 500.0}, raw)

		writeJSON(t, w, http.StatusOK, api.Trek{Id: id, Price: 500})
	}, remote.WithSessionStore(signedInStore(domain.AdminEmail)))

	price := 500.0
	got, err := c.Update(context.Background(), id, domain.TrekPatch{Price: &price})

	require.NoError(t, err)
	assert.Equal(t, 500.0, got.Price)
}

func TestClient_Delete(t *testing.T) {
	id := uuid.New()
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/rest/v1/treks/"+id.String(), r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}, remote.WithSessionStore(signedInStore(domain.AdminEmail)))

	assert.NoError(t, c.Delete(context.Background(), id))
}

func TestClient_NonJSONErrorFallsBackToStatus(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "upstream exploded", http.StatusBadGateway)
	})

	_, err := c.Select(context.Background(), domain.DefaultTrekOrder)

	var re *remote.Error
	require.ErrorAs(t, err, &re)
	assert.Empty(t, re.UserMessage())
	assert.Equal(t, "502 Bad Gateway", err.Error())
}

func TestClient_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	c, err := remote.New(remote.Config{URL: srv.URL, AnonKey: anonKey})
	require.NoError(t, err)

	_, err = c.Select(context.Background(), domain.DefaultTrekOrder)

	require.Error(t, err)
	var re *remote.Error
	assert.False(t, errors.As(err, &re))
}

// ---- auth ------------------------------------------------------------------

func TestClient_SignIn_StoresAndNotifies(t *testing.T) {
	sessions := remote.NewMemorySessionStore()
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/token", r.URL.Path)
		var creds api.Credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		writeJSON(t, w, http.StatusOK, sessionBody(string(creds.Email)))
	}, remote.WithSessionStore(sessions))

	var got *domain.Session
	unsubscribe := c.OnSessionChange(func(s *domain.Session) { got = s })
	defer unsubscribe()

	require.NoError(t, c.SignInWithPassword(context.Background(), "hiker@example.com", "secret1"))

	require.NotNil(t, got)
	assert.Equal(t, "hiker@example.com", got.Email)
	stored, err := sessions.Load()
	require.NoError(t, err)
	assert.Equal(t, got.AccessToken, stored.AccessToken)
}

func TestClient_SignIn_Rejected(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		writeErr(t, w, http.StatusBadRequest, "invalid_credentials", "Invalid login credentials")
	})
	notified := false
	c.OnSessionChange(func(*domain.Session) { notified = true })

	err := c.SignInWithPassword(context.Background(), "hiker@example.com", "nope")

	require.Error(t, err)
	assert.Equal(t, "Invalid login credentials", err.Error())
	assert.False(t, notified)
}

func TestClient_SignUp_AwaitingConfirmation(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, http.StatusOK, api.Session{User: api.User{Id: uuid.New(), Email: "new@example.com"}})
	})
	notified := false
	c.OnSessionChange(func(*domain.Session) { notified = true })

	require.NoError(t, c.SignUp(context.Background(), "new@example.com", "secret1"))

	assert.False(t, notified, "no session until the email is confirmed")
}

func TestClient_SignUp_WithSession(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, http.StatusOK, sessionBody("new@example.com"))
	})
	var got *domain.Session
	c.OnSessionChange(func(s *domain.Session) { got = s })

	require.NoError(t, c.SignUp(context.Background(), "new@example.com", "secret1"))

	require.NotNil(t, got)
	assert.Equal(t, "new@example.com", got.Email)
}

func TestClient_SignOut(t *testing.T) {
	sessions := signedInStore("hiker@example.com")
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/logout", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusNoContent)
	}, remote.WithSessionStore(sessions))
	notified := false
	got := &domain.Session{}
	c.OnSessionChange(func(s *domain.Session) { notified, got = true, s })

	require.NoError(t, c.SignOut(context.Background()))

	assert.True(t, notified)
	assert.Nil(t, got)
	stored, err := sessions.Load()
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestClient_SignOut_ServerErrorKeepsSession(t *testing.T) {
	sessions := signedInStore("hiker@example.com")
	c := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		writeErr(t, w, http.StatusInternalServerError, "internal_error", "internal server error")
	}, remote.WithSessionStore(sessions))

	err := c.SignOut(context.Background())

	require.Error(t, err)
	stored, _ := sessions.Load()
	assert.NotNil(t, stored)
}

func TestClient_ExistingSession(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantNil bool
	}{
		{"accepted", http.StatusOK, false},
		{"revoked", http.StatusUnauthorized, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sessions := signedInStore("hiker@example.com")
			c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/auth/v1/user", r.URL.Path)
				if tc.status != http.StatusOK {
					writeErr(t, w, tc.status, "unauthorized", "invalid token")
					return
				}
				writeJSON(t, w, http.StatusOK, api.User{Id: uuid.New(), Email: "hiker@example.com"})
			}, remote.WithSessionStore(sessions))

			got, err := c.ExistingSession(context.Background())

			require.NoError(t, err)
			assert.Equal(t, tc.wantNil, got == nil)
			stored, _ := sessions.Load()
			assert.Equal(t, tc.wantNil, stored == nil, "rejected sessions are forgotten")
		})
	}
}

func TestClient_ExistingSession_ExpiredSkipsNetwork(t *testing.T) {
	sessions := remote.NewMemorySessionStore()
	require.NoError(t, sessions.Save(&domain.Session{
		UserID: uuid.New(), Email: "a@b.co", AccessToken: "t", ExpiresAt: time.Now().Add(-time.Minute),
	}))
	c := newClient(t, func(http.ResponseWriter, *http.Request) {
		t.Error("expired sessions are not sent")
	}, remote.WithSessionStore(sessions))

	got, err := c.ExistingSession(context.Background())

	require.NoError(t, err)
	assert.Nil(t, got)
}
