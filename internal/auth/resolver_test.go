package auth_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DKS2424/Travel/internal/auth"
	"github.com/DKS2424/Travel/internal/domain"
)

// fakeProvider is a hand-written auth.IdentityProvider. Sign-in and sign-up
// succeed by broadcasting a session to listeners, like the real client does.
type fakeProvider struct {
	mu        sync.Mutex
	listeners map[int]func(*domain.Session)
	next      int

	existing     func(ctx context.Context) (*domain.Session, error)
	signInErr    error
	signUpErr    error
	signOutErr   error
	unsubscribed int
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{listeners: map[int]func(*domain.Session){}}
}

func (f *fakeProvider) ExistingSession(ctx context.Context) (*domain.Session, error) {
	if f.existing == nil {
		return nil, nil
	}
	return f.existing(ctx)
}

func (f *fakeProvider) OnSessionChange(fn func(*domain.Session)) func() {
	f.mu.Lock()
	id := f.next
	f.next++
	f.listeners[id] = fn
	f.mu.Unlock()
	return func() {
		f.mu.Lock()
		delete(f.listeners, id)
		f.unsubscribed++
		f.mu.Unlock()
	}
}

func (f *fakeProvider) emit(s *domain.Session) {
	f.mu.Lock()
	fns := make([]func(*domain.Session), 0, len(f.listeners))
	for _, fn := range f.listeners {
		fns = append(fns, fn)
	}
	f.mu.Unlock()
	for _, fn := range fns {
		fn(s)
	}
}

func (f *fakeProvider) SignInWithPassword(_ context.Context, email, _ string) error {
	if f.signInErr != nil {
		return f.signInErr
	}
	f.emit(sessionFor(email))
	return nil
}

func (f *fakeProvider) SignUp(_ context.Context, email, _ string) error {
	if f.signUpErr != nil {
		return f.signUpErr
	}
	f.emit(sessionFor(email))
	return nil
}

func (f *fakeProvider) SignOut(_ context.Context) error {
	if f.signOutErr != nil {
		return f.signOutErr
	}
	f.emit(nil)
	return nil
}

// compile-time check: fakeProvider must satisfy auth.IdentityProvider.
var _ auth.IdentityProvider = (*fakeProvider)(nil)

func sessionFor(email string) *domain.Session {
	return &domain.Session{UserID: uuid.New(), Email: email, AccessToken: "token"}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func startedResolver(t *testing.T, p auth.IdentityProvider, opts ...auth.Option) *auth.Resolver {
	t.Helper()
	opts = append([]auth.Option{auth.WithLogger(quietLogger())}, opts...)
	r := auth.NewResolver(p, opts...)
	r.Start(context.Background())
	t.Cleanup(r.Close)
	return r
}

// ---- lifecycle -------------------------------------------------------------

func TestResolver_LoadingUntilStart(t *testing.T) {
	r := auth.NewResolver(newFakeProvider(), auth.WithLogger(quietLogger()))

	assert.True(t, r.Current().Loading)

	r.Start(context.Background())

	st := r.Current()
	assert.False(t, st.Loading)
	assert.Nil(t, st.Session)
	assert.False(t, st.IsAdmin)
}

func TestResolver_RestoresExistingSession(t *testing.T) {
	p := newFakeProvider()
	p.existing = func(context.Context) (*domain.Session, error) {
		return sessionFor(domain.AdminEmail), nil
	}

	r := startedResolver(t, p)

	st := r.Current()
	require.NotNil(t, st.Session)
	assert.Equal(t, domain.AdminEmail, st.Session.Email)
	assert.True(t, st.IsAdmin)
	assert.False(t, st.Loading)
}

func TestResolver_ExistingSessionError_EndsLoading(t *testing.T) {
	p := newFakeProvider()
	p.existing = func(context.Context) (*domain.Session, error) {
		return nil, errors.New("network down")
	}

	r := startedResolver(t, p)

	st := r.Current()
	assert.False(t, st.Loading)
	assert.Nil(t, st.Session)
}

func TestResolver_ChangeDuringRestoreWins(t *testing.T) {
	p := newFakeProvider()
	p.existing = func(context.Context) (*domain.Session, error) {
		// A sign-in lands while the restore is still in flight.
		p.emit(sessionFor("fresh@example.com"))
		return sessionFor("stale@example.com"), nil
	}

	r := startedResolver(t, p)

	require.NotNil(t, r.Current().Session)
	assert.Equal(t, "fresh@example.com", r.Current().Session.Email)
}

func TestResolver_CurrentReturnsCopy(t *testing.T) {
	p := newFakeProvider()
	r := startedResolver(t, p)
	require.True(t, r.SignIn(context.Background(), "hiker@example.com", "secret1").OK())

	st := r.Current()
	st.Session.Email = domain.AdminEmail

	assert.Equal(t, "hiker@example.com", r.Current().Session.Email)
}

// ---- sign in / sign up -----------------------------------------------------

func TestResolver_SignIn_AdminFlag(t *testing.T) {
	tests := []struct {
		email     string
		wantAdmin bool
	}{
		{domain.AdminEmail, true},
		{"hiker@example.com", false},
		{"Admin@TrekZone.com", false}, // comparison is exact
	}
	for _, tc := range tests {
		t.Run(tc.email, func(t *testing.T) {
			r := startedResolver(t, newFakeProvider())

			res := r.SignIn(context.Background(), tc.email, "secret1")

			require.True(t, res.OK(), res.Error)
			st := r.Current()
			require.NotNil(t, st.Session)
			assert.Equal(t, tc.email, st.Session.Email)
			assert.Equal(t, tc.wantAdmin, st.IsAdmin)
		})
	}
}

func TestResolver_SignIn_FriendlyMessages(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"Invalid login credentials", "Invalid email or password. Please check your credentials and try again."},
		{"Email not confirmed", "Please check your email and click the confirmation link before signing in."},
		{"rate limit exceeded", "rate limit exceeded"},
	}
	for _, tc := range tests {
		t.Run(tc.raw, func(t *testing.T) {
			p := newFakeProvider()
			p.signInErr = errors.New(tc.raw)
			r := startedResolver(t, p)

			res := r.SignIn(context.Background(), "hiker@example.com", "bad")

			assert.False(t, res.OK())
			assert.Equal(t, tc.want, res.Error)
			assert.Nil(t, r.Current().Session, "failed sign-in leaves no session")
		})
	}
}

func TestResolver_InvalidCredentials_AlwaysReworded(t *testing.T) {
	p := newFakeProvider()
	raw := "AuthApiError: Invalid login credentials"
	p.signInErr = errors.New(raw)
	p.signUpErr = errors.New(raw)
	r := startedResolver(t, p)

	for _, res := range []auth.Result{
		r.SignIn(context.Background(), "a@b.co", "x"),
		r.SignUp(context.Background(), "a@b.co", "x"),
	} {
		assert.NotEmpty(t, res.Error)
		assert.NotEqual(t, raw, res.Error)
	}
}

func TestResolver_SignUp_FriendlyMessages(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"Invalid login credentials", "Unable to create account. Please check your email and password."},
		{"User already registered", "An account with this email already exists. Try signing in instead."},
		{"Password should be at least 6 characters", "Password should be at least 6 characters"},
	}
	for _, tc := range tests {
		t.Run(tc.raw, func(t *testing.T) {
			p := newFakeProvider()
			p.signUpErr = errors.New(tc.raw)
			r := startedResolver(t, p)

			res := r.SignUp(context.Background(), "hiker@example.com", "secret1")

			assert.Equal(t, tc.want, res.Error)
		})
	}
}

// ---- sign out --------------------------------------------------------------

func TestResolver_SignOut_ClearsSession(t *testing.T) {
	r := startedResolver(t, newFakeProvider())
	require.True(t, r.SignIn(context.Background(), domain.AdminEmail, "secret1").OK())
	require.True(t, r.Current().IsAdmin)

	r.SignOut(context.Background())

	st := r.Current()
	assert.Nil(t, st.Session)
	assert.False(t, st.IsAdmin)
}

func TestResolver_SignOut_ErrorIsLoggedNotReturned(t *testing.T) {
	var logs bytes.Buffer
	p := newFakeProvider()
	p.signOutErr = errors.New("network down")
	r := auth.NewResolver(p, auth.WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))
	r.Start(context.Background())
	require.True(t, r.SignIn(context.Background(), "hiker@example.com", "secret1").OK())

	r.SignOut(context.Background())

	assert.Contains(t, logs.String(), "error logging out")
	assert.Contains(t, logs.String(), "network down")
	assert.NotNil(t, r.Current().Session, "session stays until the provider confirms")
}

// ---- unconfigured ----------------------------------------------------------

func TestResolver_Unconfigured(t *testing.T) {
	r := auth.NewResolver(nil, auth.WithLogger(quietLogger()))
	ctx := context.Background()

	r.Start(ctx)

	st := r.Current()
	assert.False(t, st.Loading)
	assert.Nil(t, st.Session)
	assert.Equal(t, auth.NotConfiguredMessage, r.SignIn(ctx, "a@b.co", "secret1").Error)
	assert.Equal(t, auth.NotConfiguredMessage, r.SignUp(ctx, "a@b.co", "secret1").Error)
	assert.NotPanics(t, func() { r.SignOut(ctx) })
	assert.NotPanics(t, r.Close)
}

// ---- policy & subscriptions ------------------------------------------------

func TestResolver_CustomPolicy(t *testing.T) {
	policy := auth.PolicyFunc(func(s *domain.Session) bool {
		return s != nil && s.Email == "ops@example.com"
	})
	r := startedResolver(t, newFakeProvider(), auth.WithPolicy(policy))

	require.True(t, r.SignIn(context.Background(), domain.AdminEmail, "x").OK())
	assert.False(t, r.Current().IsAdmin)

	require.True(t, r.SignIn(context.Background(), "ops@example.com", "x").OK())
	assert.True(t, r.Current().IsAdmin)
}

func TestResolver_Subscribe(t *testing.T) {
	r := startedResolver(t, newFakeProvider())

	var got []auth.State
	unsubscribe := r.Subscribe(func(st auth.State) { got = append(got, st) })

	require.True(t, r.SignIn(context.Background(), "hiker@example.com", "x").OK())
	r.SignOut(context.Background())
	unsubscribe()
	require.True(t, r.SignIn(context.Background(), "again@example.com", "x").OK())

	require.Len(t, got, 2)
	assert.Equal(t, "hiker@example.com", got[0].Session.Email)
	assert.Nil(t, got[1].Session)
}

func TestResolver_CloseUnsubscribesFromProvider(t *testing.T) {
	p := newFakeProvider()
	r := auth.NewResolver(p, auth.WithLogger(quietLogger()))
	r.Start(context.Background())

	r.Close()
	p.emit(sessionFor("late@example.com"))

	assert.Equal(t, 1, p.unsubscribed)
	assert.Nil(t, r.Current().Session)
}
