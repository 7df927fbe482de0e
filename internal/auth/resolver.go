// Package auth resolves the current session from an identity provider and
// derives the admin flag from a PrivilegePolicy.
package auth

import (
	"context"
	"log/slog"
	"sync"

	"github.com/DKS2424/Travel/internal/domain"
)

// IdentityProvider is the remote identity service the Resolver wraps.
// remote.Client is the production implementation.
type IdentityProvider interface {
	// ExistingSession returns the session restored at startup, or nil.
	ExistingSession(ctx context.Context) (*domain.Session, error)

	// OnSessionChange registers fn to run whenever the session changes.
	// fn receives nil after sign-out. The returned func unregisters fn.
	OnSessionChange(fn func(*domain.Session)) (unsubscribe func())

	SignInWithPassword(ctx context.Context, email, password string) error
	SignUp(ctx context.Context, email, password string) error
	SignOut(ctx context.Context) error
}

// State is a snapshot of the resolver. Session is nil when nobody is signed in.
type State struct {
	Session *domain.Session
	Loading bool
	IsAdmin bool
}

// Result is the outcome of SignIn or SignUp. An empty Error means success.
type Result struct {
	Error string
}

// OK reports whether the operation succeeded.
func (r Result) OK() bool {
	return r.Error == ""
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithPolicy replaces DefaultPolicy.
func WithPolicy(p PrivilegePolicy) Option {
	return func(r *Resolver) { r.policy = p }
}

// WithLogger sets the logger used for provider errors.
func WithLogger(l *slog.Logger) Option {
	return func(r *Resolver) { r.log = l }
}

// Resolver exposes the current session. Safe for concurrent use.
type Resolver struct {
	provider IdentityProvider
	policy   PrivilegePolicy
	log      *slog.Logger

	mu          sync.RWMutex
	state       State
	started     bool
	changed     bool // a change notification has been applied
	unsubscribe func()
	subs        map[int]func(State)
	nextSub     int
}

// NewResolver returns a Resolver over provider. A nil provider yields an
// unconfigured Resolver whose operations all fail with NotConfiguredMessage.
// The Resolver reports Loading until Start has run.
func NewResolver(provider IdentityProvider, opts ...Option) *Resolver {
	r := &Resolver{
		provider: provider,
		policy:   DefaultPolicy,
		log:      slog.Default(),
		state:    State{Loading: true},
		subs:     make(map[int]func(State)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Start subscribes to session changes and resolves the existing session.
// Loading becomes false once the existing-session check completes, whatever
// its outcome. Calling Start more than once has no effect.
func (r *Resolver) Start(ctx context.Context) {
	r.mu.Lock()
	if r.started {
		r.mu.Unlock()
		return
	}
	r.started = true
	r.mu.Unlock()

	if r.provider == nil {
		r.apply(nil, false)
		return
	}

	unsubscribe := r.provider.OnSessionChange(func(s *domain.Session) { r.apply(s, true) })
	r.mu.Lock()
	r.unsubscribe = unsubscribe
	r.mu.Unlock()

	session, err := r.provider.ExistingSession(ctx)
	if err != nil {
		r.log.ErrorContext(ctx, "error restoring session", "error", err)
		session = nil
	}
	r.apply(session, false)
}

// apply stores a new session, ends loading, recomputes IsAdmin and notifies
// subscribers. A restored session is dropped if a change notification has
// already been applied, since the notification is newer.
func (r *Resolver) apply(session *domain.Session, fromChange bool) {
	if session != nil {
		cp := *session
		session = &cp
	}

	r.mu.Lock()
	if fromChange {
		r.changed = true
	} else if r.changed {
		r.mu.Unlock()
		return
	}
	r.state = State{
		Session: session,
		Loading: false,
		IsAdmin: r.policy.IsPrivileged(session),
	}
	st := r.snapshot()
	subs := make([]func(State), 0, len(r.subs))
	for _, fn := range r.subs {
		subs = append(subs, fn)
	}
	r.mu.Unlock()

	for _, fn := range subs {
		fn(st)
	}
}

// snapshot copies the state. Callers hold r.mu.
func (r *Resolver) snapshot() State {
	st := r.state
	if st.Session != nil {
		cp := *st.Session
		st.Session = &cp
	}
	return st
}

// Current returns a copy of the current state.
func (r *Resolver) Current() State {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshot()
}

// Subscribe registers fn to receive every subsequent state. The returned func
// unregisters it.
func (r *Resolver) Subscribe(fn func(State)) (unsubscribe func()) {
	r.mu.Lock()
	id := r.nextSub
	r.nextSub++
	r.subs[id] = fn
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		delete(r.subs, id)
		r.mu.Unlock()
	}
}

// SignIn asks the provider to sign in. On success the session arrives through
// the change notification, not through the Result.
func (r *Resolver) SignIn(ctx context.Context, email, password string) Result {
	if r.provider == nil {
		return Result{Error: NotConfiguredMessage}
	}
	if err := r.provider.SignInWithPassword(ctx, email, password); err != nil {
		r.log.ErrorContext(ctx, "error logging in", "error", err)
		return Result{Error: SignInMessage(err.Error())}
	}
	return Result{}
}

// SignUp asks the provider to register a new account. Password rules are
// checked by the caller.
func (r *Resolver) SignUp(ctx context.Context, email, password string) Result {
	if r.provider == nil {
		return Result{Error: NotConfiguredMessage}
	}
	if err := r.provider.SignUp(ctx, email, password); err != nil {
		r.log.ErrorContext(ctx, "error signing up", "error", err)
		return Result{Error: SignUpMessage(err.Error())}
	}
	return Result{}
}

// SignOut asks the provider to end the session. Failures are logged only.
func (r *Resolver) SignOut(ctx context.Context) {
	if r.provider == nil {
		r.log.WarnContext(ctx, "sign out skipped", "error", NotConfiguredMessage)
		return
	}
	if err := r.provider.SignOut(ctx); err != nil {
		r.log.ErrorContext(ctx, "error logging out", "error", err)
	}
}

// Close stops listening for provider changes and drops all subscribers.
func (r *Resolver) Close() {
	r.mu.Lock()
	unsubscribe := r.unsubscribe
	r.unsubscribe = nil
	r.subs = make(map[int]func(State))
	r.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}
