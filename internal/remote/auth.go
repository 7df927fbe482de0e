package remote

import (
	"context"
	"net/http"
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/DKS2424/Travel/internal/api"
	"github.com/DKS2424/Travel/internal/domain"
)

// ExistingSession returns the stored session if the service still accepts
// it. Expired or rejected sessions are cleared and reported as nil.
func (c *Client) ExistingSession(ctx context.Context) (*domain.Session, error) {
	s, err := c.sessions.Load()
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, nil
	}
	if s.Expired(time.Now()) {
		c.forget()
		return nil, nil
	}

	var u api.User
	err = c.do(ctx, request{method: http.MethodGet, path: "/auth/v1/user", auth: true}, &u)
	if IsStatus(err, http.StatusUnauthorized) {
		c.forget()
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// CurrentUser returns the signed-in user's account record.
func (c *Client) CurrentUser(ctx context.Context) (domain.User, error) {
	var u api.User
	if err := c.do(ctx, request{method: http.MethodGet, path: "/auth/v1/user", auth: true}, &u); err != nil {
		return domain.User{}, err
	}
	return u.ToDomain(), nil
}

// OnSessionChange registers fn for sign-in, sign-up and sign-out events.
func (c *Client) OnSessionChange(fn func(*domain.Session)) (unsubscribe func()) {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.listeners, id)
		c.mu.Unlock()
	}
}

// SignInWithPassword exchanges credentials for a session, stores it and
// notifies listeners.
func (c *Client) SignInWithPassword(ctx context.Context, email, password string) error {
	var resp api.Session
	body := api.Credentials{Email: openapi_types.Email(email), Password: password}
	if err := c.do(ctx, request{method: http.MethodPost, path: "/auth/v1/token", body: body}, &resp); err != nil {
		return err
	}
	s, err := resp.ToDomain()
	if err != nil {
		return err
	}
	c.establish(s)
	return nil
}

// SignUp registers an account. When the service requires email confirmation
// no session is returned and listeners are not notified.
func (c *Client) SignUp(ctx context.Context, email, password string) error {
	var resp api.Session
	body := api.Credentials{Email: openapi_types.Email(email), Password: password}
	if err := c.do(ctx, request{method: http.MethodPost, path: "/auth/v1/signup", body: body}, &resp); err != nil {
		return err
	}
	if resp.AccessToken == "" {
		return nil
	}
	s, err := resp.ToDomain()
	if err != nil {
		return err
	}
	c.establish(s)
	return nil
}

// SignOut revokes the stored token and clears it. A token the service no
// longer accepts is cleared as well; any other failure keeps the session.
func (c *Client) SignOut(ctx context.Context) error {
	s, err := c.sessions.Load()
	if err != nil {
		return err
	}
	if s != nil {
		err := c.do(ctx, request{method: http.MethodPost, path: "/auth/v1/logout", auth: true}, nil)
		if err != nil && !IsStatus(err, http.StatusUnauthorized) {
			return err
		}
	}
	c.forget()
	c.notify(nil)
	return nil
}

// ConfirmEmail marks an account's email as confirmed. Requires an admin session.
func (c *Client) ConfirmEmail(ctx context.Context, email string) (domain.User, error) {
	var u api.User
	body := api.EmailRequest{Email: openapi_types.Email(email)}
	if err := c.do(ctx, request{method: http.MethodPost, path: "/auth/v1/admin/users/confirm", body: body, auth: true}, &u); err != nil {
		return domain.User{}, err
	}
	return u.ToDomain(), nil
}

// establish stores s and notifies listeners.
func (c *Client) establish(s *domain.Session) {
	if err := c.sessions.Save(s); err != nil {
		c.log.Warn("could not persist session", "error", err)
	}
	c.notify(s)
}

// forget clears the stored session, logging persistence failures.
func (c *Client) forget() {
	if err := c.sessions.Clear(); err != nil {
		c.log.Warn("could not clear session", "error", err)
	}
}

func (c *Client) notify(s *domain.Session) {
	c.mu.Lock()
	fns := make([]func(*domain.Session), 0, len(c.listeners))
	for _, fn := range c.listeners {
		fns = append(fns, fn)
	}
	c.mu.Unlock()

	for _, fn := range fns {
		fn(s)
	}
}
