package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/DKS2424/Travel/internal/auth"
	"github.com/DKS2424/Travel/internal/domain"
)

func TestEmailPolicy(t *testing.T) {
	assert.True(t, auth.DefaultPolicy.IsPrivileged(&domain.Session{Email: domain.AdminEmail}))
	assert.False(t, auth.DefaultPolicy.IsPrivileged(&domain.Session{Email: "hiker@example.com"}))
	assert.False(t, auth.DefaultPolicy.IsPrivileged(nil))
	assert.False(t, auth.EmailPolicy("").IsPrivileged(&domain.Session{Email: ""}))
}

func TestNewEmailPolicy(t *testing.T) {
	assert.Equal(t, auth.DefaultPolicy, auth.NewEmailPolicy("  "))
	assert.Equal(t, auth.EmailPolicy("ops@example.com"), auth.NewEmailPolicy(" ops@example.com "))
	assert.Equal(t, auth.EmailPolicy("ops@example.com"), auth.NewEmailPolicy("Ops@Example.COM"))
}
