package auth

import (
	"strings"

	"github.com/DKS2424/Travel/internal/domain"
)

// PrivilegePolicy decides whether a session may use admin-only operations.
type PrivilegePolicy interface {
	IsPrivileged(s *domain.Session) bool
}

// PolicyFunc adapts a plain function to PrivilegePolicy.
type PolicyFunc func(s *domain.Session) bool

// IsPrivileged calls f(s).
func (f PolicyFunc) IsPrivileged(s *domain.Session) bool {
	return f(s)
}

// EmailPolicy grants privilege to exactly one email address.
// The comparison is exact; a nil session is never privileged.
type EmailPolicy string

// DefaultPolicy treats domain.AdminEmail as the only admin.
const DefaultPolicy = EmailPolicy(domain.AdminEmail)

// IsPrivileged reports whether s belongs to the policy's address.
func (p EmailPolicy) IsPrivileged(s *domain.Session) bool {
	return s != nil && p != "" && s.Email == string(p)
}

// NewEmailPolicy returns an EmailPolicy for email, or DefaultPolicy when
// email is blank. The address is lowercased to match how accounts are stored.
func NewEmailPolicy(email string) EmailPolicy {
	if email = strings.TrimSpace(email); email == "" {
		return DefaultPolicy
	}
	return EmailPolicy(strings.ToLower(email))
}
