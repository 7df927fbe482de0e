package remote

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/DKS2424/Travel/internal/domain"
)

// SessionStore persists the signed-in session between calls. Load returns
// nil, nil when nothing is stored.
type SessionStore interface {
	Load() (*domain.Session, error)
	Save(s *domain.Session) error
	Clear() error
}

// MemorySessionStore keeps the session for the life of the process.
type MemorySessionStore struct {
	mu sync.Mutex
	s  *domain.Session
}

// NewMemorySessionStore returns an empty in-memory store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{}
}

func (m *MemorySessionStore) Load() (*domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.s == nil {
		return nil, nil
	}
	cp := *m.s
	return &cp, nil
}

func (m *MemorySessionStore) Save(s *domain.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s == nil {
		m.s = nil
		return nil
	}
	cp := *s
	m.s = &cp
	return nil
}

func (m *MemorySessionStore) Clear() error {
	return m.Save(nil)
}

// sessionFile is the on-disk YAML layout of a FileSessionStore.
type sessionFile struct {
	UserID      string    `yaml:"user_id"`
	Email       string    `yaml:"email"`
	AccessToken string    `yaml:"access_token"`
	ExpiresAt   time.Time `yaml:"expires_at,omitempty"`
}

// FileSessionStore keeps the session in a YAML file readable only by the
// current user, so a CLI stays signed in across runs.
type FileSessionStore struct {
	Path string
}

// DefaultSessionPath returns the session file under the user config dir.
func DefaultSessionPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("remote.DefaultSessionPath: %w", err)
	}
	return filepath.Join(dir, "trekzone", "session.yaml"), nil
}

func (f FileSessionStore) Load() (*domain.Session, error) {
	data, err := os.ReadFile(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("remote.FileSessionStore.Load: %w", err)
	}

	var sf sessionFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("remote.FileSessionStore.Load: parse %s: %w", f.Path, err)
	}
	id, err := uuid.Parse(sf.UserID)
	if err != nil || sf.Email == "" || sf.AccessToken == "" {
		// A damaged file is treated as signed out.
		return nil, nil
	}
	return &domain.Session{
		UserID:      id,
		Email:       sf.Email,
		AccessToken: sf.AccessToken,
		ExpiresAt:   sf.ExpiresAt,
	}, nil
}

func (f FileSessionStore) Save(s *domain.Session) error {
	if s == nil {
		return f.Clear()
	}
	data, err := yaml.Marshal(sessionFile{
		UserID:      s.UserID.String(),
		Email:       s.Email,
		AccessToken: s.AccessToken,
		ExpiresAt:   s.ExpiresAt,
	})
	if err != nil {
		return fmt.Errorf("remote.FileSessionStore.Save: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o700); err != nil {
		return fmt.Errorf("remote.FileSessionStore.Save: %w", err)
	}
	if err := os.WriteFile(f.Path, data, 0o600); err != nil {
		return fmt.Errorf("remote.FileSessionStore.Save: %w", err)
	}
	// WriteFile only applies the mode when it creates the file.
	if err := os.Chmod(f.Path, 0o600); err != nil {
		return fmt.Errorf("remote.FileSessionStore.Save: chmod: %w", err)
	}
	return nil
}

func (f FileSessionStore) Clear() error {
	if err := os.Remove(f.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remote.FileSessionStore.Clear: %w", err)
	}
	return nil
}
