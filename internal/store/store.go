// Package store keeps an in-memory copy of the trek catalog in step with a
// remote table. Local state changes only after the remote acknowledges a
// mutation, and the list is sorted only by a full fetch.
package store

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/DKS2424/Travel/internal/domain"
)

// Table is the remote trek table. remote.Client is the production
// implementation.
type Table interface {
	Select(ctx context.Context, order domain.TrekOrder) ([]domain.Trek, error)
	Insert(ctx context.Context, trek domain.NewTrek) (domain.Trek, error)
	Update(ctx context.Context, id uuid.UUID, patch domain.TrekPatch) (domain.Trek, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Messages used when the store has no table.
const (
	NotConfiguredFetch  = "Trek store is not configured. Cannot fetch treks."
	NotConfiguredCreate = "Trek store is not configured. Cannot add trek."
	NotConfiguredUpdate = "Trek store is not configured. Cannot update trek."
	NotConfiguredDelete = "Trek store is not configured. Cannot delete trek."
)

// Fallbacks used when a failure carries no message of its own.
const (
	fallbackFetch  = "An error occurred"
	fallbackCreate = "Failed to add trek"
	fallbackUpdate = "Failed to update trek"
	fallbackDelete = "Failed to delete trek"
)

// State is a snapshot of the store.
type State struct {
	Treks   []domain.Trek
	Loading bool
	Error   string
}

// Result is the outcome of a mutation. Data is set by successful creates and
// updates.
type Result struct {
	Success bool
	Data    *domain.Trek
	Error   string
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for remote failures.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.log = l }
}

// Store is the in-memory trek collection. Remote calls are never serialized;
// the mutex guards local state only and is never held across a remote call,
// so concurrent mutations resolve in whatever order the remote answers.
type Store struct {
	table Table
	log   *slog.Logger

	mu      sync.RWMutex
	treks   []domain.Trek
	loading bool
	err     string
}

// NewStore returns an empty Store over table. A nil table yields an
// unconfigured Store. The store reports Loading until the first fetch ends.
func NewStore(table Table, opts ...Option) *Store {
	s := &Store{
		table:   table,
		log:     slog.Default(),
		treks:   []domain.Trek{},
		loading: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open returns a Store that has completed its initial fetch. A failed fetch
// is recorded in State().Error, not returned.
func Open(ctx context.Context, table Table, opts ...Option) *Store {
	s := NewStore(table, opts...)
	s.FetchAll(ctx)
	return s
}

// FetchAll replaces the list with the remote contents ordered by ascending
// start date. On failure the previous list is kept and the error recorded.
func (s *Store) FetchAll(ctx context.Context) {
	if s.table == nil {
		s.mu.Lock()
		s.err = NotConfiguredFetch
		s.loading = false
		s.mu.Unlock()
		return
	}

	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.mu.Unlock()

	treks, err := s.table.Select(ctx, domain.DefaultTrekOrder)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.log.ErrorContext(ctx, "error fetching treks", "error", err)
		s.err = errorMessage(err, fallbackFetch)
		return
	}
	if treks == nil {
		treks = []domain.Trek{}
	}
	s.treks = treks
}

// Refetch is FetchAll under the name consumers use for a manual reload.
func (s *Store) Refetch(ctx context.Context) {
	s.FetchAll(ctx)
}

// Create inserts trek remotely and, on success, appends the stored record to
// the end of the list without re-sorting.
func (s *Store) Create(ctx context.Context, trek domain.NewTrek) Result {
	if s.table == nil {
		return Result{Error: NotConfiguredCreate}
	}

	created, err := s.table.Insert(ctx, trek)
	if err != nil {
		s.log.ErrorContext(ctx, "error adding trek", "error", err)
		return Result{Error: errorMessage(err, fallbackCreate)}
	}

	s.mu.Lock()
	s.treks = append(slices.Clip(s.treks), created)
	s.mu.Unlock()

	return Result{Success: true, Data: &created}
}

// Update sends patch for id and, on success, replaces every local record with
// that id by the stored record. An id missing locally changes nothing here.
func (s *Store) Update(ctx context.Context, id uuid.UUID, patch domain.TrekPatch) Result {
	if s.table == nil {
		return Result{Error: NotConfiguredUpdate}
	}

	updated, err := s.table.Update(ctx, id, patch)
	if err != nil {
		s.log.ErrorContext(ctx, "error updating trek", "id", id, "error", err)
		return Result{Error: errorMessage(err, fallbackUpdate)}
	}

	s.mu.Lock()
	next := make([]domain.Trek, len(s.treks))
	for i, t := range s.treks {
		if t.ID == id {
			t = updated
		}
		next[i] = t
	}
	s.treks = next
	s.mu.Unlock()

	return Result{Success: true, Data: &updated}
}

// Delete removes id remotely and, on success, drops it from the list.
func (s *Store) Delete(ctx context.Context, id uuid.UUID) Result {
	if s.table == nil {
		return Result{Error: NotConfiguredDelete}
	}

	if err := s.table.Delete(ctx, id); err != nil {
		s.log.ErrorContext(ctx, "error deleting trek", "id", id, "error", err)
		return Result{Error: errorMessage(err, fallbackDelete)}
	}

	s.mu.Lock()
	s.treks = slices.DeleteFunc(slices.Clone(s.treks), func(t domain.Trek) bool { return t.ID == id })
	s.mu.Unlock()

	return Result{Success: true}
}

// State returns a copy of the current state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return State{
		Treks:   slices.Clone(s.treks),
		Loading: s.loading,
		Error:   s.err,
	}
}

// Get returns the local record with the given id.
func (s *Store) Get(id uuid.UUID) (domain.Trek, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := slices.IndexFunc(s.treks, func(t domain.Trek) bool { return t.ID == id })
	if i < 0 {
		return domain.Trek{}, false
	}
	return s.treks[i], true
}

// Summary returns dashboard totals over the local list.
func (s *Store) Summary() domain.Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.Summarize(s.treks)
}

// messageError is implemented by structured remote errors whose message is
// meant for people.
type messageError interface {
	error
	UserMessage() string
}

// errorMessage reduces err to the text reported to callers.
func errorMessage(err error, fallback string) string {
	var msg string
	var me messageError
	if errors.As(err, &me) {
		msg = me.UserMessage()
	} else {
		msg = err.Error()
	}
	if msg == "" {
		return fallback
	}
	return msg
}
