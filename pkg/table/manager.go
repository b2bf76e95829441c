package table

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/aretw0/tableau"
	"github.com/aretw0/tableau/internal/logging"
	"github.com/aretw0/tableau/pkg/domain"
	"github.com/aretw0/tableau/pkg/ports"
)

// Factory builds a new table for the given ID.
type Factory func(id string) (*tableau.Table, error)

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager orchestrates table access, ensuring events for one table never interleave.
// It uses Reference Counting to garbage collect unused locks.
type Manager struct {
	factory Factory

	mu     sync.Mutex              // Global lock for the maps
	tables map[string]*tableau.Table
	locks  map[string]*lockEntry

	locker  ports.DistributedLocker // Optional distributed locker
	lockTTL time.Duration
	logger  *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLockTTL sets the expiry of distributed locks (default 30s).
func WithLockTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		m.lockTTL = ttl
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a new Table Manager that builds tables with factory.
func NewManager(factory Factory, opts ...Option) *Manager {
	m := &Manager{
		factory: factory,
		tables:  make(map[string]*tableau.Table),
		locks:   make(map[string]*lockEntry),
		lockTTL: 30 * time.Second,
		logger:  logging.NewNop(), // Default to no-op
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release(id) after unlocking.
func (m *Manager) acquire(id string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[id]
	if !exists {
		entry = &lockEntry{}
		m.locks[id] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (m *Manager) release(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[id]
	if !exists {
		return
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, id)
	}
}

// Create builds a new table, replacing nothing: it fails if the ID is taken.
func (m *Manager) Create(ctx context.Context, id string) (*tableau.Table, error) {
	var created *tableau.Table
	err := m.withLock(ctx, id, func(ctx context.Context) error {
		m.mu.Lock()
		_, exists := m.tables[id]
		m.mu.Unlock()
		if exists {
			return fmt.Errorf("%w: table %q", domain.ErrDuplicateID, id)
		}

		t, err := m.factory(id)
		if err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}

		m.mu.Lock()
		m.tables[id] = t
		m.mu.Unlock()
		created = t
		m.logger.Info("table created", "table", id)
		return nil
	})
	return created, err
}

// GetOrCreate returns the table for id, creating it if needed.
func (m *Manager) GetOrCreate(ctx context.Context, id string) (*tableau.Table, error) {
	if t, err := m.get(id); err == nil {
		return t, nil
	}
	t, err := m.Create(ctx, id)
	if err != nil {
		// Lost a creation race: the table now exists.
		if existing, getErr := m.get(id); getErr == nil {
			return existing, nil
		}
		return nil, err
	}
	return t, nil
}

// Delete removes the table.
func (m *Manager) Delete(ctx context.Context, id string) error {
	return m.withLock(ctx, id, func(ctx context.Context) error {
		m.mu.Lock()
		defer m.mu.Unlock()
		if _, ok := m.tables[id]; !ok {
			return fmt.Errorf("%w: %q", domain.ErrTableNotFound, id)
		}
		delete(m.tables, id)
		return nil
	})
}

// List returns the IDs of the live tables, sorted.
func (m *Manager) List() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := make([]string, 0, len(m.tables))
	for id := range m.tables {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// WithTable executes fn with exclusive access to the table id.
// It returns domain.ErrTableNotFound if the table does not exist.
func (m *Manager) WithTable(ctx context.Context, id string, fn func(context.Context, *tableau.Table) error) error {
	return m.withLock(ctx, id, func(ctx context.Context) error {
		t, err := m.get(id)
		if err != nil {
			return err
		}
		return fn(ctx, t)
	})
}

func (m *Manager) get(id string) (*tableau.Table, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tables[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrTableNotFound, id)
	}
	return t, nil
}

// withLock executes a function while holding the lock for the table.
func (m *Manager) withLock(ctx context.Context, id string, fn func(context.Context) error) error {
	entry := m.acquire(id)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(id)
	}()

	// Distributed Locking
	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, id, m.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				m.logger.Warn("Failed to release distributed lock (will expire via TTL)",
					"table", id,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}
