// internal/domain/cart/manager.go
package cart

import (
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/storage"
)

// Manager creates exactly one Store per tenant slug for the lifetime of
// the process and hands it to every consumer, so all presentation
// surfaces for a tenant observe the same state.
type Manager struct {
	backend storage.Backend
	logger  *logrus.Logger

	mu     sync.Mutex
	stores map[string]*Store
}

// NewManager creates a cart manager over the given storage backend
func NewManager(backend storage.Backend, logger *logrus.Logger) *Manager {
	return &Manager{
		backend: backend,
		logger:  logger,
		stores:  make(map[string]*Store),
	}
}

// Store returns the tenant's cart store, creating and loading it on first
// use
func (m *Manager) Store(tenantSlug string) *Store {
	m.mu.Lock()
	if s, ok := m.stores[tenantSlug]; ok {
		m.mu.Unlock()
		return s
	}
	m.mu.Unlock()

	// NewStore reads storage; keep that outside the manager lock so a slow
	// backend for one tenant does not stall the others.
	s := NewStore(tenantSlug, m.backend, m.logger)

	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.stores[tenantSlug]; ok {
		return existing
	}
	m.stores[tenantSlug] = s
	return s
}
