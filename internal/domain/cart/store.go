// internal/domain/cart/store.go
package cart

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/storage"
)

const storageTimeout = 3 * time.Second

// Store owns the authoritative in-memory line item list for one tenant.
// Mutations are serialized by a mutex, persisted best-effort to the
// storage backend, and published synchronously to every subscriber before
// the mutation returns. No operation returns an error for ordinary
// misuse; storage failures are swallowed and the in-memory state stays
// authoritative.
type Store struct {
	tenant  string
	key     string
	backend storage.Backend
	log     *logrus.Entry

	mu      sync.Mutex
	items   []LineItem
	open    bool
	ready   bool
	subs    map[int]func(Snapshot)
	nextSub int
}

// NewStore creates the cart store for a tenant, adopting any previously
// persisted list. A missing or unparsable payload means an empty cart;
// it never fails. Write-back is gated until the initial read completes so
// an empty initial state cannot clobber a persisted cart.
func NewStore(tenantSlug string, backend storage.Backend, logger *logrus.Logger) *Store {
	s := &Store{
		tenant:  tenantSlug,
		key:     StorageKey(tenantSlug),
		backend: backend,
		log:     logger.WithField("tenant", tenantSlug),
		subs:    make(map[int]func(Snapshot)),
	}
	s.load()
	return s
}

// load reads the persisted cart once, at construction
func (s *Store) load() {
	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()

	defer func() {
		s.mu.Lock()
		s.ready = true
		s.mu.Unlock()
	}()

	raw, err := s.backend.Read(ctx, s.key)
	if err != nil {
		if err != storage.ErrNotFound {
			s.log.WithError(err).Warn("cart read failed, starting empty")
		}
		return
	}

	items, ok := decodeItems([]byte(raw))
	if !ok {
		s.log.Warn("persisted cart is unparsable, starting empty")
		return
	}

	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
}

// decodeItems accepts the versioned envelope or the legacy bare array
func decodeItems(raw []byte) ([]LineItem, bool) {
	var envelope persistedCart
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Version >= 1 {
		return envelope.Items, true
	}

	var legacy []LineItem
	if err := json.Unmarshal(raw, &legacy); err == nil {
		return legacy, true
	}

	return nil, false
}

// AddItem merges the candidate into an existing line for the same product
// or appends a new one, clamped to the stock ceiling, and opens the cart.
// On the merge path the existing line's snapshot wins: price, ceiling and
// display fields of the candidate are discarded. A candidate whose stock
// ceiling is below 1 is rejected as a no-op, since any quantity for it
// would violate the quantity bounds.
func (s *Store) AddItem(candidate LineItem) {
	quantity := candidate.Quantity
	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()

	merged := false
	for i := range s.items {
		if s.items[i].ProductID == candidate.ProductID {
			next := s.items[i].Quantity + quantity
			if next > s.items[i].StockCeiling {
				next = s.items[i].StockCeiling
			}
			s.items[i].Quantity = next
			merged = true
			break
		}
	}

	if !merged {
		if candidate.StockCeiling < 1 {
			s.mu.Unlock()
			return
		}
		if quantity > candidate.StockCeiling {
			quantity = candidate.StockCeiling
		}
		candidate.Quantity = quantity
		s.items = append(s.items, candidate)
	}

	s.open = true
	s.commit(true)
}

// RemoveItem removes the line matching productID. Removing an absent
// product is a no-op, so the operation is idempotent.
func (s *Store) RemoveItem(productID string) {
	s.mu.Lock()

	if !s.removeLocked(productID) {
		s.mu.Unlock()
		return
	}

	s.commit(true)
}

// UpdateQuantity sets the line's quantity, clamped to its stock ceiling.
// A quantity at or below zero removes the line. Updating an absent
// product is a no-op.
func (s *Store) UpdateQuantity(productID string, quantity int) {
	s.mu.Lock()

	if quantity <= 0 {
		if !s.removeLocked(productID) {
			s.mu.Unlock()
			return
		}
		s.commit(true)
		return
	}

	for i := range s.items {
		if s.items[i].ProductID == productID {
			if quantity > s.items[i].StockCeiling {
				quantity = s.items[i].StockCeiling
			}
			s.items[i].Quantity = quantity
			s.commit(true)
			return
		}
	}

	s.mu.Unlock()
}

// Clear empties the cart. Visibility is untouched; the persisted payload
// becomes an empty list rather than a deleted key.
func (s *Store) Clear() {
	s.mu.Lock()
	s.items = nil
	s.commit(true)
}

// Open shows the cart overlay
func (s *Store) Open() {
	s.mu.Lock()
	s.open = true
	s.commit(false)
}

// Close hides the cart overlay
func (s *Store) Close() {
	s.mu.Lock()
	s.open = false
	s.commit(false)
}

// Snapshot returns a consistent read of the current cart. The item slice
// is a clone; callers can hold it without observing later mutations.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Items returns the ordered line item list, a clone
func (s *Store) Items() []LineItem {
	return s.Snapshot().Items
}

// ItemCount returns the sum of quantities over all lines
func (s *Store) ItemCount() int {
	return s.Snapshot().ItemCount
}

// Subtotal returns the sum of unit price times quantity over all lines
func (s *Store) Subtotal() int64 {
	return s.Snapshot().Subtotal
}

// IsOpen reports whether the cart overlay is shown
func (s *Store) IsOpen() bool {
	return s.Snapshot().IsOpen
}

// Subscribe registers fn to receive the current snapshot immediately and
// again after every mutation, synchronously. The returned function
// unsubscribes.
func (s *Store) Subscribe(fn func(Snapshot)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	snap := s.snapshotLocked()
	s.mu.Unlock()

	fn(snap)

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// removeLocked splices out the line for productID, reporting whether a
// line was removed. Caller holds the mutex.
func (s *Store) removeLocked(productID string) bool {
	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return true
		}
	}
	return false
}

// snapshotLocked builds a Snapshot from the current list. Caller holds
// the mutex.
func (s *Store) snapshotLocked() Snapshot {
	items := make([]LineItem, len(s.items))
	copy(items, s.items)

	snap := Snapshot{
		Items:  items,
		IsOpen: s.open,
	}
	for _, item := range s.items {
		snap.ItemCount += item.Quantity
		snap.Subtotal += item.UnitPrice * int64(item.Quantity)
	}
	return snap
}

// commit finishes a mutation: it serializes state and collects the
// subscriber list under the mutex, releases it, then runs the best-effort
// write-back and notifies every subscriber with the same snapshot. Caller
// holds the mutex on entry; commit releases it.
func (s *Store) commit(persist bool) {
	snap := s.snapshotLocked()
	persist = persist && s.ready

	var payload []byte
	if persist {
		payload, _ = json.Marshal(persistedCart{Version: schemaVersion, Items: s.items})
	}

	subs := make([]func(Snapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	if persist {
		s.writeBack(payload)
	}

	for _, fn := range subs {
		fn(snap)
	}
}

// writeBack is the swallow-errors persistence boundary: a failed write
// never escapes a mutation, the next mutation's write-back reconciles
// storage if this one failed transiently.
func (s *Store) writeBack(payload []byte) {
	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()

	if err := s.backend.Write(ctx, s.key, string(payload)); err != nil {
		s.log.WithError(err).Warn("cart write-back failed, in-memory state remains authoritative")
	}
}
