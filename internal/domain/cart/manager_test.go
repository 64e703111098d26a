package cart

import (
	"testing"

	"github.com/your-org/storefront-backend/internal/storage"
)

func TestManagerReturnsSameStorePerTenant(t *testing.T) {
	m := NewManager(storage.NewMemoryBackend(), testLogger())

	a := m.Store("acme")
	b := m.Store("acme")
	if a != b {
		t.Fatal("same tenant must resolve to the same store instance")
	}

	other := m.Store("globex")
	if other == a {
		t.Fatal("distinct tenants must not share a store")
	}
}

func TestManagerIsolatesTenantCarts(t *testing.T) {
	backend := storage.NewMemoryBackend()
	m := NewManager(backend, testLogger())

	m.Store("acme").AddItem(item("p1", 1000, 5, 1))

	if got := m.Store("globex").ItemCount(); got != 0 {
		t.Fatalf("globex cart has %d items, want 0", got)
	}
	if got := m.Store("acme").ItemCount(); got != 1 {
		t.Fatalf("acme cart has %d items, want 1", got)
	}
}
