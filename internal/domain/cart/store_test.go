package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/storage"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func newTestStore(t *testing.T) (*Store, *storage.MemoryBackend) {
	t.Helper()
	backend := storage.NewMemoryBackend()
	return NewStore("acme", backend, testLogger()), backend
}

func item(productID string, price int64, ceiling, quantity int) LineItem {
	return LineItem{
		LineID:       productID + "-1",
		ProductID:    productID,
		DisplayName:  "Product " + productID,
		Slug:         "product-" + productID,
		UnitPrice:    price,
		Quantity:     quantity,
		StockCeiling: ceiling,
	}
}

func TestAddItemMergesByProduct(t *testing.T) {
	s, _ := newTestStore(t)

	s.AddItem(item("p1", 1000, 5, 1))
	snap := s.Snapshot()
	if len(snap.Items) != 1 || snap.Items[0].Quantity != 1 {
		t.Fatalf("after first add: items = %#v, want one line with quantity 1", snap.Items)
	}
	if snap.Subtotal != 1000 {
		t.Fatalf("subtotal = %d, want 1000", snap.Subtotal)
	}
	if !snap.IsOpen {
		t.Fatal("cart should open after a successful add")
	}

	s.AddItem(item("p1", 1000, 5, 3))
	snap = s.Snapshot()
	if len(snap.Items) != 1 {
		t.Fatalf("second add of same product created %d lines, want 1", len(snap.Items))
	}
	if snap.Items[0].Quantity != 4 {
		t.Fatalf("merged quantity = %d, want 4", snap.Items[0].Quantity)
	}
	if snap.Subtotal != 4000 {
		t.Fatalf("subtotal = %d, want 4000", snap.Subtotal)
	}

	// Over-increment clamps to the ceiling instead of erroring.
	s.AddItem(item("p1", 1000, 5, 5))
	snap = s.Snapshot()
	if snap.Items[0].Quantity != 5 {
		t.Fatalf("clamped quantity = %d, want 5", snap.Items[0].Quantity)
	}
	if snap.Subtotal != 5000 {
		t.Fatalf("subtotal = %d, want 5000", snap.Subtotal)
	}
}

func TestAddItemFirstSnapshotWins(t *testing.T) {
	s, _ := newTestStore(t)

	s.AddItem(item("p1", 1000, 5, 1))

	// Later candidate carries a different price and ceiling; both are
	// discarded once a line exists.
	second := item("p1", 2500, 99, 1)
	second.DisplayName = "Renamed"
	s.AddItem(second)

	got := s.Snapshot().Items[0]
	if got.UnitPrice != 1000 {
		t.Fatalf("unit price = %d, want the first snapshot's 1000", got.UnitPrice)
	}
	if got.StockCeiling != 5 {
		t.Fatalf("stock ceiling = %d, want the first snapshot's 5", got.StockCeiling)
	}
	if got.DisplayName != "Product p1" {
		t.Fatalf("display name = %q, want the first snapshot's", got.DisplayName)
	}
}

func TestAddItemDefaultsAndClampsNewLine(t *testing.T) {
	s, _ := newTestStore(t)

	// Omitted quantity defaults to 1.
	s.AddItem(item("p1", 1000, 5, 0))
	if got := s.Snapshot().Items[0].Quantity; got != 1 {
		t.Fatalf("defaulted quantity = %d, want 1", got)
	}

	// Explicit quantity above the ceiling clamps on the new-line path too.
	s.AddItem(item("p2", 500, 3, 10))
	snap := s.Snapshot()
	if snap.Items[1].Quantity != 3 {
		t.Fatalf("new line quantity = %d, want clamped 3", snap.Items[1].Quantity)
	}
}

func TestAddItemRejectsUnsellableCeiling(t *testing.T) {
	s, _ := newTestStore(t)
	s.Close()

	s.AddItem(item("p1", 1000, 0, 1))

	snap := s.Snapshot()
	if len(snap.Items) != 0 {
		t.Fatalf("items = %#v, want none for a zero stock ceiling", snap.Items)
	}
	if snap.IsOpen {
		t.Fatal("rejected add must not open the cart")
	}
}

func TestUpdateQuantityBoundsAndRemoval(t *testing.T) {
	s, _ := newTestStore(t)
	s.AddItem(item("p1", 1000, 5, 2))

	s.UpdateQuantity("p1", 4)
	if got := s.Snapshot().Items[0].Quantity; got != 4 {
		t.Fatalf("quantity = %d, want 4", got)
	}

	s.UpdateQuantity("p1", 50)
	if got := s.Snapshot().Items[0].Quantity; got != 5 {
		t.Fatalf("quantity = %d, want ceiling 5", got)
	}

	// Absent product is a no-op, not an error.
	s.UpdateQuantity("ghost", 3)
	if got := len(s.Snapshot().Items); got != 1 {
		t.Fatalf("items = %d, want 1 after no-op update", got)
	}

	s.UpdateQuantity("p1", 0)
	snap := s.Snapshot()
	if len(snap.Items) != 0 {
		t.Fatalf("items = %#v, want empty after update to zero", snap.Items)
	}
	if snap.ItemCount != 0 || snap.Subtotal != 0 {
		t.Fatalf("aggregates = %d/%d, want 0/0", snap.ItemCount, snap.Subtotal)
	}
}

func TestRemoveItemIdempotent(t *testing.T) {
	s, _ := newTestStore(t)
	s.AddItem(item("p1", 1000, 5, 1))

	s.RemoveItem("p1")
	s.RemoveItem("p1")

	if got := len(s.Snapshot().Items); got != 0 {
		t.Fatalf("items = %d, want 0 after double remove", got)
	}
}

func TestRemoveAndReAddAppendsAtEnd(t *testing.T) {
	s, _ := newTestStore(t)
	s.AddItem(item("p1", 1000, 5, 1))
	s.AddItem(item("p2", 2000, 5, 1))

	s.RemoveItem("p1")
	s.AddItem(item("p1", 1000, 5, 1))

	snap := s.Snapshot()
	if snap.Items[0].ProductID != "p2" || snap.Items[1].ProductID != "p1" {
		t.Fatalf("order = [%s %s], want re-added line at the end",
			snap.Items[0].ProductID, snap.Items[1].ProductID)
	}
}

func TestAggregateConsistency(t *testing.T) {
	s, _ := newTestStore(t)

	check := func(step string) {
		snap := s.Snapshot()
		count := 0
		var subtotal int64
		for _, it := range snap.Items {
			if it.Quantity < 1 || it.Quantity > it.StockCeiling {
				t.Fatalf("%s: line %s quantity %d outside [1, %d]",
					step, it.ProductID, it.Quantity, it.StockCeiling)
			}
			count += it.Quantity
			subtotal += it.UnitPrice * int64(it.Quantity)
		}
		if snap.ItemCount != count {
			t.Fatalf("%s: item count %d, recomputed %d", step, snap.ItemCount, count)
		}
		if snap.Subtotal != subtotal {
			t.Fatalf("%s: subtotal %d, recomputed %d", step, snap.Subtotal, subtotal)
		}
	}

	s.AddItem(item("p1", 1000, 5, 2))
	check("add p1")
	s.AddItem(item("p2", 2550, 3, 7))
	check("add p2 clamped")
	s.AddItem(item("p1", 1000, 5, 9))
	check("merge p1 clamped")
	s.UpdateQuantity("p2", 2)
	check("update p2")
	s.RemoveItem("p1")
	check("remove p1")
	s.Clear()
	check("clear")
}

func TestClearPersistsEmptyListAndKeepsVisibility(t *testing.T) {
	s, backend := newTestStore(t)
	s.AddItem(item("p1", 1000, 5, 1))

	s.Clear()

	snap := s.Snapshot()
	if len(snap.Items) != 0 {
		t.Fatalf("items = %#v, want empty", snap.Items)
	}
	if !snap.IsOpen {
		t.Fatal("clear must not touch visibility")
	}

	raw, err := backend.Read(context.Background(), StorageKey("acme"))
	if err != nil {
		t.Fatalf("persisted key missing after clear: %v", err)
	}
	items, ok := decodeItems([]byte(raw))
	if !ok {
		t.Fatalf("persisted payload unparsable: %q", raw)
	}
	if len(items) != 0 {
		t.Fatalf("persisted items = %#v, want empty list", items)
	}
}

func TestVisibilitySideEffects(t *testing.T) {
	s, _ := newTestStore(t)

	if s.IsOpen() {
		t.Fatal("cart should start closed")
	}

	s.AddItem(item("p1", 1000, 5, 1))
	if !s.IsOpen() {
		t.Fatal("add should open the cart")
	}

	s.Close()
	if s.IsOpen() {
		t.Fatal("close should hide the cart")
	}

	// Re-adding reopens regardless of prior state.
	s.AddItem(item("p1", 1000, 5, 1))
	if !s.IsOpen() {
		t.Fatal("add should reopen the cart")
	}

	s.Close()
	s.Open()
	if !s.IsOpen() {
		t.Fatal("open should show the cart")
	}
}

func TestPersistenceRoundTrip(t *testing.T) {
	backend := storage.NewMemoryBackend()
	first := NewStore("acme", backend, testLogger())

	p1 := item("p1", 1000, 5, 2)
	p1.ImageURL = "https://cdn.example.com/p1.jpg"
	first.AddItem(p1)
	first.AddItem(item("p2", 2500, 3, 1))
	want := first.Snapshot()

	// A fresh store over the same backend adopts the persisted list
	// field-for-field. Visibility is not persisted and resets to closed.
	second := NewStore("acme", backend, testLogger())
	got := second.Snapshot()

	if len(got.Items) != len(want.Items) {
		t.Fatalf("reloaded %d items, want %d", len(got.Items), len(want.Items))
	}
	for i := range want.Items {
		if got.Items[i] != want.Items[i] {
			t.Fatalf("item %d = %#v, want %#v", i, got.Items[i], want.Items[i])
		}
	}
	if got.ItemCount != want.ItemCount || got.Subtotal != want.Subtotal {
		t.Fatalf("aggregates = %d/%d, want %d/%d",
			got.ItemCount, got.Subtotal, want.ItemCount, want.Subtotal)
	}
	if got.IsOpen {
		t.Fatal("visibility must reset to closed on a fresh load")
	}
}

func TestInitWithCorruptPayloadStartsEmpty(t *testing.T) {
	backend := storage.NewMemoryBackend()
	if err := backend.Write(context.Background(), StorageKey("acme"), "{not json"); err != nil {
		t.Fatalf("seed write failed: %v", err)
	}

	s := NewStore("acme", backend, testLogger())
	if got := len(s.Snapshot().Items); got != 0 {
		t.Fatalf("items = %d, want 0 for corrupt payload", got)
	}

	// The store is still usable and persists over the corrupt value.
	s.AddItem(item("p1", 1000, 5, 1))
	raw, err := backend.Read(context.Background(), StorageKey("acme"))
	if err != nil {
		t.Fatalf("read after add failed: %v", err)
	}
	if _, ok := decodeItems([]byte(raw)); !ok {
		t.Fatalf("payload after add still unparsable: %q", raw)
	}
}

func TestLoadsLegacyBareArrayPayload(t *testing.T) {
	backend := storage.NewMemoryBackend()
	legacy := `[{"line_id":"p1-1","product_id":"p1","name":"Product p1","slug":"product-p1","unit_price":1000,"quantity":2,"stock_ceiling":5}]`
	if err := backend.Write(context.Background(), StorageKey("acme"), legacy); err != nil {
		t.Fatalf("seed write failed: %v", err)
	}

	s := NewStore("acme", backend, testLogger())
	snap := s.Snapshot()
	if len(snap.Items) != 1 || snap.Items[0].Quantity != 2 {
		t.Fatalf("legacy payload loaded as %#v, want one line with quantity 2", snap.Items)
	}
}

// failingBackend refuses reads and writes, standing in for quota-exceeded
// or unavailable storage.
type failingBackend struct{}

func (failingBackend) Read(ctx context.Context, key string) (string, error) {
	return "", errors.New("storage unavailable")
}

func (failingBackend) Write(ctx context.Context, key, value string) error {
	return errors.New("storage unavailable")
}

func (failingBackend) Remove(ctx context.Context, key string) error {
	return errors.New("storage unavailable")
}

func TestStorageFailuresNeverSurface(t *testing.T) {
	s := NewStore("acme", failingBackend{}, testLogger())

	s.AddItem(item("p1", 1000, 5, 2))
	s.UpdateQuantity("p1", 3)
	s.Clear()
	s.AddItem(item("p2", 500, 2, 1))

	snap := s.Snapshot()
	if len(snap.Items) != 1 || snap.Items[0].ProductID != "p2" {
		t.Fatalf("in-memory state = %#v, want p2 only despite failing storage", snap.Items)
	}
}

func TestSubscribePublishesOnEveryMutation(t *testing.T) {
	s, _ := newTestStore(t)

	var got []Snapshot
	unsubscribe := s.Subscribe(func(snap Snapshot) {
		got = append(got, snap)
	})

	if len(got) != 1 || len(got[0].Items) != 0 {
		t.Fatalf("subscription should deliver the current snapshot immediately, got %#v", got)
	}

	s.AddItem(item("p1", 1000, 5, 1))
	if len(got) != 2 {
		t.Fatalf("got %d notifications after add, want 2", len(got))
	}
	if got[1].ItemCount != 1 || !got[1].IsOpen {
		t.Fatalf("post-add snapshot = %#v, want one item and open", got[1])
	}

	s.Close()
	if len(got) != 3 || got[2].IsOpen {
		t.Fatalf("close should publish a closed snapshot, got %#v", got)
	}

	// No-op mutations publish nothing.
	s.RemoveItem("ghost")
	if len(got) != 3 {
		t.Fatalf("no-op remove changed notification count to %d, want 3", len(got))
	}

	unsubscribe()
	s.AddItem(item("p2", 500, 2, 1))
	if len(got) != 3 {
		t.Fatal("unsubscribed observer must not receive further snapshots")
	}
}

func TestSubscribersObserveIdenticalState(t *testing.T) {
	s, _ := newTestStore(t)

	var a, b Snapshot
	s.Subscribe(func(snap Snapshot) { a = snap })
	s.Subscribe(func(snap Snapshot) { b = snap })

	s.AddItem(item("p1", 1000, 5, 2))

	if a.ItemCount != b.ItemCount || a.Subtotal != b.Subtotal || len(a.Items) != len(b.Items) {
		t.Fatalf("observers diverged: %#v vs %#v", a, b)
	}
	if a.ItemCount != 2 || a.Subtotal != 2000 {
		t.Fatalf("observed snapshot = %#v, want count 2 subtotal 2000", a)
	}
}

func TestSnapshotIsIndependentClone(t *testing.T) {
	s, _ := newTestStore(t)
	s.AddItem(item("p1", 1000, 5, 1))

	snap := s.Snapshot()
	snap.Items[0].Quantity = 99

	if got := s.Snapshot().Items[0].Quantity; got != 1 {
		t.Fatalf("store observed a caller mutation: quantity = %d, want 1", got)
	}
}
