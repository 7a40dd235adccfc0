package cart

import (
	"testing"
)

// memStorage is an in-memory Storage for tests.
type memStorage struct {
	m map[string]string
}

func newMemStorage() *memStorage { return &memStorage{m: make(map[string]string)} }

func (s *memStorage) Get(key string) (string, bool) {
	v, ok := s.m[key]
	return v, ok
}

func (s *memStorage) Set(key, value string) { s.m[key] = value }

func TestTenantKey(t *testing.T) {
	if got := TenantKey("/2170/extndd"); got != "ag_cart_v1:/2170/extndd" {
		t.Fatalf("TenantKey = %q", got)
	}
	if got := TenantKey(""); got != "ag_cart_v1:/" {
		t.Fatalf("empty base: %q", got)
	}
}

func TestAdd_MergesQuantities(t *testing.T) {
	st := New(newMemStorage(), "/shop", nil)

	st.Add(10, 1)
	st.Add(10, 2) // additive, not replace
	st.Add(11, 0) // floors to 1
	st.Add(0, 5)  // invalid id ignored

	items := st.Items()
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	if items[0].ProductID != 10 || items[0].Qty != 3 {
		t.Fatalf("merged entry: %+v", items[0])
	}
	if items[1].ProductID != 11 || items[1].Qty != 1 {
		t.Fatalf("floored entry: %+v", items[1])
	}
	if st.Count() != 4 {
		t.Fatalf("Count = %d, want 4", st.Count())
	}
}

func TestPersistenceRoundTrip(t *testing.T) {
	storage := newMemStorage()

	first := New(storage, "/shop", nil)
	first.Add(10, 2)
	first.Add(11, 1)

	// A new store over the same storage sees the same cart.
	second := New(storage, "/shop", nil)
	if second.Count() != 3 {
		t.Fatalf("Count after reload = %d, want 3", second.Count())
	}

	// A different tenant base gets an independent cart.
	other := New(storage, "/other", nil)
	if other.Count() != 0 {
		t.Fatalf("other tenant cart leaked: %d", other.Count())
	}
}

func TestLoad_SanitizesCorruptState(t *testing.T) {
	storage := newMemStorage()
	storage.Set(TenantKey("/shop"), `{"items":[{"productId":-1,"qty":5},{"productId":7,"qty":0},{"productId":8,"qty":2}]}`)

	st := New(storage, "/shop", nil)
	items := st.Items()
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2 (negative id dropped)", len(items))
	}
	if items[0].ProductID != 7 || items[0].Qty != 1 {
		t.Fatalf("qty not floored: %+v", items[0])
	}

	storage.Set(TenantKey("/shop"), `{broken`)
	if n := st.Count(); n != 0 {
		t.Fatalf("corrupt payload should load as empty cart, got %d", n)
	}
}

func TestSetQty_RemoveAndClear(t *testing.T) {
	st := New(newMemStorage(), "/shop", nil)
	st.Add(10, 2)
	st.Add(11, 1)

	st.SetQty(10, 5)
	st.SetQty(10, 0)  // floors to 1
	st.SetQty(99, 3)  // absent: no-op, not an insert
	st.Remove(11)

	items := st.Items()
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1", len(items))
	}
	if items[0].ProductID != 10 || items[0].Qty != 1 {
		t.Fatalf("unexpected item: %+v", items[0])
	}

	st.Clear()
	if st.Count() != 0 {
		t.Fatalf("Count after Clear = %d", st.Count())
	}
}

func TestOnChange_FiresPerMutation(t *testing.T) {
	var fired int
	st := New(newMemStorage(), "/shop", func() { fired++ })

	st.Add(10, 1)   // 1
	st.SetQty(10, 2) // 2
	st.Remove(10)   // 3
	st.Clear()      // 4

	if fired != 4 {
		t.Fatalf("onChange fired %d times, want 4", fired)
	}
}

func TestReconcile(t *testing.T) {
	st := New(newMemStorage(), "/shop", nil)
	st.Add(10, 2)
	st.Add(11, 1)
	st.Add(12, 1) // will vanish from the live catalog

	live := []Product{
		{ID: 10, Name: "JACKET", Price: "5 000 ₽"},
		{ID: 11, Name: "BOOTS", Price: "12 000 ₽"},
	}

	lines, total := st.Reconcile(live)
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2 (missing product dropped)", len(lines))
	}
	if lines[0].Product.ID != 10 || lines[0].Qty != 2 {
		t.Fatalf("line 0: %+v", lines[0])
	}
	if want := 5000*2 + 12000; total != want {
		t.Fatalf("total = %d, want %d", total, want)
	}

	// Reconcile is read-only: the vanished entry stays stored and would
	// resurface if the product came back.
	if st.Count() != 4 {
		t.Fatalf("Reconcile mutated the cart: %d", st.Count())
	}
}
