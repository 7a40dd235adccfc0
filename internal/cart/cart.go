// Package cart implements the client-side shopping cart: an additive,
// per-tenant quantity map persisted in full on every mutation, independent
// of server state. The cart stores only (productId, qty) pairs, never
// prices or product metadata, so totals always reflect the live catalog at
// display time instead of a snapshot.
//
// Persistence is injected through the Storage interface rather than a
// module-level singleton, so the store is unit-testable without a real
// browser storage API and a compiled-to-wasm or SSR host can plug its own
// backend in.
package cart

import (
	"encoding/json"
	"strings"

	"github.com/archivegarage/go-storefront-backend/internal/domain"
)

// storagePrefix versions the persisted cart format. Changing the shape of
// State requires bumping this so stale entries load as empty carts.
const storagePrefix = "ag_cart_v1:"

// Storage is the minimal persistence contract the store needs. Browser
// localStorage, an in-memory map, or a file can satisfy it.
type Storage interface {
	// Get returns the raw value for key and whether it was present.
	Get(key string) (string, bool)
	// Set stores the raw value for key. Implementations should tolerate
	// failure silently (quota, private mode); the cart treats Set as
	// best-effort.
	Set(key, value string)
}

// Item is one cart entry: a product reference and its quantity (always >= 1).
type Item struct {
	ProductID int64 `json:"productId"`
	Qty       int   `json:"qty"`
}

// State is the full persisted cart payload.
type State struct {
	Items []Item `json:"items"`
}

// Product is the subset of catalog data the cart needs for reconciliation.
type Product struct {
	ID    int64
	Name  string
	Price string
	Image string
}

// Line is one reconciled cart row: a live product joined with its quantity.
type Line struct {
	Product Product
	Qty     int
}

// Store maintains one tenant's cart. It is not safe for concurrent use;
// a cart belongs to a single browsing session.
type Store struct {
	storage  Storage
	key      string
	onChange func()
}

// TenantKey derives the storage key for a tenant from its slug-based path
// ("/2170/extndd"); each tenant gets its own key so switching storefronts
// never mixes carts.
func TenantKey(slugBase string) string {
	base := strings.TrimSpace(slugBase)
	if base == "" {
		base = "/"
	}
	return storagePrefix + base
}

// New constructs a Store for the tenant identified by slugBase, persisting
// through storage. onChange, when non-nil, is invoked after every persisted
// mutation so UI counters can refresh without polling.
func New(storage Storage, slugBase string, onChange func()) *Store {
	return &Store{storage: storage, key: TenantKey(slugBase), onChange: onChange}
}

// load reads and sanitizes the persisted state. Missing or corrupt payloads
// come back as an empty cart; entries with non-positive product ids are
// dropped and quantities floored at 1.
func (s *Store) load() State {
	raw, ok := s.storage.Get(s.key)
	if !ok || raw == "" {
		return State{Items: []Item{}}
	}
	var st State
	if err := json.Unmarshal([]byte(raw), &st); err != nil || st.Items == nil {
		return State{Items: []Item{}}
	}
	items := make([]Item, 0, len(st.Items))
	for _, it := range st.Items {
		if it.ProductID <= 0 {
			continue
		}
		if it.Qty < 1 {
			it.Qty = 1
		}
		items = append(items, it)
	}
	return State{Items: items}
}

// save persists the entire state and broadcasts the change.
func (s *Store) save(st State) {
	if b, err := json.Marshal(st); err == nil {
		s.storage.Set(s.key, string(b))
	}
	if s.onChange != nil {
		s.onChange()
	}
}

// Items returns the current cart entries.
func (s *Store) Items() []Item {
	return s.load().Items
}

// Add merges qty into the existing entry for productID (sum, not replace)
// or inserts a new entry. Quantities below 1 count as 1. A non-positive
// productID is ignored.
func (s *Store) Add(productID int64, qty int) {
	if productID <= 0 {
		return
	}
	if qty < 1 {
		qty = 1
	}
	st := s.load()
	for i := range st.Items {
		if st.Items[i].ProductID == productID {
			st.Items[i].Qty += qty
			s.save(st)
			return
		}
	}
	st.Items = append(st.Items, Item{ProductID: productID, Qty: qty})
	s.save(st)
}

// Remove deletes the entry for productID entirely.
func (s *Store) Remove(productID int64) {
	st := s.load()
	items := st.Items[:0]
	for _, it := range st.Items {
		if it.ProductID != productID {
			items = append(items, it)
		}
	}
	st.Items = items
	s.save(st)
}

// SetQty replaces the quantity for an existing entry, floored at 1. It is a
// no-op when the product is not in the cart.
func (s *Store) SetQty(productID int64, qty int) {
	if qty < 1 {
		qty = 1
	}
	st := s.load()
	for i := range st.Items {
		if st.Items[i].ProductID == productID {
			st.Items[i].Qty = qty
			s.save(st)
			return
		}
	}
}

// Clear empties the cart. Called after a successful order submission.
func (s *Store) Clear() {
	s.save(State{Items: []Item{}})
}

// Count returns the sum of all quantities.
func (s *Store) Count() int {
	total := 0
	for _, it := range s.load().Items {
		total += it.Qty
	}
	return total
}

// Reconcile joins the stored entries against a live product list, silently
// dropping entries whose product no longer exists there (removed, sold out
// of the feed, or belonging to a different tenant context), and returns the
// surviving lines plus the running total computed from each product's
// derived numeric price times quantity.
func (s *Store) Reconcile(products []Product) ([]Line, int) {
	byID := make(map[int64]Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	var (
		lines []Line
		total int
	)
	for _, it := range s.load().Items {
		p, ok := byID[it.ProductID]
		if !ok {
			continue
		}
		lines = append(lines, Line{Product: p, Qty: it.Qty})
		total += domain.PriceDigits(p.Price) * it.Qty
	}
	return lines, total
}
