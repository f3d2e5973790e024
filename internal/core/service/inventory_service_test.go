package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/microshop-io/microshop/internal/cache"
	"github.com/microshop-io/microshop/internal/core/domain"
	"github.com/microshop-io/microshop/internal/port"
)

type mockInventoryStore struct {
	mu   sync.Mutex
	byID map[string]domain.Inventory
	gets int
}

func newMockInventoryStore() *mockInventoryStore {
	return &mockInventoryStore{byID: make(map[string]domain.Inventory)}
}

func (m *mockInventoryStore) Create(ctx context.Context, inv *domain.Inventory) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[inv.ID] = *inv
	return nil
}

func (m *mockInventoryStore) Get(ctx context.Context, id string) (*domain.Inventory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gets++
	inv, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	return &inv, nil
}

func (m *mockInventoryStore) GetByProductID(ctx context.Context, productID string) (*domain.Inventory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, inv := range m.byID {
		if inv.ProductID == productID {
			inv := inv
			return &inv, nil
		}
	}
	return nil, nil
}

func (m *mockInventoryStore) List(ctx context.Context) ([]domain.Inventory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Inventory, 0, len(m.byID))
	for _, inv := range m.byID {
		out = append(out, inv)
	}
	return out, nil
}

func (m *mockInventoryStore) Update(ctx context.Context, inv *domain.Inventory) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[inv.ID] = *inv
	return nil
}

func (m *mockInventoryStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.byID, id)
	return nil
}

func inventoryCache(store port.InventoryStore) port.EntityCache[*domain.Inventory] {
	return cache.New[*domain.Inventory](cache.Funcs[*domain.Inventory]{
		LoadFunc: func(ctx context.Context, key string) (*domain.Inventory, bool, error) {
			inv, err := store.Get(ctx, key)
			return inv, inv != nil, err
		},
		StoreFunc: func(ctx context.Context, key string, inv *domain.Inventory) error {
			return store.Update(ctx, inv)
		},
		DeleteFunc: store.Delete,
	})
}

func newTestInventoryService(store *mockInventoryStore, lk *mockLookup) *InventoryService {
	return NewInventoryService(store, inventoryCache(store), lk)
}

func TestCreateInventory_UnknownProduct(t *testing.T) {
	store := newMockInventoryStore()
	svc := newTestInventoryService(store, newMockLookup())

	inv := &domain.Inventory{ProductID: "ghost", Quantity: 5}
	err := svc.CreateInventory(context.Background(), inv)
	if !errors.Is(err, ErrUnknownProduct) {
		t.Fatalf("expected ErrUnknownProduct, got %v", err)
	}
	if len(store.byID) != 0 {
		t.Error("record created for unknown product")
	}
}

func TestCreateInventory_ProductServiceUnreachable(t *testing.T) {
	store := newMockInventoryStore()
	lk := newMockLookup()
	// no product registered and no way to tell: simulate unreachable by a
	// lookup that reports it
	lkUnreachable := &unreachableProductLookup{mockLookup: lk}
	svc := NewInventoryService(store, inventoryCache(store), lkUnreachable)

	err := svc.CreateInventory(context.Background(), &domain.Inventory{ProductID: "p1", Quantity: 5})
	if !errors.Is(err, ErrProductUnverifiable) {
		t.Fatalf("expected ErrProductUnverifiable, got %v", err)
	}
}

type unreachableProductLookup struct {
	*mockLookup
}

func (u *unreachableProductLookup) LookupProduct(ctx context.Context, id string) domain.ProductOutcome {
	return domain.ProductOutcome{
		ProductID: id,
		Status:    domain.LookupUnreachable,
		Cause:     errors.New("connection refused"),
	}
}

func TestCreateInventory_RecomputesInStock(t *testing.T) {
	store := newMockInventoryStore()
	lk := newMockLookup()
	lk.setPrice("p1", "1.00")
	svc := newTestInventoryService(store, lk)

	// Client claims in-stock with zero quantity; the derived flag wins.
	inv := &domain.Inventory{ProductID: "p1", Quantity: 0, InStock: true}
	if err := svc.CreateInventory(context.Background(), inv); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if inv.InStock {
		t.Error("in-stock flag not recomputed from quantity on create")
	}
}

func TestUpdateInventory_RecomputesInStock(t *testing.T) {
	store := newMockInventoryStore()
	lk := newMockLookup()
	lk.setPrice("p1", "1.00")
	svc := newTestInventoryService(store, lk)

	inv := &domain.Inventory{ProductID: "p1", Quantity: 3}
	if err := svc.CreateInventory(context.Background(), inv); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if !inv.InStock {
		t.Fatal("expected in stock after create with quantity 3")
	}

	inv.Quantity = 0
	inv.InStock = true
	if err := svc.UpdateInventory(context.Background(), inv); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	got, err := svc.GetInventory(context.Background(), inv.ID)
	if err != nil || got == nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.InStock {
		t.Error("in-stock flag not recomputed from quantity on update")
	}
}

func TestIsInStock(t *testing.T) {
	store := newMockInventoryStore()
	lk := newMockLookup()
	lk.setPrice("p1", "1.00")
	lk.setPrice("p2", "1.00")
	svc := newTestInventoryService(store, lk)

	svc.CreateInventory(context.Background(), &domain.Inventory{ProductID: "p1", Quantity: 2})
	svc.CreateInventory(context.Background(), &domain.Inventory{ProductID: "p2", Quantity: 0})

	cases := []struct {
		productID string
		want      bool
	}{
		{"p1", true},
		{"p2", false},
		{"unknown", false},
	}
	for _, tc := range cases {
		got, err := svc.IsInStock(context.Background(), tc.productID)
		if err != nil {
			t.Fatalf("IsInStock(%s) failed: %v", tc.productID, err)
		}
		if got != tc.want {
			t.Errorf("IsInStock(%s) = %v, want %v", tc.productID, got, tc.want)
		}
	}
}

func TestInventoryCache_NeverServesStaleAfterDelete(t *testing.T) {
	store := newMockInventoryStore()
	lk := newMockLookup()
	lk.setPrice("p1", "1.00")
	svc := newTestInventoryService(store, lk)

	inv := &domain.Inventory{ProductID: "p1", Quantity: 2}
	if err := svc.CreateInventory(context.Background(), inv); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// Populate the cache, then delete through the service.
	if got, _ := svc.GetInventory(context.Background(), inv.ID); got == nil {
		t.Fatal("expected record before delete")
	}
	if err := svc.DeleteInventory(context.Background(), inv.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if got, _ := svc.GetInventory(context.Background(), inv.ID); got != nil {
		t.Error("cache served a deleted record")
	}
}

func TestInventoryCache_PointReadsSkipStore(t *testing.T) {
	store := newMockInventoryStore()
	lk := newMockLookup()
	lk.setPrice("p1", "1.00")
	svc := newTestInventoryService(store, lk)

	inv := &domain.Inventory{ProductID: "p1", Quantity: 2}
	svc.CreateInventory(context.Background(), inv)

	svc.GetInventory(context.Background(), inv.ID)
	before := store.gets
	svc.GetInventory(context.Background(), inv.ID)
	svc.GetInventory(context.Background(), inv.ID)
	if store.gets != before {
		t.Errorf("repeated point reads hit the store %d more times", store.gets-before)
	}
}
