package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/microshop-io/microshop/internal/core/domain"
	"github.com/microshop-io/microshop/internal/port"
)

var (
	ErrInventoryNotFound   = errors.New("inventory record not found")
	ErrUnknownProduct      = errors.New("product does not exist")
	ErrProductUnverifiable = errors.New("product service unreachable")
)

// InventoryService serves inventory CRUD with a cache-aside store on point
// reads. Creating a record first verifies the product exists through the
// remote product lookup; the derived in-stock flag is recomputed from the
// quantity on every create and update via the domain setter.
type InventoryService struct {
	store  port.InventoryStore
	cache  port.EntityCache[*domain.Inventory]
	lookup port.RemoteLookup
}

func NewInventoryService(store port.InventoryStore, cache port.EntityCache[*domain.Inventory], lookup port.RemoteLookup) *InventoryService {
	return &InventoryService{store: store, cache: cache, lookup: lookup}
}

func (s *InventoryService) CreateInventory(ctx context.Context, inv *domain.Inventory) error {
	outcome := s.lookup.LookupProduct(ctx, inv.ProductID)
	switch outcome.Status {
	case domain.LookupFound:
	case domain.LookupNotFound:
		return fmt.Errorf("%w: %s", ErrUnknownProduct, inv.ProductID)
	default:
		return fmt.Errorf("%w: %v", ErrProductUnverifiable, outcome.Cause)
	}

	if inv.ID == "" {
		inv.ID = uuid.New().String()
	}
	inv.SetQuantity(inv.Quantity)
	return s.store.Create(ctx, inv)
}

func (s *InventoryService) GetInventory(ctx context.Context, id string) (*domain.Inventory, error) {
	inv, ok, err := s.cache.Get(ctx, id)
	if err != nil || !ok {
		return nil, err
	}
	return inv, nil
}

func (s *InventoryService) GetInventoryByProductID(ctx context.Context, productID string) (*domain.Inventory, error) {
	return s.store.GetByProductID(ctx, productID)
}

func (s *InventoryService) ListInventories(ctx context.Context) ([]domain.Inventory, error) {
	return s.store.List(ctx)
}

func (s *InventoryService) UpdateInventory(ctx context.Context, inv *domain.Inventory) error {
	if inv.ID == "" {
		return ErrInventoryNotFound
	}
	inv.SetQuantity(inv.Quantity)
	return s.cache.Put(ctx, inv.ID, inv)
}

func (s *InventoryService) DeleteInventory(ctx context.Context, id string) error {
	return s.cache.Invalidate(ctx, id)
}

// IsInStock reports whether the product has stock on hand; unknown products
// report false.
func (s *InventoryService) IsInStock(ctx context.Context, productID string) (bool, error) {
	inv, err := s.store.GetByProductID(ctx, productID)
	if err != nil {
		return false, err
	}
	if inv == nil {
		return false, nil
	}
	return inv.InStock, nil
}
