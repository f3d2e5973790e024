package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/microshop-io/microshop/internal/core/domain"
	"github.com/microshop-io/microshop/internal/port"
)

var ErrProductNotFound = errors.New("product not found")

// ProductService is plain store-backed CRUD; product reads are cheap enough
// that no cache fronts them.
type ProductService struct {
	store port.ProductStore
}

func NewProductService(store port.ProductStore) *ProductService {
	return &ProductService{store: store}
}

func (s *ProductService) CreateProduct(ctx context.Context, product *domain.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	return s.store.Create(ctx, product)
}

func (s *ProductService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	return s.store.Get(ctx, id)
}

func (s *ProductService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.store.List(ctx)
}

func (s *ProductService) ListProductsByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	return s.store.ListByCategory(ctx, category)
}

func (s *ProductService) UpdateProduct(ctx context.Context, product *domain.Product) error {
	if product.ID == "" {
		return ErrProductNotFound
	}
	return s.store.Update(ctx, product)
}

func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}
