package port

import (
	"context"

	"github.com/microshop-io/microshop/internal/core/domain"
)

// Stores return (nil, nil) for point reads of absent entities and treat
// Delete as an idempotent no-op when the entity is already gone.

type UserStore interface {
	Create(ctx context.Context, user *domain.User) error
	Get(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	ListByYear(ctx context.Context, year int) ([]domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id string) error
}

type ProductStore interface {
	Create(ctx context.Context, product *domain.Product) error
	Get(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
	ListByCategory(ctx context.Context, category string) ([]domain.Product, error)
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id string) error
}

type InventoryStore interface {
	Create(ctx context.Context, inv *domain.Inventory) error
	Get(ctx context.Context, id string) (*domain.Inventory, error)
	GetByProductID(ctx context.Context, productID string) (*domain.Inventory, error)
	List(ctx context.Context) ([]domain.Inventory, error)
	Update(ctx context.Context, inv *domain.Inventory) error
	Delete(ctx context.Context, id string) error
}

type OrderStore interface {
	Create(ctx context.Context, order *domain.Order) error
	Get(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context) ([]domain.Order, error)
	Update(ctx context.Context, order *domain.Order) error
	Delete(ctx context.Context, id string) error
}

type PaymentStore interface {
	Create(ctx context.Context, payment *domain.Payment) error
	Get(ctx context.Context, id string) (*domain.Payment, error)
	List(ctx context.Context) ([]domain.Payment, error)
	Update(ctx context.Context, payment *domain.Payment) error
	Delete(ctx context.Context, id string) error
}
