package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/microshop-io/microshop/internal/core/domain"
	"github.com/microshop-io/microshop/internal/port"
)

var ErrPaymentNotFound = errors.New("payment not found")

// PaymentService serves payment CRUD with a cache-aside store on point
// reads. There is no payment provider integration; a created payment is
// stamped and completed immediately.
type PaymentService struct {
	store port.PaymentStore
	cache port.EntityCache[*domain.Payment]
}

func NewPaymentService(store port.PaymentStore, cache port.EntityCache[*domain.Payment]) *PaymentService {
	return &PaymentService{store: store, cache: cache}
}

func (s *PaymentService) CreatePayment(ctx context.Context, payment *domain.Payment) error {
	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}
	payment.PaymentDate = time.Now()
	payment.Status = domain.PaymentStatusCompleted
	return s.store.Create(ctx, payment)
}

func (s *PaymentService) GetPayment(ctx context.Context, id string) (*domain.Payment, error) {
	payment, ok, err := s.cache.Get(ctx, id)
	if err != nil || !ok {
		return nil, err
	}
	return payment, nil
}

func (s *PaymentService) ListPayments(ctx context.Context) ([]domain.Payment, error) {
	return s.store.List(ctx)
}

func (s *PaymentService) UpdatePayment(ctx context.Context, payment *domain.Payment) error {
	if payment.ID == "" {
		return ErrPaymentNotFound
	}
	return s.cache.Put(ctx, payment.ID, payment)
}

func (s *PaymentService) DeletePayment(ctx context.Context, id string) error {
	return s.cache.Invalidate(ctx, id)
}
