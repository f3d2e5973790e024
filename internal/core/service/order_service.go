package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/microshop-io/microshop/internal/core/domain"
	"github.com/microshop-io/microshop/internal/port"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrEmptyOrder    = errors.New("order has no line items")
	ErrMissingBuyer  = errors.New("order has no buyer reference")
)

// OrderService orchestrates order creation: it fans out one buyer
// validation and one stock check per distinct line item, joins the complete
// snapshot, applies the admission rules and persists admissible orders.
//
// Stock verified here is not reserved; nothing prevents it from being sold
// between admission and a later decrement.
type OrderService struct {
	store  port.OrderStore
	lookup port.RemoteLookup
	log    zerolog.Logger
}

func NewOrderService(store port.OrderStore, lookup port.RemoteLookup, log zerolog.Logger) *OrderService {
	return &OrderService{store: store, lookup: lookup, log: log}
}

// CreateOrder validates the buyer and every line item concurrently, then
// either persists the order with status CREATED or returns a
// *domain.RejectionError naming each offending part. Rejected orders are
// never persisted. Partial results are never used: the decision waits for
// every lookup to complete or time out.
func (s *OrderService) CreateOrder(ctx context.Context, userID string, productIDs []string) (*domain.Order, error) {
	if userID == "" {
		return nil, ErrMissingBuyer
	}
	if len(productIDs) == 0 {
		return nil, ErrEmptyOrder
	}

	distinct := distinctIDs(productIDs)

	// The collection buffers below are exclusively owned by this call, so
	// concurrent CreateOrder calls can never mix their snapshots.
	var buyer domain.BuyerOutcome
	checks := make([]domain.StockOutcome, len(distinct))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		buyer = s.lookup.LookupUser(ctx, userID)
	}()
	for i, pid := range distinct {
		wg.Add(1)
		go func(i int, pid string) {
			defer wg.Done()
			checks[i] = s.lookup.CheckStock(ctx, pid)
		}(i, pid)
	}
	wg.Wait()

	// Expand the per-distinct-product checks back to one outcome per line
	// item, duplicates included.
	byProduct := make(map[string]domain.StockOutcome, len(distinct))
	for _, c := range checks {
		byProduct[c.ProductID] = c
	}
	items := make([]domain.StockOutcome, len(productIDs))
	for i, pid := range productIDs {
		items[i] = byProduct[pid]
	}

	decision := Decide(buyer, items)
	if !decision.Admissible {
		s.log.Info().
			Str("user_id", userID).
			Int("line_items", len(productIDs)).
			Interface("reasons", decision.Rejected).
			Msg("order rejected")
		return nil, &domain.RejectionError{Reasons: decision.Rejected}
	}

	now := time.Now()
	order := &domain.Order{
		ID:         uuid.New().String(),
		UserID:     userID,
		ProductIDs: productIDs,
		Status:     domain.OrderStatusCreated,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if total, ok := s.priceOrder(ctx, productIDs); ok {
		order.TotalPrice = &total
	} else {
		s.log.Warn().Str("order_id", order.ID).Msg("order left unpriced: product lookup incomplete")
	}

	if err := s.store.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("persist order: %w", err)
	}
	s.log.Info().Str("order_id", order.ID).Str("user_id", userID).Msg("order created")
	return order, nil
}

// priceOrder sums the unit price of every line item through the product
// lookup capability. Pricing is best-effort: any incomplete lookup leaves
// the order unpriced rather than failing an already admitted order.
func (s *OrderService) priceOrder(ctx context.Context, productIDs []string) (decimal.Decimal, bool) {
	prices := make(map[string]decimal.Decimal)
	for _, pid := range productIDs {
		if _, ok := prices[pid]; ok {
			continue
		}
		outcome := s.lookup.LookupProduct(ctx, pid)
		if outcome.Status != domain.LookupFound {
			return decimal.Decimal{}, false
		}
		prices[pid] = outcome.Product.Price
	}

	total := decimal.Zero
	for _, pid := range productIDs {
		total = total.Add(prices[pid])
	}
	return total, true
}

// GetOrder returns (nil, nil) when the order does not exist.
func (s *OrderService) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	return s.store.Get(ctx, id)
}

func (s *OrderService) ListOrders(ctx context.Context) ([]domain.Order, error) {
	return s.store.List(ctx)
}

// UpdateOrderStatus overwrites the order's status. No transition legality
// is enforced; repeating the same status is a no-op beyond the timestamp.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, id, status string) (*domain.Order, error) {
	order, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	order.Status = status
	order.UpdatedAt = time.Now()
	if err := s.store.Update(ctx, order); err != nil {
		return nil, fmt.Errorf("update order %s: %w", id, err)
	}
	return order, nil
}

// DeleteOrder removes the order; deleting an absent order is a no-op.
func (s *OrderService) DeleteOrder(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

func distinctIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	distinct := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		distinct = append(distinct, id)
	}
	return distinct
}
