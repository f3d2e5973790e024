package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/microshop-io/microshop/internal/core/domain"
)

type OrderMySQL struct {
	db *sql.DB
}

func NewOrderMySQL(db *sql.DB) *OrderMySQL {
	return &OrderMySQL{db: db}
}

// Line items are stored as a JSON array in a single column; the list is
// small, order-preserving and never queried by element.
func (s *OrderMySQL) Create(ctx context.Context, order *domain.Order) error {
	productIDs, err := json.Marshal(order.ProductIDs)
	if err != nil {
		return fmt.Errorf("encode product ids: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO orders (id, user_id, product_ids, total_price, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		order.ID, order.UserID, productIDs, nullDecimal(order.TotalPrice),
		order.Status, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

func (s *OrderMySQL) Get(ctx context.Context, id string) (*domain.Order, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, product_ids, total_price, status, created_at, updated_at
		FROM orders WHERE id = ?`, id)

	order, err := scanOrder(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query order: %w", err)
	}
	return order, nil
}

func (s *OrderMySQL) List(ctx context.Context) ([]domain.Order, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, product_ids, total_price, status, created_at, updated_at
		FROM orders`)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		order, err := scanOrder(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, *order)
	}
	return orders, rows.Err()
}

func (s *OrderMySQL) Update(ctx context.Context, order *domain.Order) error {
	productIDs, err := json.Marshal(order.ProductIDs)
	if err != nil {
		return fmt.Errorf("encode product ids: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		UPDATE orders
		SET user_id = ?, product_ids = ?, total_price = ?, status = ?, updated_at = ?
		WHERE id = ?`,
		order.UserID, productIDs, nullDecimal(order.TotalPrice),
		order.Status, order.UpdatedAt, order.ID,
	)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	return nil
}

func (s *OrderMySQL) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM orders WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	return nil
}

func scanOrder(scan func(dest ...any) error) (*domain.Order, error) {
	var order domain.Order
	var productIDs []byte
	var total decimal.NullDecimal
	if err := scan(&order.ID, &order.UserID, &productIDs, &total,
		&order.Status, &order.CreatedAt, &order.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(productIDs, &order.ProductIDs); err != nil {
		return nil, fmt.Errorf("decode product ids: %w", err)
	}
	if total.Valid {
		order.TotalPrice = &total.Decimal
	}
	return &order, nil
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}
