package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/microshop-io/microshop/internal/core/domain"
)

type PaymentMySQL struct {
	db *sql.DB
}

func NewPaymentMySQL(db *sql.DB) *PaymentMySQL {
	return &PaymentMySQL{db: db}
}

func (s *PaymentMySQL) Create(ctx context.Context, payment *domain.Payment) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO payments (id, order_id, amount, status, payment_date)
		VALUES (?, ?, ?, ?, ?)`,
		payment.ID, payment.OrderID, payment.Amount, payment.Status, payment.PaymentDate,
	)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

func (s *PaymentMySQL) Get(ctx context.Context, id string) (*domain.Payment, error) {
	var payment domain.Payment
	err := s.db.QueryRowContext(ctx, `
		SELECT id, order_id, amount, status, payment_date
		FROM payments WHERE id = ?`, id,
	).Scan(&payment.ID, &payment.OrderID, &payment.Amount, &payment.Status, &payment.PaymentDate)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query payment: %w", err)
	}
	return &payment, nil
}

func (s *PaymentMySQL) List(ctx context.Context) ([]domain.Payment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, order_id, amount, status, payment_date FROM payments`)
	if err != nil {
		return nil, fmt.Errorf("query payments: %w", err)
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		var payment domain.Payment
		if err := rows.Scan(&payment.ID, &payment.OrderID, &payment.Amount, &payment.Status, &payment.PaymentDate); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		payments = append(payments, payment)
	}
	return payments, rows.Err()
}

func (s *PaymentMySQL) Update(ctx context.Context, payment *domain.Payment) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO payments (id, order_id, amount, status, payment_date)
		VALUES (?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			order_id = VALUES(order_id), amount = VALUES(amount),
			status = VALUES(status), payment_date = VALUES(payment_date)`,
		payment.ID, payment.OrderID, payment.Amount, payment.Status, payment.PaymentDate,
	)
	if err != nil {
		return fmt.Errorf("upsert payment: %w", err)
	}
	return nil
}

func (s *PaymentMySQL) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM payments WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete payment: %w", err)
	}
	return nil
}
