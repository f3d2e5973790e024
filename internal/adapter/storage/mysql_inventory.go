package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/microshop-io/microshop/internal/core/domain"
)

type InventoryMySQL struct {
	db *sql.DB
}

func NewInventoryMySQL(db *sql.DB) *InventoryMySQL {
	return &InventoryMySQL{db: db}
}

func (s *InventoryMySQL) Create(ctx context.Context, inv *domain.Inventory) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO inventory (id, product_id, quantity, location_code, in_stock)
		VALUES (?, ?, ?, ?, ?)`,
		inv.ID, inv.ProductID, inv.Quantity, inv.LocationCode, inv.InStock,
	)
	if err != nil {
		return fmt.Errorf("insert inventory: %w", err)
	}
	return nil
}

func (s *InventoryMySQL) Get(ctx context.Context, id string) (*domain.Inventory, error) {
	return s.scanOne(s.db.QueryRowContext(ctx, `
		SELECT id, product_id, quantity, location_code, in_stock
		FROM inventory WHERE id = ?`, id))
}

func (s *InventoryMySQL) GetByProductID(ctx context.Context, productID string) (*domain.Inventory, error) {
	return s.scanOne(s.db.QueryRowContext(ctx, `
		SELECT id, product_id, quantity, location_code, in_stock
		FROM inventory WHERE product_id = ?`, productID))
}

func (s *InventoryMySQL) List(ctx context.Context) ([]domain.Inventory, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, product_id, quantity, location_code, in_stock FROM inventory`)
	if err != nil {
		return nil, fmt.Errorf("query inventory: %w", err)
	}
	defer rows.Close()

	var records []domain.Inventory
	for rows.Next() {
		var inv domain.Inventory
		if err := rows.Scan(&inv.ID, &inv.ProductID, &inv.Quantity, &inv.LocationCode, &inv.InStock); err != nil {
			return nil, fmt.Errorf("scan inventory: %w", err)
		}
		records = append(records, inv)
	}
	return records, rows.Err()
}

func (s *InventoryMySQL) Update(ctx context.Context, inv *domain.Inventory) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO inventory (id, product_id, quantity, location_code, in_stock)
		VALUES (?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			product_id = VALUES(product_id), quantity = VALUES(quantity),
			location_code = VALUES(location_code), in_stock = VALUES(in_stock)`,
		inv.ID, inv.ProductID, inv.Quantity, inv.LocationCode, inv.InStock,
	)
	if err != nil {
		return fmt.Errorf("upsert inventory: %w", err)
	}
	return nil
}

func (s *InventoryMySQL) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM inventory WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete inventory: %w", err)
	}
	return nil
}

func (s *InventoryMySQL) scanOne(row *sql.Row) (*domain.Inventory, error) {
	var inv domain.Inventory
	err := row.Scan(&inv.ID, &inv.ProductID, &inv.Quantity, &inv.LocationCode, &inv.InStock)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query inventory: %w", err)
	}
	return &inv, nil
}
