package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/microshop-io/microshop/internal/core/domain"
)

type ProductMySQL struct {
	db *sql.DB
}

func NewProductMySQL(db *sql.DB) *ProductMySQL {
	return &ProductMySQL{db: db}
}

func (s *ProductMySQL) Create(ctx context.Context, product *domain.Product) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO products (id, name, price, description, category)
		VALUES (?, ?, ?, ?, ?)`,
		product.ID, product.Name, product.Price, product.Description, product.Category,
	)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (s *ProductMySQL) Get(ctx context.Context, id string) (*domain.Product, error) {
	var product domain.Product
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, price, description, category
		FROM products WHERE id = ?`, id,
	).Scan(&product.ID, &product.Name, &product.Price, &product.Description, &product.Category)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query product: %w", err)
	}
	return &product, nil
}

func (s *ProductMySQL) List(ctx context.Context) ([]domain.Product, error) {
	return s.queryMany(ctx, `
		SELECT id, name, price, description, category FROM products`)
}

func (s *ProductMySQL) ListByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	return s.queryMany(ctx, `
		SELECT id, name, price, description, category
		FROM products WHERE category = ?`, category)
}

func (s *ProductMySQL) Update(ctx context.Context, product *domain.Product) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO products (id, name, price, description, category)
		VALUES (?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			name = VALUES(name), price = VALUES(price),
			description = VALUES(description), category = VALUES(category)`,
		product.ID, product.Name, product.Price, product.Description, product.Category,
	)
	if err != nil {
		return fmt.Errorf("upsert product: %w", err)
	}
	return nil
}

func (s *ProductMySQL) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

func (s *ProductMySQL) queryMany(ctx context.Context, query string, args ...any) ([]domain.Product, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var product domain.Product
		if err := rows.Scan(&product.ID, &product.Name, &product.Price, &product.Description, &product.Category); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, product)
	}
	return products, rows.Err()
}
