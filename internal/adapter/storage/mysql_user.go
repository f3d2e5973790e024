package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/microshop-io/microshop/internal/core/domain"
)

type UserMySQL struct {
	db *sql.DB
}

func NewUserMySQL(db *sql.DB) *UserMySQL {
	return &UserMySQL{db: db}
}

func (s *UserMySQL) Create(ctx context.Context, user *domain.User) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, name, email, password, role, year)
		VALUES (?, ?, ?, ?, ?, ?)`,
		user.ID, user.Name, user.Email, user.Password, user.Role, user.Year,
	)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *UserMySQL) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.scanOne(s.db.QueryRowContext(ctx, `
		SELECT id, name, email, password, role, year
		FROM users WHERE id = ?`, id))
}

func (s *UserMySQL) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.scanOne(s.db.QueryRowContext(ctx, `
		SELECT id, name, email, password, role, year
		FROM users WHERE email = ?`, email))
}

func (s *UserMySQL) List(ctx context.Context) ([]domain.User, error) {
	return s.queryMany(ctx, `
		SELECT id, name, email, password, role, year FROM users`)
}

func (s *UserMySQL) ListByYear(ctx context.Context, year int) ([]domain.User, error) {
	return s.queryMany(ctx, `
		SELECT id, name, email, password, role, year
		FROM users WHERE year = ?`, year)
}

func (s *UserMySQL) Update(ctx context.Context, user *domain.User) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, name, email, password, role, year)
		VALUES (?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			name = VALUES(name), email = VALUES(email),
			password = VALUES(password), role = VALUES(role), year = VALUES(year)`,
		user.ID, user.Name, user.Email, user.Password, user.Role, user.Year,
	)
	if err != nil {
		return fmt.Errorf("upsert user: %w", err)
	}
	return nil
}

func (s *UserMySQL) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

func (s *UserMySQL) scanOne(row *sql.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.Password, &user.Role, &user.Year)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}
	return &user, nil
}

func (s *UserMySQL) queryMany(ctx context.Context, query string, args ...any) ([]domain.User, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(&user.ID, &user.Name, &user.Email, &user.Password, &user.Role, &user.Year); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, user)
	}
	return users, rows.Err()
}
