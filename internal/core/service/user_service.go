package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/microshop-io/microshop/internal/core/domain"
	"github.com/microshop-io/microshop/internal/port"
)

var ErrUserNotFound = errors.New("user not found")

// UserService serves user CRUD with a cache-aside store on point reads.
// Creates write the store directly; the first read populates the cache.
// Updates and deletes go through the cache so an entry is never served
// after this process has changed the entity.
type UserService struct {
	store port.UserStore
	cache port.EntityCache[*domain.User]
}

func NewUserService(store port.UserStore, cache port.EntityCache[*domain.User]) *UserService {
	return &UserService{store: store, cache: cache}
}

func (s *UserService) CreateUser(ctx context.Context, user *domain.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	return s.store.Create(ctx, user)
}

func (s *UserService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	user, ok, err := s.cache.Get(ctx, id)
	if err != nil || !ok {
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.store.GetByEmail(ctx, email)
}

func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.store.List(ctx)
}

func (s *UserService) ListUsersByYear(ctx context.Context, year int) ([]domain.User, error) {
	return s.store.ListByYear(ctx, year)
}

// GetUserByYear returns the first user of the given year, or (nil, nil).
func (s *UserService) GetUserByYear(ctx context.Context, year int) (*domain.User, error) {
	users, err := s.store.ListByYear(ctx, year)
	if err != nil || len(users) == 0 {
		return nil, err
	}
	return &users[0], nil
}

func (s *UserService) UpdateUser(ctx context.Context, user *domain.User) error {
	if user.ID == "" {
		return ErrUserNotFound
	}
	return s.cache.Put(ctx, user.ID, user)
}

func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	return s.cache.Invalidate(ctx, id)
}
