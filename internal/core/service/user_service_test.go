package service

import (
	"context"
	"sync"
	"testing"

	"github.com/microshop-io/microshop/internal/cache"
	"github.com/microshop-io/microshop/internal/core/domain"
	"github.com/microshop-io/microshop/internal/port"
)

type mockUserStore struct {
	mu   sync.Mutex
	byID map[string]domain.User
	gets int
}

func newMockUserStore() *mockUserStore {
	return &mockUserStore{byID: make(map[string]domain.User)}
}

func (m *mockUserStore) Create(ctx context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[user.ID] = *user
	return nil
}

func (m *mockUserStore) Get(ctx context.Context, id string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gets++
	user, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.byID {
		if user.Email == email {
			return &user, nil
		}
	}
	return nil, nil
}

func (m *mockUserStore) List(ctx context.Context) ([]domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.User, 0, len(m.byID))
	for _, user := range m.byID {
		out = append(out, user)
	}
	return out, nil
}

func (m *mockUserStore) ListByYear(ctx context.Context, year int) ([]domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.User
	for _, user := range m.byID {
		if user.Year == year {
			out = append(out, user)
		}
	}
	return out, nil
}

func (m *mockUserStore) Update(ctx context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[user.ID] = *user
	return nil
}

func (m *mockUserStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.byID, id)
	return nil
}

func userCache(store port.UserStore) port.EntityCache[*domain.User] {
	return cache.New[*domain.User](cache.Funcs[*domain.User]{
		LoadFunc: func(ctx context.Context, key string) (*domain.User, bool, error) {
			user, err := store.Get(ctx, key)
			return user, user != nil, err
		},
		StoreFunc: func(ctx context.Context, key string, user *domain.User) error {
			return store.Update(ctx, user)
		},
		DeleteFunc: store.Delete,
	})
}

func newTestUserService(store *mockUserStore) *UserService {
	return NewUserService(store, userCache(store))
}

func TestCreateUser_AssignsID(t *testing.T) {
	store := newMockUserStore()
	svc := newTestUserService(store)

	user := &domain.User{Name: "Alice", Email: "alice@example.com", Year: 2024}
	if err := svc.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if user.ID == "" {
		t.Fatal("expected assigned ID")
	}

	got, err := svc.GetUser(context.Background(), user.ID)
	if err != nil || got == nil {
		t.Fatalf("created user not readable: %v", err)
	}
	if got.Email != "alice@example.com" {
		t.Errorf("unexpected user %+v", got)
	}
}

func TestGetUser_CachedAfterFirstRead(t *testing.T) {
	store := newMockUserStore()
	svc := newTestUserService(store)

	user := &domain.User{Name: "Alice"}
	svc.CreateUser(context.Background(), user)

	svc.GetUser(context.Background(), user.ID)
	before := store.gets
	svc.GetUser(context.Background(), user.ID)
	if store.gets != before {
		t.Error("second point read hit the store")
	}
}

func TestUpdateUser_WriteThroughVisible(t *testing.T) {
	store := newMockUserStore()
	svc := newTestUserService(store)

	user := &domain.User{Name: "Alice"}
	svc.CreateUser(context.Background(), user)
	svc.GetUser(context.Background(), user.ID) // populate cache

	user.Name = "Alicia"
	if err := svc.UpdateUser(context.Background(), user); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	got, _ := svc.GetUser(context.Background(), user.ID)
	if got == nil || got.Name != "Alicia" {
		t.Errorf("read after update returned %+v", got)
	}
	// The backing store saw the write before the cache did.
	stored, _ := store.Get(context.Background(), user.ID)
	if stored == nil || stored.Name != "Alicia" {
		t.Errorf("store missed the write-through: %+v", stored)
	}
}

func TestDeleteUser_EvictsCache(t *testing.T) {
	store := newMockUserStore()
	svc := newTestUserService(store)

	user := &domain.User{Name: "Alice"}
	svc.CreateUser(context.Background(), user)
	svc.GetUser(context.Background(), user.ID)

	if err := svc.DeleteUser(context.Background(), user.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if got, _ := svc.GetUser(context.Background(), user.ID); got != nil {
		t.Error("cache served a deleted user")
	}
	// Idempotent.
	if err := svc.DeleteUser(context.Background(), user.ID); err != nil {
		t.Errorf("second delete must be a no-op, got %v", err)
	}
}

func TestGetUserByYear_FirstMatch(t *testing.T) {
	store := newMockUserStore()
	svc := newTestUserService(store)

	svc.CreateUser(context.Background(), &domain.User{Name: "Alice", Year: 2023})
	svc.CreateUser(context.Background(), &domain.User{Name: "Bob", Year: 2024})

	got, err := svc.GetUserByYear(context.Background(), 2024)
	if err != nil || got == nil {
		t.Fatalf("expected a user for 2024, got %v (%v)", got, err)
	}
	if got.Year != 2024 {
		t.Errorf("wrong year: %+v", got)
	}

	none, err := svc.GetUserByYear(context.Background(), 1999)
	if err != nil || none != nil {
		t.Errorf("expected (nil, nil) for empty year, got %v (%v)", none, err)
	}
}
