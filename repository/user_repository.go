package repository

import (
	"context"
	"sort"
	"sync"

	"quote-desk/domain"
)

type UserRepository interface {
	List(ctx context.Context) ([]domain.User, error)
	Get(ctx context.Context, id int) (domain.User, error)
	Create(ctx context.Context, u domain.User) (domain.User, error)
	Update(ctx context.Context, id int, patch domain.UserPatch) (domain.User, error)
	Delete(ctx context.Context, id int) error
}

// SeedUsers is the record every fresh user store starts with.
var SeedUsers = []domain.User{
	{
		ID:       1,
		Name:     "John Doe",
		Email:    "john@example.com",
		Phone:    "1234567890",
		Status:   "active",
		Policies: 2,
		JoinDate: "2024-01-01",
	},
}

// UserRepositoryMemory is an in-memory implementation of UserRepository.
// Ids come from a counter and are never reused.
type UserRepositoryMemory struct {
	mu     sync.Mutex
	users  map[int]domain.User
	nextID int
}

func NewUserRepositoryMemory() *UserRepositoryMemory {
	r := &UserRepositoryMemory{users: make(map[int]domain.User), nextID: 1}
	for _, u := range SeedUsers {
		r.users[u.ID] = u
		if u.ID >= r.nextID {
			r.nextID = u.ID + 1
		}
	}
	return r
}

func (r *UserRepositoryMemory) List(_ context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *UserRepositoryMemory) Get(_ context.Context, id int) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return domain.User{}, ErrNotFound
	}
	return u, nil
}

func (r *UserRepositoryMemory) Create(_ context.Context, u domain.User) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u.ID = r.nextID
	r.nextID++
	r.users[u.ID] = u
	return u, nil
}

func (r *UserRepositoryMemory) Update(_ context.Context, id int, patch domain.UserPatch) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return domain.User{}, ErrNotFound
	}
	u = patch.Apply(u)
	r.users[id] = u
	return u, nil
}

func (r *UserRepositoryMemory) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return ErrNotFound
	}
	delete(r.users, id)
	return nil
}
