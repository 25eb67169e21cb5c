package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"quote-desk/domain"
	"quote-desk/repository"
)

type failingUserRepo struct {
	repository.UserRepository
}

func (failingUserRepo) List(context.Context) ([]domain.User, error) {
	return nil, errors.New("connection refused")
}

func newUserService(t *testing.T) *UserService {
	t.Helper()
	s := NewUserService(repository.NewUserRepositoryMemory(), zap.NewNop())
	s.now = func() time.Time { return testNow }
	return s
}

func TestUserService_Create(t *testing.T) {
	s := newUserService(t)
	ctx := context.Background()

	u, err := s.Create(ctx, domain.User{ID: 1, Name: " Jane Smith ", Email: "jane@example.com", Phone: "0712345678"})
	require.NoError(t, err)
	assert.Equal(t, domain.User{
		ID:       2,
		Name:     "Jane Smith",
		Email:    "jane@example.com",
		Phone:    "0712345678",
		Status:   UserActive,
		JoinDate: "2026-03-14",
	}, u)

	_, err = s.Create(ctx, domain.User{Name: "", Email: "x@example.com"})
	assert.ErrorIs(t, err, ErrInvalidUser)
	_, err = s.Create(ctx, domain.User{Name: "X", Email: "not-an-email"})
	assert.ErrorIs(t, err, ErrInvalidUser)
	_, err = s.Create(ctx, domain.User{Name: "X", Email: "x@example.com", Status: "banned"})
	assert.ErrorIs(t, err, ErrInvalidUser)
}

func TestUserService_UpdateWhitelist(t *testing.T) {
	s := newUserService(t)
	ctx := context.Background()

	status := UserInactive
	policies := 5
	u, err := s.Update(ctx, 1, domain.UserPatch{Status: &status, Policies: &policies})
	require.NoError(t, err)
	assert.Equal(t, 1, u.ID)
	assert.Equal(t, "John Doe", u.Name)
	assert.Equal(t, UserInactive, u.Status)
	assert.Equal(t, 5, u.Policies)

	bad := "nope"
	_, err = s.Update(ctx, 1, domain.UserPatch{Email: &bad})
	assert.ErrorIs(t, err, ErrInvalidUser)

	_, err = s.Update(ctx, 7, domain.UserPatch{Status: &status})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUserService_DeleteAndExport(t *testing.T) {
	s := newUserService(t)
	ctx := context.Background()

	data, name, err := s.Export(ctx)
	require.NoError(t, err)
	assert.Equal(t, "users-report-2026-03-14.csv", name)
	assert.Contains(t, string(data), "1,John Doe,john@example.com,1234567890,active,2,2024-01-01")

	require.NoError(t, s.Delete(ctx, 1))
	assert.ErrorIs(t, s.Delete(ctx, 1), repository.ErrNotFound)

	_, _, err = s.Export(ctx)
	assert.Error(t, err)
}

func TestUserService_RepositoryError(t *testing.T) {
	s := NewUserService(failingUserRepo{}, zap.NewNop())
	_, err := s.List(context.Background())
	assert.EqualError(t, err, "connection refused")
}
