package service

import (
	"bytes"
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"go.uber.org/zap"

	"quote-desk/domain"
	"quote-desk/export"
	"quote-desk/repository"
)

const (
	UserActive   = "active"
	UserInactive = "inactive"
)

type UserService struct {
	repo   repository.UserRepository
	logger *zap.Logger
	now    func() time.Time
}

func NewUserService(repo repository.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{repo: repo, logger: logger, now: time.Now}
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.repo.List(ctx)
}

// Create stores a new user. The id is always assigned by the store.
func (s *UserService) Create(ctx context.Context, u domain.User) (domain.User, error) {
	u.Name = strings.TrimSpace(u.Name)
	u.Email = strings.TrimSpace(u.Email)
	if u.Status == "" {
		u.Status = UserActive
	}
	if u.JoinDate == "" {
		u.JoinDate = s.now().Format(dateLayout)
	}
	if err := validateUser(u); err != nil {
		return domain.User{}, err
	}

	created, err := s.repo.Create(ctx, u)
	if err != nil {
		return domain.User{}, err
	}
	s.logger.Info("user created", zap.Int("id", created.ID))
	return created, nil
}

// Update merges the whitelisted fields of patch into the stored user.
func (s *UserService) Update(ctx context.Context, id int, patch domain.UserPatch) (domain.User, error) {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.User{}, err
	}
	if err := validateUser(patch.Apply(current)); err != nil {
		return domain.User{}, err
	}
	return s.repo.Update(ctx, id, patch)
}

func (s *UserService) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("user deleted", zap.Int("id", id))
	return nil
}

// Export renders every user as CSV.
func (s *UserService) Export(ctx context.Context) ([]byte, string, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, "", err
	}
	var buf bytes.Buffer
	if err := export.Users(&buf, users); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), export.UsersFilename(s.now()), nil
}

func validateUser(u domain.User) error {
	if strings.TrimSpace(u.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidUser)
	}
	if _, err := mail.ParseAddress(u.Email); err != nil {
		return fmt.Errorf("%w: invalid email %q", ErrInvalidUser, u.Email)
	}
	if u.Policies < 0 {
		return fmt.Errorf("%w: policies must not be negative", ErrInvalidUser)
	}
	switch u.Status {
	case UserActive, UserInactive:
	default:
		return fmt.Errorf("%w: unknown status %q", ErrInvalidUser, u.Status)
	}
	return nil
}
