package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"quote-desk/domain"
	"quote-desk/repository"
)

// Credentials is the single back-office login.
type Credentials struct {
	Email    string
	Password string
}

// DemoAdmin is the operator every successful login is bound to.
var DemoAdmin = domain.AdminUser{
	ID:    "admin-001",
	Email: "admin@insurance.com",
	Name:  "Admin User",
	Role:  "Super Admin",
}

type AuthService struct {
	email        string
	passwordHash []byte
	admin        domain.AdminUser
	ttl          time.Duration
	sessions     repository.SessionRepository
	logger       *zap.Logger
	now          func() time.Time
}

func NewAuthService(creds Credentials, ttl time.Duration, sessions repository.SessionRepository, logger *zap.Logger) (*AuthService, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	admin := DemoAdmin
	admin.Email = creds.Email
	return &AuthService{
		email:        strings.ToLower(strings.TrimSpace(creds.Email)),
		passwordHash: hash,
		admin:        admin,
		ttl:          ttl,
		sessions:     sessions,
		logger:       logger,
		now:          time.Now,
	}, nil
}

// Login checks the credentials and opens a session.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.Session, error) {
	emailOK := subtle.ConstantTimeCompare([]byte(strings.ToLower(strings.TrimSpace(email))), []byte(s.email)) == 1
	passOK := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)) == nil
	if !emailOK || !passOK {
		s.logger.Warn("login rejected", zap.String("email", email))
		return domain.Session{}, ErrInvalidCredentials
	}

	sess := domain.Session{
		Token:     uuid.NewString(),
		User:      s.admin,
		ExpiresAt: s.now().Add(s.ttl),
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		return domain.Session{}, fmt.Errorf("save session: %w", err)
	}
	s.logger.Info("admin logged in", zap.String("user", s.admin.ID))
	return sess, nil
}

// Session resolves token. Expired sessions are removed and reported as
// ErrSessionExpired.
func (s *AuthService) Session(ctx context.Context, token string) (domain.Session, error) {
	if token == "" {
		return domain.Session{}, ErrNoSession
	}
	sess, err := s.sessions.Get(ctx, token)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.Session{}, ErrNoSession
	}
	if err != nil {
		return domain.Session{}, err
	}
	if !sess.Valid(s.now()) {
		if err := s.sessions.Delete(ctx, token); err != nil {
			s.logger.Warn("failed to drop expired session", zap.Error(err))
		}
		return domain.Session{}, ErrSessionExpired
	}
	return sess, nil
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}
