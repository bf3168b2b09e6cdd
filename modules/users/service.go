package users

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/reqcheck/pkg/logger"
)

// Service registers users and answers whether an email is taken.
type Service struct {
	storage    Storage
	bcryptCost int
	logger     *slog.Logger
}

type ServiceOption func(*Service)

// WithBcryptCost sets the bcrypt cost for password hashing.
func WithBcryptCost(cost int) ServiceOption {
	return func(s *Service) {
		s.bcryptCost = cost
	}
}

func WithLogger(l *slog.Logger) ServiceOption {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

func NewService(storage Storage, opts ...ServiceOption) *Service {
	s := &Service{
		storage:    storage,
		bcryptCost: bcrypt.DefaultCost,
		logger:     logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register hashes the password and stores a new user.
func (s *Service) Register(ctx context.Context, email, password string) (*User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := &User{
		ID:           uuid.New(),
		Email:        NormalizeEmail(email),
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}
	if err := s.storage.CreateUser(ctx, u); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "user registered",
		logger.Component("users"),
		slog.String("user_id", u.ID.String()),
	)
	return u, nil
}

// EmailTaken reports whether a user with the email exists.
func (s *Service) EmailTaken(ctx context.Context, email string) (bool, error) {
	_, err := s.storage.GetUserByEmail(ctx, NormalizeEmail(email))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, ErrUserNotFound):
		return false, nil
	default:
		return false, err
	}
}

// Authenticate checks a password against the stored hash.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	u, err := s.storage.GetUserByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

var ErrInvalidCredentials = errors.New("invalid credentials")
