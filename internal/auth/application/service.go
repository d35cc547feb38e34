package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/yoga28042005/carekart-server/internal/auth/domain"
)

type Session struct {
	UserID int
	Token  string
}

type Service struct {
	log    *slog.Logger
	users  UserRepository
	tokens *TokenManager
}

func NewService(log *slog.Logger, users UserRepository, tokens *TokenManager) *Service {
	return &Service{log: log, users: users, tokens: tokens}
}

// Signup registers a new account. An existing username or email, either one,
// blocks the registration.
func (s *Service) Signup(ctx context.Context, username, email, password string) error {
	exists, err := s.users.Exists(ctx, username, email)
	if err != nil {
		return fmt.Errorf("check existing user: %w", err)
	}
	if exists {
		return domain.ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	id, err := s.users.Create(ctx, username, email, string(hash))
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	s.log.Info("user signed up", "user_id", id)
	return nil
}

func (s *Service) Login(ctx context.Context, username, password string) (Session, error) {
	user, err := s.users.ByName(ctx, username)
	if errors.Is(err, domain.ErrUserNotFound) {
		return Session{}, domain.ErrInvalidCredentials
	}
	if err != nil {
		return Session{}, fmt.Errorf("look up user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return Session{}, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Name)
	if err != nil {
		return Session{}, err
	}
	s.log.Info("user logged in", "user_id", user.ID)
	return Session{UserID: user.ID, Token: token}, nil
}

// UserIDByName resolves a customer name to its account id, used by the
// storefront to recover the id of a logged-in session.
func (s *Service) UserIDByName(ctx context.Context, name string) (int, error) {
	user, err := s.users.ByName(ctx, name)
	if err != nil {
		return 0, err
	}
	return user.ID, nil
}
