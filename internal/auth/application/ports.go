package application

import (
	"context"

	"github.com/yoga28042005/carekart-server/internal/auth/domain"
)

type UserRepository interface {
	Create(ctx context.Context, name, email, passwordHash string) (int, error)
	Exists(ctx context.Context, name, email string) (bool, error)
	ByName(ctx context.Context, name string) (domain.User, error)
}
