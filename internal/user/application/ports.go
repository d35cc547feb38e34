package application

import (
	"context"

	"github.com/yoga28042005/carekart-server/internal/user/domain"
)

type ProfileRepository interface {
	Profile(ctx context.Context, userID int) (domain.Profile, error)
	// UpdateProfile updates the account email and rewrites the customer
	// details on the user's most recent order in one transaction.
	UpdateProfile(ctx context.Context, userID int, update domain.ProfileUpdate) error
}

type AddressRepository interface {
	ByUser(ctx context.Context, userID int) ([]domain.Address, error)
	// Add inserts the address; when it is flagged default, the previous
	// default is cleared in the same transaction.
	Add(ctx context.Context, address domain.Address) (domain.Address, error)
}
