package application

import (
	"context"
	"log/slog"

	"github.com/yoga28042005/carekart-server/internal/user/domain"
)

type Service struct {
	log       *slog.Logger
	profiles  ProfileRepository
	addresses AddressRepository
}

func NewService(log *slog.Logger, profiles ProfileRepository, addresses AddressRepository) *Service {
	return &Service{log: log, profiles: profiles, addresses: addresses}
}

func (s *Service) Profile(ctx context.Context, userID int) (domain.Profile, error) {
	return s.profiles.Profile(ctx, userID)
}

func (s *Service) UpdateProfile(ctx context.Context, userID int, update domain.ProfileUpdate) error {
	if err := s.profiles.UpdateProfile(ctx, userID, update); err != nil {
		return err
	}
	s.log.Info("profile updated", "user_id", userID)
	return nil
}

func (s *Service) Addresses(ctx context.Context, userID int) ([]domain.Address, error) {
	return s.addresses.ByUser(ctx, userID)
}

func (s *Service) AddAddress(ctx context.Context, address domain.Address) (domain.Address, error) {
	saved, err := s.addresses.Add(ctx, address)
	if err != nil {
		return domain.Address{}, err
	}
	s.log.Info("address added", "user_id", saved.UserID, "address_id", saved.ID, "default", saved.IsDefault)
	return saved, nil
}
