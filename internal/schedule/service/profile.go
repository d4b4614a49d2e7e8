package service

import (
	"context"

	"github.com/Prodbylino/shiftflow/internal/schedule/repository"
	"github.com/Prodbylino/shiftflow/pkg/caller"
	"github.com/Prodbylino/shiftflow/pkg/logger"
)

// ProfileService handles profile business logic. Get and Update act on
// the caller's own profile; the provisioning paths are invoked by the
// identity event consumer, not by HTTP callers.
type ProfileService struct {
	profileRepo *repository.ProfileRepository
	logger      *logger.Logger
}

// NewProfileService creates a new profile service
func NewProfileService(profileRepo *repository.ProfileRepository, log *logger.Logger) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
		logger:      log,
	}
}

// Get returns the caller's own profile
func (s *ProfileService) Get(ctx context.Context) (*repository.Profile, error) {
	owner, err := caller.FromContext(ctx).ResolveOwner("")
	if err != nil {
		return nil, err
	}

	return s.profileRepo.Get(ctx, owner)
}

// Update updates the caller's own profile
func (s *ProfileService) Update(ctx context.Context, email string, fullName *string) (*repository.Profile, error) {
	owner, err := caller.FromContext(ctx).ResolveOwner("")
	if err != nil {
		return nil, err
	}

	profile, err := s.profileRepo.Update(ctx, owner, email, fullName)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("owner_id", owner).Msg("profile updated")

	return profile, nil
}

// Provision upserts the profile for a newly created identity
func (s *ProfileService) Provision(ctx context.Context, userID, email, fullName string) error {
	if err := s.profileRepo.Provision(ctx, userID, email, fullName); err != nil {
		return err
	}

	s.logger.Info().Str("user_id", userID).Msg("profile provisioned")

	return nil
}

// RefreshEmail applies an upstream email change
func (s *ProfileService) RefreshEmail(ctx context.Context, userID, email string) error {
	return s.profileRepo.RefreshEmail(ctx, userID, email)
}

// Remove deletes the profile after its identity is gone upstream
func (s *ProfileService) Remove(ctx context.Context, userID string) error {
	if err := s.profileRepo.Delete(ctx, userID); err != nil {
		return err
	}

	s.logger.Info().Str("user_id", userID).Msg("profile removed")

	return nil
}
