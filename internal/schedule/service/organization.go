package service

import (
	"context"

	"github.com/Prodbylino/shiftflow/internal/schedule/events"
	"github.com/Prodbylino/shiftflow/internal/schedule/repository"
	"github.com/Prodbylino/shiftflow/pkg/caller"
	"github.com/Prodbylino/shiftflow/pkg/logger"
)

// OrganizationService handles organization business logic. Every method
// resolves the acting owner from the request's Caller before touching
// the repository: authenticated callers act on their own data, the
// privileged service caller must name a target owner explicitly.
type OrganizationService struct {
	orgRepo   *repository.OrganizationRepository
	publisher *events.SchedulePublisher
	logger    *logger.Logger
}

// NewOrganizationService creates a new organization service
func NewOrganizationService(
	orgRepo *repository.OrganizationRepository,
	publisher *events.SchedulePublisher,
	log *logger.Logger,
) *OrganizationService {
	return &OrganizationService{
		orgRepo:   orgRepo,
		publisher: publisher,
		logger:    log,
	}
}

// Create creates an organization for the resolved owner
func (s *OrganizationService) Create(ctx context.Context, targetOwner string, org *repository.Organization) error {
	owner, err := caller.FromContext(ctx).ResolveOwner(targetOwner)
	if err != nil {
		return err
	}

	if err := s.orgRepo.Create(ctx, owner, org); err != nil {
		return err
	}

	s.publisher.PublishOrganizationCreated(ctx, org)

	s.logger.Info().
		Str("organization_id", org.ID).
		Str("owner_id", owner).
		Msg("organization created")

	return nil
}

// Get returns one of the resolved owner's organizations
func (s *OrganizationService) Get(ctx context.Context, targetOwner, id string) (*repository.Organization, error) {
	owner, err := caller.FromContext(ctx).ResolveOwner(targetOwner)
	if err != nil {
		return nil, err
	}

	return s.orgRepo.GetByID(ctx, owner, id)
}

// List returns all of the resolved owner's organizations
func (s *OrganizationService) List(ctx context.Context, targetOwner string) ([]*repository.Organization, error) {
	owner, err := caller.FromContext(ctx).ResolveOwner(targetOwner)
	if err != nil {
		return nil, err
	}

	return s.orgRepo.List(ctx, owner)
}

// Update updates one of the resolved owner's organizations
func (s *OrganizationService) Update(ctx context.Context, targetOwner string, org *repository.Organization) error {
	owner, err := caller.FromContext(ctx).ResolveOwner(targetOwner)
	if err != nil {
		return err
	}

	if err := s.orgRepo.Update(ctx, owner, org); err != nil {
		return err
	}

	org.UserID = owner
	s.publisher.PublishOrganizationUpdated(ctx, org)

	s.logger.Info().
		Str("organization_id", org.ID).
		Str("owner_id", owner).
		Msg("organization updated")

	return nil
}

// Delete deletes one of the resolved owner's organizations, cascading
// to its shifts
func (s *OrganizationService) Delete(ctx context.Context, targetOwner, id string) error {
	owner, err := caller.FromContext(ctx).ResolveOwner(targetOwner)
	if err != nil {
		return err
	}

	if err := s.orgRepo.Delete(ctx, owner, id); err != nil {
		return err
	}

	s.publisher.PublishOrganizationDeleted(ctx, owner, id)

	s.logger.Info().
		Str("organization_id", id).
		Str("owner_id", owner).
		Msg("organization deleted")

	return nil
}
