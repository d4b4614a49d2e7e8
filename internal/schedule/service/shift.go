package service

import (
	"context"

	"github.com/Prodbylino/shiftflow/internal/schedule/events"
	"github.com/Prodbylino/shiftflow/internal/schedule/repository"
	"github.com/Prodbylino/shiftflow/pkg/caller"
	"github.com/Prodbylino/shiftflow/pkg/logger"
)

// ShiftService handles shift business logic
type ShiftService struct {
	shiftRepo *repository.ShiftRepository
	publisher *events.SchedulePublisher
	logger    *logger.Logger
}

// NewShiftService creates a new shift service
func NewShiftService(
	shiftRepo *repository.ShiftRepository,
	publisher *events.SchedulePublisher,
	log *logger.Logger,
) *ShiftService {
	return &ShiftService{
		shiftRepo: shiftRepo,
		publisher: publisher,
		logger:    log,
	}
}

// Create creates a shift for the resolved owner. Interval validation
// happens in the repository; the composite foreign key rejects an
// organization belonging to another owner.
func (s *ShiftService) Create(ctx context.Context, targetOwner string, shift *repository.Shift) error {
	owner, err := caller.FromContext(ctx).ResolveOwner(targetOwner)
	if err != nil {
		return err
	}

	if err := s.shiftRepo.Create(ctx, owner, shift); err != nil {
		return err
	}

	s.publisher.PublishShiftCreated(ctx, shift)

	s.logger.Info().
		Str("shift_id", shift.ID).
		Str("organization_id", shift.OrganizationID).
		Str("owner_id", owner).
		Msg("shift created")

	return nil
}

// Get returns one of the resolved owner's shifts
func (s *ShiftService) Get(ctx context.Context, targetOwner, id string) (*repository.Shift, error) {
	owner, err := caller.FromContext(ctx).ResolveOwner(targetOwner)
	if err != nil {
		return nil, err
	}

	return s.shiftRepo.GetByID(ctx, owner, id)
}

// List returns the resolved owner's shifts matching the filters
func (s *ShiftService) List(ctx context.Context, targetOwner string, params repository.ShiftListParams) ([]*repository.Shift, int64, error) {
	owner, err := caller.FromContext(ctx).ResolveOwner(targetOwner)
	if err != nil {
		return nil, 0, err
	}

	return s.shiftRepo.List(ctx, owner, params)
}

// Update updates one of the resolved owner's shifts
func (s *ShiftService) Update(ctx context.Context, targetOwner string, shift *repository.Shift) error {
	owner, err := caller.FromContext(ctx).ResolveOwner(targetOwner)
	if err != nil {
		return err
	}

	if err := s.shiftRepo.Update(ctx, owner, shift); err != nil {
		return err
	}

	shift.UserID = owner
	s.publisher.PublishShiftUpdated(ctx, shift)

	s.logger.Info().
		Str("shift_id", shift.ID).
		Str("owner_id", owner).
		Msg("shift updated")

	return nil
}

// Delete deletes one of the resolved owner's shifts
func (s *ShiftService) Delete(ctx context.Context, targetOwner, id string) error {
	owner, err := caller.FromContext(ctx).ResolveOwner(targetOwner)
	if err != nil {
		return err
	}

	if err := s.shiftRepo.Delete(ctx, owner, id); err != nil {
		return err
	}

	s.publisher.PublishShiftDeleted(ctx, owner, id)

	s.logger.Info().
		Str("shift_id", id).
		Str("owner_id", owner).
		Msg("shift deleted")

	return nil
}
