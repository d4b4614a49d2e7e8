package events

import (
	"context"

	"github.com/Prodbylino/shiftflow/internal/schedule/repository"
	"github.com/Prodbylino/shiftflow/pkg/logger"
	"github.com/Prodbylino/shiftflow/pkg/messaging"
)

// EventSink is where published events go; satisfied by
// messaging.Publisher and by the test publisher
type EventSink interface {
	Publish(ctx context.Context, eventType string, data interface{}) error
}

// SchedulePublisher publishes schedule events. Publishing is
// best-effort: a broker failure is logged, never propagated, so a
// write that already committed cannot be failed retroactively.
type SchedulePublisher struct {
	sink   EventSink
	logger *logger.Logger
}

// NewSchedulePublisher creates a publisher bound to the schedule exchange
func NewSchedulePublisher(rmq *messaging.RabbitMQ, log *logger.Logger) (*SchedulePublisher, error) {
	publisher, err := messaging.NewPublisher(rmq, messaging.ExchangeScheduleEvents, "shiftflow", log)
	if err != nil {
		return nil, err
	}

	return &SchedulePublisher{
		sink:   publisher,
		logger: log,
	}, nil
}

// NewSchedulePublisherFromSink creates a publisher over an arbitrary sink
func NewSchedulePublisherFromSink(sink EventSink, log *logger.Logger) *SchedulePublisher {
	return &SchedulePublisher{sink: sink, logger: log}
}

// PublishOrganizationCreated publishes an organization created event
func (p *SchedulePublisher) PublishOrganizationCreated(ctx context.Context, org *repository.Organization) {
	p.publishOrganization(ctx, messaging.EventOrganizationCreated, org)
}

// PublishOrganizationUpdated publishes an organization updated event
func (p *SchedulePublisher) PublishOrganizationUpdated(ctx context.Context, org *repository.Organization) {
	p.publishOrganization(ctx, messaging.EventOrganizationUpdated, org)
}

// PublishOrganizationDeleted publishes an organization deleted event
func (p *SchedulePublisher) PublishOrganizationDeleted(ctx context.Context, ownerID, orgID string) {
	data := messaging.OrganizationChangedEvent{
		OrganizationID: orgID,
		OwnerID:        ownerID,
	}

	if err := p.sink.Publish(ctx, messaging.EventOrganizationDeleted, data); err != nil {
		p.logger.Error().Err(err).Str("organization_id", orgID).Msg("failed to publish organization deleted event")
	}
}

func (p *SchedulePublisher) publishOrganization(ctx context.Context, eventType string, org *repository.Organization) {
	data := messaging.OrganizationChangedEvent{
		OrganizationID: org.ID,
		OwnerID:        org.UserID,
		Name:           org.Name,
	}

	if err := p.sink.Publish(ctx, eventType, data); err != nil {
		p.logger.Error().Err(err).Str("organization_id", org.ID).Msg("failed to publish organization event")
	}
}

// PublishShiftCreated publishes a shift created event
func (p *SchedulePublisher) PublishShiftCreated(ctx context.Context, shift *repository.Shift) {
	p.publishShift(ctx, messaging.EventShiftCreated, shift)
}

// PublishShiftUpdated publishes a shift updated event
func (p *SchedulePublisher) PublishShiftUpdated(ctx context.Context, shift *repository.Shift) {
	p.publishShift(ctx, messaging.EventShiftUpdated, shift)
}

// PublishShiftDeleted publishes a shift deleted event
func (p *SchedulePublisher) PublishShiftDeleted(ctx context.Context, ownerID, shiftID string) {
	data := messaging.ShiftChangedEvent{
		ShiftID: shiftID,
		OwnerID: ownerID,
	}

	if err := p.sink.Publish(ctx, messaging.EventShiftDeleted, data); err != nil {
		p.logger.Error().Err(err).Str("shift_id", shiftID).Msg("failed to publish shift deleted event")
	}
}

func (p *SchedulePublisher) publishShift(ctx context.Context, eventType string, shift *repository.Shift) {
	data := messaging.ShiftChangedEvent{
		ShiftID:        shift.ID,
		OrganizationID: shift.OrganizationID,
		OwnerID:        shift.UserID,
		Date:           shift.Date,
		StartTime:      shift.StartTime,
		EndTime:        shift.EndTime,
	}

	if err := p.sink.Publish(ctx, eventType, data); err != nil {
		p.logger.Error().Err(err).Str("shift_id", shift.ID).Msg("failed to publish shift event")
	}
}
