package consumers

import (
	"context"

	"github.com/Prodbylino/shiftflow/internal/schedule/service"
	"github.com/Prodbylino/shiftflow/pkg/logger"
	"github.com/Prodbylino/shiftflow/pkg/messaging"
)

// IdentityEventConsumer consumes identity lifecycle events from the
// platform and keeps the local profiles in step: created identities
// get a profile provisioned, updates refresh the email, deletions
// remove the profile (and, via cascade, all owned data).
type IdentityEventConsumer struct {
	consumer       *messaging.Consumer
	profileService *service.ProfileService
	logger         *logger.Logger
}

// NewIdentityEventConsumer creates a new identity event consumer
func NewIdentityEventConsumer(
	rmq *messaging.RabbitMQ,
	profileService *service.ProfileService,
	log *logger.Logger,
) (*IdentityEventConsumer, error) {
	consumer, err := messaging.NewConsumer(rmq, "shiftflow.identity-events", log)
	if err != nil {
		return nil, err
	}

	if err := consumer.Subscribe(messaging.ExchangeIdentityEvents, "identity.#"); err != nil {
		return nil, err
	}

	c := &IdentityEventConsumer{
		consumer:       consumer,
		profileService: profileService,
		logger:         log,
	}

	consumer.RegisterHandler(messaging.EventIdentityCreated, c.handleIdentityCreated)
	consumer.RegisterHandler(messaging.EventIdentityUpdated, c.handleIdentityUpdated)
	consumer.RegisterHandler(messaging.EventIdentityDeleted, c.handleIdentityDeleted)

	return c, nil
}

// Start starts consuming messages
func (c *IdentityEventConsumer) Start(ctx context.Context) error {
	return c.consumer.Start(ctx)
}

// handleIdentityCreated provisions a profile. The repository upsert
// makes redelivery safe, so a retried event converges to one row.
func (c *IdentityEventConsumer) handleIdentityCreated(ctx context.Context, event *messaging.Event) error {
	var data messaging.IdentityCreatedEvent
	if err := event.UnmarshalData(&data); err != nil {
		return err
	}

	c.logger.Info().
		Str("user_id", data.UserID).
		Msg("received identity created event")

	return c.profileService.Provision(ctx, data.UserID, data.Email, data.FullName)
}

func (c *IdentityEventConsumer) handleIdentityUpdated(ctx context.Context, event *messaging.Event) error {
	var data messaging.IdentityUpdatedEvent
	if err := event.UnmarshalData(&data); err != nil {
		return err
	}

	c.logger.Info().
		Str("user_id", data.UserID).
		Msg("received identity updated event")

	return c.profileService.RefreshEmail(ctx, data.UserID, data.Email)
}

func (c *IdentityEventConsumer) handleIdentityDeleted(ctx context.Context, event *messaging.Event) error {
	var data messaging.IdentityDeletedEvent
	if err := event.UnmarshalData(&data); err != nil {
		return err
	}

	c.logger.Info().
		Str("user_id", data.UserID).
		Msg("received identity deleted event")

	return c.profileService.Remove(ctx, data.UserID)
}
