package messaging

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event types
const (
	// Identity lifecycle events, emitted by the identity platform
	EventIdentityCreated = "identity.created"
	EventIdentityUpdated = "identity.updated"
	EventIdentityDeleted = "identity.deleted"

	// Schedule events, emitted by this service
	EventOrganizationCreated = "schedule.organization.created"
	EventOrganizationUpdated = "schedule.organization.updated"
	EventOrganizationDeleted = "schedule.organization.deleted"
	EventShiftCreated        = "schedule.shift.created"
	EventShiftUpdated        = "schedule.shift.updated"
	EventShiftDeleted        = "schedule.shift.deleted"
)

// Exchange names
const (
	ExchangeIdentityEvents = "identity.events"
	ExchangeScheduleEvents = "schedule.events"
	ExchangeDeadLetter     = "dlx.events"
)

// Event is the base event structure
type Event struct {
	ID            string          `json:"id"`
	Type          string          `json:"type"`
	Source        string          `json:"source"`
	Timestamp     time.Time       `json:"timestamp"`
	CorrelationID string          `json:"correlation_id"`
	Data          json.RawMessage `json:"data"`
}

// NewEvent creates a new event with the given type and data
func NewEvent(eventType, source, correlationID string, data interface{}) (*Event, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:            uuid.New().String(),
		Type:          eventType,
		Source:        source,
		Timestamp:     time.Now().UTC(),
		CorrelationID: correlationID,
		Data:          dataBytes,
	}, nil
}

// UnmarshalData unmarshals the event data into the provided struct
func (e *Event) UnmarshalData(v interface{}) error {
	return json.Unmarshal(e.Data, v)
}

// Identity Events

// IdentityCreatedEvent announces a new identity; the schedule service
// provisions a profile from it.
type IdentityCreatedEvent struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	FullName string `json:"full_name,omitempty"`
}

// IdentityUpdatedEvent announces a change to an identity's contact details
type IdentityUpdatedEvent struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	FullName string `json:"full_name,omitempty"`
}

// IdentityDeletedEvent announces that an identity was removed
type IdentityDeletedEvent struct {
	UserID string `json:"user_id"`
}

// Schedule Events

// OrganizationChangedEvent is published for organization create/update/delete
type OrganizationChangedEvent struct {
	OrganizationID string `json:"organization_id"`
	OwnerID        string `json:"owner_id"`
	Name           string `json:"name,omitempty"`
}

// ShiftChangedEvent is published for shift create/update/delete
type ShiftChangedEvent struct {
	ShiftID        string `json:"shift_id"`
	OrganizationID string `json:"organization_id"`
	OwnerID        string `json:"owner_id"`
	Date           string `json:"date,omitempty"`
	StartTime      string `json:"start_time,omitempty"`
	EndTime        string `json:"end_time,omitempty"`
}
