package events

import "time"

// Event codes published on the bus.
const (
	TypeUserRegistered           = "USER_REGISTERED"
	TypeAppointmentScheduled     = "APPOINTMENT_SCHEDULED"
	TypeAppointmentStatusChanged = "APPOINTMENT_STATUS_CHANGED"
	TypeTeleconsultationEnded    = "TELECONSULTATION_ENDED"
	TypeAssistantSessionEnded    = "ASSISTANT_SESSION_ENDED"
	TypeSystemBroadcast          = "SYSTEM_BROADCAST"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "USER_REGISTERED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// New builds an event with the current time.
func New(eventType string, data map[string]interface{}) Event {
	return BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
}
