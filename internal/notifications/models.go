package notifications

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// EventType enumerates the booking lifecycle events fanned out to the
// notification pipeline.
type EventType string

const (
	EventBookingCreated   EventType = "booking_created"
	EventBookingConfirmed EventType = "booking_confirmed"
	EventBookingCancelled EventType = "booking_cancelled"
	EventMatchJoined      EventType = "match_joined"
	EventRefundCreated    EventType = "refund_created"
)

// BookingEvent is the wire payload published per lifecycle change. Consumers
// downstream render emails or push messages from it; this service only emits.
type BookingEvent struct {
	ID        uuid.UUID `json:"id"`
	Type      EventType `json:"type"`
	UserID    uuid.UUID `json:"user_id"`
	BookingID uuid.UUID `json:"booking_id"`

	BookingRef string `json:"booking_ref,omitempty"`
	CourtID    string `json:"court_id,omitempty"`
	Date       string `json:"date,omitempty"`
	Slot       string `json:"slot,omitempty"`

	Payload map[string]interface{} `json:"payload,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// NewBookingEvent builds an event with a fresh ID and timestamp.
func NewBookingEvent(eventType EventType, userID, bookingID uuid.UUID) *BookingEvent {
	return &BookingEvent{
		ID:        uuid.New(),
		Type:      eventType,
		UserID:    userID,
		BookingID: bookingID,
		CreatedAt: time.Now(),
	}
}

// ToJSON serializes the event for the wire.
func (e *BookingEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// PartitionKey routes all events of one user to the same partition so a
// consumer sees that user's events in order.
func (e *BookingEvent) PartitionKey() string {
	return e.UserID.String()
}
