package notifications

import (
	"context"

	"courtside/internal/bookings"
	"courtside/pkg/logger"

	"github.com/google/uuid"
)

// BookingNotifier adapts the event producer to the booking and refund
// services' fire-and-forget notifier contracts. Publish failures are logged
// and swallowed; notifications never fail a booking operation.
type BookingNotifier struct {
	producer Producer
	log      *logger.Logger
}

// NewBookingNotifier creates a notifier over the given producer
func NewBookingNotifier(producer Producer, log *logger.Logger) *BookingNotifier {
	return &BookingNotifier{producer: producer, log: log}
}

func (n *BookingNotifier) BookingCreated(booking *bookings.Booking) {
	event := NewBookingEvent(EventBookingCreated, booking.UserID, booking.ID)
	n.decorate(event, booking)
	n.publish(event)
}

func (n *BookingNotifier) BookingCancelled(booking *bookings.Booking) {
	event := NewBookingEvent(EventBookingCancelled, booking.UserID, booking.ID)
	n.decorate(event, booking)
	n.publish(event)
}

func (n *BookingNotifier) PlayerJoined(booking *bookings.Booking, userID uuid.UUID) {
	event := NewBookingEvent(EventMatchJoined, userID, booking.ID)
	n.decorate(event, booking)
	n.publish(event)
}

// RefundCreated publishes the refund-side event; wired from the refund flow.
func (n *BookingNotifier) RefundCreated(userID, bookingID uuid.UUID, bookingRef string, amount float64) {
	event := NewBookingEvent(EventRefundCreated, userID, bookingID)
	event.BookingRef = bookingRef
	event.Payload = map[string]interface{}{"amount": amount}
	n.publish(event)
}

func (n *BookingNotifier) decorate(event *BookingEvent, booking *bookings.Booking) {
	event.BookingRef = booking.BookingRef
	event.CourtID = booking.CourtID.String()
	event.Date = booking.Date
	event.Slot = booking.Slot
}

func (n *BookingNotifier) publish(event *BookingEvent) {
	if err := n.producer.Publish(event); err != nil {
		n.log.ErrorWithContext(context.Background(), "failed to publish booking event", err, map[string]interface{}{
			"event_type": string(event.Type),
			"booking_id": event.BookingID.String(),
		})
	}
}
