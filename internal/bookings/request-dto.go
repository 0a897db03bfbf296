package bookings

import "github.com/google/uuid"

// CreateBookingRequest represents a request to reserve a slot. Identity and
// authorization context come from the token, never the body.
type CreateBookingRequest struct {
	UserID      uuid.UUID     `json:"-"`
	CourtID     uuid.UUID     `json:"-"`
	Requester   RequesterKind `json:"-"`
	HorizonDays int           `json:"-"`

	Date        string      `json:"date"`
	Slot        string      `json:"slot"`
	GameType    GameType    `json:"game_type"`
	BookingType BookingType `json:"booking_type"`
	Gender      Gender      `json:"gender"`
}

// missingFields returns the names of required fields left empty, so a single
// response can report all of them at once.
func (r CreateBookingRequest) missingFields() []string {
	var fields []string
	if r.Date == "" {
		fields = append(fields, "date")
	}
	if r.Slot == "" {
		fields = append(fields, "slot")
	}
	if r.GameType == "" {
		fields = append(fields, "game_type")
	}
	if r.BookingType == "" {
		fields = append(fields, "booking_type")
	}
	return fields
}
