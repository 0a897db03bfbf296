package bookings

// BookingListResponse is the paginated envelope for booking listings
type BookingListResponse struct {
	Bookings []Booking `json:"bookings"`
	Total    int64     `json:"total"`
	Page     int       `json:"page"`
	Limit    int       `json:"limit"`
}

// PublicBookingResponse decorates a public booking with its party headroom
type PublicBookingResponse struct {
	Booking
	Capacity  int `json:"capacity"`
	OpenSlots int `json:"open_slots"`
	PartySize int `json:"party_size"`
}

// NewPublicBookingResponse computes the party headroom for a listing row
func NewPublicBookingResponse(b Booking) PublicBookingResponse {
	capacity := b.GameType.PlayerCount()
	size := len(b.Players)
	open := capacity - size
	if open < 0 {
		open = 0
	}
	return PublicBookingResponse{
		Booking:   b,
		Capacity:  capacity,
		OpenSlots: open,
		PartySize: size,
	}
}
