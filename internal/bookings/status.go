package bookings

// BookingStatus represents the lifecycle state of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusElapsed   BookingStatus = "elapsed"
)

func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusElapsed:
		return true
	}
	return false
}

// IsTerminal reports whether no further transitions are allowed
func (s BookingStatus) IsTerminal() bool {
	return s == StatusCancelled || s == StatusElapsed
}

// CanTransitionTo enforces the one-directional lifecycle: pending may confirm,
// cancel, or elapse; confirmed may only cancel. Terminal states never move.
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	switch s {
	case StatusPending:
		return target == StatusConfirmed || target == StatusCancelled || target == StatusElapsed
	case StatusConfirmed:
		return target == StatusCancelled
	default:
		return false
	}
}

// Active reports whether the booking still holds its slot. Cancelled rows
// release the slot; every other state keeps it occupied.
func (s BookingStatus) Active() bool {
	return s != StatusCancelled
}
