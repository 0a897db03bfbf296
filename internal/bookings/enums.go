package bookings

// GameType enumerates the activities a court can host. The capacity of a
// public match is fixed per activity, not per booking.
type GameType string

const (
	GamePadel   GameType = "padel"
	GameSnooker GameType = "snooker"
	GameDarts   GameType = "darts"
)

// IsValid checks whether a game type is recognized
func (g GameType) IsValid() bool {
	switch g {
	case GamePadel, GameSnooker, GameDarts:
		return true
	}
	return false
}

// PlayerCount returns the fixed party capacity for the activity. It also acts
// as the divisor when a leaving player's refund share is computed, regardless
// of how many players actually enrolled.
func (g GameType) PlayerCount() int {
	switch g {
	case GamePadel:
		return 4
	case GameSnooker, GameDarts:
		return 2
	default:
		return 0
	}
}

// BookingType controls who may see and join a booking
type BookingType string

const (
	TypePrivate BookingType = "private"
	TypePublic  BookingType = "public"
	TypeAcademy BookingType = "academy"
)

func (t BookingType) IsValid() bool {
	switch t {
	case TypePrivate, TypePublic, TypeAcademy:
		return true
	}
	return false
}

// Gender is the declared composition of a public match
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderMixed  Gender = "mixed"
)

func (g Gender) IsValid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderMixed:
		return true
	}
	return false
}

// RequesterKind distinguishes end users from internal schedulers. Academy
// blocks are placed by system requesters and skip payment entirely.
type RequesterKind string

const (
	RequesterUser   RequesterKind = "user"
	RequesterSystem RequesterKind = "system"
)
