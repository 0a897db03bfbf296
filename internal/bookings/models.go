package bookings

import (
	"time"

	"github.com/google/uuid"
)

// Booking is one reservation of a (court, date, slot) triple. Price and
// duration are copied from the court at creation time so later pricing
// changes never rewrite existing bookings.
//
// A partial unique index on (court_id, date, slot) over non-cancelled rows
// backs the exclusivity guarantee; see the constraints migration.
type Booking struct {
	ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	BookingRef string    `gorm:"type:varchar(24);uniqueIndex;not null" json:"booking_ref"`

	UserID  uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	CourtID uuid.UUID `gorm:"type:uuid;index;not null" json:"court_id"`

	Date string `gorm:"type:varchar(10);not null" json:"date"` // 2006-01-02
	Slot string `gorm:"type:varchar(10);not null" json:"slot"` // 3:04 PM

	GameType    GameType    `gorm:"type:varchar(20);not null" json:"game_type"`
	BookingType BookingType `gorm:"type:varchar(20);not null" json:"booking_type"`
	Gender      Gender      `gorm:"type:varchar(10)" json:"gender,omitempty"`

	SessionPrice    float64 `gorm:"not null" json:"session_price"`
	SessionDuration int     `gorm:"not null" json:"session_duration"` // minutes

	Status      BookingStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CancelledAt *time.Time    `json:"cancelled_at,omitempty"`

	Players []BookingPlayer `gorm:"foreignKey:BookingID" json:"players,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Booking) TableName() string {
	return "bookings"
}

// SlotStart parses the booking's date and slot label into a wall-clock time.
func (b *Booking) SlotStart(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation("2006-01-02 3:04 PM", b.Date+" "+b.Slot, loc)
}

// ExpiredBy reports whether a pending private booking has outlived its slot:
// the session end plus a grace period is behind now. Only pending private
// bookings are swept; the caller filters on those.
func (b *Booking) ExpiredBy(now time.Time, grace time.Duration) bool {
	start, err := b.SlotStart(now.Location())
	if err != nil {
		return false
	}
	deadline := start.Add(time.Duration(b.SessionDuration) * time.Minute).Add(grace)
	return now.After(deadline)
}

// BookingPlayer is one member of a booking's party. The creator of a public
// booking is enrolled automatically; others join through the public listing.
type BookingPlayer struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	BookingID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_booking_players_member" json:"booking_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_booking_players_member" json:"user_id"`

	CreatedAt time.Time `json:"created_at"`
}

func (BookingPlayer) TableName() string {
	return "booking_players"
}
