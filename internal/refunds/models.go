package refunds

import (
	"time"

	"github.com/google/uuid"
)

// RefundStatus tracks a refund through the back-office pipeline
type RefundStatus string

const (
	StatusPending  RefundStatus = "pending"
	StatusApproved RefundStatus = "approved"
	StatusRejected RefundStatus = "rejected"
	StatusRefunded RefundStatus = "refunded"
)

// Refund is the money-side record of a cancellation or a player leaving a
// public match. Ineligible cancellations still get a zero-amount row so the
// audit trail is complete.
type Refund struct {
	ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	BookingID  uuid.UUID `gorm:"type:uuid;index;not null" json:"booking_id"`
	BookingRef string    `gorm:"type:varchar(24);not null" json:"booking_ref"`

	Eligible bool         `gorm:"not null" json:"eligible"`
	Amount   float64      `gorm:"not null" json:"amount"`
	Reason   string       `gorm:"type:varchar(60);not null" json:"reason"`
	Status   RefundStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Refund) TableName() string {
	return "refunds"
}
