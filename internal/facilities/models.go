package facilities

import (
	"time"

	"github.com/google/uuid"
)

// Facility is a sports center owning one or more bookable courts.
type Facility struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(160);uniqueIndex;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	Address     string    `gorm:"type:varchar(255)" json:"address,omitempty"`
	Phone       string    `gorm:"type:varchar(40)" json:"phone,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Facility) TableName() string {
	return "facilities"
}
