package activity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Metadata is a free-form JSONB payload attached to an activity row.
type Metadata map[string]interface{}

func (m Metadata) Value() (driver.Value, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(m)
}

func (m *Metadata) Scan(value interface{}) error {
	if value == nil {
		*m = Metadata{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return fmt.Errorf("unsupported type %T for Metadata", value)
	}
}

// UserActivity is one audit-trail entry. Rows are written asynchronously and
// best-effort; losing one under pressure is acceptable, blocking a booking
// request is not.
type UserActivity struct {
	ID       uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID   uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	Action   string    `gorm:"type:varchar(60);not null" json:"action"`
	Metadata Metadata  `gorm:"type:jsonb" json:"metadata"`

	CreatedAt time.Time `json:"created_at"`
}

func (UserActivity) TableName() string {
	return "user_activities"
}
