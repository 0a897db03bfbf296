package courts

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DaySchedule describes a single weekday's operating window on a 24-hour
// clock. A closed day carries no hours.
type DaySchedule struct {
	Closed    bool `json:"closed"`
	OpenHour  int  `json:"open_hour"`
	CloseHour int  `json:"close_hour"`
}

// WeekSchedule is the day-of-week-keyed operating-hours policy for a court,
// persisted as a single JSONB column and validated before writes.
type WeekSchedule struct {
	Monday    DaySchedule `json:"monday"`
	Tuesday   DaySchedule `json:"tuesday"`
	Wednesday DaySchedule `json:"wednesday"`
	Thursday  DaySchedule `json:"thursday"`
	Friday    DaySchedule `json:"friday"`
	Saturday  DaySchedule `json:"saturday"`
	Sunday    DaySchedule `json:"sunday"`
}

// Day returns the schedule for a weekday.
func (ws WeekSchedule) Day(d time.Weekday) DaySchedule {
	switch d {
	case time.Monday:
		return ws.Monday
	case time.Tuesday:
		return ws.Tuesday
	case time.Wednesday:
		return ws.Wednesday
	case time.Thursday:
		return ws.Thursday
	case time.Friday:
		return ws.Friday
	case time.Saturday:
		return ws.Saturday
	default:
		return ws.Sunday
	}
}

// Validate rejects schedules with inverted or out-of-range hours on open days.
func (ws WeekSchedule) Validate() error {
	days := []DaySchedule{ws.Monday, ws.Tuesday, ws.Wednesday, ws.Thursday, ws.Friday, ws.Saturday, ws.Sunday}
	for _, day := range days {
		if day.Closed {
			continue
		}
		if day.OpenHour < 0 || day.CloseHour > 24 || day.OpenHour >= day.CloseHour {
			return fmt.Errorf("invalid operating window %d-%d", day.OpenHour, day.CloseHour)
		}
	}
	return nil
}

// Value implements driver.Valuer so GORM stores the schedule as JSONB.
func (ws WeekSchedule) Value() (driver.Value, error) {
	return json.Marshal(ws)
}

// Scan implements sql.Scanner.
func (ws *WeekSchedule) Scan(value interface{}) error {
	if value == nil {
		*ws = WeekSchedule{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, ws)
	case string:
		return json.Unmarshal([]byte(v), ws)
	default:
		return fmt.Errorf("unsupported type %T for WeekSchedule", value)
	}
}

// Court is a bookable unit owned by a facility. Price and duration are
// denormalized onto each booking at creation time, so updating them here
// never rewrites history.
type Court struct {
	ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	FacilityID uuid.UUID `gorm:"type:uuid;index;not null" json:"facility_id"`
	Name       string    `gorm:"type:varchar(120);not null" json:"name"`
	Activity   string    `gorm:"type:varchar(40);not null" json:"activity"`

	Hours           WeekSchedule `gorm:"type:jsonb;not null" json:"hours"`
	SessionPrice    float64      `gorm:"not null" json:"session_price"`
	SessionDuration int          `gorm:"not null" json:"session_duration"` // minutes
	SlotInterval    int          `gorm:"not null;default:30" json:"slot_interval"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Court) TableName() string {
	return "courts"
}
