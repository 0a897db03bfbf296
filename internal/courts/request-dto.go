package courts

import "github.com/google/uuid"

// CreateCourtRequest represents a request to register a court under a facility
type CreateCourtRequest struct {
	FacilityID      uuid.UUID    `json:"-"`
	Name            string       `json:"name" binding:"required,min=2,max=120"`
	Activity        string       `json:"activity" binding:"required,oneof=padel snooker darts"`
	Hours           WeekSchedule `json:"hours" binding:"required"`
	SessionPrice    float64      `json:"session_price" binding:"required,gt=0"`
	SessionDuration int          `json:"session_duration" binding:"required,gt=0"`
	SlotInterval    int          `json:"slot_interval" binding:"omitempty,gt=0"`
}

// UpdatePricingRequest represents a request to change a court's session terms
type UpdatePricingRequest struct {
	SessionPrice    float64 `json:"session_price" binding:"required,gt=0"`
	SessionDuration int     `json:"session_duration" binding:"required,gt=0"`
}

// AvailabilityQuery carries the facility-level availability filter
type AvailabilityQuery struct {
	Date string `form:"date" binding:"required"`
	Slot string `form:"slot" binding:"required"`
}
