package courts

// DayAvailabilityResponse is the per-court slot listing for one date
type DayAvailabilityResponse struct {
	CourtID string           `json:"court_id"`
	Date    string           `json:"date"`
	Slots   []SlotDescriptor `json:"slots"`
}

// CalendarResponse is the per-court slot listing over a booking horizon
type CalendarResponse struct {
	CourtID     string           `json:"court_id"`
	HorizonDays int              `json:"horizon_days"`
	Slots       []SlotDescriptor `json:"slots"`
}

// FacilityAvailabilityResponse lists the courts still open at one slot
type FacilityAvailabilityResponse struct {
	FacilityID string  `json:"facility_id"`
	Date       string  `json:"date"`
	Slot       string  `json:"slot"`
	Courts     []Court `json:"courts"`
}
