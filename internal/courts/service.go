package courts

import (
	"context"
	"errors"
	"time"

	"courtside/internal/shared/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BookingSource exposes the live reservation state the resolver diffs the
// generated calendar against. Implemented by the bookings store; defined here
// to keep the dependency one-way.
type BookingSource interface {
	// BookedSlotKeys returns the "date#slot" keys of all non-cancelled
	// reservations for a court within [fromDate, toDate] inclusive.
	BookedSlotKeys(ctx context.Context, courtID uuid.UUID, fromDate, toDate string) (map[string]struct{}, error)
	// BookedCourtIDs returns which of the given courts hold a non-cancelled
	// reservation at (date, slot).
	BookedCourtIDs(ctx context.Context, courtIDs []uuid.UUID, date, slot string) (map[uuid.UUID]struct{}, error)
}

// Availability states of a slot descriptor. Descriptors are ephemeral:
// recomputed from the policy and live reservations on every query, never
// persisted.
const (
	SlotAvailable   = "available"
	SlotUnavailable = "unavailable"
)

// SlotDescriptor is a generated slot labeled with its availability.
type SlotDescriptor struct {
	SlotRef
	Status string `json:"status"`
}

// Service interface defines the contract for court and availability logic
type Service interface {
	CreateCourt(ctx context.Context, req CreateCourtRequest) (*Court, error)
	GetCourt(ctx context.Context, id uuid.UUID) (*Court, error)
	ListByFacility(ctx context.Context, facilityID uuid.UUID) ([]Court, error)
	UpdatePricing(ctx context.Context, id uuid.UUID, sessionPrice float64, sessionDuration int) error

	// DayAvailability resolves one court's slots for a single date.
	DayAvailability(ctx context.Context, courtID uuid.UUID, date string) ([]SlotDescriptor, error)
	// CalendarAvailability resolves one court's slots over a horizon.
	CalendarAvailability(ctx context.Context, courtID uuid.UUID, horizonDays int) ([]SlotDescriptor, error)
	// AvailableCourtsAt returns the facility's courts still open at (date, slot).
	AvailableCourtsAt(ctx context.Context, facilityID uuid.UUID, date, slot string) ([]Court, error)
}

type service struct {
	repo     Repository
	bookings BookingSource
	now      func() time.Time
}

// NewService creates a new court service instance
func NewService(repo Repository, bookings BookingSource) Service {
	return &service{
		repo:     repo,
		bookings: bookings,
		now:      time.Now,
	}
}

func (s *service) CreateCourt(ctx context.Context, req CreateCourtRequest) (*Court, error) {
	if err := req.Hours.Validate(); err != nil {
		return nil, apperrors.Validation("invalid operating hours", "hours")
	}

	court := &Court{
		FacilityID:      req.FacilityID,
		Name:            req.Name,
		Activity:        req.Activity,
		Hours:           req.Hours,
		SessionPrice:    req.SessionPrice,
		SessionDuration: req.SessionDuration,
		SlotInterval:    req.SlotInterval,
	}
	if court.SlotInterval <= 0 {
		court.SlotInterval = 30
	}

	if err := s.repo.Create(ctx, court); err != nil {
		return nil, apperrors.Transient("failed to create court", err)
	}
	return court, nil
}

func (s *service) GetCourt(ctx context.Context, id uuid.UUID) (*Court, error) {
	court, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("court not found")
		}
		return nil, apperrors.Transient("failed to get court", err)
	}
	return court, nil
}

func (s *service) ListByFacility(ctx context.Context, facilityID uuid.UUID) ([]Court, error) {
	out, err := s.repo.ListByFacility(ctx, facilityID)
	if err != nil {
		return nil, apperrors.Transient("failed to list courts", err)
	}
	return out, nil
}

func (s *service) UpdatePricing(ctx context.Context, id uuid.UUID, sessionPrice float64, sessionDuration int) error {
	if sessionPrice <= 0 || sessionDuration <= 0 {
		return apperrors.Validation("price and duration must be positive", "session_price", "session_duration")
	}
	if err := s.repo.UpdatePricing(ctx, id, sessionPrice, sessionDuration); err != nil {
		return apperrors.Transient("failed to update court pricing", err)
	}
	return nil
}

func (s *service) DayAvailability(ctx context.Context, courtID uuid.UUID, date string) ([]SlotDescriptor, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, apperrors.Validation("date must be formatted YYYY-MM-DD", "date")
	}

	court, err := s.GetCourt(ctx, courtID)
	if err != nil {
		return nil, err
	}

	generated := DaySlots(PolicyOf(court), day)
	return s.classify(ctx, courtID, generated, date, date)
}

func (s *service) CalendarAvailability(ctx context.Context, courtID uuid.UUID, horizonDays int) ([]SlotDescriptor, error) {
	court, err := s.GetCourt(ctx, courtID)
	if err != nil {
		return nil, err
	}

	from := s.now()
	generated := GenerateCalendar(PolicyOf(court), from, horizonDays)
	if len(generated) == 0 {
		return []SlotDescriptor{}, nil
	}

	fromDate := from.Format("2006-01-02")
	toDate := from.AddDate(0, 0, horizonDays-1).Format("2006-01-02")
	return s.classify(ctx, courtID, generated, fromDate, toDate)
}

// classify performs the set difference between the generated calendar and
// live reservations.
func (s *service) classify(ctx context.Context, courtID uuid.UUID, generated []SlotRef, fromDate, toDate string) ([]SlotDescriptor, error) {
	booked, err := s.bookings.BookedSlotKeys(ctx, courtID, fromDate, toDate)
	if err != nil {
		return nil, apperrors.Transient("failed to load reservations", err)
	}

	out := make([]SlotDescriptor, 0, len(generated))
	for _, ref := range generated {
		status := SlotAvailable
		if _, taken := booked[ref.Key()]; taken {
			status = SlotUnavailable
		}
		out = append(out, SlotDescriptor{SlotRef: ref, Status: status})
	}
	return out, nil
}

func (s *service) AvailableCourtsAt(ctx context.Context, facilityID uuid.UUID, date, slot string) ([]Court, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, apperrors.Validation("date must be formatted YYYY-MM-DD", "date")
	}
	if slot == "" {
		return nil, apperrors.Validation("missing required fields", "slot")
	}

	courtsList, err := s.repo.ListByFacility(ctx, facilityID)
	if err != nil {
		return nil, apperrors.Transient("failed to list courts", err)
	}
	if len(courtsList) == 0 {
		return []Court{}, nil
	}

	ids := make([]uuid.UUID, 0, len(courtsList))
	for _, c := range courtsList {
		ids = append(ids, c.ID)
	}

	taken, err := s.bookings.BookedCourtIDs(ctx, ids, date, slot)
	if err != nil {
		return nil, apperrors.Transient("failed to load reservations", err)
	}

	open := make([]Court, 0, len(courtsList))
	for _, c := range courtsList {
		if _, booked := taken[c.ID]; booked {
			continue
		}
		// Only offer courts whose policy actually produces this slot.
		if !policyOffers(PolicyOf(&c), date, slot) {
			continue
		}
		open = append(open, c)
	}
	return open, nil
}

// policyOffers reports whether the court's schedule generates (date, slot).
func policyOffers(policy SlotPolicy, date, slot string) bool {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return false
	}
	found := false
	WalkSlots(policy, day, 1, func(ref SlotRef) bool {
		if ref.Slot == slot {
			found = true
			return false
		}
		return true
	})
	return found
}
