package bookings

import (
	"context"
	"errors"
	"time"

	"courtside/internal/shared/apperrors"
	"courtside/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CourtInfo is the projection of a court the booking engine needs.
type CourtInfo struct {
	ID              uuid.UUID
	FacilityID      uuid.UUID
	Activity        string
	SessionPrice    float64
	SessionDuration int
}

// CourtDirectory is how the booking engine reads court data. Defined locally
// so the courts package never has to import this one.
type CourtDirectory interface {
	CourtInfo(ctx context.Context, id uuid.UUID) (*CourtInfo, error)
	// OffersSlot reports whether the court's operating schedule generates
	// (date, slot) at all.
	OffersSlot(ctx context.Context, courtID uuid.UUID, date, slot string) (bool, error)
}

// ActivityRecorder receives fire-and-forget audit events. Implementations
// must not block the request path.
type ActivityRecorder interface {
	Record(userID uuid.UUID, action string, metadata map[string]interface{})
}

// Notifier fans booking lifecycle events out to the notification pipeline.
// All methods are fire-and-forget.
type Notifier interface {
	BookingCreated(booking *Booking)
	PlayerJoined(booking *Booking, userID uuid.UUID)
}

// Service interface defines the contract for booking business logic
type Service interface {
	// CreateBooking reserves a slot. requiresPayment decides whether the row
	// starts pending (awaiting payment confirmation) or confirmed.
	CreateBooking(ctx context.Context, req CreateBookingRequest, requiresPayment bool) (*Booking, error)
	GetBooking(ctx context.Context, id uuid.UUID) (*Booking, error)
	ListPublicBookings(ctx context.Context, page, limit int) ([]Booking, int64, error)
	ListUserBookings(ctx context.Context, userID uuid.UUID, page, limit int) ([]Booking, int64, error)

	JoinBooking(ctx context.Context, bookingID, userID uuid.UUID) (*Booking, error)

	// ConfirmByRef moves a pending booking to confirmed once payment clears.
	ConfirmByRef(ctx context.Context, bookingRef string) (*Booking, error)

	// ExpireOverdue sweeps pending private bookings whose slot has passed.
	ExpireOverdue(ctx context.Context) (int64, error)
}

type service struct {
	repo     Repository
	courts   CourtDirectory
	activity ActivityRecorder
	notifier Notifier
	log      *logger.Logger

	grace time.Duration
	now   func() time.Time
}

// NewService creates a new booking service instance. activity and notifier
// are optional; nil disables the corresponding side channel.
func NewService(repo Repository, courts CourtDirectory, activity ActivityRecorder, notifier Notifier, log *logger.Logger, graceMinutes int) Service {
	return &service{
		repo:     repo,
		courts:   courts,
		activity: activity,
		notifier: notifier,
		log:      log,
		grace:    time.Duration(graceMinutes) * time.Minute,
		now:      time.Now,
	}
}

func (s *service) CreateBooking(ctx context.Context, req CreateBookingRequest, requiresPayment bool) (*Booking, error) {
	if fields := req.missingFields(); len(fields) > 0 {
		return nil, apperrors.Validation("missing required fields", fields...)
	}
	if !req.GameType.IsValid() {
		return nil, apperrors.Validation("unknown game type", "game_type")
	}
	if !req.BookingType.IsValid() {
		return nil, apperrors.Validation("unknown booking type", "booking_type")
	}
	if req.BookingType == TypePublic && !req.Gender.IsValid() {
		return nil, apperrors.Validation("public bookings require a gender composition", "gender")
	}
	if req.BookingType == TypeAcademy && req.Requester != RequesterSystem {
		return nil, apperrors.Forbidden("academy blocks are placed by the scheduler only")
	}

	day, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, apperrors.Validation("date must be formatted YYYY-MM-DD", "date")
	}

	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if day.Before(today) {
		return nil, apperrors.Validation("cannot book a past date", "date")
	}
	if req.HorizonDays > 0 && day.After(today.AddDate(0, 0, req.HorizonDays-1)) {
		return nil, apperrors.Forbidden("date is beyond your booking horizon")
	}

	court, err := s.courts.CourtInfo(ctx, req.CourtID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) || apperrors.IsKind(err, apperrors.KindNotFound) {
			return nil, apperrors.NotFound("court not found")
		}
		return nil, apperrors.Transient("failed to load court", err)
	}
	if court.Activity != string(req.GameType) {
		return nil, apperrors.Validation("court does not host this game type", "game_type")
	}

	offered, err := s.courts.OffersSlot(ctx, req.CourtID, req.Date, req.Slot)
	if err != nil {
		return nil, apperrors.Transient("failed to check court schedule", err)
	}
	if !offered {
		return nil, apperrors.Validation("court is not open at this slot", "slot")
	}

	status := StatusConfirmed
	if requiresPayment {
		status = StatusPending
	}

	booking := &Booking{
		BookingRef:      GenerateBookingRef(now),
		UserID:          req.UserID,
		CourtID:         req.CourtID,
		Date:            req.Date,
		Slot:            req.Slot,
		GameType:        req.GameType,
		BookingType:     req.BookingType,
		Gender:          req.Gender,
		SessionPrice:    court.SessionPrice,
		SessionDuration: court.SessionDuration,
		Status:          status,
	}

	if err := s.repo.CreateExclusive(ctx, booking); err != nil {
		if errors.Is(err, ErrSlotTaken) {
			return nil, apperrors.Conflict("slot is already booked")
		}
		return nil, apperrors.Transient("failed to create booking", err)
	}

	s.log.LogBookingCreated(ctx, booking.ID.String(), booking.CourtID.String(), booking.UserID.String())
	if s.activity != nil {
		s.activity.Record(booking.UserID, "booking_created", map[string]interface{}{
			"booking_id":  booking.ID.String(),
			"booking_ref": booking.BookingRef,
			"court_id":    booking.CourtID.String(),
			"date":        booking.Date,
			"slot":        booking.Slot,
		})
	}
	if s.notifier != nil {
		s.notifier.BookingCreated(booking)
	}

	return booking, nil
}

func (s *service) GetBooking(ctx context.Context, id uuid.UUID) (*Booking, error) {
	booking, err := s.repo.GetByIDWithPlayers(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("booking not found")
		}
		return nil, apperrors.Transient("failed to get booking", err)
	}
	return booking, nil
}

// ListPublicBookings lists upcoming public matches only: same-day rows whose
// slot already started are dropped before pagination.
func (s *service) ListPublicBookings(ctx context.Context, page, limit int) ([]Booking, int64, error) {
	now := s.now()
	today := now.Format("2006-01-02")

	rows, err := s.repo.ListPublic(ctx, today)
	if err != nil {
		return nil, 0, apperrors.Transient("failed to list public bookings", err)
	}

	upcoming := make([]Booking, 0, len(rows))
	for _, b := range rows {
		if b.Date == today {
			start, err := b.SlotStart(now.Location())
			if err != nil || !start.After(now) {
				continue
			}
		}
		upcoming = append(upcoming, b)
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	total := int64(len(upcoming))
	offset := (page - 1) * limit
	if offset >= len(upcoming) {
		return []Booking{}, total, nil
	}
	end := offset + limit
	if end > len(upcoming) {
		end = len(upcoming)
	}
	return upcoming[offset:end], total, nil
}

func (s *service) ListUserBookings(ctx context.Context, userID uuid.UUID, page, limit int) ([]Booking, int64, error) {
	out, total, err := s.repo.ListForUser(ctx, userID, page, limit)
	if err != nil {
		return nil, 0, apperrors.Transient("failed to list bookings", err)
	}
	return out, total, nil
}

func (s *service) JoinBooking(ctx context.Context, bookingID, userID uuid.UUID) (*Booking, error) {
	if err := s.repo.AddPlayer(ctx, bookingID, userID); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, apperrors.NotFound("booking not found")
		case errors.Is(err, ErrNotJoinable):
			return nil, apperrors.Conflict("booking is not open for joining")
		case errors.Is(err, ErrPartyFull):
			return nil, apperrors.Capacity("booking party is full")
		case errors.Is(err, ErrAlreadyMember):
			return nil, apperrors.Conflict("you are already in this booking")
		default:
			return nil, apperrors.Transient("failed to join booking", err)
		}
	}

	booking, err := s.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	s.log.LogPlayerJoined(ctx, bookingID.String(), userID.String())
	if s.activity != nil {
		s.activity.Record(userID, "match_joined", map[string]interface{}{
			"booking_id": bookingID.String(),
		})
	}
	if s.notifier != nil {
		s.notifier.PlayerJoined(booking, userID)
	}

	return booking, nil
}

func (s *service) ConfirmByRef(ctx context.Context, bookingRef string) (*Booking, error) {
	booking, err := s.repo.GetByRef(ctx, bookingRef)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("booking not found")
		}
		return nil, apperrors.Transient("failed to get booking", err)
	}

	moved, err := s.repo.TransitionStatus(ctx, booking.ID, StatusPending, StatusConfirmed, nil)
	if err != nil {
		return nil, apperrors.Transient("failed to confirm booking", err)
	}
	if !moved {
		if booking.Status == StatusConfirmed {
			return booking, nil // already confirmed, verification retries are fine
		}
		return nil, apperrors.Conflict("booking can no longer be confirmed")
	}

	booking.Status = StatusConfirmed
	return booking, nil
}

func (s *service) ExpireOverdue(ctx context.Context) (int64, error) {
	started := s.now()
	expired, err := s.repo.ExpireOverdue(ctx, started, s.grace)
	if err != nil {
		return 0, apperrors.Transient("expiry sweep failed", err)
	}
	s.log.LogSweepCompleted(ctx, expired, time.Since(started))
	return expired, nil
}
