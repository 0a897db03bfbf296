package refunds

import (
	"context"
	"errors"
	"time"

	"courtside/internal/bookings"
	"courtside/internal/shared/apperrors"
	"courtside/pkg/logger"

	"github.com/google/uuid"
)

// BookingReader is the slice of the booking service the refund engine needs.
type BookingReader interface {
	GetBooking(ctx context.Context, id uuid.UUID) (*bookings.Booking, error)
}

// Notifier receives fire-and-forget cancellation and refund events. Defined
// locally so the notifications package stays a leaf dependency.
type Notifier interface {
	BookingCancelled(booking *bookings.Booking)
	RefundCreated(userID, bookingID uuid.UUID, bookingRef string, amount float64)
}

// CancellationResult pairs the cancelled booking with its refund record.
type CancellationResult struct {
	Booking *bookings.Booking `json:"booking"`
	Refund  *Refund           `json:"refund"`
}

// LeaveResult is the outcome of a player leaving a public match.
type LeaveResult struct {
	BookingID uuid.UUID `json:"booking_id"`
	Refund    *Refund   `json:"refund"`
}

// Service interface defines the contract for cancellation and refund logic
type Service interface {
	// CancelBooking cancels the caller's own booking and writes the refund
	// record in the same transaction. The full session price comes back when
	// the cancellation beats the cutoff; otherwise a zero-amount record
	// documents the forfeit.
	CancelBooking(ctx context.Context, bookingID, userID uuid.UUID) (*CancellationResult, error)
	// LeaveBooking removes the caller from a public match party. The refund
	// share is the session price split across the activity's fixed capacity,
	// not across however many players enrolled.
	LeaveBooking(ctx context.Context, bookingID, userID uuid.UUID) (*LeaveResult, error)
	ListUserRefunds(ctx context.Context, userID uuid.UUID, page, limit int) ([]Refund, int64, error)
}

type service struct {
	repo     Repository
	bookings BookingReader
	notifier Notifier
	log      *logger.Logger
	now      func() time.Time
}

// NewService creates a new refund service instance. notifier is optional;
// nil disables cancellation and refund events.
func NewService(repo Repository, bookingReader BookingReader, notifier Notifier, log *logger.Logger) Service {
	return &service{
		repo:     repo,
		bookings: bookingReader,
		notifier: notifier,
		log:      log,
		now:      time.Now,
	}
}

func (s *service) CancelBooking(ctx context.Context, bookingID, userID uuid.UUID) (*CancellationResult, error) {
	booking, err := s.bookings.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != userID {
		return nil, apperrors.Forbidden("only the booking owner can cancel it")
	}
	if !booking.Status.CanTransitionTo(bookings.StatusCancelled) {
		return nil, apperrors.Conflict("booking is already " + string(booking.Status))
	}

	now := s.now()
	matchAt, err := booking.SlotStart(now.Location())
	if err != nil {
		return nil, apperrors.Transient("failed to parse booking slot", err)
	}

	eligible := Eligible(booking.CreatedAt, matchAt, now)
	amount := 0.0
	if eligible {
		amount = booking.SessionPrice
	}

	refund := &Refund{
		UserID:     userID,
		BookingID:  booking.ID,
		BookingRef: booking.BookingRef,
		Eligible:   eligible,
		Amount:     amount,
		Reason:     "booking_cancelled",
		Status:     StatusPending,
	}

	moved, err := s.repo.CancelAndCreate(ctx, refund, booking.ID, booking.Status, now)
	if err != nil {
		return nil, apperrors.Transient("failed to cancel booking", err)
	}
	if !moved {
		return nil, apperrors.Conflict("booking was updated concurrently, try again")
	}

	booking.Status = bookings.StatusCancelled
	booking.CancelledAt = &now

	s.log.LogBookingCancelled(ctx, booking.ID.String(), userID.String(), eligible)
	if s.notifier != nil {
		s.notifier.BookingCancelled(booking)
		if eligible {
			s.notifier.RefundCreated(userID, booking.ID, booking.BookingRef, amount)
		}
	}

	return &CancellationResult{Booking: booking, Refund: refund}, nil
}

func (s *service) LeaveBooking(ctx context.Context, bookingID, userID uuid.UUID) (*LeaveResult, error) {
	booking, err := s.bookings.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID == userID {
		return nil, apperrors.Conflict("the booking owner cancels instead of leaving")
	}
	if booking.Status.IsTerminal() {
		return nil, apperrors.Conflict("booking is already " + string(booking.Status))
	}

	now := s.now()
	matchAt, err := booking.SlotStart(now.Location())
	if err != nil {
		return nil, apperrors.Transient("failed to parse booking slot", err)
	}

	eligible := Eligible(booking.CreatedAt, matchAt, now)
	amount := 0.0
	if eligible {
		if capacity := booking.GameType.PlayerCount(); capacity > 0 {
			amount = booking.SessionPrice / float64(capacity)
		}
	}

	refund := &Refund{
		UserID:     userID,
		BookingID:  booking.ID,
		BookingRef: booking.BookingRef,
		Eligible:   eligible,
		Amount:     amount,
		Reason:     "player_left",
		Status:     StatusPending,
	}

	if err := s.repo.RemoveAndCreate(ctx, refund, booking.ID, userID); err != nil {
		if errors.Is(err, bookings.ErrNotMember) {
			return nil, apperrors.NotFound("you are not in this booking")
		}
		return nil, apperrors.Transient("failed to leave booking", err)
	}

	if s.notifier != nil && eligible {
		s.notifier.RefundCreated(userID, booking.ID, booking.BookingRef, amount)
	}

	return &LeaveResult{BookingID: booking.ID, Refund: refund}, nil
}

func (s *service) ListUserRefunds(ctx context.Context, userID uuid.UUID, page, limit int) ([]Refund, int64, error) {
	out, total, err := s.repo.ListForUser(ctx, userID, page, limit)
	if err != nil {
		return nil, 0, apperrors.Transient("failed to list refunds", err)
	}
	return out, total, nil
}
