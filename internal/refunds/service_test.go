package refunds

import (
	"context"
	"errors"
	"testing"
	"time"

	"courtside/internal/bookings"
	"courtside/internal/shared/apperrors"
	"courtside/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBookingReader struct {
	booking *bookings.Booking
}

func (f *fakeBookingReader) GetBooking(_ context.Context, id uuid.UUID) (*bookings.Booking, error) {
	if f.booking == nil || f.booking.ID != id {
		return nil, apperrors.NotFound("booking not found")
	}
	copied := *f.booking
	return &copied, nil
}

// fakeRefundRepo emulates the transactional writes: on a simulated insert
// failure nothing is mutated, matching a rolled-back transaction.
type fakeRefundRepo struct {
	booking    *bookings.Booking
	players    map[uuid.UUID]struct{}
	created    []*Refund
	failCreate bool
}

func (f *fakeRefundRepo) CancelAndCreate(_ context.Context, refund *Refund, bookingID uuid.UUID, from bookings.BookingStatus, at time.Time) (bool, error) {
	if f.booking == nil || f.booking.ID != bookingID || f.booking.Status != from {
		return false, nil
	}
	if f.failCreate {
		return false, errors.New("refund insert failed")
	}
	f.booking.Status = bookings.StatusCancelled
	f.booking.CancelledAt = &at
	f.created = append(f.created, refund)
	return true, nil
}

func (f *fakeRefundRepo) RemoveAndCreate(_ context.Context, refund *Refund, _ uuid.UUID, userID uuid.UUID) error {
	if _, ok := f.players[userID]; !ok {
		return bookings.ErrNotMember
	}
	if f.failCreate {
		return errors.New("refund insert failed")
	}
	delete(f.players, userID)
	f.created = append(f.created, refund)
	return nil
}

func (f *fakeRefundRepo) GetByID(_ context.Context, id uuid.UUID) (*Refund, error) {
	for _, r := range f.created {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, apperrors.NotFound("refund not found")
}

func (f *fakeRefundRepo) ListForUser(_ context.Context, userID uuid.UUID, _, _ int) ([]Refund, int64, error) {
	var out []Refund
	for _, r := range f.created {
		if r.UserID == userID {
			out = append(out, *r)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeRefundRepo) UpdateStatus(_ context.Context, id uuid.UUID, status RefundStatus) error {
	for _, r := range f.created {
		if r.ID == id {
			r.Status = status
			return nil
		}
	}
	return apperrors.NotFound("refund not found")
}

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

// testBooking is confirmed, owned by owner, playing 2026-03-10 at 9:00 AM,
// booked ten days ahead so the 72-hour cutoff applies.
func testBooking(owner uuid.UUID) *bookings.Booking {
	return &bookings.Booking{
		ID:              uuid.New(),
		BookingRef:      "CRT-20260228-A1B2C3",
		UserID:          owner,
		CourtID:         uuid.New(),
		Date:            "2026-03-10",
		Slot:            "9:00 AM",
		GameType:        bookings.GamePadel,
		BookingType:     bookings.TypePublic,
		SessionPrice:    24000,
		SessionDuration: 90,
		Status:          bookings.StatusConfirmed,
		CreatedAt:       time.Date(2026, 2, 28, 9, 0, 0, 0, time.UTC),
	}
}

// newCancelFixture wires the fakes around a shared booking so repo writes are
// visible through the reader.
func newCancelFixture(owner uuid.UUID, players ...uuid.UUID) (*service, *fakeRefundRepo) {
	booking := testBooking(owner)
	repo := &fakeRefundRepo{
		booking: booking,
		players: map[uuid.UUID]struct{}{owner: {}},
	}
	for _, p := range players {
		repo.players[p] = struct{}{}
	}
	svc := NewService(repo, &fakeBookingReader{booking: booking}, nil, logger.GetDefault()).(*service)
	svc.now = fixedClock(time.Date(2026, 3, 5, 9, 0, 0, 0, time.UTC)) // 5 days out
	return svc, repo
}

func TestCancelBooking_EligibleFullRefund(t *testing.T) {
	owner := uuid.New()
	svc, repo := newCancelFixture(owner)

	result, err := svc.CancelBooking(context.Background(), repo.booking.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, bookings.StatusCancelled, result.Booking.Status)
	assert.Equal(t, bookings.StatusCancelled, repo.booking.Status)
	require.NotNil(t, repo.booking.CancelledAt)

	require.NotNil(t, result.Refund)
	assert.True(t, result.Refund.Eligible)
	assert.Equal(t, 24000.0, result.Refund.Amount)
	assert.Equal(t, "booking_cancelled", result.Refund.Reason)
	assert.Equal(t, StatusPending, result.Refund.Status)
	require.Len(t, repo.created, 1)
}

func TestCancelBooking_LateCancelZeroAmount(t *testing.T) {
	owner := uuid.New()
	svc, repo := newCancelFixture(owner)
	svc.now = fixedClock(time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC)) // 24h out, inside the 72h cutoff

	result, err := svc.CancelBooking(context.Background(), repo.booking.ID, owner)
	require.NoError(t, err)

	// The cancellation goes through; only the money is forfeited.
	assert.Equal(t, bookings.StatusCancelled, repo.booking.Status)
	assert.False(t, result.Refund.Eligible)
	assert.Equal(t, 0.0, result.Refund.Amount)
	require.Len(t, repo.created, 1)
}

func TestCancelBooking_NotOwner(t *testing.T) {
	owner := uuid.New()
	svc, repo := newCancelFixture(owner)

	_, err := svc.CancelBooking(context.Background(), repo.booking.ID, uuid.New())
	assert.True(t, apperrors.IsKind(err, apperrors.KindForbidden))
	assert.Equal(t, bookings.StatusConfirmed, repo.booking.Status)
	assert.Empty(t, repo.created)
}

func TestCancelBooking_AlreadyCancelled(t *testing.T) {
	owner := uuid.New()
	svc, repo := newCancelFixture(owner)
	repo.booking.Status = bookings.StatusCancelled

	_, err := svc.CancelBooking(context.Background(), repo.booking.ID, owner)
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
	assert.Empty(t, repo.created)
}

func TestCancelBooking_RefundWriteFailureKeepsBookingActive(t *testing.T) {
	owner := uuid.New()
	svc, repo := newCancelFixture(owner)
	repo.failCreate = true

	// The transaction rolls back as a unit: no cancel without its record.
	_, err := svc.CancelBooking(context.Background(), repo.booking.ID, owner)
	assert.True(t, apperrors.IsKind(err, apperrors.KindTransient))
	assert.Equal(t, bookings.StatusConfirmed, repo.booking.Status)
	assert.Empty(t, repo.created)

	// A retry after the fault clears succeeds with exactly one record.
	repo.failCreate = false
	result, err := svc.CancelBooking(context.Background(), repo.booking.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, bookings.StatusCancelled, result.Booking.Status)
	require.Len(t, repo.created, 1)
}

func TestLeaveBooking_ShareOfCapacity(t *testing.T) {
	owner := uuid.New()
	player := uuid.New()
	svc, repo := newCancelFixture(owner, player)

	result, err := svc.LeaveBooking(context.Background(), repo.booking.ID, player)
	require.NoError(t, err)
	assert.NotContains(t, repo.players, player)

	// Padel seats four, so the share is a quarter of the session price
	// regardless of how many players actually enrolled.
	require.NotNil(t, result.Refund)
	assert.True(t, result.Refund.Eligible)
	assert.Equal(t, 6000.0, result.Refund.Amount)
	assert.Equal(t, "player_left", result.Refund.Reason)
}

func TestLeaveBooking_LateLeaveZeroShare(t *testing.T) {
	owner := uuid.New()
	player := uuid.New()
	svc, repo := newCancelFixture(owner, player)
	svc.now = fixedClock(time.Date(2026, 3, 10, 7, 0, 0, 0, time.UTC)) // 2h before the match

	result, err := svc.LeaveBooking(context.Background(), repo.booking.ID, player)
	require.NoError(t, err)
	assert.False(t, result.Refund.Eligible)
	assert.Equal(t, 0.0, result.Refund.Amount)
}

func TestLeaveBooking_OwnerMustCancel(t *testing.T) {
	owner := uuid.New()
	svc, repo := newCancelFixture(owner)

	_, err := svc.LeaveBooking(context.Background(), repo.booking.ID, owner)
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
	assert.Contains(t, repo.players, owner)
}

func TestLeaveBooking_NotEnrolled(t *testing.T) {
	owner := uuid.New()
	svc, repo := newCancelFixture(owner)

	_, err := svc.LeaveBooking(context.Background(), repo.booking.ID, uuid.New())
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
	assert.Empty(t, repo.created)
}

func TestLeaveBooking_TerminalBooking(t *testing.T) {
	owner := uuid.New()
	svc, repo := newCancelFixture(owner, uuid.New())
	repo.booking.Status = bookings.StatusElapsed

	_, err := svc.LeaveBooking(context.Background(), repo.booking.ID, uuid.New())
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
}

func TestLeaveBooking_RefundWriteFailureKeepsMembership(t *testing.T) {
	owner := uuid.New()
	player := uuid.New()
	svc, repo := newCancelFixture(owner, player)
	repo.failCreate = true

	_, err := svc.LeaveBooking(context.Background(), repo.booking.ID, player)
	assert.True(t, apperrors.IsKind(err, apperrors.KindTransient))
	assert.Contains(t, repo.players, player)
	assert.Empty(t, repo.created)

	repo.failCreate = false
	result, err := svc.LeaveBooking(context.Background(), repo.booking.ID, player)
	require.NoError(t, err)
	assert.Equal(t, 6000.0, result.Refund.Amount)
	require.Len(t, repo.created, 1)
}
