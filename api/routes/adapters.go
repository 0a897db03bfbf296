package routes

import (
	"context"

	"courtside/internal/bookings"
	"courtside/internal/courts"

	"github.com/google/uuid"
)

// courtDirectoryAdapter exposes the courts service to the booking engine
// through its locally defined CourtDirectory port.
type courtDirectoryAdapter struct {
	courts courts.Service
}

func (a courtDirectoryAdapter) CourtInfo(ctx context.Context, id uuid.UUID) (*bookings.CourtInfo, error) {
	court, err := a.courts.GetCourt(ctx, id)
	if err != nil {
		return nil, err
	}
	return &bookings.CourtInfo{
		ID:              court.ID,
		FacilityID:      court.FacilityID,
		Activity:        court.Activity,
		SessionPrice:    court.SessionPrice,
		SessionDuration: court.SessionDuration,
	}, nil
}

func (a courtDirectoryAdapter) OffersSlot(ctx context.Context, courtID uuid.UUID, date, slot string) (bool, error) {
	slots, err := a.courts.DayAvailability(ctx, courtID, date)
	if err != nil {
		return false, err
	}
	for _, s := range slots {
		if s.Slot == slot {
			return true, nil
		}
	}
	return false, nil
}

// bookingSourceAdapter exposes the booking repository to the availability
// resolver through the courts package's BookingSource port.
type bookingSourceAdapter struct {
	repo bookings.Repository
}

func (a bookingSourceAdapter) BookedSlotKeys(ctx context.Context, courtID uuid.UUID, fromDate, toDate string) (map[string]struct{}, error) {
	return a.repo.BookedSlotKeys(ctx, courtID, fromDate, toDate)
}

func (a bookingSourceAdapter) BookedCourtIDs(ctx context.Context, courtIDs []uuid.UUID, date, slot string) (map[uuid.UUID]struct{}, error) {
	return a.repo.BookedCourtIDs(ctx, courtIDs, date, slot)
}
