package courts

import (
	"context"
	"testing"
	"time"

	"courtside/internal/shared/apperrors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeCourtRepo struct {
	courts map[uuid.UUID]*Court
}

func newFakeCourtRepo(courts ...*Court) *fakeCourtRepo {
	repo := &fakeCourtRepo{courts: make(map[uuid.UUID]*Court)}
	for _, c := range courts {
		repo.courts[c.ID] = c
	}
	return repo
}

func (f *fakeCourtRepo) Create(_ context.Context, court *Court) error {
	if court.ID == uuid.Nil {
		court.ID = uuid.New()
	}
	f.courts[court.ID] = court
	return nil
}

func (f *fakeCourtRepo) GetByID(_ context.Context, id uuid.UUID) (*Court, error) {
	court, ok := f.courts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return court, nil
}

func (f *fakeCourtRepo) ListByFacility(_ context.Context, facilityID uuid.UUID) ([]Court, error) {
	var out []Court
	for _, c := range f.courts {
		if c.FacilityID == facilityID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeCourtRepo) UpdatePricing(_ context.Context, id uuid.UUID, price float64, duration int) error {
	court, ok := f.courts[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	court.SessionPrice = price
	court.SessionDuration = duration
	return nil
}

type fakeBookingSource struct {
	slotKeys map[string]struct{}
	courtIDs map[uuid.UUID]struct{}
}

func (f *fakeBookingSource) BookedSlotKeys(context.Context, uuid.UUID, string, string) (map[string]struct{}, error) {
	if f.slotKeys == nil {
		return map[string]struct{}{}, nil
	}
	return f.slotKeys, nil
}

func (f *fakeBookingSource) BookedCourtIDs(context.Context, []uuid.UUID, string, string) (map[uuid.UUID]struct{}, error) {
	if f.courtIDs == nil {
		return map[uuid.UUID]struct{}{}, nil
	}
	return f.courtIDs, nil
}

func testCourt(facilityID uuid.UUID, name string) *Court {
	return &Court{
		ID:              uuid.New(),
		FacilityID:      facilityID,
		Name:            name,
		Activity:        "padel",
		Hours:           allOpenWeek(9, 12),
		SessionPrice:    24000,
		SessionDuration: 90,
		SlotInterval:    30,
	}
}

func TestDayAvailability_SetDifference(t *testing.T) {
	facilityID := uuid.New()
	court := testCourt(facilityID, "Padel Court 1")

	booked := &fakeBookingSource{slotKeys: map[string]struct{}{
		"2026-03-02#9:30 AM":  {},
		"2026-03-02#11:00 AM": {},
	}}
	svc := NewService(newFakeCourtRepo(court), booked)

	slots, err := svc.DayAvailability(context.Background(), court.ID, "2026-03-02")
	require.NoError(t, err)
	require.Len(t, slots, 6)

	statusBySlot := make(map[string]string)
	for _, s := range slots {
		statusBySlot[s.Slot] = s.Status
	}
	assert.Equal(t, SlotAvailable, statusBySlot["9:00 AM"])
	assert.Equal(t, SlotUnavailable, statusBySlot["9:30 AM"])
	assert.Equal(t, SlotAvailable, statusBySlot["10:00 AM"])
	assert.Equal(t, SlotUnavailable, statusBySlot["11:00 AM"])
}

func TestDayAvailability_BadDate(t *testing.T) {
	svc := NewService(newFakeCourtRepo(), &fakeBookingSource{})

	_, err := svc.DayAvailability(context.Background(), uuid.New(), "03/02/2026")
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestDayAvailability_CourtNotFound(t *testing.T) {
	svc := NewService(newFakeCourtRepo(), &fakeBookingSource{})

	_, err := svc.DayAvailability(context.Background(), uuid.New(), "2026-03-02")
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestCalendarAvailability_HorizonLength(t *testing.T) {
	facilityID := uuid.New()
	court := testCourt(facilityID, "Padel Court 1")

	svc := NewService(newFakeCourtRepo(court), &fakeBookingSource{}).(*service)
	svc.now = func() time.Time {
		return time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	}

	// 9:00-12:00 at 30 minutes is six slots per day, every day open.
	week, err := svc.CalendarAvailability(context.Background(), court.ID, 7)
	require.NoError(t, err)
	assert.Len(t, week, 42)

	month, err := svc.CalendarAvailability(context.Background(), court.ID, 30)
	require.NoError(t, err)
	assert.Len(t, month, 180)
}

func TestAvailableCourtsAt(t *testing.T) {
	facilityID := uuid.New()
	free := testCourt(facilityID, "Padel Court 1")
	taken := testCourt(facilityID, "Padel Court 2")
	closed := testCourt(facilityID, "Evening Court")
	closed.Hours = allOpenWeek(18, 22) // not open at 10:00 AM

	booked := &fakeBookingSource{courtIDs: map[uuid.UUID]struct{}{taken.ID: {}}}
	svc := NewService(newFakeCourtRepo(free, taken, closed), booked)

	open, err := svc.AvailableCourtsAt(context.Background(), facilityID, "2026-03-02", "10:00 AM")
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, free.ID, open[0].ID)
}

func TestAvailableCourtsAt_Validation(t *testing.T) {
	svc := NewService(newFakeCourtRepo(), &fakeBookingSource{})

	_, err := svc.AvailableCourtsAt(context.Background(), uuid.New(), "bad-date", "10:00 AM")
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	_, err = svc.AvailableCourtsAt(context.Background(), uuid.New(), "2026-03-02", "")
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestCreateCourt_InvalidHours(t *testing.T) {
	svc := NewService(newFakeCourtRepo(), &fakeBookingSource{})

	bad := allOpenWeek(9, 22)
	bad.Monday = DaySchedule{OpenHour: 22, CloseHour: 9}

	_, err := svc.CreateCourt(context.Background(), CreateCourtRequest{
		FacilityID:      uuid.New(),
		Name:            "Broken Court",
		Activity:        "padel",
		Hours:           bad,
		SessionPrice:    10000,
		SessionDuration: 60,
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}
