package bookings

import (
	"context"
	"sync"
	"testing"
	"time"

	"courtside/internal/shared/apperrors"
	"courtside/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// memRepo is a mutex-guarded in-memory Repository. CreateExclusive and
// AddPlayer reproduce the store's guarantees so races can be exercised
// without a database.
type memRepo struct {
	mu       sync.Mutex
	bookings map[uuid.UUID]*Booking
	players  map[uuid.UUID]map[uuid.UUID]struct{}
}

func newMemRepo() *memRepo {
	return &memRepo{
		bookings: make(map[uuid.UUID]*Booking),
		players:  make(map[uuid.UUID]map[uuid.UUID]struct{}),
	}
}

func (m *memRepo) CreateExclusive(_ context.Context, booking *Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.bookings {
		if b.CourtID == booking.CourtID && b.Date == booking.Date && b.Slot == booking.Slot && b.Status.Active() {
			return ErrSlotTaken
		}
	}
	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}
	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = time.Now()
	}
	copied := *booking
	m.bookings[booking.ID] = &copied
	if booking.BookingType == TypePublic {
		m.players[booking.ID] = map[uuid.UUID]struct{}{booking.UserID: {}}
	}
	return nil
}

func (m *memRepo) GetByID(_ context.Context, id uuid.UUID) (*Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *b
	return &copied, nil
}

func (m *memRepo) GetByIDWithPlayers(ctx context.Context, id uuid.UUID) (*Booking, error) {
	b, err := m.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for userID := range m.players[id] {
		b.Players = append(b.Players, BookingPlayer{BookingID: id, UserID: userID})
	}
	return b, nil
}

func (m *memRepo) GetByRef(_ context.Context, ref string) (*Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.bookings {
		if b.BookingRef == ref {
			copied := *b
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memRepo) BookedSlotKeys(_ context.Context, courtID uuid.UUID, fromDate, toDate string) (map[string]struct{}, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make(map[string]struct{})
	for _, b := range m.bookings {
		if b.CourtID == courtID && b.Status.Active() && b.Date >= fromDate && b.Date <= toDate {
			keys[b.Date+"#"+b.Slot] = struct{}{}
		}
	}
	return keys, nil
}

func (m *memRepo) BookedCourtIDs(_ context.Context, courtIDs []uuid.UUID, date, slot string) (map[uuid.UUID]struct{}, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	taken := make(map[uuid.UUID]struct{})
	for _, b := range m.bookings {
		if b.Date != date || b.Slot != slot || !b.Status.Active() {
			continue
		}
		for _, id := range courtIDs {
			if b.CourtID == id {
				taken[id] = struct{}{}
			}
		}
	}
	return taken, nil
}

func (m *memRepo) ListPublic(_ context.Context, fromDate string) ([]Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Booking
	for _, b := range m.bookings {
		if b.BookingType == TypePublic && !b.Status.IsTerminal() && b.Date >= fromDate {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (m *memRepo) ListForUser(_ context.Context, userID uuid.UUID, _, _ int) ([]Booking, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Booking
	for _, b := range m.bookings {
		if b.UserID == userID {
			out = append(out, *b)
		}
	}
	return out, int64(len(out)), nil
}

func (m *memRepo) TransitionStatus(_ context.Context, id uuid.UUID, from, to BookingStatus, cancelledAt *time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok || b.Status != from {
		return false, nil
	}
	b.Status = to
	if cancelledAt != nil {
		b.CancelledAt = cancelledAt
	}
	return true, nil
}

func (m *memRepo) AddPlayer(_ context.Context, bookingID, userID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[bookingID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if b.BookingType != TypePublic || b.Status.IsTerminal() {
		return ErrNotJoinable
	}
	members := m.players[bookingID]
	if members == nil {
		members = make(map[uuid.UUID]struct{})
		m.players[bookingID] = members
	}
	if _, exists := members[userID]; exists {
		return ErrAlreadyMember
	}
	if capacity := b.GameType.PlayerCount(); capacity > 0 && len(members) >= capacity {
		return ErrPartyFull
	}
	members[userID] = struct{}{}
	return nil
}

func (m *memRepo) ExpireOverdue(_ context.Context, now time.Time, grace time.Duration) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var expired int64
	for _, b := range m.bookings {
		if b.Status == StatusPending && b.BookingType == TypePrivate && b.ExpiredBy(now, grace) {
			b.Status = StatusElapsed
			expired++
		}
	}
	return expired, nil
}

type fakeDirectory struct {
	info *CourtInfo
}

func (f *fakeDirectory) CourtInfo(_ context.Context, id uuid.UUID) (*CourtInfo, error) {
	if f.info == nil || f.info.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return f.info, nil
}

func (f *fakeDirectory) OffersSlot(context.Context, uuid.UUID, string, string) (bool, error) {
	return true, nil
}

func newTestService(repo Repository, courtInfo *CourtInfo) *service {
	svc := NewService(repo, &fakeDirectory{info: courtInfo}, nil, nil, logger.GetDefault(), 5).(*service)
	svc.now = func() time.Time {
		return time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	}
	return svc
}

func padelCourt() *CourtInfo {
	return &CourtInfo{
		ID:              uuid.New(),
		FacilityID:      uuid.New(),
		Activity:        "padel",
		SessionPrice:    24000,
		SessionDuration: 90,
	}
}

func validRequest(court *CourtInfo, userID uuid.UUID) CreateBookingRequest {
	return CreateBookingRequest{
		UserID:      userID,
		CourtID:     court.ID,
		Requester:   RequesterUser,
		HorizonDays: 7,
		Date:        "2026-03-02",
		Slot:        "9:00 AM",
		GameType:    GamePadel,
		BookingType: TypePrivate,
	}
}

func TestCreateBooking_MissingFields(t *testing.T) {
	court := padelCourt()
	svc := newTestService(newMemRepo(), court)

	_, err := svc.CreateBooking(context.Background(), CreateBookingRequest{
		UserID:    uuid.New(),
		CourtID:   court.ID,
		Requester: RequesterUser,
		GameType:  GamePadel,
	}, true)

	require.True(t, apperrors.IsKind(err, apperrors.KindValidation))
	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.ElementsMatch(t, []string{"date", "slot", "booking_type"}, appErr.Fields)
}

func TestCreateBooking_UnknownEnums(t *testing.T) {
	court := padelCourt()
	svc := newTestService(newMemRepo(), court)

	req := validRequest(court, uuid.New())
	req.GameType = "cricket"
	_, err := svc.CreateBooking(context.Background(), req, true)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	req = validRequest(court, uuid.New())
	req.BookingType = "semi-public"
	_, err = svc.CreateBooking(context.Background(), req, true)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	req = validRequest(court, uuid.New())
	req.BookingType = TypePublic
	req.Gender = "unknown"
	_, err = svc.CreateBooking(context.Background(), req, true)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestCreateBooking_ActivityMismatch(t *testing.T) {
	court := padelCourt()
	svc := newTestService(newMemRepo(), court)

	req := validRequest(court, uuid.New())
	req.GameType = GameSnooker
	_, err := svc.CreateBooking(context.Background(), req, true)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestCreateBooking_HorizonAndPastDate(t *testing.T) {
	court := padelCourt()
	svc := newTestService(newMemRepo(), court)

	req := validRequest(court, uuid.New())
	req.Date = "2026-02-28" // behind the frozen clock
	_, err := svc.CreateBooking(context.Background(), req, true)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	req = validRequest(court, uuid.New())
	req.Date = "2026-03-20" // beyond the 7-day horizon
	_, err = svc.CreateBooking(context.Background(), req, true)
	assert.True(t, apperrors.IsKind(err, apperrors.KindForbidden))
}

func TestCreateBooking_AcademyRequiresSystem(t *testing.T) {
	court := padelCourt()
	svc := newTestService(newMemRepo(), court)

	req := validRequest(court, uuid.New())
	req.BookingType = TypeAcademy
	_, err := svc.CreateBooking(context.Background(), req, true)
	assert.True(t, apperrors.IsKind(err, apperrors.KindForbidden))

	req.Requester = RequesterSystem
	booking, err := svc.CreateBooking(context.Background(), req, false)
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, booking.Status)
}

func TestCreateBooking_StatusByPayment(t *testing.T) {
	court := padelCourt()
	svc := newTestService(newMemRepo(), court)

	paid, err := svc.CreateBooking(context.Background(), validRequest(court, uuid.New()), true)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, paid.Status)
	assert.Equal(t, 24000.0, paid.SessionPrice)
	assert.Equal(t, 90, paid.SessionDuration)
	assert.Regexp(t, `^CRT-\d{8}-[A-Z0-9]{6}$`, paid.BookingRef)

	req := validRequest(court, uuid.New())
	req.Slot = "10:00 AM"
	free, err := svc.CreateBooking(context.Background(), req, false)
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, free.Status)
}

func TestCreateBooking_SlotConflict(t *testing.T) {
	court := padelCourt()
	repo := newMemRepo()
	svc := newTestService(repo, court)

	_, err := svc.CreateBooking(context.Background(), validRequest(court, uuid.New()), true)
	require.NoError(t, err)

	_, err = svc.CreateBooking(context.Background(), validRequest(court, uuid.New()), true)
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
}

func TestCreateBooking_ConcurrentWriters(t *testing.T) {
	court := padelCourt()
	repo := newMemRepo()
	svc := newTestService(repo, court)

	const writers = 16
	var wg sync.WaitGroup
	results := make(chan error, writers)

	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.CreateBooking(context.Background(), validRequest(court, uuid.New()), true)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var succeeded, conflicted int
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		case apperrors.IsKind(err, apperrors.KindConflict):
			conflicted++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, writers-1, conflicted)
}

func TestCreateBooking_PublicEnrollsCreator(t *testing.T) {
	court := padelCourt()
	repo := newMemRepo()
	svc := newTestService(repo, court)

	creator := uuid.New()
	req := validRequest(court, creator)
	req.BookingType = TypePublic
	req.Gender = GenderMixed

	booking, err := svc.CreateBooking(context.Background(), req, true)
	require.NoError(t, err)

	enrolled, err := repo.GetByIDWithPlayers(context.Background(), booking.ID)
	require.NoError(t, err)
	require.Len(t, enrolled.Players, 1)
	assert.Equal(t, creator, enrolled.Players[0].UserID)
}

func TestJoinBooking_CapacityAndRejoin(t *testing.T) {
	court := padelCourt()
	repo := newMemRepo()
	svc := newTestService(repo, court)

	creator := uuid.New()
	req := validRequest(court, creator)
	req.BookingType = TypePublic
	req.Gender = GenderMixed

	booking, err := svc.CreateBooking(context.Background(), req, true)
	require.NoError(t, err)

	// Creator holds seat one; three more fill a padel party.
	for i := 0; i < 3; i++ {
		_, err := svc.JoinBooking(context.Background(), booking.ID, uuid.New())
		require.NoError(t, err)
	}

	_, err = svc.JoinBooking(context.Background(), booking.ID, uuid.New())
	assert.True(t, apperrors.IsKind(err, apperrors.KindCapacity))

	_, err = svc.JoinBooking(context.Background(), booking.ID, creator)
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
}

func TestJoinBooking_PrivateNotJoinable(t *testing.T) {
	court := padelCourt()
	svc := newTestService(newMemRepo(), court)

	booking, err := svc.CreateBooking(context.Background(), validRequest(court, uuid.New()), true)
	require.NoError(t, err)

	_, err = svc.JoinBooking(context.Background(), booking.ID, uuid.New())
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
}

func TestConfirmByRef(t *testing.T) {
	court := padelCourt()
	svc := newTestService(newMemRepo(), court)

	booking, err := svc.CreateBooking(context.Background(), validRequest(court, uuid.New()), true)
	require.NoError(t, err)
	require.Equal(t, StatusPending, booking.Status)

	confirmed, err := svc.ConfirmByRef(context.Background(), booking.BookingRef)
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, confirmed.Status)

	// A verification retry on an already confirmed booking is not an error.
	again, err := svc.ConfirmByRef(context.Background(), booking.BookingRef)
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, again.Status)

	_, err = svc.ConfirmByRef(context.Background(), "CRT-20260301-XXXXXX")
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestCancelledSlotIsRebookable(t *testing.T) {
	court := padelCourt()
	repo := newMemRepo()
	svc := newTestService(repo, court)

	first, err := svc.CreateBooking(context.Background(), validRequest(court, uuid.New()), true)
	require.NoError(t, err)

	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	moved, err := repo.TransitionStatus(context.Background(), first.ID, StatusPending, StatusCancelled, &at)
	require.NoError(t, err)
	require.True(t, moved)

	second, err := svc.CreateBooking(context.Background(), validRequest(court, uuid.New()), true)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestListPublicBookings_UpcomingOnly(t *testing.T) {
	court := padelCourt()
	repo := newMemRepo()
	svc := newTestService(repo, court) // clock frozen at 2026-03-01 10:00 UTC

	create := func(date, slot string) *Booking {
		req := validRequest(court, uuid.New())
		req.BookingType = TypePublic
		req.Gender = GenderMixed
		req.Date = date
		req.Slot = slot
		b, err := svc.CreateBooking(context.Background(), req, true)
		require.NoError(t, err)
		return b
	}

	started := create("2026-03-01", "9:00 AM") // began an hour before the clock
	laterToday := create("2026-03-01", "11:00 AM")
	tomorrow := create("2026-03-02", "9:00 AM")

	out, total, err := svc.ListPublicBookings(context.Background(), 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	ids := make(map[uuid.UUID]struct{}, len(out))
	for _, b := range out {
		ids[b.ID] = struct{}{}
	}
	assert.NotContains(t, ids, started.ID)
	assert.Contains(t, ids, laterToday.ID)
	assert.Contains(t, ids, tomorrow.ID)
}

func TestExpireOverdue_Idempotent(t *testing.T) {
	court := padelCourt()
	repo := newMemRepo()
	svc := newTestService(repo, court)

	// Pending private booking whose slot has long passed.
	overdue, err := svc.CreateBooking(context.Background(), validRequest(court, uuid.New()), true)
	require.NoError(t, err)

	// Confirmed booking in the same past window must be untouched.
	req := validRequest(court, uuid.New())
	req.Slot = "10:00 AM"
	kept, err := svc.CreateBooking(context.Background(), req, false)
	require.NoError(t, err)

	svc.now = func() time.Time {
		return time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)
	}

	expired, err := svc.ExpireOverdue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), expired)

	// A second sweep over the same rows is a no-op.
	expired, err = svc.ExpireOverdue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), expired)

	got, err := svc.GetBooking(context.Background(), overdue.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusElapsed, got.Status)

	got, err = svc.GetBooking(context.Background(), kept.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, got.Status)
}
