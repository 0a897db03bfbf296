package bookings

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Sentinel errors surfaced by guarded party and slot writes. The service
// layers map these onto the API error taxonomy; ErrNotMember comes from the
// refund repository's leave transaction.
var (
	ErrSlotTaken     = errors.New("slot already booked")
	ErrPartyFull     = errors.New("booking party is full")
	ErrAlreadyMember = errors.New("user already in booking party")
	ErrNotMember     = errors.New("user not in booking party")
	ErrNotJoinable   = errors.New("booking cannot accept players")
)

// Repository interface for booking operations
type Repository interface {
	CreateExclusive(ctx context.Context, booking *Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	GetByIDWithPlayers(ctx context.Context, id uuid.UUID) (*Booking, error)
	GetByRef(ctx context.Context, ref string) (*Booking, error)

	BookedSlotKeys(ctx context.Context, courtID uuid.UUID, fromDate, toDate string) (map[string]struct{}, error)
	BookedCourtIDs(ctx context.Context, courtIDs []uuid.UUID, date, slot string) (map[uuid.UUID]struct{}, error)

	ListPublic(ctx context.Context, fromDate string) ([]Booking, error)
	ListForUser(ctx context.Context, userID uuid.UUID, page, limit int) ([]Booking, int64, error)

	TransitionStatus(ctx context.Context, id uuid.UUID, from, to BookingStatus, cancelledAt *time.Time) (bool, error)

	AddPlayer(ctx context.Context, bookingID, userID uuid.UUID) error

	ExpireOverdue(ctx context.Context, now time.Time, grace time.Duration) (int64, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new booking repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// CreateExclusive inserts a booking only if its (court, date, slot) is free of
// non-cancelled rows. The locked pre-check serializes racing writers; the
// partial unique index is the backstop if two transactions slip past it.
// Public bookings get their creator's party row in the same transaction, so a
// public match can never exist without its first player.
func (r *repository) CreateExclusive(ctx context.Context, booking *Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&Booking{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("court_id = ? AND date = ? AND slot = ? AND status <> ?",
				booking.CourtID, booking.Date, booking.Slot, StatusCancelled).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrSlotTaken
		}

		if err := tx.Create(booking).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrSlotTaken
			}
			return err
		}

		if booking.BookingType == TypePublic {
			creator := &BookingPlayer{BookingID: booking.ID, UserID: booking.UserID}
			if err := tx.Create(creator).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).First(&booking, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *repository) GetByIDWithPlayers(ctx context.Context, id uuid.UUID) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).
		Preload("Players").
		First(&booking, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *repository) GetByRef(ctx context.Context, ref string) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).First(&booking, "booking_ref = ?", ref).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// BookedSlotKeys returns the occupied "date#slot" keys for one court in a
// date range. Dates sort lexicographically in YYYY-MM-DD form, so BETWEEN on
// the varchar column is correct.
func (r *repository) BookedSlotKeys(ctx context.Context, courtID uuid.UUID, fromDate, toDate string) (map[string]struct{}, error) {
	var rows []struct {
		Date string
		Slot string
	}
	err := r.db.WithContext(ctx).
		Model(&Booking{}).
		Select("date", "slot").
		Where("court_id = ? AND date BETWEEN ? AND ? AND status <> ?",
			courtID, fromDate, toDate, StatusCancelled).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	keys := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		keys[row.Date+"#"+row.Slot] = struct{}{}
	}
	return keys, nil
}

func (r *repository) BookedCourtIDs(ctx context.Context, courtIDs []uuid.UUID, date, slot string) (map[uuid.UUID]struct{}, error) {
	if len(courtIDs) == 0 {
		return map[uuid.UUID]struct{}{}, nil
	}

	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&Booking{}).
		Where("court_id IN ? AND date = ? AND slot = ? AND status <> ?",
			courtIDs, date, slot, StatusCancelled).
		Pluck("court_id", &ids).Error
	if err != nil {
		return nil, err
	}

	taken := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		taken[id] = struct{}{}
	}
	return taken, nil
}

// ListPublic returns joinable public bookings on or after fromDate with their
// current parties preloaded. The date filter is only a coarse cut; the service
// drops same-day rows whose slot already started, since the 12-hour slot label
// cannot be compared in SQL.
func (r *repository) ListPublic(ctx context.Context, fromDate string) ([]Booking, error) {
	var out []Booking
	err := r.db.WithContext(ctx).
		Where("booking_type = ? AND status IN ? AND date >= ?",
			TypePublic, []BookingStatus{StatusPending, StatusConfirmed}, fromDate).
		Preload("Players").
		Order("date ASC, slot ASC").
		Find(&out).Error
	return out, err
}

func (r *repository) ListForUser(ctx context.Context, userID uuid.UUID, page, limit int) ([]Booking, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	query := r.db.WithContext(ctx).
		Model(&Booking{}).
		Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []Booking
	err := query.
		Order("date DESC, slot DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&out).Error
	return out, total, err
}

// TransitionStatus applies a guarded status change: the row moves only if it
// is still in the expected source state. Returns false when the guard missed,
// which callers treat as a lost race or an invalid transition.
func (r *repository) TransitionStatus(ctx context.Context, id uuid.UUID, from, to BookingStatus, cancelledAt *time.Time) (bool, error) {
	updates := map[string]interface{}{"status": to}
	if cancelledAt != nil {
		updates["cancelled_at"] = cancelledAt
	}

	result := r.db.WithContext(ctx).
		Model(&Booking{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// AddPlayer enrolls a user into a booking's party inside one transaction: the
// booking row is locked, capacity is re-checked under the lock, then the
// member row is inserted. The unique (booking_id, user_id) index rejects
// double joins that race past the lock.
func (r *repository) AddPlayer(ctx context.Context, bookingID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var booking Booking
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&booking, "id = ?", bookingID).Error
		if err != nil {
			return err
		}

		if booking.BookingType != TypePublic || booking.Status.IsTerminal() {
			return ErrNotJoinable
		}

		capacity := booking.GameType.PlayerCount()
		var current int64
		if err := tx.Model(&BookingPlayer{}).
			Where("booking_id = ?", bookingID).
			Count(&current).Error; err != nil {
			return err
		}
		if capacity > 0 && current >= int64(capacity) {
			return ErrPartyFull
		}

		player := &BookingPlayer{BookingID: bookingID, UserID: userID}
		if err := tx.Create(player).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyMember
			}
			return err
		}
		return nil
	})
}

// ExpireOverdue sweeps pending private bookings whose slot has passed. The
// SQL filter is deliberately coarse (date on or before today); the precise
// slot-end-plus-grace check runs in Go where it can be unit tested. The
// guarded batch update keeps the sweep idempotent: rows that moved on since
// the fetch are skipped.
func (r *repository) ExpireOverdue(ctx context.Context, now time.Time, grace time.Duration) (int64, error) {
	var candidates []Booking
	err := r.db.WithContext(ctx).
		Where("status = ? AND booking_type = ? AND date <= ?",
			StatusPending, TypePrivate, now.Format("2006-01-02")).
		Find(&candidates).Error
	if err != nil {
		return 0, err
	}

	var overdue []uuid.UUID
	for i := range candidates {
		if candidates[i].ExpiredBy(now, grace) {
			overdue = append(overdue, candidates[i].ID)
		}
	}
	if len(overdue) == 0 {
		return 0, nil
	}

	result := r.db.WithContext(ctx).
		Model(&Booking{}).
		Where("id IN ? AND status = ?", overdue, StatusPending).
		Update("status", StatusElapsed)
	return result.RowsAffected, result.Error
}
