package refunds

import (
	"context"
	"time"

	"courtside/internal/bookings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository interface for refund records. The cancel and leave writes pair
// the booking-side mutation with the refund insert in one transaction, so a
// cancellation or departure can never become durable without its record.
type Repository interface {
	CancelAndCreate(ctx context.Context, refund *Refund, bookingID uuid.UUID, from bookings.BookingStatus, at time.Time) (bool, error)
	RemoveAndCreate(ctx context.Context, refund *Refund, bookingID, userID uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*Refund, error)
	ListForUser(ctx context.Context, userID uuid.UUID, page, limit int) ([]Refund, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status RefundStatus) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new refund repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// CancelAndCreate moves the booking to cancelled and inserts the refund record
// atomically. The status update is guarded on the expected source state;
// returns false without writing anything when the guard misses.
func (r *repository) CancelAndCreate(ctx context.Context, refund *Refund, bookingID uuid.UUID, from bookings.BookingStatus, at time.Time) (bool, error) {
	moved := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&bookings.Booking{}).
			Where("id = ? AND status = ?", bookingID, from).
			Updates(map[string]interface{}{
				"status":       bookings.StatusCancelled,
				"cancelled_at": at,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}
		moved = true
		return tx.Create(refund).Error
	})
	if err != nil {
		return false, err
	}
	return moved, nil
}

// RemoveAndCreate deletes the player's party row and inserts the refund record
// atomically. Returns bookings.ErrNotMember when the player is not enrolled.
func (r *repository) RemoveAndCreate(ctx context.Context, refund *Refund, bookingID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("booking_id = ? AND user_id = ?", bookingID, userID).
			Delete(&bookings.BookingPlayer{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return bookings.ErrNotMember
		}
		return tx.Create(refund).Error
	})
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Refund, error) {
	var refund Refund
	err := r.db.WithContext(ctx).First(&refund, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &refund, nil
}

func (r *repository) ListForUser(ctx context.Context, userID uuid.UUID, page, limit int) ([]Refund, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	query := r.db.WithContext(ctx).
		Model(&Refund{}).
		Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []Refund
	err := query.
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&out).Error
	return out, total, err
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status RefundStatus) error {
	return r.db.WithContext(ctx).
		Model(&Refund{}).
		Where("id = ?", id).
		Update("status", status).Error
}
