package courts

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository interface for court operations
type Repository interface {
	Create(ctx context.Context, court *Court) error
	GetByID(ctx context.Context, id uuid.UUID) (*Court, error)
	ListByFacility(ctx context.Context, facilityID uuid.UUID) ([]Court, error)
	UpdatePricing(ctx context.Context, id uuid.UUID, sessionPrice float64, sessionDuration int) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new court repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, court *Court) error {
	return r.db.WithContext(ctx).Create(court).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Court, error) {
	var court Court
	err := r.db.WithContext(ctx).First(&court, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &court, nil
}

func (r *repository) ListByFacility(ctx context.Context, facilityID uuid.UUID) ([]Court, error) {
	var out []Court
	err := r.db.WithContext(ctx).
		Where("facility_id = ?", facilityID).
		Order("name ASC").
		Find(&out).Error
	return out, err
}

// UpdatePricing is the only mutation allowed on a court once bookings
// reference it; existing bookings keep their denormalized copies.
func (r *repository) UpdatePricing(ctx context.Context, id uuid.UUID, sessionPrice float64, sessionDuration int) error {
	return r.db.WithContext(ctx).
		Model(&Court{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"session_price":    sessionPrice,
			"session_duration": sessionDuration,
		}).Error
}
