package facilities

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository interface for facility operations
type Repository interface {
	Create(ctx context.Context, facility *Facility) error
	GetByID(ctx context.Context, id uuid.UUID) (*Facility, error)
	List(ctx context.Context, page, limit int) ([]Facility, int64, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new facility repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, facility *Facility) error {
	return r.db.WithContext(ctx).Create(facility).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Facility, error) {
	var facility Facility
	err := r.db.WithContext(ctx).First(&facility, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &facility, nil
}

func (r *repository) List(ctx context.Context, page, limit int) ([]Facility, int64, error) {
	var out []Facility
	var total int64

	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}

	query := r.db.WithContext(ctx).Model(&Facility{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("name ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&out).Error

	return out, total, err
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&Facility{}).
		Where("id = ?", id).
		Updates(updates).Error
}
