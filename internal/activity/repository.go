package activity

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository interface for activity records
type Repository interface {
	Create(ctx context.Context, entry *UserActivity) error
	ListForUser(ctx context.Context, userID uuid.UUID, limit int) ([]UserActivity, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new activity repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, entry *UserActivity) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *repository) ListForUser(ctx context.Context, userID uuid.UUID, limit int) ([]UserActivity, error) {
	if limit < 1 || limit > 200 {
		limit = 50
	}
	var out []UserActivity
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&out).Error
	return out, err
}
