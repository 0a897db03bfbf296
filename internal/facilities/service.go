package facilities

import (
	"context"
	"errors"
	"fmt"
	"time"

	"courtside/internal/shared/apperrors"
	"courtside/pkg/cache"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service interface defines the contract for facility business logic
type Service interface {
	CreateFacility(ctx context.Context, req CreateFacilityRequest) (*Facility, error)
	GetFacility(ctx context.Context, id uuid.UUID) (*Facility, error)
	ListFacilities(ctx context.Context, page, limit int) ([]Facility, int64, error)
}

type service struct {
	repo     Repository
	cache    cache.Service
	cacheTTL time.Duration
}

// NewService creates a new facility service instance. The cache is optional;
// a nil cache means every read goes to the store.
func NewService(repo Repository, cacheSvc cache.Service, cacheTTL time.Duration) Service {
	return &service{
		repo:     repo,
		cache:    cacheSvc,
		cacheTTL: cacheTTL,
	}
}

// CreateFacilityRequest represents a request to register a sports center
type CreateFacilityRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=160"`
	Description string `json:"description" binding:"max=2000"`
	Address     string `json:"address" binding:"max=255"`
	Phone       string `json:"phone" binding:"max=40"`
}

func (s *service) CreateFacility(ctx context.Context, req CreateFacilityRequest) (*Facility, error) {
	facility := &Facility{
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		Phone:       req.Phone,
	}

	if err := s.repo.Create(ctx, facility); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Conflict("a facility with this name already exists")
		}
		return nil, apperrors.Transient("failed to create facility", err)
	}

	if s.cache != nil {
		_ = s.cache.Delete(ctx, "facilities:list")
	}

	return facility, nil
}

func (s *service) GetFacility(ctx context.Context, id uuid.UUID) (*Facility, error) {
	if s.cache != nil {
		var cached Facility
		key := fmt.Sprintf("facilities:%s", id)
		err := s.cache.GetOrSet(ctx, key, s.cacheTTL, func() (interface{}, error) {
			return s.repo.GetByID(ctx, id)
		}, &cached)
		if err == nil {
			return &cached, nil
		}
		// Fall through to the store on any cache path failure.
	}

	facility, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("facility not found")
		}
		return nil, apperrors.Transient("failed to get facility", err)
	}
	return facility, nil
}

func (s *service) ListFacilities(ctx context.Context, page, limit int) ([]Facility, int64, error) {
	out, total, err := s.repo.List(ctx, page, limit)
	if err != nil {
		return nil, 0, apperrors.Transient("failed to list facilities", err)
	}
	return out, total, nil
}
