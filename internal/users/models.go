package users

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// MembershipTier controls how far ahead an account may book.
type MembershipTier string

const (
	TierBasic    MembershipTier = "basic"
	TierStandard MembershipTier = "standard"
	TierPremium  MembershipTier = "premium"
)

func (t MembershipTier) IsValid() bool {
	switch t {
	case TierBasic, TierStandard, TierPremium:
		return true
	}
	return false
}

// User is the minimal account record the booking core references. Account
// management itself (signup, sessions, profiles) lives outside this service;
// identity arrives via JWT claims.
type User struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name      string         `gorm:"type:varchar(120);not null" json:"name"`
	Email     string         `gorm:"type:varchar(255);unique;not null" json:"email"`
	Role      Role           `gorm:"type:varchar(20);default:'USER'" json:"role"`
	Tier      MembershipTier `gorm:"type:varchar(20);default:'basic'" json:"tier"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
