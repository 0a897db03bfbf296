package database

import (
	"fmt"
	"log"

	"courtside/internal/activity"
	"courtside/internal/bookings"
	"courtside/internal/courts"
	"courtside/internal/facilities"
	"courtside/internal/refunds"
	"courtside/internal/users"

	"gorm.io/gorm"
)

// Migrate runs schema migrations for all models
func Migrate(db *gorm.DB) error {
	// uuid_generate_v4 defaults need the extension in place first.
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return fmt.Errorf("failed to create uuid extension: %w", err)
	}

	err := db.AutoMigrate(
		&users.User{},
		&facilities.Facility{},
		&courts.Court{},
		&bookings.Booking{},
		&bookings.BookingPlayer{},
		&refunds.Refund{},
		&activity.UserActivity{},
	)
	if err != nil {
		return fmt.Errorf("auto migration failed: %w", err)
	}

	if err := MigrateConstraints(db); err != nil {
		return fmt.Errorf("constraint migration failed: %w", err)
	}

	log.Println("✅ Database migrations completed")
	return nil
}
