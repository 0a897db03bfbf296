package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds the database constraints the concurrency control
// depends on. AutoMigrate cannot express partial indexes, so they live here
// as raw SQL.
func MigrateConstraints(db *gorm.DB) error {
	// One non-cancelled booking per (court, date, slot). Cancelled rows fall
	// out of the index, which is what frees the slot for rebooking.
	err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS uq_bookings_court_slot_active
		ON bookings (court_id, date, slot)
		WHERE status <> 'cancelled';
	`).Error
	if err != nil {
		return err
	}

	// Availability resolution scans a court's bookings by date range.
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_bookings_court_date
		ON bookings (court_id, date);
	`).Error
	if err != nil {
		return err
	}

	// The expiry sweep fetches pending rows by status and date.
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_bookings_status_date
		ON bookings (status, date);
	`).Error
	if err != nil {
		return err
	}

	// Public listing is filtered by type, status, and date.
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_bookings_type_status_date
		ON bookings (booking_type, status, date);
	`).Error
	if err != nil {
		return err
	}

	return nil
}
