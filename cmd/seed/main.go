package main

import (
	"context"
	"log"

	"courtside/internal/courts"
	"courtside/internal/facilities"
	"courtside/internal/shared/config"
	"courtside/internal/shared/database"
	"courtside/internal/users"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := config.Load()
	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("failed to connect: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	pg := db.GetPostgreSQL()

	seedUsers := []users.User{
		{Name: "Admin", Email: "admin@courtside.local", Role: users.RoleAdmin, Tier: users.TierPremium},
		{Name: "Amina Yusuf", Email: "amina@example.com", Role: users.RoleUser, Tier: users.TierPremium},
		{Name: "Tunde Balogun", Email: "tunde@example.com", Role: users.RoleUser, Tier: users.TierStandard},
		{Name: "Chiamaka Obi", Email: "chiamaka@example.com", Role: users.RoleUser, Tier: users.TierBasic},
	}
	for i := range seedUsers {
		if err := pg.WithContext(ctx).
			Where("email = ?", seedUsers[i].Email).
			FirstOrCreate(&seedUsers[i]).Error; err != nil {
			log.Fatalf("failed to seed user %s: %v", seedUsers[i].Email, err)
		}
	}
	log.Printf("seeded %d users", len(seedUsers))

	facility := facilities.Facility{
		Name:        "Courtside Arena Lekki",
		Description: "Indoor padel, snooker, and darts center",
		Address:     "12 Admiralty Way, Lekki Phase 1, Lagos",
		Phone:       "+234-800-555-0101",
	}
	if err := pg.WithContext(ctx).
		Where("name = ?", facility.Name).
		FirstOrCreate(&facility).Error; err != nil {
		log.Fatalf("failed to seed facility: %v", err)
	}
	log.Printf("seeded facility %s", facility.ID)

	weekdays := courts.DaySchedule{OpenHour: 9, CloseHour: 22}
	weekend := courts.DaySchedule{OpenHour: 10, CloseHour: 23}
	standardWeek := courts.WeekSchedule{
		Monday:    weekdays,
		Tuesday:   weekdays,
		Wednesday: weekdays,
		Thursday:  weekdays,
		Friday:    weekdays,
		Saturday:  weekend,
		Sunday:    courts.DaySchedule{Closed: true},
	}

	seedCourts := []courts.Court{
		{FacilityID: facility.ID, Name: "Padel Court 1", Activity: "padel", Hours: standardWeek, SessionPrice: 24000, SessionDuration: 90, SlotInterval: 30},
		{FacilityID: facility.ID, Name: "Padel Court 2", Activity: "padel", Hours: standardWeek, SessionPrice: 24000, SessionDuration: 90, SlotInterval: 30},
		{FacilityID: facility.ID, Name: "Snooker Table A", Activity: "snooker", Hours: standardWeek, SessionPrice: 8000, SessionDuration: 60, SlotInterval: 30},
		{FacilityID: facility.ID, Name: "Darts Lane 1", Activity: "darts", Hours: standardWeek, SessionPrice: 5000, SessionDuration: 60, SlotInterval: 30},
	}
	for i := range seedCourts {
		if err := pg.WithContext(ctx).
			Where("facility_id = ? AND name = ?", facility.ID, seedCourts[i].Name).
			FirstOrCreate(&seedCourts[i]).Error; err != nil {
			log.Fatalf("failed to seed court %s: %v", seedCourts[i].Name, err)
		}
	}
	log.Printf("seeded %d courts", len(seedCourts))

	log.Println("✅ Seed completed")
}
