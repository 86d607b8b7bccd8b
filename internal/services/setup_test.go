package services

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"breadvan/internal/config"
	"breadvan/internal/models"
)

// setupTestDB creates an in-memory SQLite database with the full schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := config.Migrate(db); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}
	return db
}

// seedDriver registers a driver account and returns it.
func seedDriver(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	user, err := NewUserService(db).CreateDriver(DriverInput{
		Username:     username,
		Password:     "driverpass",
		Email:        username + "@breadvan.test",
		Name:         "Driver " + username,
		VehicleType:  "Bread Van",
		LicensePlate: "BREAD123",
	})
	if err != nil {
		t.Fatalf("failed to seed driver: %v", err)
	}
	return user
}

// seedResident registers a resident account and returns it.
func seedResident(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	user, err := NewUserService(db).CreateResident(ResidentInput{
		Username:    username,
		Password:    "residentpass",
		Email:       username + "@example.test",
		Name:        "Resident " + username,
		HomeAddress: "123 Main Street",
	})
	if err != nil {
		t.Fatalf("failed to seed resident: %v", err)
	}
	return user
}

// seedSchedule creates a schedule for the driver starting at start.
func seedSchedule(t *testing.T, db *gorm.DB, driverID uint, street string, start time.Time) *models.Schedule {
	t.Helper()

	schedule, err := NewScheduleService(db).CreateSchedule(driverID, street, start, start.Add(4*time.Hour))
	if err != nil {
		t.Fatalf("failed to seed schedule: %v", err)
	}
	return schedule
}
