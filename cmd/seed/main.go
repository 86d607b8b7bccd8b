// Command seed drops the schema, recreates it and loads sample data:
// one driver, one resident, a schedule two hours out and an initial
// depot location. Handy for poking at the API or the CLI by hand.
package main

import (
	"log"
	"time"

	"breadvan/internal/config"
	"breadvan/internal/models"
	"breadvan/internal/services"
)

func main() {
	config.InitDB()
	db := config.GetDB()

	err := db.Migrator().DropTable(
		&models.LocationHistory{},
		&models.StopRequest{},
		&models.Schedule{},
		&models.Driver{},
		&models.Resident{},
		&models.User{},
	)
	if err != nil {
		log.Fatalf("could not drop tables: %v", err)
	}
	if err := config.Migrate(db); err != nil {
		log.Fatalf("could not recreate schema: %v", err)
	}

	users := services.NewUserService(db)

	driver, err := users.CreateDriver(services.DriverInput{
		Username:     "driver_john",
		Password:     "driverpass",
		Email:        "john.driver@breadvan.com",
		Name:         "John Driver",
		VehicleType:  "Bread Van",
		LicensePlate: "BREAD123",
	})
	if err != nil {
		log.Fatalf("could not create driver: %v", err)
	}
	log.Printf("Created driver %q with ID %d", driver.Name, driver.ID)

	resident, err := users.CreateResident(services.ResidentInput{
		Username:    "resident_jane",
		Password:    "residentpass",
		Email:       "jane.resident@example.com",
		Name:        "Jane Resident",
		HomeAddress: "123 Main Street",
	})
	if err != nil {
		log.Fatalf("could not create resident: %v", err)
	}
	log.Printf("Created resident %q with ID %d", resident.Name, resident.ID)

	start := time.Now().UTC().Add(2 * time.Hour)
	schedule, err := services.NewScheduleService(db).CreateSchedule(
		driver.ID, "Main Street", start, start.Add(4*time.Hour),
	)
	if err != nil {
		log.Fatalf("could not create schedule: %v", err)
	}
	log.Printf("Created schedule %d for %s", schedule.ID, schedule.Street)

	if _, err := services.NewLocationService(db).UpdateDriverLocation(driver.ID, "Starting location - Depot"); err != nil {
		log.Fatalf("could not set driver location: %v", err)
	}

	log.Println("Database initialized with sample data!")
	log.Printf("Driver ID: %d, Resident ID: %d, Schedule ID: %d", driver.ID, resident.ID, schedule.ID)
}
