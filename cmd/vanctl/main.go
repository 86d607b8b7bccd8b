// Command vanctl is a manual-testing CLI mirroring the backend operations
// one to one. It talks straight to the database the server uses; set
// DB_DRIVER=sqlite (and optionally DB_PATH) for a local file database.
//
// Usage:
//
//	vanctl user create-resident <name> <email> <username> <password> <address>
//	vanctl user create-driver <name> <email> <username> <password> <vehicle_type> <license_plate>
//	vanctl user list [all|residents|drivers]
//	vanctl user delete <user_id>
//	vanctl schedule create <driver_id> <street> <start> <end>
//	vanctl schedule view-street <street>
//	vanctl schedule view-driver <driver_id>
//	vanctl schedule upcoming
//	vanctl stop request <resident_id> <schedule_id>
//	vanctl stop list-resident <resident_id>
//	vanctl stop list-schedule <schedule_id>
//	vanctl stop set-status <request_id> <status>
//	vanctl location update <driver_id> <location>
//	vanctl location get <driver_id>
//	vanctl location list-all
//	vanctl location history <driver_id>
package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"breadvan/internal/config"
	"breadvan/internal/models"
	"breadvan/internal/services"
)

func main() {
	if len(os.Args) < 3 {
		usage()
	}

	config.InitDB()
	db := config.GetDB()

	group, command := os.Args[1], os.Args[2]
	args := os.Args[3:]

	switch group {
	case "user":
		userCommands(command, args, services.NewUserService(db))
	case "schedule":
		scheduleCommands(command, args, services.NewScheduleService(db), services.NewUserService(db))
	case "stop":
		stopCommands(command, args, services.NewStopRequestService(db), services.NewScheduleService(db))
	case "location":
		locationCommands(command, args, services.NewLocationService(db))
	default:
		usage()
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: vanctl <user|schedule|stop|location> <command> [args...]")
	os.Exit(2)
}

func fail(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

func parseID(raw, what string) uint {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		fail("invalid %s %q", what, raw)
	}
	return uint(id)
}

// parseTime accepts RFC3339 or "YYYY-MM-DD HH:MM:SS", both read as UTC.
func parseTime(raw string) time.Time {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC()
	}
	t, err := time.ParseInLocation("2006-01-02 15:04:05", raw, time.UTC)
	if err != nil {
		fail("invalid datetime %q, use ISO format: YYYY-MM-DD HH:MM:SS", raw)
	}
	return t
}

func userCommands(command string, args []string, svc *services.UserService) {
	switch command {
	case "create-resident":
		if len(args) != 5 {
			fail("usage: vanctl user create-resident <name> <email> <username> <password> <address>")
		}
		user, err := svc.CreateResident(services.ResidentInput{
			Name: args[0], Email: args[1], Username: args[2], Password: args[3], HomeAddress: args[4],
		})
		if err != nil {
			fail("%v", err)
		}
		fmt.Printf("Resident %s created with ID %d!\n", user.Name, user.ID)

	case "create-driver":
		if len(args) != 6 {
			fail("usage: vanctl user create-driver <name> <email> <username> <password> <vehicle_type> <license_plate>")
		}
		user, err := svc.CreateDriver(services.DriverInput{
			Name: args[0], Email: args[1], Username: args[2], Password: args[3],
			VehicleType: args[4], LicensePlate: args[5],
		})
		if err != nil {
			fail("%v", err)
		}
		fmt.Printf("Driver %s created with ID %d!\n", user.Name, user.ID)

	case "list":
		kind := "all"
		if len(args) > 0 {
			kind = args[0]
		}
		var (
			users []models.User
			err   error
		)
		switch kind {
		case "residents":
			users, err = svc.ListResidents()
			fmt.Println("Residents:")
		case "drivers":
			users, err = svc.ListDrivers()
			fmt.Println("Drivers:")
		default:
			users, err = svc.ListUsers()
			fmt.Println("All Users:")
		}
		if err != nil {
			fail("%v", err)
		}
		for _, user := range users {
			fmt.Printf("ID: %d, Name: %s, Username: %s, Email: %s, Type: %s\n",
				user.ID, user.Name, user.Username, user.Email, user.UserType)
		}

	case "delete":
		if len(args) != 1 {
			fail("usage: vanctl user delete <user_id>")
		}
		id := parseID(args[0], "user ID")
		if err := svc.DeleteUser(id); err != nil {
			fail("%v", err)
		}
		fmt.Printf("User %d and owned records deleted\n", id)

	default:
		usage()
	}
}

func scheduleCommands(command string, args []string, svc *services.ScheduleService, users *services.UserService) {
	switch command {
	case "create":
		if len(args) != 4 {
			fail("usage: vanctl schedule create <driver_id> <street> <start> <end>")
		}
		driverID := parseID(args[0], "driver ID")
		start, end := parseTime(args[2]), parseTime(args[3])
		schedule, err := svc.CreateSchedule(driverID, args[1], start, end)
		if err != nil {
			fail("%v", err)
		}
		fmt.Printf("Schedule created with ID %d for %s\n", schedule.ID, schedule.Street)
		fmt.Printf("Start: %s, End: %s\n", start, end)

	case "view-street":
		if len(args) != 1 {
			fail("usage: vanctl schedule view-street <street>")
		}
		schedules, err := svc.SchedulesForStreet(args[0])
		if err != nil {
			fail("%v", err)
		}
		if len(schedules) == 0 {
			fmt.Printf("No schedules found for %s\n", args[0])
			return
		}
		fmt.Printf("Schedules for %s:\n", args[0])
		for _, schedule := range schedules {
			driverName := "Unknown"
			if driver, err := users.GetUserByID(schedule.DriverID); err == nil {
				driverName = driver.Name
			}
			fmt.Printf("ID: %d, Driver: %s, Start: %s, End: %s, Street: %s\n",
				schedule.ID, driverName, schedule.ScheduledStartTime, schedule.ScheduledEndTime, schedule.Street)
		}

	case "view-driver":
		if len(args) != 1 {
			fail("usage: vanctl schedule view-driver <driver_id>")
		}
		driverID := parseID(args[0], "driver ID")
		driver, err := users.GetUserByID(driverID)
		if err != nil {
			fail("no schedules found for driver ID %d", driverID)
		}
		schedules, err := svc.SchedulesForDriver(driverID)
		if err != nil {
			fail("%v", err)
		}
		if len(schedules) == 0 {
			fmt.Printf("No schedules found for driver ID %d\n", driverID)
			return
		}
		fmt.Printf("Schedules for driver %s:\n", driver.Name)
		for _, schedule := range schedules {
			fmt.Printf("ID: %d, Street: %s, Start: %s, End: %s\n",
				schedule.ID, schedule.Street, schedule.ScheduledStartTime, schedule.ScheduledEndTime)
		}

	case "upcoming":
		schedules, err := svc.UpcomingSchedules()
		if err != nil {
			fail("%v", err)
		}
		if len(schedules) == 0 {
			fmt.Println("No upcoming schedules")
			return
		}
		fmt.Println("Upcoming schedules:")
		for _, schedule := range schedules {
			fmt.Printf("ID: %d, Driver ID: %d, Street: %s, Start: %s\n",
				schedule.ID, schedule.DriverID, schedule.Street, schedule.ScheduledStartTime)
		}

	default:
		usage()
	}
}

func stopCommands(command string, args []string, svc *services.StopRequestService, schedules *services.ScheduleService) {
	switch command {
	case "request":
		if len(args) != 2 {
			fail("usage: vanctl stop request <resident_id> <schedule_id>")
		}
		residentID := parseID(args[0], "resident ID")
		scheduleID := parseID(args[1], "schedule ID")
		request, err := svc.CreateStopRequest(residentID, scheduleID)
		if err != nil {
			fail("%v", err)
		}
		fmt.Printf("Stop request created with ID %d\n", request.ID)
		fmt.Printf("Resident ID: %d, Schedule ID: %d\n", residentID, scheduleID)

	case "list-resident":
		if len(args) != 1 {
			fail("usage: vanctl stop list-resident <resident_id>")
		}
		residentID := parseID(args[0], "resident ID")
		requests, err := svc.RequestsByResident(residentID)
		if err != nil {
			fail("%v", err)
		}
		if len(requests) == 0 {
			fmt.Printf("No stop requests found for resident ID %d\n", residentID)
			return
		}
		fmt.Printf("Stop requests for resident %d:\n", residentID)
		for _, request := range requests {
			street := "Unknown"
			if schedule, err := schedules.ScheduleByID(request.ScheduleID); err == nil {
				street = schedule.Street
			}
			fmt.Printf("ID: %d, Schedule ID: %d, Street: %s, Status: %s, Requested: %s\n",
				request.ID, request.ScheduleID, street, request.Status, request.RequestTime)
		}

	case "list-schedule":
		if len(args) != 1 {
			fail("usage: vanctl stop list-schedule <schedule_id>")
		}
		scheduleID := parseID(args[0], "schedule ID")
		requests, err := svc.RequestsBySchedule(scheduleID)
		if err != nil {
			fail("%v", err)
		}
		if len(requests) == 0 {
			fmt.Printf("No stop requests found for schedule ID %d\n", scheduleID)
			return
		}
		fmt.Printf("Stop requests for schedule %d:\n", scheduleID)
		for _, request := range requests {
			fmt.Printf("ID: %d, Resident ID: %d, Status: %s, Requested: %s\n",
				request.ID, request.ResidentID, request.Status, request.RequestTime)
		}

	case "set-status":
		if len(args) != 2 {
			fail("usage: vanctl stop set-status <request_id> <status>")
		}
		requestID := parseID(args[0], "request ID")
		request, err := svc.UpdateStatus(requestID, args[1])
		if err != nil {
			fail("%v", err)
		}
		fmt.Printf("Stop request %d status set to %s\n", request.ID, request.Status)

	default:
		usage()
	}
}

func locationCommands(command string, args []string, svc *services.LocationService) {
	switch command {
	case "update":
		if len(args) != 2 {
			fail("usage: vanctl location update <driver_id> <location>")
		}
		driverID := parseID(args[0], "driver ID")
		driver, err := svc.UpdateDriverLocation(driverID, args[1])
		if err != nil {
			fail("%v", err)
		}
		fmt.Printf("Driver %s location updated to: %s\n", driver.Name, args[1])
		fmt.Printf("Updated at: %s\n", driver.Driver.LocationUpdatedAt)

	case "get":
		if len(args) != 1 {
			fail("usage: vanctl location get <driver_id>")
		}
		driverID := parseID(args[0], "driver ID")
		snapshot, err := svc.DriverLocation(driverID)
		if err != nil {
			fail("%v", err)
		}
		location := snapshot.CurrentLocation
		if location == "" {
			location = "Not set"
		}
		fmt.Printf("Location for Driver %s:\n", snapshot.DriverName)
		fmt.Printf("Driver ID: %d\n", snapshot.DriverID)
		fmt.Printf("Driver Name: %s\n", snapshot.DriverName)
		fmt.Printf("Current Location: %s\n", location)
		fmt.Printf("Location Updated: %s\n", snapshot.LocationUpdatedAt)
		fmt.Printf("Vehicle Type: %s\n", snapshot.VehicleType)
		fmt.Printf("License Plate: %s\n", snapshot.LicensePlate)

	case "list-all":
		snapshots, err := svc.DriversWithLocation()
		if err != nil {
			fail("%v", err)
		}
		if len(snapshots) == 0 {
			fmt.Println("No driver locations found")
			return
		}
		fmt.Println("All Driver Locations:")
		for _, snapshot := range snapshots {
			fmt.Printf("Driver ID: %d, Driver Name: %s, Current Location: %s, Last Updated: %s, Vehicle Type: %s\n",
				snapshot.DriverID, snapshot.DriverName, snapshot.CurrentLocation,
				snapshot.LocationUpdatedAt, snapshot.VehicleType)
		}

	case "history":
		if len(args) != 1 {
			fail("usage: vanctl location history <driver_id>")
		}
		driverID := parseID(args[0], "driver ID")
		history, err := svc.HistoryForDriver(driverID)
		if err != nil {
			fail("%v", err)
		}
		if len(history) == 0 {
			fmt.Printf("No location history for driver ID %d\n", driverID)
			return
		}
		fmt.Printf("Location history for driver %d:\n", driverID)
		for _, record := range history {
			fmt.Printf("%s  %s (distance from last: %.1fm)\n",
				record.RecordedAt, record.Location, record.DistanceFromLast)
		}

	default:
		usage()
	}
}
