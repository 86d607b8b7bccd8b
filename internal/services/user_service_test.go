package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"breadvan/internal/models"
)

func TestCreateResident(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)

	user, err := svc.CreateResident(ResidentInput{
		Username:    "resident_jane",
		Password:    "residentpass",
		Email:       "jane@example.test",
		Name:        "Jane Resident",
		HomeAddress: "123 Main Street",
	})
	require.NoError(t, err)

	assert.Equal(t, models.UserTypeResident, user.UserType)
	require.NotNil(t, user.Resident)
	assert.Equal(t, "123 Main Street", user.Resident.HomeAddress)

	// Password is stored as a bcrypt hash, not plaintext.
	assert.NotEqual(t, "residentpass", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("residentpass")))

	// The specialization row survives a round trip through the store.
	fetched, err := svc.GetUserByID(user.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched.Resident)
	assert.Equal(t, "123 Main Street", fetched.Resident.HomeAddress)
	assert.Nil(t, fetched.Driver)
}

func TestCreateDriverDefaults(t *testing.T) {
	db := setupTestDB(t)

	user, err := NewUserService(db).CreateDriver(DriverInput{
		Username:     "driver_john",
		Password:     "driverpass",
		Email:        "john@breadvan.test",
		Name:         "John Driver",
		VehicleType:  "Bread Van",
		LicensePlate: "BREAD123",
	})
	require.NoError(t, err)

	assert.Equal(t, models.UserTypeDriver, user.UserType)
	require.NotNil(t, user.Driver)
	assert.Equal(t, "available", user.Driver.CurrentStatus)
	assert.Nil(t, user.Driver.CurrentLocation)
	assert.Nil(t, user.Driver.LocationUpdatedAt)
}

func TestCreateUserMissingFields(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)

	tests := []struct {
		name string
		run  func() error
	}{
		{
			name: "resident without home address",
			run: func() error {
				_, err := svc.CreateResident(ResidentInput{
					Username: "r1", Password: "pw", Email: "r1@example.test", Name: "R One",
				})
				return err
			},
		},
		{
			name: "driver without vehicle type",
			run: func() error {
				_, err := svc.CreateDriver(DriverInput{
					Username: "d1", Password: "pw", Email: "d1@example.test", Name: "D One",
					LicensePlate: "XYZ789",
				})
				return err
			},
		},
		{
			name: "driver without license plate",
			run: func() error {
				_, err := svc.CreateDriver(DriverInput{
					Username: "d2", Password: "pw", Email: "d2@example.test", Name: "D Two",
					VehicleType: "Van",
				})
				return err
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.run()
			assert.ErrorIs(t, err, ErrValidation)
		})
	}

	// Nothing was persisted by any of the failed attempts.
	var count int64
	db.Model(&models.User{}).Count(&count)
	assert.Zero(t, count)
}

func TestCreateUserDuplicateIdentity(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)
	seedResident(t, db, "jane")

	_, err := svc.CreateResident(ResidentInput{
		Username:    "jane", // taken
		Password:    "pw",
		Email:       "other@example.test",
		Name:        "Other Jane",
		HomeAddress: "9 Side Street",
	})
	assert.ErrorIs(t, err, ErrConflict)

	_, err = svc.CreateDriver(DriverInput{
		Username:     "john",
		Password:     "pw",
		Email:        "jane@example.test", // taken
		Name:         "John",
		VehicleType:  "Van",
		LicensePlate: "ABC123",
	})
	assert.ErrorIs(t, err, ErrConflict)

	// The failed attempts left no extra rows behind.
	var count int64
	db.Model(&models.User{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestAuthenticate(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)
	jane := seedResident(t, db, "jane")

	user, err := svc.Authenticate("jane", "residentpass")
	require.NoError(t, err)
	assert.Equal(t, jane.ID, user.ID)

	// Wrong password and unknown username fail identically.
	_, wrongPass := svc.Authenticate("jane", "nope")
	_, unknown := svc.Authenticate("nobody", "residentpass")
	assert.ErrorIs(t, wrongPass, ErrAuthentication)
	assert.ErrorIs(t, unknown, ErrAuthentication)
	assert.Equal(t, wrongPass.Error(), unknown.Error())
}

func TestGetUserNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)

	_, err := svc.GetUserByID(42)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.GetUserByUsername("ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListUsersByType(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)
	seedResident(t, db, "jane")
	seedDriver(t, db, "john")
	seedDriver(t, db, "mary")

	all, err := svc.ListUsers()
	require.NoError(t, err)
	assert.Len(t, all, 3)

	residents, err := svc.ListResidents()
	require.NoError(t, err)
	require.Len(t, residents, 1)
	assert.NotNil(t, residents[0].Resident)

	drivers, err := svc.ListDrivers()
	require.NoError(t, err)
	assert.Len(t, drivers, 2)
}

func TestDeleteDriverCascades(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserService(db)

	driver := seedDriver(t, db, "john")
	resident := seedResident(t, db, "jane")
	start := time.Now().UTC().Add(3 * time.Hour)
	schedule := seedSchedule(t, db, driver.ID, "Main Street", start)

	_, err := NewStopRequestService(db).CreateStopRequest(resident.ID, schedule.ID)
	require.NoError(t, err)

	require.NoError(t, users.DeleteUser(driver.ID))

	// The driver's schedules and, transitively, their stop requests are gone.
	var scheduleCount, requestCount, driverRows int64
	db.Model(&models.Schedule{}).Where("driver_id = ?", driver.ID).Count(&scheduleCount)
	db.Model(&models.StopRequest{}).Where("schedule_id = ?", schedule.ID).Count(&requestCount)
	db.Model(&models.Driver{}).Where("user_id = ?", driver.ID).Count(&driverRows)
	assert.Zero(t, scheduleCount)
	assert.Zero(t, requestCount)
	assert.Zero(t, driverRows)

	_, err = users.GetUserByID(driver.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// The resident is untouched.
	_, err = users.GetUserByID(resident.ID)
	assert.NoError(t, err)
}

func TestDeleteResidentCascades(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserService(db)

	driver := seedDriver(t, db, "john")
	resident := seedResident(t, db, "jane")
	start := time.Now().UTC().Add(3 * time.Hour)
	schedule := seedSchedule(t, db, driver.ID, "Main Street", start)

	_, err := NewStopRequestService(db).CreateStopRequest(resident.ID, schedule.ID)
	require.NoError(t, err)

	require.NoError(t, users.DeleteUser(resident.ID))

	// The resident's stop requests are gone, the schedule stays.
	var requestCount, scheduleCount int64
	db.Model(&models.StopRequest{}).Where("resident_id = ?", resident.ID).Count(&requestCount)
	db.Model(&models.Schedule{}).Where("id = ?", schedule.ID).Count(&scheduleCount)
	assert.Zero(t, requestCount)
	assert.EqualValues(t, 1, scheduleCount)
}

func TestDeleteUserNotFound(t *testing.T) {
	db := setupTestDB(t)
	err := NewUserService(db).DeleteUser(99)
	assert.ErrorIs(t, err, ErrNotFound)
}
