package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const nairobiPoint = `{"type":"Point","coordinates":[36.8219,-1.2921]}`

func TestUpdateDriverLocation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewLocationService(db)
	driver := seedDriver(t, db, "john")

	updated, err := svc.UpdateDriverLocation(driver.ID, "Corner of Main and 5th")
	require.NoError(t, err)
	require.NotNil(t, updated.Driver.CurrentLocation)
	assert.Equal(t, "Corner of Main and 5th", *updated.Driver.CurrentLocation)
	require.NotNil(t, updated.Driver.LocationUpdatedAt)
	first := *updated.Driver.LocationUpdatedAt

	// A second report overwrites the first and the timestamp never moves
	// backwards.
	updated, err = svc.UpdateDriverLocation(driver.ID, "Back at the depot")
	require.NoError(t, err)
	assert.Equal(t, "Back at the depot", *updated.Driver.CurrentLocation)
	assert.False(t, updated.Driver.LocationUpdatedAt.Before(first))

	// Both reports landed in the history trail, newest first.
	history, err := svc.HistoryForDriver(driver.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "Back at the depot", history[0].Location)
	assert.Equal(t, "Corner of Main and 5th", history[1].Location)
}

func TestUpdateDriverLocationRejectsNonDrivers(t *testing.T) {
	db := setupTestDB(t)
	svc := NewLocationService(db)
	resident := seedResident(t, db, "jane")

	_, err := svc.UpdateDriverLocation(resident.ID, "anywhere")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.UpdateDriverLocation(999, "anywhere")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDriverLocationSnapshot(t *testing.T) {
	db := setupTestDB(t)
	svc := NewLocationService(db)
	driver := seedDriver(t, db, "john")

	// Before any report the snapshot says so explicitly.
	snapshot, err := svc.DriverLocation(driver.ID)
	require.NoError(t, err)
	assert.Equal(t, "never", snapshot.LocationUpdatedAt)
	assert.Empty(t, snapshot.CurrentLocation)
	assert.Equal(t, "Bread Van", snapshot.VehicleType)
	assert.Equal(t, "BREAD123", snapshot.LicensePlate)

	_, err = svc.UpdateDriverLocation(driver.ID, nairobiPoint)
	require.NoError(t, err)

	snapshot, err = svc.DriverLocation(driver.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "never", snapshot.LocationUpdatedAt)
	require.NotNil(t, snapshot.Latitude)
	require.NotNil(t, snapshot.Longitude)
	assert.InDelta(t, -1.2921, *snapshot.Latitude, 1e-9)
	assert.InDelta(t, 36.8219, *snapshot.Longitude, 1e-9)

	_, err = svc.DriverLocation(999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGeoJSONReportsRecordDistance(t *testing.T) {
	db := setupTestDB(t)
	svc := NewLocationService(db)
	driver := seedDriver(t, db, "john")

	_, err := svc.UpdateDriverLocation(driver.ID, nairobiPoint)
	require.NoError(t, err)

	// Roughly 1.6km north of the first fix.
	_, err = svc.UpdateDriverLocation(driver.ID, `{"type":"Point","coordinates":[36.8219,-1.2777]}`)
	require.NoError(t, err)

	history, err := svc.HistoryForDriver(driver.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)

	assert.Zero(t, history[1].DistanceFromLast)
	assert.InDelta(t, 1600, history[0].DistanceFromLast, 100)
}

func TestFreeTextReportsCarryNoCoordinates(t *testing.T) {
	db := setupTestDB(t)
	svc := NewLocationService(db)
	driver := seedDriver(t, db, "john")

	_, err := svc.UpdateDriverLocation(driver.ID, "Starting location - Depot")
	require.NoError(t, err)

	history, err := svc.HistoryForDriver(driver.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Nil(t, history[0].Latitude)
	assert.Nil(t, history[0].Longitude)
}

func TestDriversWithLocation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewLocationService(db)
	john := seedDriver(t, db, "john")
	seedDriver(t, db, "mary") // never reports
	seedResident(t, db, "jane")

	_, err := svc.UpdateDriverLocation(john.ID, "Main Street depot")
	require.NoError(t, err)

	snapshots, err := svc.DriversWithLocation()
	require.NoError(t, err)
	require.Len(t, snapshots, 1)
	assert.Equal(t, john.ID, snapshots[0].DriverID)
	assert.Equal(t, "Main Street depot", snapshots[0].CurrentLocation)
}

func TestHistoryForUnknownDriver(t *testing.T) {
	db := setupTestDB(t)
	_, err := NewLocationService(db).HistoryForDriver(999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestParsePoint(t *testing.T) {
	lat, lng := parsePoint(nairobiPoint)
	require.NotNil(t, lat)
	require.NotNil(t, lng)
	assert.InDelta(t, -1.2921, *lat, 1e-9)
	assert.InDelta(t, 36.8219, *lng, 1e-9)

	for _, raw := range []string{
		"Corner of Main and 5th",
		"",
		"{not json",
		`{"type":"LineString","coordinates":[[0,0],[1,1]]}`,
	} {
		lat, lng := parsePoint(raw)
		assert.Nil(t, lat, raw)
		assert.Nil(t, lng, raw)
	}
}
